package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"cdx/internal/cdx"
	"cdx/internal/config"
	"cdx/internal/history"
	"cdx/internal/logging"
	"cdx/internal/model"
	"cdx/internal/shell"
	"cdx/internal/tui"

	"github.com/spf13/pflag"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cdx [options] [DIR | - | ^ | ^N | ^SUFFIX]\n\n")
		fmt.Fprintf(os.Stderr, "cdx resolves a directory from your cd history and prints its absolute path.\n")
		fmt.Fprintf(os.Stderr, "Load the shell integration (see --init) so that the printed path is cd'ed into.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  cdx                 # Go home\n")
		fmt.Fprintf(os.Stderr, "  cdx ../src          # Go to a path and record it\n")
		fmt.Fprintf(os.Stderr, "  cdx -               # Go back to the previous directory\n")
		fmt.Fprintf(os.Stderr, "  cdx ^2              # Go to the directory visited two steps ago\n")
		fmt.Fprintf(os.Stderr, "  cdx ^proj/app       # Go to the latest directory ending in proj/app\n")
		fmt.Fprintf(os.Stderr, "  cdx ^               # Pick a directory interactively\n")
		fmt.Fprintf(os.Stderr, "  cdx -s              # Show recent history\n")
		fmt.Fprintf(os.Stderr, "  eval \"$(cdx --init bash)\"\n")
	}

	showFlag := pflag.BoolP("show-history", "s", false, "Show the recent cd history")
	sizeFlag := pflag.IntP("size", "n", 0, "Override search_size for this run")
	initFlag := pflag.String("init", "", "Print the shell integration for bash, zsh, fish or auto")
	logLevelFlag := pflag.String("log-level", "", "Override log_level (debug, info, warn, error)")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("cdx version %s\n", model.Version)
		return
	}

	if *initFlag != "" {
		if err := runInitMode(*initFlag); err != nil {
			fail(err)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	if *sizeFlag > 0 {
		cfg.SearchSize = *sizeFlag
	}
	if *logLevelFlag != "" {
		cfg.LogLevel = *logLevelFlag
	}

	if *showFlag {
		err = runShowHistory(cfg)
	} else {
		err = runCdMode(cfg, pflag.Args())
	}
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "cdx: %v\n", err)
	os.Exit(1)
}

func runInitMode(name string) error {
	var sh shell.Shell
	if name == "auto" {
		sh = shell.DetectShell(os.Getenv("SHELL"))
	} else {
		var err error
		if sh, err = shell.ByName(name); err != nil {
			return err
		}
	}

	bin, err := os.Executable()
	if err != nil {
		bin = "cdx"
	}
	fmt.Print(sh.InitScript(bin))
	return nil
}

// openEngine wires the history store, picker and logger for one invocation.
func openEngine(cfg config.Config, logger *slog.Logger) (*cdx.Engine, *history.History, error) {
	h, err := history.Open(cfg.PathFor(history.FileName), cfg.MaxSize, history.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}

	engine := cdx.NewEngine(cdx.Options{
		SearchSize: cfg.SearchSize,
		Home:       cfg.Home,
		Store:      h,
		Picker:     tui.NewPicker(tui.ThemeByName(cfg.Theme)),
		Logger:     logger,
	})
	return engine, h, nil
}

func openLogger(cfg config.Config) (*slog.Logger, func()) {
	// On failure the logger already points at stderr and has said so
	logger, closer, _ := logging.Open(cfg.PathFor(logging.FileName), logging.ParseLevel(cfg.LogLevel))
	return logger, func() { closer.Close() }
}

func runShowHistory(cfg config.Config) error {
	logger, closeLog := openLogger(cfg)
	defer closeLog()

	engine, _, err := openEngine(cfg, logger)
	if err != nil {
		return err
	}

	items := engine.List()
	if len(items) == 0 {
		fmt.Fprintln(os.Stderr, "No history yet.")
		return nil
	}
	fmt.Println(tui.FormatList(tui.ThemeByName(cfg.Theme), items))
	return nil
}

func runCdMode(cfg config.Config, args []string) error {
	if len(args) > 1 {
		return errors.New("expected at most one directory argument")
	}
	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}

	logger, closeLog := openLogger(cfg)
	defer closeLog()

	engine, h, err := openEngine(cfg, logger)
	if err != nil {
		return err
	}

	path, err := engine.Resolve(cdx.ParseRequest(arg))
	if err != nil {
		return err
	}
	if err := h.Save(); err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}
