package shell

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Shell defines the interface for shell-specific integration snippets.
// A child process cannot change its parent's directory, so the shell runs
// cdx, reads the resolved path from stdout and does the cd itself.
type Shell interface {
	// InitScript returns a function named cdx that wraps the binary at bin.
	InitScript(bin string) string
	Name() string
}

// BashShell implements Shell for Bash.
type BashShell struct{}

func (s *BashShell) InitScript(bin string) string {
	return posixFunction(bin)
}

func (s *BashShell) Name() string {
	return "bash"
}

// ZshShell implements Shell for Zsh.
type ZshShell struct{}

func (s *ZshShell) InitScript(bin string) string {
	return posixFunction(bin)
}

func (s *ZshShell) Name() string {
	return "zsh"
}

// FishShell implements Shell for fish.
type FishShell struct{}

func (s *FishShell) InitScript(bin string) string {
	return fmt.Sprintf(`function cdx
    switch "$argv[1]"
        case -s --show-history -h --help -V --version --init
            command %[1]s $argv
            return
    end
    set -l dest (command %[1]s $argv)
    or return
    builtin cd -- "$dest"
end
`, quote(bin))
}

func (s *FishShell) Name() string {
	return "fish"
}

// posixFunction works in both bash and zsh.
func posixFunction(bin string) string {
	return fmt.Sprintf(`cdx() {
  case "$1" in
    -s|--show-history|-h|--help|-V|--version|--init)
      command %[1]s "$@"
      return
      ;;
  esac
  local dest
  dest="$(command %[1]s "$@")" || return
  builtin cd -- "$dest"
}
`, quote(bin))
}

// quote single-quotes bin for use inside a shell script.
func quote(bin string) string {
	return "'" + strings.ReplaceAll(bin, "'", `'\''`) + "'"
}

// DetectShell identifies the shell from a $SHELL value, defaulting to Bash.
func DetectShell(shellPath string) Shell {
	s, err := ByName(filepath.Base(shellPath))
	if err != nil {
		return &BashShell{}
	}
	return s
}

// ByName returns the shell called name.
func ByName(name string) (Shell, error) {
	switch strings.ToLower(name) {
	case "bash":
		return &BashShell{}, nil
	case "zsh":
		return &ZshShell{}, nil
	case "fish":
		return &FishShell{}, nil
	default:
		return nil, fmt.Errorf("unsupported shell %q (want bash, zsh or fish)", name)
	}
}
