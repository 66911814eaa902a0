package cdx

import (
	"fmt"
	"strconv"
	"strings"

	"cdx/internal/model"
)

// Request is one way of naming the directory to change to.
// It is one of Direct, Shortcut, Revision or Interactive.
type Request interface {
	// Raw is the tag recorded in history for this request.
	Raw() string
	isRequest()
}

// Direct names a path literally. "" means home and "-" the previous directory.
type Direct struct {
	Input string
}

// Shortcut names a directory by a suffix of its canonical path.
type Shortcut struct {
	Suffix string
}

// Revision names the r-th directory before the current one.
type Revision struct {
	N int
}

// Interactive lets the user pick from the recency window.
type Interactive struct{}

func (d Direct) Raw() string { return d.Input }

func (s Shortcut) Raw() string { return model.IconShortcut + s.Suffix }

func (r Revision) Raw() string { return model.IconShortcut + strconv.Itoa(r.N) }

func (Interactive) Raw() string { return model.IconShortcut + model.IconSelected }

func (Direct) isRequest()      {}
func (Shortcut) isRequest()    {}
func (Revision) isRequest()    {}
func (Interactive) isRequest() {}

func (d Direct) String() string { return fmt.Sprintf("direct %q", d.Input) }

func (s Shortcut) String() string { return fmt.Sprintf("shortcut %q", s.Suffix) }

func (r Revision) String() string { return fmt.Sprintf("revision %d", r.N) }

func (Interactive) String() string { return "interactive" }

// ParseRequest maps the positional argument onto a request:
//
//	""        home directory
//	"-"       previous directory
//	"^"       interactive pick
//	"^<int>"  revision
//	"^<text>" shortcut
//	other     literal path
func ParseRequest(arg string) Request {
	rest, ok := strings.CutPrefix(arg, model.IconShortcut)
	if !ok {
		return Direct{Input: arg}
	}
	if rest == "" {
		return Interactive{}
	}
	if isDigits(rest) {
		if n, err := strconv.Atoi(rest); err == nil {
			return Revision{N: n}
		}
	}
	return Shortcut{Suffix: rest}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
