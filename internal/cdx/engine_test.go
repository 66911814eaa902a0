package cdx

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"cdx/internal/history"
	"cdx/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture is a canonical temp root with helpers to create directories in it.
type fixture struct {
	t    *testing.T
	root string
}

func newFixture(t *testing.T) *fixture {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return &fixture{t: t, root: root}
}

func (f *fixture) mkdir(rel string) string {
	p := filepath.Join(f.root, rel)
	require.NoError(f.t, os.MkdirAll(p, 0755))
	return p
}

// seeded returns an in-memory history holding paths, oldest first, each
// recorded with its own path as raw input.
func seeded(paths ...string) *history.History {
	h := history.New("", 0)
	for _, p := range paths {
		h.AppendLast(model.NewEntry(p, p))
	}
	return h
}

func canonicals(entries []model.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Canonical
	}
	return out
}

type stubPicker struct {
	got    []model.Indexed
	choose int
	err    error
}

func (p *stubPicker) Pick(items []model.Indexed) (model.Entry, error) {
	p.got = items
	if p.err != nil {
		return model.Entry{}, p.err
	}
	return items[p.choose].Entry, nil
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		arg  string
		want Request
	}{
		{"", Direct{Input: ""}},
		{"-", Direct{Input: "-"}},
		{"../src", Direct{Input: "../src"}},
		{"/tmp", Direct{Input: "/tmp"}},
		{"^", Interactive{}},
		{"^3", Revision{N: 3}},
		{"^0", Revision{N: 0}},
		{"^proj", Shortcut{Suffix: "proj"}},
		{"^proj/app", Shortcut{Suffix: "proj/app"}},
		{"^-1", Shortcut{Suffix: "-1"}},
		{"^2a", Shortcut{Suffix: "2a"}},
		{"^99999999999999999999999", Shortcut{Suffix: "99999999999999999999999"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.arg), func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRequest(tt.arg))
		})
	}
}

func TestRequestRaw(t *testing.T) {
	assert.Equal(t, "../src", Direct{Input: "../src"}.Raw())
	assert.Equal(t, "^app", Shortcut{Suffix: "app"}.Raw())
	assert.Equal(t, "^2", Revision{N: 2}.Raw())
	assert.Equal(t, "^(selected)", Interactive{}.Raw())
}

func TestDirect(t *testing.T) {
	t.Run("empty input goes home", func(t *testing.T) {
		f := newFixture(t)
		home := f.mkdir("home/u")
		h := seeded()
		e := NewEngine(Options{SearchSize: 30, Home: home, Store: h})

		got, err := e.Resolve(Direct{Input: ""})
		require.NoError(t, err)
		assert.Equal(t, home, got)
		require.Equal(t, 1, h.Len())
		assert.Equal(t, home, h.Entries()[0].Canonical)
	})

	t.Run("dash goes to the previous directory", func(t *testing.T) {
		f := newFixture(t)
		a, b := f.mkdir("a"), f.mkdir("b")
		h := seeded(a, b)
		e := NewEngine(Options{SearchSize: 30, Store: h})

		got, err := e.Resolve(Direct{Input: "-"})
		require.NoError(t, err)
		assert.Equal(t, a, got)
		assert.Equal(t, []model.Entry{
			model.NewEntry(b, b),
			model.NewEntry("^1", a),
		}, h.Entries())
	})

	t.Run("dash without previous directory", func(t *testing.T) {
		f := newFixture(t)
		h := seeded(f.mkdir("a"))
		e := NewEngine(Options{SearchSize: 30, Store: h})

		_, err := e.Resolve(Direct{Input: "-"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("relative path is canonicalized", func(t *testing.T) {
		f := newFixture(t)
		src := f.mkdir("proj/src")
		h := seeded()
		e := NewEngine(Options{SearchSize: 30, WorkDir: filepath.Join(f.root, "proj"), Store: h})

		got, err := e.Resolve(Direct{Input: "./src/../src"})
		require.NoError(t, err)
		assert.Equal(t, src, got)
		assert.Equal(t, []model.Entry{model.NewEntry("./src/../src", src)}, h.Entries())
	})

	t.Run("symlink is resolved", func(t *testing.T) {
		f := newFixture(t)
		target := f.mkdir("real")
		link := filepath.Join(f.root, "link")
		require.NoError(t, os.Symlink(target, link))
		h := seeded()
		e := NewEngine(Options{SearchSize: 30, Store: h})

		got, err := e.Resolve(Direct{Input: link})
		require.NoError(t, err)
		assert.Equal(t, target, got)
		assert.Equal(t, link, h.Entries()[0].Raw)
	})

	t.Run("tilde expands to home", func(t *testing.T) {
		f := newFixture(t)
		home := f.mkdir("home")
		docs := f.mkdir("home/docs")
		e := NewEngine(Options{SearchSize: 30, Home: home, Store: seeded()})

		got, err := e.Resolve(Direct{Input: "~/docs"})
		require.NoError(t, err)
		assert.Equal(t, docs, got)
	})

	t.Run("revisiting promotes instead of duplicating", func(t *testing.T) {
		f := newFixture(t)
		a, b := f.mkdir("a"), f.mkdir("b")
		h := seeded(a, b)
		e := NewEngine(Options{SearchSize: 30, Store: h})

		_, err := e.Resolve(Direct{Input: a})
		require.NoError(t, err)
		assert.Equal(t, []string{b, a}, canonicals(h.Entries()))
	})

	t.Run("missing path", func(t *testing.T) {
		f := newFixture(t)
		h := seeded()
		e := NewEngine(Options{SearchSize: 30, Store: h})

		_, err := e.Resolve(Direct{Input: filepath.Join(f.root, "nope")})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "nope")
		assert.Equal(t, 0, h.Len())
	})

	t.Run("file is not a directory", func(t *testing.T) {
		f := newFixture(t)
		file := filepath.Join(f.root, "file")
		require.NoError(t, os.WriteFile(file, nil, 0644))
		e := NewEngine(Options{SearchSize: 30, Store: seeded()})

		_, err := e.Resolve(Direct{Input: file})
		assert.ErrorIs(t, err, ErrNotADirectory)
	})
}

func TestRevision(t *testing.T) {
	f := newFixture(t)
	a, b, c := f.mkdir("a"), f.mkdir("b"), f.mkdir("c")

	tests := []struct {
		name       string
		n          int
		searchSize int
		want       string
		wantErr    error
	}{
		{"one is the previous directory", 1, 30, b, nil},
		{"two", 2, 30, a, nil},
		{"past the end", 3, 30, "", ErrNotFound},
		{"zero", 0, 30, "", ErrOutOfRange},
		{"above search size", 4, 3, "", ErrOutOfRange},
		{"equal to search size", 2, 2, a, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := seeded(a, b, c)
			e := NewEngine(Options{SearchSize: tt.searchSize, Store: h})

			got, err := e.Resolve(Revision{N: tt.n})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), fmt.Sprint(tt.n))
				assert.Equal(t, []string{a, b, c}, canonicals(h.Entries()))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			last := h.Read(1)[0]
			assert.Equal(t, tt.want, last.Canonical)
			assert.Equal(t, fmt.Sprintf("^%d", tt.n), last.Raw)
			assert.Equal(t, 3, h.Len())
		})
	}
}

func TestShortcut(t *testing.T) {
	t.Run("picks most recent suffix match", func(t *testing.T) {
		f := newFixture(t)
		projApp := f.mkdir("home/u/proj/app")
		app := f.mkdir("home/u/app")
		other := f.mkdir("home/u/other")
		h := seeded(app, projApp, other)
		e := NewEngine(Options{SearchSize: 30, Store: h})

		got, err := e.Resolve(Shortcut{Suffix: "app"})
		require.NoError(t, err)
		assert.Equal(t, projApp, got)
		assert.Equal(t, []string{app, other, projApp}, canonicals(h.Entries()))
		assert.Equal(t, "^app", h.Read(1)[0].Raw)
	})

	t.Run("multi component suffix", func(t *testing.T) {
		f := newFixture(t)
		projApp := f.mkdir("proj/app")
		app := f.mkdir("app")
		e := NewEngine(Options{SearchSize: 30, Store: seeded(projApp, app)})

		got, err := e.Resolve(Shortcut{Suffix: "proj/app"})
		require.NoError(t, err)
		assert.Equal(t, projApp, got)
	})

	t.Run("substring of last component does not match", func(t *testing.T) {
		f := newFixture(t)
		h := seeded(f.mkdir("home/u/apple"))
		e := NewEngine(Options{SearchSize: 30, Store: h})

		_, err := e.Resolve(Shortcut{Suffix: "app"})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), `"app"`)
		assert.Equal(t, 1, h.Len())
	})

	t.Run("only the search window is scanned", func(t *testing.T) {
		f := newFixture(t)
		old := f.mkdir("old/app")
		h := seeded(old, f.mkdir("b"), f.mkdir("c"))
		e := NewEngine(Options{SearchSize: 2, Store: h})

		_, err := e.Resolve(Shortcut{Suffix: "app"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("vanished directory is not recorded", func(t *testing.T) {
		f := newFixture(t)
		gone := f.mkdir("gone/app")
		h := seeded(gone)
		require.NoError(t, os.Remove(gone))
		e := NewEngine(Options{SearchSize: 30, Store: h})

		_, err := e.Resolve(Shortcut{Suffix: "app"})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, []model.Entry{model.NewEntry(gone, gone)}, h.Entries())
	})
}

func TestInteractive(t *testing.T) {
	t.Run("records the picked entry", func(t *testing.T) {
		f := newFixture(t)
		a, b, c := f.mkdir("a"), f.mkdir("b"), f.mkdir("c")
		h := seeded(a, b, c)
		picker := &stubPicker{choose: 2}
		e := NewEngine(Options{SearchSize: 30, Store: h, Picker: picker})

		got, err := e.Resolve(Interactive{})
		require.NoError(t, err)
		assert.Equal(t, a, got)

		require.Len(t, picker.got, 3)
		assert.Equal(t, model.Indexed{Index: 0, Entry: model.NewEntry(c, c)}, picker.got[0])
		assert.Equal(t, model.Indexed{Index: 2, Entry: model.NewEntry(a, a)}, picker.got[2])

		assert.Equal(t, []string{b, c, a}, canonicals(h.Entries()))
		assert.Equal(t, "^(selected)", h.Read(1)[0].Raw)
	})

	t.Run("window is limited to search size", func(t *testing.T) {
		f := newFixture(t)
		picker := &stubPicker{}
		e := NewEngine(Options{SearchSize: 2, Store: seeded(f.mkdir("a"), f.mkdir("b"), f.mkdir("c")), Picker: picker})

		_, err := e.Resolve(Interactive{})
		require.NoError(t, err)
		assert.Len(t, picker.got, 2)
	})

	t.Run("abort leaves history alone", func(t *testing.T) {
		f := newFixture(t)
		a := f.mkdir("a")
		h := seeded(a)
		picker := &stubPicker{err: fmt.Errorf("%w: escape pressed", ErrAborted)}
		e := NewEngine(Options{SearchSize: 30, Store: h, Picker: picker})

		_, err := e.Resolve(Interactive{})
		assert.ErrorIs(t, err, ErrAborted)
		assert.Equal(t, []model.Entry{model.NewEntry(a, a)}, h.Entries())
	})

	t.Run("empty history", func(t *testing.T) {
		picker := &stubPicker{}
		e := NewEngine(Options{SearchSize: 30, Store: seeded(), Picker: picker})

		_, err := e.Resolve(Interactive{})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, picker.got)
	})
}

func TestList(t *testing.T) {
	f := newFixture(t)
	a, b, c := f.mkdir("a"), f.mkdir("b"), f.mkdir("c")
	e := NewEngine(Options{SearchSize: 2, Store: seeded(a, b, c)})

	assert.Equal(t, []model.Indexed{
		{Index: 0, Entry: model.NewEntry(c, c)},
		{Index: 1, Entry: model.NewEntry(b, b)},
	}, e.List())
	assert.Equal(t, 2, e.SearchSize())
}

func TestResolveThenSaveRoundTrip(t *testing.T) {
	f := newFixture(t)
	a, b := f.mkdir("a"), f.mkdir("b")
	path := filepath.Join(f.root, "shx", history.FileName)

	h, err := history.Open(path, 0)
	require.NoError(t, err)
	e := NewEngine(Options{SearchSize: 30, Store: h})
	for _, req := range []Request{Direct{Input: a}, Direct{Input: b}, Direct{Input: "-"}} {
		_, err := e.Resolve(req)
		require.NoError(t, err)
	}
	require.NoError(t, h.Save())

	loaded, err := history.Open(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []model.Entry{
		model.NewEntry(b, b),
		model.NewEntry("^1", a),
	}, loaded.Entries())
}
