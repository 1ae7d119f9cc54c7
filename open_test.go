package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestHasFitsExtension(t *testing.T) {
	yes := []string{"a.fits", "B.FIT", "c.fts", "dir/d.FITS"}
	for _, name := range yes {
		if !hasFitsExtension(name) {
			t.Errorf("hasFitsExtension(%q) = false, want true", name)
		}
	}
	no := []string{"a.txt", "b.fit.gz", "fits", "c.fits.bak"}
	for _, name := range no {
		if hasFitsExtension(name) {
			t.Errorf("hasFitsExtension(%q) = true, want false", name)
		}
	}
}

func TestExpandHome(t *testing.T) {
	if got := expandHome("/abs/path.fits"); got != "/abs/path.fits" {
		t.Errorf("expandHome changed an absolute path: %q", got)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got := expandHome("~/data/a.fits")
	want := home + "/data/a.fits"
	if got != want {
		t.Errorf("expandHome = %q, want %q", got, want)
	}
}

func TestListFitsFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.fits"))
	touch(t, filepath.Join(dir, "b.FIT"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "sub", "nested.fits")) // not listed: no recursion

	got := listFitsFiles(dir)
	want := []string{filepath.Join(dir, "a.fits"), filepath.Join(dir, "b.FIT")}
	if strings.Join(got, ":") != strings.Join(want, ":") {
		t.Errorf("listFitsFiles = %v, want %v", got, want)
	}
}

func TestExpandArgsDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "one.fits"))
	touch(t, filepath.Join(dir, "two.fts"))

	got := expandArgs([]string{dir})
	sort.Strings(got)
	want := []string{filepath.Join(dir, "one.fits"), filepath.Join(dir, "two.fts")}
	sort.Strings(want)
	if strings.Join(got, ":") != strings.Join(want, ":") {
		t.Errorf("expandArgs = %v, want %v", got, want)
	}
}

func TestExpandArgsGlob(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "x1.fits"))
	touch(t, filepath.Join(dir, "sub", "x2.fits"))

	got := expandArgs([]string{filepath.Join(dir, "**", "*.fits")})
	sort.Strings(got)
	want := []string{filepath.Join(dir, "sub", "x2.fits"), filepath.Join(dir, "x1.fits")}
	sort.Strings(want)
	if strings.Join(got, ":") != strings.Join(want, ":") {
		t.Errorf("expandArgs = %v, want %v", got, want)
	}
}

func TestExpandArgsKeepsUnmatchedLiteral(t *testing.T) {
	got := expandArgs([]string{"no-such-file.fits"})
	if len(got) != 1 || got[0] != "no-such-file.fits" {
		t.Errorf("expandArgs = %v, want the literal back", got)
	}
}

func TestDefaultExportName(t *testing.T) {
	cases := []struct {
		path, ext, want string
	}{
		{"/data/ngc7000.fits", ".png", "ngc7000.png"},
		{"obs.fit", ".csv", "obs.csv"},
		{"/data/noext", ".png", "noext.png"},
	}
	for _, c := range cases {
		if got := defaultExportName(c.path, c.ext); got != c.want {
			t.Errorf("defaultExportName(%q, %q) = %q, want %q", c.path, c.ext, got, c.want)
		}
	}
}
