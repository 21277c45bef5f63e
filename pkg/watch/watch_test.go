package watch

import (
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestIsSourceChange(t *testing.T) {
	cases := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"tsx write", fsnotify.Event{Name: "foo.tsx", Op: fsnotify.Write}, true},
		{"jsx create", fsnotify.Event{Name: "bar.jsx", Op: fsnotify.Create}, true},
		{"ts rename", fsnotify.Event{Name: "baz.ts", Op: fsnotify.Rename}, true},
		{"md write ignored", fsnotify.Event{Name: "readme.md", Op: fsnotify.Write}, false},
		{"tsx chmod ignored", fsnotify.Event{Name: "foo.tsx", Op: fsnotify.Chmod}, false},
		{"tsx remove ignored", fsnotify.Event{Name: "foo.tsx", Op: fsnotify.Remove}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := isSourceChange(c.ev); got != c.want {
				t.Errorf("isSourceChange(%+v) = %v, want %v", c.ev, got, c.want)
			}
		})
	}
}

func TestWatchDirsDedups(t *testing.T) {
	dirs, err := watchDirs([]string{"a/b/*.tsx", "a/b/*.jsx", "c/*.tsx"})
	if err != nil {
		t.Fatalf("watchDirs: %v", err)
	}
	want := map[string]bool{"a/b": true, "c": true}
	if len(dirs) != len(want) {
		t.Fatalf("got %v, want dirs matching %v", dirs, want)
	}
	for _, d := range dirs {
		if !want[d] {
			t.Errorf("unexpected dir %q", d)
		}
	}
}

func TestWatchDirsEmptyPatternsDefaultsToCwd(t *testing.T) {
	dirs, err := watchDirs(nil)
	if err != nil {
		t.Fatalf("watchDirs: %v", err)
	}
	if len(dirs) != 1 || dirs[0] != "." {
		t.Fatalf("got %v, want [.]", dirs)
	}
}
