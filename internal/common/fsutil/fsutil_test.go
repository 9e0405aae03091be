package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}
	if got, err := ExpandHome("/tmp"); err != nil || got != "/tmp" {
		t.Fatalf("got %q err=%v", got, err)
	}
	if got, err := ExpandHome(""); err != nil || got != "" {
		t.Fatalf("got %q err=%v", got, err)
	}
	if p, err := ExpandHome("~"); err != nil || p != home {
		t.Fatalf("expected %q, got %q err=%v", home, p, err)
	}
	exp, err := ExpandHome("~/.config/ollamakit")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if want := filepath.Join(home, ".config", "ollamakit"); runtime.GOOS != "windows" && exp != want {
		t.Fatalf("expected %q, got %q", want, exp)
	}
}

func TestFirstExisting(t *testing.T) {
	d := t.TempDir()
	yml := filepath.Join(d, "config.yml")
	toml := filepath.Join(d, "config.toml")
	if err := os.WriteFile(toml, []byte("addr=\":1\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(yml, 0o755); err != nil {
		t.Fatal(err)
	}
	if p, ok := FirstExisting(filepath.Join(d, "config.yaml"), yml, toml); !ok || p != toml {
		t.Fatalf("got %q ok=%v, directories must be skipped", p, ok)
	}
	if _, ok := FirstExisting(filepath.Join(d, "nope.json")); ok {
		t.Fatalf("expected no match")
	}
	if !PathExists(toml) || PathExists(filepath.Join(d, "nope.json")) {
		t.Fatalf("PathExists mismatch")
	}
}
