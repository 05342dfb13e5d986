package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"my photo.png", "my_photo.png"},
		{"../../etc/passwd", "passwd"},
		{`..\..\boot.ini`, "boot.ini"},
		{"/tmp/abs/path.jpg", "path.jpg"},
		{"weird$chars!.txt", "weird_chars_.txt"},
		{".hidden", "hidden"},
		{"..", ""},
		{"///", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Sanitize(tc.in); got != tc.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSaveWritesUnderCategory(t *testing.T) {
	root := t.TempDir()
	s := New(root)

	name, err := s.Save(context.Background(), "background", "../sneaky/bg image.png", strings.NewReader("pixels"))
	if err != nil {
		t.Fatal(err)
	}
	if name != "bg_image.png" {
		t.Fatalf("stored name = %q", name)
	}

	data, err := os.ReadFile(filepath.Join(root, "background", name))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "pixels" {
		t.Fatalf("content = %q", data)
	}
}

func TestSaveRejectsUnusableName(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Save(context.Background(), "file", "///", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for unusable filename")
	}
}

func TestSaveOverwritesExisting(t *testing.T) {
	root := t.TempDir()
	s := New(root)

	if _, err := s.Save(context.Background(), "banner", "b.jpg", strings.NewReader("one")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(context.Background(), "banner", "b.jpg", strings.NewReader("two")); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(root, "banner", "b.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "two" {
		t.Fatalf("content = %q, want the later write", data)
	}
}
