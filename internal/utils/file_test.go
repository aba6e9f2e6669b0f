package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

var testExtensions = []string{"jpg", "jpeg", "png"}

func TestGetFileExtension(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "jpg"},
		{"photo.JPG", "jpg"},
		{"archive.tar.gz", "gz"},
		{"noext", ""},
	}

	for _, tt := range tests {
		if got := GetFileExtension(tt.in); got != tt.want {
			t.Errorf("GetFileExtension(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsImageFile(t *testing.T) {
	if !IsImageFile("a.jpg", testExtensions) {
		t.Error("a.jpg should match")
	}
	if !IsImageFile("a.PNG", testExtensions) {
		t.Error("extension match should be case-insensitive")
	}
	if IsImageFile("a.txt", testExtensions) {
		t.Error("a.txt should not match")
	}
	if IsImageFile("noext", testExtensions) {
		t.Error("file without extension should not match")
	}
}

func TestListImagesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jpg", "a.png", "c.txt", "d.JPEG"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.jpg"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := ListImages(dir, testExtensions)
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.jpg"),
		filepath.Join(dir, "d.JPEG"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("ListImages = %v, want %v", files, want)
	}
}

func TestListImagesMissingDir(t *testing.T) {
	if _, err := ListImages(filepath.Join(t.TempDir(), "missing"), testExtensions); err == nil {
		t.Error("Expected error for missing directory")
	}
}
