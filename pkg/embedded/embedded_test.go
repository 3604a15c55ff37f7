package embedded

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func reset() {
	dataFS = nil
	overrideDir = ""
	initialized = false
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/reveal.yaml":  {Data: []byte("embedded reveal")},
		"data/landing.yaml": {Data: []byte("embedded landing")},
	}
}

func TestIsInitialized(t *testing.T) {
	reset()
	defer reset()

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

func TestReadFileNotInitialized(t *testing.T) {
	reset()

	_, err := ReadFile("data/reveal.yaml")
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
	if Exists("data/reveal.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

func TestReadFile(t *testing.T) {
	reset()
	defer reset()
	Init(testFS())

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"普通路径", "data/reveal.yaml", "embedded reveal", false},
		{"点斜杠前缀", "./data/landing.yaml", "embedded landing", false},
		{"未知前缀", "assets/logo.png", "", true},
		{"不存在的文件", "data/missing.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if string(data) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, data, tt.want)
			}
		})
	}
}

// TestOverrideDir 磁盘目录优先，缺失的文件回退到嵌入数据
func TestOverrideDir(t *testing.T) {
	reset()
	defer reset()
	Init(testFS())

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "reveal.yaml"), []byte("disk reveal"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetOverrideDir(dir)

	data, err := ReadFile("data/reveal.yaml")
	if err != nil || string(data) != "disk reveal" {
		t.Errorf("Expected disk override, got %q (%v)", data, err)
	}
	data, err = ReadFile("data/landing.yaml")
	if err != nil || string(data) != "embedded landing" {
		t.Errorf("Expected embedded fallback, got %q (%v)", data, err)
	}
}

func TestGlob(t *testing.T) {
	reset()
	defer reset()
	Init(testFS())

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Expected 2 matches, got %v", matches)
	}
}
