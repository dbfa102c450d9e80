package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path     string
		expected Language
	}{
		{"test.js", LanguageJavaScript},
		{"test.jsx", LanguageJavaScript},
		{"test.mjs", LanguageJavaScript},
		{"test.cjs", LanguageJavaScript},
		{"test.ts", LanguageTypeScript},
		{"test.tsx", LanguageTypeScript},
		{"App.vue", LanguageVue},
		{"test.go", LanguageUnknown},
		{"test.py", LanguageUnknown},
		{"test.json", LanguageUnknown},
		{"test", LanguageUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			result := detectLanguage(tt.path)
			if result != tt.expected {
				t.Errorf("detectLanguage(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()

	mustWrite(t, filepath.Join(tmpDir, "src", "app.js"), "t('a')")
	mustWrite(t, filepath.Join(tmpDir, "src", "App.tsx"), "t('b')")
	mustWrite(t, filepath.Join(tmpDir, "src", "Page.vue"), "<p>{{ t('c') }}</p>")
	mustWrite(t, filepath.Join(tmpDir, "src", "types.d.ts"), "declare const x: string")
	mustWrite(t, filepath.Join(tmpDir, "src", "readme.txt"), "readme")
	mustWrite(t, filepath.Join(tmpDir, "node_modules", "lib.js"), "module.exports = {};")

	scanner := NewScanner()
	files, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	// js, tsx and vue; not the declaration file, the txt or node_modules
	if len(files) != 3 {
		t.Errorf("Expected 3 files, got %d: %v", len(files), files)
	}

	for _, file := range files {
		if filepath.Base(filepath.Dir(file.Path)) == "node_modules" {
			t.Error("Files in node_modules should be excluded")
		}
	}
}

func TestScanner_ExcludeGlobs(t *testing.T) {
	tmpDir := t.TempDir()

	mustWrite(t, filepath.Join(tmpDir, "test.js"), "test")
	mustWrite(t, filepath.Join(tmpDir, "test.spec.ts"), "test")

	scanner := NewScanner()
	scanner.SetExcludeGlobs([]string{"*.spec.ts"})

	files, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("Expected 1 file, got %d", len(files))
	}
	if files[0].Language != LanguageJavaScript {
		t.Errorf("Expected JavaScript file, got %v", files[0].Language)
	}
}

func TestScanner_IncludeGlobs(t *testing.T) {
	tmpDir := t.TempDir()

	mustWrite(t, filepath.Join(tmpDir, "components", "Button.tsx"), "x")
	mustWrite(t, filepath.Join(tmpDir, "utils", "format.ts"), "x")

	scanner := NewScanner()
	scanner.SetIncludeGlobs([]string{"**/components/**"})

	files, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0].Path) != "Button.tsx" {
		t.Errorf("Expected only Button.tsx, got %v", files)
	}
}

func TestScanner_AddExcludeDirs(t *testing.T) {
	tmpDir := t.TempDir()

	mustWrite(t, filepath.Join(tmpDir, "src", "app.js"), "x")
	mustWrite(t, filepath.Join(tmpDir, "src", "generated", "api.js"), "x")
	mustWrite(t, filepath.Join(tmpDir, "stories", "button.js"), "x")

	scanner := NewScanner()
	scanner.AddExcludeDirs([]string{"stories", "src/generated"})

	files, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0].Path) != "app.js" {
		t.Errorf("Expected only app.js, got %v", files)
	}
}

func TestScanner_ScanAll(t *testing.T) {
	tmpDir := t.TempDir()

	mustWrite(t, filepath.Join(tmpDir, "web", "a.js"), "x")
	mustWrite(t, filepath.Join(tmpDir, "web", "nested", "b.js"), "x")

	scanner := NewScanner()
	files, err := scanner.ScanAll([]string{filepath.Join(tmpDir, "web"), filepath.Join(tmpDir, "web", "nested")})
	if err != nil {
		t.Fatalf("ScanAll failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("Expected overlapping roots to yield 2 files, got %d", len(files))
	}

	if _, err := scanner.ScanAll([]string{filepath.Join(tmpDir, "missing")}); err == nil {
		t.Error("Expected error for missing project directory")
	}
}

func TestCorpus_Read(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a.js")
	mustWrite(t, path, "t('x')")

	corpus, err := NewCorpus([]FileInfo{{Path: path, Language: LanguageJavaScript}}, 1)
	if err != nil {
		t.Fatalf("NewCorpus failed: %v", err)
	}

	content, err := corpus.Read(path)
	if err != nil || content != "t('x')" {
		t.Fatalf("Read = %q, %v", content, err)
	}

	// Served from cache after the file is gone
	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	content, err = corpus.Read(path)
	if err != nil || content != "t('x')" {
		t.Errorf("cached Read = %q, %v", content, err)
	}

	if _, err := corpus.Read(filepath.Join(tmpDir, "missing.js")); err == nil {
		t.Error("Expected error for missing file")
	}
}
