package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "wav_out")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Plain Title", "Plain Title"},
		{`AC/DC: "Back" <In> Black?`, `AC_DC_ _Back_ _In_ Black_`},
		{`a\b|c*d`, "a_b_c_d"},
		{"Zażółć gęślą jaźń", "Zażółć gęślą jaźń"},
	}

	for _, test := range tests {
		if got := SanitizeFilename(test.input); got != test.expected {
			t.Errorf("SanitizeFilename(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

func TestSanitizeFilename_Truncates(t *testing.T) {
	long := strings.Repeat("ż", 250)

	got := SanitizeFilename(long)
	if n := len([]rune(got)); n != MaxFilenameLength {
		t.Errorf("Expected %d characters, got %d", MaxFilenameLength, n)
	}
}

func TestWAVFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"song", "song.wav"},
		{"song.wav", "song.wav"},
		{"SONG.WAV", "SONG.WAV"},
		{"a:b", "a_b.wav"},
		{"  spaced  ", "spaced.wav"},
	}

	for _, test := range tests {
		if got := WAVFilename(test.input); got != test.expected {
			t.Errorf("WAVFilename(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

func TestRemoveIfExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "source.m4a")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := RemoveIfExists(path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected file to be removed")
	}

	// Missing file and empty path are not errors
	if err := RemoveIfExists(path); err != nil {
		t.Errorf("Expected no error for missing file, got %v", err)
	}
	if err := RemoveIfExists(""); err != nil {
		t.Errorf("Expected no error for empty path, got %v", err)
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	err := OpenFileInManager(filepath.Join(t.TempDir(), "missing.wav"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected 'does not exist' error, got: %v", err)
	}
}
