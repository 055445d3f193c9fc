package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dimchansky/utfbom"
)

// DefaultDirName is the storage subdirectory created next to the executable.
const DefaultDirName = "saved"

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store is the storage-location convention: bare file names live in Dir.
type Store struct {
	Dir string
}

// DefaultStore returns a Store rooted at DefaultDirName beside the running
// executable.
func DefaultStore() (Store, error) {
	exe, err := os.Executable()
	if err != nil {
		return Store{}, fmt.Errorf("locate executable: %w", err)
	}
	return Store{Dir: filepath.Join(filepath.Dir(exe), DefaultDirName)}, nil
}

// Path resolves name. Bare and nested names are placed inside Dir; absolute
// paths and paths starting with "./" or "../" are used as typed.
func (s Store) Path(name string) string {
	if isExplicitPath(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(s.Dir, name)
}

func isExplicitPath(name string) bool {
	if filepath.IsAbs(name) {
		return true
	}
	for _, prefix := range []string{"./", "../", "." + string(filepath.Separator), ".." + string(filepath.Separator)} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Ensure creates Dir if needed.
func (s Store) Ensure() error {
	if err := os.MkdirAll(s.Dir, dirPerm); err != nil {
		return fmt.Errorf("%w %s: %w", ErrStorageDir, s.Dir, err)
	}
	return nil
}

// Write stores data under name and returns the path written.
func (s Store) Write(name, data string) (string, error) {
	path := s.Path(name)
	if !isExplicitPath(name) {
		if err := s.Ensure(); err != nil {
			return "", err
		}
		if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
			return "", fmt.Errorf("%w %s: %w", ErrStorageDir, filepath.Dir(path), err)
		}
	}
	if err := os.WriteFile(path, []byte(data), filePerm); err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	return path, nil
}

// Read loads the file at path as lines. A leading UTF-8 BOM is dropped and
// both "\n" and "\r\n" terminate lines.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(utfbom.SkipOnly(f))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}
	return SplitLines(string(data)), nil
}

// SplitLines splits persisted text into document lines. The terminator of
// the last line is optional.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
