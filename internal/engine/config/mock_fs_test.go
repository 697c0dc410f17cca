package config

import (
	"errors"
	"io/fs"
	"os"
)

// mockFS is an in-memory FileSystem for tests.
type mockFS struct {
	files   map[string][]byte
	homeDir string
	homeErr error
}

func newMockFS() *mockFS {
	return &mockFS{
		files:   make(map[string][]byte),
		homeDir: "/home/tester",
	}
}

func (m *mockFS) ReadFile(name string) ([]byte, error) {
	if data, ok := m.files[name]; ok {
		return data, nil
	}
	return nil, os.ErrNotExist
}

func (m *mockFS) UserHomeDir() (string, error) {
	if m.homeErr != nil {
		return "", m.homeErr
	}
	return m.homeDir, nil
}

func (m *mockFS) Stat(name string) (fs.FileInfo, error) {
	if _, ok := m.files[name]; ok {
		return nil, nil
	}
	return nil, os.ErrNotExist
}

func (m *mockFS) IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
