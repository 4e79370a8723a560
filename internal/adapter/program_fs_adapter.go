// Package adapter contains infrastructure adapters for the coverprobe CLI.
package adapter

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/coverprobe/internal/model"
)

// ErrInvalidProgram is returned for program files missing required fields.
var ErrInvalidProgram = errors.New("invalid program file")

// ProgramFSAdapter abstracts filesystem access for locating and reading
// program files, so the workflow can be tested without touching the disk.
type ProgramFSAdapter interface {
	Get(roots []m.Path) ([]m.Program, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation limits itself to the root directory.
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	ReadFile(path m.Path) ([]byte, error)

	// HashFile returns a stable fingerprint (SHA-256) for the file at path.
	HashFile(path m.Path) (string, error)

	FileInfo(path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// programFile is the on-disk YAML layout of a program.
type programFile struct {
	Name   string  `yaml:"name"`
	Entry  string  `yaml:"entry"`
	Source string  `yaml:"source"`
	Inputs [][]any `yaml:"inputs"`
}

// LocalProgramFSAdapter reads program files from the local disk.
type LocalProgramFSAdapter struct{}

// NewLocalProgramFSAdapter constructs a LocalProgramFSAdapter.
func NewLocalProgramFSAdapter() *LocalProgramFSAdapter {
	return &LocalProgramFSAdapter{}
}

// Get collects program files (*.yaml, *.yml) for the provided roots. A root
// ending in /... is scanned recursively.
func (a *LocalProgramFSAdapter) Get(roots []m.Path) ([]m.Program, error) {
	if len(roots) == 0 {
		return []m.Program{}, nil
	}

	seen := make(map[string]struct{})

	var programs []m.Program

	add := func(path string) error {
		program, ok, err := a.processFilePath(path)
		if err != nil || !ok {
			return err
		}

		if _, exists := seen[string(program.Path)]; exists {
			return nil
		}

		seen[string(program.Path)] = struct{}{}
		programs = append(programs, program)

		return nil
	}

	for _, root := range roots {
		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			if err := add(rootPath); err != nil {
				return nil, err
			}

			continue
		}

		err = a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				return nil
			}

			return add(path)
		})
		if err != nil {
			return nil, err
		}
	}

	return programs, nil
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalProgramFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalProgramFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalProgramFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalProgramFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if trimmed, ok := strings.CutSuffix(rootStr, "/..."); ok {
		return trimmed, true
	}

	return rootStr, false
}

// processFilePath decodes a program file. Files that are not YAML are
// skipped; YAML files that do not describe a program are errors.
func (a *LocalProgramFSAdapter) processFilePath(path string) (m.Program, bool, error) {
	if ext := filepath.Ext(path); ext != ".yaml" && ext != ".yml" {
		return m.Program{}, false, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return m.Program{}, false, err
	}

	data, err := a.ReadFile(m.Path(absPath))
	if err != nil {
		return m.Program{}, false, fmt.Errorf("failed to read %s: %w", absPath, err)
	}

	var file programFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return m.Program{}, false, fmt.Errorf("failed to parse %s: %w", absPath, err)
	}

	if file.Source == "" || file.Entry == "" {
		return m.Program{}, false, fmt.Errorf("%s: source and entry are required: %w", absPath, ErrInvalidProgram)
	}

	if file.Name == "" {
		file.Name = strings.TrimSuffix(filepath.Base(absPath), filepath.Ext(absPath))
	}

	hash, err := a.HashFile(m.Path(absPath))
	if err != nil {
		return m.Program{}, false, err
	}

	return m.Program{
		Name:   file.Name,
		Path:   m.Path(absPath),
		Hash:   hash,
		Entry:  file.Entry,
		Source: file.Source,
		Inputs: file.Inputs,
	}, true, nil
}
