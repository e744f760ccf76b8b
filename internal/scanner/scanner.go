// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Config holds scanner configuration.
type Config struct {
	// BasePath is the directory patterns are matched against (defaults to current directory)
	BasePath string

	// IncludePatterns are glob patterns for payloads to include (e.g., "**/*.json")
	IncludePatterns []string

	// ExcludePatterns are glob patterns for payloads to exclude (e.g., "node_modules/**")
	ExcludePatterns []string

	// Extensions filters files by extension (e.g., []string{".json"})
	// If empty, all payload extensions are included
	Extensions []string
}

// Scanner discovers payload files.
type Scanner struct {
	config Config
}

// New creates a new Scanner with the given configuration.
func New(config Config) *Scanner {
	if config.BasePath == "" {
		config.BasePath = "."
	}
	if len(config.IncludePatterns) == 0 {
		config.IncludePatterns = []string{"**/*.json", "**/*.yaml", "**/*.yml"}
	}

	return &Scanner{
		config: config,
	}
}

// Scan discovers all payload files under the base path.
func (s *Scanner) Scan() ([]PayloadFile, error) {
	basePath, err := filepath.Abs(s.config.BasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base path: %w", err)
	}
	return s.ScanPath(basePath)
}

// ScanPath scans a file or directory for payload files. An explicitly named
// file only has to carry a payload extension; include and exclude patterns
// apply to files found by walking a directory.
func (s *Scanner) ScanPath(path string) ([]PayloadFile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("path does not exist: %s", absPath)
		}
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	if !info.IsDir() {
		if !s.hasPayloadExtension(absPath) {
			return nil, nil
		}
		file, err := readPayload(absPath, info)
		if err != nil {
			return nil, err
		}
		return []PayloadFile{file}, nil
	}

	var files []PayloadFile
	err = filepath.WalkDir(absPath, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip inaccessible paths
			return nil
		}

		relPath, _ := filepath.Rel(absPath, filePath)
		if d.IsDir() {
			if s.shouldExcludeDir(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if !s.shouldIncludeFile(relPath, info) {
			return nil
		}

		file, err := readPayload(filePath, info)
		if err != nil {
			// Skip files we can't read
			return nil
		}
		files = append(files, file)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return files, nil
}

// ScanPaths resolves every argument (file, directory or glob pattern) and
// returns the payloads found, deduplicated and sorted by path.
func (s *Scanner) ScanPaths(paths []string) ([]PayloadFile, error) {
	var allFiles []PayloadFile
	seen := make(map[string]bool)

	for _, arg := range paths {
		targets := []string{arg}
		if isGlob(arg) {
			matches, err := doublestar.FilepathGlob(arg)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
			}
			targets = matches
		}

		for _, target := range targets {
			files, err := s.ScanPath(target)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				if !seen[f.Path] {
					seen[f.Path] = true
					allFiles = append(allFiles, f)
				}
			}
		}
	}

	slices.SortFunc(allFiles, func(a, b PayloadFile) int {
		return strings.Compare(a.Path, b.Path)
	})
	return allFiles, nil
}

// FileCount returns a quick count of matching files without reading content.
func (s *Scanner) FileCount() (int, error) {
	basePath, err := filepath.Abs(s.config.BasePath)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve base path: %w", err)
	}

	count := 0
	err = filepath.WalkDir(basePath, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		relPath, _ := filepath.Rel(basePath, filePath)
		if d.IsDir() {
			if s.shouldExcludeDir(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if s.shouldIncludeFile(relPath, info) {
			count++
		}
		return nil
	})

	return count, err
}

func readPayload(path string, info fs.FileInfo) (PayloadFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return PayloadFile{}, fmt.Errorf("failed to read file: %w", err)
	}
	return PayloadFile{
		Path:    path,
		Format:  DetectFormat(path),
		Content: content,
		ModTime: info.ModTime(),
	}, nil
}

func (s *Scanner) hasPayloadExtension(path string) bool {
	if len(s.config.Extensions) == 0 {
		return IsSupportedFile(path)
	}
	ext := filepath.Ext(path)
	return slices.ContainsFunc(s.config.Extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

// shouldIncludeFile checks a file, given relative to the scanned directory,
// against the extension filter and the patterns.
func (s *Scanner) shouldIncludeFile(relPath string, info fs.FileInfo) bool {
	if info.IsDir() || !s.hasPayloadExtension(relPath) {
		return false
	}

	relPath = filepath.ToSlash(relPath)

	// Exclude patterns win
	if matchesPatterns(relPath, s.config.ExcludePatterns) {
		return false
	}
	return matchesPatterns(relPath, s.config.IncludePatterns)
}

// shouldExcludeDir checks if a directory should be skipped entirely.
func (s *Scanner) shouldExcludeDir(relPath string) bool {
	if relPath == "" || relPath == "." {
		return false
	}

	relPath = filepath.ToSlash(relPath)

	for _, pattern := range s.config.ExcludePatterns {
		// e.g., "node_modules" matches "node_modules/**"
		dirPattern := strings.TrimSuffix(pattern, "/**")
		dirPattern = strings.TrimSuffix(dirPattern, "/*")
		if relPath == dirPattern {
			return true
		}

		if matched, _ := doublestar.Match(pattern, relPath+"/payload.json"); matched {
			return true
		}
	}

	return false
}

// matchesPatterns checks if a path matches any of the given patterns.
func matchesPatterns(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			// Invalid pattern, skip
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

func isGlob(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}
