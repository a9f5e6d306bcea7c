// Package filesystem loads job postings from local files and watches
// directories for changed posting files.
//
// Supported formats:
//
//   - .json: a single posting, an array of postings, or {"jobs": [...]}
//   - .jsonl, .ndjson: one posting per line
//   - .yaml, .yml: a single posting, a list, or {jobs: [...]}
package filesystem

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-jobs/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.JobSource = (*Source)(nil)

// maxLineSize bounds one JSON Lines record.
const maxLineSize = 4 * 1024 * 1024

// Source reads postings from files and directories.
type Source struct{}

// New creates a filesystem job source.
func New() *Source {
	return &Source{}
}

// Load reads every posting file at the given paths. Directories are walked
// recursively, skipping hidden entries and unsupported extensions. A file
// that fails to parse is an error; an explicitly named file with an
// unsupported extension is too.
func (s *Source) Load(ctx context.Context, paths ...string) ([]domain.JobPosting, error) {
	var jobs []domain.JobPosting
	for _, p := range paths {
		files, err := collect(ResolvePath(p))
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			loaded, err := LoadFile(f)
			if err != nil {
				return nil, err
			}
			logger.Debug("loaded %d postings from %s", len(loaded), f)
			jobs = append(jobs, loaded...)
		}
	}
	return jobs, nil
}

// Supported reports whether the file extension is a posting format.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonl", ".ndjson", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func collect(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if !info.IsDir() {
		if !Supported(root) {
			return nil, fmt.Errorf("%w: unsupported posting file %s", domain.ErrInvalidInput, root)
		}
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if rel != "." && isHidden(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && Supported(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// LoadFile parses one posting file by extension.
func LoadFile(path string) ([]domain.JobPosting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var jobs []domain.JobPosting
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		jobs, err = parseJSON(data)
	case ".jsonl", ".ndjson":
		jobs, err = parseJSONLines(data)
	case ".yaml", ".yml":
		jobs, err = parseYAML(data)
	default:
		err = fmt.Errorf("unsupported extension")
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, path, err)
	}
	return jobs, nil
}

type jobList struct {
	Jobs []domain.JobPosting `json:"jobs" yaml:"jobs"`
}

func parseJSON(data []byte) ([]domain.JobPosting, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var jobs []domain.JobPosting
		if err := json.Unmarshal(trimmed, &jobs); err != nil {
			return nil, err
		}
		return jobs, nil
	}

	var wrapped jobList
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Jobs != nil {
		return wrapped.Jobs, nil
	}

	var job domain.JobPosting
	if err := json.Unmarshal(trimmed, &job); err != nil {
		return nil, err
	}
	return []domain.JobPosting{job}, nil
}

func parseJSONLines(data []byte) ([]domain.JobPosting, error) {
	var jobs []domain.JobPosting
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var job domain.JobPosting
		if err := json.Unmarshal(text, &job); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		jobs = append(jobs, job)
	}
	return jobs, scanner.Err()
}

func parseYAML(data []byte) ([]domain.JobPosting, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var jobs []domain.JobPosting
		if err := root.Decode(&jobs); err != nil {
			return nil, err
		}
		return jobs, nil
	case yaml.MappingNode:
		var wrapped jobList
		if err := root.Decode(&wrapped); err != nil {
			return nil, err
		}
		if wrapped.Jobs != nil {
			return wrapped.Jobs, nil
		}
		var job domain.JobPosting
		if err := root.Decode(&job); err != nil {
			return nil, err
		}
		return []domain.JobPosting{job}, nil
	default:
		return nil, fmt.Errorf("expected a posting, a list or a jobs mapping")
	}
}
