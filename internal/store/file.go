package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/rianlucascs/dowtrend/internal/contracts"
)

// bare NaN / Infinity literals written by non-strict JSON encoders
var nonFiniteLiteral = regexp.MustCompile(`:\s*-?(NaN|Infinity)\b`)

// FileStore keeps one JSON document per sample under a data directory
// ⭐ SSOT: 결과 파일 경로는 Path()에서만 결정
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Name implements Backend
func (s *FileStore) Name() string {
	return "file"
}

// Path returns <dir>/<spec with ':' replaced by '_'>.json
func (s *FileStore) Path(spec contracts.SampleSpecifier) string {
	return filepath.Join(s.dir, spec.FileKey()+".json")
}

// Save overwrites the sample's file with the complete map.
// The document is written to a temp file and renamed so readers never see a partial file.
func (s *FileStore) Save(ctx context.Context, spec contracts.SampleSpecifier, results *contracts.ResultMap) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(results, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", contracts.ErrPersistenceFailure, spec, err)
	}

	path := s.Path(spec)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: create data dir: %w", contracts.ErrPersistenceFailure, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+spec.FileKey()+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", contracts.ErrPersistenceFailure, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %w", contracts.ErrPersistenceFailure, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", contracts.ErrPersistenceFailure, tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: rename to %s: %w", contracts.ErrPersistenceFailure, path, err)
	}

	return nil
}

// Load reads the sample's file back. Bare NaN literals are read as null.
func (s *FileStore) Load(ctx context.Context, spec contracts.SampleSpecifier) (*contracts.ResultMap, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	path := s.Path(spec)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %w", contracts.ErrPersistenceFailure, path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", contracts.ErrPersistenceFailure, path, err)
	}

	data = nonFiniteLiteral.ReplaceAll(bytes.TrimSpace(data), []byte(": null"))

	results := contracts.NewResultMap(0)
	if err := json.Unmarshal(data, results); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", contracts.ErrPersistenceFailure, path, err)
	}

	return results, nil
}
