// Package store persists request sets as one YAML file per set inside
// a single directory. It re-reads from disk on every access so edits
// made by an external editor are always picked up.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/nattoujam/tcurl/internal/errdef"
	"github.com/nattoujam/tcurl/internal/requestset"
)

const (
	extYAML = ".yaml"
	extYML  = ".yml"
)

// Entry is one listable request set.
type Entry struct {
	StorageID string
	Name      string
	Method    string
}

// Problem reports a file that could not be parsed during List. Broken
// files are excluded from entries but never silently hidden.
type Problem struct {
	StorageID string
	Err       error
}

type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

// Ensure creates the requests directory and, when it holds no request
// files yet, seeds it with a working example so the first run is not
// an empty screen.
func (s *Store) Ensure() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "create requests directory %q", s.dir)
	}
	entries, problems, err := s.List()
	if err != nil {
		return err
	}
	if len(entries) > 0 || len(problems) > 0 {
		return nil
	}
	return s.Save("example", sampleRequestSet())
}

func sampleRequestSet() *requestset.RequestSet {
	return &requestset.RequestSet{
		Name:        "Example Request",
		Description: "Sample request created on first run",
		Method:      requestset.MethodPost,
		URL:         "https://api.example.com/users",
		Headers: requestset.Headers{
			{Name: "Content-Type", Value: "application/json"},
		},
		Body: "{\n  \"name\": \"$1\",\n  \"email\": \"$2\"\n}\n",
		Variables: []requestset.Variable{
			{Name: "Name", Placeholder: "e.g. Jane Doe"},
			{Name: "Email", Placeholder: "e.g. jane@example.com"},
		},
	}
}

// List enumerates the backing files sorted by storage id. Files that
// fail to parse come back as problems alongside the valid entries.
func (s *Store) List() ([]Entry, []Problem, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, errdef.Wrap(errdef.CodeFilesystem, err, "read requests directory %q", s.dir)
	}

	var entries []Entry
	var problems []Problem
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || !isRequestFile(dirEntry.Name()) {
			continue
		}
		id := storageID(dirEntry.Name())
		rs, loadErr := s.Load(id)
		if loadErr != nil {
			problems = append(problems, Problem{StorageID: id, Err: loadErr})
			continue
		}
		entries = append(entries, Entry{
			StorageID: id,
			Name:      rs.DisplayName(),
			Method:    rs.Method,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].StorageID < entries[j].StorageID
	})
	sort.Slice(problems, func(i, j int) bool {
		return problems[i].StorageID < problems[j].StorageID
	})
	return entries, problems, nil
}

func (s *Store) Load(id string) (*requestset.RequestSet, error) {
	path, err := s.resolvePath(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errdef.New(errdef.CodeNotFound, "request set %q not found", id)
	}
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "read request set %q", id)
	}
	return requestset.Parse(data, id)
}

// Save serializes atomically: the payload goes to a uniquely named
// temp file in the same directory and is renamed over the target, so
// a crash mid-write never leaves a truncated definition behind.
func (s *Store) Save(id string, rs *requestset.RequestSet) error {
	if err := rs.Validate(); err != nil {
		return err
	}
	data, err := requestset.Marshal(rs)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "create requests directory %q", s.dir)
	}

	path := filepath.Join(s.dir, id+extYAML)
	if existing, resolveErr := s.resolvePath(id); resolveErr == nil {
		if _, statErr := os.Stat(existing); statErr == nil {
			path = existing
		}
	}

	tmpPath := filepath.Join(s.dir, fmt.Sprintf(".%s-%s.tmp", id, uuid.NewString()))
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "write request set %q", id)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errdef.Wrap(errdef.CodeFilesystem, err, "replace request set %q", id)
	}
	return nil
}

// Delete is irreversible. Callers must have confirmed the action first;
// the store itself performs no confirmation.
func (s *Store) Delete(id string) error {
	path, err := s.existingPath(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "delete request set %q", id)
	}
	return nil
}

// Path returns the backing file of an existing request set, for
// handing to the external editor.
func (s *Store) Path(id string) (string, error) {
	return s.existingPath(id)
}

// NewDefault produces the creation template: GET, a Content-Type
// header, empty body, no variables.
func NewDefault(name string) *requestset.RequestSet {
	if strings.TrimSpace(name) == "" {
		name = "New Request"
	}
	return &requestset.RequestSet{
		Name:   name,
		Method: requestset.MethodGet,
		URL:    "https://api.example.com",
		Headers: requestset.Headers{
			{Name: "Content-Type", Value: "application/json"},
		},
	}
}

// NextID returns the first unused new_request slot, mirroring how the
// original tool numbered freshly created files.
func (s *Store) NextID() string {
	const base = "new_request"
	if !s.exists(base) {
		return base
	}
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d", base, counter)
		if !s.exists(candidate) {
			return candidate
		}
	}
}

func (s *Store) exists(id string) bool {
	_, err := s.existingPath(id)
	return err == nil
}

// resolvePath prefers an existing .yaml file, then .yml, defaulting to
// .yaml for ids with no backing file yet.
func (s *Store) resolvePath(id string) (string, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", errdef.New(errdef.CodeValidation, "invalid storage id %q", id)
	}
	for _, ext := range []string{extYAML, extYML} {
		path := filepath.Join(s.dir, id+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return filepath.Join(s.dir, id+extYAML), nil
}

func (s *Store) existingPath(id string) (string, error) {
	path, err := s.resolvePath(id)
	if err != nil {
		return "", err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return "", errdef.New(errdef.CodeNotFound, "request set %q not found", id)
	}
	return path, nil
}

func isRequestFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == extYAML || ext == extYML
}

func storageID(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
