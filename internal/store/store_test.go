package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nattoujam/tcurl/internal/errdef"
	"github.com/nattoujam/tcurl/internal/requestset"
)

func testSet(name string) *requestset.RequestSet {
	return &requestset.RequestSet{
		Name:   name,
		Method: requestset.MethodGet,
		URL:    "https://example.com",
		Headers: requestset.Headers{
			{Name: "Content-Type", Value: "application/json"},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	original := testSet("Round Trip")
	original.Body = `{"name": "$1"}`
	original.Variables = []requestset.Variable{{Name: "Name", Placeholder: "e.g. Ann"}}

	if err := s.Save("round_trip", original); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := s.Load("round_trip")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Name != original.Name || loaded.URL != original.URL || loaded.Body != original.Body {
		t.Fatalf("round trip changed fields: %+v", loaded)
	}
	if loaded.StorageID != "round_trip" {
		t.Fatalf("unexpected storage id %q", loaded.StorageID)
	}
	if len(loaded.Variables) != 1 || loaded.Variables[0].Placeholder != "e.g. Ann" {
		t.Fatalf("variables lost: %+v", loaded.Variables)
	}
}

func TestLoadNotFound(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Load("missing"); !errdef.Is(err, errdef.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteThenLoadFails(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Save("victim", testSet("Victim")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete("victim"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Load("victim"); !errdef.Is(err, errdef.CodeNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := s.Delete("victim"); !errdef.Is(err, errdef.CodeNotFound) {
		t.Fatalf("second delete should be not found, got %v", err)
	}
}

func TestListSortedWithProblems(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.Save("beta", testSet("Beta")); err != nil {
		t.Fatalf("save beta: %v", err)
	}
	if err := s.Save("alpha", testSet("Alpha")); err != nil {
		t.Fatalf("save alpha: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(":\n  - ["), 0o644); err != nil {
		t.Fatalf("write broken: %v", err)
	}

	entries, problems, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 || entries[0].StorageID != "alpha" || entries[1].StorageID != "beta" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if len(problems) != 1 || problems[0].StorageID != "broken" {
		t.Fatalf("expected broken file to be reported, got %+v", problems)
	}
	if !errdef.Is(problems[0].Err, errdef.CodeParse) {
		t.Fatalf("expected parse error, got %v", problems[0].Err)
	}
}

func TestListMissingDirIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"))
	entries, problems, err := s.List()
	if err != nil || entries != nil || problems != nil {
		t.Fatalf("expected empty result for missing dir, got %v %v %v", entries, problems, err)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.Save("clean", testSet("Clean")); err != nil {
		t.Fatalf("save: %v", err)
	}
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range dirEntries {
		if strings.Contains(entry.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestSaveRejectsInvalidDefinition(t *testing.T) {
	s := New(t.TempDir())
	rs := testSet("Bad")
	rs.Body = "$1 $3"
	rs.Variables = []requestset.Variable{{Name: "One"}}
	if err := s.Save("bad", rs); !errdef.Is(err, errdef.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := s.Load("bad"); !errdef.Is(err, errdef.CodeNotFound) {
		t.Fatalf("invalid definition must not be written, got %v", err)
	}
}

func TestSavePreservesYMLExtension(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	seed := "name: Legacy\nmethod: GET\nurl: https://example.com\n"
	if err := os.WriteFile(filepath.Join(dir, "legacy.yml"), []byte(seed), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	rs, err := s.Load("legacy")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rs.Name = "Legacy Renamed"
	if err := s.Save("legacy", rs); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "legacy.yml")); err != nil {
		t.Fatalf("save should reuse the existing .yml file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "legacy.yaml")); err == nil {
		t.Fatalf("save must not create a duplicate .yaml file")
	}
}

func TestStorageIDRejectsPathTraversal(t *testing.T) {
	s := New(t.TempDir())
	for _, id := range []string{"", "../escape", "a/b", ".hidden"} {
		if _, err := s.Load(id); !errdef.Is(err, errdef.CodeValidation) {
			t.Fatalf("id %q should be rejected, got %v", id, err)
		}
	}
}

func TestEnsureSeedsExample(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "requests")
	s := New(dir)
	if err := s.Ensure(); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	rs, err := s.Load("example")
	if err != nil {
		t.Fatalf("load example: %v", err)
	}
	if len(rs.Variables) != 2 {
		t.Fatalf("sample should carry two variables, got %d", len(rs.Variables))
	}

	if err := s.Delete("example"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Save("mine", testSet("Mine")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Ensure(); err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if _, err := s.Load("example"); !errdef.Is(err, errdef.CodeNotFound) {
		t.Fatalf("ensure must not re-seed a populated directory, got %v", err)
	}
}

func TestNextID(t *testing.T) {
	s := New(t.TempDir())
	if got := s.NextID(); got != "new_request" {
		t.Fatalf("unexpected first id %q", got)
	}
	if err := s.Save("new_request", testSet("One")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := s.NextID(); got != "new_request_1" {
		t.Fatalf("unexpected second id %q", got)
	}
}
