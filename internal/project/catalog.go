package project

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lc/rigconf/internal/filesys"
)

// FileSuffix is the storage suffix for project files.
const FileSuffix = ".env"

// NotFoundError reports a syntactically valid project name with no matching
// file in the catalog directory.
type NotFoundError struct {
	Name string
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("project %q not found at %s", e.Name, e.Path)
}

// Catalog discovers and loads project files from a single directory.
type Catalog struct {
	fs  filesys.ReadFS
	dir string
}

// NewCatalog returns a catalog over the given directory.
func NewCatalog(rfs filesys.ReadFS, dir string) *Catalog {
	return &Catalog{fs: rfs, dir: dir}
}

// Dir returns the catalog's project directory.
func (c *Catalog) Dir() string { return c.dir }

// Projects returns the sorted names of all projects in the catalog.
// Entries without the project suffix, directories, and entries whose
// derived name would fail validation are excluded. A missing catalog
// directory yields an empty list, not an error.
func (c *Catalog) Projects() ([]string, error) {
	entries, err := c.fs.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing projects in %s: %w", c.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name, ok := strings.CutSuffix(e.Name(), FileSuffix)
		if !ok {
			continue
		}
		if ValidateName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Resolve validates name and maps it to its storage path. It returns an
// InvalidNameError before touching the file system, and a NotFoundError
// when no file exists for a valid name.
func (c *Catalog) Resolve(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	path := filepath.Join(c.dir, name+FileSuffix)
	if _, err := c.fs.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Name: name, Path: path}
		}
		return "", fmt.Errorf("resolving project %q: %w", name, err)
	}
	return path, nil
}

// Load resolves name and parses its file into a Project. Validation,
// resolution and parse failures propagate; nothing is partially loaded.
func (c *Catalog) Load(name string) (*Project, error) {
	path, err := c.Resolve(name)
	if err != nil {
		return nil, err
	}
	f, err := c.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening project file %s: %w", path, err)
	}
	defer f.Close()

	return Parse(name, f)
}
