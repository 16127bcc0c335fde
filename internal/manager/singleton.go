package manager

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/atomic"

	"github.com/lc/rigconf/internal/filesys"
	"github.com/lc/rigconf/internal/project"
	"github.com/lc/rigconf/internal/settings"
)

// Default locations for the shared manager, rooted in the user's home
// directory the same way the daemon's own bootstrap config is.
const (
	DefaultDirName      = ".rigconf"
	DefaultProjectsDir  = "projects"
	DefaultSettingsFile = "settings.env"
	DefaultFallback     = "default"
)

// Deps are the collaborators the shared manager is constructed from.
// Only the first Shared call's Deps are used.
type Deps struct {
	Catalog  *project.Catalog
	Settings *settings.Store
	Fallback string
}

// DefaultDeps builds Deps over the default on-disk locations.
func DefaultDeps() (Deps, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Deps{}, fmt.Errorf("locating home directory: %w", err)
	}
	base := filepath.Join(home, DefaultDirName)
	osfs := filesys.OS()
	return Deps{
		Catalog:  project.NewCatalog(osfs, filepath.Join(base, DefaultProjectsDir)),
		Settings: settings.NewStore(osfs, filepath.Join(base, DefaultSettingsFile)),
		Fallback: DefaultFallback,
	}, nil
}

var (
	sharedMu sync.Mutex
	shared   atomic.Pointer[Manager]
)

// Shared returns the process-wide manager, constructing it on the first
// call. Double-checked locking: a lock-free fast path, then the mutex and
// a re-check so the initial load pipeline runs exactly once no matter how
// many goroutines race here. Every caller observes the same instance.
//
// A failed construction is not cached; the next caller retries with its
// own Deps.
func Shared(deps Deps) (*Manager, error) {
	if m := shared.Load(); m != nil {
		return m, nil
	}

	sharedMu.Lock()
	defer sharedMu.Unlock()

	if m := shared.Load(); m != nil {
		return m, nil
	}
	m, err := New(deps.Catalog, deps.Settings, deps.Fallback)
	if err != nil {
		return nil, err
	}
	shared.Store(m)
	return m, nil
}
