package native

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// IconSet holds the thumb-button icons in button order: previous,
// play/pause, next. A zero slot means the icon file was not found and the
// button is published without an image.
type IconSet [3]uintptr

// IconLoader creates and releases native icon handles. size 0 loads the
// image at its default size.
type IconLoader interface {
	LoadIcon(path string, size int) (uintptr, error)
	DestroyIcon(h uintptr) error
}

// smallIconSize is the thumbnail toolbar's rendering size; a dedicated 16x16
// frame looks sharper than a downscaled large one.
const smallIconSize = 16

// ResourceDirEnv names the packaged resource directory searched first.
const ResourceDirEnv = "QOBUZ_RESOURCE_DIR"

// devIconDir is where the icons live in the source tree.
var devIconDir = filepath.Join("build", "windows", "icons")

type iconFile struct {
	dev  string // layout inside the source tree
	flat string // layout of packaged builds
}

var thumbIconFiles = [3]iconFile{
	{dev: "win-thumbbar/app-back.ico", flat: "app-back.ico"},
	{dev: "win-thumbbar/app-play.ico", flat: "app-play.ico"},
	{dev: "win-thumbbar/app-next.ico", flat: "app-next.ico"},
}

// IconCache loads the three thumb-button icons at most once per process and
// owns their release.
type IconCache struct {
	loader IconLoader
	dirs   []string
	root   string
	log    *slog.Logger

	mu       sync.Mutex
	loaded   bool
	released bool
	set      IconSet
}

// NewIconCache searches dirs in order. Relative dirs are also tried against
// root, the repository root during development.
func NewIconCache(loader IconLoader, dirs []string, root string, log *slog.Logger) *IconCache {
	if log == nil {
		log = slog.Default()
	}
	return &IconCache{loader: loader, dirs: dirs, root: root, log: log}
}

// DefaultIconDirs returns the search order: packaged resource dir, executable
// dir, development source tree. The second value is the repository root used
// to resolve relative entries.
func DefaultIconDirs() ([]string, string) {
	var dirs []string
	if res := os.Getenv(ResourceDirEnv); res != "" {
		dirs = append(dirs, res, filepath.Join(res, "icons"))
	}
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		dirs = append(dirs, dir, filepath.Join(dir, "icons"), filepath.Join(dir, "resources"))
	}
	dirs = append(dirs, devIconDir)
	return dirs, repoRoot()
}

// repoRoot walks up from the working directory to the nearest go.mod.
func repoRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for dir := cwd; ; {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd
		}
		dir = parent
	}
}

// Load returns the cached icon set, loading it on the first call. Files
// that cannot be found or loaded leave their slot zero.
func (c *IconCache) Load() IconSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.set
	}
	c.loaded = true

	for i, f := range thumbIconFiles {
		path := c.find(f)
		if path == "" {
			c.log.Debug("thumb icon not found", "file", f.flat)
			continue
		}
		c.set[i] = c.loadOne(path)
	}
	c.log.Debug("thumb icons loaded", "prev", c.set[0] != 0, "play", c.set[1] != 0, "next", c.set[2] != 0)
	return c.set
}

func (c *IconCache) loadOne(path string) uintptr {
	large, err := c.loader.LoadIcon(path, 0)
	if err != nil || large == 0 {
		c.log.Warn("loading thumb icon failed", "path", path, "error", err)
		return 0
	}
	small, err := c.loader.LoadIcon(path, smallIconSize)
	if err != nil || small == 0 {
		return large
	}
	if err := c.loader.DestroyIcon(large); err != nil {
		c.log.Debug("releasing large icon failed", "path", path, "error", err)
	}
	return small
}

func (c *IconCache) find(f iconFile) string {
	for _, base := range c.dirs {
		candidates := []string{filepath.Join(base, f.dev), filepath.Join(base, f.flat)}
		if !filepath.IsAbs(base) && c.root != "" {
			candidates = append(candidates,
				filepath.Join(c.root, base, f.dev),
				filepath.Join(c.root, base, f.flat))
		}
		for _, p := range candidates {
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				return p
			}
		}
	}
	return ""
}

// Cleanup destroys every loaded icon. Later calls do nothing, and Load keeps
// returning an empty set afterwards.
func (c *IconCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return
	}
	c.released = true
	c.loaded = true

	for i, h := range c.set {
		if h == 0 {
			continue
		}
		if err := c.loader.DestroyIcon(h); err != nil {
			c.log.Debug("releasing thumb icon failed", "slot", i, "error", err)
		}
		c.set[i] = 0
	}
}
