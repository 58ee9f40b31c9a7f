// Package discovery locates the task file of the newest feature in a speckit
// repository.
//
// The repository root is found by asking git, then by walking up for a VCS
// marker, then by walking up for a specs directory. Under the root, the
// feature directory with the highest numeric prefix wins.
package discovery

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	DefaultSpecsDir   = "specs"
	DefaultTasksFile  = "tasks.md"
	DefaultMaxLevels  = 10
	DefaultGitTimeout = 2 * time.Second
)

var vcsMarkers = []string{".git", ".hg", ".svn"}

// GitRootFunc returns the top level of the git work tree containing dir.
// ok is false when git cannot answer.
type GitRootFunc func(ctx context.Context, dir string, timeout time.Duration) (root string, ok bool)

// Finder searches for task files. The zero value uses the defaults.
type Finder struct {
	SpecsDir   string
	TasksFile  string
	MaxLevels  int
	GitTimeout time.Duration
	GitRoot    GitRootFunc
	Logger     *log.Logger
}

func (f *Finder) specsDir() string {
	if f.SpecsDir == "" {
		return DefaultSpecsDir
	}
	return f.SpecsDir
}

func (f *Finder) tasksFile() string {
	if f.TasksFile == "" {
		return DefaultTasksFile
	}
	return f.TasksFile
}

func (f *Finder) maxLevels() int {
	if f.MaxLevels <= 0 {
		return DefaultMaxLevels
	}
	return f.MaxLevels
}

func (f *Finder) gitTimeout() time.Duration {
	if f.GitTimeout <= 0 {
		return DefaultGitTimeout
	}
	return f.GitTimeout
}

func (f *Finder) gitRoot() GitRootFunc {
	if f.GitRoot == nil {
		return GitTopLevel
	}
	return f.GitRoot
}

func (f *Finder) debug(msg string, keyvals ...any) {
	if f.Logger != nil {
		f.Logger.Debug(msg, keyvals...)
	}
}

// Discover returns the task file of the newest feature in the repository
// containing start.
func (f *Finder) Discover(ctx context.Context, start string) (string, error) {
	root, ok := f.RepositoryRoot(ctx, start)
	if !ok {
		return "", &Error{Kind: NoRoot, Path: start}
	}
	return f.LatestTasksFile(root)
}

// RepositoryRoot finds the repository root for start. Each strategy is tried
// in turn: git, then a VCS marker walk, then a specs directory walk.
func (f *Finder) RepositoryRoot(ctx context.Context, start string) (string, bool) {
	if root, ok := f.gitRoot()(ctx, start, f.gitTimeout()); ok {
		f.debug("using git root", "root", root)
		return root, true
	}
	f.debug("git root lookup failed", "dir", start)

	abs, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	if root, ok := walkUp(abs, f.maxLevels(), hasVCSMarker); ok {
		f.debug("using vcs marker root", "root", root)
		return root, true
	}
	specs := f.specsDir()
	if root, ok := walkUp(abs, f.maxLevels(), func(dir string) bool {
		return isDir(filepath.Join(dir, specs))
	}); ok {
		f.debug("using specs root", "root", root)
		return root, true
	}
	return "", false
}

// LatestTasksFile returns the task file inside the feature directory with the
// highest numeric prefix under root's specs directory.
func (f *Finder) LatestTasksFile(root string) (string, error) {
	specs := filepath.Join(root, f.specsDir())
	if !isDir(specs) {
		return "", &Error{Kind: NoSpecsDir, Path: root, Name: f.specsDir()}
	}
	entries, err := os.ReadDir(specs)
	if err != nil {
		return "", fmt.Errorf("read specs directory: %w", err)
	}

	var best featureDir
	found := false
	for _, e := range entries {
		if !e.IsDir() && !isDir(filepath.Join(specs, e.Name())) {
			continue
		}
		fd, ok := parseFeatureDir(e.Name())
		if !ok {
			continue
		}
		if !found || fd.newer(best) {
			best = fd
			found = true
		}
	}
	if !found {
		return "", &Error{Kind: NoFeatureDirs, Path: specs}
	}

	dir := filepath.Join(specs, best.name)
	path := filepath.Join(dir, f.tasksFile())
	if _, err := os.Stat(path); err != nil {
		return "", &Error{Kind: NoTasksFile, Path: dir, Name: f.tasksFile()}
	}
	f.debug("selected feature", "dir", best.name, "tasks", path)
	return path, nil
}

// GitTopLevel runs "git rev-parse --show-toplevel" in dir. Any failure,
// including a missing git binary or the timeout elapsing, means no answer.
func GitTopLevel(ctx context.Context, dir string, timeout time.Duration) (string, bool) {
	if _, err := exec.LookPath("git"); err != nil {
		return "", false
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", false
	}
	return filepath.FromSlash(root), true
}

// walkUp checks dir and up to levels-1 of its ancestors, returning the first
// directory for which match is true.
func walkUp(dir string, levels int, match func(string) bool) (string, bool) {
	for i := 0; i < levels; i++ {
		if match(dir) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}

func hasVCSMarker(dir string) bool {
	for _, marker := range vcsMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
