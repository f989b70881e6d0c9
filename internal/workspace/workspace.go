// Package workspace decides which folders make up the open workspace.
package workspace

import (
	"errors"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// FileURI turns a local path into a file:// URI.
func FileURI(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// RepoRoot returns the root of the git worktree containing path.
func RepoRoot(path string) (string, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	return wt.Filesystem.Root(), nil
}

// Roots returns the workspace root URIs. Explicit entries are used as given
// when they already carry a scheme, and converted from paths otherwise. With
// no explicit entries the git worktree around cwd, if any, is the workspace.
// An empty result means no workspace is open.
func Roots(explicit []string, cwd string, logger *slog.Logger) []string {
	if len(explicit) > 0 {
		roots := make([]string, 0, len(explicit))
		for _, e := range explicit {
			if strings.Contains(e, "://") {
				roots = append(roots, e)
				continue
			}
			abs := e
			if !filepath.IsAbs(abs) {
				abs = filepath.Join(cwd, e)
			}
			roots = append(roots, FileURI(filepath.Clean(abs)))
		}
		return roots
	}

	root, err := RepoRoot(cwd)
	if err != nil {
		if !errors.Is(err, git.ErrRepositoryNotExists) {
			logger.Debug("workspace_discovery_failed", slog.String("cwd", cwd), slog.String("error", err.Error()))
		}
		return nil
	}
	return []string{FileURI(root)}
}
