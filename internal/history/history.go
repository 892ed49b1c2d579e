// Package history keeps local clones of remote repositories and counts the
// commits reachable from their HEAD.
package history

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sirupsen/logrus"

	"github.com/stahnma/gh-repostats/internal/cache"
	ghub "github.com/stahnma/gh-repostats/internal/github"
)

var (
	// ErrCloneFailed is returned when a missing working tree could not be cloned.
	ErrCloneFailed = errors.New("clone failed")
	// ErrNotRepository is returned when an existing directory is not a git working tree.
	ErrNotRepository = errors.New("not a git repository")
)

// Store places clones under Root, one directory per repository name.
// Directories are never removed.
type Store struct {
	Root   string
	Host   string
	Cache  *cache.Cache
	Logger logrus.FieldLogger

	// Progress receives clone progress output when set.
	Progress io.Writer
}

// Checkout is an opened working tree. Root is the top of the working tree
// that was found, which is an ancestor of Dir when Dir holds no repository
// of its own.
type Checkout struct {
	Repo   *git.Repository
	Dir    string
	Root   string
	Reused bool
}

// Dir returns the working tree directory for id.
func (s *Store) Dir(id ghub.Identity) string {
	return filepath.Join(s.Root, id.Name)
}

// CloneURL returns the https clone URL for id.
func (s *Store) CloneURL(id ghub.Identity) string {
	return fmt.Sprintf("https://%s/%s/%s.git", s.Host, id.Owner, id.Name)
}

// Exists reports whether the working tree directory for id is present.
func (s *Store) Exists(id ghub.Identity) bool {
	_, err := os.Stat(s.Dir(id))
	return err == nil
}

// Open reuses the working tree for id when its directory exists and clones
// full history into it otherwise. Reuse never touches the network.
func (s *Store) Open(ctx context.Context, id ghub.Identity) (*Checkout, error) {
	dir := s.Dir(id)

	if s.Exists(id) {
		s.logger().WithField("dir", dir).Debug("reusing local clone")
		repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrNotRepository, dir, err)
		}
		co := &Checkout{Repo: repo, Dir: dir, Root: worktreeRoot(repo, dir), Reused: true}
		if !samePath(co.Root, dir) {
			s.logger().WithFields(logrus.Fields{"dir": dir, "root": co.Root}).
				Debug("warning: clone directory has no repository of its own, counting commits of the enclosing repository")
		}
		return co, nil
	}

	url := s.CloneURL(id)
	s.logger().WithFields(logrus.Fields{"url": url, "dir": dir}).Debug("cloning repository")
	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:      url,
		Progress: s.Progress,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCloneFailed, url, err)
	}
	return &Checkout{Repo: repo, Dir: dir, Root: dir}, nil
}

// CountCommits returns the number of commits reachable from HEAD. A
// repository without commits counts zero.
func (s *Store) CountCommits(co *Checkout) (int, error) {
	head, err := co.Repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("resolving HEAD in %s: %w", co.Dir, err)
	}

	cacheKey := "commits:" + head.Hash().String()
	if s.Cache != nil {
		if val, found := s.Cache.Get(cacheKey); found {
			s.logger().Debugf("Cache hit for key: %s", cacheKey)
			if n, ok := val.(int); ok {
				return n, nil
			}
		}
		s.logger().Debugf("Cache miss for key: %s", cacheKey)
	}

	iter, err := co.Repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return 0, fmt.Errorf("reading log in %s: %w", co.Dir, err)
	}
	defer iter.Close()

	count := 0
	err = iter.ForEach(func(*object.Commit) error {
		count++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walking commits in %s: %w", co.Dir, err)
	}

	if s.Cache != nil {
		s.Cache.Set(cacheKey, count)
	}
	return count, nil
}

// worktreeRoot returns the working tree top of repo, or dir for bare repositories.
func worktreeRoot(repo *git.Repository, dir string) string {
	wt, err := repo.Worktree()
	if err != nil {
		return dir
	}
	return wt.Filesystem.Root()
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func (s *Store) logger() logrus.FieldLogger {
	if s.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return s.Logger
}
