// Package remote shares the record tables and media files with a remote
// repository so several devices work on the same data.
package remote

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"go.uber.org/zap"
)

// Syncer fetches the latest snapshot at startup and publishes every change.
type Syncer interface {
	Pull(ctx context.Context) error
	Push(ctx context.Context, files []string, message string) error
}

// Noop is used when sync is disabled.
type Noop struct{}

func (Noop) Pull(context.Context) error                   { return nil }
func (Noop) Push(context.Context, []string, string) error { return nil }

// GitOptions configures a Git syncer.
type GitOptions struct {
	Dir       string
	Remote    string
	Branch    string
	User      string
	Token     string
	UserName  string
	UserEmail string
}

// Git commits changed files to a local clone and pushes them to a remote branch.
type Git struct {
	opts   GitOptions
	logger *zap.Logger
}

// NewGit creates a Git syncer working in the clone at opts.Dir.
func NewGit(opts GitOptions, logger *zap.Logger) *Git {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Git{opts: opts, logger: logger}
}

func (g *Git) auth() *http.BasicAuth {
	if g.opts.Token == "" {
		return nil
	}
	return &http.BasicAuth{Username: g.opts.User, Password: g.opts.Token}
}

// Pull fast-forwards the clone to the remote branch.
func (g *Git) Pull(ctx context.Context) error {
	repo, err := git.PlainOpen(g.opts.Dir)
	if err != nil {
		return fmt.Errorf("failed to open repository %s: %w", g.opts.Dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	opts := &git.PullOptions{
		RemoteName:    g.opts.Remote,
		ReferenceName: plumbing.NewBranchReferenceName(g.opts.Branch),
		SingleBranch:  true,
	}
	if auth := g.auth(); auth != nil {
		opts.Auth = auth
	}
	err = wt.PullContext(ctx, opts)
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		g.logger.Debug("remote already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("pull from %s failed: %w", g.opts.Remote, err)
	}
	g.logger.Info("pulled latest data", zap.String("branch", g.opts.Branch))
	return nil
}

// Push stages files, commits them with message and pushes the branch.
func (g *Git) Push(ctx context.Context, files []string, message string) error {
	repo, err := git.PlainOpen(g.opts.Dir)
	if err != nil {
		return fmt.Errorf("failed to open repository %s: %w", g.opts.Dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	for _, f := range files {
		rel, err := g.relative(f)
		if err != nil {
			return err
		}
		if _, err := wt.Add(rel); err != nil {
			return fmt.Errorf("failed to stage %s: %w", rel, err)
		}
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  g.opts.UserName,
			Email: g.opts.UserEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}

	ref := plumbing.NewBranchReferenceName(g.opts.Branch)
	opts := &git.PushOptions{
		RemoteName: g.opts.Remote,
		RefSpecs:   []config.RefSpec{config.RefSpec(ref + ":" + ref)},
	}
	if auth := g.auth(); auth != nil {
		opts.Auth = auth
	}
	err = repo.PushContext(ctx, opts)
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("push to %s failed: %w", g.opts.Remote, err)
	}
	g.logger.Info("pushed changes", zap.String("commit", hash.String()), zap.Int("files", len(files)))
	return nil
}

// relative converts a file path to a slash-separated path inside the clone.
func (g *Git) relative(path string) (string, error) {
	root, err := filepath.Abs(g.opts.Dir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the repository %s", path, g.opts.Dir)
	}
	return filepath.ToSlash(rel), nil
}
