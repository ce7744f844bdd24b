package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/dorisurararara-crypto/auto-blog/internal/ports"
)

const commandTimeout = 2 * time.Minute

// GitDeployer publishes the working tree by committing and pushing.
// Hosting rebuilds the site on push, so this is the deployment
// trigger. Callers treat failures as non-fatal.
type GitDeployer struct {
	workDir string
	branch  string
	logger  *slog.Logger
}

var _ ports.Deployer = (*GitDeployer)(nil)

// NewGitDeployer operates on the repository at workDir.
func NewGitDeployer(workDir, branch string, logger *slog.Logger) *GitDeployer {
	if branch == "" {
		branch = "main"
	}
	return &GitDeployer{workDir: workDir, branch: branch, logger: logger}
}

// Publish stages everything, commits with the given message, and
// pushes. A commit with nothing to commit is not an error.
func (d *GitDeployer) Publish(ctx context.Context, message string) error {
	if err := d.run(ctx, "add", "-A"); err != nil {
		return err
	}

	if err := d.run(ctx, "commit", "-m", message); err != nil {
		if strings.Contains(err.Error(), "nothing to commit") {
			d.debug("no changes to commit")
			return nil
		}
		return err
	}

	return d.run(ctx, "push", "origin", d.branch)
}

func (d *GitDeployer) run(ctx context.Context, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = d.workDir

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (d *GitDeployer) debug(msg string, args ...interface{}) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}
