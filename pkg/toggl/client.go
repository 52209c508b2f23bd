package toggl

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	log "github.com/sirupsen/logrus"
)

// ErrToolFailure wraps every failed invocation of the external binary:
// non-zero exit, missing executable, or a spawn error. Callers recover
// locally with a cached record set or a fallback message.
var ErrToolFailure = errors.New("toggl command failed")

// Runner executes the external toggl binary and captures its stdout.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// RunnerFunc adapts a plain function to the Runner interface.
type RunnerFunc func(ctx context.Context, args ...string) (string, error)

func (f RunnerFunc) Run(ctx context.Context, args ...string) (string, error) {
	return f(ctx, args...)
}

type execRunner struct {
	path string
}

// NewRunner returns a Runner invoking the toggl binary at path.
func NewRunner(path string) Runner {
	return execRunner{path: path}
}

func (r execRunner) Run(ctx context.Context, args ...string) (string, error) {
	log.Debugf("running subcommand: %s", shellquote.Join(append([]string{r.path}, args...)...))

	cmd := exec.CommandContext(ctx, r.path, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%w: exit code %d: %s",
				ErrToolFailure, exitErr.ExitCode(), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("%w: %v", ErrToolFailure, err)
	}

	return strings.TrimSpace(string(out)), nil
}

// projectRunner prefixes every invocation with the "projects"
// supercommand.
type projectRunner struct {
	inner Runner
}

func (p projectRunner) Run(ctx context.Context, args ...string) (string, error) {
	return p.inner.Run(ctx, append([]string{"projects"}, args...)...)
}

// workspaceRunner appends the workspace selector to every invocation.
type workspaceRunner struct {
	inner Runner
	id    int
}

// WithWorkspace scopes every invocation to the given workspace id.
func WithWorkspace(r Runner, id int) Runner {
	return workspaceRunner{inner: r, id: id}
}

func (w workspaceRunner) Run(ctx context.Context, args ...string) (string, error) {
	return w.inner.Run(ctx, append(args, "--workspace", strconv.Itoa(w.id))...)
}
