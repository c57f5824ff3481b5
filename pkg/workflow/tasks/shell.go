package tasks

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/genie-oss/genie/pkg/genieerrors"
)

// exit status of useradd and groupadd when the name is already taken
const exitAlreadyExists = 9

// Shell runs a host command.
type Shell interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ShellFunc adapts a function to Shell.
type ShellFunc func(ctx context.Context, name string, args ...string) error

func (f ShellFunc) Run(ctx context.Context, name string, args ...string) error {
	return f(ctx, name, args...)
}

// ExecShell runs commands with os/exec and reports their output on failure.
type ExecShell struct{}

func (ExecShell) Run(ctx context.Context, name string, args ...string) error {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return &CommandError{Command: append([]string{name}, args...), Output: strings.TrimSpace(out.String()), Err: err}
	}
	return nil
}

// CommandError is returned by ExecShell for commands that could not be run
// or exited with a non zero status.
type CommandError struct {
	Command []string
	Output  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Output == "" {
		return strings.Join(e.Command, " ") + ": " + e.Err.Error()
	}
	return strings.Join(e.Command, " ") + ": " + e.Err.Error() + ": " + e.Output
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitCode is the exit status of the command, or -1 if it did not run.
func (e *CommandError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func exitCode(err error) int {
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return -1
}

// Users manages the host accounts jobs run as.
type Users struct {
	shell Shell
	// user creation is serialized across concurrent workflows
	mu sync.Mutex
}

func NewUsers(shell Shell) *Users {
	return &Users{shell: shell}
}

// Ensure creates user, and group if given, unless the user already exists.
// A concurrent creation of the same user is not an error.
func (u *Users) Ensure(ctx context.Context, user, group string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	logger := log.Ctx(ctx).With().Str("User", user).Logger()
	if err := u.shell.Run(ctx, "id", "-u", user); err == nil {
		logger.Debug().Msg("user already exists")
		return nil
	}

	args := []string{"useradd", user}
	if group != "" {
		// fails when the group exists, useradd reports anything else
		if err := u.shell.Run(ctx, "sudo", "groupadd", group); err != nil {
			logger.Debug().Err(err).Str("Group", group).Msg("group not created")
		}
		args = append(args, "-G", group)
	}
	args = append(args, "-M")

	err := u.shell.Run(ctx, "sudo", args...)
	if err != nil && exitCode(err) != exitAlreadyExists {
		return genieerrors.Wrap(err, "could not create user %s", user).
			WithCode(genieerrors.IOError).
			WithComponent(errComponent).
			WithDetail("user", user)
	}
	logger.Info().Msg("user created")
	return nil
}

// Chown recursively gives dir to user.
func (u *Users) Chown(ctx context.Context, dir, user string) error {
	if err := u.shell.Run(ctx, "sudo", "chown", "-R", user, dir); err != nil {
		return genieerrors.Wrap(err, "could not change ownership of %s", dir).
			WithCode(genieerrors.IOError).
			WithComponent(errComponent).
			WithDetail("user", user)
	}
	return nil
}

// MakeGroupWritable adds group write permission to dir.
func (u *Users) MakeGroupWritable(ctx context.Context, dir string) error {
	if err := u.shell.Run(ctx, "sudo", "chmod", "g+w", dir); err != nil {
		return genieerrors.Wrap(err, "could not make %s group writable", dir).
			WithCode(genieerrors.IOError).
			WithComponent(errComponent)
	}
	return nil
}
