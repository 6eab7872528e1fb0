// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package command wraps os/exec behind a small interface so packages that
// shell out to external tools (soffice, markitdown, docker, podman) can be
// tested without those tools installed.
package command

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// Executor runs external programs.
type Executor interface {
	// LookPath resolves file on PATH.
	LookPath(file string) (string, error)

	// RunSilent runs name with args, discarding stdout and stderr.
	RunSilent(name string, args ...string) error

	// RunPiped runs name with args, wiring stdin and stdout. Stderr is
	// captured and attached to the returned error on failure.
	RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error
}

// OS is the production Executor backed by os/exec.
type OS struct{}

func (OS) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (OS) RunSilent(name string, args ...string) error {
	slog.Debug("exec", "cmd", name, "args", strings.Join(args, " "))
	return exec.Command(name, args...).Run()
}

func (OS) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	slog.Debug("exec", "cmd", name, "args", strings.Join(args, " "))
	var stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// Available reports whether file can be found on PATH.
func Available(e Executor, file string) bool {
	_, err := e.LookPath(file)
	return err == nil
}
