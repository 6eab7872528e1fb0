// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container detects a docker or podman runtime and runs one-shot
// containers that read from stdin and write to stdout. The containerized
// markitdown backend uses it when the markitdown CLI is not installed.
package container

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/pdiddy/doc-archiver/internal/command"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Runtime provides container operations.
type Runtime interface {
	// Name returns the runtime binary ("docker" or "podman").
	Name() string

	// Available reports whether the binary is on PATH and answers "info".
	Available() bool

	// ImageExists returns nil when image is present locally.
	ImageExists(image string) error

	// Run starts image with args appended to the container command,
	// piping stdin and stdout. The container is removed on exit.
	Run(image string, args []string, stdin io.Reader, stdout io.Writer) error
}

// runtime implements Runtime for docker and podman. They differ only in
// binary name and the subcommand that checks for a local image.
type runtime struct {
	bin           string
	imageCheckCmd []string
	exec          command.Executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available() bool {
	if !command.Available(r.exec, r.bin) {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

func (r *runtime) ImageExists(image string) error {
	args := make([]string, 0, len(r.imageCheckCmd)+1)
	args = append(args, r.imageCheckCmd...)
	args = append(args, image)

	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Run(image string, args []string, stdin io.Reader, stdout io.Writer) error {
	full := append([]string{"run", "--rm", "-i", image}, args...)
	if err := r.exec.RunPiped(r.bin, full, stdin, stdout); err != nil {
		return fmt.Errorf("running %s container %s: %w", r.bin, image, err)
	}
	return nil
}

func newDockerRuntime(exec command.Executor) *runtime {
	return &runtime{
		bin:           binDocker,
		imageCheckCmd: []string{"image", "inspect"},
		exec:          exec,
	}
}

func newPodmanRuntime(exec command.Executor) *runtime {
	return &runtime{
		bin:           binPodman,
		imageCheckCmd: []string{"image", "exists"},
		exec:          exec,
	}
}

// Detect tries docker first and falls back to podman, running both through exec.
func Detect(exec command.Executor) (Runtime, error) {
	for _, rt := range []*runtime{newDockerRuntime(exec), newPodmanRuntime(exec)} {
		if rt.Available() {
			slog.Debug("container runtime detected", "runtime", rt.bin)
			return rt, nil
		}
	}
	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}
