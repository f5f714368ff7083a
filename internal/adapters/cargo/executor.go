// Package cargo shells out to the cargo binary for packaging and for
// workspace metadata.
package cargo

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.BuildExecutor by invoking `cargo package`.
type Executor struct {
	logger ports.Logger
	tool   string
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
		tool:   "cargo",
	}
}

// Package runs `cargo package -p <name> --no-verify --all-features
// --allow-dirty` in the package's manifest directory and waits for it to
// exit. The caller holds the manifest transaction open around this call, so
// the dirty-allowance only covers our own edit.
func (e *Executor) Package(
	ctx context.Context,
	pkg *domain.Package,
	meta *domain.WorkspaceMetadata,
) (string, error) {
	args := []string{"package", "-p", pkg.Name, "--no-verify", "--all-features", "--allow-dirty"}

	cmd := exec.CommandContext(ctx, e.tool, args...) //nolint:gosec // fixed tool, package name from metadata
	cmd.Dir = filepath.Dir(pkg.ManifestPath)

	stdout := &logWriter{logger: e.logger, level: "info"}
	// cargo writes packaging progress to stderr, not only errors.
	stderr := &logWriter{logger: e.logger, level: "info"}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	_ = stdout.Close()
	_ = stderr.Close()
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return "", zerr.With(zerr.Wrap(err, domain.ErrBuildFailed.Error()), "exit_code", exitCode)
	}

	// The archive lands at a deterministic location under the shared build
	// output directory.
	archive := filepath.Join(
		meta.TargetDirectory,
		domain.PackageOutputDirName,
		pkg.Name+"-"+pkg.Version+domain.CrateExt,
	)
	return archive, nil
}

// logWriter forwards subprocess output to the logger one line at a time.
type logWriter struct {
	logger ports.Logger
	level  string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if msg == "" {
		return
	}

	if w.level == "info" {
		w.logger.Info(msg)
	} else {
		w.logger.Warn(msg)
	}
}
