// Package genexec runs the external generation collaborator as a subprocess.
// The configured command receives one request JSON on stdin and must write a
// single artifact update JSON to stdout. Anything else - non-zero exit,
// timeout, oversized or unparseable output - is a generation failure that
// the controller surfaces as one user-facing message.
package genexec

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"time"

	"github.com/dyluth/drafter/internal/controller"
	"github.com/dyluth/drafter/pkg/workspace"
)

const (
	// defaultTimeout is the maximum time a generator command can run before
	// being killed.
	defaultTimeout = 5 * time.Minute

	// maxOutputSize is the maximum number of bytes read from the command's
	// stdout/stderr (10MB).
	maxOutputSize = 10 * 1024 * 1024

	// pipeWaitDelay bounds how long Wait keeps the I/O pipes open after the
	// command exits or times out. Without it, a generator that spawns a
	// long-lived child inheriting stdout blocks Wait for the child's whole
	// lifetime, holding the busy flag with it.
	pipeWaitDelay = 1 * time.Second
)

// Request is the JSON fed to the generator command on stdin.
type Request struct {
	Operation   string            `json:"operation"` // "generate", "refine", or "estimate_cost"
	Phase       string            `json:"phase,omitempty"`
	Section     string            `json:"section,omitempty"`
	ArtifactKey string            `json:"artifact_key,omitempty"`
	Feedback    string            `json:"feedback,omitempty"`
	Project     workspace.Project `json:"project"`
}

// CommandGenerator implements controller.Generator by invoking a configured
// command per operation.
type CommandGenerator struct {
	command []string
	timeout time.Duration
}

// New creates a CommandGenerator. A non-positive timeout selects the default.
func New(command []string, timeout time.Duration) (*CommandGenerator, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("generator command cannot be empty")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &CommandGenerator{command: command, timeout: timeout}, nil
}

// GeneratePhase invokes the command for a phase generation.
func (g *CommandGenerator) GeneratePhase(ctx context.Context, phase workspace.Phase, project workspace.Project) (workspace.Update, error) {
	return g.run(ctx, &Request{
		Operation: "generate",
		Phase:     string(phase),
		Project:   project,
	})
}

// RefineSection invokes the command for a section refinement.
func (g *CommandGenerator) RefineSection(ctx context.Context, req controller.RefineRequest) (workspace.Update, error) {
	return g.run(ctx, &Request{
		Operation:   "refine",
		Section:     req.Section,
		ArtifactKey: string(req.Key),
		Feedback:    req.Feedback,
		Project:     req.Project,
	})
}

// EstimateCost invokes the command for the cost-estimate side artifact.
// The command must return an update whose cost_estimate field is set.
func (g *CommandGenerator) EstimateCost(ctx context.Context, project workspace.Project) (*workspace.CostEstimate, error) {
	update, err := g.run(ctx, &Request{
		Operation: "estimate_cost",
		Project:   project,
	})
	if err != nil {
		return nil, err
	}
	if update.CostEstimate == nil {
		return nil, fmt.Errorf("generator returned no cost estimate")
	}
	return update.CostEstimate, nil
}

// run executes the command once: request JSON on stdin, update JSON expected
// on stdout. Returns an error on any failure mode; partial output is never
// merged.
func (g *CommandGenerator) run(ctx context.Context, req *Request) (workspace.Update, error) {
	inputJSON, err := json.Marshal(req)
	if err != nil {
		return workspace.Update{}, fmt.Errorf("failed to marshal generator request: %w", err)
	}

	execCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, g.command[0], g.command[1:]...)
	cmd.WaitDelay = pipeWaitDelay

	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		return workspace.Update{}, fmt.Errorf("failed to create stdin pipe: %w", err)
	}

	stdoutBuf := &bytes.Buffer{}
	stderrBuf := &bytes.Buffer{}
	cmd.Stdout = &limitedWriter{w: stdoutBuf, limit: maxOutputSize}
	cmd.Stderr = &limitedWriter{w: stderrBuf, limit: maxOutputSize}

	started := time.Now()
	if err := cmd.Start(); err != nil {
		return workspace.Update{}, fmt.Errorf("failed to start generator command: %w", err)
	}

	if _, err := stdinPipe.Write(inputJSON); err != nil {
		stdinPipe.Close()
		cmd.Wait()
		return workspace.Update{}, fmt.Errorf("failed to write generator input: %w", err)
	}
	stdinPipe.Close()

	err = cmd.Wait()
	duration := time.Since(started)

	if execCtx.Err() == context.DeadlineExceeded {
		return workspace.Update{}, fmt.Errorf("generator timed out after %v", g.timeout)
	}
	if errors.Is(err, exec.ErrWaitDelay) {
		// The command itself exited cleanly; only an orphaned child is still
		// holding the pipes. Its output is complete.
		err = nil
	}
	if err != nil {
		log.Printf("[ERROR] Generator command failed: operation=%s duration=%s stderr=%s",
			req.Operation, duration, truncate(stderrBuf.String(), 200))
		return workspace.Update{}, fmt.Errorf("generator command failed: %w", err)
	}

	log.Printf("[INFO] Generator command completed: operation=%s duration=%s", req.Operation, duration)

	var update workspace.Update
	if err := json.Unmarshal(stdoutBuf.Bytes(), &update); err != nil {
		// A malformed artifact fails closed, identically to a failed call.
		return workspace.Update{}, fmt.Errorf("failed to parse generator output: %w", err)
	}

	return update, nil
}

// limitedWriter caps how many bytes are written through to the underlying
// writer; everything past the limit is dropped. It always reports the full
// input length as written - a short count would make io.Copy inside exec
// fail the whole command with ErrShortWrite instead of truncating.
type limitedWriter struct {
	w       io.Writer
	limit   int
	written int
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	if lw.written >= lw.limit {
		return len(p), nil
	}
	chunk := p
	if lw.written+len(chunk) > lw.limit {
		chunk = chunk[:lw.limit-lw.written]
	}
	n, err := lw.w.Write(chunk)
	lw.written += n
	if err != nil {
		return n, err
	}
	return len(p), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
