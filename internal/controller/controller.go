package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dyluth/drafter/pkg/workspace"
)

// Role gates mutation. Viewers get the full read surface; every mutating
// command is silently rejected as a no-op.
type Role string

const (
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Generator is the external collaborator that produces and refines artifact
// content. The controller treats it as opaque: a call either returns an
// update matching the requested slot's shape or fails. No retry policy is
// imposed here - a failed call surfaces immediately and the user re-triggers
// manually.
type Generator interface {
	// GeneratePhase produces the artifact update for entering the target
	// phase, given the current project.
	GeneratePhase(ctx context.Context, phase workspace.Phase, project workspace.Project) (workspace.Update, error)

	// RefineSection reworks one existing artifact from user feedback.
	RefineSection(ctx context.Context, req RefineRequest) (workspace.Update, error)

	// EstimateCost produces the cost-estimate side artifact. Sequenced by the
	// controller ahead of the architecture generation.
	EstimateCost(ctx context.Context, project workspace.Project) (*workspace.CostEstimate, error)
}

// RefineRequest carries everything the collaborator needs to refine one
// section: the section name, the resolved artifact slot, the full project
// (from which the current artifact value is read), and the user's feedback.
type RefineRequest struct {
	Section  string
	Key      workspace.ArtifactKey
	Project  workspace.Project
	Feedback string
}

// Gateway persists the (phase, project) snapshot. Satisfied by
// *workspace.Client.
type Gateway interface {
	SaveSnapshot(ctx context.Context, snap *workspace.Snapshot) error
	LoadSnapshot(ctx context.Context) (*workspace.Snapshot, error)
}

// Controller orchestrates the generation/refinement lifecycle against one
// shared snapshot. All mutation funnels through it: commands apply
// whole-slot updates under one lock and persist the result, so readers see
// either the pre- or post-update snapshot, never a torn intermediate.
//
// Two independent busy flags (generation, refinement) are exposed for
// callers to suppress starting a second concurrent operation of the same
// kind. The controller does not queue or reject overlapping calls itself:
// overlap is undefined ordering (last to resolve wins on the shared slot)
// and must be prevented at the triggering surface.
type Controller struct {
	mu    sync.Mutex
	snap  workspace.Snapshot
	graph *workspace.Graph
	gen   Generator
	gw    Gateway
	role  Role

	generating atomic.Bool
	refining   atomic.Bool

	errMu     sync.Mutex
	lastError string

	// cancelGen is the cancellation handle of the in-flight generation
	// request. Nothing triggers it today - navigating away does not abort a
	// running call - but the handle is the extension point for timeouts.
	cancelMu  sync.Mutex
	cancelGen context.CancelFunc
}

// New creates a controller over an empty default snapshot. Call Restore to
// load persisted state before dispatching commands.
func New(graph *workspace.Graph, gen Generator, gw Gateway, role Role) *Controller {
	return &Controller{
		snap:  *workspace.DefaultSnapshot(),
		graph: graph,
		gen:   gen,
		gw:    gw,
		role:  role,
	}
}

// Restore loads the persisted snapshot. A corrupt or absent blob restores
// the default empty project; only transport failures are returned.
func (c *Controller) Restore(ctx context.Context) error {
	snap, err := c.gw.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore snapshot: %w", err)
	}

	c.mu.Lock()
	c.snap = *snap
	c.mu.Unlock()

	if !c.graph.Contains(snap.CurrentPhase) {
		// The stored phase can fall outside the graph when the optional
		// knowledge base phase is disabled after use. Snap back to the start.
		c.mu.Lock()
		c.snap.CurrentPhase = c.graph.First()
		c.mu.Unlock()
	}

	return nil
}

// Snapshot returns a copy of the current (phase, project) pair.
func (c *Controller) Snapshot() workspace.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// CurrentPhase returns the phase the workflow is on.
func (c *Controller) CurrentPhase() workspace.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap.CurrentPhase
}

// Project returns a copy of the project aggregate.
func (c *Controller) Project() workspace.Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap.ProjectData
}

// Unlocked computes the currently reachable phases.
func (c *Controller) Unlocked() map[workspace.Phase]bool {
	project := c.Project()
	return c.graph.Unlocked(&project)
}

// Graph returns the fixed phase ordering for this project.
func (c *Controller) Graph() *workspace.Graph {
	return c.graph
}

// Busy reports the two independent busy flags: primary generation and
// refinement. UI surfaces disable the corresponding triggers while set.
func (c *Controller) Busy() (generating, refining bool) {
	return c.generating.Load(), c.refining.Load()
}

// LastError returns the most recent user-facing failure message, or "".
func (c *Controller) LastError() string {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.lastError
}

// DismissError clears the surfaced failure message.
func (c *Controller) DismissError() {
	c.errMu.Lock()
	c.lastError = ""
	c.errMu.Unlock()
}

func (c *Controller) recordError(msg string) {
	c.errMu.Lock()
	c.lastError = msg
	c.errMu.Unlock()
}

// readOnly reports whether mutating commands must be rejected.
func (c *Controller) readOnly() bool {
	return c.role == RoleViewer
}

// apply merges an update into the snapshot under the lock and persists the
// result. The snapshot is replaced as one atomic assignment.
func (c *Controller) apply(ctx context.Context, u workspace.Update) error {
	c.mu.Lock()
	c.snap.ProjectData = c.snap.ProjectData.Apply(u)
	snap := c.snap
	c.mu.Unlock()

	return c.persist(ctx, &snap)
}

func (c *Controller) persist(ctx context.Context, snap *workspace.Snapshot) error {
	if err := c.gw.SaveSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return nil
}

// runPhaseGenerator executes exactly one produce-an-artifact operation and
// reconciles its outcome: enter busy state, invoke the external call, merge
// the update and advance to the target phase on success, surface one
// phase-named message and leave everything untouched on failure. Leaving
// busy state is unconditional cleanup.
func (c *Controller) runPhaseGenerator(ctx context.Context, target workspace.Phase, produce func(context.Context) (workspace.Update, error)) error {
	c.generating.Store(true)
	defer c.generating.Store(false)

	genCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.cancelMu.Lock()
	c.cancelGen = cancel
	c.cancelMu.Unlock()

	started := time.Now()
	update, err := produce(genCtx)
	if err != nil {
		genErr := &GenerationError{Phase: target, Cause: err}
		c.recordError(genErr.Error())
		c.logEvent("generation_failed", map[string]interface{}{
			"phase":      string(target),
			"error":      err.Error(),
			"latency_ms": time.Since(started).Milliseconds(),
		})
		return genErr
	}

	c.mu.Lock()
	c.snap.ProjectData = c.snap.ProjectData.Apply(update)
	c.snap.CurrentPhase = target
	snap := c.snap
	c.mu.Unlock()

	c.logEvent("generation_complete", map[string]interface{}{
		"phase":      string(target),
		"latency_ms": time.Since(started).Milliseconds(),
	})

	return c.persist(ctx, &snap)
}

// logEvent logs a structured event in JSON format.
func (c *Controller) logEvent(eventType string, data map[string]interface{}) {
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	data["level"] = "info"
	data["component"] = "controller"
	data["event_type"] = eventType

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("[ERROR] Failed to marshal log event: %v", err)
		return
	}

	log.Println(string(jsonData))
}
