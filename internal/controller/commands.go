package controller

import (
	"context"
	"time"

	"github.com/dyluth/drafter/pkg/workspace"
)

// Command surface exposed to the CLI (and any future UI). Each command
// either succeeds silently - state updated and persisted - or returns a
// user-visible error. Mutating commands issued by a viewer are silently
// rejected as no-ops.

// SubmitIdea records the initial idea fields and runs the brainstorm
// generator, landing on the brainstorm phase on success.
func (c *Controller) SubmitIdea(ctx context.Context, idea, projectType, constraints string) error {
	if c.readOnly() {
		return nil
	}

	if err := c.apply(ctx, workspace.Update{
		InitialIdea: &idea,
		ProjectType: &projectType,
		Constraints: &constraints,
	}); err != nil {
		return err
	}

	return c.runPhaseGenerator(ctx, workspace.PhaseBrainstorm, func(genCtx context.Context) (workspace.Update, error) {
		return c.gen.GeneratePhase(genCtx, workspace.PhaseBrainstorm, c.Project())
	})
}

// AdvancePhase generates the artifact for the next phase in the fixed
// ordering and moves there on success. Already being on the last phase is a
// no-op, not an error.
func (c *Controller) AdvancePhase(ctx context.Context) error {
	if c.readOnly() {
		return nil
	}

	current := c.CurrentPhase()
	target := c.graph.Advance(current)
	if target == current {
		return nil
	}

	return c.runPhaseGenerator(ctx, target, c.produceFor(target))
}

// produceFor builds the produce closure for a target phase. The architecture
// target is special: the cost-estimate side call is sequenced first and
// either failure fails the whole operation, so nothing merges partially.
func (c *Controller) produceFor(target workspace.Phase) func(context.Context) (workspace.Update, error) {
	if target == workspace.PhaseArchitecture {
		return func(genCtx context.Context) (workspace.Update, error) {
			project := c.Project()

			cost, err := c.gen.EstimateCost(genCtx, project)
			if err != nil {
				return workspace.Update{}, err
			}

			update, err := c.gen.GeneratePhase(genCtx, target, project)
			if err != nil {
				return workspace.Update{}, err
			}

			update.CostEstimate = cost
			return update, nil
		}
	}

	return func(genCtx context.Context) (workspace.Update, error) {
		update, err := c.gen.GeneratePhase(genCtx, target, c.Project())
		if err != nil {
			return workspace.Update{}, err
		}
		if update.PlanPhases != nil {
			update.PlanPhases = workspace.NormalizePlan(update.PlanPhases)
		}
		return update, nil
	}
}

// NavigateTo moves to an already-unlocked phase without generating anything.
// Targeting a locked or unknown phase is a caller error, surfaced here at
// the boundary - the phase graph itself trusts its caller.
func (c *Controller) NavigateTo(ctx context.Context, target workspace.Phase) error {
	if !c.graph.Contains(target) {
		return &PhaseLockedError{Phase: target}
	}

	project := c.Project()
	if !c.graph.Unlocked(&project)[target] {
		return &PhaseLockedError{Phase: target}
	}

	c.mu.Lock()
	c.snap.CurrentPhase = target
	snap := c.snap
	c.mu.Unlock()

	return c.persist(ctx, &snap)
}

// Refine reworks one artifact section from user feedback, replacing that
// slot wholesale on success and leaving prior content untouched on failure.
// Research is special-cased: newly discovered citations are appended to the
// existing list while the summary is replaced.
func (c *Controller) Refine(ctx context.Context, section, feedback string) error {
	if c.readOnly() {
		return nil
	}

	key, err := workspace.ResolveSectionKey(section)
	if err != nil {
		refErr := &RefineError{Section: section, Cause: err}
		c.recordError(refErr.Error())
		return refErr
	}

	c.refining.Store(true)
	defer c.refining.Store(false)

	project := c.Project()
	update, err := c.gen.RefineSection(ctx, RefineRequest{
		Section:  section,
		Key:      key,
		Project:  project,
		Feedback: feedback,
	})
	if err != nil {
		refErr := &RefineError{Section: section, Cause: err}
		c.recordError(refErr.Error())
		c.logEvent("refine_failed", map[string]interface{}{
			"section": section,
			"error":   err.Error(),
		})
		return refErr
	}

	if key == workspace.KeyResearch && update.Research != nil && project.Research != nil {
		// The generator reports only newly discovered sources; the existing
		// citation list must survive the summary rewrite.
		merged := make([]workspace.Citation, 0, len(project.Research.Sources)+len(update.Research.Sources))
		merged = append(merged, project.Research.Sources...)
		merged = append(merged, update.Research.Sources...)
		update.Research = &workspace.ResearchReport{
			Summary: update.Research.Summary,
			Sources: merged,
		}
	}
	if update.PlanPhases != nil {
		update.PlanPhases = workspace.NormalizePlan(update.PlanPhases)
	}

	update.ChatHistory = append(append([]workspace.ChatMessage{}, project.ChatHistory...), workspace.ChatMessage{
		Role:     "user",
		Content:  feedback,
		SentAtMs: time.Now().UnixMilli(),
	})

	return c.apply(ctx, update)
}

// UpdateArtifact applies a direct partial edit to the project, replacing
// exactly the named slots.
func (c *Controller) UpdateArtifact(ctx context.Context, u workspace.Update) error {
	if c.readOnly() {
		return nil
	}
	if u.PlanPhases != nil {
		u.PlanPhases = workspace.NormalizePlan(u.PlanPhases)
	}
	return c.apply(ctx, u)
}

// InsertNode appends a node to the folder at parentPath in the file tree.
// A parentPath that does not resolve to a folder is a silent no-op.
func (c *Controller) InsertNode(ctx context.Context, parentPath []string, node workspace.FileNode) error {
	if c.readOnly() {
		return nil
	}
	return c.mutateTree(ctx, func(tree *workspace.FileTree) *workspace.FileTree {
		return tree.Insert(parentPath, node)
	})
}

// RemoveNode deletes the node (and subtree) at path. Missing paths are a
// silent no-op.
func (c *Controller) RemoveNode(ctx context.Context, path []string) error {
	if c.readOnly() {
		return nil
	}
	return c.mutateTree(ctx, func(tree *workspace.FileTree) *workspace.FileTree {
		return tree.Remove(path)
	})
}

// SetFileContent replaces the content of the file node at path. Folders and
// missing paths are a silent no-op.
func (c *Controller) SetFileContent(ctx context.Context, path []string, text string) error {
	if c.readOnly() {
		return nil
	}
	return c.mutateTree(ctx, func(tree *workspace.FileTree) *workspace.FileTree {
		return tree.SetContent(path, text)
	})
}

// mutateTree runs a pure tree operation against the current file tree and
// replaces the artifact slot with the result. The returned tree is the
// single source of truth - the operation never mutates resolved nodes in
// place.
func (c *Controller) mutateTree(ctx context.Context, op func(*workspace.FileTree) *workspace.FileTree) error {
	project := c.Project()

	tree := project.FileTree
	if tree == nil {
		tree = workspace.NewFileTree()
	}

	next := op(tree)
	if next == tree {
		// Path miss: expected during ordinary editing, never surfaced.
		return nil
	}

	return c.apply(ctx, workspace.Update{FileTree: next})
}

// FinalizePlan derives the executable task board from the plan, exactly
// once. Finalizing with no plan or with an existing board is an error; the
// board must never be silently regenerated.
func (c *Controller) FinalizePlan(ctx context.Context) error {
	if c.readOnly() {
		return nil
	}

	project := c.Project()
	if project.PlanPhases == nil {
		return ErrNoPlan
	}
	if project.Tasks != nil {
		return ErrBoardExists
	}

	tasks := workspace.DeriveTasks(project.PlanPhases)

	c.mu.Lock()
	c.snap.ProjectData = c.snap.ProjectData.Apply(workspace.Update{Tasks: tasks})
	if c.graph.Contains(workspace.PhaseWorkspace) {
		c.snap.CurrentPhase = workspace.PhaseWorkspace
	}
	snap := c.snap
	c.mu.Unlock()

	c.logEvent("plan_finalized", map[string]interface{}{
		"phases": len(project.PlanPhases),
		"tasks":  len(tasks),
	})

	return c.persist(ctx, &snap)
}

// RegenerateBoard is the explicit action that re-derives the task board from
// the current plan, discarding all board progress.
func (c *Controller) RegenerateBoard(ctx context.Context) error {
	if c.readOnly() {
		return nil
	}

	project := c.Project()
	if project.PlanPhases == nil {
		return ErrNoPlan
	}

	return c.apply(ctx, workspace.Update{Tasks: workspace.DeriveTasks(project.PlanPhases)})
}

// MoveTask sets the status of one board task. Unknown ids are a no-op.
func (c *Controller) MoveTask(ctx context.Context, taskID string, status workspace.TaskStatus) error {
	if c.readOnly() {
		return nil
	}

	project := c.Project()
	if project.Tasks == nil {
		return nil
	}

	moved := workspace.MoveTask(project.Tasks, taskID, status)
	return c.apply(ctx, workspace.Update{Tasks: moved})
}

// ToggleChecklistItem flips one checklist item's completed flag.
func (c *Controller) ToggleChecklistItem(ctx context.Context, taskID, itemID string) error {
	if c.readOnly() {
		return nil
	}

	project := c.Project()
	if project.Tasks == nil {
		return nil
	}

	toggled := workspace.ToggleChecklistItem(project.Tasks, taskID, itemID)
	return c.apply(ctx, workspace.Update{Tasks: toggled})
}

// AddManualTask creates a board task outside any derivation.
func (c *Controller) AddManualTask(ctx context.Context, phase, description string, priority workspace.Priority) error {
	if c.readOnly() {
		return nil
	}

	project := c.Project()
	tasks := make([]workspace.Task, 0, len(project.Tasks)+1)
	tasks = append(tasks, project.Tasks...)
	tasks = append(tasks, workspace.NewManualTask(phase, description, priority))

	return c.apply(ctx, workspace.Update{Tasks: tasks})
}

// ResetProject discards all state: empty project, first phase.
func (c *Controller) ResetProject(ctx context.Context) error {
	if c.readOnly() {
		return nil
	}

	c.mu.Lock()
	c.snap = *workspace.DefaultSnapshot()
	snap := c.snap
	c.mu.Unlock()

	c.logEvent("project_reset", map[string]interface{}{})

	return c.persist(ctx, &snap)
}
