package controller

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/drafter/pkg/workspace"
)

// fakeGenerator scripts the external collaborator: each operation returns a
// canned update or error, and records what it was asked for.
type fakeGenerator struct {
	generateUpdate workspace.Update
	generateErr    error
	refineUpdate   workspace.Update
	refineErr      error
	cost           *workspace.CostEstimate
	costErr        error

	generatedPhases []workspace.Phase
	refineRequests  []RefineRequest
	costCalls       int
}

func (f *fakeGenerator) GeneratePhase(ctx context.Context, phase workspace.Phase, project workspace.Project) (workspace.Update, error) {
	f.generatedPhases = append(f.generatedPhases, phase)
	return f.generateUpdate, f.generateErr
}

func (f *fakeGenerator) RefineSection(ctx context.Context, req RefineRequest) (workspace.Update, error) {
	f.refineRequests = append(f.refineRequests, req)
	return f.refineUpdate, f.refineErr
}

func (f *fakeGenerator) EstimateCost(ctx context.Context, project workspace.Project) (*workspace.CostEstimate, error) {
	f.costCalls++
	return f.cost, f.costErr
}

// memGateway is an in-memory Gateway that records every persisted snapshot.
type memGateway struct {
	mu    sync.Mutex
	saved []workspace.Snapshot
	load  *workspace.Snapshot
	err   error
}

func (g *memGateway) SaveSnapshot(ctx context.Context, snap *workspace.Snapshot) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return g.err
	}
	g.saved = append(g.saved, *snap)
	return nil
}

func (g *memGateway) LoadSnapshot(ctx context.Context) (*workspace.Snapshot, error) {
	if g.err != nil {
		return nil, g.err
	}
	if g.load != nil {
		return g.load, nil
	}
	return workspace.DefaultSnapshot(), nil
}

func newTestController(gen *fakeGenerator, gw *memGateway, role Role) *Controller {
	return New(workspace.NewGraph(true), gen, gw, role)
}

func TestRestore(t *testing.T) {
	t.Run("loads the persisted snapshot", func(t *testing.T) {
		gw := &memGateway{load: &workspace.Snapshot{
			CurrentPhase: workspace.PhaseResearch,
			ProjectData:  workspace.Project{Name: "Habitat"},
		}}
		c := newTestController(&fakeGenerator{}, gw, RoleEditor)

		require.NoError(t, c.Restore(context.Background()))
		assert.Equal(t, workspace.PhaseResearch, c.CurrentPhase())
		assert.Equal(t, "Habitat", c.Project().Name)
	})

	t.Run("snaps an out-of-graph phase back to the start", func(t *testing.T) {
		gw := &memGateway{load: &workspace.Snapshot{
			CurrentPhase: workspace.PhaseKnowledgeBase,
		}}
		c := New(workspace.NewGraph(false), &fakeGenerator{}, gw, RoleEditor)

		require.NoError(t, c.Restore(context.Background()))
		assert.Equal(t, workspace.PhaseIdea, c.CurrentPhase())
	})

	t.Run("surfaces transport failures", func(t *testing.T) {
		gw := &memGateway{err: errors.New("connection refused")}
		c := newTestController(&fakeGenerator{}, gw, RoleEditor)

		assert.Error(t, c.Restore(context.Background()))
	})
}

func TestSubmitIdea(t *testing.T) {
	t.Run("records the idea and runs the brainstorm generator", func(t *testing.T) {
		gen := &fakeGenerator{generateUpdate: workspace.Update{
			Brainstorm: &workspace.BrainstormResult{Summary: "streaks"},
		}}
		gw := &memGateway{}
		c := newTestController(gen, gw, RoleEditor)

		err := c.SubmitIdea(context.Background(), "habit tracker", "web-app", "no ads")
		require.NoError(t, err)

		project := c.Project()
		assert.Equal(t, "habit tracker", project.InitialIdea)
		assert.Equal(t, "web-app", project.ProjectType)
		assert.Equal(t, "no ads", project.Constraints)
		assert.Equal(t, "streaks", project.Brainstorm.Summary)
		assert.Equal(t, workspace.PhaseBrainstorm, c.CurrentPhase())
		assert.Equal(t, []workspace.Phase{workspace.PhaseBrainstorm}, gen.generatedPhases)
	})

	t.Run("failure keeps the idea but not the phase", func(t *testing.T) {
		gen := &fakeGenerator{generateErr: errors.New("model overloaded")}
		c := newTestController(gen, &memGateway{}, RoleEditor)

		err := c.SubmitIdea(context.Background(), "habit tracker", "", "")
		require.Error(t, err)
		assert.Equal(t, "Failed to generate Brainstorm: model overloaded", err.Error())
		assert.Equal(t, workspace.PhaseIdea, c.CurrentPhase())
		assert.Equal(t, "habit tracker", c.Project().InitialIdea)
	})
}

func TestAdvancePhase(t *testing.T) {
	t.Run("merges the update and moves to the target", func(t *testing.T) {
		gen := &fakeGenerator{generateUpdate: workspace.Update{
			Brainstorm: &workspace.BrainstormResult{Summary: "streaks"},
		}}
		gw := &memGateway{}
		c := newTestController(gen, gw, RoleEditor)

		require.NoError(t, c.AdvancePhase(context.Background()))
		assert.Equal(t, workspace.PhaseBrainstorm, c.CurrentPhase())
		assert.NotNil(t, c.Project().Brainstorm)
		require.NotEmpty(t, gw.saved)
		assert.Equal(t, workspace.PhaseBrainstorm, gw.saved[len(gw.saved)-1].CurrentPhase)
	})

	t.Run("failure leaves phase and artifacts untouched", func(t *testing.T) {
		gw := &memGateway{load: &workspace.Snapshot{
			CurrentPhase: workspace.PhaseKnowledgeBase,
			ProjectData: workspace.Project{
				Brainstorm: &workspace.BrainstormResult{Summary: "streaks"},
			},
		}}
		gen := &fakeGenerator{generateErr: errors.New("timeout")}
		c := newTestController(gen, gw, RoleEditor)
		require.NoError(t, c.Restore(context.Background()))

		err := c.AdvancePhase(context.Background())
		require.Error(t, err)
		assert.Equal(t, "Failed to generate Research: timeout", err.Error())
		assert.Equal(t, workspace.PhaseKnowledgeBase, c.CurrentPhase())
		assert.Equal(t, "streaks", c.Project().Brainstorm.Summary)
		assert.Equal(t, err.Error(), c.LastError())
	})

	t.Run("last phase is a no-op", func(t *testing.T) {
		gw := &memGateway{load: &workspace.Snapshot{CurrentPhase: workspace.PhaseKickoff}}
		gen := &fakeGenerator{}
		c := newTestController(gen, gw, RoleEditor)
		require.NoError(t, c.Restore(context.Background()))

		require.NoError(t, c.AdvancePhase(context.Background()))
		assert.Empty(t, gen.generatedPhases)
		assert.Equal(t, workspace.PhaseKickoff, c.CurrentPhase())
	})

	t.Run("plan updates are normalized on ingest", func(t *testing.T) {
		gw := &memGateway{load: &workspace.Snapshot{CurrentPhase: workspace.PhaseAgentRules}}
		gen := &fakeGenerator{generateUpdate: workspace.Update{
			PlanPhases: []workspace.PlanPhase{
				{Name: "Setup", Tasks: []workspace.PlanTask{{Description: "Init", Priority: "urgent"}}},
			},
		}}
		c := newTestController(gen, gw, RoleEditor)
		require.NoError(t, c.Restore(context.Background()))

		require.NoError(t, c.AdvancePhase(context.Background()))
		assert.Equal(t, workspace.PhasePlan, c.CurrentPhase())
		assert.Equal(t, workspace.PriorityMedium, c.Project().PlanPhases[0].Tasks[0].Priority)
	})
}

func TestAdvanceIntoArchitecture(t *testing.T) {
	setup := func(gen *fakeGenerator) *Controller {
		gw := &memGateway{load: &workspace.Snapshot{
			CurrentPhase: workspace.PhaseResearch,
			ProjectData: workspace.Project{
				Research: &workspace.ResearchReport{Summary: "findings"},
			},
		}}
		c := newTestController(gen, gw, RoleEditor)
		if err := c.Restore(context.Background()); err != nil {
			panic(err)
		}
		return c
	}

	t.Run("sequences the cost estimate before generation", func(t *testing.T) {
		gen := &fakeGenerator{
			cost: &workspace.CostEstimate{Summary: "small", MonthlyUSD: 42},
			generateUpdate: workspace.Update{
				Architecture: &workspace.Architecture{Overview: "three-tier"},
			},
		}
		c := setup(gen)

		require.NoError(t, c.AdvancePhase(context.Background()))

		project := c.Project()
		assert.Equal(t, workspace.PhaseArchitecture, c.CurrentPhase())
		assert.Equal(t, "three-tier", project.Architecture.Overview)
		assert.Equal(t, 42.0, project.CostEstimate.MonthlyUSD)
		assert.Equal(t, 1, gen.costCalls)
	})

	t.Run("cost estimate failure fails the whole operation", func(t *testing.T) {
		gen := &fakeGenerator{costErr: errors.New("pricing service down")}
		c := setup(gen)

		err := c.AdvancePhase(context.Background())
		require.Error(t, err)
		assert.Equal(t, "Failed to generate Architecture: pricing service down", err.Error())
		assert.Equal(t, workspace.PhaseResearch, c.CurrentPhase())
		assert.Nil(t, c.Project().Architecture)
		assert.Nil(t, c.Project().CostEstimate)
		assert.Empty(t, gen.generatedPhases, "generation must not run after the side call fails")
	})

	t.Run("generation failure discards the cost estimate too", func(t *testing.T) {
		gen := &fakeGenerator{
			cost:        &workspace.CostEstimate{MonthlyUSD: 42},
			generateErr: errors.New("timeout"),
		}
		c := setup(gen)

		err := c.AdvancePhase(context.Background())
		require.Error(t, err)
		assert.Nil(t, c.Project().CostEstimate, "no partial merge on failure")
	})
}

func TestNavigateTo(t *testing.T) {
	gw := &memGateway{load: &workspace.Snapshot{
		CurrentPhase: workspace.PhaseBrainstorm,
		ProjectData: workspace.Project{
			Brainstorm: &workspace.BrainstormResult{Summary: "streaks"},
		},
	}}
	c := newTestController(&fakeGenerator{}, gw, RoleEditor)
	require.NoError(t, c.Restore(context.Background()))

	t.Run("moves to an unlocked phase without generating", func(t *testing.T) {
		require.NoError(t, c.NavigateTo(context.Background(), workspace.PhaseIdea))
		assert.Equal(t, workspace.PhaseIdea, c.CurrentPhase())
	})

	t.Run("rejects a locked phase", func(t *testing.T) {
		err := c.NavigateTo(context.Background(), workspace.PhaseResearch)
		var locked *PhaseLockedError
		require.ErrorAs(t, err, &locked)
		assert.Equal(t, workspace.PhaseResearch, locked.Phase)
	})

	t.Run("rejects an unknown phase", func(t *testing.T) {
		err := c.NavigateTo(context.Background(), workspace.Phase("deploy"))
		assert.Error(t, err)
	})
}

func TestRefine(t *testing.T) {
	t.Run("replaces the resolved slot wholesale", func(t *testing.T) {
		gen := &fakeGenerator{refineUpdate: workspace.Update{
			Schema: &workspace.Schema{Entities: []workspace.Entity{{Name: "habit"}}},
		}}
		c := newTestController(gen, &memGateway{}, RoleEditor)

		require.NoError(t, c.Refine(context.Background(), "Data Model", "add a habit entity"))

		require.Len(t, gen.refineRequests, 1)
		assert.Equal(t, workspace.KeySchema, gen.refineRequests[0].Key)
		assert.Equal(t, "add a habit entity", gen.refineRequests[0].Feedback)
		assert.Equal(t, "habit", c.Project().Schema.Entities[0].Name)
	})

	t.Run("research refinement appends new citations", func(t *testing.T) {
		gw := &memGateway{load: &workspace.Snapshot{
			CurrentPhase: workspace.PhaseResearch,
			ProjectData: workspace.Project{
				Research: &workspace.ResearchReport{
					Summary: "old findings",
					Sources: []workspace.Citation{{Title: "Habitica", URL: "https://habitica.com"}},
				},
			},
		}}
		gen := &fakeGenerator{refineUpdate: workspace.Update{
			Research: &workspace.ResearchReport{
				Summary: "new findings",
				Sources: []workspace.Citation{{Title: "Streaks", URL: "https://streaksapp.com"}},
			},
		}}
		c := newTestController(gen, gw, RoleEditor)
		require.NoError(t, c.Restore(context.Background()))

		require.NoError(t, c.Refine(context.Background(), "Research", "look at iOS apps too"))

		research := c.Project().Research
		assert.Equal(t, "new findings", research.Summary)
		require.Len(t, research.Sources, 2)
		assert.Equal(t, "Habitica", research.Sources[0].Title)
		assert.Equal(t, "Streaks", research.Sources[1].Title)
	})

	t.Run("failure leaves prior content untouched", func(t *testing.T) {
		gw := &memGateway{load: &workspace.Snapshot{
			ProjectData: workspace.Project{
				Schema: &workspace.Schema{Entities: []workspace.Entity{{Name: "habit"}}},
			},
		}}
		gen := &fakeGenerator{refineErr: errors.New("model overloaded")}
		c := newTestController(gen, gw, RoleEditor)
		require.NoError(t, c.Restore(context.Background()))

		err := c.Refine(context.Background(), "Data Model", "rename everything")
		require.Error(t, err)
		assert.Equal(t, "Refining Data Model failed.", err.Error())
		assert.Equal(t, "habit", c.Project().Schema.Entities[0].Name)
		assert.Equal(t, "Refining Data Model failed.", c.LastError())
	})

	t.Run("unresolvable section is an error", func(t *testing.T) {
		gen := &fakeGenerator{}
		c := newTestController(gen, &memGateway{}, RoleEditor)

		err := c.Refine(context.Background(), "Marketing", "make it pop")
		require.Error(t, err)
		assert.Equal(t, "Refining Marketing failed.", err.Error())
		assert.Empty(t, gen.refineRequests)
	})

	t.Run("feedback is appended to the chat history", func(t *testing.T) {
		gen := &fakeGenerator{refineUpdate: workspace.Update{
			Brainstorm: &workspace.BrainstormResult{Summary: "v2"},
		}}
		c := newTestController(gen, &memGateway{}, RoleEditor)

		require.NoError(t, c.Refine(context.Background(), "Brainstorm", "more ideas"))
		require.NoError(t, c.Refine(context.Background(), "Brainstorm", "fewer ideas"))

		history := c.Project().ChatHistory
		require.Len(t, history, 2)
		assert.Equal(t, "user", history[0].Role)
		assert.Equal(t, "more ideas", history[0].Content)
		assert.Equal(t, "fewer ideas", history[1].Content)
	})
}

func TestFinalizePlan(t *testing.T) {
	planSnapshot := func() *workspace.Snapshot {
		return &workspace.Snapshot{
			CurrentPhase: workspace.PhasePlan,
			ProjectData: workspace.Project{
				PlanPhases: []workspace.PlanPhase{
					{Name: "Setup", Tasks: []workspace.PlanTask{
						{Description: "Init repo", Priority: workspace.PriorityHigh},
						{Description: "CI", Priority: "urgent"},
					}},
				},
			},
		}
	}

	t.Run("derives the board and moves to workspace", func(t *testing.T) {
		gw := &memGateway{load: planSnapshot()}
		c := newTestController(&fakeGenerator{}, gw, RoleEditor)
		require.NoError(t, c.Restore(context.Background()))

		require.NoError(t, c.FinalizePlan(context.Background()))

		project := c.Project()
		require.Len(t, project.Tasks, 2)
		assert.Equal(t, "0-0", project.Tasks[0].ID)
		assert.Equal(t, workspace.StatusTodo, project.Tasks[0].Status)
		assert.Equal(t, workspace.PhaseWorkspace, c.CurrentPhase())
	})

	t.Run("no plan is an error", func(t *testing.T) {
		c := newTestController(&fakeGenerator{}, &memGateway{}, RoleEditor)
		assert.ErrorIs(t, c.FinalizePlan(context.Background()), ErrNoPlan)
	})

	t.Run("finalizing twice is an error", func(t *testing.T) {
		gw := &memGateway{load: planSnapshot()}
		c := newTestController(&fakeGenerator{}, gw, RoleEditor)
		require.NoError(t, c.Restore(context.Background()))

		require.NoError(t, c.FinalizePlan(context.Background()))
		assert.ErrorIs(t, c.FinalizePlan(context.Background()), ErrBoardExists)
	})

	t.Run("regenerate re-derives and discards progress", func(t *testing.T) {
		gw := &memGateway{load: planSnapshot()}
		c := newTestController(&fakeGenerator{}, gw, RoleEditor)
		require.NoError(t, c.Restore(context.Background()))
		require.NoError(t, c.FinalizePlan(context.Background()))

		require.NoError(t, c.MoveTask(context.Background(), "0-0", workspace.StatusDone))
		require.NoError(t, c.RegenerateBoard(context.Background()))

		assert.Equal(t, workspace.StatusTodo, c.Project().Tasks[0].Status)
	})

	t.Run("regenerate without a plan is an error", func(t *testing.T) {
		c := newTestController(&fakeGenerator{}, &memGateway{}, RoleEditor)
		assert.ErrorIs(t, c.RegenerateBoard(context.Background()), ErrNoPlan)
	})

	t.Run("a plan with zero tasks still produces a board", func(t *testing.T) {
		gw := &memGateway{load: &workspace.Snapshot{
			CurrentPhase: workspace.PhasePlan,
			ProjectData: workspace.Project{
				PlanPhases: []workspace.PlanPhase{{Name: "Setup"}},
			},
		}}
		c := newTestController(&fakeGenerator{}, gw, RoleEditor)
		require.NoError(t, c.Restore(context.Background()))

		require.NoError(t, c.FinalizePlan(context.Background()))

		project := c.Project()
		require.NotNil(t, project.Tasks, "an empty board is still a present board")
		assert.Empty(t, project.Tasks)
		assert.Equal(t, workspace.PhaseWorkspace, c.CurrentPhase())
		assert.True(t, c.Unlocked()[workspace.PhaseWorkspace])

		assert.ErrorIs(t, c.FinalizePlan(context.Background()), ErrBoardExists)
	})
}

func TestBoardCommands(t *testing.T) {
	boardSnapshot := func() *workspace.Snapshot {
		return &workspace.Snapshot{
			CurrentPhase: workspace.PhaseWorkspace,
			ProjectData: workspace.Project{
				Tasks: []workspace.Task{
					{ID: "0-0", Status: workspace.StatusTodo, Checklist: []workspace.ChecklistItem{
						{ID: "c1", Text: "write tests"},
					}},
				},
			},
		}
	}

	t.Run("move task updates status", func(t *testing.T) {
		gw := &memGateway{load: boardSnapshot()}
		c := newTestController(&fakeGenerator{}, gw, RoleEditor)
		require.NoError(t, c.Restore(context.Background()))

		require.NoError(t, c.MoveTask(context.Background(), "0-0", workspace.StatusInProgress))
		assert.Equal(t, workspace.StatusInProgress, c.Project().Tasks[0].Status)
	})

	t.Run("move with no board is a no-op", func(t *testing.T) {
		gw := &memGateway{}
		c := newTestController(&fakeGenerator{}, gw, RoleEditor)

		require.NoError(t, c.MoveTask(context.Background(), "0-0", workspace.StatusDone))
		assert.Empty(t, gw.saved, "nothing persisted for a no-op")
	})

	t.Run("toggle checklist item", func(t *testing.T) {
		gw := &memGateway{load: boardSnapshot()}
		c := newTestController(&fakeGenerator{}, gw, RoleEditor)
		require.NoError(t, c.Restore(context.Background()))

		require.NoError(t, c.ToggleChecklistItem(context.Background(), "0-0", "c1"))
		assert.True(t, c.Project().Tasks[0].Checklist[0].Completed)
	})

	t.Run("add manual task", func(t *testing.T) {
		gw := &memGateway{load: boardSnapshot()}
		c := newTestController(&fakeGenerator{}, gw, RoleEditor)
		require.NoError(t, c.Restore(context.Background()))

		require.NoError(t, c.AddManualTask(context.Background(), "Unplanned", "Fix login", workspace.PriorityHigh))

		tasks := c.Project().Tasks
		require.Len(t, tasks, 2)
		assert.Contains(t, tasks[1].ID, "manual-")
		assert.Equal(t, "Fix login", tasks[1].Description)
	})
}

func TestTreeCommands(t *testing.T) {
	t.Run("insert creates the tree on first use", func(t *testing.T) {
		c := newTestController(&fakeGenerator{}, &memGateway{}, RoleEditor)

		require.NoError(t, c.InsertNode(context.Background(), nil, workspace.FileNode{
			Name: "src", Kind: workspace.KindFolder,
		}))

		tree := c.Project().FileTree
		require.NotNil(t, tree)
		assert.NotNil(t, tree.FindByPath([]string{"src"}))
	})

	t.Run("path miss is silent", func(t *testing.T) {
		gw := &memGateway{}
		c := newTestController(&fakeGenerator{}, gw, RoleEditor)

		require.NoError(t, c.RemoveNode(context.Background(), []string{"missing"}))
		assert.Empty(t, gw.saved, "no-op edits are not persisted")
	})

	t.Run("set content on a file", func(t *testing.T) {
		gw := &memGateway{load: &workspace.Snapshot{
			ProjectData: workspace.Project{
				FileTree: workspace.FileTreeFromNodes([]workspace.FileNode{
					{Name: "main.go", Kind: workspace.KindFile},
				}),
			},
		}}
		c := newTestController(&fakeGenerator{}, gw, RoleEditor)
		require.NoError(t, c.Restore(context.Background()))

		require.NoError(t, c.SetFileContent(context.Background(), []string{"main.go"}, "package main"))
		assert.Equal(t, "package main", c.Project().FileTree.FindByPath([]string{"main.go"}).Content)
	})
}

func TestViewerRole(t *testing.T) {
	gw := &memGateway{load: &workspace.Snapshot{
		CurrentPhase: workspace.PhasePlan,
		ProjectData: workspace.Project{
			PlanPhases: []workspace.PlanPhase{{Name: "Setup", Tasks: []workspace.PlanTask{{Description: "Init"}}}},
		},
	}}
	gen := &fakeGenerator{}
	c := newTestController(gen, gw, RoleViewer)
	require.NoError(t, c.Restore(context.Background()))
	saves := len(gw.saved)

	ctx := context.Background()
	assert.NoError(t, c.SubmitIdea(ctx, "x", "", ""))
	assert.NoError(t, c.AdvancePhase(ctx))
	assert.NoError(t, c.Refine(ctx, "Plan", "feedback"))
	assert.NoError(t, c.FinalizePlan(ctx))
	assert.NoError(t, c.RegenerateBoard(ctx))
	assert.NoError(t, c.MoveTask(ctx, "0-0", workspace.StatusDone))
	assert.NoError(t, c.AddManualTask(ctx, "p", "d", workspace.PriorityLow))
	assert.NoError(t, c.InsertNode(ctx, nil, workspace.FileNode{Name: "x", Kind: workspace.KindFile}))
	assert.NoError(t, c.ResetProject(ctx))

	assert.Empty(t, gen.generatedPhases)
	assert.Empty(t, gen.refineRequests)
	assert.Len(t, gw.saved, saves, "viewers never persist")
	assert.Equal(t, workspace.PhasePlan, c.CurrentPhase())
	assert.Nil(t, c.Project().Tasks)

	t.Run("viewers can still read and navigate", func(t *testing.T) {
		assert.NotNil(t, c.Unlocked())
		require.NoError(t, c.NavigateTo(ctx, workspace.PhaseIdea))
		assert.Equal(t, workspace.PhaseIdea, c.CurrentPhase())
	})
}

func TestResetProject(t *testing.T) {
	gw := &memGateway{load: &workspace.Snapshot{
		CurrentPhase: workspace.PhaseWorkspace,
		ProjectData: workspace.Project{
			Name:  "Habitat",
			Tasks: []workspace.Task{{ID: "0-0"}},
		},
	}}
	c := newTestController(&fakeGenerator{}, gw, RoleEditor)
	require.NoError(t, c.Restore(context.Background()))

	require.NoError(t, c.ResetProject(context.Background()))

	assert.Equal(t, workspace.PhaseIdea, c.CurrentPhase())
	assert.Equal(t, workspace.Project{}, c.Project())
	require.NotEmpty(t, gw.saved)
	assert.Equal(t, workspace.PhaseIdea, gw.saved[len(gw.saved)-1].CurrentPhase)
}

func TestDismissError(t *testing.T) {
	gen := &fakeGenerator{generateErr: errors.New("boom")}
	c := newTestController(gen, &memGateway{}, RoleEditor)

	_ = c.AdvancePhase(context.Background())
	require.NotEmpty(t, c.LastError())

	c.DismissError()
	assert.Empty(t, c.LastError())
}

func TestBusyFlags(t *testing.T) {
	generating, refining := newTestController(&fakeGenerator{}, &memGateway{}, RoleEditor).Busy()
	assert.False(t, generating)
	assert.False(t, refining)
}
