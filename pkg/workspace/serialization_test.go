package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	snap := &Snapshot{
		CurrentPhase: PhaseArchitecture,
		ProjectData: Project{
			InitialIdea: "An app to track daily habits",
			ProjectType: "web-app",
			Name:        "Habitat",
			Brainstorm:  &BrainstormResult{Summary: "streaks", Ideas: []string{"reminders", "heatmap"}},
			Research: &ResearchReport{
				Summary: "competitor findings",
				Sources: []Citation{{Title: "Habitica", URL: "https://habitica.com"}},
			},
			Architecture: &Architecture{
				Overview:   "three-tier",
				Components: []Component{{Name: "api", Responsibility: "serve clients"}},
			},
			CostEstimate: &CostEstimate{Summary: "small footprint", MonthlyUSD: 42.5},
			FileTree: FileTreeFromNodes([]FileNode{
				{Name: "src", Kind: KindFolder, Children: []FileNode{
					{Name: "main.go", Kind: KindFile, Content: "package main"},
				}},
			}),
			PlanPhases: []PlanPhase{
				{Name: "Setup", Tasks: []PlanTask{{Description: "Init repo", Priority: PriorityHigh}}},
			},
			Tasks: []Task{
				{ID: "0-0", Phase: "Setup", Status: StatusInProgress, Priority: PriorityHigh,
					Checklist: []ChecklistItem{{ID: "c1", Text: "write tests", Completed: true}}},
			},
			ChatHistory: []ChatMessage{{Role: "user", Content: "more ideas please", SentAtMs: 1700000000000}},
		},
	}

	data, err := EncodeSnapshot(snap)
	require.NoError(t, err)

	restored, ok := DecodeSnapshot(data)
	require.True(t, ok)

	assert.Equal(t, snap.CurrentPhase, restored.CurrentPhase)
	assert.Equal(t, snap.ProjectData.Name, restored.ProjectData.Name)
	assert.Equal(t, snap.ProjectData.Brainstorm, restored.ProjectData.Brainstorm)
	assert.Equal(t, snap.ProjectData.Research, restored.ProjectData.Research)
	assert.Equal(t, snap.ProjectData.Architecture, restored.ProjectData.Architecture)
	assert.Equal(t, snap.ProjectData.CostEstimate, restored.ProjectData.CostEstimate)
	assert.Equal(t, snap.ProjectData.PlanPhases, restored.ProjectData.PlanPhases)
	assert.Equal(t, snap.ProjectData.Tasks, restored.ProjectData.Tasks)
	assert.Equal(t, snap.ProjectData.ChatHistory, restored.ProjectData.ChatHistory)
	// Tree ids are synthetic, so compare the logical shape.
	assert.Equal(t, snap.ProjectData.FileTree.Nodes(), restored.ProjectData.FileTree.Nodes())
	// Absent slots stay absent.
	assert.Nil(t, restored.ProjectData.Schema)
	assert.Nil(t, restored.ProjectData.KickoffAssets)
}

func TestDecodeSnapshot(t *testing.T) {
	t.Run("rejects invalid JSON", func(t *testing.T) {
		snap, ok := DecodeSnapshot([]byte("{not json"))
		assert.False(t, ok)
		assert.Nil(t, snap)
	})

	t.Run("rejects a foreign blob", func(t *testing.T) {
		_, ok := DecodeSnapshot([]byte(`{"foo": "bar"}`))
		assert.False(t, ok)
	})

	t.Run("rejects a missing project_data field", func(t *testing.T) {
		_, ok := DecodeSnapshot([]byte(`{"current_phase": "idea"}`))
		assert.False(t, ok)
	})

	t.Run("rejects an unknown phase", func(t *testing.T) {
		_, ok := DecodeSnapshot([]byte(`{"current_phase": "deploy", "project_data": {}}`))
		assert.False(t, ok)
	})

	t.Run("accepts a minimal valid blob", func(t *testing.T) {
		snap, ok := DecodeSnapshot([]byte(`{"current_phase": "idea", "project_data": {}}`))
		require.True(t, ok)
		assert.Equal(t, PhaseIdea, snap.CurrentPhase)
	})

	t.Run("an empty board survives the round-trip", func(t *testing.T) {
		data, err := EncodeSnapshot(&Snapshot{
			CurrentPhase: PhaseWorkspace,
			ProjectData:  Project{Tasks: []Task{}},
		})
		require.NoError(t, err)

		restored, ok := DecodeSnapshot(data)
		require.True(t, ok)
		require.NotNil(t, restored.ProjectData.Tasks, "empty board must not decode as absent")
		assert.Empty(t, restored.ProjectData.Tasks)
		assert.True(t, restored.ProjectData.Has(KeyTasks))
	})
}

func TestDefaultSnapshot(t *testing.T) {
	snap := DefaultSnapshot()
	assert.Equal(t, PhaseIdea, snap.CurrentPhase)
	assert.Equal(t, Project{}, snap.ProjectData)
}
