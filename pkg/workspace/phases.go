package workspace

import "fmt"

// Phase is one step in the fixed project-planning sequence.
type Phase string

const (
	PhaseIdea            Phase = "idea"
	PhaseBrainstorm      Phase = "brainstorm"
	PhaseKnowledgeBase   Phase = "knowledge_base"
	PhaseResearch        Phase = "research"
	PhaseArchitecture    Phase = "architecture"
	PhaseDataModel       Phase = "data_model"
	PhaseFileStructure   Phase = "file_structure"
	PhaseDesign          Phase = "design"
	PhaseAPISpec         Phase = "api_spec"
	PhaseSecurity        Phase = "security"
	PhaseBlueprintStudio Phase = "blueprint_studio"
	PhaseAgentRules      Phase = "agent_rules"
	PhasePlan            Phase = "plan"
	PhaseWorkspace       Phase = "workspace"
	PhaseDocument        Phase = "document"
	PhaseKickoff         Phase = "kickoff"
)

// allPhases is the complete ordering including the optional knowledge base
// phase. A Graph fixes which subset is active for the lifetime of a project.
var allPhases = []Phase{
	PhaseIdea,
	PhaseBrainstorm,
	PhaseKnowledgeBase,
	PhaseResearch,
	PhaseArchitecture,
	PhaseDataModel,
	PhaseFileStructure,
	PhaseDesign,
	PhaseAPISpec,
	PhaseSecurity,
	PhaseBlueprintStudio,
	PhaseAgentRules,
	PhasePlan,
	PhaseWorkspace,
	PhaseDocument,
	PhaseKickoff,
}

// phaseGates maps each phase to the artifact slot whose presence unlocks it.
// The first phase has no gate. Several phases may share a gating artifact:
// the security context unlocks both the security review and the downstream
// blueprint studio. Terminal phases gate on a sibling artifact.
var phaseGates = map[Phase]ArtifactKey{
	PhaseBrainstorm:      KeyBrainstorm,
	PhaseKnowledgeBase:   KeyBrainstorm,
	PhaseResearch:        KeyResearch,
	PhaseArchitecture:    KeyArchitecture,
	PhaseDataModel:       KeySchema,
	PhaseFileStructure:   KeyFileTree,
	PhaseDesign:          KeyDesignSystem,
	PhaseAPISpec:         KeyAPISpec,
	PhaseSecurity:        KeySecurityContext,
	PhaseBlueprintStudio: KeySecurityContext,
	PhaseAgentRules:      KeyAgentRules,
	PhasePlan:            KeyPlanPhases,
	PhaseWorkspace:       KeyTasks,
	PhaseDocument:        KeyTasks,
	PhaseKickoff:         KeyKickoffAssets,
}

// phaseLabels are the display names used in user-facing messages.
var phaseLabels = map[Phase]string{
	PhaseIdea:            "Idea",
	PhaseBrainstorm:      "Brainstorm",
	PhaseKnowledgeBase:   "Knowledge Base",
	PhaseResearch:        "Research",
	PhaseArchitecture:    "Architecture",
	PhaseDataModel:       "Data Model",
	PhaseFileStructure:   "File Structure",
	PhaseDesign:          "Design",
	PhaseAPISpec:         "API Spec",
	PhaseSecurity:        "Security",
	PhaseBlueprintStudio: "Blueprint Studio",
	PhaseAgentRules:      "Agent Rules",
	PhasePlan:            "Plan",
	PhaseWorkspace:       "Workspace",
	PhaseDocument:        "Document",
	PhaseKickoff:         "Kickoff",
}

// Label returns the display name for a phase, falling back to the raw value.
func (p Phase) Label() string {
	if label, ok := phaseLabels[p]; ok {
		return label
	}
	return string(p)
}

// Validate checks if the Phase is a member of the fixed enumeration.
func (p Phase) Validate() error {
	for _, known := range allPhases {
		if p == known {
			return nil
		}
	}
	return fmt.Errorf("unknown phase: %q", p)
}

// ParsePhase resolves a phase from its wire value or display label.
func ParsePhase(s string) (Phase, error) {
	if err := Phase(s).Validate(); err == nil {
		return Phase(s), nil
	}
	for phase, label := range phaseLabels {
		if label == s {
			return phase, nil
		}
	}
	return "", fmt.Errorf("unknown phase: %q", s)
}

// Graph is the fixed, totally ordered phase sequence for one project.
// The ordering never changes for the lifetime of a project; the only
// configuration point is whether the optional knowledge base phase is part
// of the sequence, decided at construction.
type Graph struct {
	phases []Phase
}

// NewGraph builds the phase graph. When includeKnowledgeBase is false the
// knowledge base phase is omitted from the ordering entirely.
func NewGraph(includeKnowledgeBase bool) *Graph {
	phases := make([]Phase, 0, len(allPhases))
	for _, p := range allPhases {
		if p == PhaseKnowledgeBase && !includeKnowledgeBase {
			continue
		}
		phases = append(phases, p)
	}
	return &Graph{phases: phases}
}

// Phases returns the ordered phase sequence. The returned slice is a copy.
func (g *Graph) Phases() []Phase {
	out := make([]Phase, len(g.phases))
	copy(out, g.phases)
	return out
}

// First returns the first phase in the ordering.
func (g *Graph) First() Phase {
	return g.phases[0]
}

// Contains reports whether the phase is part of this graph's ordering.
func (g *Graph) Contains(p Phase) bool {
	for _, known := range g.phases {
		if p == known {
			return true
		}
	}
	return false
}

// Advance returns the successor of the given phase in the fixed ordering.
// The last phase advances to itself. A phase outside the ordering also
// returns itself - navigation correctness is the caller's concern.
func (g *Graph) Advance(p Phase) Phase {
	for i, known := range g.phases {
		if p != known {
			continue
		}
		if i == len(g.phases)-1 {
			return p
		}
		return g.phases[i+1]
	}
	return p
}

// Unlocked computes the set of currently reachable phases from the project's
// artifact presence. Pure function: the first phase is always unlocked, every
// later phase is unlocked iff its gating artifact slot is present. The result
// is monotonic in the project's artifacts - adding an artifact never removes
// a phase from the set.
func (g *Graph) Unlocked(p *Project) map[Phase]bool {
	unlocked := make(map[Phase]bool, len(g.phases))
	for i, phase := range g.phases {
		if i == 0 {
			unlocked[phase] = true
			continue
		}
		gate, ok := phaseGates[phase]
		if !ok {
			continue
		}
		if p.Has(gate) {
			unlocked[phase] = true
		}
	}
	return unlocked
}
