package workspace

import (
	"fmt"
	"strings"
)

// Project is the root aggregate for a single planning workflow. It accumulates
// one optional artifact per phase as the user walks the sequence. All mutation
// happens by applying an Update, which replaces whole artifact slots - there is
// no in-place nested mutation, so readers always observe either the pre- or
// post-update value.
type Project struct {
	InitialIdea string `json:"initial_idea"`
	ProjectType string `json:"project_type"`
	Constraints string `json:"constraints"`
	Name        string `json:"name"`

	Brainstorm      *BrainstormResult `json:"brainstorm,omitempty"`
	KnowledgeBase   *KnowledgeBase    `json:"knowledge_base,omitempty"`
	Research        *ResearchReport   `json:"research,omitempty"`
	Architecture    *Architecture     `json:"architecture,omitempty"`
	Schema          *Schema           `json:"schema,omitempty"`
	CostEstimate    *CostEstimate     `json:"cost_estimate,omitempty"`
	FileTree        *FileTree         `json:"file_tree,omitempty"`
	DesignSystem    *DesignSystem     `json:"design_system,omitempty"`
	APISpec         *APISpec          `json:"api_spec,omitempty"`
	SecurityContext *SecurityContext  `json:"security_context,omitempty"`
	AgentRules      *AgentRules       `json:"agent_rules,omitempty"`
	PlanPhases      []PlanPhase       `json:"plan_phases,omitempty"`
	// No omitempty: an empty board is a present board. Dropping it on the
	// wire would turn "finalized with zero tasks" back into "never finalized".
	Tasks         []Task         `json:"tasks"`
	KickoffAssets *KickoffAssets `json:"kickoff_assets,omitempty"`
	ChatHistory   []ChatMessage  `json:"chat_history,omitempty"`
}

// BrainstormResult is produced when the initial idea is submitted.
type BrainstormResult struct {
	Summary string   `json:"summary"`
	Ideas   []string `json:"ideas"`
}

// KnowledgeBase holds reference notes collected for the project (optional phase).
type KnowledgeBase struct {
	Entries []KnowledgeEntry `json:"entries"`
}

// KnowledgeEntry is a single titled note in the knowledge base.
type KnowledgeEntry struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ResearchReport is the research phase artifact. Sources accumulate across
// refinements: a refinement replaces the summary wholesale but only ever
// appends newly discovered citations.
type ResearchReport struct {
	Summary string     `json:"summary"`
	Sources []Citation `json:"sources"`
}

// Citation is a single source reference in a research report.
type Citation struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Architecture describes the system decomposition produced in the
// architecture phase.
type Architecture struct {
	Overview   string      `json:"overview"`
	Components []Component `json:"components"`
}

// Component is one named element of the architecture.
type Component struct {
	Name           string `json:"name"`
	Responsibility string `json:"responsibility"`
}

// Schema is the data-model phase artifact.
type Schema struct {
	Entities []Entity `json:"entities"`
}

// Entity is one table/collection in the schema.
type Entity struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Field is a single attribute of an entity.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CostEstimate is the side artifact produced alongside the architecture.
type CostEstimate struct {
	Summary    string  `json:"summary"`
	MonthlyUSD float64 `json:"monthly_usd"`
}

// DesignSystem is the UI/UX phase artifact.
type DesignSystem struct {
	Palette    []string `json:"palette"`
	Typography string   `json:"typography"`
	Notes      string   `json:"notes"`
}

// APISpec is the API phase artifact.
type APISpec struct {
	Endpoints []Endpoint `json:"endpoints"`
}

// Endpoint is a single API operation.
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// SecurityContext is the security phase artifact. Its presence gates both the
// security review phase and the downstream blueprint studio phase.
type SecurityContext struct {
	Threats  []string `json:"threats"`
	Measures []string `json:"measures"`
}

// AgentRules is the compiled rule set handed to coding agents.
type AgentRules struct {
	Rules []string `json:"rules"`
}

// KickoffAssets is the terminal phase artifact bundling handoff material.
type KickoffAssets struct {
	Readme  string   `json:"readme"`
	Prompts []string `json:"prompts"`
}

// ChatMessage is one entry in the project's refinement chat log.
type ChatMessage struct {
	Role     string `json:"role"`
	Content  string `json:"content"`
	SentAtMs int64  `json:"sent_at_ms"`
}

// ArtifactKey identifies one artifact slot on the Project. Keys are the
// wire names used in the persisted snapshot and in generator responses.
type ArtifactKey string

const (
	KeyBrainstorm      ArtifactKey = "brainstorm"
	KeyKnowledgeBase   ArtifactKey = "knowledge_base"
	KeyResearch        ArtifactKey = "research"
	KeyArchitecture    ArtifactKey = "architecture"
	KeySchema          ArtifactKey = "schema"
	KeyCostEstimate    ArtifactKey = "cost_estimate"
	KeyFileTree        ArtifactKey = "file_tree"
	KeyDesignSystem    ArtifactKey = "design_system"
	KeyAPISpec         ArtifactKey = "api_spec"
	KeySecurityContext ArtifactKey = "security_context"
	KeyAgentRules      ArtifactKey = "agent_rules"
	KeyPlanPhases      ArtifactKey = "plan_phases"
	KeyTasks           ArtifactKey = "tasks"
	KeyKickoffAssets   ArtifactKey = "kickoff_assets"
	KeyChatHistory     ArtifactKey = "chat_history"
)

// Validate checks if the ArtifactKey is a known slot.
func (k ArtifactKey) Validate() error {
	switch k {
	case KeyBrainstorm, KeyKnowledgeBase, KeyResearch, KeyArchitecture,
		KeySchema, KeyCostEstimate, KeyFileTree, KeyDesignSystem, KeyAPISpec,
		KeySecurityContext, KeyAgentRules, KeyPlanPhases, KeyTasks,
		KeyKickoffAssets, KeyChatHistory:
		return nil
	default:
		return fmt.Errorf("unknown artifact key: %q", k)
	}
}

// sectionKeys maps user-facing section names (as shown in the CLI and used by
// refinement feedback) to artifact slots. Lookup falls back to the lower-cased
// section name so generator-invented section labels still resolve when they
// happen to match a key.
var sectionKeys = map[string]ArtifactKey{
	"Brainstorm":     KeyBrainstorm,
	"Knowledge Base": KeyKnowledgeBase,
	"Research":       KeyResearch,
	"Architecture":   KeyArchitecture,
	"Data Model":     KeySchema,
	"File Structure": KeyFileTree,
	"Design System":  KeyDesignSystem,
	"API":            KeyAPISpec,
	"Security":       KeySecurityContext,
	"Agent Rules":    KeyAgentRules,
	"Plan":           KeyPlanPhases,
	"Kickoff":        KeyKickoffAssets,
}

// ResolveSectionKey resolves a section name to its artifact slot.
// Returns an error if neither the static table nor the lower-cased fallback
// produces a known key.
func ResolveSectionKey(section string) (ArtifactKey, error) {
	if key, ok := sectionKeys[section]; ok {
		return key, nil
	}

	fallback := ArtifactKey(strings.ToLower(strings.ReplaceAll(section, " ", "_")))
	if err := fallback.Validate(); err != nil {
		return "", fmt.Errorf("section %q does not resolve to an artifact: %w", section, err)
	}
	return fallback, nil
}

// Update is a partial Project mutation. Nil fields are untouched; non-nil
// fields replace the corresponding slot wholesale. Slices use the same rule:
// nil means untouched, an empty non-nil slice clears the slot.
type Update struct {
	InitialIdea *string `json:"initial_idea,omitempty"`
	ProjectType *string `json:"project_type,omitempty"`
	Constraints *string `json:"constraints,omitempty"`
	Name        *string `json:"name,omitempty"`

	Brainstorm      *BrainstormResult `json:"brainstorm,omitempty"`
	KnowledgeBase   *KnowledgeBase    `json:"knowledge_base,omitempty"`
	Research        *ResearchReport   `json:"research,omitempty"`
	Architecture    *Architecture     `json:"architecture,omitempty"`
	Schema          *Schema           `json:"schema,omitempty"`
	CostEstimate    *CostEstimate     `json:"cost_estimate,omitempty"`
	FileTree        *FileTree         `json:"file_tree,omitempty"`
	DesignSystem    *DesignSystem     `json:"design_system,omitempty"`
	APISpec         *APISpec          `json:"api_spec,omitempty"`
	SecurityContext *SecurityContext  `json:"security_context,omitempty"`
	AgentRules      *AgentRules       `json:"agent_rules,omitempty"`
	PlanPhases      []PlanPhase       `json:"plan_phases,omitempty"`
	Tasks           []Task            `json:"tasks,omitempty"`
	KickoffAssets   *KickoffAssets    `json:"kickoff_assets,omitempty"`
	ChatHistory     []ChatMessage     `json:"chat_history,omitempty"`
}

// Apply merges an Update into the Project and returns the result. The
// receiver is not modified - Project values flow through the controller as
// immutable snapshots, replaced atomically under its lock.
func (p Project) Apply(u Update) Project {
	if u.InitialIdea != nil {
		p.InitialIdea = *u.InitialIdea
	}
	if u.ProjectType != nil {
		p.ProjectType = *u.ProjectType
	}
	if u.Constraints != nil {
		p.Constraints = *u.Constraints
	}
	if u.Name != nil {
		p.Name = *u.Name
	}

	if u.Brainstorm != nil {
		p.Brainstorm = u.Brainstorm
	}
	if u.KnowledgeBase != nil {
		p.KnowledgeBase = u.KnowledgeBase
	}
	if u.Research != nil {
		p.Research = u.Research
	}
	if u.Architecture != nil {
		p.Architecture = u.Architecture
	}
	if u.Schema != nil {
		p.Schema = u.Schema
	}
	if u.CostEstimate != nil {
		p.CostEstimate = u.CostEstimate
	}
	if u.FileTree != nil {
		p.FileTree = u.FileTree
	}
	if u.DesignSystem != nil {
		p.DesignSystem = u.DesignSystem
	}
	if u.APISpec != nil {
		p.APISpec = u.APISpec
	}
	if u.SecurityContext != nil {
		p.SecurityContext = u.SecurityContext
	}
	if u.AgentRules != nil {
		p.AgentRules = u.AgentRules
	}
	if u.PlanPhases != nil {
		p.PlanPhases = u.PlanPhases
	}
	if u.Tasks != nil {
		p.Tasks = u.Tasks
	}
	if u.KickoffAssets != nil {
		p.KickoffAssets = u.KickoffAssets
	}
	if u.ChatHistory != nil {
		p.ChatHistory = u.ChatHistory
	}

	return p
}

// Has reports whether the artifact slot for the given key is present.
// Scalar idea fields are not artifact slots and always report false.
func (p *Project) Has(key ArtifactKey) bool {
	switch key {
	case KeyBrainstorm:
		return p.Brainstorm != nil
	case KeyKnowledgeBase:
		return p.KnowledgeBase != nil
	case KeyResearch:
		return p.Research != nil
	case KeyArchitecture:
		return p.Architecture != nil
	case KeySchema:
		return p.Schema != nil
	case KeyCostEstimate:
		return p.CostEstimate != nil
	case KeyFileTree:
		return p.FileTree != nil
	case KeyDesignSystem:
		return p.DesignSystem != nil
	case KeyAPISpec:
		return p.APISpec != nil
	case KeySecurityContext:
		return p.SecurityContext != nil
	case KeyAgentRules:
		return p.AgentRules != nil
	case KeyPlanPhases:
		return p.PlanPhases != nil
	case KeyTasks:
		return p.Tasks != nil
	case KeyKickoffAssets:
		return p.KickoffAssets != nil
	case KeyChatHistory:
		return p.ChatHistory != nil
	default:
		return false
	}
}
