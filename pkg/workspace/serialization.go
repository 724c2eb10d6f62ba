package workspace

import "encoding/json"

// Snapshot is the persisted pair of current phase and project aggregate.
// It is stored as one opaque JSON blob under one fixed key and must
// round-trip exactly for any value produced by this package.
type Snapshot struct {
	CurrentPhase Phase   `json:"current_phase"`
	ProjectData  Project `json:"project_data"`
}

// DefaultSnapshot returns the empty project at the first phase. Used on
// first run and whenever a stored blob cannot be decoded.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{CurrentPhase: PhaseIdea, ProjectData: Project{}}
}

// EncodeSnapshot serializes a snapshot to its JSON wire form.
func EncodeSnapshot(s *Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSnapshot deserializes a snapshot blob. Returns (snapshot, true) on
// success. A corrupt or foreign blob - invalid JSON, missing top-level
// fields, or an unknown phase - yields (nil, false); it must never surface
// as an error, since startup treats it as a first run.
func DecodeSnapshot(data []byte) (*Snapshot, bool) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, false
	}
	if _, ok := envelope["current_phase"]; !ok {
		return nil, false
	}
	if _, ok := envelope["project_data"]; !ok {
		return nil, false
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false
	}
	if err := snap.CurrentPhase.Validate(); err != nil {
		return nil, false
	}
	return &snap, true
}
