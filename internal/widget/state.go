package widget

import (
	"encoding/json"

	"github.com/lei/jobtabs/internal/models"
)

// Phase is the view's loading state. The only transition is Loading to Ready.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	default:
		return "loading"
	}
}

// MarshalJSON encodes the phase by name
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// State is the complete view state. Renderers are pure functions of it.
type State struct {
	Phase    Phase        `json:"phase"`
	Jobs     []models.Job `json:"jobs"`
	Selected int          `json:"selected"`
}

// Loading reports whether the initial fetch is still pending
func (s State) Loading() bool {
	return s.Phase == PhaseLoading
}

// Current returns the selected job. Selected is never clamped, so callers
// must handle ok == false for negative or out of range indexes.
func (s State) Current() (models.Job, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Jobs) {
		return models.Job{}, false
	}
	return s.Jobs[s.Selected], true
}

// clone copies the job slice so snapshots never alias widget state
func (s State) clone() State {
	jobs := make([]models.Job, len(s.Jobs))
	copy(jobs, s.Jobs)
	s.Jobs = jobs
	return s
}
