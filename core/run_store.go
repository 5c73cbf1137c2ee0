package core

import "time"

// RunRecord summarizes one completed demo run for the run history.
type RunRecord struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Agent       string    `json:"agent"`
	Scenario    string    `json:"scenario,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Steps       int       `json:"steps"`
	TotalReward float64   `json:"total_reward,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	Err         string    `json:"error,omitempty"`
}

// RunStore defines the interface for run history persistence. Implementations
// should be thread-safe. Short method names (Save/Get/List/Delete) mirror
// other store interfaces for consistency.
type RunStore interface {
	Save(rec RunRecord) error
	Get(id string) (RunRecord, error)
	List(limit int) ([]RunRecord, error)
	Delete(id string) error
}
