package core

// Transition is one recorded state-action-reward step of a learning episode.
// States and actions are table indices; Done marks episode termination.
type Transition struct {
	State     int     `json:"state"`
	Action    int     `json:"action"`
	Reward    float64 `json:"reward"`
	NextState int     `json:"next_state"`
	Done      bool    `json:"done,omitempty"`
}

// ExperienceStore persists the transitions a learning agent gathers so they
// can be replayed for training. Implementations scope transitions by session
// identifier. Short method names mirror other *Store interfaces.
type ExperienceStore interface {
	Append(sessionID string, t Transition) error
	Episode(sessionID string) ([]Transition, error)
	Len(sessionID string) (int, error)
	Clear(sessionID string) error
}
