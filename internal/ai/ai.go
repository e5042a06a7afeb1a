package ai

import (
	"context"

	"github.com/spigell/jobmatch/internal/matching"
)

// Narrative is a prose explanation of a computed match. It never changes
// the match itself.
type Narrative struct {
	Summary string `json:"summary"`
	Message string `json:"message"`
	Raw     string `json:"-"`
}

type Narrator interface {
	Narrate(ctx context.Context, user matching.User, job matching.Job, result matching.MatchResult) (*Narrative, error)
}
