// Package records loads users and jobs from the configured document store.
//
// Every source decodes raw documents the same way: unknown or missing keys
// become empty values, and a document without an id is skipped with a log
// line instead of reaching the scorer.
package records

import (
	"context"
	"errors"
	"strings"

	"github.com/spigell/jobmatch/internal/matching"
)

const (
	// DefaultEligibleStatus is used when no eligible statuses are configured.
	DefaultEligibleStatus = "active"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrJobNotFound    = errors.New("job not found")
	ErrJobNotEligible = errors.New("job is not eligible")

	errNotFound = errors.New("document not found")
)

// Source provides users and jobs to the scorer.
type Source interface {
	User(ctx context.Context, id string) (*matching.User, error)
	Jobs(ctx context.Context) (*Jobs, error)
}

// IsEligible reports whether the job status is one of the eligible statuses.
// An empty list means only DefaultEligibleStatus is eligible.
func IsEligible(job *matching.Job, statuses []string) bool {
	if job == nil {
		return false
	}
	if len(statuses) == 0 {
		statuses = []string{DefaultEligibleStatus}
	}

	status := strings.TrimSpace(job.Status)
	for _, s := range statuses {
		if strings.EqualFold(status, strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}
