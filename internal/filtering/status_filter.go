package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/records"
)

type statusFilter struct {
	toggle
	statuses []string
	logger   *zap.Logger
}

// NewStatus creates a filter that keeps only jobs with an eligible status.
// Empty statuses fall back to records.DefaultEligibleStatus.
func NewStatus(statuses []string, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &statusFilter{
		statuses: statuses,
		logger:   logger,
	}
}

func (f *statusFilter) Name() string { return "status" }

func (f *statusFilter) Validate() error {
	for _, status := range f.statuses {
		if strings.TrimSpace(status) == "" {
			return fmt.Errorf("eligible statuses must not contain empty values")
		}
	}
	return nil
}

func (f *statusFilter) Apply(_ context.Context, jobs *records.Jobs) (*records.Jobs, Step, error) {
	initial := jobs.Len()
	excluded := jobs.ExcludeIneligible(f.statuses)
	if len(excluded) > 0 {
		f.logger.Debug("excluding jobs with ineligible status",
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, Step{Initial: initial, Dropped: len(excluded), Left: jobs.Len()}, nil
}

func (f *statusFilter) Status() Status {
	statuses := f.statuses
	if len(statuses) == 0 {
		statuses = []string{records.DefaultEligibleStatus}
	}
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"statuses": strings.Join(statuses, ",")},
	}
}
