// Package ranking scores every job for one user and orders the results.
package ranking

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/jobmatch/internal/ai"
	"github.com/spigell/jobmatch/internal/logger"
	"github.com/spigell/jobmatch/internal/matching"
	"github.com/spigell/jobmatch/internal/records"
)

// Options tune a ranking run. Zero values mean GOMAXPROCS workers, no
// threshold and no limit.
type Options struct {
	Workers      int
	MinimumMatch int
	Limit        int
}

// Ranked is one scored job.
type Ranked struct {
	Job       *matching.Job        `json:"job"`
	Result    matching.MatchResult `json:"result"`
	Narrative *ai.Narrative        `json:"narrative,omitempty"`
	// NarrativeError is set when narration was attempted and failed.
	NarrativeError string `json:"narrativeError,omitempty"`
}

// Rank scores jobs in parallel, drops results under MinimumMatch and sorts
// them by percentage, highest first, ties broken by job id.
func Rank(ctx context.Context, user *matching.User, jobs []*matching.Job, opts Options) ([]Ranked, error) {
	if user == nil {
		return nil, fmt.Errorf("user is required")
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	scored := make([]Ranked, len(jobs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for idx, job := range jobs {
		if job == nil {
			continue
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			scored[idx] = Ranked{Job: job, Result: matching.CalculateJobMatch(*user, *job)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ranking jobs: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ranking jobs: %w", err)
	}

	ranked := make([]Ranked, 0, len(scored))
	for _, r := range scored {
		if r.Job == nil || r.Result.MatchPercentage < opts.MinimumMatch {
			continue
		}
		ranked = append(ranked, r)
	}

	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		if c := cmp.Compare(b.Result.MatchPercentage, a.Result.MatchPercentage); c != 0 {
			return c
		}
		return cmp.Compare(a.Job.ID, b.Job.ID)
	})

	if opts.Limit > 0 && len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}

	return ranked, nil
}

// Narrate asks the narrator to describe the first top results. Failures are
// recorded on the result and logged; they never change the ranking.
func Narrate(ctx context.Context, narrator ai.Narrator, user *matching.User, ranked []Ranked, top int, log *zap.Logger) {
	if narrator == nil || user == nil {
		return
	}
	if log == nil {
		log = zap.NewNop()
	}
	if top <= 0 || top > len(ranked) {
		top = len(ranked)
	}

	for idx := range ranked[:top] {
		if ctx.Err() != nil {
			return
		}

		r := &ranked[idx]
		fields := logger.MatchFields(user.ID, r.Job.ID, r.Result.MatchPercentage)

		narrative, err := narrator.Narrate(ctx, *user, *r.Job, r.Result)
		if err != nil {
			log.Warn("narration failed", append(fields, zap.Error(err))...)
			r.NarrativeError = err.Error()
			continue
		}

		log.Debug("narration ready", fields...)
		r.Narrative = narrative
	}
}

// Jobs returns the jobs of the ranked results in rank order.
func Jobs(ranked []Ranked) []*matching.Job {
	jobs := make([]*matching.Job, 0, len(ranked))
	for _, r := range ranked {
		jobs = append(jobs, r.Job)
	}
	return jobs
}

// ReportByCompany groups the ranked results by company, keeping rank order
// inside each group. Entries extend the plain job report with match details.
func ReportByCompany(ranked []Ranked) map[string][]map[string]string {
	jobs := &records.Jobs{Items: Jobs(ranked)}
	report := jobs.ReportByCompany()

	seen := make(map[string]int)
	for _, r := range ranked {
		key := records.CompanyKey(r.Job)
		entry := report[key][seen[key]]
		seen[key]++

		entry["match"] = fmt.Sprintf("%d%%", r.Result.MatchPercentage)
		entry["matched skills"] = fmt.Sprintf("%v", r.Result.MatchedSkills)
		entry["missing"] = fmt.Sprintf("%v", r.Result.MissingRequirements)
		if r.Narrative != nil {
			entry["ai_summary"] = r.Narrative.Summary
			entry["ai_message"] = r.Narrative.Message
		}
		if r.NarrativeError != "" {
			entry["ai_error"] = r.NarrativeError
		}
	}
	return report
}
