package records

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spigell/jobmatch/internal/matching"
)

const (
	JobIDField      = "ID"
	JobCompanyField = "CompanyName"

	unknownCompany = "unknown company"
)

type Jobs struct {
	Items []*matching.Job `json:"items"`
}

func jobStringField(job *matching.Job, name string) string {
	switch name {
	case JobIDField:
		return job.ID
	case JobCompanyField:
		return job.CompanyName
	default:
		return ""
	}
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) FindByID(id string) *matching.Job {
	for _, job := range j.Items {
		if job.ID == id {
			return job
		}
	}
	return nil
}

// Get is FindByID returning ErrJobNotFound for unknown ids.
func (j *Jobs) Get(id string) (*matching.Job, error) {
	if job := j.FindByID(id); job != nil {
		return job, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
}

func (j *Jobs) IDs() []string {
	ids := make([]string, 0, len(j.Items))
	for _, job := range j.Items {
		ids = append(ids, job.ID)
	}
	return ids
}

// Exclude removes jobs whose field equals one of the targets and returns
// the removed job ids.
func (j *Jobs) Exclude(name string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	set := make(map[string]bool, len(targets))
	for _, target := range targets {
		set[target] = true
	}

	return j.ExcludeFunc(func(job *matching.Job) bool {
		return set[jobStringField(job, name)]
	})
}

// ExcludeFunc removes every job the predicate matches and returns the
// removed job ids in their original order.
func (j *Jobs) ExcludeFunc(drop func(*matching.Job) bool) []string {
	var excluded []string
	// walk backwards: RemoveByIndex moves the tail into the freed slot
	for idx := len(j.Items) - 1; idx >= 0; idx-- {
		job := j.Items[idx]
		if drop(job) {
			j.RemoveByIndex(idx)
			excluded = append(excluded, job.ID)
		}
	}
	slices.Reverse(excluded)
	return excluded
}

// ExcludeIneligible removes jobs whose status is not eligible.
func (j *Jobs) ExcludeIneligible(statuses []string) []string {
	return j.ExcludeFunc(func(job *matching.Job) bool {
		return !IsEligible(job, statuses)
	})
}

// RemoveByIndex remove job from list by index. Do not preserve order.
func (j *Jobs) RemoveByIndex(idx int) {
	j.Items[idx] = j.Items[len(j.Items)-1]
	j.Items = j.Items[:len(j.Items)-1]
}

// ReportByCompany groups a short description of each job by company.
func (j *Jobs) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range j.Items {
		key := CompanyKey(job)
		report[key] = append(report[key], map[string]string{
			"id":               job.ID,
			"title":            job.Title,
			"field":            joinNonEmpty(" / ", job.JobField, job.Specialization),
			"location":         joinNonEmpty(", ", job.City, job.Province),
			"experience level": job.ExperienceLevel,
			"status":           job.Status,
		})
	}
	return report
}

// CompanyKey is the report group of the job.
func CompanyKey(job *matching.Job) string {
	if key := strings.TrimSpace(job.CompanyName); key != "" {
		return key
	}
	return unknownCompany
}

func (j *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ToExcluded converts every job into an exclude file entry.
func (j *Jobs) ToExcluded(actor, reason string) *ExcludedJobs {
	excluded := &ExcludedJobs{}
	now := time.Now().UTC()
	for _, job := range j.Items {
		excluded.Items = append(excluded.Items, &ExcludedJob{
			ID:          job.ID,
			Title:       job.Title,
			CompanyName: job.CompanyName,
			Actor:       actor,
			Reason:      reason,
			ExcludedAt:  now,
		})
	}
	return excluded
}

func joinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
