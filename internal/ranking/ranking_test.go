package ranking

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/jobmatch/internal/ai"
	"github.com/spigell/jobmatch/internal/matching"
)

func candidate() *matching.User {
	return &matching.User{
		ID:                "u1",
		Field:             "Information Technology",
		SubField:          "Web Development",
		Skills:            []string{"JavaScript", "React", "Node.js"},
		YearsOfExperience: "3-5 years",
		City:              "Johannesburg",
		Province:          "Gauteng",
	}
}

func postings() []*matching.Job {
	return []*matching.Job{
		{ID: "b-nurse", CompanyName: "Clinic", JobField: "Healthcare", Specialization: "Nursing", Requirements: "Patient care, ICU", City: "Durban"},
		{ID: "a-web", CompanyName: "Acme", JobField: "Information Technology", Specialization: "Web Development", Requirements: "JavaScript, React, Node.js", ExperienceLevel: "3-5 years", City: "Johannesburg"},
		{ID: "c-web", CompanyName: "Acme", JobField: "Information Technology", Specialization: "Web Development", Requirements: "JavaScript, React, Node.js", ExperienceLevel: "3-5 years", City: "Johannesburg"},
		{ID: "d-cs", CompanyName: "Globex", JobField: "Computer Science", Specialization: "Software Development", Requirements: "TypeScript, Docker", ExperienceLevel: "5-7 years", Province: "Gauteng"},
	}
}

func TestRankOrdersByPercentageThenID(t *testing.T) {
	ranked, err := Rank(context.Background(), candidate(), postings(), Options{Workers: 2})
	require.NoError(t, err)
	require.Len(t, ranked, 4)

	assert.Equal(t, []string{"a-web", "c-web", "d-cs", "b-nurse"}, ids(ranked))
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Result.MatchPercentage, ranked[i].Result.MatchPercentage)
	}
}

func TestRankMatchesSequentialScoring(t *testing.T) {
	user := candidate()
	jobs := postings()

	ranked, err := Rank(context.Background(), user, jobs, Options{})
	require.NoError(t, err)

	for _, r := range ranked {
		assert.Equal(t, matching.CalculateJobMatch(*user, *r.Job), r.Result)
	}
}

func TestRankThresholdAndLimit(t *testing.T) {
	ranked, err := Rank(context.Background(), candidate(), postings(), Options{MinimumMatch: 60})
	require.NoError(t, err)
	for _, r := range ranked {
		assert.GreaterOrEqual(t, r.Result.MatchPercentage, 60)
	}
	assert.NotContains(t, ids(ranked), "b-nurse")

	ranked, err = Rank(context.Background(), candidate(), postings(), Options{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"a-web"}, ids(ranked))

	ranked, err = Rank(context.Background(), candidate(), postings(), Options{MinimumMatch: 101})
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRankEmptyAndNilInputs(t *testing.T) {
	ranked, err := Rank(context.Background(), candidate(), nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, ranked)

	ranked, err = Rank(context.Background(), candidate(), []*matching.Job{nil, postings()[1]}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a-web"}, ids(ranked))

	_, err = Rank(context.Background(), nil, postings(), Options{})
	assert.Error(t, err)
}

func TestRankHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Rank(ctx, candidate(), postings(), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRankManyJobs(t *testing.T) {
	jobs := make([]*matching.Job, 0, 500)
	for i := range 500 {
		job := *postings()[i%4]
		job.ID = fmt.Sprintf("job-%03d", i)
		jobs = append(jobs, &job)
	}

	ranked, err := Rank(context.Background(), candidate(), jobs, Options{Workers: 8})
	require.NoError(t, err)
	require.Len(t, ranked, 500)
	assert.Equal(t, "job-001", ranked[0].Job.ID)
}

type stubNarrator struct {
	fail map[string]bool
	seen []string
}

func (s *stubNarrator) Narrate(_ context.Context, _ matching.User, job matching.Job, result matching.MatchResult) (*ai.Narrative, error) {
	s.seen = append(s.seen, job.ID)
	if s.fail[job.ID] {
		return nil, errors.New("quota exceeded")
	}
	return &ai.Narrative{Summary: fmt.Sprintf("%s scores %d", job.ID, result.MatchPercentage)}, nil
}

func TestNarrateTopResults(t *testing.T) {
	ranked, err := Rank(context.Background(), candidate(), postings(), Options{})
	require.NoError(t, err)
	before := ids(ranked)

	core, observed := observer.New(zapcore.WarnLevel)
	narrator := &stubNarrator{fail: map[string]bool{"c-web": true}}

	Narrate(context.Background(), narrator, candidate(), ranked, 2, zap.New(core))

	assert.Equal(t, []string{"a-web", "c-web"}, narrator.seen)
	assert.Equal(t, before, ids(ranked))
	require.NotNil(t, ranked[0].Narrative)
	assert.Contains(t, ranked[0].Narrative.Summary, "a-web")
	assert.Nil(t, ranked[1].Narrative)
	assert.Equal(t, "quota exceeded", ranked[1].NarrativeError)
	assert.Nil(t, ranked[2].Narrative)
	assert.Equal(t, 1, observed.FilterMessage("narration failed").Len())

	report := ReportByCompany(ranked)
	require.Len(t, report["Acme"], 2)
	assert.Equal(t, "quota exceeded", report["Acme"][1]["ai_error"])
	assert.NotEmpty(t, report["Acme"][0]["ai_summary"])
	assert.Equal(t, "a-web", report["Acme"][0]["id"])
	assert.Equal(t, "100%", report["Acme"][0]["match"])
	assert.Equal(t, "Johannesburg", report["Acme"][0]["location"])
	assert.Equal(t, "Healthcare / Nursing", report["Clinic"][0]["field"])
}

func ids(ranked []Ranked) []string {
	out := make([]string, 0, len(ranked))
	for _, job := range Jobs(ranked) {
		out = append(out, job.ID)
	}
	return out
}
