package records

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDecodeUser(t *testing.T) {
	doc := map[string]any{
		"id":                "u1",
		"name":              "Thandi",
		"field":             "Information Technology",
		"subField":          "Web Development",
		"skills":            "JavaScript,React",
		"yearsOfExperience": "3-5 years",
		"city":              "Johannesburg",
		"unknownKey":        true,
		"education": []any{
			map[string]any{"degree": "BSc", "institution": "Wits", "year": 2019},
		},
	}

	user, err := decodeUser(doc)
	require.NoError(t, err)

	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Web Development", user.SubField)
	assert.Equal(t, []string{"JavaScript", "React"}, user.Skills)
	assert.Empty(t, user.Province)
	require.Len(t, user.Education, 1)
	assert.Equal(t, "2019", user.Education[0].Year)
}

func TestDecodeUserRequiresID(t *testing.T) {
	_, err := decodeUser(map[string]any{"name": "nobody"})
	require.Error(t, err)
}

func TestDecodeJobNumericID(t *testing.T) {
	job, err := decodeJob(map[string]any{"id": float64(42), "title": "Engineer", "status": "active"})
	require.NoError(t, err)
	assert.Equal(t, "42", job.ID)
	assert.Equal(t, "Engineer", job.Title)
}

func TestDecodeJobsSkipsBrokenRecords(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)

	jobs := decodeJobs([]any{
		map[string]any{"id": "j1", "title": "ok"},
		map[string]any{"title": "no id"},
		"not a document",
		map[string]any{"id": "j2"},
	}, zap.New(core))

	assert.Equal(t, []string{"j1", "j2"}, jobs.IDs())
	assert.Equal(t, 2, observed.FilterMessage("skipping job record").Len())
}

func TestFindUser(t *testing.T) {
	items := []any{
		map[string]any{"name": "broken"},
		map[string]any{"id": "u1", "name": "one"},
		map[string]any{"id": "u2", "name": "two"},
	}

	user, err := findUser(items, "u2", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "two", user.Name)

	_, err = findUser(items, "u3", zap.NewNop())
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestDocumentItems(t *testing.T) {
	single := map[string]any{"id": "a"}
	list := []any{single, map[string]any{"id": "b"}}

	assert.Nil(t, documentItems(nil))
	assert.Equal(t, []any{single}, documentItems(single))
	assert.Equal(t, list, documentItems(list))
	assert.Equal(t, list, documentItems(map[string]any{"items": list}))
}
