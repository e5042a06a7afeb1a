package records

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/matching"
)

var validate = validator.New()

// decodeDocument decodes a loosely typed document into target.
// Skills may arrive either as a list or as a comma separated string.
func decodeDocument(input any, target any) error {
	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

func decodeUser(input any) (*matching.User, error) {
	var user matching.User
	if err := decodeDocument(input, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if err := validate.Struct(user); err != nil {
		return nil, fmt.Errorf("validate user: %w", err)
	}

	return &user, nil
}

func decodeJob(input any) (*matching.Job, error) {
	var job matching.Job
	if err := decodeDocument(input, &job); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	if err := validate.Struct(job); err != nil {
		return nil, fmt.Errorf("validate job: %w", err)
	}

	return &job, nil
}

// decodeJobs decodes every item and skips the broken ones.
func decodeJobs(items []any, logger *zap.Logger) *Jobs {
	jobs := &Jobs{Items: make([]*matching.Job, 0, len(items))}
	for idx, item := range items {
		job, err := decodeJob(item)
		if err != nil {
			logger.Warn("skipping job record", zap.Int("index", idx), zap.Error(err))
			continue
		}
		jobs.Items = append(jobs.Items, job)
	}

	return jobs
}

// findUser returns the first valid user document with the given id.
func findUser(items []any, id string, logger *zap.Logger) (*matching.User, error) {
	for idx, item := range items {
		user, err := decodeUser(item)
		if err != nil {
			logger.Warn("skipping user record", zap.Int("index", idx), zap.Error(err))
			continue
		}
		if user.ID == id {
			return user, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
}

// documentItems unwraps a document holding a single record, a list of
// records, or an {"items": [...]} envelope.
func documentItems(doc any) []any {
	switch v := doc.(type) {
	case nil:
		return nil
	case []any:
		return v
	case map[string]any:
		if items, ok := v["items"].([]any); ok {
			return items
		}
		return []any{v}
	default:
		return []any{v}
	}
}
