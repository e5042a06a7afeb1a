package records

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/spigell/jobmatch/internal/matching"
)

// FileSource reads users and jobs from local JSON or YAML files.
type FileSource struct {
	UsersFile string
	JobsFile  string
	logger    *zap.Logger
}

func NewFileSource(usersFile, jobsFile string, logger *zap.Logger) *FileSource {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FileSource{
		UsersFile: usersFile,
		JobsFile:  jobsFile,
		logger:    logger,
	}
}

func (s *FileSource) User(_ context.Context, id string) (*matching.User, error) {
	items, err := readDocumentFile(s.UsersFile)
	if err != nil {
		return nil, fmt.Errorf("reading users: %w", err)
	}

	return findUser(items, id, s.logger)
}

func (s *FileSource) Jobs(_ context.Context) (*Jobs, error) {
	items, err := readDocumentFile(s.JobsFile)
	if err != nil {
		return nil, fmt.Errorf("reading jobs: %w", err)
	}

	s.logger.Debug("read jobs file", zap.String("path", s.JobsFile), zap.Int("records", len(items)))

	return decodeJobs(items, s.logger), nil
}

func readDocumentFile(path string) ([]any, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("file path is not configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &doc)
	default:
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return documentItems(doc), nil
}
