package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/records"
	"github.com/spigell/jobmatch/internal/secrets"
)

const (
	sourceFile     = "file"
	sourceHTTP     = "http"
	sourcePostgres = "postgres"

	tokenEnv       = "JOBMATCH_API_TOKEN"
	databaseURLEnv = "DATABASE_URL"
)

// openSource builds the configured record source. The returned func releases
// resources held by the source and is always safe to call.
func openSource(ctx context.Context, config *SourceConfig, logger *zap.Logger) (records.Source, func(), error) {
	noop := func() {}

	switch config.Kind {
	case sourceFile:
		return records.NewFileSource(config.UsersFile, config.JobsFile, logger), noop, nil
	case sourceHTTP:
		token, err := resolveToken(config)
		if err != nil {
			return nil, noop, err
		}
		return records.NewClient(config.URL, token, logger), noop, nil
	case sourcePostgres:
		dsn, err := secrets.Load(secrets.Source{
			Name:  "database url",
			Value: config.DatabaseURL,
			Env:   databaseURLEnv,
		})
		if err != nil {
			return nil, noop, err
		}
		pg, err := records.NewPostgresSource(ctx, dsn, logger)
		if err != nil {
			return nil, noop, err
		}
		return pg, pg.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported source kind: %s", config.Kind)
	}
}

// resolveToken returns the API token for the http source. The token is
// optional unless a token file is configured.
func resolveToken(config *SourceConfig) (string, error) {
	token, err := secrets.Load(secrets.Source{
		Name: "api token",
		File: config.TokenFile,
		Env:  tokenEnv,
	})
	if err != nil && config.TokenFile != "" {
		return "", err
	}
	return token, nil
}
