package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/logger"
	"github.com/spigell/jobmatch/internal/matching"
	"github.com/spigell/jobmatch/internal/records"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single job against a user profile",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("user", "u", "", "user id to score for")
	scoreCmd.Flags().StringP("job", "i", "", "job id to score")

	scoreCmd.MarkFlagRequired("user")
	scoreCmd.MarkFlagRequired("job")
}

func score(cmd *cobra.Command) {
	ctx := context.Background()

	log, err := newLogger()
	if err != nil {
		logFatal(err)
	}
	defer log.Sync()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	userID, _ := cmd.Flags().GetString("user")
	jobID, _ := cmd.Flags().GetString("job")

	source, closeSource, err := openSource(ctx, config.Source, log)
	if err != nil {
		log.Fatal("opening the record source", zap.Error(err))
	}
	defer closeSource()

	result, err := scoreJob(ctx, source, config.Source.Statuses, userID, jobID)
	if err != nil {
		log.Fatal("scoring the job", zap.Error(err),
			zap.String(logger.FieldUserID, userID),
			zap.String(logger.FieldJobID, jobID),
		)
	}
	log.Debug("scored", logger.MatchFields(userID, jobID, result.MatchPercentage)...)

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal("encoding the result", zap.Error(err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
}

// scoreJob scores one eligible job for the user. A job whose status is not
// in statuses never reaches the scorer.
func scoreJob(ctx context.Context, source records.Source, statuses []string, userID, jobID string) (matching.MatchResult, error) {
	user, err := source.User(ctx, userID)
	if err != nil {
		return matching.MatchResult{}, fmt.Errorf("loading the user: %w", err)
	}

	jobs, err := source.Jobs(ctx)
	if err != nil {
		return matching.MatchResult{}, fmt.Errorf("loading jobs: %w", err)
	}

	job, err := jobs.Get(jobID)
	if err != nil {
		return matching.MatchResult{}, err
	}

	if !records.IsEligible(job, statuses) {
		return matching.MatchResult{}, fmt.Errorf("%w: status %q", records.ErrJobNotEligible, job.Status)
	}

	return matching.CalculateJobMatch(*user, *job), nil
}

func newLogger() (*zap.Logger, error) {
	return logger.New(viper.GetBool("json"), viper.GetBool("debug"))
}

func logFatal(err error) {
	log.Fatalf("creating a logger: %s", err)
}
