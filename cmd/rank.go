package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/ai"
	"github.com/spigell/jobmatch/internal/ai/gemini"
	"github.com/spigell/jobmatch/internal/filtering"
	"github.com/spigell/jobmatch/internal/logger"
	"github.com/spigell/jobmatch/internal/matching"
	"github.com/spigell/jobmatch/internal/ranking"
	"github.com/spigell/jobmatch/internal/records"
	"github.com/spigell/jobmatch/internal/secrets"
)

const (
	PromptDetails             = "Show match details"
	PromptReportByCompanies   = "Report by companies"
	PromptRankedToFile        = "Dump ranked jobs to file"
	PromptAppendToExcludeFile = "Append ranked jobs to exclude file"
	PromptExit                = "Exit"
	PromptBack                = "back"

	excludeActor = "jobmatch"
	geminiKeyEnv = "GEMINI_API_KEY"
	defaultAITop = 3

	statusFilterName = "status"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptDetails, PromptReportByCompanies, PromptRankedToFile, PromptAppendToExcludeFile, PromptExit},
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank all eligible jobs for a user",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("user", "u", "", "user id to rank jobs for")
	rankCmd.Flags().BoolP("yes", "y", false, "print ranked jobs as json and exit without the interactive menu")
	rankCmd.Flags().StringP("exclude-file", "e", "", "special file with jobs to exclude. Default is unset.")
	rankCmd.Flags().IntP("limit", "l", 0, "keep only the best N results")
	rankCmd.Flags().IntP("minimum-match", "m", 0, "drop results under this percentage")
	rankCmd.Flags().Bool("all-statuses", false, "rank jobs regardless of their status")

	rankCmd.MarkFlagRequired("user")

	viper.BindPFlag("exclude-file", rankCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("rank.limit", rankCmd.Flags().Lookup("limit"))
	viper.BindPFlag("rank.minimum-match", rankCmd.Flags().Lookup("minimum-match"))
}

func rank(cmd *cobra.Command) {
	ctx := context.Background()

	log, err := newLogger()
	if err != nil {
		logFatal(err)
	}
	defer log.Sync()

	log = logger.WithRunID(log, uuid.NewString())

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	log.Info("starting the jobmatch", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	log.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	userID, _ := cmd.Flags().GetString("user")

	source, closeSource, err := openSource(ctx, config.Source, log)
	if err != nil {
		log.Fatal("opening the record source", zap.Error(err))
	}
	defer closeSource()

	user, err := source.User(ctx, userID)
	if err != nil {
		log.Fatal("loading the user", zap.Error(err), zap.String(logger.FieldUserID, userID))
	}

	jobs, err := source.Jobs(ctx)
	if err != nil {
		log.Fatal("loading jobs", zap.Error(err))
	}

	log.Info("getting jobs", zap.Int("count", jobs.Len()))

	allStatuses, _ := cmd.Flags().GetBool("all-statuses")
	filters := prepareFilters(config, allStatuses, log)
	log.Debug("prepared filters", zap.Any("filters", filters.Describe()))

	jobs, err = filters.RunFilters(ctx, jobs)
	if err != nil {
		log.Fatal("filtering failed", zap.Error(err))
	}

	ranked, err := ranking.Rank(ctx, user, jobs.Items, ranking.Options{
		Workers:      config.Rank.Workers,
		MinimumMatch: config.Rank.MinimumMatch,
		Limit:        config.Rank.Limit,
	})
	if err != nil {
		log.Fatal("ranking failed", zap.Error(err))
	}

	if len(ranked) == 0 {
		log.Info("exiting", zap.String("reason", "no eligible matches"))
		return
	}

	log.Info("ranked jobs", zap.Int("count", len(ranked)), zap.Int("best_match", ranked[0].Result.MatchPercentage))

	if config.AI.Enabled {
		narrator, err := newNarrator(ctx, config.AI, log)
		if err != nil {
			log.Warn("skipping narration", zap.Error(err))
		} else {
			top := config.AI.Top
			if top == 0 {
				top = defaultAITop
			}
			ranking.Narrate(ctx, narrator, user, ranked, top, log)
		}
	}

	if ok, _ := cmd.Flags().GetBool("yes"); ok {
		out, err := json.MarshalIndent(ranked, "", "  ")
		if err != nil {
			log.Fatal("encoding ranked jobs", zap.Error(err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			log.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, log, config, user, ranked); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			log.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, log *zap.Logger, config *Config, user *matching.User, ranked []ranking.Ranked) error {
	switch action {
	case PromptExit:
		log.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptDetails:
		return showDetails(log, user, ranked)
	case PromptReportByCompanies:
		pretty, _ := json.MarshalIndent(ranking.ReportByCompany(ranked), "", "  ")
		log.Info(string(pretty), zap.Int("jobs count", len(ranked)))
		return nil
	case PromptRankedToFile:
		jobs := &records.Jobs{Items: ranking.Jobs(ranked)}
		filename, err := jobs.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		log.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(log, config.ExcludeFile, ranked)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func showDetails(log *zap.Logger, user *matching.User, ranked []ranking.Ranked) error {
	items := make([]string, 0, len(ranked)+1)
	for _, r := range ranked {
		items = append(items, fmt.Sprintf("%s %d%% %s / %s",
			r.Job.ID, r.Result.MatchPercentage, r.Job.Title, r.Job.CompanyName,
		))
	}

	jobPrompt := promptui.Select{
		Label: "Choose a job and press ENTER",
		Items: append(items, PromptBack),
	}

	for {
		_, selected, err := jobPrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}

		jobID := strings.Split(selected, " ")[0]
		for _, r := range ranked {
			if r.Job.ID != jobID {
				continue
			}
			pretty, _ := json.MarshalIndent(r, "", "  ")
			log.Info(string(pretty), logger.MatchFields(user.ID, r.Job.ID, r.Result.MatchPercentage)...)
		}
	}
}

func appendToExcludeFile(log *zap.Logger, excludeFile string, ranked []ranking.Ranked) error {
	if excludeFile == "" {
		log.Warn("exclude file is not configured", zap.String("hint", "set exclude-file in the config or pass --exclude-file"))
		return nil
	}

	excluded, err := records.GetExcludedJobsFromFile(excludeFile)
	if err != nil {
		return err
	}

	jobs := &records.Jobs{Items: ranking.Jobs(ranked)}
	excluded.Append(jobs.ToExcluded(excludeActor, "ranked"))

	if err := excluded.ToFile(excludeFile); err != nil {
		return err
	}

	log.Info("appended to exclude file", zap.String("filename", excludeFile), zap.Int("count", jobs.Len()))
	return nil
}

func prepareFilters(config *Config, allStatuses bool, log *zap.Logger) *filtering.Filtering {
	steps := []filtering.Filter{
		filtering.NewStatus(config.Source.Statuses, log),
		filtering.NewExcludedCompanies(config.Rank.ExcludeCompanies, log),
		filtering.NewExcludeFile(config.ExcludeFile, log),
	}

	filters := filtering.New(steps, log)
	if allStatuses {
		filters.DisableByName(statusFilterName, "--all-statuses is set")
	}

	return filters
}

func newNarrator(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Narrator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  geminiKeyEnv,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or %s)", err, geminiKeyEnv)
	}

	genLogger := log.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewNarrator(generator, cfg.Gemini.MaxLogLength, log), nil
}
