package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "jobmatch"
	envPrefix = "JOBMATCH"
)

type Config struct {
	Source      *SourceConfig `mapstructure:"source" validate:"required"`
	Rank        *RankConfig   `mapstructure:"rank"`
	ExcludeFile string        `mapstructure:"exclude-file"`
	AI          *AIConfig     `mapstructure:"ai"`
}

type SourceConfig struct {
	Kind        string   `mapstructure:"kind" validate:"required,oneof=file http postgres"`
	UsersFile   string   `mapstructure:"users-file" validate:"required_if=Kind file"`
	JobsFile    string   `mapstructure:"jobs-file" validate:"required_if=Kind file"`
	URL         string   `mapstructure:"url" validate:"required_if=Kind http,omitempty,url"`
	TokenFile   string   `mapstructure:"token-file"`
	DatabaseURL string   `mapstructure:"database-url"`
	Statuses    []string `mapstructure:"statuses"`
}

type RankConfig struct {
	Limit            int      `mapstructure:"limit" validate:"gte=0"`
	MinimumMatch     int      `mapstructure:"minimum-match" validate:"gte=0,lte=100"`
	Workers          int      `mapstructure:"workers" validate:"gte=0"`
	ExcludeCompanies []string `mapstructure:"exclude-companies"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	Top      int           `mapstructure:"top" validate:"gte=0"`
	Gemini   *GeminiConfig `mapstructure:"gemini" validate:"required_if=Enabled true"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries" validate:"gte=0"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobmatch scores job postings against a candidate profile and ranks them",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config is not needed to print the version.
	if versionCmd.CalledAs() != "" {
		return
	}

	// .env is optional
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		return nil, fmt.Errorf("config is empty")
	}

	if config.Rank == nil {
		config.Rank = &RankConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}
