package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aweris/sicontent"
	"github.com/aweris/sicontent/internal/transfer"
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:               "sicontent",
	Short:             "Game package content service client",
	Long:              "CLI for checking and uploading game packages to a content-addressed content service.",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command with ctx as the parent of every operation.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ~/.config/sicontent/config.yaml)")
	flags.String("endpoint", "", "content service address")
	flags.Duration("timeout", 0, "timeout for each operation (0 disables)")
	flags.Int("segment-size", transfer.DefaultSegmentSize, "bytes handed to the transport between progress reports")
	flags.Int("concurrency", sicontent.DefaultConcurrency, "parallel uploads")
	flags.BoolP("verbose", "v", false, "log every protocol step")
	flags.String("log-format", "text", "log format (text|json)")

	viper.BindPFlag("endpoint", flags.Lookup("endpoint"))
	viper.BindPFlag("timeout", flags.Lookup("timeout"))
	viper.BindPFlag("segment_size", flags.Lookup("segment-size"))
	viper.BindPFlag("concurrency", flags.Lookup("concurrency"))
	viper.BindPFlag("log_format", flags.Lookup("log-format"))
}

func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SICONTENT")
	viper.AutomaticEnv()
	viper.SetDefault("log_level", "warn")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	log.SetOutput(cmd.ErrOrStderr())

	switch format := viper.GetString("log_format"); format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(logrus.DebugLevel)
		return nil
	}
	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)
	return nil
}

func newClient() (*sicontent.Client, error) {
	endpoint := viper.GetString("endpoint")
	if endpoint == "" {
		return nil, fmt.Errorf("no endpoint: set --endpoint, SICONTENT_ENDPOINT or endpoint in the config file")
	}
	return sicontent.New(endpoint,
		sicontent.WithSegmentSize(viper.GetInt("segment_size")),
		sicontent.WithUserAgent("sicontent-cli/"+sicontent.Version),
		sicontent.WithLogger(log),
	)
}

// operationContext bounds one command by the configured timeout.
func operationContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if d := viper.GetDuration("timeout"); d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sicontent")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "sicontent")
	}
	return ".sicontent"
}
