package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"webpower-client/internal/config"
	"webpower-client/internal/metrics"
	"webpower-client/internal/webpower"
)

var (
	configPath string
	envFile    string
	verbose    bool

	client *webpower.Client
)

func Execute() error {
	root := &cobra.Command{
		Use:          "webpower",
		Short:        "Command line client for the Webpower SOAP API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return err
				}
			} else {
				// A missing default .env file is fine.
				_ = godotenv.Load()
			}

			cfg, err := config.NewFromYaml(configPath)
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			opts := []webpower.Option{webpower.WithLogger(logger)}
			if port := cfg.GetMetricsPort(); port > 0 {
				m := metrics.New()
				m.StartServer(port)
				opts = append(opts, webpower.WithMetrics(m))
			}

			client = webpower.New(cfg.GetClientConfig(), opts...)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML configuration file")
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "env file expanded into the configuration (default .env)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log API calls at debug level")

	root.AddCommand(
		mailinglistsCmd(),
		subscribeCmd(),
		unsubscribeCmd(),
		subscriberCmd(),
		unsubscriptionsCmd(),
		createMailingCmd(),
		createFromTemplateCmd(),
		sendCmd(),
	)

	return root.Execute()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(arg string, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, arg)
	}
	return id, nil
}

// parseTime accepts RFC 3339 timestamps and plain dates.
func parseTime(arg string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, arg); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", arg); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q, want RFC 3339 or YYYY-MM-DD", arg)
}
