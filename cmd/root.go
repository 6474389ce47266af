package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wiamouali-star/voice-acc-app/internal/classify"
	"github.com/wiamouali-star/voice-acc-app/internal/config"
	"github.com/wiamouali-star/voice-acc-app/internal/feed"
	"github.com/wiamouali-star/voice-acc-app/internal/searchlog"
	"github.com/wiamouali-star/voice-acc-app/internal/server"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig string
	flagPort   int
)

var rootCmd = &cobra.Command{
	Use:   "voice-acc-app",
	Short: "News backend for the voice assistant",
	Long:  "Aggregates RSS news sources, classifies voice search queries and serves both over HTTP.",
	RunE:  runServer,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to a sources yaml file")
	rootCmd.Flags().IntVar(&flagPort, "port", 0, "listening port (overrides PORT)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("voice-acc-app %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagPort != 0 {
		cfg.Port = flagPort
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	slog.Info("starting voice assistant backend",
		"port", cfg.Port,
		"sources", len(cfg.Sources),
		"classifier", cfg.ClassifierEnabled(),
		"search_log", cfg.SearchLogEnabled(),
	)

	classifier := classify.New(cfg.OpenAIKey, classify.WithModel(cfg.OpenAIModel))
	if classifier == nil {
		slog.Info("remote classifier not configured, using keyword fallback only")
	}
	sink := searchlog.New(cfg.StorageConnString, cfg.LogContainer, cfg.LogBlob)
	aggregator := feed.NewAggregator(cfg.Sources)

	srv := server.New(cfg, aggregator, classifier, sink)
	return srv.Run()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
