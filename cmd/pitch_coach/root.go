package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/pitch-coach/internal/coach"
	"github.com/jonathan/pitch-coach/internal/config"
	"github.com/jonathan/pitch-coach/internal/feedback"
	"github.com/jonathan/pitch-coach/internal/observability"
	"github.com/jonathan/pitch-coach/internal/records"
	"github.com/jonathan/pitch-coach/internal/store"
)

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	configPath string
	store      string
	dataDir    string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "pitch_coach",
		Short: "Rehearse answers to sales objections and get scored coaching",
		Long: `Pitch Coach scores spoken answers to dentist objections for clarity, confidence and conciseness,
explains weaknesses, gives improvement tips and AI feedback, and tracks points, streaks and badges.

Provider keys are read from GROQ_API_KEY, OPENAI_API_KEY and GEMINI_API_KEY (a .env file is loaded if present).
Without a key, feedback falls back to local heuristics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	root.PersistentFlags().StringVar(&opts.store, "store", "", "Store driver: memory, file, redis or postgres (default file)")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Directory for the file store (default .pitch_coach)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print each evaluation step")

	root.AddCommand(
		newObjectionsCmd(opts),
		newPracticeCmd(opts),
		newHistoryCmd(opts),
		newStatsCmd(opts),
	)
	return root
}

// loadConfig merges the config file, flag overrides and defaults
func (o *rootOptions) loadConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if o.configPath != "" {
		loadedCfg, err := config.LoadConfig(o.configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store = o.store
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = o.dataDir
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.verbose
	}

	cfg = cfg.MergeWithDefaults(config.Config{DatabaseURL: os.Getenv("DATABASE_URL")})
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openStore connects the configured store driver
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	storeType, err := store.ParseStoreType(cfg.Store)
	if err != nil {
		return nil, err
	}

	switch storeType {
	case store.StoreTypeRedis:
		client, err := store.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return store.NewStore(storeType, store.WithRedisClient(client))
	case store.StoreTypePostgres:
		pool, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store.NewStore(storeType, store.WithPostgresPool(pool))
	default:
		return store.NewStore(storeType, store.WithDir(cfg.DataDir))
	}
}

// openEngine builds a loaded coach engine. The returned close func releases the store.
func (o *rootOptions) openEngine(cmd *cobra.Command) (*coach.Engine, func(), error) {
	ctx := cmd.Context()
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	closeStore := func() { _ = st.Close() }

	coordinator := feedback.NewCoordinator(cfg.LLMConfig(os.Getenv), feedback.WithTimeout(cfg.FeedbackTimeout()))

	var onProgress coach.ProgressCallback
	if cfg.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		onProgress = printer.PrintProgress
	}

	engine, err := coach.New(coach.Options{
		Repository: records.New(st, cfg.HistoryLimit),
		Feedback:   coordinator,
		OnProgress: onProgress,
	})
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	if err := engine.Load(ctx); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: some saved data could not be read, using defaults: %v\n", err)
	}
	return engine, closeStore, nil
}
