package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/studyplan/internal/config"
	"github.com/example/studyplan/internal/database"
	"github.com/example/studyplan/internal/logger"
	"github.com/example/studyplan/internal/study"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand creates the root command for the studyplan CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "studyplan",
		Short: "Spaced repetition planner for study topics",
		Long: `Studyplan keeps track of study topics and schedules review sessions
on a fixed spaced repetition ladder.`,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewDueCommand(opts))
	cmd.AddCommand(NewMaterializeCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	return cmd
}

// app is the wiring shared by every command
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	store   *database.Store
	service *study.Service
}

func newApp(ctx context.Context, opts *RootOptions) (*app, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.Connect(ctx, database.Options{
		Type: cfg.DBType,
		Path: cfg.DBPath,
		URL:  cfg.DatabaseURL,
	})
	if err != nil {
		log.Sync()
		return nil, err
	}

	store := database.NewStore(db)
	return &app{
		cfg:     cfg,
		log:     log,
		store:   store,
		service: study.NewService(store, study.WithLogger(log)),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("Failed to close database", "error", err)
	}
	a.log.Sync()
}
