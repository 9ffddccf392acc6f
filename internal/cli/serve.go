package cli

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/example/studyplan/internal/api"
	"github.com/example/studyplan/internal/notify"
	"github.com/example/studyplan/internal/scheduler"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "serve",
		Short:        "Run the HTTP API and the daily scheduler",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, rootOpts)
		},
	}
}

func runServe(ctx context.Context, opts *RootOptions) error {
	a, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.SchedulerEnabled {
		var notifier scheduler.Notifier
		if a.cfg.NotificationsEnabled() {
			tg, err := notify.NewTelegramNotifier(a.cfg.TelegramToken, a.cfg.TelegramChatID)
			if err != nil {
				// reminders are optional, the API still serves
				a.log.Warn("Telegram notifier disabled", "error", err)
			} else {
				notifier = tg
			}
		}

		sched := scheduler.New(a.service, notifier, a.cfg.MaterializeAt, a.log)
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
		a.log.Info("Next daily run", "at", sched.NextRun())
	}

	server := api.NewServer(net.JoinHostPort("", a.cfg.Port), api.NewHandler(a.service), a.log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx)
	})
	return g.Wait()
}
