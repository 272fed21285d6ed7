package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"totem-quiz-bot/internal/app"
	"totem-quiz-bot/internal/config"
	"totem-quiz-bot/internal/domain"
	"totem-quiz-bot/internal/render"
	transport "totem-quiz-bot/internal/transport/http"
	"totem-quiz-bot/internal/transport/telegram"
)

const webhookPath = "/telegram/webhook"

// NewStartCmd builds the CLI subcommand to start the bot.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := openDeps(ctx, configPath)
	if err != nil {
		return err
	}
	defer d.close()
	cfg := d.cfg

	if d.pool != nil {
		if err := runMigrationsWithConfig(ctx, cfg, d.log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}

	catalog, err := d.loadCatalog(ctx)
	if err != nil {
		return err
	}
	d.log.Info("catalog loaded", "source", cfg.Quiz.Source, "questions", catalog.QuestionCount(), "outcomes", len(catalog.Outcomes()))

	renderer, err := render.NewRenderer(catalog, cfg.Render.FontPath, d.log)
	if err != nil {
		return err
	}
	engine := app.NewQuizEngine(d.stateRepository(), catalog)
	flow := app.NewQuizFlow(engine, renderer, render.NewFileStore(cfg.Render.OutputDir), domain.Contact{
		Email: cfg.Contact.Email,
		Phone: cfg.Contact.Phone,
	})
	flow.SetLogger(d.log)
	feedback := app.NewFeedbackService(d.feedbackRepository())

	g, gctx := errgroup.WithContext(ctx)

	var webhook http.Handler
	if cfg.Telegram.Token == "" {
		d.log.Warn("BOT_TOKEN not set, telegram transport disabled")
	} else {
		client := telegram.NewClient(cfg.Telegram.APIURL, cfg.Telegram.Token)
		handler := telegram.NewUpdateHandler(client, flow, feedback, d.log)
		switch cfg.Telegram.Mode {
		case "webhook":
			webhook = telegram.NewWebhookHandler(handler, cfg.Telegram.WebhookSecret, d.log)
			if err := telegram.RegisterWebhook(ctx, client, cfg.Telegram.WebhookURL, cfg.Telegram.WebhookSecret); err != nil {
				return err
			}
			d.log.Info("telegram webhook registered", "url", cfg.Telegram.WebhookURL)
		default:
			poller := telegram.NewPoller(client, handler, config.TTLDuration(cfg.Telegram.PollTimeout, 30*time.Second), d.log)
			g.Go(func() error {
				return poller.Run(gctx)
			})
		}
	}

	srv := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           transport.NewRouter(transport.NewWSHandler(flow, d.log), webhookPath, webhook),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		d.log.Info("listening", "addr", srv.Addr, "telegram_mode", cfg.Telegram.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	d.log.Info("bot stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
