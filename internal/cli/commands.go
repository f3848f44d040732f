package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/symptom-checker/config"
	"github.com/yourusername/symptom-checker/internal/app"
	"github.com/yourusername/symptom-checker/internal/delivery/rest"
	"github.com/yourusername/symptom-checker/internal/delivery/telegram"
	"github.com/yourusername/symptom-checker/internal/usecase"
)

// runtime state shared by the subcommands of one invocation
type runtime struct {
	cfg    *config.Config
	app    *app.App
	userID int64
}

func (r *runtime) open(ctx context.Context) (*app.App, error) {
	if r.app != nil {
		return r.app, nil
	}
	a, err := app.New(ctx, r.cfg)
	if err != nil {
		return nil, err
	}
	r.app = a
	return a, nil
}

func (r *runtime) close() error {
	if r.app == nil {
		return nil
	}
	err := r.app.Close()
	r.app = nil
	return err
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rt := &runtime{}

	rootCmd := &cobra.Command{
		Use:   "symptom-checker",
		Short: "Symptom checker - browse symptoms, run a demo check, chat with the assistant",
		Long: `symptom-checker serves a rule-based health assistant over HTTP, Telegram and the terminal.
Predictions are fixed demo results and never a medical diagnosis.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log.SetLevel(cfg.LogLevel)
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}
			rt.cfg = cfg
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return rt.close()
		},
	}

	rootCmd.AddCommand(newServeCmd(rt))
	rootCmd.AddCommand(newBotCmd(rt))
	rootCmd.AddCommand(newAskCmd(rt))
	rootCmd.AddCommand(newChatCmd(rt))
	rootCmd.AddCommand(newSymptomsCmd(rt))
	rootCmd.AddCommand(newPredictCmd(rt))

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Int64Var(&rt.userID, "user", 1, "User id the conversation and checks belong to")

	return rootCmd
}

// newServeCmd JSON API
func newServeCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := rt.open(ctx)
			if err != nil {
				return err
			}

			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = rt.cfg.HTTPAddr
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           rest.NewRouter(rest.NewHandler(a.Symptoms, a.Predictions, a.Chat)),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.WithField("addr", addr).Info("http server listening")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			log.Info("http server stopping")
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (defaults to HTTP_ADDR)")
	return cmd
}

// newBotCmd Telegram bot
func newBotCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.cfg.ValidateBot(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := rt.open(ctx)
			if err != nil {
				return err
			}

			handler, err := telegram.NewBotHandler(rt.cfg.TelegramToken, a.Symptoms, a.Predictions, a.Chat, a.Admin)
			if err != nil {
				return err
			}
			if err := handler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

// newAskCmd one question to the assistant
func newAskCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [TEXT...]",
		Short: "Ask the health assistant one question",
		Example: `  symptom-checker ask "I have a fever"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}

			reply, err := a.Chat.Send(cmd.Context(), rt.userID, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if reply == nil {
				return errors.New("question is empty")
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderReply(reply.Text))
			return nil
		},
	}
}

// newChatCmd interactive conversation
func newChatCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the health assistant interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}
			exportPath, _ := cmd.Flags().GetString("export")
			session := NewChatSession(a.Chat, rt.userID, cmd.InOrStdin(), cmd.OutOrStdout())
			return session.Run(cmd.Context(), exportPath)
		},
	}
	cmd.Flags().String("export", "", "Write the transcript to this file on exit")
	return cmd
}

// newSymptomsCmd catalog listing
func newSymptomsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symptoms",
		Short: "List symptoms, optionally filtered",
		Example: `  symptom-checker symptoms --search pain
  symptom-checker symptoms --category Respiratory`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}

			search, _ := cmd.Flags().GetString("search")
			category, _ := cmd.Flags().GetString("category")
			list, err := a.Symptoms.Filter(cmd.Context(), search, category)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSymptoms(list))
			return nil
		},
	}
	cmd.Flags().String("search", "", "Case-insensitive text matched against name and description")
	cmd.Flags().String("category", "", "Exact category name")
	return cmd
}

// newPredictCmd demo check
func newPredictCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "predict [SYMPTOM_ID...]",
		Short: "Run a symptom check",
		Example: `  symptom-checker predict fever cough`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}

			p, err := a.Predictions.Predict(cmd.Context(), rt.userID, args)
			if errors.Is(err, usecase.ErrUnknownSymptom) {
				return fmt.Errorf("%w (see 'symptom-checker symptoms')", err)
			}
			if err != nil {
				return err
			}
			names, err := a.Symptoms.Names(cmd.Context(), p.Symptoms)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPrediction(*p, names))
			return nil
		},
	}
}
