// Package cmd provides the CLI commands of the srt client.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/X1ag/SRTScheduler/internal"
	"github.com/X1ag/SRTScheduler/internal/config"
	"github.com/X1ag/SRTScheduler/internal/infrastructure/srt"
	"github.com/X1ag/SRTScheduler/internal/repository/postgres"
	"github.com/X1ag/SRTScheduler/internal/usecase"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "srt",
	Short: "SRT train search and reservation client",
	Long: `srt searches SRT train schedules and manages seat reservations.

Sessions are stored in PostgreSQL so later commands reuse the login of
earlier ones. Credentials come from the config file (srt.user_id,
srt.password), which may reference environment variables as ${VAR}.

Commands print JSON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.GetConfig(cfgFile)
		if err != nil {
			return err
		}
		internal.SetupLogging(cfg.Log.Level, cfg.Log.JSON)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $SRT_CONFIG or ./config.yml)")
}

// app wires the client, the database and the usecases for one command.
type app struct {
	client   *srt.Client
	pool     *pgxpool.Pool
	sessions *usecase.SessionUsecase
	watches  *usecase.WatchUsecase

	// forget skips storing the session on close.
	forget bool
}

func newApp(ctx context.Context, reg prometheus.Registerer) (*app, error) {
	opts := []srt.Option{
		srt.WithBaseURL(cfg.SRT.BaseURL),
		srt.WithHTTPClient(&http.Client{Timeout: cfg.SRT.Timeout}),
	}
	if cfg.SRT.UserAgent != "" {
		opts = append(opts, srt.WithUserAgent(cfg.SRT.UserAgent))
	}
	if reg != nil {
		opts = append(opts, srt.WithMetrics(srt.NewMetrics(reg)))
	}
	client := srt.NewClient(opts...)

	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return &app{
		client:   client,
		pool:     pool,
		sessions: usecase.NewSessionUsecase(postgres.NewSessionRepository(pool), client),
		watches:  usecase.NewWatchUsecase(postgres.NewWatchRepository(pool), client),
	}, nil
}

// resume restores the stored session of the configured account.
func (a *app) resume(ctx context.Context) error {
	return a.sessions.Resume(ctx, cfg.SRT.UserID, cfg.SRT.Password)
}

// close stores the session again, since an automatic re-login may have
// replaced its cookies, and releases the database.
func (a *app) close(ctx context.Context) {
	if !a.forget && a.client.Session().IsAuthenticated() && cfg.SRT.UserID != "" {
		_ = a.sessions.Save(ctx, cfg.SRT.UserID)
	}
	a.pool.Close()
}

// withApp runs fn with a wired app, optionally resuming the session first.
func withApp(cmd *cobra.Command, login bool, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, nil)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if login {
		if err := a.resume(ctx); err != nil {
			return err
		}
	}
	return fn(ctx, a)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
