package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/X1ag/SRTScheduler/internal/domain"
	"github.com/X1ag/SRTScheduler/transport/worker"
)

var (
	watchAfter      string
	watchBefore     string
	watchPriority   string
	watchPassengers passengerFlags
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep searching a route and reserve the first free seat",
}

var watchAddCmd = &cobra.Command{
	Use:   "add FROM TO",
	Short: "Register a route and departure window to watch",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := parseRoute(args[0], args[1])
		if err != nil {
			return err
		}
		after, err := parseTime(watchAfter)
		if err != nil {
			return err
		}
		before, err := parseTime(watchBefore)
		if err != nil {
			return err
		}
		w := &domain.Watch{
			UserID:       cfg.SRT.UserID,
			From:         from,
			To:           to,
			DepartAfter:  after,
			DepartBefore: before,
			Passengers:   watchPassengers.list(),
			Priority:     domain.PriorityPolicy(watchPriority),
		}
		return withApp(cmd, false, func(ctx context.Context, a *app) error {
			if err := a.watches.Create(ctx, w); err != nil {
				return err
			}
			return printJSON(cmd, w)
		})
	},
}

var watchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending watches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, false, func(ctx context.Context, a *app) error {
			pending, err := a.watches.Pending(ctx, cfg.SRT.UserID)
			if err != nil {
				return err
			}
			return printJSON(cmd, pending)
		})
	},
}

var watchRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Process pending watches until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		a, err := newApp(ctx, reg)
		if err != nil {
			return err
		}
		defer a.close(context.WithoutCancel(ctx))

		if err := a.resume(ctx); err != nil {
			return err
		}

		if cfg.Metrics.ListenAddress != "" {
			srv := serveMetrics(cfg.Metrics.ListenAddress, reg)
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()
		}

		slog.Info("worker started", "user", cfg.SRT.UserID, "interval", cfg.Worker.Interval, "concurrency", cfg.Worker.Concurrency)
		worker.NewWorker(a.watches, cfg.SRT.UserID, cfg.Worker.Interval, cfg.Worker.Concurrency).StartPolling(ctx)
		slog.Info("worker stopped")
		return nil
	},
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", "error", err)
		}
	}()
	slog.Info("serving metrics", "address", addr)
	return srv
}

func init() {
	watchAddCmd.Flags().StringVar(&watchAfter, "after", "", "earliest departure in KST")
	watchAddCmd.Flags().StringVar(&watchBefore, "before", "", "latest departure in KST")
	watchAddCmd.Flags().StringVar(&watchPriority, "priority", string(domain.GeneralFirst), "seat priority policy")
	_ = watchAddCmd.MarkFlagRequired("after")
	_ = watchAddCmd.MarkFlagRequired("before")
	addPassengerFlags(watchAddCmd, &watchPassengers)

	watchCmd.AddCommand(watchAddCmd, watchListCmd, watchRunCmd)
	rootCmd.AddCommand(watchCmd)
}
