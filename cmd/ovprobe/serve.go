package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pavanmanishd/ovector"
	"github.com/pavanmanishd/ovector/ovmetrics"
)

var (
	serveListen  string
	serveCount   int
	serveVectors int
)

func init() {
	cmd := newServeCmd()
	cmd.Flags().StringVar(&serveListen, "listen", ":9464", "Address to serve /metrics on")
	cmd.Flags().IntVarP(&serveCount, "count", "n", 1<<24, "Maximum number of uint64 elements per vector")
	cmd.Flags().IntVar(&serveVectors, "vectors", 4, "Number of vectors to hold while serving")
	rootCmd.AddCommand(cmd)
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Hold reservations and expose their statistics to Prometheus",
		Long: `The serve command reserves --vectors vectors and keeps them alive while
serving reservation statistics until interrupted.

Endpoints:
  GET /metrics        Prometheus exposition
  GET /stats          process-wide reservation statistics as JSON
  GET /vectors/{id}   metrics of one held vector as JSON

Example:
  ovprobe serve --listen :9464 --vectors 8 --count 100000000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
}

func runServe(ctx context.Context) error {
	if serveVectors < 0 {
		return fmt.Errorf("--vectors must not be negative, got %d", serveVectors)
	}
	held := make([]*ovector.Vector[uint64], 0, serveVectors)
	defer func() {
		for _, v := range held {
			v.Free()
		}
	}()
	for i := range serveVectors {
		v, err := ovector.WithMaxSize[uint64](serveCount)
		if err != nil {
			return fmt.Errorf("vector %d: %w", i, err)
		}
		held = append(held, v)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		ovmetrics.NewCollector("ovector"),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := &http.Server{
		Addr:              serveListen,
		Handler:           newRouter(reg, held),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving metrics",
			zap.String("addr", serveListen),
			zap.Int("vectors", len(held)),
			zap.Int("count", serveCount),
		)
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
	return srv.Shutdown(shutdownCtx)
}

func newRouter(g prometheus.Gatherer, held []*ovector.Vector[uint64]) http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, ovector.ReadReservationStats())
	})
	r.Get("/vectors/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil || id < 0 || id >= len(held) {
			http.Error(w, "no such vector", http.StatusNotFound)
			return
		}
		writeJSON(w, held[id].Metrics())
	})
	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to write response", zap.Error(err))
	}
}
