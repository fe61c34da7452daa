package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tagforge/go-tagscript"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a render endpoint over HTTP",
	Long: `Serve exposes the interpreter over HTTP:

  POST /render    {"script": "...", "variables": {"k": "v"}}
  GET  /healthz   liveness probe
  GET  /metrics   prometheus metrics`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	rootCmd.AddCommand(serveCmd)
}

// renderRequest is the POST /render payload.
type renderRequest struct {
	Script    string            `json:"script"`
	Variables map[string]string `json:"variables,omitempty"`
}

// renderResponse is the POST /render result.
type renderResponse struct {
	Body    string         `json:"body"`
	Actions map[string]any `json:"actions,omitempty"`
	Extra   map[string]any `json:"extra,omitempty"`
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, err := buildLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	registry := prometheus.NewRegistry()
	metrics := tagscript.NewMetrics(registry)

	interpreter, err := tagscript.NewAsync(standardBlocks(),
		tagscript.WithLogger(logger),
		tagscript.WithMetrics(metrics),
	)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	r.Post("/render", handleRender(interpreter, logger))

	addr, _ := cmd.Flags().GetString("addr")
	logger.Info("listening", zap.String("addr", addr))

	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server.ListenAndServe()
}

// handleRender interprets the posted script with seed variables.
func handleRender(interpreter *tagscript.AsyncInterpreter, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req renderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		seed := make(map[string]tagscript.Adapter, len(req.Variables))
		for key, value := range req.Variables {
			seed[key] = tagscript.NewStringAdapter(value)
		}

		resp, err := interpreter.Process(r.Context(), req.Script, seed)
		if err != nil {
			logger.Warn("render failed", zap.Error(err))
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(renderResponse{
			Body:    resp.Body,
			Actions: resp.Actions,
			Extra:   resp.Extra,
		}); err != nil {
			logger.Warn("encode failed", zap.Error(err))
		}
	}
}
