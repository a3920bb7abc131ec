package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/georgiaharvey/club-reports/internal/chat"
	"github.com/georgiaharvey/club-reports/internal/report"
	"github.com/georgiaharvey/club-reports/internal/sheets"
	"github.com/georgiaharvey/club-reports/pkg/anthropic"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		src := newSource()
		opts, err := reportOptions()
		if err != nil {
			return err
		}

		var chatClient anthropic.Client
		if cfg.Anthropic.Key != "" {
			chatClient = anthropic.NewClient(cfg.Anthropic.Key)
		}

		r := buildRouter(src, opts, chatClient, cfg.Anthropic.Model)

		port := resolvePort(servePort, cfg.Server.Port)

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// resolvePort prefers the flag value over the configured port.
func resolvePort(flag, configured int) int {
	if flag != 0 {
		return flag
	}
	return configured
}

// buildRouter assembles the dashboard API. A nil chatClient disables the
// chat endpoint with a 503 rather than failing startup.
func buildRouter(src sheets.Source, opts report.Options, chatClient anthropic.Client, chatModel string) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(requestLogger)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// One synchronous pipeline run per request; nothing is cached between
	// calls, so the dashboard always reflects the live sheet.
	r.Get("/api/report", func(w http.ResponseWriter, req *http.Request) {
		rep, err := report.Build(req.Context(), src, opts)
		if err != nil {
			zap.L().Error("report build failed", zap.Error(err))
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "spreadsheet fetch failed"})
			return
		}
		writeJSON(w, http.StatusOK, rep)
	})

	r.Post("/api/chat", func(w http.ResponseWriter, req *http.Request) {
		if chatClient == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "chat is not configured"})
			return
		}

		var body struct {
			Prompt string `json:"prompt"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Prompt == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "prompt is required"})
			return
		}

		rep, err := report.Build(req.Context(), src, opts)
		if err != nil {
			zap.L().Error("report build failed", zap.Error(err))
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "spreadsheet fetch failed"})
			return
		}

		answer, err := chat.Ask(req.Context(), chatClient, chatModel, rep, body.Prompt)
		if err != nil {
			zap.L().Error("chat failed", zap.Error(err))
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "chat completion failed"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
	})

	return r
}

// requestLogger tags each request with an ID and logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := uuid.New().String()
		start := time.Now()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, req)
		zap.L().Info("request",
			zap.String("request_id", id),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
