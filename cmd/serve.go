package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/market-research-cli/internal/model"
	"github.com/sells-group/market-research-cli/internal/pipeline"
	"github.com/sells-group/market-research-cli/internal/store"
)

var servePort int

// buildMux wires the HTTP routes. Scrape requests run the pipeline
// inline and answer with the artifact descriptors; artifacts are served
// straight from the store.
func buildMux(st store.Store, p *pipeline.Pipeline, defaultMinPopulation int) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /scrape", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			States        []string `json:"states"`
			MinPopulation int      `json:"min_population"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		if len(req.States) == 0 {
			http.Error(w, `{"error":"states is required"}`, http.StatusBadRequest)
			return
		}

		minPopulation := req.MinPopulation
		if minPopulation == 0 {
			minPopulation = defaultMinPopulation
		}

		if p == nil {
			http.Error(w, `{"error":"pipeline unavailable"}`, http.StatusServiceUnavailable)
			return
		}

		files, err := p.Run(r.Context(), req.States, minPopulation)
		if err != nil {
			zap.L().Error("scrape request failed",
				zap.Strings("states", req.States),
				zap.Error(err),
			)
			http.Error(w, `{"error":"scrape failed"}`, http.StatusInternalServerError)
			return
		}
		zap.L().Info("scrape request complete",
			zap.Strings("states", req.States),
			zap.Int("artifacts", len(files)),
		)

		if files == nil {
			files = []model.GeneratedFile{}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(files)
	})

	mux.HandleFunc("GET /files", func(w http.ResponseWriter, r *http.Request) {
		files, err := st.ListFiles(r.Context())
		if err != nil {
			zap.L().Error("list files failed", zap.Error(err))
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		if files == nil {
			files = []model.GeneratedFile{}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(files)
	})

	mux.HandleFunc("GET /download/{filename}", func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("filename")
		file, err := st.GetFile(r.Context(), name)
		if err != nil {
			http.Error(w, `{"error":"file not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
		w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
		w.WriteHeader(http.StatusOK)
		w.Write(file.Content)
	})

	return mux
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for scrape requests and artifact retrieval",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx, "")
		if err != nil {
			return err
		}
		defer env.Close()

		mux := buildMux(env.Store, env.Pipeline, cfg.Scrape.MinPopulation)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
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

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
