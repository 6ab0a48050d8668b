package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/tableval/internal/geometry"
	"github.com/sells-group/tableval/internal/gold"
	"github.com/sells-group/tableval/internal/match"
	"github.com/sells-group/tableval/internal/server"
)

var (
	servePort    int
	serveGold    string
	serveNoStore bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the evaluation engine over HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		dataset, err := gold.LoadFile(serveGold)
		if err != nil {
			return err
		}

		evaluator := match.NewEvaluator(nil, match.EvaluatorConfig{Workers: cfg.Eval.Workers})
		recon := geometry.NewReconstructor(nil)

		srv := server.New(dataset, evaluator, recon, nil, cfg.Server)
		if !serveNoStore {
			st, err := openStore(ctx, cfg.Store)
			if err != nil {
				return err
			}
			defer st.Close()
			srv = server.New(dataset, evaluator, recon, st, cfg.Server)
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		httpSrv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: srv.Router(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = httpSrv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.Int("gold_docs", len(dataset.Docs())),
			zap.Int("gold_tables", len(dataset.Tables())),
		)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	f := serveCmd.Flags()
	f.IntVar(&servePort, "port", 0, "listen port (default: config)")
	f.StringVar(&serveGold, "gold", "", "gold dataset file (JSONL)")
	f.BoolVar(&serveNoStore, "no-store", false, "disable the run store")
	_ = serveCmd.MarkFlagRequired("gold")

	rootCmd.AddCommand(serveCmd)
}
