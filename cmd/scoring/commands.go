package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/votolimpio/scoring-engine/infrastructure/middleware"
	"github.com/votolimpio/scoring-engine/infrastructure/storage"
	"github.com/votolimpio/scoring-engine/internal/application"
	"github.com/votolimpio/scoring-engine/internal/ports"
)

type globalFlags struct {
	configPath  string
	dbPath      string
	workers     int
	metricsAddr string
	verbose     bool
	strict      bool
}

// runtime bundles the wired dependencies behind one teardown call.
type runtime struct {
	engine *application.Engine
	repo   *storage.SQLiteRepository
	log    *zap.Logger
}

func (rt *runtime) close() {
	_ = rt.log.Sync()
	_ = rt.repo.Close()
}

// setup wires configuration, storage, metrics and logging into an engine.
func setup(g *globalFlags) (*runtime, error) {
	log, err := newLogger(g.verbose)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	config := application.DefaultScoringConfig()
	if g.configPath != "" {
		config, err = application.LoadScoringConfig(g.configPath)
		if err != nil {
			return nil, err
		}
	}
	if g.workers > 0 {
		config.Engine.Workers = g.workers
	}

	repo, err := storage.Open(g.dbPath)
	if err != nil {
		return nil, err
	}

	var metrics ports.MetricsCollector = ports.NopMetrics{}
	if g.metricsAddr != "" {
		metrics = middleware.NewPrometheusMetrics(nil)
		go serveMetrics(g.metricsAddr, log)
	}

	engine, err := application.NewEngine(repo, config, log, metrics)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	return &runtime{engine: engine, repo: repo, log: log}, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func serveMetrics(addr string, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("metrics server stopped", zap.Error(err))
	}
}

func newRecomputeCmd(g *globalFlags) *cobra.Command {
	var candidateID string

	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Recompute scores for all candidates, or one with --candidate",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(g)
			if err != nil {
				return err
			}
			defer rt.close()

			if candidateID != "" {
				result, err := rt.engine.RecomputeCandidate(cmd.Context(), candidateID)
				if err != nil {
					return err
				}
				return printJSON(result.Score)
			}

			report, err := rt.engine.RecomputeAll(cmd.Context())
			if err != nil {
				return err
			}
			if err := printJSON(report); err != nil {
				return err
			}
			return strictErr(g, report.Failed)
		},
	}

	cmd.Flags().StringVar(&candidateID, "candidate", "", "Recompute a single candidate by ID")
	return cmd
}

func newReconcileCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Propagate findings across sibling records and re-score them",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(g)
			if err != nil {
				return err
			}
			defer rt.close()

			report, err := rt.engine.Reconcile(cmd.Context())
			if err != nil {
				return err
			}
			if err := printJSON(report); err != nil {
				return err
			}
			return strictErr(g, report.Failed)
		},
	}
}

func newApplyCategoriesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "apply-categories",
		Short: "Replay all penalty categories from pre-penalty baselines",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(g)
			if err != nil {
				return err
			}
			defer rt.close()

			report, err := rt.engine.ApplyPenaltyCategories(cmd.Context())
			if err != nil {
				return err
			}
			if err := printJSON(report); err != nil {
				return err
			}
			return strictErr(g, report.Failed)
		},
	}
}

func newShowCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <candidate-id>",
		Short: "Print the persisted score and audit breakdown of one candidate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(g)
			if err != nil {
				return err
			}
			defer rt.close()

			score, breakdown, err := rt.repo.GetScore(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(struct {
				Score     any `json:"score"`
				Breakdown any `json:"breakdown"`
			}{score, breakdown})
		},
	}
}

func strictErr(g *globalFlags, failed int) error {
	if g.strict && failed > 0 {
		return fmt.Errorf("%d candidate(s) failed", failed)
	}
	return nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
