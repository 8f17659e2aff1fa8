// internal/cli/root.go

// Package cli wires the cobra command surface over the gateway, interpreter,
// chat, and render layers.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"marketscout/internal/common/config"
	"marketscout/internal/common/database"
	commonhttp "marketscout/internal/common/http"
	"marketscout/internal/common/logger"
	"marketscout/internal/common/observability"
	"marketscout/internal/gateway"
	"marketscout/internal/session"
)

var (
	cfg            *config.Config
	log            logger.Logger
	httpClient     *commonhttp.Client
	researchClient *gateway.ResearchClient
	csvClient      *gateway.CSVClient
	store          session.Store
	obs            *observability.Observability
)

var rootCmd = &cobra.Command{
	Use:   "marketscout",
	Short: "Chat-style market research client",
	Long: `marketscout is a terminal client for the market-research and CSV-analysis
agent backends. Ask about a business idea in a city, explore opportunities,
or upload a CSV and chat about it.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initApp,
}

func Execute() error {
	return rootCmd.Execute()
}

func initApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log = logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)

	httpClient = commonhttp.NewClient(time.Duration(cfg.HTTP.Timeout) * time.Millisecond)
	researchClient = gateway.NewResearchClient(cfg.Backends.Research.BaseURL, httpClient, log)
	csvClient = gateway.NewCSVClient(cfg.Backends.CSV.BaseURL, httpClient, log)

	store = buildStore(cmd.Context())

	obs = observability.New(cfg.App.Name)
	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				log.Warn("metrics listener stopped", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	return nil
}

// buildStore prefers Redis when it is configured and answering; everything
// else falls back to the in-process store.
func buildStore(ctx context.Context) session.Store {
	if !cfg.Redis.Enabled {
		return session.NewMemoryStore()
	}

	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, using in-memory session store", map[string]interface{}{"error": err.Error()})
		return session.NewMemoryStore()
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx); err != nil {
		log.Warn("redis unavailable, using in-memory session store", map[string]interface{}{"error": err.Error()})
		return session.NewMemoryStore()
	}

	return session.NewRedisStore(rdb, time.Duration(cfg.Session.TTL)*time.Second)
}

// printJSON writes a payload verbatim, for --json output.
func printJSON(cmd *cobra.Command, payload map[string]interface{}) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
