package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/relatedbrands/generator/config"
	"github.com/relatedbrands/generator/internal/domain"
	"github.com/relatedbrands/generator/internal/infrastructure/artifact"
	"github.com/relatedbrands/generator/internal/infrastructure/bigcommerce"
	"github.com/relatedbrands/generator/internal/infrastructure/cache"
	"github.com/relatedbrands/generator/internal/infrastructure/ratelimit"
	"github.com/relatedbrands/generator/internal/logger"
	"github.com/relatedbrands/generator/internal/metrics"
	"github.com/relatedbrands/generator/internal/usecase"
	"github.com/relatedbrands/generator/internal/usecase/ranking"
	"github.com/spf13/cobra"
)

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compute related brands and write the artifact",
		Long: `Build fetches every brand, ranks related brands for each and writes
<OUTPUT_DIR>/related-brands.json in one step. Nothing is written if any
catalog request fails.`,
		Args: cobra.NoArgs,
		RunE: runBuildCmd,
	}
	addBuildFlags(cmd)
	return cmd
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output-dir", "o", "", "Override OUTPUT_DIR")
	cmd.Flags().String("metrics-textfile", "", "Write run metrics to this node_exporter textfile")
}

func runBuildCmd(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		cfg.Output.Dir = dir
	}
	if path, _ := cmd.Flags().GetString("metrics-textfile"); path != "" {
		cfg.Metrics.Textfile = path
	}

	if err := cfg.RequireStore(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.NewString()
	builder, closeCache, err := newArtifactBuilder(ctx, cfg, log, runID)
	if err != nil {
		return err
	}
	defer closeCache()

	result, err := builder.Run(ctx)
	if err != nil {
		metrics.LastRunSuccess.Set(0)
		writeTextfile(cfg, log)
		return err
	}
	writeTextfile(cfg, log)

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d of %d brands)\n", result.Path, result.BrandsWritten, result.BrandsSeen)
	return nil
}

func writeTextfile(cfg *config.Config, log logger.Logger) {
	if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		log.Warn("metrics textfile not written", map[string]interface{}{"error": err.Error()})
	}
}

// newCatalogClient creates the API client for the configured store
func newCatalogClient(cfg *config.Config, log logger.Logger) *bigcommerce.Client {
	return bigcommerce.NewClient(
		cfg.Store.StoreURL(),
		cfg.Store.AccessToken,
		bigcommerce.WithTimeout(cfg.Store.Timeout),
		bigcommerce.WithPageLimit(cfg.Store.PageLimit),
		bigcommerce.WithRateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		bigcommerce.WithLogger(log),
	)
}

// newBrandCache selects the brand lookup cache. Redis keys are scoped to the run.
func newBrandCache(ctx context.Context, cfg *config.Config, runID string) (domain.CacheRepository, func(), error) {
	switch cfg.Cache.Type {
	case "redis":
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, "relatedbrands:"+runID)
		if err != nil {
			return nil, nil, err
		}
		return rc, func() { _ = rc.Close() }, nil
	case "none":
		return cache.NoopCache{}, func() {}, nil
	default:
		return cache.NewMemoryCache(), func() {}, nil
	}
}

func newArtifactBuilder(ctx context.Context, cfg *config.Config, log logger.Logger, runID string) (*usecase.ArtifactBuilder, func(), error) {
	excluded, err := cfg.Ranking.ExcludedCategories()
	if err != nil {
		return nil, nil, err
	}
	strategy, err := cfg.Ranking.Strategy()
	if err != nil {
		return nil, nil, err
	}

	client := newCatalogClient(cfg, log)
	ranker, err := ranking.New(strategy, client)
	if err != nil {
		return nil, nil, err
	}

	brandCache, closeCache, err := newBrandCache(ctx, cfg, runID)
	if err != nil {
		return nil, nil, err
	}

	log.Info("build configured", map[string]interface{}{
		"runId":            runID,
		"store":            cfg.Store.Hash,
		"mode":             strategy.Mode.String(),
		"topCategoryCount": cfg.Ranking.TopCategoryCount,
		"maxBrands":        cfg.Ranking.MaxBrands,
		"excluded":         excluded,
		"cache":            cfg.Cache.Type,
		"output":           cfg.Output.OutputPath(),
	})

	builder := usecase.NewArtifactBuilder(
		client,
		usecase.NewCategoryAggregator(excluded),
		ranker,
		usecase.NewBrandResolver(client, brandCache, cfg.Cache.TTL, log),
		artifact.NewFileWriter(cfg.Output.Dir, cfg.Output.FileName),
		ratelimit.NewIntervalPacer(cfg.RateLimit.BrandInterval),
		log,
		usecase.ArtifactBuilderConfig{
			TopCategoryCount: cfg.Ranking.TopCategoryCount,
			MaxBrands:        cfg.Ranking.MaxBrands,
			RunID:            runID,
		},
	)
	return builder, closeCache, nil
}
