package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/relatedbrands/generator/config"
	"github.com/relatedbrands/generator/internal/domain"
	"github.com/relatedbrands/generator/internal/logger"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Without a subcommand it runs a build.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relatedbrands",
		Short: "Generate related-brand recommendations for a BigCommerce store",
		Long: `relatedbrands walks every brand in the catalog, finds the categories its
products sit in most often, ranks the other brands present in those categories,
and writes the result to <OUTPUT_DIR>/related-brands.json.

Configuration is read from the environment (and .env):
  STORE_HASH, ACCESS_TOKEN        store credentials (required)
  OUTPUT_DIR                      artifact directory (default public/content)
  RANKING_MODE                    RAW, WEIGHTED or KOFN (default KOFN)
  TOP_CATEGORY_COUNT, MAX_BRANDS  anchor categories and list length
  MIN_CATEGORY_MATCHES            KOFN threshold
  EXCLUDE_CATEGORY_IDS            comma-separated categories to ignore`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBuildCmd,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	addBuildFlags(cmd)

	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewDeployWidgetCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError reports a failure, including the upstream response payload when there is one
func printError(w io.Writer, err error) {
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		fmt.Fprintf(w, "Error: %s %s returned %d\n", upstream.Method, upstream.URL, upstream.StatusCode)
		if upstream.Body != "" {
			fmt.Fprintln(w, upstream.Body)
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// loadRuntime reads configuration and builds the logger every command shares
func loadRuntime(cmd *cobra.Command) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Log.Level = "debug"
	}

	log, err := logger.NewStructured(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, log, nil
}
