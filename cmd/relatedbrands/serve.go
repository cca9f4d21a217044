package main

import (
	"fmt"

	httpDelivery "github.com/relatedbrands/generator/internal/delivery/http"
	"github.com/relatedbrands/generator/internal/infrastructure/artifact"
	"github.com/relatedbrands/generator/internal/usecase"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the artifact, per-brand lookups and metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringP("port", "p", "", "Override SERVER_PORT")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Server.Port = port
	}

	store := artifact.NewFileWriter(cfg.Output.Dir, cfg.Output.FileName)
	handler := httpDelivery.NewHandler(usecase.NewRelatedBrandsService(store), store.Path(), getVersion())
	router := httpDelivery.SetupRouter(cfg, handler, log)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server listening", map[string]interface{}{
		"addr":        addr,
		"environment": cfg.Server.Environment,
		"artifact":    store.Path(),
	})
	return router.Run(addr)
}
