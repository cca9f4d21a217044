package main

import (
	"fmt"

	"github.com/relatedbrands/generator/internal/usecase"
	"github.com/relatedbrands/generator/internal/widget"
	"github.com/spf13/cobra"
)

// NewDeployWidgetCmd creates the deploy-widget command.
func NewDeployWidgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy-widget",
		Short: "Register the related-brands widget on the storefront",
		Long: `Deploy-widget creates the "Related Brands (Auto)" widget template and a
default instance placed below the header of every brand page.`,
		Args: cobra.NoArgs,
		RunE: runDeployWidgetCmd,
	}
	cmd.Flags().String("template", "", "Widget template HTML (defaults to the built-in template)")
	cmd.Flags().String("schema", "", "Widget UI schema JSON (defaults to the built-in schema)")
	return cmd
}

func runDeployWidgetCmd(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if err := cfg.RequireStore(); err != nil {
		return err
	}

	templatePath, _ := cmd.Flags().GetString("template")
	if templatePath == "" {
		templatePath = cfg.Widget.TemplatePath
	}
	schemaPath, _ := cmd.Flags().GetString("schema")
	if schemaPath == "" {
		schemaPath = cfg.Widget.SchemaPath
	}

	assets, err := widget.Load(templatePath, schemaPath)
	if err != nil {
		return err
	}

	deployer := usecase.NewWidgetDeployer(newCatalogClient(cfg, log), usecase.WidgetDeployConfig{
		TemplateName: cfg.Widget.TemplateName,
		InstanceName: cfg.Widget.InstanceName,
		Heading:      cfg.Widget.Heading,
		MaxBrands:    cfg.Widget.MaxBrands,
		DataURL:      cfg.Widget.DataURL,
		TemplateFile: cfg.Widget.TemplateFile,
		Region:       cfg.Widget.Region,
	}, log)

	out := cmd.OutOrStdout()
	deployment, err := deployer.Deploy(cmd.Context(), assets)
	if deployment != nil && deployment.Template != nil {
		fmt.Fprintln(out, "Created widget template")
		fmt.Fprintln(out, "Name:", deployment.Template.Name)
		fmt.Fprintln(out, "UUID:", deployment.Template.UUID)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Created widget instance")
	fmt.Fprintln(out, "Widget ID:", widgetID(deployment))
	return nil
}

func widgetID(d *usecase.WidgetDeployment) string {
	if d.Widget.UUID != "" {
		return d.Widget.UUID
	}
	return fmt.Sprint(d.Widget.ID)
}
