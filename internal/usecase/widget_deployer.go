package usecase

import (
	"context"
	"fmt"

	"github.com/relatedbrands/generator/internal/domain"
	"github.com/relatedbrands/generator/internal/logger"
	"github.com/relatedbrands/generator/internal/widget"
)

// WidgetDeployConfig describes the template and default instance to register
type WidgetDeployConfig struct {
	TemplateName string
	InstanceName string
	Heading      string
	MaxBrands    int
	DataURL      string
	TemplateFile string
	Region       string
}

// WidgetDeployment is what the storefront returned for a deploy
type WidgetDeployment struct {
	Template *domain.WidgetTemplate
	Widget   *domain.Widget
}

// WidgetDeployer registers the related-brands widget on the storefront
type WidgetDeployer struct {
	client domain.WidgetClient
	config WidgetDeployConfig
	logger logger.Logger
}

// NewWidgetDeployer creates a deployer
func NewWidgetDeployer(client domain.WidgetClient, config WidgetDeployConfig, log logger.Logger) *WidgetDeployer {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &WidgetDeployer{client: client, config: config, logger: log}
}

// Deploy creates the widget template, then a default instance placed on every brand page
func (d *WidgetDeployer) Deploy(ctx context.Context, assets *widget.Assets) (*WidgetDeployment, error) {
	tmpl, err := d.client.CreateWidgetTemplate(ctx, &domain.WidgetTemplateRequest{
		Name:                d.config.TemplateName,
		Template:            assets.Template,
		Schema:              assets.Schema,
		WidgetConfiguration: map[string]any{},
	})
	if err != nil {
		return nil, fmt.Errorf("create widget template: %w", err)
	}
	d.logger.Info("widget template created", map[string]interface{}{"name": tmpl.Name, "uuid": tmpl.UUID})

	w, err := d.client.CreateWidget(ctx, &domain.WidgetRequest{
		WidgetTemplateUUID: tmpl.UUID,
		Name:               d.config.InstanceName,
		WidgetConfiguration: map[string]any{
			"heading":   d.config.Heading,
			"maxBrands": d.config.MaxBrands,
			"dataUrl":   d.config.DataURL,
		},
		Placements: []domain.WidgetPlacement{{
			EntityID:     0, // all brands
			EntityType:   "brand",
			TemplateFile: d.config.TemplateFile,
			Region:       d.config.Region,
		}},
	})
	if err != nil {
		return &WidgetDeployment{Template: tmpl}, fmt.Errorf("create widget: %w", err)
	}
	d.logger.Info("widget instance created", map[string]interface{}{"name": w.Name, "uuid": w.UUID})

	return &WidgetDeployment{Template: tmpl, Widget: w}, nil
}
