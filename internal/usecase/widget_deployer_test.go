package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/relatedbrands/generator/internal/domain"
	"github.com/relatedbrands/generator/internal/logger"
	"github.com/relatedbrands/generator/internal/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockWidgetClient records widget API calls
type MockWidgetClient struct {
	templateReq *domain.WidgetTemplateRequest
	widgetReq   *domain.WidgetRequest
	templateErr error
	widgetErr   error
}

func (m *MockWidgetClient) CreateWidgetTemplate(ctx context.Context, req *domain.WidgetTemplateRequest) (*domain.WidgetTemplate, error) {
	m.templateReq = req
	if m.templateErr != nil {
		return nil, m.templateErr
	}
	return &domain.WidgetTemplate{UUID: "tmpl-uuid", Name: req.Name}, nil
}

func (m *MockWidgetClient) CreateWidget(ctx context.Context, req *domain.WidgetRequest) (*domain.Widget, error) {
	m.widgetReq = req
	if m.widgetErr != nil {
		return nil, m.widgetErr
	}
	return &domain.Widget{UUID: "widget-uuid", Name: req.Name}, nil
}

func defaultWidgetConfig() WidgetDeployConfig {
	return WidgetDeployConfig{
		TemplateName: "Related Brands (Auto)",
		InstanceName: "Related Brands – Default",
		Heading:      "Related brands",
		MaxBrands:    12,
		DataURL:      "/content/related-brands.json",
		TemplateFile: "pages/brand",
		Region:       "brand_below_header",
	}
}

func TestWidgetDeployer_Deploy(t *testing.T) {
	client := &MockWidgetClient{}
	assets := &widget.Assets{Template: "<div></div>", Schema: []any{map[string]any{"type": "tab"}}}
	d := NewWidgetDeployer(client, defaultWidgetConfig(), logger.NewTestLogger(t))

	got, err := d.Deploy(context.Background(), assets)

	require.NoError(t, err)
	assert.Equal(t, "tmpl-uuid", got.Template.UUID)
	assert.Equal(t, "widget-uuid", got.Widget.UUID)

	require.NotNil(t, client.templateReq)
	assert.Equal(t, "Related Brands (Auto)", client.templateReq.Name)
	assert.Equal(t, "<div></div>", client.templateReq.Template)
	assert.Len(t, client.templateReq.Schema, 1)
	assert.NotNil(t, client.templateReq.WidgetConfiguration)

	require.NotNil(t, client.widgetReq)
	assert.Equal(t, "tmpl-uuid", client.widgetReq.WidgetTemplateUUID)
	assert.Equal(t, "Related Brands – Default", client.widgetReq.Name)
	assert.Equal(t, map[string]any{
		"heading":   "Related brands",
		"maxBrands": 12,
		"dataUrl":   "/content/related-brands.json",
	}, client.widgetReq.WidgetConfiguration)
	assert.Equal(t, []domain.WidgetPlacement{{
		EntityID:     0,
		EntityType:   "brand",
		TemplateFile: "pages/brand",
		Region:       "brand_below_header",
	}}, client.widgetReq.Placements)
}

func TestWidgetDeployer_TemplateFailureSkipsInstance(t *testing.T) {
	boom := &domain.UpstreamError{StatusCode: 422, Body: `{"title":"invalid schema"}`}
	client := &MockWidgetClient{templateErr: boom}
	d := NewWidgetDeployer(client, defaultWidgetConfig(), nil)

	got, err := d.Deploy(context.Background(), &widget.Assets{})

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
	assert.Nil(t, client.widgetReq)
}

func TestWidgetDeployer_InstanceFailureKeepsTemplate(t *testing.T) {
	boom := errors.New("region missing")
	client := &MockWidgetClient{widgetErr: boom}
	d := NewWidgetDeployer(client, defaultWidgetConfig(), nil)

	got, err := d.Deploy(context.Background(), &widget.Assets{})

	assert.ErrorIs(t, err, boom)
	require.NotNil(t, got)
	assert.Equal(t, "tmpl-uuid", got.Template.UUID)
	assert.Nil(t, got.Widget)
}
