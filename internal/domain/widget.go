package domain

// WidgetTemplateRequest is the payload for registering a widget template
type WidgetTemplateRequest struct {
	Name                string         `json:"name"`
	Template            string         `json:"template"`
	Schema              []any          `json:"schema"`
	WidgetConfiguration map[string]any `json:"widget_configuration"`
}

// WidgetTemplate is a registered widget template
type WidgetTemplate struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// WidgetPlacement places a widget instance on a storefront region
type WidgetPlacement struct {
	EntityID     int    `json:"entity_id"`
	EntityType   string `json:"entity_type"`
	TemplateFile string `json:"template_file"`
	Region       string `json:"region"`
}

// WidgetRequest is the payload for creating a widget instance
type WidgetRequest struct {
	WidgetTemplateUUID  string            `json:"widget_template_uuid"`
	Name                string            `json:"name"`
	WidgetConfiguration map[string]any    `json:"widget_configuration"`
	Placements          []WidgetPlacement `json:"placements,omitempty"`
}

// Widget is a created widget instance
type Widget struct {
	UUID string `json:"uuid"`
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}
