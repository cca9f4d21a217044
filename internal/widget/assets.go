// Package widget holds the storefront widget that renders the related-brands artifact.
package widget

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

var (
	//go:embed template.html
	defaultTemplate string

	//go:embed schema.json
	defaultSchema []byte
)

// Assets is a widget template and its page builder schema
type Assets struct {
	Template string
	Schema   []any
}

// Load returns the widget assets. Empty paths select the embedded defaults.
func Load(templatePath, schemaPath string) (*Assets, error) {
	tmpl := defaultTemplate
	if templatePath != "" {
		raw, err := os.ReadFile(templatePath)
		if err != nil {
			return nil, fmt.Errorf("read widget template: %w", err)
		}
		tmpl = string(raw)
	}

	rawSchema := defaultSchema
	if schemaPath != "" {
		raw, err := os.ReadFile(schemaPath)
		if err != nil {
			return nil, fmt.Errorf("read widget schema: %w", err)
		}
		rawSchema = raw
	}

	var schema []any
	if err := json.Unmarshal(rawSchema, &schema); err != nil {
		return nil, fmt.Errorf("parse widget schema: %w", err)
	}

	return &Assets{Template: tmpl, Schema: schema}, nil
}
