package domain

import "fmt"

// Brand represents a catalog brand as returned by the catalog API
type Brand struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	ImageURL  string     `json:"image_url,omitempty"`
	CustomURL *CustomURL `json:"custom_url,omitempty"`
}

// CustomURL is the storefront path a merchant assigned to a brand
type CustomURL struct {
	URL          string `json:"url"`
	IsCustomized bool   `json:"is_customized"`
}

// Href returns the canonical storefront link for the brand.
// A custom URL wins; otherwise the legacy brands.php path is used.
func (b Brand) Href() string {
	if b.CustomURL != nil && b.CustomURL.URL != "" {
		return b.CustomURL.URL
	}
	return fmt.Sprintf("/brands.php?brand_id=%d", b.ID)
}

// RelatedBrandRecord is a single entry of a brand's related list in the artifact
type RelatedBrandRecord struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Path     string `json:"path"`
}

// NewRelatedBrandRecord builds the artifact record for a resolved brand
func NewRelatedBrandRecord(b Brand) RelatedBrandRecord {
	return RelatedBrandRecord{
		ID:       b.ID,
		Name:     b.Name,
		ImageURL: b.ImageURL,
		Path:     b.Href(),
	}
}

// Artifact is the published related-brands document
type Artifact struct {
	ByBrandID map[string][]RelatedBrandRecord `json:"byBrandId"`
}

// NewArtifact returns an empty artifact ready to accumulate entries
func NewArtifact() *Artifact {
	return &Artifact{ByBrandID: make(map[string][]RelatedBrandRecord)}
}
