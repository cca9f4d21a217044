package artifact

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/relatedbrands/generator/internal/domain"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

// FileWriter writes the artifact as indented JSON into an output directory
type FileWriter struct {
	dir      string
	fileName string
	indent   string
	validate bool
}

// Option configures a FileWriter
type Option func(*FileWriter)

// WithIndent sets the indentation string. The default is two spaces.
func WithIndent(indent string) Option {
	return func(w *FileWriter) {
		w.indent = indent
	}
}

// WithoutValidation skips the schema check before writing
func WithoutValidation() Option {
	return func(w *FileWriter) {
		w.validate = false
	}
}

// NewFileWriter creates a writer for dir/fileName
func NewFileWriter(dir, fileName string, opts ...Option) *FileWriter {
	w := &FileWriter{
		dir:      strings.TrimSuffix(dir, "/"),
		fileName: fileName,
		indent:   "  ",
		validate: true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Path returns the file the writer produces
func (w *FileWriter) Path() string {
	return filepath.Join(w.dir, w.fileName)
}

// Encode renders the artifact exactly as Write stores it.
// Map keys are emitted in sorted order, so equal artifacts encode identically.
func (w *FileWriter) Encode(a *domain.Artifact) ([]byte, error) {
	if a.ByBrandID == nil {
		a = domain.NewArtifact()
	}
	data, err := json.MarshalIndent(a, "", w.indent)
	if err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	return append(data, '\n'), nil
}

// Write creates the output directory if needed and replaces the artifact file.
// The file is written to a temporary name first and renamed into place.
func (w *FileWriter) Write(ctx context.Context, a *domain.Artifact) (string, error) {
	data, err := w.Encode(a)
	if err != nil {
		return "", err
	}

	if w.validate {
		if err := Validate(data); err != nil {
			return "", err
		}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(w.dir, "."+w.fileName+".*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("chmod artifact: %w", err)
	}

	path := w.Path()
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("replace artifact: %w", err)
	}
	return path, nil
}

// Read loads the artifact the writer last produced
func (w *FileWriter) Read(ctx context.Context) (*domain.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(w.Path())
}

// Validate checks an encoded artifact against the published document schema
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate artifact: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("artifact does not match schema: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// Load reads a previously written artifact
func Load(path string) (*domain.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	a := domain.NewArtifact()
	if err := json.Unmarshal(data, a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if a.ByBrandID == nil {
		a.ByBrandID = make(map[string][]domain.RelatedBrandRecord)
	}
	return a, nil
}
