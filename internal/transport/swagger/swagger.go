// Package swagger loads the OpenAPI document and serves it with the Swagger UI.
package swagger

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
	httpSwagger "github.com/swaggo/http-swagger"
)

const DocumentURL = "/openapi.yml"

// Spec is a validated OpenAPI document together with its raw bytes.
type Spec struct {
	Doc *openapi3.T
	raw []byte
}

// LoadSpec reads and validates the OpenAPI document at path.
func LoadSpec(ctx context.Context, path string) (*Spec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read openapi document: %w", err)
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("parse openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	return &Spec{Doc: doc, raw: raw}, nil
}

// ServeDocument writes the document as loaded.
func (s *Spec) ServeDocument(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.raw)
}

func Handler() http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL(DocumentURL),
	)
}
