// Package api holds the OpenAPI description of the HTTP interface. The same document
// validates incoming requests and is served as the swagger docs.
package api

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var document []byte

// Load parses and validates the embedded document.
func Load() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}

var registerOnce sync.Once

// RegisterSwagger publishes doc under the default swag instance read by the
// /swagger endpoint. Only the first call has an effect.
func RegisterSwagger(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	registerOnce.Do(func() {
		swag.Register(swag.Name, &swag.Spec{
			Version:          doc.Info.Version,
			Title:            doc.Info.Title,
			Description:      doc.Info.Description,
			InfoInstanceName: swag.Name,
			SwaggerTemplate:  string(raw),
			LeftDelim:        "{{",
			RightDelim:       "}}",
		})
	})
	return nil
}
