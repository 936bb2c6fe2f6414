package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
)

// NewOpenAPIHandler parses and validates the committed API contract and
// returns a handler serving it as JSON. An invalid contract fails
// startup instead of being served broken.
func NewOpenAPIHandler(specYAML []byte) (echo.HandlerFunc, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}

	payload, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to render OpenAPI spec: %w", err)
	}

	return func(ctx echo.Context) error {
		return ctx.JSONBlob(http.StatusOK, payload)
	}, nil
}
