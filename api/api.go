// Package api carries the committed OpenAPI contract for the service.
package api

import _ "embed"

// SpecYAML is the OpenAPI contract served at /openapi.json. It is
// validated at startup; changes to the routes must be reflected here.
//
//go:embed openapi.yml
var SpecYAML []byte
