package http

import (
	"context"
	_ "embed"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
)

//go:embed openapi.yml
var openapiSource []byte

var (
	openapiOnce sync.Once
	openapiDoc  *openapi3.T
	openapiErr  error
)

// OpenAPISpec handles GET /openapi.json. The embedded YAML document is
// parsed and validated once, then served as JSON.
func (s *Server) OpenAPISpec(ctx echo.Context) error {
	openapiOnce.Do(func() {
		loader := openapi3.NewLoader()
		openapiDoc, openapiErr = loader.LoadFromData(openapiSource)
		if openapiErr != nil {
			return
		}
		openapiErr = openapiDoc.Validate(context.Background())
	})
	if openapiErr != nil {
		return respondError(ctx, openapiErr)
	}

	return ctx.JSON(http.StatusOK, openapiDoc)
}
