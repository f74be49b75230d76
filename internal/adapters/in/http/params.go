package http

import (
	"strconv"

	"ordering/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// pathUUID binds a required uuid path parameter the way generated servers do.
func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromBytes(id[:])
}

// queryUUID binds an optional uuid query parameter.
func queryUUID(c echo.Context, name string) (*kernel.UUID, error) {
	var id *openapi_types.UUID
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &id); err != nil {
		return nil, err
	}
	if id == nil {
		return nil, nil
	}
	u, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// queryInt returns the integer query parameter or 0 when absent. Bounds are checked
// by request validation and by the query constructors.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
