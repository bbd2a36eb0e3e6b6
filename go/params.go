package adoptionserver

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

func bindPathParam(c *gin.Context, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", errBadParameter, name, err)
	}
	return nil
}

// bindQueryParam binds an optional form style query parameter into dest, which must be a pointer to a pointer.
func bindQueryParam(query url.Values, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, query, dest); err != nil {
		return fmt.Errorf("%w: %s: %w", errBadParameter, name, err)
	}
	return nil
}

// compactQuery drops blank values so an empty filter is treated as absent.
func compactQuery(query url.Values) url.Values {
	out := make(url.Values, len(query))
	for key, values := range query {
		for _, v := range values {
			if strings.TrimSpace(v) != "" {
				out[key] = append(out[key], strings.TrimSpace(v))
			}
		}
	}
	return out
}
