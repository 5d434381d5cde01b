package http

import (
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/ghodss/yaml"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/njprem/thirdplace_finder_web/internal/logging"
	"github.com/njprem/thirdplace_finder_web/internal/util"
)

const DefaultSwaggerSpec = "docs/swagger.yaml"

// RegisterSwagger serves the JSON API description at /swagger/doc.json and
// the Swagger UI under /swagger. The YAML file is converted once.
func RegisterSwagger(e *echo.Echo, specPath string) {
	var (
		once    sync.Once
		spec    []byte
		loadErr error
	)
	e.GET("/swagger/doc.json", func(c echo.Context) error {
		once.Do(func() {
			spec, loadErr = loadSwaggerSpec(specPath)
		})
		if loadErr != nil {
			logging.FromContext(c.Request().Context()).Sugar().Errorf("swagger spec: %v", loadErr)
			return c.JSON(http.StatusInternalServerError, util.Error("unable to load swagger spec"))
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, spec)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

func loadSwaggerSpec(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	out, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}
	return out, nil
}
