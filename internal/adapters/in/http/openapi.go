package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

//go:embed openapi.yaml
var rawSpec []byte

var (
	specOnce sync.Once
	spec     *openapi3.T
	errSpec  error
)

// GetSwagger parses and validates the embedded API document once.
func GetSwagger() (*openapi3.T, error) {
	specOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(rawSpec)
		if err != nil {
			errSpec = fmt.Errorf("load openapi document: %w", err)
			return
		}
		if err = doc.Validate(context.Background()); err != nil {
			errSpec = fmt.Errorf("validate openapi document: %w", err)
			return
		}
		spec = doc
	})
	return spec, errSpec
}

// RequestValidator rejects requests that do not match the API document.
// Routes the document does not describe pass through. Authentication is
// checked by the operator middleware, not here.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         false,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				if errors.Is(findErr, routers.ErrPathNotFound) || errors.Is(findErr, routers.ErrMethodNotAllowed) {
					return next(c)
				}
				return badParameter(findErr)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if validateErr := openapi3filter.ValidateRequest(req.Context(), input); validateErr != nil {
				return badParameter(validationMessage(validateErr))
			}

			return next(c)
		}
	}, nil
}

// validationMessage keeps the offending field and reason and drops the schema
// dump kin-openapi appends to body errors.
func validationMessage(err error) error {
	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) {
		return err
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(reqErr.Err, &schemaErr) {
		field := strings.Join(schemaErr.JSONPointer(), ".")
		if reqErr.Parameter != nil {
			field = reqErr.Parameter.Name
		}
		if field == "" {
			return errors.New(schemaErr.Reason)
		}
		return fmt.Errorf("%s: %s", field, schemaErr.Reason)
	}

	if reqErr.Parameter != nil {
		return fmt.Errorf("%s: %s", reqErr.Parameter.Name, reqErr.Reason)
	}
	if reqErr.Reason != "" {
		return errors.New(reqErr.Reason)
	}
	return reqErr
}

// ServeSpec returns the API document as JSON.
func ServeSpec(doc *openapi3.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, doc)
	}
}
