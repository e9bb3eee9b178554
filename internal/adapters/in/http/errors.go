package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/zone"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/logging"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	CodeValidation         = "validation_error"
	CodeNotFound           = "not_found"
	CodeInsufficientStock  = "insufficient_stock"
	CodeIllegalTransition  = "illegal_transition"
	CodeDeliveryQuoteStale = "delivery_quote_stale"
	CodeConflict           = "conflict"
	CodeUnauthorized       = "unauthorized"
	CodeInternal           = "internal_error"
)

// requestError is a malformed request caught before it reaches a handler.
type requestError struct {
	err error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badParameter(err error) error {
	return &requestError{err: err}
}

func badBody(err error) error {
	return &requestError{err: fmt.Errorf("invalid request body: %w", err)}
}

// NewErrorHandler renders every error a route returns as an Error body.
// Only internal errors are logged; the rest are the client's to fix.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := toHTTPError(err)
		if status >= http.StatusInternalServerError {
			logging.FromCtx(c.Request().Context(), logger).Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error("write error response", "error", writeErr)
		}
	}
}

func toHTTPError(err error) (int, Error) {
	var (
		reqErr  *requestError
		httpErr *echo.HTTPError
	)

	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, Error{Code: CodeValidation, Message: message(reqErr)}
	case errors.As(err, &httpErr):
		return fromEchoError(httpErr)
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, Error{Code: CodeUnauthorized, Message: message(err)}
	case errors.Is(err, zone.ErrDeliveryQuoteStale):
		return http.StatusUnprocessableEntity, Error{Code: CodeDeliveryQuoteStale, Message: message(err)}
	case errors.Is(err, catalog.ErrInsufficientStock):
		return http.StatusConflict, Error{Code: CodeInsufficientStock, Message: message(err), ProductID: productID(err)}
	case errors.Is(err, order.ErrIllegalTransition):
		return http.StatusConflict, Error{Code: CodeIllegalTransition, Message: message(err)}
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, Error{Code: CodeConflict, Message: message(err)}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, Error{Code: CodeNotFound, Message: message(err), ProductID: productID(err)}
	case errs.IsValidation(err):
		return http.StatusBadRequest, Error{Code: CodeValidation, Message: message(err)}
	default:
		return http.StatusInternalServerError, Error{Code: CodeInternal, Message: "internal server error"}
	}
}

func fromEchoError(he *echo.HTTPError) (int, Error) {
	msg := http.StatusText(he.Code)
	if s, ok := he.Message.(string); ok && s != "" {
		msg = s
	}

	switch {
	case he.Code == http.StatusUnauthorized:
		return he.Code, Error{Code: CodeUnauthorized, Message: msg}
	case he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed:
		return he.Code, Error{Code: CodeNotFound, Message: msg}
	case he.Code >= http.StatusInternalServerError:
		return he.Code, Error{Code: CodeInternal, Message: msg}
	default:
		return he.Code, Error{Code: CodeValidation, Message: msg}
	}
}

// productID picks the offending product out of a conflict or not-found error.
func productID(err error) *openapi_types.UUID {
	var id any

	var conflict *errs.ConflictError
	var notFound *errs.ObjectNotFoundError
	switch {
	case errors.As(err, &conflict) && conflict.ParamName == "product":
		id = conflict.ID
	case errors.As(err, &notFound) && notFound.ParamName == "product":
		id = notFound.ID
	default:
		return nil
	}

	parsed, parseErr := uuid.Parse(fmt.Sprint(id))
	if parseErr != nil {
		return nil
	}
	return &parsed
}

func message(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", "; ")
}
