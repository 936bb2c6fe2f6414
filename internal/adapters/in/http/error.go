package http

import (
	"errors"
	"net/http"
	"strconv"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error payload returned by every failing route.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// renderError translates a domain error into the HTTP status its kind
// carries. Unrecognized errors become opaque 500s; their details are
// logged, not leaked.
func (s *Server) renderError(ctx echo.Context, err error) error {
	var (
		notFound   *errs.ObjectNotFoundError
		conflict   *errs.ConflictError
		badState   *errs.InvalidStateError
		noTimer    *errs.TimerRequiredError
		incomplete *errs.WorksheetIncompleteError
		invalid    *errs.ValueIsInvalidError
		required   *errs.ValueIsRequiredError
		outOfRange *errs.ValueIsOutOfRangeError
	)

	var code int
	switch {
	case errors.As(err, &notFound):
		code = http.StatusNotFound
	case errors.As(err, &conflict), errors.As(err, &badState):
		code = http.StatusConflict
	case errors.As(err, &noTimer), errors.As(err, &incomplete):
		code = http.StatusUnprocessableEntity
	case errors.As(err, &invalid), errors.As(err, &required), errors.As(err, &outOfRange):
		code = http.StatusBadRequest
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "Unhandled error",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err)
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}

// bindRequest binds and validates a JSON request body. Both failure modes
// surface as value errors so renderError maps them to 400.
func bindRequest(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	if err := ctx.Validate(req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}

// parseUUIDParam extracts a UUID path parameter by name.
func parseUUIDParam(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// parseUUIDField parses a UUID that arrived in a request body field.
func parseUUIDField(name, value string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// parseIndexParam extracts a non-negative integer path parameter by name.
func parseIndexParam(ctx echo.Context, name string) (int, error) {
	value, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if value < 0 {
		return 0, errs.NewValueIsInvalidError(name)
	}
	return value, nil
}
