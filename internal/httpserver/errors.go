package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bookbazaar/internal/models"
	"github.com/Skotchmaster/bookbazaar/internal/service"
	middleware "github.com/Skotchmaster/bookbazaar/pkg/middleware/auth"
)

// messages names the entity in 404 and 403 responses of one handler.
type messages struct {
	notFound  string
	forbidden string
}

func fail(l *slog.Logger, op string, err error, m messages) error {
	status, msg := http.StatusInternalServerError, "internal error"

	var ve *service.ValidationError
	var oos *service.OutOfStockError
	var ce *service.ConflictError
	switch {
	case errors.As(err, &ve):
		status, msg = http.StatusBadRequest, ve.Msg
	case errors.As(err, &oos):
		status, msg = http.StatusBadRequest, oos.Error()
	case errors.Is(err, service.ErrEmptyCart):
		status, msg = http.StatusBadRequest, "Cart is empty"
	case errors.As(err, &ce):
		status, msg = http.StatusConflict, ce.Msg
	case errors.Is(err, service.ErrNotFound):
		status, msg = http.StatusNotFound, m.notFound
	case errors.Is(err, service.ErrForbidden):
		status, msg = http.StatusForbidden, m.forbidden
	case errors.Is(err, service.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "Invalid username or password"
	}

	if status >= http.StatusInternalServerError {
		l.Error(op+"_error", "status", status, "error", err)
	} else {
		l.Warn(op+"_error", "status", status, "reason", msg, "error", err)
	}
	return echo.NewHTTPError(status, msg).SetInternal(err)
}

// bind decodes and validates the request body into req.
func bind(c echo.Context, l *slog.Logger, op string, req any) error {
	if err := c.Bind(req); err != nil {
		msg := "invalid body"
		var bad *models.ErrInvalidEnum
		if errors.As(err, &bad) {
			msg = bad.Error()
		}
		l.Warn(op+"_error", "status", 400, "reason", msg, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msg).SetInternal(err)
	}
	if err := c.Validate(req); err != nil {
		msg := validationMessage(err)
		l.Warn(op+"_error", "status", 400, "reason", msg, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, msg).SetInternal(err)
	}
	return nil
}

func pathID(c echo.Context, l *slog.Logger, op string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		l.Warn(op+"_error", "status", 400, "reason", "invalid id", "id", c.Param("id"))
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}
	return uint(id), nil
}

func currentUser(c echo.Context, l *slog.Logger, op string) (uint, error) {
	id, err := middleware.UserID(c)
	if err != nil {
		l.Warn(op+"_error", "status", 401, "error", err)
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return id, nil
}
