package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bookbazaar/internal/service"
	"github.com/Skotchmaster/bookbazaar/internal/transport"
	"github.com/Skotchmaster/bookbazaar/pkg/logging"
	"github.com/Skotchmaster/bookbazaar/pkg/tokens"
)

var userMessages = messages{notFound: "User not found"}

type AuthHTTP struct {
	Svc          *service.AuthService
	CookieSecure bool
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := bind(c, l, "register", &req); err != nil {
		return err
	}

	sess, err := h.Svc.Register(ctx, req)
	if err != nil {
		return fail(l, "register", err, userMessages)
	}

	c.SetCookie(tokens.CreateCookie(sess.Token, sess.ExpiresAt, h.CookieSecure))
	l.Info("register_successful", "user_id", sess.User.ID)
	return c.JSON(http.StatusCreated, sess.User)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := bind(c, l, "login", &req); err != nil {
		return err
	}

	sess, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return fail(l, "login", err, userMessages)
	}

	c.SetCookie(tokens.CreateCookie(sess.Token, sess.ExpiresAt, h.CookieSecure))
	l.Info("login_successful", "user_id", sess.User.ID)
	return c.JSON(http.StatusOK, sess.User)
}

func (h *AuthHTTP) LogOut(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth_logout")

	c.SetCookie(tokens.DeleteCookie(h.CookieSecure))

	l.Info("successful_logout")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Logged out",
	})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_me")

	userID, err := currentUser(c, l, "me")
	if err != nil {
		return err
	}
	user, err := h.Svc.Me(ctx, userID)
	if err != nil {
		return fail(l, "me", err, userMessages)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_update_profile")

	userID, err := currentUser(c, l, "update_profile")
	if err != nil {
		return err
	}
	var req transport.UpdateProfileRequest
	if err := bind(c, l, "update_profile", &req); err != nil {
		return err
	}

	user, err := h.Svc.UpdateProfile(ctx, userID, req)
	if err != nil {
		return fail(l, "update_profile", err, userMessages)
	}

	l.Info("update_profile_successful", "user_id", userID)
	return c.JSON(http.StatusOK, user)
}
