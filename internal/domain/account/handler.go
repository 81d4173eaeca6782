package account

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/MrNonaRv/jamindan-e-clonic/internal/platform/auth"
	"github.com/MrNonaRv/jamindan-e-clonic/internal/platform/validation"
)

type Handler struct {
	svc    *Service
	issuer *auth.Issuer
}

func NewHandler(svc *Service, issuer *auth.Issuer) *Handler {
	return &Handler{svc: svc, issuer: issuer}
}

// RegisterRoutes wires the credential endpoints onto the public group and
// the profile endpoints onto the authenticated group.
func (h *Handler) RegisterRoutes(public, protected *echo.Group) {
	public.POST("/login", h.Login)
	public.GET("/forgot-password", h.ForgotPassword)
	public.POST("/reset-password", h.ResetPassword)

	protected.GET("/user", h.GetProfile)
	protected.PUT("/user", h.UpdateProfile)
	protected.GET("/check-username", h.CheckUsername)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	u, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		return fail(c, http.StatusUnauthorized, "Invalid username or password")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	token, err := h.issuer.Token(u.ID.String(), u.Name, u.Role)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"user":    u,
	})
}

func (h *Handler) ForgotPassword(c echo.Context) error {
	username := c.QueryParam("username")
	question, err := h.svc.RecoveryQuestion(c.Request().Context(), username)
	if errors.Is(err, ErrNotFound) {
		return fail(c, http.StatusNotFound, "Username not found")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": question,
	})
}

type resetPasswordRequest struct {
	Username    string `json:"username"`
	Answer      string `json:"answer"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	err := h.svc.ResetPassword(c.Request().Context(), req.Username, req.Answer, req.NewPassword)
	switch {
	case errors.Is(err, ErrNotFound):
		return fail(c, http.StatusNotFound, "Username not found")
	case errors.Is(err, ErrWrongAnswer):
		return fail(c, http.StatusUnauthorized, "Incorrect recovery answer")
	case validation.IsError(err):
		return fail(c, http.StatusBadRequest, err.Error())
	case err != nil:
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password reset successfully",
	})
}

func (h *Handler) GetProfile(c echo.Context) error {
	userID, err := uuid.Parse(auth.UserID(c))
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Invalid session")
	}
	u, err := h.svc.Profile(c.Request().Context(), userID)
	if errors.Is(err, ErrNotFound) {
		return fail(c, http.StatusNotFound, "User not found")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	userID, err := uuid.Parse(auth.UserID(c))
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Invalid session")
	}

	var in UpdateProfileInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	u, err := h.svc.UpdateProfile(c.Request().Context(), userID, in)
	switch {
	case errors.Is(err, ErrUsernameTaken):
		return fail(c, http.StatusBadRequest, "Username already taken")
	case errors.Is(err, ErrNotFound):
		return fail(c, http.StatusNotFound, "User not found")
	case validation.IsError(err):
		return fail(c, http.StatusBadRequest, err.Error())
	case err != nil:
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Profile updated successfully",
		"user":    u,
	})
}

// CheckUsername answers availability probes from the profile form. The seq
// parameter is echoed back so the client can discard stale responses that
// arrive out of order.
func (h *Handler) CheckUsername(c echo.Context) error {
	userID, err := uuid.Parse(auth.UserID(c))
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Invalid session")
	}

	available, err := h.svc.CheckUsername(c.Request().Context(), c.QueryParam("username"), userID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	seq, _ := strconv.Atoi(c.QueryParam("seq"))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"available": available,
		"seq":       seq,
	})
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
