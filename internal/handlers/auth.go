package handlers

import (
	"errors"
	"net/http"

	"solar_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// SignUpRequest is the registration form.
type SignUpRequest struct {
	Name            string `json:"name" example:"Alice"`
	Email           string `json:"email" example:"alice@example.com"`
	Password        string `json:"password" example:"s3cret"`
	ConfirmPassword string `json:"confirm_password" example:"s3cret"`
}

// SignInRequest holds the sign-in credentials.
type SignInRequest struct {
	Email    string `json:"email" binding:"required" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}

// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      SignUpRequest  true  "Registration form"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input SignUpRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	id, err := h.services.SignUp(c.Request.Context(), service.SignUpInput{
		Name:            input.Name,
		Email:           input.Email,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"id": id})
	case errors.Is(err, service.ErrPasswordMismatch), errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errSignUp, "auth_sign_up_failed", err, "email", input.Email)
	}
}

// @Summary      Sign in
// @Description  Returns a bearer token that identifies a new session.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      SignInRequest  true  "Credentials"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input SignInRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(input.Email, input.Password)
	if err != nil {
		h.log.Infow("auth_sign_in_failed", "email", input.Email, "err", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary      Sign out
// @Description  Ends the session and discards its developer override.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/sign-out [post]
// @Security     BearerAuth
func (h *Handler) signOut(c *gin.Context) {
	sess := currentSession(c)
	if err := h.services.EndSession(c.Request.Context(), sess); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSignOut, "auth_sign_out_failed", err, "user_id", sess.UserID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSignedOut})
}
