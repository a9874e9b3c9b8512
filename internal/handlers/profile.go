package handlers

import (
	"errors"
	"net/http"

	"solar_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileUpdateRequest edits the account; omitted or empty fields stay unchanged.
type ProfileUpdateRequest struct {
	Name     string `json:"name" example:"Alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password"`
	// File name of an already uploaded photo
	Photo string `json:"photo" example:"alice.png"`
}

// @Summary      Profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/profile [get]
// @Security     BearerAuth
func (h *Handler) getProfile(c *gin.Context) {
	sess := currentSession(c)
	u, err := h.services.GetProfile(c.Request.Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errProfile, "profile_get_failed", err, "user_id", sess.UserID)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Edit profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      ProfileUpdateRequest  true  "Fields to change"
// @Success      200   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/profile [put]
// @Security     BearerAuth
func (h *Handler) updateProfile(c *gin.Context) {
	var req ProfileUpdateRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	sess := currentSession(c)
	u, err := h.services.UpdateProfile(c.Request.Context(), sess.UserID, service.ProfileUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Photo:    req.Photo,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, u)
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidPhoto):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errProfileUpdate, "profile_update_failed", err, "user_id", sess.UserID)
	}
}

// @Summary      About the panel
// @Tags         info
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/about [get]
// @Security     BearerAuth
func (h *Handler) about(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.About())
}

// @Summary      Support contact
// @Tags         info
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/contact [get]
// @Security     BearerAuth
func (h *Handler) contact(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Contact())
}
