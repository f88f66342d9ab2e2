package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/procurement/internal/domain/model"
	"github.com/polkiloo/procurement/internal/usecase"
)

// UserHandler manages platform accounts.
type UserHandler struct {
	facade UserFacade
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(facade UserFacade) *UserHandler {
	return &UserHandler{facade: facade}
}

// Create handles POST /api/user.
func (h *UserHandler) Create(c *gin.Context) {
	var in usecase.UserInput
	if !bindJSON(c, &in) {
		return
	}
	usr, err := h.facade.CreateUser(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usr)
}

// List handles GET /api/user.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.facade.Users(c.Request.Context(), model.Role(c.Query("role")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get handles GET /api/user/:id.
func (h *UserHandler) Get(c *gin.Context) {
	usr, err := h.facade.User(c.Request.Context(), CurrentIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// Update handles PUT /api/user/:id.
func (h *UserHandler) Update(c *gin.Context) {
	var patch usecase.UserPatch
	if !bindJSON(c, &patch) {
		return
	}
	usr, err := h.facade.UpdateUser(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// Delete handles DELETE /api/user/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "user")
}
