package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/procurement/internal/server/http/dto"
	"github.com/polkiloo/procurement/internal/server/http/middleware"
	"github.com/polkiloo/procurement/internal/usecase"
)

// AuthHandler processes OTP login and self registration.
type AuthHandler struct {
	facade   AuthFacade
	tokenTTL time.Duration
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{facade: facade, tokenTTL: tokenTTL}
}

// SendOTP handles POST /api/auth/send-otp.
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req dto.SendOTPRequest
	if !bindJSON(c, &req) {
		return
	}

	ticket, err := h.facade.SendOTP(c.Request.Context(), req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// VerifyOTP handles POST /api/auth/verify-otp/:reference.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if !bindJSON(c, &req) {
		return
	}

	usr, token, err := h.facade.VerifyOTP(c.Request.Context(), c.Param("reference"), req.OTP)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token, h.tokenTTL)
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: usr})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var in usecase.UserInput
	if !bindJSON(c, &in) {
		return
	}

	usr, err := h.facade.RegisterUser(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usr)
}
