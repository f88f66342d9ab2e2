package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/procurement/internal/domain/errors"
	"github.com/polkiloo/procurement/internal/domain/model"
	"github.com/polkiloo/procurement/internal/server/http/dto"
	"github.com/polkiloo/procurement/internal/server/http/middleware"
)

// CurrentIdentity extracts the authenticated identity from context.
func CurrentIdentity(c *gin.Context) model.Identity {
	identity, _ := middleware.CurrentIdentity(c)
	return identity
}

// optionalIdentity returns nil for anonymous requests.
func optionalIdentity(c *gin.Context) *model.Identity {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return nil
	}
	return &identity
}

// respondError maps domain errors to status codes. Unexpected errors are attached for the request logger.
func respondError(c *gin.Context, err error) {
	var vErr *domainErrors.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: vErr.Message, Field: vErr.Field})
	case errors.Is(err, domainErrors.ErrValidation),
		errors.Is(err, domainErrors.ErrAlreadyExists),
		errors.Is(err, domainErrors.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid credentials"})
	case errors.Is(err, domainErrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "forbidden"})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrInUse):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrTooManyRequests):
		c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Message: "too many requests, try again later"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal error"})
	}
}

// bindJSON decodes the request body and answers 400 on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var vErr *domainErrors.ValidationError
		if errors.As(err, &vErr) {
			respondError(c, vErr)
			return false
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed request body"})
		return false
	}
	return true
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domainErrors.NewValidationError(key, "must be an integer")
	}
	return n, nil
}

func pageRequest(c *gin.Context) (model.PageRequest, error) {
	number, err := queryInt(c, "page")
	if err != nil {
		return model.PageRequest{}, err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return model.PageRequest{}, err
	}
	return model.PageRequest{Number: number, Limit: limit}.Normalize(), nil
}

func orderFilter(c *gin.Context) (model.OrderFilter, error) {
	page, err := pageRequest(c)
	if err != nil {
		return model.OrderFilter{}, err
	}
	return model.OrderFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Status: model.OrderStatus(c.Query("status")),
		Page:   page,
	}, nil
}

func catalogFilter(c *gin.Context) (model.CatalogFilter, error) {
	page, err := pageRequest(c)
	if err != nil {
		return model.CatalogFilter{}, err
	}
	return model.CatalogFilter{Search: strings.TrimSpace(c.Query("search")), Page: page}, nil
}

func deleted(c *gin.Context, what string) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: what + " deleted"})
}
