package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk-io/staffdesk/internal/common"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *handlers) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	_, err := h.auth.Register(c.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"message": "username already exists"})
	case err != nil:
		h.logger.Error(c.Request.Context(), "registration failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	default:
		c.JSON(http.StatusCreated, gin.H{"message": "user registered successfully"})
	}
}

func (h *handlers) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	pair, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found"})
	case errors.Is(err, common.ErrorInvalidPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid password"})
	case err != nil:
		h.logger.Error(c.Request.Context(), "login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	default:
		c.JSON(http.StatusOK, gin.H{"token": pair.AccessToken, "refreshToken": pair.RefreshToken})
	}
}

func (h *handlers) refreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusForbidden, gin.H{"message": "refresh token not found or invalid"})
		return
	}

	access, err := h.auth.RefreshAccess(c.Request.Context(), req.RefreshToken)
	switch {
	case errors.Is(err, common.ErrorNotRegistered):
		c.JSON(http.StatusForbidden, gin.H{"message": "refresh token not found or invalid"})
	case errors.Is(err, common.ErrTokenExpired), errors.Is(err, common.ErrInvalidToken):
		c.JSON(http.StatusForbidden, gin.H{"message": "invalid refresh token"})
	case err != nil:
		h.logger.Error(c.Request.Context(), "refresh failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	default:
		c.JSON(http.StatusOK, gin.H{"token": access})
	}
}

func (h *handlers) logout(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "token not found"})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), identity); err != nil {
		h.logger.Error(c.Request.Context(), "logout failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}
