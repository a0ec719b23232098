package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"instructo-gateway/internal/app"
	"instructo-gateway/internal/model"
	"instructo-gateway/internal/transport/http/middleware"
	"instructo-gateway/internal/transport/http/response"
)

type UserHandler struct {
	accountService *app.AccountService
}

type UpdateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type LanguageRequest struct {
	Language string `json:"language" binding:"required,max=64"`
	Level    string `json:"level" binding:"required,max=64"`
}

func NewUserHandler(accountService *app.AccountService) *UserHandler {
	return &UserHandler{accountService: accountService}
}

func (h *UserHandler) Me(c *gin.Context) {
	_, username, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	user, err := h.accountService.GetByUsername(username)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch current user failed")
		return
	}
	if user == nil {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found")
		return
	}

	response.OK(c, gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"languages": user.Languages,
	})
}

// Update replaces the authenticated user's username and password. The
// body carries the new values; identity comes from the token.
func (h *UserHandler) Update(c *gin.Context) {
	_, username, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	err := h.accountService.Update(app.UpdateInput{
		CurrentUsername: username,
		Username:        req.Username,
		Password:        req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, response.CodeUserNotFound, err.Error())
		case errors.Is(err, app.ErrUsernameExists):
			response.Error(c, http.StatusBadRequest, response.CodeUsernameExists, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update failed")
		}
		return
	}

	response.OK(c, nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	_, username, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	if err := h.accountService.Delete(username); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete failed")
		return
	}
	response.OK(c, nil)
}

func (h *UserHandler) AddLanguage(c *gin.Context) {
	_, username, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	var req LanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	entry := model.Language{Language: req.Language, Level: req.Level}
	if err := h.accountService.AddLanguage(username, entry); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusBadRequest, response.CodeUserNotFound, "failed to add language")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "add language failed")
		}
		return
	}

	response.OK(c, gin.H{"message": "language added successfully"})
}

func (h *UserHandler) RemoveLanguage(c *gin.Context) {
	_, username, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	language := c.Query("language")
	if language == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "language query parameter is required")
		return
	}

	if err := h.accountService.RemoveLanguage(username, language); err != nil {
		switch {
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusBadRequest, response.CodeUserNotFound, "failed to remove language")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "remove language failed")
		}
		return
	}

	response.OK(c, gin.H{"message": "language removed successfully"})
}
