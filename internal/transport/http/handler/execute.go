package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"instructo-gateway/internal/app"
	"instructo-gateway/internal/transport/http/middleware"
	"instructo-gateway/internal/transport/http/response"
)

type ExecuteHandler struct {
	executorService *app.ExecutorService
}

func NewExecuteHandler(executorService *app.ExecutorService) *ExecuteHandler {
	return &ExecuteHandler{executorService: executorService}
}

// Submit relays the raw request body to the executor service and
// returns its response body verbatim.
func (h *ExecuteHandler) Submit(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "read request body failed")
		return
	}

	result, err := h.executorService.SubmitCode(c.Request.Context(), app.SubmitCodeInput{
		UserID:   userID,
		Language: c.Param("language"),
		Payload:  payload,
		Code:     string(payload),
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrBadUpstream):
			response.Error(c, http.StatusBadGateway, response.CodeBadUpstream, "code execution service unavailable")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "code submission failed")
		}
		return
	}

	c.Data(http.StatusOK, "application/json", []byte(result))
}

func (h *ExecuteHandler) ListSubmissions(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	submissions, err := h.executorService.ListSubmissions(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list submissions failed")
		return
	}

	response.OK(c, gin.H{"submissions": submissions})
}
