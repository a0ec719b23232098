package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"instructo-gateway/internal/app"
	"instructo-gateway/internal/downstream"
	"instructo-gateway/internal/transport/http/response"
)

type TutorHandler struct {
	tutorService *app.TutorService
}

func NewTutorHandler(tutorService *app.TutorService) *TutorHandler {
	return &TutorHandler{tutorService: tutorService}
}

func (h *TutorHandler) GenerateQuiz(c *gin.Context) {
	quiz, err := h.tutorService.GenerateQuiz(c.Request.Context(), c.Query("language"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", []byte(quiz))
}

func (h *TutorHandler) EvaluateQuiz(c *gin.Context) {
	h.forward(c, downstream.TutorPathQuizEvaluate)
}

func (h *TutorHandler) ReviewCode(c *gin.Context) {
	h.forward(c, downstream.TutorPathCodeReview)
}

func (h *TutorHandler) ChatWithCode(c *gin.Context) {
	h.forward(c, downstream.TutorPathCodeChat)
}

func (h *TutorHandler) GenerateIncompleteCode(c *gin.Context) {
	h.forward(c, downstream.TutorPathIncompleteCode)
}

func (h *TutorHandler) GenerateOutputChallenge(c *gin.Context) {
	h.forward(c, downstream.TutorPathOutputBased)
}

func (h *TutorHandler) GenerateProblemSolvingChallenge(c *gin.Context) {
	h.forward(c, downstream.TutorPathProblemSolving)
}

func (h *TutorHandler) SubmitSolution(c *gin.Context) {
	h.forward(c, downstream.TutorPathSubmitSolution)
}

func (h *TutorHandler) forward(c *gin.Context, path string) {
	payload, err := c.GetRawData()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "read request body failed")
		return
	}

	result, err := h.tutorService.Forward(c.Request.Context(), path, payload)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", []byte(result))
}

func (h *TutorHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrLanguageRequired), errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrBadUpstream):
		response.Error(c, http.StatusBadGateway, response.CodeBadUpstream, "tutoring service unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "tutoring request failed")
	}
}
