package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/wordle-circles/internal/application"
	"github.com/oksasatya/wordle-circles/internal/domain/entity"
	"github.com/oksasatya/wordle-circles/pkg/response"
)

type ScoreHandler struct {
	Svc    *application.ScoreService
	Logger *logrus.Logger
}

func NewScoreHandler(svc *application.ScoreService, logger *logrus.Logger) *ScoreHandler {
	return &ScoreHandler{Svc: svc, Logger: logger}
}

type submitScoreRequest struct {
	Guesses   *int   `json:"guesses" binding:"required,guesses"`
	RawResult string `json:"rawResult" binding:"required"`
}

// Submit POST /api/submit-wordle
func (h *ScoreHandler) Submit(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req submitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	score, err := h.Svc.Submit(c.Request.Context(), caller.UserID, *req.Guesses, req.RawResult)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"scoreId": score.ID}, "wordle result submitted successfully", nil)
}

// Today GET /api/scores/today
func (h *ScoreHandler) Today(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	score, err := h.Svc.Today(c.Request.Context(), caller.UserID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	var out any
	if score != nil {
		out = gin.H{
			"id":           score.ID,
			"date":         score.Date.Format(entity.DateLayout),
			"guesses":      score.Guesses,
			"raw_result":   score.RawResult,
			"failed":       score.Failed(),
			"submitted_at": score.SubmittedAt,
		}
	}
	response.Success(c, http.StatusOK, gin.H{"score": out}, "ok", nil)
}
