package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/wordle-circles/internal/application"
	"github.com/oksasatya/wordle-circles/pkg/response"
)

type CircleHandler struct {
	Svc    *application.CircleService
	Logger *logrus.Logger
}

func NewCircleHandler(svc *application.CircleService, logger *logrus.Logger) *CircleHandler {
	return &CircleHandler{Svc: svc, Logger: logger}
}

type createCircleRequest struct {
	Name string `json:"name" binding:"required,circlename"`
}

type joinCircleRequest struct {
	Code string `json:"code" binding:"required"`
}

type circleDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type memberDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Guesses   *int    `json:"guesses"`
	RawResult *string `json:"raw_result"`
}

// Create POST /api/create-circle
func (h *CircleHandler) Create(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req createCircleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	circle, err := h.Svc.Create(c.Request.Context(), caller.UserID, req.Name)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"circleId":   circle.ID,
		"inviteCode": circle.InviteCode,
	}, "circle created successfully", nil)
}

// Join POST /api/join-circle
func (h *CircleHandler) Join(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req joinCircleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	circle, err := h.Svc.Join(c.Request.Context(), caller, req.Code)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"circleId":   circle.ID,
		"circleName": circle.Name,
	}, `successfully joined the circle "`+circle.Name+`"`, nil)
}

// MyCircles GET /api/my-circles
func (h *CircleHandler) MyCircles(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	list, err := h.Svc.ListForUser(c.Request.Context(), caller.UserID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]circleDTO, 0, len(list))
	for _, s := range list {
		out = append(out, circleDTO{ID: s.ID, Name: s.Name})
	}
	response.Success(c, http.StatusOK, gin.H{"circles": out}, "ok", nil)
}

// Get GET /api/circles/:circleId
func (h *CircleHandler) Get(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	board, err := h.Svc.Board(c.Request.Context(), c.Param("circleId"), caller.UserID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	members := make([]memberDTO, 0, len(board.Members))
	for _, m := range board.Members {
		members = append(members, memberDTO{ID: m.UserID, Name: m.Name, Guesses: m.Guesses, RawResult: m.RawResult})
	}
	response.Success(c, http.StatusOK, gin.H{
		"circleName": board.Circle.Name,
		"members":    members,
	}, "ok", map[string]any{"date": board.Day})
}
