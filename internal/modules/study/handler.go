package study

import (
	"github.com/gin-gonic/gin"

	"github.com/limmud-app/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sessions", h.createSession)
	rg.PATCH("/sessions/:id/complete", h.completeSession)
	rg.POST("/reflections", h.createReflection)
	rg.GET("/users/:id/pattern", h.pattern)
	rg.GET("/users/:id/insights", h.insights)
}

func (h *Handler) createSession(c *gin.Context) {
	var dto CreateSessionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	session, err := h.svc.CreateSession(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, session)
}

func (h *Handler) completeSession(c *gin.Context) {
	session, err := h.svc.CompleteSession(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if session == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, session)
}

func (h *Handler) createReflection(c *gin.Context) {
	var dto CreateReflectionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	reflection, err := h.svc.CreateReflection(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, reflection)
}

func (h *Handler) pattern(c *gin.Context) {
	pattern, err := h.svc.Pattern(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, pattern)
}

func (h *Handler) insights(c *gin.Context) {
	insights, err := h.svc.UserInsights(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, insights)
}
