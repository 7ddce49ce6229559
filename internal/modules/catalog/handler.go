package catalog

import (
	"github.com/gin-gonic/gin"

	"github.com/limmud-app/core/internal/pkg/pagination"
	"github.com/limmud-app/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	sources := rg.Group("/sources")
	sources.GET("", h.list)
	sources.GET("/:id", h.getByID)

	authed := sources.Group("", authMW)
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
	authed.PATCH("/:id", h.update)
	authed.DELETE("/:id", h.delete)
	authed.POST("/save-generated", h.saveGenerated)
}

func (h *Handler) list(c *gin.Context) {
	filter := ListFilter{
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
	}
	if v, ok := c.GetQuery("published"); ok {
		published := v == "true" || v == "1"
		filter.Published = &published
	}

	sources, page, err := h.svc.List(pagination.FromContext(c), filter)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, sources, page)
}

func (h *Handler) getByID(c *gin.Context) {
	src, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if src == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, src)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateSourceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	src, err := h.svc.Create(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, src)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateSourceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	src, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if src == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, src)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

type saveGeneratedDTO struct {
	ID string `json:"id" binding:"required"`
}

// saveGenerated publishes an AI-generated source the user decided to keep.
func (h *Handler) saveGenerated(c *gin.Context) {
	var dto saveGeneratedDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	src, err := h.svc.KeepGenerated(dto.ID)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if src == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, src)
}
