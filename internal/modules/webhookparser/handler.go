package webhookparser

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/limmud-app/core/internal/pkg/response"
)

type ParseDTO struct {
	RawText       string `json:"raw_text" binding:"required"`
	Language      string `json:"language"`
	Topic         string `json:"topic"`
	RequestedTime int    `json:"requested_time"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhook/parse", h.parse)
}

// parse turns a raw model response into a structured source. An unusable
// response is the caller's problem to retry, reported as 422.
func (h *Handler) parse(c *gin.Context) {
	var dto ParseDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	src, err := Parse(Input{
		RawText:       dto.RawText,
		Language:      dto.Language,
		Topic:         dto.Topic,
		RequestedTime: dto.RequestedTime,
	})
	if err != nil {
		if errors.Is(err, ErrUnusable) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, src)
}
