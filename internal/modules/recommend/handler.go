package recommend

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/limmud-app/core/internal/modules/catalog"
	"github.com/limmud-app/core/internal/modules/study"
	"github.com/limmud-app/core/internal/pkg/redis"
	"github.com/limmud-app/core/internal/pkg/response"
)

// seenTTL bounds how long a session's exclusion set survives in redis.
const seenTTL = 2 * time.Hour

type RecommendDTO struct {
	UserID    string `json:"user_id" binding:"required"`
	SessionID string `json:"session_id" binding:"required"`
	Time      int    `json:"time" binding:"required,min=1"`
	Topic     string `json:"topic" binding:"required"`
	Language  string `json:"language"`
}

type SkipDTO struct {
	RecommendDTO
	SourceID string `json:"source_id" binding:"required"`
}

type Handler struct {
	engine  *Engine
	catalog *catalog.Service
	study   *study.Service
	cache   *redis.Client
	logger  *zap.Logger
}

func NewHandler(engine *Engine, cat *catalog.Service, st *study.Service, cache *redis.Client, logger *zap.Logger) *Handler {
	return &Handler{
		engine:  engine,
		catalog: cat,
		study:   st,
		cache:   cache,
		logger:  logger.Named("recommend"),
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.recommend)
	rg.POST("/recommendations/skip", h.skip)
}

func (h *Handler) recommend(c *gin.Context) {
	var dto RecommendDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.respond(c, dto)
}

// skip records the rejected source in the session's exclusion set and
// immediately picks again.
func (h *Handler) skip(c *gin.Context) {
	var dto SkipDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.markSeen(c, dto.SessionID, dto.SourceID); err != nil {
		h.logger.Warn("failed to record skipped source", zap.Error(err))
	}
	h.respond(c, dto.RecommendDTO)
}

func (h *Handler) respond(c *gin.Context, dto RecommendDTO) {
	sources, err := h.catalog.FetchPublished()
	if err != nil {
		response.InternalError(c, err)
		return
	}

	pattern, err := h.study.Pattern(dto.UserID)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	exclude, err := h.seenSet(c, dto.SessionID)
	if err != nil {
		h.logger.Warn("failed to load session exclusions", zap.Error(err))
		exclude = map[string]bool{}
	}

	res, err := h.engine.Recommend(c.Request.Context(), sources, Request{
		Time:     dto.Time,
		Topic:    dto.Topic,
		Language: dto.Language,
		Exclude:  exclude,
	}, pattern)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if res == nil {
		response.NotFoundMsg(c, "no source available for this request")
		return
	}

	if res.Tier == TierGenerated {
		if err := h.catalog.SaveGenerated(res.Source); err != nil {
			response.InternalError(c, fmt.Errorf("persist generated source: %w", err))
			return
		}
	}
	if err := h.markSeen(c, dto.SessionID, res.Source.ID); err != nil {
		h.logger.Warn("failed to record recommended source", zap.Error(err))
	}

	response.OK(c, res)
}

func (h *Handler) seenSet(c *gin.Context, sessionID string) (map[string]bool, error) {
	if h.cache == nil {
		return map[string]bool{}, nil
	}
	members, err := h.cache.SMembers(c.Request.Context(), seenKey(sessionID))
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(members))
	for _, id := range members {
		seen[id] = true
	}
	return seen, nil
}

func (h *Handler) markSeen(c *gin.Context, sessionID, sourceID string) error {
	if h.cache == nil {
		return errors.New("session cache unavailable")
	}
	return h.cache.SAdd(c.Request.Context(), seenKey(sessionID), seenTTL, sourceID)
}

func seenKey(sessionID string) string {
	return "limmud:seen:" + sessionID
}
