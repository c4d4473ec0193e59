package mindmap

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/studyhive/collab-service/internal/middleware"
	"github.com/studyhive/collab-service/pkg/log"
	"github.com/studyhive/collab-service/pkg/response"
)

// Handler handles HTTP requests for mindmap documents.
type Handler struct {
	service *Service
	auth    *middleware.AuthMiddleware
}

func NewHandler(service *Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{
		service: service,
		auth:    auth,
	}
}

// RegisterRoutes registers all mindmap routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		maps := api.Group("/mindmaps", h.auth.RequireAuth())
		{
			maps.POST("", h.Create)
			maps.GET("", h.ListMine)
			maps.GET("/:id", h.Get)
			maps.PATCH("/:id", h.Update)
			maps.DELETE("/:id", h.Delete)
		}
	}
}

// Create creates a new mindmap.
func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	if userID == "" {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind create mindmap request")
		response.BadRequest(c, err.Error())
		return
	}

	m, err := h.service.Create(ctx, userID, middleware.GetName(c), &req)
	if err != nil {
		l.Error().Err(err).Msg("failed to create mindmap")
		response.InternalError(c, "failed to create mindmap")
		return
	}

	response.Created(c, m)
}

// Get retrieves a mindmap by ID.
func (h *Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	id := c.Param("id")

	m, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrMindmapNotFound) {
			response.NotFound(c, "mindmap not found")
			return
		}
		l.Error().Err(err).Str(log.FieldDocumentID, id).Msg("failed to get mindmap")
		response.InternalError(c, "failed to get mindmap")
		return
	}

	response.Success(c, m)
}

// ListMine retrieves the caller's mindmaps.
func (h *Handler) ListMine(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	if userID == "" {
		response.Unauthorized(c, "unauthorized")
		return
	}

	maps, err := h.service.ListMine(ctx, userID)
	if err != nil {
		l.Error().Err(err).Msg("failed to list mindmaps")
		response.InternalError(c, "failed to list mindmaps")
		return
	}

	response.Success(c, gin.H{
		"mindmaps": maps,
		"total":    len(maps),
	})
}

// Update applies a partial update to a mindmap.
func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	if userID == "" {
		response.Unauthorized(c, "unauthorized")
		return
	}

	id := c.Param("id")

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	m, err := h.service.Update(ctx, userID, id, &req)
	if err != nil {
		if errors.Is(err, ErrMindmapNotFound) {
			response.NotFound(c, "mindmap not found")
			return
		}
		if errors.Is(err, ErrNotOwner) {
			response.Forbidden(c, "you are not the owner of this mindmap")
			return
		}
		l.Error().Err(err).Str(log.FieldDocumentID, id).Msg("failed to update mindmap")
		response.InternalError(c, "failed to update mindmap")
		return
	}

	response.Success(c, m)
}

// Delete removes a mindmap.
func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	if userID == "" {
		response.Unauthorized(c, "unauthorized")
		return
	}

	id := c.Param("id")

	if err := h.service.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrMindmapNotFound) {
			response.NotFound(c, "mindmap not found")
			return
		}
		if errors.Is(err, ErrNotOwner) {
			response.Forbidden(c, "you are not the owner of this mindmap")
			return
		}
		l.Error().Err(err).Str(log.FieldDocumentID, id).Msg("failed to delete mindmap")
		response.InternalError(c, "failed to delete mindmap")
		return
	}

	response.Success(c, gin.H{"message": "mindmap deleted"})
}
