package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/subodh53/BookMySlot/internal/domain"
	"github.com/subodh53/BookMySlot/internal/service/eventtypes"
)

type createEventTypeRequest struct {
	Title             string `json:"title"`
	Slug              string `json:"slug"`
	Description       string `json:"description"`
	DurationMinutes   int    `json:"durationMinutes"`
	LocationType      string `json:"locationType"`
	LocationURL       string `json:"locationUrl"`
	BufferBefore      int    `json:"bufferBefore"`
	BufferAfter       int    `json:"bufferAfter"`
	MinNoticeMinutes  int    `json:"minNoticeMinutes"`
	MaxSchedulingDays int    `json:"maxSchedulingDays"`
}

func (s *Server) createEventType(c *gin.Context) {
	log := s.log.With(slog.String("handler", "createEventType"))

	var req createEventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	et, err := s.eventTypes.Create(c.Request.Context(), currentUserID(c), eventtypes.CreateInput{
		Title:             req.Title,
		Slug:              req.Slug,
		Description:       req.Description,
		DurationMinutes:   req.DurationMinutes,
		LocationType:      req.LocationType,
		LocationURL:       req.LocationURL,
		BufferBefore:      req.BufferBefore,
		BufferAfter:       req.BufferAfter,
		MinNoticeMinutes:  req.MinNoticeMinutes,
		MaxSchedulingDays: req.MaxSchedulingDays,
	})
	if err != nil {
		s.writeError(c, log, err)
		return
	}

	log.Info("event type created",
		slog.String("event_type_id", et.ID.String()),
		slog.String("slug", et.Slug),
	)
	c.JSON(http.StatusCreated, et)
}

func (s *Server) listEventTypes(c *gin.Context) {
	log := s.log.With(slog.String("handler", "listEventTypes"))

	list, err := s.eventTypes.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.writeError(c, log, err)
		return
	}
	if list == nil {
		list = []domain.EventType{}
	}
	c.JSON(http.StatusOK, list)
}

type updateEventTypeRequest struct {
	Title             *string `json:"title"`
	Slug              *string `json:"slug"`
	Description       *string `json:"description"`
	DurationMinutes   *int    `json:"durationMinutes"`
	LocationType      *string `json:"locationType"`
	LocationURL       *string `json:"locationUrl"`
	BufferBefore      *int    `json:"bufferBefore"`
	BufferAfter       *int    `json:"bufferAfter"`
	MinNoticeMinutes  *int    `json:"minNoticeMinutes"`
	MaxSchedulingDays *int    `json:"maxSchedulingDays"`
}

func (s *Server) updateEventType(c *gin.Context) {
	log := s.log.With(slog.String("handler", "updateEventType"))

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a UUID"})
		return
	}

	var req updateEventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	et, err := s.eventTypes.Update(c.Request.Context(), currentUserID(c), id, eventtypes.UpdateInput{
		Title:             req.Title,
		Slug:              req.Slug,
		Description:       req.Description,
		DurationMinutes:   req.DurationMinutes,
		LocationType:      req.LocationType,
		LocationURL:       req.LocationURL,
		BufferBefore:      req.BufferBefore,
		BufferAfter:       req.BufferAfter,
		MinNoticeMinutes:  req.MinNoticeMinutes,
		MaxSchedulingDays: req.MaxSchedulingDays,
	})
	if err != nil {
		s.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, et)
}

func (s *Server) deleteEventType(c *gin.Context) {
	log := s.log.With(slog.String("handler", "deleteEventType"))

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a UUID"})
		return
	}

	if err := s.eventTypes.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		s.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
