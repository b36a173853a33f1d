package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subodh53/BookMySlot/internal/domain"
)

func (s *Server) getRuleSet(c *gin.Context) {
	log := s.log.With(slog.String("handler", "getRuleSet"))

	set, err := s.availability.RuleSet(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weekly": set.Weekly, "exceptions": set.Exceptions})
}

type replaceRuleSetRequest struct {
	Weekly     []domain.WeeklyRule `json:"weekly"`
	Exceptions []domain.Exception  `json:"exceptions"`
}

func (s *Server) replaceRuleSet(c *gin.Context) {
	log := s.log.With(slog.String("handler", "replaceRuleSet"))

	var req replaceRuleSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	set, err := s.availability.ReplaceRules(c.Request.Context(), currentUserID(c), req.Weekly, req.Exceptions)
	if err != nil {
		s.writeError(c, log, err)
		return
	}

	log.Info("availability replaced",
		slog.Int("weekly_rules", len(set.Weekly)),
		slog.Int("exceptions", len(set.Exceptions)),
	)
	c.JSON(http.StatusOK, gin.H{"weekly": set.Weekly, "exceptions": set.Exceptions})
}

// publicAvailability is unauthenticated; it answers the booking page.
// startDate/endDate are optional "YYYY-MM-DD" bounds in the host's zone.
func (s *Server) publicAvailability(c *gin.Context) {
	log := s.log.With(slog.String("handler", "publicAvailability"))

	out, err := s.availability.PublicAvailability(
		c.Request.Context(),
		c.Param("username"),
		c.Param("slug"),
		c.Query("startDate"),
		c.Query("endDate"),
	)
	if err != nil {
		s.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
