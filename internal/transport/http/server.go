// Package http exposes the REST API. Handlers translate between JSON and
// the service layer; typed service errors map to HTTP statuses and
// everything else becomes an opaque 500.
package http

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/subodh53/BookMySlot/internal/domain"
	"github.com/subodh53/BookMySlot/internal/service/auth"
	"github.com/subodh53/BookMySlot/internal/service/availability"
	"github.com/subodh53/BookMySlot/internal/service/bookings"
	"github.com/subodh53/BookMySlot/internal/service/eventtypes"
)

type authService interface {
	Signup(ctx context.Context, in auth.SignupInput) (domain.User, string, error)
	Login(ctx context.Context, in auth.LoginInput) (domain.User, string, error)
	Me(ctx context.Context, userID uuid.UUID) (domain.User, error)
}

type eventTypeService interface {
	Create(ctx context.Context, hostID uuid.UUID, in eventtypes.CreateInput) (domain.EventType, error)
	List(ctx context.Context, hostID uuid.UUID) ([]domain.EventType, error)
	Update(ctx context.Context, hostID, id uuid.UUID, in eventtypes.UpdateInput) (domain.EventType, error)
	Delete(ctx context.Context, hostID, id uuid.UUID) error
}

type availabilityService interface {
	PublicAvailability(ctx context.Context, username, slug, startDate, endDate string) (availability.PublicAvailability, error)
	RuleSet(ctx context.Context, hostID uuid.UUID) (domain.AvailabilityRuleSet, error)
	ReplaceRules(ctx context.Context, hostID uuid.UUID, weekly []domain.WeeklyRule, exceptions []domain.Exception) (domain.AvailabilityRuleSet, error)
}

type bookingService interface {
	CreatePublic(ctx context.Context, username, slug string, in bookings.CreateInput) (bookings.Created, error)
	ListUpcoming(ctx context.Context, hostID uuid.UUID) ([]domain.Booking, error)
	Cancel(ctx context.Context, hostID, id uuid.UUID) (domain.Booking, error)
}

type Server struct {
	auth         authService
	eventTypes   eventTypeService
	availability availabilityService
	bookings     bookingService
	jwtSecret    []byte
	log          *slog.Logger
}

type Deps struct {
	Auth         authService
	EventTypes   eventTypeService
	Availability availabilityService
	Bookings     bookingService
	JWTSecret    []byte
	Logger       *slog.Logger
}

func NewServer(deps Deps) *Server {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		auth:         deps.Auth,
		eventTypes:   deps.EventTypes,
		availability: deps.Availability,
		bookings:     deps.Bookings,
		jwtSecret:    deps.JWTSecret,
		log:          log.With(slog.String("component", "http")),
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/auth/signup", s.signup)
	api.POST("/auth/login", s.login)

	authed := api.Group("", s.requireAuth)
	authed.GET("/auth/me", s.me)
	authed.GET("/availability", s.getRuleSet)
	authed.POST("/availability", s.replaceRuleSet)
	authed.GET("/event-types", s.listEventTypes)
	authed.POST("/event-types", s.createEventType)
	authed.PATCH("/event-types/:id", s.updateEventType)
	authed.DELETE("/event-types/:id", s.deleteEventType)
	authed.GET("/bookings", s.listBookings)
	authed.PATCH("/bookings/:id/status", s.cancelBooking)

	r.GET("/u/:username/event/:slug/availability", s.publicAvailability)
	r.POST("/u/:username/event/:slug/book", s.publicBook)

	return r
}
