package eventtypes

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/subodh53/BookMySlot/internal/domain"
	"github.com/subodh53/BookMySlot/internal/store"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type Service struct {
	repo store.EventTypeRepository
}

func NewService(repo store.EventTypeRepository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Title             string
	Slug              string
	Description       string
	DurationMinutes   int
	LocationType      string
	LocationURL       string
	BufferBefore      int
	BufferAfter       int
	MinNoticeMinutes  int
	MaxSchedulingDays int
}

func (s *Service) Create(ctx context.Context, hostID uuid.UUID, in CreateInput) (domain.EventType, error) {
	title := strings.TrimSpace(in.Title)
	slug := strings.ToLower(strings.TrimSpace(in.Slug))

	if title == "" {
		return domain.EventType{}, validationError("title is required")
	}
	if slug == "" {
		return domain.EventType{}, validationError("slug is required")
	}
	if !slugPattern.MatchString(slug) {
		return domain.EventType{}, validationError("slug must be lowercase letters, digits and hyphens")
	}
	if in.DurationMinutes <= 0 {
		return domain.EventType{}, validationError("durationMinutes must be positive")
	}
	if in.BufferBefore < 0 || in.BufferAfter < 0 {
		return domain.EventType{}, validationError("buffers must not be negative")
	}
	if in.MinNoticeMinutes < 0 {
		return domain.EventType{}, validationError("minNoticeMinutes must not be negative")
	}

	locationType := domain.LocationType(in.LocationType)
	if in.LocationType == "" {
		locationType = domain.LocationTypeVideo
	}
	if !locationType.Valid() {
		return domain.EventType{}, validationError("invalid locationType")
	}

	minNotice := in.MinNoticeMinutes
	if minNotice == 0 {
		minNotice = 60
	}
	maxDays := in.MaxSchedulingDays
	if maxDays <= 0 {
		maxDays = 30
	}

	et, err := s.repo.Create(ctx, domain.EventType{
		HostID:            hostID,
		Title:             title,
		Slug:              slug,
		Description:       strings.TrimSpace(in.Description),
		DurationMinutes:   in.DurationMinutes,
		LocationType:      locationType,
		LocationURL:       strings.TrimSpace(in.LocationURL),
		BufferBefore:      in.BufferBefore,
		BufferAfter:       in.BufferAfter,
		MinNoticeMinutes:  minNotice,
		MaxSchedulingDays: maxDays,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return domain.EventType{}, validationError("slug already used for this host")
		}
		return domain.EventType{}, err
	}
	return et, nil
}

func (s *Service) List(ctx context.Context, hostID uuid.UUID) ([]domain.EventType, error) {
	return s.repo.ListByHost(ctx, hostID)
}

// UpdateInput fields are pointers so callers can patch a subset.
type UpdateInput struct {
	Title             *string
	Slug              *string
	Description       *string
	DurationMinutes   *int
	LocationType      *string
	LocationURL       *string
	BufferBefore      *int
	BufferAfter       *int
	MinNoticeMinutes  *int
	MaxSchedulingDays *int
}

func (s *Service) Update(ctx context.Context, hostID, id uuid.UUID, in UpdateInput) (domain.EventType, error) {
	et, err := s.repo.ByID(ctx, hostID, id)
	if err != nil {
		return domain.EventType{}, err
	}

	if in.Title != nil {
		et.Title = strings.TrimSpace(*in.Title)
		if et.Title == "" {
			return domain.EventType{}, validationError("title is required")
		}
	}
	if in.Slug != nil {
		et.Slug = strings.ToLower(strings.TrimSpace(*in.Slug))
		if !slugPattern.MatchString(et.Slug) {
			return domain.EventType{}, validationError("slug must be lowercase letters, digits and hyphens")
		}
	}
	if in.Description != nil {
		et.Description = strings.TrimSpace(*in.Description)
	}
	if in.DurationMinutes != nil {
		if *in.DurationMinutes <= 0 {
			return domain.EventType{}, validationError("durationMinutes must be positive")
		}
		et.DurationMinutes = *in.DurationMinutes
	}
	if in.LocationType != nil {
		lt := domain.LocationType(*in.LocationType)
		if !lt.Valid() {
			return domain.EventType{}, validationError("invalid locationType")
		}
		et.LocationType = lt
	}
	if in.LocationURL != nil {
		et.LocationURL = strings.TrimSpace(*in.LocationURL)
	}
	if in.BufferBefore != nil {
		if *in.BufferBefore < 0 {
			return domain.EventType{}, validationError("buffers must not be negative")
		}
		et.BufferBefore = *in.BufferBefore
	}
	if in.BufferAfter != nil {
		if *in.BufferAfter < 0 {
			return domain.EventType{}, validationError("buffers must not be negative")
		}
		et.BufferAfter = *in.BufferAfter
	}
	if in.MinNoticeMinutes != nil {
		if *in.MinNoticeMinutes < 0 {
			return domain.EventType{}, validationError("minNoticeMinutes must not be negative")
		}
		et.MinNoticeMinutes = *in.MinNoticeMinutes
	}
	if in.MaxSchedulingDays != nil {
		if *in.MaxSchedulingDays <= 0 {
			return domain.EventType{}, validationError("maxSchedulingDays must be positive")
		}
		et.MaxSchedulingDays = *in.MaxSchedulingDays
	}

	updated, err := s.repo.Update(ctx, et)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return domain.EventType{}, validationError("slug already used for this host")
		}
		return domain.EventType{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, hostID, id uuid.UUID) error {
	return s.repo.Delete(ctx, hostID, id)
}
