package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/subodh53/BookMySlot/internal/domain"
	"github.com/subodh53/BookMySlot/internal/service/auth"
)

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Username:  u.Username,
		Timezone:  u.Timezone,
		CreatedAt: u.CreatedAt,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Timezone string `json:"timezone"`
}

func (s *Server) signup(c *gin.Context) {
	log := s.log.With(slog.String("handler", "signup"))

	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, token, err := s.auth.Signup(c.Request.Context(), auth.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Timezone: req.Timezone,
	})
	if err != nil {
		s.writeError(c, log, err)
		return
	}

	log.Info("user signed up", slog.String("user_id", user.ID.String()))
	c.JSON(http.StatusCreated, gin.H{"user": toUserResponse(user), "token": token})
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	log := s.log.With(slog.String("handler", "login"))

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, token, err := s.auth.Login(c.Request.Context(), auth.LoginInput{
		EmailOrUsername: req.Identifier,
		Password:        req.Password,
	})
	if err != nil {
		s.writeError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user), "token": token})
}

func (s *Server) me(c *gin.Context) {
	log := s.log.With(slog.String("handler", "me"))

	user, err := s.auth.Me(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}
