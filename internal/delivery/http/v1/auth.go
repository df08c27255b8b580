package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/A1ekseiPanov/task-management-system/internal/models"
	"github.com/A1ekseiPanov/task-management-system/internal/services"
)

type registerRequest struct {
	FirstName string `json:"first_name" binding:"required,min=5,max=30"`
	LastName  string `json:"last_name" binding:"required,min=5,max=30"`
	Email     string `json:"email" binding:"required,email,max=45"`
	Password  string `json:"password" binding:"required,min=5,max=30"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email,max=45"`
	Password string `json:"password" binding:"required,min=5,max=30"`
}

type userResponse struct {
	ID       int64         `json:"id"`
	Username string        `json:"username"`
	Roles    []models.Role `json:"roles"`
	Created  time.Time     `json:"created"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Username: user.Email,
		Roles:    user.Roles,
		Created:  user.Created,
	}
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *handlerImpl) HandleRegister(c *gin.Context) {
	var req registerRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request body")
		abortBindingError(c, err)
		return
	}

	user, err := h.users.Register(c, services.RegisterParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request body")
		abortBindingError(c, err)
		return
	}

	result, err := h.users.Login(c, services.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}
