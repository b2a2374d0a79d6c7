package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luislong0/daily-diet-api/models"
	"github.com/luislong0/daily-diet-api/services"
)

type UserController struct {
	Svc    *services.UserService
	Errors ErrorMapper
}

func NewUserController(svc *services.UserService, errs ErrorMapper) *UserController {
	return &UserController{Svc: svc, Errors: errs}
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Bio      string `json:"bio" binding:"required"`
	PhotoURL string `json:"photoUrl" binding:"required"`
}

func (h *UserController) ListUsers(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Errors.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser answers with a one-element array for compatibility with existing clients.
func (h *UserController) GetUser(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		badRequest(c, "id is required")
		return
	}
	u, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.Errors.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, []models.User{*u})
}

func (h *UserController) CreateUser(c *gin.Context) {
	var body createUserRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), services.CreateUserInput{
		Name:     body.Name,
		Bio:      body.Bio,
		PhotoURL: body.PhotoURL,
	})
	if err != nil {
		h.Errors.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}
