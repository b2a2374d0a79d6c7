package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luislong0/daily-diet-api/models"
	"github.com/luislong0/daily-diet-api/services"
)

type MealController struct {
	Meals  *services.MealService
	Stats  *services.StatsService
	Errors ErrorMapper
}

func NewMealController(meals *services.MealService, stats *services.StatsService, errs ErrorMapper) *MealController {
	return &MealController{Meals: meals, Stats: stats, Errors: errs}
}

// IsInDiet is a pointer so that an explicit false passes the required check.
type createMealRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	IsInDiet    *bool  `json:"isInDiet" binding:"required"`
	UserID      string `json:"userId" binding:"required"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

type updateMealRequest struct {
	ID          string `json:"id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	IsInDiet    *bool  `json:"isInDiet" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
}

// ListMeals expects exactly one of ?id= (a meal) or ?userId= (all meals of a user).
func (h *MealController) ListMeals(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	id, userID := c.Query("id"), c.Query("userId")

	switch {
	case id != "" && userID != "":
		badRequest(c, "send either id or userId, not both")
	case id != "":
		row, err := h.Meals.GetWithOwner(c.Request.Context(), id)
		if err != nil {
			h.Errors.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, []models.MealWithOwner{*row})
	case userID != "":
		rows, err := h.Meals.ListByUser(c.Request.Context(), userID)
		if err != nil {
			h.Errors.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	default:
		badRequest(c, "id or userId is required")
	}
}

func (h *MealController) GetMealInfo(c *gin.Context) {
	userID := c.Query("id")
	if userID == "" {
		badRequest(c, "id is required")
		return
	}
	stats, err := h.Stats.ForUser(c.Request.Context(), userID)
	if err != nil {
		h.Errors.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *MealController) CreateMeal(c *gin.Context) {
	var body createMealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	if (body.Date == "") != (body.Time == "") {
		h.Errors.respondError(c, fmt.Errorf("%w: date and time go together", errBadRequest))
		return
	}
	meal, err := h.Meals.Create(c.Request.Context(), services.CreateMealInput{
		Name:        body.Name,
		Description: body.Description,
		IsInDiet:    *body.IsInDiet,
		UserID:      body.UserID,
		Date:        body.Date,
		Time:        body.Time,
	})
	if err != nil {
		h.Errors.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Meal created successfully!", "meal": meal})
}

func (h *MealController) UpdateMeal(c *gin.Context) {
	var body updateMealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	meal, err := h.Meals.Update(c.Request.Context(), services.UpdateMealInput{
		ID:          body.ID,
		Name:        body.Name,
		Description: body.Description,
		IsInDiet:    *body.IsInDiet,
		Date:        body.Date,
		Time:        body.Time,
	})
	if err != nil {
		h.Errors.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Data changed successfully!", "meal": meal})
}

func (h *MealController) DeleteMeal(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		badRequest(c, "id is required")
		return
	}
	if err := h.Meals.Delete(c.Request.Context(), id); err != nil {
		h.Errors.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted successfully!"})
}
