package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"daily-diet-api/internal/service"
)

type MealHandler struct {
	Meals *service.Meals
	Log   logrus.FieldLogger
}

func (h *MealHandler) List(c *gin.Context) {
	account, ok := accountOrAbort(c)
	if !ok {
		return
	}

	meals, err := h.Meals.List(c.Request.Context(), account)
	if err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (h *MealHandler) Get(c *gin.Context) {
	account, ok := accountOrAbort(c)
	if !ok {
		return
	}

	meal, err := h.Meals.Get(c.Request.Context(), account, c.Param("id"))
	if err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

func (h *MealHandler) Metrics(c *gin.Context) {
	account, ok := accountOrAbort(c)
	if !ok {
		return
	}

	metrics, err := h.Meals.Metrics(c.Request.Context(), account)
	if err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *MealHandler) Create(c *gin.Context) {
	account, ok := accountOrAbort(c)
	if !ok {
		return
	}

	var body service.CreateMealInput
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c)
		return
	}

	if _, err := h.Meals.Create(c.Request.Context(), account, body); err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *MealHandler) Update(c *gin.Context) {
	account, ok := accountOrAbort(c)
	if !ok {
		return
	}

	var body service.UpdateMealInput
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c)
		return
	}

	if _, err := h.Meals.Update(c.Request.Context(), account, c.Param("id"), body); err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MealHandler) Delete(c *gin.Context) {
	account, ok := accountOrAbort(c)
	if !ok {
		return
	}

	if err := h.Meals.Delete(c.Request.Context(), account, c.Param("id")); err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
