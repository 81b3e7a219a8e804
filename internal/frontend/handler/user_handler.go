package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"libraryhub/internal/frontend/dto"
	"libraryhub/internal/frontend/service"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/users", h.Enroll)
	r.GET("/users", h.List)
}

func (h *UserHandler) Enroll(c *gin.Context) {
	var req dto.EnrollUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.svc.Enroll(ctx, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User enrolled successfully",
		"user":    dto.FromModelToUserResponse(*user),
	})
}

func (h *UserHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.ListAll(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		resp = append(resp, dto.FromModelToUserResponse(u))
	}
	c.JSON(http.StatusOK, resp)
}
