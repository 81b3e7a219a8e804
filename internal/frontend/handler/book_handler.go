package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"libraryhub/internal/frontend/dto"
	"libraryhub/internal/frontend/service"
	"libraryhub/internal/liberr"
)

type BookHandler struct {
	svc service.BookService
}

func NewBookHandler(svc service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

func (h *BookHandler) RegisterRoutes(r *gin.Engine) {
	// health endpoints kept on the historical paths
	r.GET("/", h.Health)
	r.GET("/user", h.Health)
	r.GET("/book", h.Health)

	r.GET("/books", h.List)
	r.GET("/books/:book_id", h.Get)
	r.POST("/books/:book_id/borrow", h.Borrow)
}

func (h *BookHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"health": "healthy"})
}

func (h *BookHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	publisher := c.Query("publisher")
	category := c.Query("category")

	list, err := h.svc.ListAvailable(ctx, publisher, category)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]dto.BookListItem, 0, len(list))
	for _, b := range list {
		resp = append(resp, dto.FromModelToListItem(b))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	b, err := h.svc.GetByID(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToDetail(*b))
}

func (h *BookHandler) Borrow(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	// the workflow validates the payload itself, so a missing or malformed
	// body becomes a nil map rather than a bind error here
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		payload = nil
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	returnDate, err := h.svc.Borrow(ctx, id, payload)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Book borrowed successfully",
		"return_date": returnDate.Format(time.RFC3339),
	})
}

// writeError maps a taxonomy error onto its status and a structured body.
func writeError(c *gin.Context, err error) {
	c.JSON(liberr.HTTPStatus(err), gin.H{"error": liberr.PublicMessage(err)})
}
