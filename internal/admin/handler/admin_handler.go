package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"libraryhub/internal/admin/dto"
	"libraryhub/internal/admin/service"
	"libraryhub/internal/liberr"
)

type AdminHandler struct {
	books service.BookService
	users service.UserDirectory
}

func NewAdminHandler(books service.BookService, users service.UserDirectory) *AdminHandler {
	return &AdminHandler{books: books, users: users}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.Health)
	rg.POST("/books", h.CreateBook)
	rg.DELETE("/books/:book_id", h.DeleteBook)
	rg.GET("/users", h.ListUsers)
	rg.GET("/borrowed-books", h.ListBorrowedBooks)
	rg.GET("/unavailable-books", h.ListUnavailableBooks)
}

func (h *AdminHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"health": "healthy"})
}

func (h *AdminHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	book, err := h.books.Create(ctx, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Book added successfully",
		"book":    dto.FromModelToResponse(*book),
	})
}

func (h *AdminHandler) DeleteBook(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.books.Delete(ctx, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book removed successfully"})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	body, err := h.users.ListUsers(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

func (h *AdminHandler) ListBorrowedBooks(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	records, err := h.books.ListBorrowed(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]dto.BorrowedBookResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, dto.FromModelToBorrowedResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) ListUnavailableBooks(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	books, err := h.books.ListUnavailable(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]dto.UnavailableBookResponse, 0, len(books))
	for _, b := range books {
		resp = append(resp, dto.FromModelToUnavailableResponse(b))
	}
	c.JSON(http.StatusOK, resp)
}

// writeError maps a taxonomy error onto its status and a structured body.
func writeError(c *gin.Context, err error) {
	c.JSON(liberr.HTTPStatus(err), gin.H{"error": liberr.PublicMessage(err)})
}
