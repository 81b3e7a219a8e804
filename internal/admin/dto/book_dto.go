package dto

import (
	"time"

	"libraryhub/internal/models"
)

// CreateBookRequest used for POST /admin/books
type CreateBookRequest struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	Category  string `json:"category"`
}

// BookResponse DTO for responses
type BookResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	Category  string `json:"category"`
}

// BorrowedBookResponse is one row of GET /admin/borrowed-books.
type BorrowedBookResponse struct {
	BookID     int64  `json:"book_id"`
	BookTitle  string `json:"book_title"`
	UserEmail  string `json:"user_email"`
	BorrowDate string `json:"borrow_date"`
	ReturnDate string `json:"return_date"`
}

// UnavailableBookResponse is one row of GET /admin/unavailable-books.
// BorrowedBy and AvailableDate are null when no borrow record exists.
type UnavailableBookResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	BorrowedBy    *string `json:"borrowed_by"`
	AvailableDate *string `json:"available_date"`
}

// Converters
func (d CreateBookRequest) ToModel() models.Book {
	return models.Book{
		Title:     d.Title,
		Author:    d.Author,
		Publisher: d.Publisher,
		Category:  d.Category,
		Available: true,
	}
}

func FromModelToResponse(b models.Book) BookResponse {
	return BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Publisher: b.Publisher,
		Category:  b.Category,
	}
}

func FromModelToBorrowedResponse(r models.BorrowedBook) BorrowedBookResponse {
	resp := BorrowedBookResponse{
		BookID:     r.BookID,
		UserEmail:  r.UserEmail,
		BorrowDate: r.BorrowDate.Format(time.RFC3339),
		ReturnDate: r.ReturnDate.Format(time.RFC3339),
	}
	if r.Book != nil {
		resp.BookTitle = r.Book.Title
	}
	return resp
}

func FromModelToUnavailableResponse(b models.Book) UnavailableBookResponse {
	resp := UnavailableBookResponse{
		ID:    b.ID,
		Title: b.Title,
	}
	// the most recent borrow record tells who holds the book and until when
	if n := len(b.BorrowedRecords); n > 0 {
		last := b.BorrowedRecords[n-1]
		email := last.UserEmail
		due := last.ReturnDate.Format(time.RFC3339)
		resp.BorrowedBy = &email
		resp.AvailableDate = &due
	}
	return resp
}
