package dto

import "libraryhub/internal/models"

// BookListItem is the shape returned by GET /books.
type BookListItem struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	Category  string `json:"category"`
}

// BookDetail is the shape returned by GET /books/:book_id.
type BookDetail struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	Category  string `json:"category"`
	Available bool   `json:"available"`
}

// Converters
func FromModelToListItem(b models.Book) BookListItem {
	return BookListItem{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Publisher: b.Publisher,
		Category:  b.Category,
	}
}

func FromModelToDetail(b models.Book) BookDetail {
	return BookDetail{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Publisher: b.Publisher,
		Category:  b.Category,
		Available: b.Available,
	}
}
