package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"libraryhub/internal/models"
)

type BorrowedBookRepo struct {
	db *gorm.DB
}

func NewBorrowedBookRepo(db *gorm.DB) *BorrowedBookRepo {
	return &BorrowedBookRepo{db: db}
}

// ListAll returns every borrow record with its book preloaded.
func (r *BorrowedBookRepo) ListAll(ctx context.Context) ([]models.BorrowedBook, error) {
	var list []models.BorrowedBook
	if err := r.db.WithContext(ctx).
		Preload("Book").
		Order("borrow_date").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list borrowed books: %w", err)
	}
	return list, nil
}

// CountByBook returns how many borrow records reference the given book.
func (r *BorrowedBookRepo) CountByBook(ctx context.Context, bookID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BorrowedBook{}).
		Where("book_id = ?", bookID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count borrow records: %w", err)
	}
	return count, nil
}
