package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"libraryhub/internal/liberr"
	"libraryhub/internal/models"
)

type BookRepo struct {
	db *gorm.DB
}

func NewBookRepo(db *gorm.DB) *BookRepo {
	return &BookRepo{db: db}
}

func (r *BookRepo) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// ListAvailable returns available books, optionally filtered by publisher
// and category.
func (r *BookRepo) ListAvailable(ctx context.Context, publisher, category string) ([]models.Book, error) {
	var list []models.Book
	q := r.db.WithContext(ctx).Where("available = ?", true)
	if publisher != "" {
		q = q.Where("publisher = ?", publisher)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list available books: %w", err)
	}
	return list, nil
}

// ListUnavailable returns borrowed books with their borrow records preloaded,
// oldest record first.
func (r *BookRepo) ListUnavailable(ctx context.Context) ([]models.Book, error) {
	var list []models.Book
	if err := r.db.WithContext(ctx).
		Where("available = ?", false).
		Preload("BorrowedRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("borrow_date")
		}).
		Order("id").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list unavailable books: %w", err)
	}
	return list, nil
}

func (r *BookRepo) Create(ctx context.Context, b *models.Book) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	// GORM populates b.ID and b.CreatedAt
	return nil
}

// Upsert writes a book under its caller-assigned ID, overwriting any existing
// row. Replicated copies converge last-writer-wins, so a conflicting row is
// simply replaced.
func (r *BookRepo) Upsert(ctx context.Context, b *models.Book) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(b).Error; err != nil {
		return fmt.Errorf("upsert book: %w", err)
	}
	return nil
}

// Delete removes a book by ID and reports whether a row was actually deleted.
func (r *BookRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Book{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete book: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteCascade removes a book together with its borrow records in one
// transaction.
func (r *BookRepo) DeleteCascade(ctx context.Context, id int64) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&models.BorrowedBook{}).Error; err != nil {
			return fmt.Errorf("delete borrow records: %w", err)
		}
		res := tx.Delete(&models.Book{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete book: %w", res.Error)
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// Borrow atomically flips the book's availability and records the borrow.
// The flip is a conditional update guarded on available = true, so under
// concurrent borrow attempts only one transaction can win; the loser gets
// BookNotAvailableError and nothing is persisted.
func (r *BookRepo) Borrow(ctx context.Context, record *models.BorrowedBook) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Book{}).
			Where("id = ? AND available = ?", record.BookID, true).
			Update("available", false)
		if res.Error != nil {
			return fmt.Errorf("flip availability: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return liberr.NewBookNotAvailable(record.BookID)
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("create borrow record: %w", err)
		}
		return nil
	})
}
