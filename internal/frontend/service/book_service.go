package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"libraryhub/internal/liberr"
	"libraryhub/internal/models"
)

// BookRepository is the catalog storage the frontend service depends on.
type BookRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	ListAvailable(ctx context.Context, publisher, category string) ([]models.Book, error)
	Upsert(ctx context.Context, b *models.Book) error
	Delete(ctx context.Context, id int64) (bool, error)
	Borrow(ctx context.Context, record *models.BorrowedBook) error
}

// UserRepository is the user storage the frontend service depends on.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	ListAll(ctx context.Context) ([]models.User, error)
}

type BookService interface {
	ListAvailable(ctx context.Context, publisher, category string) ([]models.Book, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Borrow(ctx context.Context, bookID int64, payload map[string]any) (time.Time, error)
}

type bookService struct {
	books BookRepository
	users UserRepository
}

func NewBookService(books BookRepository, users UserRepository) BookService {
	return &bookService{books: books, users: users}
}

func (s *bookService) ListAvailable(ctx context.Context, publisher, category string) ([]models.Book, error) {
	return s.books.ListAvailable(ctx, publisher, category)
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	b, err := s.books.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, liberr.NewNotFound("Book", id)
	}
	if err != nil {
		return nil, liberr.Normalize(err)
	}
	return b, nil
}

// Borrow runs the borrowing workflow against the raw request payload.
// Validation happens in a fixed order, each step failing fast with its own
// error; on success the borrow record and the availability flip are persisted
// as one transaction and the computed return date is echoed back.
func (s *bookService) Borrow(ctx context.Context, bookID int64, payload map[string]any) (time.Time, error) {
	if payload == nil {
		return time.Time{}, liberr.NewValidation("No JSON data provided")
	}

	userRaw, hasUser := payload["user_id"]
	daysRaw, hasDays := payload["days"]
	if !hasUser || !hasDays {
		return time.Time{}, liberr.NewValidation("Missing required fields: user_id and days")
	}

	book, err := s.books.GetByID(ctx, bookID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, liberr.NewNotFound("Book", bookID)
	}
	if err != nil {
		return time.Time{}, liberr.Normalize(err)
	}

	userID, ok := toInt64(userRaw)
	if !ok {
		// an unparseable user_id can never reference an existing user
		return time.Time{}, liberr.NewNotFound("User", userRaw)
	}
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, liberr.NewNotFound("User", userID)
	}
	if err != nil {
		return time.Time{}, liberr.Normalize(err)
	}

	if !book.Available {
		return time.Time{}, liberr.NewBookNotAvailable(bookID)
	}

	days, ok := toInt(daysRaw)
	if !ok {
		return time.Time{}, liberr.NewValidation("Days must be a valid number")
	}
	if days <= 0 {
		return time.Time{}, liberr.NewValidation("Borrow days must be positive")
	}

	now := time.Now()
	returnDate := now.AddDate(0, 0, days)

	record := &models.BorrowedBook{
		BookID:     book.ID,
		UserID:     user.ID,
		UserEmail:  user.Email,
		BorrowDate: now,
		ReturnDate: returnDate,
	}
	if err := s.books.Borrow(ctx, record); err != nil {
		// the repository rolls back; unrecognized errors must not leak
		return time.Time{}, liberr.Normalize(err)
	}

	return returnDate, nil
}

// toInt64 coerces a decoded JSON value to an int64.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// toInt coerces a decoded JSON value to an int. JSON numbers truncate,
// strings must be whole integers.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
