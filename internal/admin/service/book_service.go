package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"libraryhub/internal/admin/dto"
	"libraryhub/internal/config"
	"libraryhub/internal/liberr"
	"libraryhub/internal/models"
	"libraryhub/internal/replication"
)

// BookRepository is the catalog storage the admin service depends on.
type BookRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Create(ctx context.Context, b *models.Book) error
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteCascade(ctx context.Context, id int64) (bool, error)
	ListUnavailable(ctx context.Context) ([]models.Book, error)
}

// BorrowedBookRepository reads the admin service's local borrow records.
type BorrowedBookRepository interface {
	ListAll(ctx context.Context) ([]models.BorrowedBook, error)
	CountByBook(ctx context.Context, bookID int64) (int64, error)
}

type BookService interface {
	Create(ctx context.Context, req dto.CreateBookRequest) (*models.Book, error)
	Delete(ctx context.Context, id int64) error
	ListBorrowed(ctx context.Context) ([]models.BorrowedBook, error)
	ListUnavailable(ctx context.Context) ([]models.Book, error)
}

type bookService struct {
	books        BookRepository
	borrows      BorrowedBookRepository
	notifier     replication.Notifier
	deletePolicy string
	logger       *slog.Logger
}

func NewBookService(
	books BookRepository,
	borrows BorrowedBookRepository,
	notifier replication.Notifier,
	deletePolicy string,
	logger *slog.Logger,
) BookService {
	return &bookService{
		books:        books,
		borrows:      borrows,
		notifier:     notifier,
		deletePolicy: deletePolicy,
		logger:       logger,
	}
}

// Create persists a new book and then best-effort replicates it to the
// frontend service. Replication failure is logged and swallowed: the book is
// committed locally and the caller still gets a success.
func (s *bookService) Create(ctx context.Context, req dto.CreateBookRequest) (*models.Book, error) {
	if strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Author) == "" ||
		strings.TrimSpace(req.Publisher) == "" ||
		strings.TrimSpace(req.Category) == "" {
		return nil, liberr.NewValidation("Missing required fields")
	}

	book := req.ToModel()
	if err := s.books.Create(ctx, &book); err != nil {
		return nil, liberr.Normalize(err)
	}

	s.replicate(ctx, replication.AddEvent(&book))
	return &book, nil
}

// Delete removes a book and replicates the removal. What happens to a book
// with outstanding borrow records depends on the configured policy: "block"
// rejects the delete with 409, "cascade" removes the records with the book.
func (s *bookService) Delete(ctx context.Context, id int64) error {
	if _, err := s.books.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return liberr.NewNotFound("Book", id)
		}
		return liberr.Normalize(err)
	}

	var err error
	switch s.deletePolicy {
	case config.DeletePolicyCascade:
		_, err = s.books.DeleteCascade(ctx, id)
	default:
		var count int64
		count, err = s.borrows.CountByBook(ctx, id)
		if err == nil && count > 0 {
			return liberr.New("Book has outstanding borrow records", http.StatusConflict)
		}
		if err == nil {
			_, err = s.books.Delete(ctx, id)
		}
	}
	if err != nil {
		return liberr.Normalize(err)
	}

	s.replicate(ctx, replication.DeleteEvent(id))
	return nil
}

func (s *bookService) ListBorrowed(ctx context.Context) ([]models.BorrowedBook, error) {
	return s.borrows.ListAll(ctx)
}

func (s *bookService) ListUnavailable(ctx context.Context) ([]models.Book, error) {
	return s.books.ListUnavailable(ctx)
}

// replicate pushes the event to the frontend service and swallows any
// failure. Catalog convergence is attempted, never guaranteed.
func (s *bookService) replicate(ctx context.Context, ev replication.Event) {
	if err := s.notifier.Notify(ctx, ev); err != nil {
		s.logger.Warn("sync with frontend failed",
			slog.String("action", ev.Action),
			slog.String("error", err.Error()))
	}
}
