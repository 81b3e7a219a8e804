package service

import (
	"context"
	"fmt"
	"log/slog"

	"libraryhub/internal/frontend/dto"
	"libraryhub/internal/liberr"
	"libraryhub/internal/models"
	"libraryhub/internal/replication"
)

type SyncService interface {
	Apply(ctx context.Context, req dto.SyncRequest) error
}

type syncService struct {
	books  BookRepository
	logger *slog.Logger
}

func NewSyncService(books BookRepository, logger *slog.Logger) SyncService {
	return &syncService{books: books, logger: logger}
}

// Apply executes a replication instruction against the local catalog copy.
// Adds keep the caller-assigned identifier so both copies stay aligned;
// deletes of an already-absent book are a no-op success so redelivery is
// harmless.
func (s *syncService) Apply(ctx context.Context, req dto.SyncRequest) error {
	switch req.Action {
	case replication.ActionAdd:
		if req.Book == nil {
			return liberr.NewValidation("Missing book data")
		}
		book := &models.Book{
			ID:        req.Book.ID,
			Title:     req.Book.Title,
			Author:    req.Book.Author,
			Publisher: req.Book.Publisher,
			Category:  req.Book.Category,
			Available: true,
		}
		if err := s.books.Upsert(ctx, book); err != nil {
			return liberr.Normalize(err)
		}
		s.logger.Info("sync applied", slog.String("action", "add"), slog.Int64("book_id", book.ID))
		return nil

	case replication.ActionDelete:
		deleted, err := s.books.Delete(ctx, req.BookID)
		if err != nil {
			return liberr.Normalize(err)
		}
		s.logger.Info("sync applied",
			slog.String("action", "delete"),
			slog.Int64("book_id", req.BookID),
			slog.Bool("existed", deleted))
		return nil

	default:
		return liberr.NewValidation(fmt.Sprintf("Unknown sync action: %q", req.Action))
	}
}
