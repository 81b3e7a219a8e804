package service_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"libraryhub/internal/frontend/dto"
	"libraryhub/internal/frontend/service"
	"libraryhub/internal/liberr"
	"libraryhub/internal/models"
	"libraryhub/internal/replication"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSyncApply_AddKeepsAssignedID(t *testing.T) {
	books := new(MockBookRepo)
	svc := service.NewSyncService(books, discardLogger())

	books.On("Upsert", mock.Anything, mock.MatchedBy(func(b *models.Book) bool {
		return b.ID == 12 && b.Title == "Dune" && b.Available
	})).Return(nil).Once()

	err := svc.Apply(context.Background(), dto.SyncRequest{
		Action: "add",
		Book: &replication.BookPayload{
			ID: 12, Title: "Dune", Author: "Herbert", Publisher: "Ace", Category: "SciFi",
		},
	})
	require.NoError(t, err)
	books.AssertExpectations(t)
}

func TestSyncApply_AddWithoutBookData(t *testing.T) {
	books := new(MockBookRepo)
	svc := service.NewSyncService(books, discardLogger())

	err := svc.Apply(context.Background(), dto.SyncRequest{Action: "add"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, liberr.HTTPStatus(err))
	books.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSyncApply_DeleteIsIdempotent(t *testing.T) {
	books := new(MockBookRepo)
	svc := service.NewSyncService(books, discardLogger())

	// first delivery removes the row, redelivery finds nothing; both succeed
	books.On("Delete", mock.Anything, int64(4)).Return(true, nil).Once()
	books.On("Delete", mock.Anything, int64(4)).Return(false, nil).Once()

	require.NoError(t, svc.Apply(context.Background(), dto.SyncRequest{Action: "delete", BookID: 4}))
	require.NoError(t, svc.Apply(context.Background(), dto.SyncRequest{Action: "delete", BookID: 4}))
	books.AssertExpectations(t)
}

func TestSyncApply_UnknownActionRejected(t *testing.T) {
	books := new(MockBookRepo)
	svc := service.NewSyncService(books, discardLogger())

	err := svc.Apply(context.Background(), dto.SyncRequest{Action: "rename", BookID: 1})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, liberr.HTTPStatus(err))
	assert.Contains(t, err.Error(), "Unknown sync action")
}
