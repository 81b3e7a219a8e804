package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"libraryhub/internal/frontend/service"
	"libraryhub/internal/liberr"
	"libraryhub/internal/models"
)

// --- MOCK REPOSITORIES ---

type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepo) ListAvailable(ctx context.Context, publisher, category string) ([]models.Book, error) {
	args := m.Called(ctx, publisher, category)
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepo) Upsert(ctx context.Context, b *models.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookRepo) Borrow(ctx context.Context, record *models.BorrowedBook) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) ListAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

// --- HELPERS ---

func availableBook(id int64) *models.Book {
	return &models.Book{
		ID:        id,
		Title:     "Dune",
		Author:    "Herbert",
		Publisher: "Ace",
		Category:  "SciFi",
		Available: true,
	}
}

func existingUser(id int64) *models.User {
	return &models.User{ID: id, Email: "reader@example.com", Firstname: "Rita", Lastname: "Reader"}
}

// --- TESTS ---

func TestBorrow_Success(t *testing.T) {
	books := new(MockBookRepo)
	users := new(MockUserRepo)
	svc := service.NewBookService(books, users)

	books.On("GetByID", mock.Anything, int64(1)).Return(availableBook(1), nil).Once()
	users.On("GetByID", mock.Anything, int64(5)).Return(existingUser(5), nil).Once()
	books.On("Borrow", mock.Anything, mock.MatchedBy(func(r *models.BorrowedBook) bool {
		return r.BookID == 1 && r.UserID == 5 && r.UserEmail == "reader@example.com"
	})).Return(nil).Once()

	start := time.Now()
	returnDate, err := svc.Borrow(context.Background(), 1, map[string]any{"user_id": float64(5), "days": float64(7)})
	require.NoError(t, err)

	expected := start.AddDate(0, 0, 7)
	assert.WithinDuration(t, expected, returnDate, 2*time.Second)
	books.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestBorrow_DaysAsString(t *testing.T) {
	books := new(MockBookRepo)
	users := new(MockUserRepo)
	svc := service.NewBookService(books, users)

	books.On("GetByID", mock.Anything, int64(1)).Return(availableBook(1), nil).Once()
	users.On("GetByID", mock.Anything, int64(5)).Return(existingUser(5), nil).Once()
	books.On("Borrow", mock.Anything, mock.Anything).Return(nil).Once()

	returnDate, err := svc.Borrow(context.Background(), 1, map[string]any{"user_id": float64(5), "days": "14"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 14), returnDate, 2*time.Second)
}

func TestBorrow_NoPayload(t *testing.T) {
	books := new(MockBookRepo)
	users := new(MockUserRepo)
	svc := service.NewBookService(books, users)

	_, err := svc.Borrow(context.Background(), 1, nil)
	require.Error(t, err)
	assert.Equal(t, "No JSON data provided", err.Error())
	assert.Equal(t, http.StatusBadRequest, liberr.HTTPStatus(err))
	books.AssertNotCalled(t, "Borrow", mock.Anything, mock.Anything)
}

func TestBorrow_MissingFields(t *testing.T) {
	books := new(MockBookRepo)
	users := new(MockUserRepo)
	svc := service.NewBookService(books, users)

	for _, payload := range []map[string]any{
		{},
		{"user_id": float64(5)},
		{"days": float64(7)},
	} {
		_, err := svc.Borrow(context.Background(), 1, payload)
		require.Error(t, err)
		assert.Equal(t, "Missing required fields: user_id and days", err.Error())
		assert.Equal(t, http.StatusBadRequest, liberr.HTTPStatus(err))
	}
	books.AssertNotCalled(t, "Borrow", mock.Anything, mock.Anything)
}

func TestBorrow_BookNotFound(t *testing.T) {
	books := new(MockBookRepo)
	users := new(MockUserRepo)
	svc := service.NewBookService(books, users)

	books.On("GetByID", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.Borrow(context.Background(), 9, map[string]any{"user_id": float64(5), "days": float64(7)})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, liberr.HTTPStatus(err))
	assert.Equal(t, "Book 9 not found", err.Error())
	books.AssertNotCalled(t, "Borrow", mock.Anything, mock.Anything)
}

func TestBorrow_UserNotFound(t *testing.T) {
	books := new(MockBookRepo)
	users := new(MockUserRepo)
	svc := service.NewBookService(books, users)

	books.On("GetByID", mock.Anything, int64(1)).Return(availableBook(1), nil).Once()
	users.On("GetByID", mock.Anything, int64(77)).Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.Borrow(context.Background(), 1, map[string]any{"user_id": float64(77), "days": float64(7)})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, liberr.HTTPStatus(err))
	assert.Equal(t, "User 77 not found", err.Error())
	books.AssertNotCalled(t, "Borrow", mock.Anything, mock.Anything)
}

func TestBorrow_UnparseableUserID(t *testing.T) {
	books := new(MockBookRepo)
	users := new(MockUserRepo)
	svc := service.NewBookService(books, users)

	books.On("GetByID", mock.Anything, int64(1)).Return(availableBook(1), nil).Once()

	_, err := svc.Borrow(context.Background(), 1, map[string]any{"user_id": "nope", "days": float64(7)})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, liberr.HTTPStatus(err))
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestBorrow_BookNotAvailable(t *testing.T) {
	books := new(MockBookRepo)
	users := new(MockUserRepo)
	svc := service.NewBookService(books, users)

	book := availableBook(1)
	book.Available = false
	books.On("GetByID", mock.Anything, int64(1)).Return(book, nil).Once()
	users.On("GetByID", mock.Anything, int64(5)).Return(existingUser(5), nil).Once()

	_, err := svc.Borrow(context.Background(), 1, map[string]any{"user_id": float64(5), "days": float64(7)})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, liberr.HTTPStatus(err))
	assert.Equal(t, "Book 1 is not available", err.Error())
	books.AssertNotCalled(t, "Borrow", mock.Anything, mock.Anything)
}

func TestBorrow_InvalidDays(t *testing.T) {
	cases := []struct {
		name    string
		days    any
		message string
	}{
		{"NotANumber", "abc", "Days must be a valid number"},
		{"Boolean", true, "Days must be a valid number"},
		{"Zero", float64(0), "Borrow days must be positive"},
		{"Negative", float64(-3), "Borrow days must be positive"},
		{"NegativeString", "-3", "Borrow days must be positive"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			books := new(MockBookRepo)
			users := new(MockUserRepo)
			svc := service.NewBookService(books, users)

			books.On("GetByID", mock.Anything, int64(1)).Return(availableBook(1), nil).Once()
			users.On("GetByID", mock.Anything, int64(5)).Return(existingUser(5), nil).Once()

			_, err := svc.Borrow(context.Background(), 1, map[string]any{"user_id": float64(5), "days": tc.days})
			require.Error(t, err)
			assert.Equal(t, tc.message, err.Error())
			assert.Equal(t, http.StatusBadRequest, liberr.HTTPStatus(err))
			books.AssertNotCalled(t, "Borrow", mock.Anything, mock.Anything)
		})
	}
}

func TestBorrow_RaceLoserGetsNotAvailable(t *testing.T) {
	books := new(MockBookRepo)
	users := new(MockUserRepo)
	svc := service.NewBookService(books, users)

	// the availability read said yes but the conditional update lost the race
	books.On("GetByID", mock.Anything, int64(1)).Return(availableBook(1), nil).Once()
	users.On("GetByID", mock.Anything, int64(5)).Return(existingUser(5), nil).Once()
	books.On("Borrow", mock.Anything, mock.Anything).Return(liberr.NewBookNotAvailable(1)).Once()

	_, err := svc.Borrow(context.Background(), 1, map[string]any{"user_id": float64(5), "days": float64(7)})
	require.Error(t, err)
	assert.Equal(t, "Book 1 is not available", err.Error())
	assert.Equal(t, http.StatusBadRequest, liberr.HTTPStatus(err))
}

func TestBorrow_PersistenceErrorIsNormalized(t *testing.T) {
	books := new(MockBookRepo)
	users := new(MockUserRepo)
	svc := service.NewBookService(books, users)

	books.On("GetByID", mock.Anything, int64(1)).Return(availableBook(1), nil).Once()
	users.On("GetByID", mock.Anything, int64(5)).Return(existingUser(5), nil).Once()
	books.On("Borrow", mock.Anything, mock.Anything).Return(errors.New("pq: deadlock detected")).Once()

	_, err := svc.Borrow(context.Background(), 1, map[string]any{"user_id": float64(5), "days": float64(7)})
	require.Error(t, err)
	// internal detail must not leak to the caller
	assert.Equal(t, "An unexpected error occurred", err.Error())
	assert.Equal(t, http.StatusBadRequest, liberr.HTTPStatus(err))
}

func TestGetByID_NotFoundTranslated(t *testing.T) {
	books := new(MockBookRepo)
	users := new(MockUserRepo)
	svc := service.NewBookService(books, users)

	books.On("GetByID", mock.Anything, int64(3)).Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.GetByID(context.Background(), 3)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, liberr.HTTPStatus(err))
}
