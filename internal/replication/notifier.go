// Package replication pushes catalog mutations from the admin service to the
// frontend service's sync ingestion endpoint. Delivery is best-effort: the
// admin API never fails its own request because the partner was unreachable.
package replication

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"libraryhub/internal/liberr"
	"libraryhub/internal/models"
)

const (
	ActionAdd    = "add"
	ActionDelete = "delete"
)

// BookPayload carries the book attributes replicated on an add. The ID is
// included so the receiving side can keep both copies aligned under the same
// identifier.
type BookPayload struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	Category  string `json:"category"`
}

// Event is the wire message posted to the ingestion endpoint.
type Event struct {
	Action string       `json:"action"`
	Book   *BookPayload `json:"book,omitempty"`
	BookID int64        `json:"book_id,omitempty"`
}

// AddEvent builds the replication event for a newly created book.
func AddEvent(b *models.Book) Event {
	return Event{
		Action: ActionAdd,
		Book: &BookPayload{
			ID:        b.ID,
			Title:     b.Title,
			Author:    b.Author,
			Publisher: b.Publisher,
			Category:  b.Category,
		},
	}
}

// DeleteEvent builds the replication event for a removed book.
func DeleteEvent(bookID int64) Event {
	return Event{Action: ActionDelete, BookID: bookID}
}

// Notifier propagates a catalog mutation to the partner service.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// HTTPNotifier posts events to <baseURL>/sync/books.
type HTTPNotifier struct {
	baseURL string
	client  *http.Client
}

func NewHTTPNotifier(baseURL string, client *http.Client) *HTTPNotifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPNotifier{baseURL: baseURL, client: client}
}

func (n *HTTPNotifier) Notify(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal sync event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/sync/books", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return liberr.New(fmt.Sprintf("Failed to sync with frontend service: %v", err), http.StatusServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return liberr.New(fmt.Sprintf("Failed to sync with frontend service: status %d", resp.StatusCode), http.StatusServiceUnavailable)
	}
	return nil
}
