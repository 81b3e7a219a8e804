package dto

import "libraryhub/internal/replication"

// SyncRequest mirrors the replication event wire shape: the ingestion side of
// the contract the admin service's notifier speaks.
type SyncRequest struct {
	Action string                   `json:"action"`
	Book   *replication.BookPayload `json:"book,omitempty"`
	BookID int64                    `json:"book_id,omitempty"`
}
