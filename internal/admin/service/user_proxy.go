package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"libraryhub/internal/liberr"
)

// UserDirectory lists registered users. The admin service stores no users of
// its own; the implementation proxies the frontend service.
type UserDirectory interface {
	ListUsers(ctx context.Context) (any, error)
}

// UserProxy fetches users from the frontend service's listing endpoint.
type UserProxy struct {
	baseURL string
	client  *http.Client
}

func NewUserProxy(baseURL string, client *http.Client) *UserProxy {
	if client == nil {
		client = http.DefaultClient
	}
	return &UserProxy{baseURL: baseURL, client: client}
}

func (p *UserProxy) ListUsers(ctx context.Context) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/users", nil)
	if err != nil {
		return nil, fmt.Errorf("build users request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, liberr.New("Unable to fetch users", http.StatusInternalServerError)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, liberr.New("Unable to fetch users", http.StatusInternalServerError)
	}

	// pass the partner's body through untouched
	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, liberr.New("Unable to fetch users", http.StatusInternalServerError)
	}
	return body, nil
}
