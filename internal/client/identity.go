package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Identity is the collaborator's view of a user account.
type Identity struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
}

// RegisterIdentityRequest is the payload for creating a new account.
type RegisterIdentityRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// IdentityClient talks to the identity collaborator, which owns user
// accounts, authentication, and identity lookup.
type IdentityClient struct {
	baseURL string
	http    *http.Client
}

// NewIdentityClient creates a new IdentityClient.
func NewIdentityClient(baseURL string, timeout time.Duration) *IdentityClient {
	return &IdentityClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// SearchByEmail looks an account up by email. Returns ErrNotFound when no
// account exists, which roster import treats as "register a new one".
func (c *IdentityClient) SearchByEmail(ctx context.Context, email string) (*Identity, error) {
	var id Identity
	u := c.baseURL + "/api/users/search/email?email=" + url.QueryEscape(email)
	if err := doJSON(ctx, c.http, http.MethodGet, u, nil, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// Register creates a new account and returns the stored identity.
func (c *IdentityClient) Register(ctx context.Context, req RegisterIdentityRequest) (*Identity, error) {
	var id Identity
	u := c.baseURL + "/api/auth/register"
	if err := doJSON(ctx, c.http, http.MethodPost, u, req, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// BatchByIDs resolves many accounts at once for listing enrichment. Ids
// absent from the response are simply missing from the result slice.
func (c *IdentityClient) BatchByIDs(ctx context.Context, ids []int64) ([]Identity, error) {
	var identities []Identity
	u := c.baseURL + "/api/users/batch"
	if err := doJSON(ctx, c.http, http.MethodPost, u, ids, &identities); err != nil {
		return nil, err
	}
	return identities, nil
}
