package ports

import (
	"context"

	"github.com/infocast/infocast/internal/core/domain"
)

// Gateway is the remote broadcast service as seen by the client core. The
// credential methods are the explicit "apply credential to transport"
// step: only the session mutators and Restore call them, never rendering
// code.
type Gateway interface {
	// SetToken attaches the bearer token to every subsequent request.
	// Idempotent.
	SetToken(token string)
	// ClearToken removes the token entirely; no empty-token header is
	// ever sent.
	ClearToken()

	Me(ctx context.Context) (*domain.User, error)
	Login(ctx context.Context, creds Credentials) (string, *domain.User, error)
	Register(ctx context.Context, reg Registration) (string, *domain.User, error)
	UpdateProfile(ctx context.Context, updates ProfileUpdate) (*domain.User, error)

	ListBroadcasts(ctx context.Context, opts ListOptions) ([]domain.Broadcast, error)
	GetBroadcast(ctx context.Context, id string) (*domain.Broadcast, error)
	CreateBroadcast(ctx context.Context, draft BroadcastDraft) (*domain.Broadcast, error)
	UpdateBroadcast(ctx context.Context, id string, draft BroadcastDraft) (*domain.Broadcast, error)
	DeleteBroadcast(ctx context.Context, id string) error
	Stats(ctx context.Context) (domain.Stats, error)
}

// ListOptions are the supported broadcast list filters. Zero values are
// omitted from the query string.
type ListOptions struct {
	Status  string
	Urgency string
	Type    string
	Tag     string
	Search  string
	Limit   int
}

// CredentialStore persists the bearer token across client runs. Load
// returns an empty token, not an error, when none is stored.
type CredentialStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Notifier receives the single user-visible notification emitted per
// session or broadcast mutation.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}
