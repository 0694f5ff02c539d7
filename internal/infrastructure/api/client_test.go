package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/infocast/infocast/internal/core/domain"
	"github.com/infocast/infocast/internal/core/ports"
	"github.com/infocast/infocast/internal/stub"
	"github.com/infocast/infocast/internal/stub/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	e := stub.NewRouter(memory.NewStore(), stub.Options{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}, zerolog.Nop())
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL, 5*time.Second, zerolog.Nop())
}

func register(t *testing.T, c *Client, username, email string) (string, *domain.User) {
	t.Helper()
	token, user, err := c.Register(context.Background(), ports.Registration{
		Username: username,
		Email:    email,
		Password: "password1",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return token, user
}

// registerAdmin posts the stub's dev-only role field directly, which the
// client payload intentionally does not expose.
func registerAdmin(t *testing.T, srv *httptest.Server, username, email string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"email":    email,
		"password": "password1",
		"role":     domain.RoleAdmin,
	})
	resp, err := http.Post(srv.URL+"/api/auth/register", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register admin: status %d", resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode admin response: %v", err)
	}
	return out.Token
}

func TestClient_RegisterLoginMe(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(srv)
	ctx := context.Background()

	token, user, err := c.Register(ctx, ports.Registration{
		Username: "alice", Email: "alice@example.com", Password: "password1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %q", user.Role)
	}

	c.SetToken(token)
	me, err := c.Me(ctx)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.ID != user.ID || me.Username != "alice" {
		t.Fatalf("unexpected principal: %+v", me)
	}

	// Fresh login with the same credentials.
	token2, _, err := c.Login(ctx, ports.Credentials{Email: "alice@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token2 == "" {
		t.Fatalf("expected token from login")
	}
}

func TestClient_LoginBadPassword(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(srv)
	ctx := context.Background()
	register(t, c, "alice", "alice@example.com")

	_, _, err := c.Login(ctx, ports.Credentials{Email: "alice@example.com", Password: "wrong"})
	var re *domain.RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if re.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", re.Status)
	}
	if re.Message != "Invalid credentials" {
		t.Fatalf("expected server message, got %q", re.Message)
	}
}

func TestClient_MeWithoutToken(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(srv)

	_, err := c.Me(context.Background())
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated error, got %v", err)
	}
}

func TestClient_ClearTokenDetachesHeader(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(srv)
	ctx := context.Background()

	token, _ := register(t, c, "alice", "alice@example.com")
	c.SetToken(token)
	if _, err := c.Me(ctx); err != nil {
		t.Fatalf("me with token: %v", err)
	}

	c.ClearToken()
	if _, err := c.Me(ctx); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("cleared token must make the client anonymous, got %v", err)
	}
}

func TestClient_BroadcastLifecycle(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(srv)
	ctx := context.Background()

	token, user := register(t, c, "alice", "alice@example.com")
	c.SetToken(token)

	created, err := c.CreateBroadcast(ctx, ports.BroadcastDraft{
		Title:   "Planned maintenance",
		Message: "Scheduled downtime tonight at 22:00 UTC.",
		Urgency: "high",
		Type:    "maintenance",
		Tags:    []string{"ops", "downtime"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedBy.ID != user.ID {
		t.Fatalf("unexpected broadcast: %+v", created)
	}

	// Fetch increments the view counter.
	got, err := c.GetBroadcast(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Views != 1 {
		t.Fatalf("expected 1 view, got %d", got.Views)
	}
	if !domain.TagsEqual(got.Tags, []string{"downtime", "ops"}) {
		t.Fatalf("fetched tags must be set-equal to the created ones, got %v", got.Tags)
	}

	// Edit.
	updated, err := c.UpdateBroadcast(ctx, created.ID, ports.BroadcastDraft{
		Title:   "Planned maintenance (rescheduled)",
		Message: got.Message,
		Urgency: "medium",
		Type:    "maintenance",
		Tags:    got.Tags,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Urgency != domain.UrgencyMedium {
		t.Fatalf("update not applied: %+v", updated)
	}

	// Delete, then the broadcast is gone.
	if err := c.DeleteBroadcast(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.GetBroadcast(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found after delete, got %v", err)
	}
}

func TestClient_CreateRequiresAuth(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(srv)

	_, err := c.CreateBroadcast(context.Background(), ports.BroadcastDraft{
		Title: "t", Message: "m", Urgency: "low", Type: "news",
	})
	var re *domain.RemoteError
	if !errors.As(err, &re) || re.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 RemoteError, got %v", err)
	}
	if re.Message != "No token, authorization denied" {
		t.Fatalf("unexpected message %q", re.Message)
	}
}

func TestClient_MutationByNonOwnerForbidden(t *testing.T) {
	srv := newTestServer(t)
	owner := newTestClient(srv)
	other := newTestClient(srv)
	ctx := context.Background()

	ownerToken, _ := register(t, owner, "alice", "alice@example.com")
	owner.SetToken(ownerToken)
	otherToken, _ := register(t, other, "bob", "bob@example.com")
	other.SetToken(otherToken)

	created, err := owner.CreateBroadcast(ctx, ports.BroadcastDraft{
		Title: "Owned", Message: "mine", Urgency: "low", Type: "news",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = other.DeleteBroadcast(ctx, created.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if domain.MessageOf(err, "") != "Not authorized to delete this broadcast" {
		t.Fatalf("expected the server's message, got %q", domain.MessageOf(err, ""))
	}

	// An admin may delete someone else's broadcast.
	admin := newTestClient(srv)
	admin.SetToken(registerAdmin(t, srv, "root", "root@example.com"))
	if err := admin.DeleteBroadcast(ctx, created.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestClient_ListFilters(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(srv)
	ctx := context.Background()

	token, _ := register(t, c, "alice", "alice@example.com")
	c.SetToken(token)

	past := time.Now().Add(-time.Hour)
	for _, draft := range []ports.BroadcastDraft{
		{Title: "Active high", Message: "m", Urgency: "high", Type: "alert", Tags: []string{"ops"}},
		{Title: "Active low", Message: "m", Urgency: "low", Type: "news"},
		{Title: "Expired", Message: "m", Urgency: "high", Type: "alert", ExpiryDate: &past},
	} {
		if _, err := c.CreateBroadcast(ctx, draft); err != nil {
			t.Fatalf("create %q: %v", draft.Title, err)
		}
	}

	active, err := c.ListBroadcasts(ctx, ports.ListOptions{Status: "active"})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active broadcasts, got %d", len(active))
	}

	high, err := c.ListBroadcasts(ctx, ports.ListOptions{Status: "active", Urgency: "high"})
	if err != nil {
		t.Fatalf("list high: %v", err)
	}
	if len(high) != 1 || high[0].Title != "Active high" {
		t.Fatalf("unexpected high-urgency result: %+v", high)
	}

	tagged, err := c.ListBroadcasts(ctx, ports.ListOptions{Tag: "ops"})
	if err != nil {
		t.Fatalf("list tagged: %v", err)
	}
	if len(tagged) != 1 {
		t.Fatalf("expected 1 tagged broadcast, got %d", len(tagged))
	}

	limited, err := c.ListBroadcasts(ctx, ports.ListOptions{Limit: 1})
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected limit to cap results, got %d", len(limited))
	}
}

func TestClient_StatsShaping(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(srv)
	ctx := context.Background()

	// Empty store: every aggregate group is absent or empty.
	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 0 || stats.Active != 0 || stats.CountFor(domain.UrgencyHigh) != 0 {
		t.Fatalf("empty aggregate must shape to zeros, got %+v", stats)
	}

	token, _ := register(t, c, "alice", "alice@example.com")
	c.SetToken(token)
	past := time.Now().Add(-time.Minute)
	drafts := []ports.BroadcastDraft{
		{Title: "a", Message: "m", Urgency: "high", Type: "alert"},
		{Title: "b", Message: "m", Urgency: "high", Type: "alert"},
		{Title: "c", Message: "m", Urgency: "low", Type: "news", ExpiryDate: &past},
	}
	for _, d := range drafts {
		if _, err := c.CreateBroadcast(ctx, d); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	stats, err = c.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 3 || stats.Active != 2 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.CountFor(domain.UrgencyHigh) != 2 || stats.CountFor(domain.UrgencyLow) != 1 {
		t.Fatalf("unexpected urgency groups: %+v", stats.ByUrgency)
	}
	if stats.CountFor(domain.UrgencyMedium) != 0 {
		t.Fatalf("absent group must count as zero")
	}
}

func TestClient_ServerSideValidation(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(srv)
	ctx := context.Background()

	token, _ := register(t, c, "alice", "alice@example.com")
	c.SetToken(token)

	// The stub re-validates what the client normally rejects locally.
	_, err := c.CreateBroadcast(ctx, ports.BroadcastDraft{
		Title: "t", Message: "m", Urgency: "critical", Type: "news",
	})
	var re *domain.RemoteError
	if !errors.As(err, &re) || re.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 RemoteError, got %v", err)
	}
}
