// Package memory is the stub server's in-memory store. It exists so the
// client can be exercised against a live contract without external
// dependencies; nothing survives a restart.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/infocast/infocast/internal/core/domain"
)

type userRecord struct {
	user         domain.User
	passwordHash string
}

// Store holds users and broadcasts behind a single mutex. All accessors
// copy records in and out, so callers never share memory with the store.
type Store struct {
	mu         sync.RWMutex
	users      map[string]*userRecord
	broadcasts map[string]*domain.Broadcast
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]*userRecord),
		broadcasts: make(map[string]*domain.Broadcast),
	}
}

// --- Users ---

// CreateUser registers a user; username and email must both be unused.
func (s *Store) CreateUser(username, email, passwordHash, role string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.users {
		if r.user.Email == email || r.user.Username == username {
			return nil, domain.ErrUserExists
		}
	}

	u := domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	s.users[u.ID] = &userRecord{user: u, passwordHash: passwordHash}
	out := u
	return &out, nil
}

// FindUserByEmail returns the user and its password hash.
func (s *Store) FindUserByEmail(email string) (*domain.User, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.users {
		if r.user.Email == email {
			u := r.user
			return &u, r.passwordHash, nil
		}
	}
	return nil, "", domain.ErrNotFound
}

func (s *Store) GetUser(id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u := r.user
	return &u, nil
}

// UpdateUser applies non-empty fields to the stored user.
func (s *Store) UpdateUser(id, username, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if username != "" {
		r.user.Username = username
	}
	if email != "" {
		r.user.Email = email
	}
	u := r.user
	return &u, nil
}

// --- Broadcasts ---

// SaveBroadcast inserts a broadcast, assigning an ID when absent.
func (s *Store) SaveBroadcast(b domain.Broadcast) *domain.Broadcast {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	stored := cloneBroadcast(&b)
	s.broadcasts[b.ID] = stored
	return cloneBroadcast(stored)
}

// ViewBroadcast returns a broadcast and bumps its view counter.
func (s *Store) ViewBroadcast(id string) (*domain.Broadcast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.broadcasts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	b.Views++
	return cloneBroadcast(b), nil
}

// GetBroadcast returns a broadcast without touching the view counter.
func (s *Store) GetBroadcast(id string) (*domain.Broadcast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.broadcasts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneBroadcast(b), nil
}

// UpdateBroadcast replaces the mutable fields of a stored broadcast.
func (s *Store) UpdateBroadcast(b domain.Broadcast) (*domain.Broadcast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.broadcasts[b.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	stored.Title = b.Title
	stored.Message = b.Message
	stored.Urgency = b.Urgency
	stored.Type = b.Type
	stored.Tags = append([]string(nil), b.Tags...)
	stored.ExpiryDate = b.ExpiryDate
	return cloneBroadcast(stored), nil
}

func (s *Store) DeleteBroadcast(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.broadcasts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.broadcasts, id)
	return nil
}

// Filter narrows a broadcast listing. Zero values match everything.
type Filter struct {
	Status  string // "active" or "expired"
	Urgency string
	Type    string
	Tag     string
	Search  string
	Limit   int
}

// ListBroadcasts returns matching broadcasts, newest first.
func (s *Store) ListBroadcasts(f Filter, now time.Time) []domain.Broadcast {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Broadcast
	for _, b := range s.broadcasts {
		if !matches(b, f, now) {
			continue
		}
		out = append(out, *cloneBroadcast(b))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

func matches(b *domain.Broadcast, f Filter, now time.Time) bool {
	switch f.Status {
	case "active":
		if !b.Active(now) {
			return false
		}
	case "expired":
		if b.Active(now) {
			return false
		}
	}
	if f.Urgency != "" && string(b.Urgency) != f.Urgency {
		return false
	}
	if f.Type != "" && string(b.Type) != f.Type {
		return false
	}
	if f.Tag != "" {
		found := false
		for _, t := range b.Tags {
			if t == f.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(b.Title), needle) &&
			!strings.Contains(strings.ToLower(b.Message), needle) {
			return false
		}
	}
	return true
}

// Stats aggregates the broadcast counts the summary endpoint serves.
func (s *Store) Stats(now time.Time) (total, active int, byUrgency map[domain.Urgency]int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byUrgency = make(map[domain.Urgency]int)
	for _, b := range s.broadcasts {
		total++
		if b.Active(now) {
			active++
		}
		byUrgency[b.Urgency]++
	}
	return total, active, byUrgency
}

func cloneBroadcast(b *domain.Broadcast) *domain.Broadcast {
	clone := *b
	clone.Tags = append([]string(nil), b.Tags...)
	if b.ExpiryDate != nil {
		t := *b.ExpiryDate
		clone.ExpiryDate = &t
	}
	return &clone
}
