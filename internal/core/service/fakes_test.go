package service

import (
	"context"
	"errors"

	"github.com/infocast/infocast/internal/core/domain"
	"github.com/infocast/infocast/internal/core/ports"
)

// fakeGateway records credential handling and serves scripted responses.
type fakeGateway struct {
	token        string
	setCalls     int
	clearCalls   int
	lastDraft    ports.BroadcastDraft
	createdCalls int

	meUser    *domain.User
	meErr     error
	authToken string
	authUser  *domain.User
	authErr   error
	updated   *domain.User
	updateErr error

	listItems []domain.Broadcast
	listErr   error
	getItem   *domain.Broadcast
	getErr    error
	created   *domain.Broadcast
	createErr error
	deleteErr error
	stats     domain.Stats
	statsErr  error
}

func (g *fakeGateway) SetToken(token string) {
	g.token = token
	g.setCalls++
}

func (g *fakeGateway) ClearToken() {
	g.token = ""
	g.clearCalls++
}

func (g *fakeGateway) Me(context.Context) (*domain.User, error) {
	return g.meUser, g.meErr
}

func (g *fakeGateway) Login(context.Context, ports.Credentials) (string, *domain.User, error) {
	return g.authToken, g.authUser, g.authErr
}

func (g *fakeGateway) Register(context.Context, ports.Registration) (string, *domain.User, error) {
	return g.authToken, g.authUser, g.authErr
}

func (g *fakeGateway) UpdateProfile(context.Context, ports.ProfileUpdate) (*domain.User, error) {
	return g.updated, g.updateErr
}

func (g *fakeGateway) ListBroadcasts(context.Context, ports.ListOptions) ([]domain.Broadcast, error) {
	return g.listItems, g.listErr
}

func (g *fakeGateway) GetBroadcast(context.Context, string) (*domain.Broadcast, error) {
	return g.getItem, g.getErr
}

func (g *fakeGateway) CreateBroadcast(_ context.Context, draft ports.BroadcastDraft) (*domain.Broadcast, error) {
	g.createdCalls++
	g.lastDraft = draft
	return g.created, g.createErr
}

func (g *fakeGateway) UpdateBroadcast(_ context.Context, _ string, draft ports.BroadcastDraft) (*domain.Broadcast, error) {
	g.lastDraft = draft
	return g.created, g.createErr
}

func (g *fakeGateway) DeleteBroadcast(context.Context, string) error {
	return g.deleteErr
}

func (g *fakeGateway) Stats(context.Context) (domain.Stats, error) {
	return g.stats, g.statsErr
}

// fakeStore is an in-memory credential store with injectable failures.
type fakeStore struct {
	token      string
	saveCalls  int
	clearCalls int
	loadErr    error
	saveErr    error
}

func (s *fakeStore) Load() (string, error) {
	return s.token, s.loadErr
}

func (s *fakeStore) Save(token string) error {
	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.token = token
	return nil
}

func (s *fakeStore) Clear() error {
	s.clearCalls++
	s.token = ""
	return nil
}

// recordingNotifier captures every emission for exactly-once assertions.
type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func (n *recordingNotifier) total() int { return len(n.successes) + len(n.errors) }

var errNetwork = errors.New("connection refused")
