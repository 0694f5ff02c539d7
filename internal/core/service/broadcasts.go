package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/infocast/infocast/internal/core/domain"
	"github.com/infocast/infocast/internal/core/ports"
)

// Broadcasts exposes the broadcast operations: validated mutations that
// notify once per outcome, and read paths that degrade to empty output
// instead of blocking a page.
type Broadcasts struct {
	gw     ports.Gateway
	notify ports.Notifier
	check  *checker
	log    zerolog.Logger
}

func NewBroadcasts(gw ports.Gateway, notify ports.Notifier, log zerolog.Logger) *Broadcasts {
	return &Broadcasts{gw: gw, notify: notify, check: newChecker(), log: log}
}

// Create validates the draft locally, then submits it. Local violations
// never reach the network.
func (b *Broadcasts) Create(ctx context.Context, draft ports.BroadcastDraft) (*domain.Broadcast, error) {
	if err := b.check.Check(draft); err != nil {
		b.notify.Error(err.Error())
		return nil, err
	}
	draft.Tags = domain.NormalizeTags(draft.Tags)

	created, err := b.gw.CreateBroadcast(ctx, draft)
	if err != nil {
		b.notify.Error(domain.MessageOf(err, "Failed to create broadcast"))
		return nil, err
	}

	b.notify.Success("Broadcast created successfully!")
	return created, nil
}

// Update edits an existing broadcast. The server may still reject the
// call with 403 even when CanMutate allowed it locally; that surfaces
// here as a failure notification like any other.
func (b *Broadcasts) Update(ctx context.Context, id string, draft ports.BroadcastDraft) (*domain.Broadcast, error) {
	if err := b.check.Check(draft); err != nil {
		b.notify.Error(err.Error())
		return nil, err
	}
	draft.Tags = domain.NormalizeTags(draft.Tags)

	updated, err := b.gw.UpdateBroadcast(ctx, id, draft)
	if err != nil {
		b.notify.Error(domain.MessageOf(err, "Failed to update broadcast"))
		return nil, err
	}

	b.notify.Success("Broadcast updated successfully!")
	return updated, nil
}

// Delete removes a broadcast, subject to the server's owner/admin check.
func (b *Broadcasts) Delete(ctx context.Context, id string) error {
	if err := b.gw.DeleteBroadcast(ctx, id); err != nil {
		b.notify.Error(domain.MessageOf(err, "Failed to delete broadcast"))
		return err
	}

	b.notify.Success("Broadcast deleted")
	return nil
}

// List fetches broadcasts matching opts. Fetch failures degrade to an
// empty list and are logged for diagnostics only — no notification.
func (b *Broadcasts) List(ctx context.Context, opts ports.ListOptions) []domain.Broadcast {
	items, err := b.gw.ListBroadcasts(ctx, opts)
	if err != nil {
		b.log.Error().Err(err).Msg("listing broadcasts failed")
		return nil
	}
	return items
}

// Get fetches a single broadcast. Errors (including not-found) are
// returned for the caller to present.
func (b *Broadcasts) Get(ctx context.Context, id string) (*domain.Broadcast, error) {
	return b.gw.GetBroadcast(ctx, id)
}

// Stats fetches the aggregate summary, shaping absent fields to zero. A
// failed fetch degrades to an all-zero summary.
func (b *Broadcasts) Stats(ctx context.Context) domain.Stats {
	stats, err := b.gw.Stats(ctx)
	if err != nil {
		b.log.Error().Err(err).Msg("fetching stats failed")
		return domain.Stats{ByUrgency: map[domain.Urgency]int{}}
	}
	return stats
}
