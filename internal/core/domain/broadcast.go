package domain

import (
	"strings"
	"time"
)

// Urgency is the severity level of a broadcast.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Valid reports whether the urgency is one of the accepted levels.
// The server owns the valid set; unknown values are rejected at creation
// time but still rendered with a neutral fallback (see Severity).
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// BroadcastType categorises a broadcast.
type BroadcastType string

const (
	TypeAnnouncement BroadcastType = "announcement"
	TypeAlert        BroadcastType = "alert"
	TypeMaintenance  BroadcastType = "maintenance"
	TypeUpdate       BroadcastType = "update"
	TypeNews         BroadcastType = "news"
	TypeMeeting      BroadcastType = "meeting"
)

// Valid reports whether the type is one of the accepted categories.
func (t BroadcastType) Valid() bool {
	switch t {
	case TypeAnnouncement, TypeAlert, TypeMaintenance, TypeUpdate, TypeNews, TypeMeeting:
		return true
	}
	return false
}

// Creator is the reference to the user who created a broadcast.
type Creator struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Broadcast is an announcement held by the client as a transient view copy.
// The remote store owns the authoritative record.
type Broadcast struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Message    string        `json:"message"`
	Urgency    Urgency       `json:"urgency"`
	Type       BroadcastType `json:"type"`
	Tags       []string      `json:"tags"`
	ExpiryDate *time.Time    `json:"expiryDate,omitempty"`
	CreatedBy  Creator       `json:"createdBy"`
	Views      int           `json:"views"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Active reports whether the broadcast has not yet expired at the given
// instant. Expiry is display state only; an expired broadcast is never
// deleted by the client.
func (b *Broadcast) Active(now time.Time) bool {
	return b.ExpiryDate == nil || now.Before(*b.ExpiryDate)
}

// AddTag inserts a tag into the broadcast's tag set. The candidate is
// trimmed of surrounding whitespace; empty and duplicate (case-sensitive)
// candidates are silently ignored. Insertion order is preserved.
func (b *Broadcast) AddTag(tag string) {
	b.Tags = appendTag(b.Tags, tag)
}

// RemoveTag deletes a tag by exact value. Removing a non-member is a no-op.
func (b *Broadcast) RemoveTag(tag string) {
	for i, t := range b.Tags {
		if t == tag {
			b.Tags = append(b.Tags[:i], b.Tags[i+1:]...)
			return
		}
	}
}

// NormalizeTags applies the tag-set rules to a raw list: trim, drop
// empties, drop duplicates, keep first-seen order.
func NormalizeTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		out = appendTag(out, t)
	}
	return out
}

func appendTag(tags []string, candidate string) []string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return tags
	}
	for _, t := range tags {
		if t == candidate {
			return tags
		}
	}
	return append(tags, candidate)
}

// TagsEqual compares two tag lists as sets: order is irrelevant, so a
// broadcast fetched back with reordered tags is considered unchanged.
func TagsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	for _, t := range b {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}

// CanMutate reports whether the principal may edit or delete the given
// broadcast: the creator and admins only. This gates UI affordances; the
// server performs the authoritative check and may still reject the call
// (e.g. a role revoked since the last refresh).
func CanMutate(principal *User, b *Broadcast) bool {
	if principal == nil || b == nil {
		return false
	}
	return principal.ID == b.CreatedBy.ID || principal.Role == RoleAdmin
}

// Stats is the shaped, read-only aggregate summary. Absent server-side
// groups shape to zero.
type Stats struct {
	Total     int
	Active    int
	ByUrgency map[Urgency]int
}

// CountFor returns the number of broadcasts with the given urgency, zero
// when the group is missing from the aggregate.
func (s Stats) CountFor(u Urgency) int {
	return s.ByUrgency[u]
}
