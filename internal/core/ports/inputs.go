package ports

import "time"

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the sign-up payload.
type Registration struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ProfileUpdate carries partial profile changes; empty fields are left
// untouched server-side.
type ProfileUpdate struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
	Email    string `json:"email,omitempty"    validate:"omitempty,email"`
}

// BroadcastDraft is the create/edit payload. Constraints mirror the
// server contract and are enforced locally before submission.
type BroadcastDraft struct {
	Title      string     `json:"title"                validate:"required,max=200"`
	Message    string     `json:"message"              validate:"required,max=5000"`
	Urgency    string     `json:"urgency"              validate:"required,oneof=low medium high"`
	Type       string     `json:"type"                 validate:"required,oneof=announcement alert maintenance update news meeting"`
	Tags       []string   `json:"tags"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
}
