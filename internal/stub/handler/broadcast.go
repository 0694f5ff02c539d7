package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/infocast/infocast/internal/core/domain"
	"github.com/infocast/infocast/internal/core/ports"
	"github.com/infocast/infocast/internal/stub/memory"
	"github.com/infocast/infocast/internal/stub/metrics"
)

// BroadcastHandler implements the broadcast endpoints of the contract.
type BroadcastHandler struct {
	store *memory.Store
}

func NewBroadcastHandler(store *memory.Store) *BroadcastHandler {
	return &BroadcastHandler{store: store}
}

// List handles GET /api/broadcasts.
func (h *BroadcastHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	items := h.store.ListBroadcasts(memory.Filter{
		Status:  c.QueryParam("status"),
		Urgency: c.QueryParam("urgency"),
		Type:    c.QueryParam("type"),
		Tag:     c.QueryParam("tag"),
		Search:  c.QueryParam("search"),
		Limit:   limit,
	}, time.Now())

	if items == nil {
		items = []domain.Broadcast{}
	}
	return c.JSON(http.StatusOK, dataResponse{Data: items})
}

// Get handles GET /api/broadcasts/:id and bumps the view counter.
func (h *BroadcastHandler) Get(c echo.Context) error {
	b, err := h.store.ViewBroadcast(c.Param("id"))
	if err != nil {
		return err
	}
	metrics.BroadcastViewsTotal.Inc()
	return c.JSON(http.StatusOK, dataResponse{Data: b})
}

// Create handles POST /api/broadcasts.
func (h *BroadcastHandler) Create(c echo.Context) error {
	var draft ports.BroadcastDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&draft); err != nil {
		return err
	}

	creator, err := h.caller(c)
	if err != nil {
		return err
	}

	b := h.store.SaveBroadcast(domain.Broadcast{
		Title:      draft.Title,
		Message:    draft.Message,
		Urgency:    domain.Urgency(draft.Urgency),
		Type:       domain.BroadcastType(draft.Type),
		Tags:       domain.NormalizeTags(draft.Tags),
		ExpiryDate: draft.ExpiryDate,
		CreatedBy:  domain.Creator{ID: creator.ID, Username: creator.Username},
		CreatedAt:  time.Now().UTC(),
	})

	metrics.BroadcastsCreatedTotal.WithLabelValues(draft.Type).Inc()
	return c.JSON(http.StatusCreated, dataResponse{Data: b})
}

// Update handles PUT /api/broadcasts/:id, restricted to the creator or an
// admin — the authoritative version of the client's advisory CanMutate.
func (h *BroadcastHandler) Update(c echo.Context) error {
	var draft ports.BroadcastDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&draft); err != nil {
		return err
	}

	existing, err := h.store.GetBroadcast(c.Param("id"))
	if err != nil {
		return err
	}

	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	if !domain.CanMutate(caller, existing) {
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized to update this broadcast")
	}

	existing.Title = draft.Title
	existing.Message = draft.Message
	existing.Urgency = domain.Urgency(draft.Urgency)
	existing.Type = domain.BroadcastType(draft.Type)
	existing.Tags = domain.NormalizeTags(draft.Tags)
	existing.ExpiryDate = draft.ExpiryDate

	updated, err := h.store.UpdateBroadcast(*existing)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: updated})
}

// Delete handles DELETE /api/broadcasts/:id with the same owner/admin gate.
func (h *BroadcastHandler) Delete(c echo.Context) error {
	existing, err := h.store.GetBroadcast(c.Param("id"))
	if err != nil {
		return err
	}

	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	if !domain.CanMutate(caller, existing) {
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized to delete this broadcast")
	}

	if err := h.store.DeleteBroadcast(existing.ID); err != nil {
		return err
	}
	metrics.BroadcastsDeletedTotal.Inc()
	return c.JSON(http.StatusOK, map[string]any{})
}

// Stats handles GET /api/broadcasts/stats/summary in the aggregate
// pipeline shape the client consumes.
func (h *BroadcastHandler) Stats(c echo.Context) error {
	total, active, byUrgency := h.store.Stats(time.Now())

	type countBucket struct {
		Count int `json:"count"`
	}
	type urgencyBucket struct {
		Urgency string `json:"_id"`
		Count   int    `json:"count"`
	}

	groups := make([]urgencyBucket, 0, len(byUrgency))
	for _, u := range []domain.Urgency{domain.UrgencyLow, domain.UrgencyMedium, domain.UrgencyHigh} {
		if n := byUrgency[u]; n > 0 {
			groups = append(groups, urgencyBucket{Urgency: string(u), Count: n})
		}
	}

	return c.JSON(http.StatusOK, dataResponse{Data: map[string]any{
		"totalBroadcasts":  []countBucket{{Count: total}},
		"activeBroadcasts": []countBucket{{Count: active}},
		"byUrgency":        groups,
	}})
}

// caller resolves the authenticated user injected by the auth middleware.
func (h *BroadcastHandler) caller(c echo.Context) (*domain.User, error) {
	userID, _ := c.Get("userID").(string)
	user, err := h.store.GetUser(userID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Token is not valid")
	}
	return user, nil
}
