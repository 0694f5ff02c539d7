package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/infocast/infocast/internal/core/domain"
	"github.com/infocast/infocast/internal/core/ports"
	"github.com/infocast/infocast/internal/render"
)

func (a *app) listCmd() *cobra.Command {
	var opts ports.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List broadcasts",
		Run: func(cmd *cobra.Command, _ []string) {
			now := time.Now()
			items := a.broadcasts.List(cmd.Context(), opts)
			if len(items) == 0 {
				cmd.Println("No broadcasts found")
				return
			}
			for i := range items {
				b := &items[i]
				cmd.Print(render.Card(b, now, domain.CanMutate(a.session.Principal(), b)))
				cmd.Println()
			}
		},
	}
	cmd.Flags().StringVar(&opts.Status, "status", "", "filter by status (active, expired)")
	cmd.Flags().StringVar(&opts.Urgency, "urgency", "", "filter by urgency (low, medium, high)")
	cmd.Flags().StringVar(&opts.Type, "type", "", "filter by type")
	cmd.Flags().StringVar(&opts.Tag, "tag", "", "filter by tag")
	cmd.Flags().StringVar(&opts.Search, "search", "", "search in title and message")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of results")
	return cmd
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one broadcast",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.broadcasts.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s", domain.MessageOf(err, "Broadcast not found"))
			}
			cmd.Print(render.Detail(b, time.Now(), domain.CanMutate(a.session.Principal(), b)))
			return nil
		},
	}
}

// draftFlags binds the shared create/edit flag set onto a draft.
func draftFlags(cmd *cobra.Command, draft *ports.BroadcastDraft, tags *[]string, expires *string) {
	cmd.Flags().StringVarP(&draft.Title, "title", "t", draft.Title, "broadcast title")
	cmd.Flags().StringVarP(&draft.Message, "message", "m", draft.Message, "broadcast message")
	cmd.Flags().StringVar(&draft.Urgency, "urgency", draft.Urgency, "urgency (low, medium, high)")
	cmd.Flags().StringVar(&draft.Type, "type", draft.Type, "type (announcement, alert, maintenance, update, news, meeting)")
	cmd.Flags().StringArrayVar(tags, "tag", nil, "tag (repeatable)")
	cmd.Flags().StringVar(expires, "expires", "", "expiry: duration from now (e.g. 48h) or RFC3339 timestamp")
}

// parseExpiry accepts either a duration from now or an absolute RFC3339
// timestamp.
func parseExpiry(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		t := time.Now().Add(d)
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid expiry %q: use a duration or RFC3339 timestamp", s)
	}
	return &t, nil
}

func (a *app) createCmd() *cobra.Command {
	draft := ports.BroadcastDraft{Urgency: "medium", Type: "announcement"}
	var tags []string
	var expires string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a broadcast",
		RunE: func(cmd *cobra.Command, _ []string) error {
			expiry, err := parseExpiry(expires)
			if err != nil {
				return err
			}
			draft.Tags = tags
			draft.ExpiryDate = expiry

			b, err := a.broadcasts.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			cmd.Print(render.Card(b, time.Now(), true))
			return nil
		},
	}
	draftFlags(cmd, &draft, &tags, &expires)
	return cmd
}

func (a *app) editCmd() *cobra.Command {
	var draft ports.BroadcastDraft
	var tags []string
	var expires string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a broadcast you created (or any, as admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			existing, err := a.broadcasts.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s", domain.MessageOf(err, "Broadcast not found"))
			}

			// Advisory only: the server re-checks and may still refuse.
			if !domain.CanMutate(a.session.Principal(), existing) {
				cmd.Println("Note: you do not appear to own this broadcast; the server may refuse the edit.")
			}

			// Start from the current state, overlay changed flags.
			merged := ports.BroadcastDraft{
				Title:      existing.Title,
				Message:    existing.Message,
				Urgency:    string(existing.Urgency),
				Type:       string(existing.Type),
				Tags:       existing.Tags,
				ExpiryDate: existing.ExpiryDate,
			}
			if cmd.Flags().Changed("title") {
				merged.Title = draft.Title
			}
			if cmd.Flags().Changed("message") {
				merged.Message = draft.Message
			}
			if cmd.Flags().Changed("urgency") {
				merged.Urgency = draft.Urgency
			}
			if cmd.Flags().Changed("type") {
				merged.Type = draft.Type
			}
			if cmd.Flags().Changed("tag") {
				merged.Tags = tags
			}
			if cmd.Flags().Changed("expires") {
				expiry, err := parseExpiry(expires)
				if err != nil {
					return err
				}
				merged.ExpiryDate = expiry
			}

			b, err := a.broadcasts.Update(cmd.Context(), args[0], merged)
			if err != nil {
				return err
			}
			cmd.Print(render.Card(b, time.Now(), true))
			return nil
		},
	}
	draftFlags(cmd, &draft, &tags, &expires)
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a broadcast you created (or any, as admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.broadcasts.Delete(cmd.Context(), args[0])
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the broadcast summary",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Print(render.Stats(a.broadcasts.Stats(cmd.Context())))
		},
	}
}
