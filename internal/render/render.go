// Package render draws broadcasts, stats, and notifications for the
// terminal. All functions are pure over their inputs; severity colors and
// glyphs come from the domain display rules.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/infocast/infocast/internal/core/domain"
)

var severityColors = map[domain.Severity]lipgloss.Color{
	domain.SeverityError:   lipgloss.Color("#ef4444"),
	domain.SeverityWarning: lipgloss.Color("#f59e0b"),
	domain.SeveritySuccess: lipgloss.Color("#10b981"),
	domain.SeverityNeutral: lipgloss.Color("#9ca3af"),
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7c3aed"))
	statStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563eb"))
	okStyle     = lipgloss.NewStyle().Foreground(severityColors[domain.SeveritySuccess])
	failStyle   = lipgloss.NewStyle().Foreground(severityColors[domain.SeverityError])
	expireStyle = lipgloss.NewStyle().Foreground(severityColors[domain.SeverityWarning])
)

func badgeStyle(sev domain.Severity) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(severityColors[sev])
}

// Card renders one broadcast for a list view: truncated message, urgency
// badge, type glyph, tags, creator, views, and relative times. When
// mutable is true an edit/delete hint line is included — the affordance
// the authorization policy gates.
func Card(b *domain.Broadcast, now time.Time, mutable bool) string {
	var sb strings.Builder

	badge := badgeStyle(b.Urgency.Severity()).Render(strings.ToUpper(string(b.Urgency)))
	fmt.Fprintf(&sb, "%s %s  [%s] %s\n", b.Type.Glyph(), titleStyle.Render(b.Title), badge, faintStyle.Render(b.ID))

	fmt.Fprintln(&sb, domain.Excerpt(b.Message, domain.ExcerptLimit))

	if len(b.Tags) > 0 {
		rendered := make([]string, len(b.Tags))
		for i, t := range b.Tags {
			rendered[i] = tagStyle.Render("#" + t)
		}
		fmt.Fprintln(&sb, strings.Join(rendered, " "))
	}

	meta := fmt.Sprintf("by %s · %s · %d views",
		b.CreatedBy.Username,
		domain.RelativeTime(b.CreatedAt, now),
		b.Views,
	)
	if b.ExpiryDate != nil {
		if b.Active(now) {
			meta += " · " + expireStyle.Render("expires "+domain.RelativeTime(*b.ExpiryDate, now))
		} else {
			meta += " · " + faintStyle.Render("expired "+domain.RelativeTime(*b.ExpiryDate, now))
		}
	}
	fmt.Fprintln(&sb, faintStyle.Render(meta))

	if mutable {
		fmt.Fprintln(&sb, faintStyle.Render("(you can edit or delete this broadcast)"))
	}

	return sb.String()
}

// Detail renders a full broadcast, message untruncated.
func Detail(b *domain.Broadcast, now time.Time, mutable bool) string {
	card := Card(b, now, mutable)
	// Card truncates; splice the full message back in.
	return strings.Replace(card, domain.Excerpt(b.Message, domain.ExcerptLimit), b.Message, 1)
}

// Stats renders the aggregate summary. Missing urgency groups read as
// zero, so a partial aggregate still renders.
func Stats(s domain.Stats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total Broadcasts  %s\n", statStyle.Render(fmt.Sprintf("%d", s.Total)))
	fmt.Fprintf(&sb, "Active Now        %s\n", statStyle.Render(fmt.Sprintf("%d", s.Active)))
	fmt.Fprintf(&sb, "Urgent Alerts     %s\n", statStyle.Render(fmt.Sprintf("%d", s.CountFor(domain.UrgencyHigh))))
	return sb.String()
}

// User renders the current principal for whoami.
func User(u *domain.User) string {
	if u == nil {
		return "Not logged in\n"
	}
	role := u.Role
	if u.IsAdmin() {
		role = badgeStyle(domain.SeverityError).Render(role)
	}
	return fmt.Sprintf("%s <%s> (%s)\n", titleStyle.Render(u.Username), u.Email, role)
}

// Notifier writes the one-per-mutation notification lines. Implements
// ports.Notifier.
type Notifier struct {
	Out io.Writer
}

func (n Notifier) Success(msg string) {
	fmt.Fprintln(n.Out, okStyle.Render("✔ ")+msg)
}

func (n Notifier) Error(msg string) {
	fmt.Fprintln(n.Out, failStyle.Render("✘ ")+msg)
}
