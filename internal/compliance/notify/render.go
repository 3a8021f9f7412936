// Package notify renders alert digests and delivers them through a sink.
package notify

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"staywatch/internal/compliance/models"
)

// AlertMessage is the human-readable usage summary stored on an alert.
func AlertMessage(daysUsed, limit int) string {
	return fmt.Sprintf("used %d of %d days in the last %d days (%d remaining)",
		daysUsed, limit, models.WindowDays, limit-daysUsed)
}

// Digest is one rendered dispatch message and the alert versions it covers.
type Digest struct {
	Subject string
	Body    string
	Refs    []models.AlertRef
}

// RenderDigest builds a single summary of pending alerts, most severe first.
// The input slice is not modified.
func RenderDigest(alerts []*models.Alert, now time.Time) Digest {
	sorted := slices.Clone(alerts)
	slices.SortFunc(sorted, func(a, b *models.Alert) int {
		if c := cmp.Compare(b.RiskLevel.Severity(), a.RiskLevel.Severity()); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.TravelerID.String(), b.TravelerID.String())
	})

	counts := map[models.RiskLevel]int{}
	refs := make([]models.AlertRef, 0, len(sorted))
	var body strings.Builder
	fmt.Fprintf(&body, "Stay compliance digest generated %s\n\n", now.UTC().Format(time.RFC3339))
	for _, a := range sorted {
		counts[a.RiskLevel]++
		refs = append(refs, a.Ref())
		fmt.Fprintf(&body, "- %-6s traveler %s: %s (since %s)\n",
			a.RiskLevel, a.TravelerID, a.Message, a.CreatedAt.UTC().Format(models.DateLayout))
	}

	var parts []string
	for _, level := range []models.RiskLevel{models.RiskRed, models.RiskOrange, models.RiskYellow} {
		if n := counts[level]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, level))
		}
	}
	noun := "alerts"
	if len(sorted) == 1 {
		noun = "alert"
	}
	subject := fmt.Sprintf("[staywatch] %d compliance %s (%s)", len(sorted), noun, strings.Join(parts, ", "))

	return Digest{Subject: subject, Body: body.String(), Refs: refs}
}

// Envelope is the wire form for queue-backed sinks.
type Envelope struct {
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sent_at"`
}

func encodeEnvelope(recipient, subject, body string, now time.Time) ([]byte, error) {
	b, err := json.Marshal(Envelope{Recipient: recipient, Subject: subject, Body: body, SentAt: now.UTC()})
	if err != nil {
		return nil, fmt.Errorf("marshal notification: %w", err)
	}
	return b, nil
}
