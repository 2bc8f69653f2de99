package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

var ErrNotConfigured = errors.New("no webhook URL configured")

type Notifier struct {
	url    string
	client *http.Client
}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func New(url string) *Notifier {
	return &Notifier{
		url:    strings.TrimSpace(url),
		client: &http.Client{Timeout: constants.NotifyTimeout},
	}
}

// Enabled reports whether a webhook URL is set.
func (n *Notifier) Enabled() bool {
	return n != nil && n.url != ""
}

func (n *Notifier) Notify(ctx context.Context, text string) error {
	if !n.Enabled() {
		return ErrNotConfigured
	}

	payload := WebhookPayload{
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	}
	return n.send(ctx, payload)
}

func (n *Notifier) send(ctx context.Context, payload WebhookPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.NotifyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
}

// BadgeText is the message sent when a badge is unlocked.
func BadgeText(b models.Badge) string {
	return strings.TrimSpace(fmt.Sprintf("%s Badge unlocked: %s (%s)", b.Icon, b.Name, b.Rarity))
}

// ReminderText lists the habits still pending today. It returns an empty
// string when nothing is pending.
func ReminderText(habits []models.Habit, today string) string {
	var pending []string
	for _, h := range habits {
		if !h.CompletedOn(today) {
			pending = append(pending, h.Title)
		}
	}
	switch len(pending) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("1 habit left today: %s", pending[0])
	}
	return fmt.Sprintf("%d habits left today: %s", len(pending), strings.Join(pending, ", "))
}
