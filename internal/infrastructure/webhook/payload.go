package webhook

import (
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/catsync/backend/internal/domain/webhook"
)

// Discord embed colors per outcome
const (
	discordColorGreen  = 3066993
	discordColorYellow = 16776960
	discordColorRed    = 15158332
)

// Notification aliases the domain delivery input for local brevity
type Notification = domain.Notification

func title(n Notification) string {
	switch n.Status {
	case "SUCCESS":
		return fmt.Sprintf("Sync completed: %s", n.StoreName)
	case "PARTIAL":
		return fmt.Sprintf("Sync partially completed: %s", n.StoreName)
	default:
		return fmt.Sprintf("Sync failed: %s", n.StoreName)
	}
}

// RenderPayload builds the JSON request body for the webhook's provider
func RenderPayload(provider domain.Provider, n Notification) ([]byte, error) {
	switch provider {
	case domain.ProviderSlack:
		return json.Marshal(slackPayload(n))
	case domain.ProviderDiscord:
		return json.Marshal(discordPayload(n))
	default:
		return json.Marshal(genericPayload(n))
	}
}

// genericPayload sends the raw event
func genericPayload(n Notification) map[string]any {
	return map[string]any{
		"event":        "sync.completed",
		"store_name":   n.StoreName,
		"sync_type":    n.SyncType,
		"status":       n.Status,
		"items_total":  n.ItemsTotal,
		"items_synced": n.ItemsSynced,
		"items_failed": n.ItemsFailed,
		"error_log":    n.ErrorLog,
		"duration_ms":  n.Duration.Milliseconds(),
		"timestamp":    n.OccurredAt.Format(time.RFC3339),
	}
}

// slackPayload uses the attachments schema
func slackPayload(n Notification) map[string]any {
	color := "good"
	switch n.Status {
	case "PARTIAL":
		color = "warning"
	case "FAILED":
		color = "danger"
	}

	fields := []map[string]any{
		{"title": "Status", "value": n.Status, "short": true},
		{"title": "Type", "value": n.SyncType, "short": true},
		{"title": "Total", "value": fmt.Sprintf("%d", n.ItemsTotal), "short": true},
		{"title": "Synced", "value": fmt.Sprintf("%d", n.ItemsSynced), "short": true},
		{"title": "Failed", "value": fmt.Sprintf("%d", n.ItemsFailed), "short": true},
		{"title": "Duration", "value": n.Duration.Round(time.Millisecond).String(), "short": true},
	}
	if n.ErrorLog != "" {
		fields = append(fields, map[string]any{
			"title": "Errors", "value": n.ErrorLog, "short": false,
		})
	}

	return map[string]any{
		"attachments": []map[string]any{
			{
				"color":  color,
				"title":  title(n),
				"fields": fields,
				"footer": "catsync",
				"ts":     n.OccurredAt.Unix(),
			},
		},
	}
}

// discordPayload uses the embeds schema with integer colors
func discordPayload(n Notification) map[string]any {
	color := discordColorGreen
	switch n.Status {
	case "PARTIAL":
		color = discordColorYellow
	case "FAILED":
		color = discordColorRed
	}

	fields := []map[string]any{
		{"name": "Status", "value": n.Status, "inline": true},
		{"name": "Type", "value": n.SyncType, "inline": true},
		{"name": "Total", "value": fmt.Sprintf("%d", n.ItemsTotal), "inline": true},
		{"name": "Synced", "value": fmt.Sprintf("%d", n.ItemsSynced), "inline": true},
		{"name": "Failed", "value": fmt.Sprintf("%d", n.ItemsFailed), "inline": true},
		{"name": "Duration", "value": n.Duration.Round(time.Millisecond).String(), "inline": true},
	}
	if n.ErrorLog != "" {
		fields = append(fields, map[string]any{
			"name": "Errors", "value": n.ErrorLog, "inline": false,
		})
	}

	return map[string]any{
		"embeds": []map[string]any{
			{
				"title":     title(n),
				"color":     color,
				"fields":    fields,
				"footer":    map[string]any{"text": "catsync"},
				"timestamp": n.OccurredAt.Format(time.RFC3339),
			},
		},
	}
}
