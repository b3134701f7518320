package service

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"studylog/backend/internal/model"
)

// BuildEntry maps a decoded submission onto a complete SummaryEntry.
// Missing or null fields take their defaults; it never fails.
func BuildEntry(payload map[string]any, now time.Time) model.SummaryEntry {
	date := NormalizeDate(textField(payload, "date", ""), now)
	return model.SummaryEntry{
		Date:        date.ISO(),
		DateDisplay: date.Display(),
		Speaker:     textField(payload, "speaker", model.DefaultSpeaker),
		Portion:     textField(payload, "portion", model.DefaultPortion),
		Title:       textField(payload, "title", model.DefaultTitle),
		Summary:     textField(payload, "summary", model.DefaultSummary),
		Members:     textField(payload, "members", model.DefaultMembers),
	}
}

func textField(payload map[string]any, key, fallback string) string {
	value, ok := payload[key]
	if !ok || value == nil {
		return fallback
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fallback
		}
		return string(raw)
	}
}
