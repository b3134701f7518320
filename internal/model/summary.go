package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Defaults applied to text fields missing from a submission.
const (
	DefaultSpeaker = "Unknown Speaker"
	DefaultPortion = "Unknown Portion"
	DefaultTitle   = "Untitled"
	DefaultSummary = ""
	DefaultMembers = "N/A"
)

// SummaryEntry is one study summary as persisted in the collection file.
// Field order matches the on-disk object layout.
type SummaryEntry struct {
	Date        string `json:"date"`
	DateDisplay string `json:"date_display"`
	Speaker     string `json:"speaker"`
	Portion     string `json:"portion"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Members     string `json:"members"`
}

var ErrNotArray = errors.New("collection is not a JSON array")

// Collection is the decoded collection file. Elements are kept as raw JSON
// so entries written by other tools survive a rewrite unchanged.
type Collection []json.RawMessage

func DecodeCollection(data []byte) (Collection, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}
	items := make([]json.RawMessage, 0)
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotArray, err)
	}
	return Collection(items), nil
}

// Append returns a new collection with entry added at the end.
func (c Collection) Append(entry SummaryEntry) (Collection, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entry); err != nil {
		return nil, fmt.Errorf("marshal entry: %w", err)
	}
	out := make(Collection, 0, len(c)+1)
	out = append(out, c...)
	return append(out, bytes.TrimSpace(buf.Bytes())), nil
}

// Encode renders the collection with 4-space indentation.
func (c Collection) Encode() ([]byte, error) {
	if c == nil {
		c = Collection{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode([]json.RawMessage(c)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Entries decodes every element as a SummaryEntry.
func (c Collection) Entries() ([]SummaryEntry, error) {
	entries := make([]SummaryEntry, 0, len(c))
	for i, raw := range c {
		var entry SummaryEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
