package models

import "time"

// HistoryEntry is one persisted proofreading session.
type HistoryEntry struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Original     string    `json:"original"`
	Corrected    string    `json:"corrected"`
	Explanations []string  `json:"explanations"`
	Scenario     Scenario  `json:"scenario"`
	// DiffDelta is the compact delta encoding of the diff between Original and Corrected.
	DiffDelta string `json:"diff_delta,omitempty"`
}
