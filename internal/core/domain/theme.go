package domain

import "time"

// ThemeEntry is a single globally shared theme setting. Values are free-form
// text (HSL triples in practice); the server does not validate the format.
type ThemeEntry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
