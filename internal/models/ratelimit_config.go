package models

// RatelimitConfig holds the rate limit setting stored in the database.
// Rate uses the ulule/limiter formatted syntax, e.g. "5-S" or "100-M".
type RatelimitConfig struct {
	Rate string `json:"rate"`
}
