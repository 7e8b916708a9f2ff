package models

// CorsConfig holds CORS settings stored in the database and hot-reloaded by
// the CORS middleware.
type CorsConfig struct {
	AllowedOrigins   string `json:"allowed_origins"` // comma-separated
	AllowCredentials bool   `json:"allow_credentials"`
	MaxAge           int    `json:"max_age"`
}
