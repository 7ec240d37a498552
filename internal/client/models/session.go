package models

import "time"

// Session is the signed-in identity the CLI keeps between runs.
type Session struct {
	Email       string
	FirstName   string
	Surname     string
	UserID      string
	Levels      []string
	AccessToken string
	SavedAt     time.Time
}
