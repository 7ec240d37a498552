package models

import "time"

type User struct {
	ID           string
	FirstName    string
	Surname      string
	Email        string
	PasswordHash []byte
	Cancelled    bool
	Level        Level
	CreatedAt    time.Time
}

// LevelNames lists the user's level names as carried in session tokens.
func (u *User) LevelNames() []string {
	return []string{string(u.Level.Name)}
}
