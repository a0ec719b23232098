package model

import (
	"strings"
	"time"
)

// Language is one skill entry on a user's profile. Entries compare by
// value; the same language may appear more than once per user.
type Language struct {
	Language string `json:"language"`
	Level    string `json:"level"`
}

// MatchesName reports whether the entry's language equals name,
// ignoring case.
func (l Language) MatchesName(name string) bool {
	return strings.EqualFold(l.Language, name)
}

type User struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Username     string       `gorm:"size:64;not null;uniqueIndex" json:"username"`
	Email        string       `gorm:"size:128" json:"email"`
	PasswordHash string       `gorm:"size:255;not null" json:"-"`
	Languages    LanguageList `gorm:"type:json;serializer:json" json:"languages"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// LanguageList keeps insertion order; stored as a JSON column.
type LanguageList []Language
