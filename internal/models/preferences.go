package models

import "github.com/google/uuid"

// Preferences are the audio settings a client keeps between games. The game core never reads them.
type Preferences struct {
	UserID      uuid.UUID `json:"-"`
	Enabled     bool      `json:"enabled"`
	MusicVolume float64   `json:"musicVolume" validate:"gte=0,lte=1"`
	SfxVolume   float64   `json:"sfxVolume" validate:"gte=0,lte=1"`
	MusicTrack  int       `json:"musicTrack" validate:"gte=0,lt=3"`
}

// DefaultPreferences returns the settings used before a client saves any.
func DefaultPreferences(userID uuid.UUID) Preferences {
	return Preferences{
		UserID:      userID,
		Enabled:     true,
		MusicVolume: 0.6,
		SfxVolume:   0.6,
		MusicTrack:  0,
	}
}
