package db

import (
	"time"

	"gorm.io/datatypes"
)

// WordLibrary holds the curated secret-word pool, one row per word.
type WordLibrary struct {
	ID        uint      `gorm:"primaryKey"`
	Category  string    `gorm:"size:32;not null;default:'general';uniqueIndex:idx_word_library_category_text"`
	Text      string    `gorm:"size:64;not null;uniqueIndex:idx_word_library_category_text"`
	CreatedAt time.Time `gorm:"not null"`
}

func (WordLibrary) TableName() string {
	return "word_library"
}

// Match is the archived terminal result of one finished game.
type Match struct {
	ID         uint           `gorm:"primaryKey"`
	MatchKey   string         `gorm:"size:64;uniqueIndex;not null"`
	RoomCode   string         `gorm:"size:12;index;not null"`
	Winner     string         `gorm:"size:32;not null"`
	Reason     string         `gorm:"size:128;not null"`
	SecretWord string         `gorm:"size:64;not null"`
	Roles      datatypes.JSON `gorm:"type:jsonb;not null"`
	EndedAt    time.Time      `gorm:"not null"`
	CreatedAt  time.Time      `gorm:"not null"`
}
