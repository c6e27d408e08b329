package schema

import (
	"time"
)

// Meme represents the memes table - a candidate entry owned by exactly one session
type Meme struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// SessionID is the owning arena session
	SessionID uint64 `gorm:"column:session_id;not null;index"`
	// Name is the display name of the meme
	Name string `gorm:"column:name;not null;type:text"`
	// Ticker is the proposed token symbol
	Ticker string `gorm:"column:ticker;not null;type:text"`
	// Description is free-form text shown to voters
	Description string `gorm:"column:description;type:text"`
	// ImageURL points at the meme image
	ImageURL string `gorm:"column:image_url;type:text"`
	// TotalVotes is a monotonic vote counter, incremented in the same transaction
	// as the vote row insert
	TotalVotes int64 `gorm:"column:total_votes;not null;default:0"`
	// IsWinner is set exactly once, when last voting closes
	IsWinner bool `gorm:"column:is_winner;not null;default:false"`
	// MemeProgramID is the external funding-registry key, generated at creation
	MemeProgramID string `gorm:"column:meme_program_id;not null;unique;type:varchar(36)"`
	// IsFromNews marks memes backfilled from the news feed
	IsFromNews bool `gorm:"column:is_from_news;not null;default:false"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Meme model
func (Meme) TableName() string {
	return "memes"
}
