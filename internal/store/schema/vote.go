package schema

import (
	"time"
)

// Vote represents the votes table. The compound unique indexes on
// (session_id, voter_address) and (session_id, voter_ip) are the authoritative
// duplicate defense; application-level checks are a fast path only.
type Vote struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// SessionID is the owning arena session
	SessionID uint64 `gorm:"column:session_id;not null;uniqueIndex:uniq_votes_session_voter,priority:1;uniqueIndex:uniq_votes_session_ip,priority:1"`
	// MemeID is the meme the vote was cast for
	MemeID uint64 `gorm:"column:meme_id;not null;index"`
	// VoterAddress is the voter's wallet address
	VoterAddress string `gorm:"column:voter_address;not null;type:text;uniqueIndex:uniq_votes_session_voter,priority:2"`
	// VoterIP is the voter's IP address at vote time
	VoterIP string `gorm:"column:voter_ip;not null;type:text;uniqueIndex:uniq_votes_session_ip,priority:2"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Vote model
func (Vote) TableName() string {
	return "votes"
}
