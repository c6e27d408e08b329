package schema

import (
	"time"
)

// Contribution represents the contributions table. The compound unique indexes on
// (meme_id, contributor_address) and (meme_id, contributor_ip) are the
// authoritative duplicate defense.
type Contribution struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// SessionID is the owning arena session
	SessionID uint64 `gorm:"column:session_id;not null;index"`
	// MemeID is the winning meme being funded
	MemeID uint64 `gorm:"column:meme_id;not null;uniqueIndex:uniq_contrib_meme_contributor,priority:1;uniqueIndex:uniq_contrib_meme_ip,priority:1"`
	// ContributorAddress is the contributor's wallet address
	ContributorAddress string `gorm:"column:contributor_address;not null;type:text;uniqueIndex:uniq_contrib_meme_contributor,priority:2"`
	// ContributorIP is the contributor's IP address at contribution time
	ContributorIP string `gorm:"column:contributor_ip;not null;type:text;uniqueIndex:uniq_contrib_meme_ip,priority:2"`
	// Amount is the contribution amount in lamports
	Amount int64 `gorm:"column:amount;not null"`
	// IsTokensClaimed is set once the contributor has claimed tokens off-chain
	IsTokensClaimed bool `gorm:"column:is_tokens_claimed;not null;default:false"`
	// ClaimSignature is the transaction signature of the claim
	ClaimSignature *string `gorm:"column:claim_signature;type:text"`
	// ClaimedAt is when the claim was recorded
	ClaimedAt *time.Time `gorm:"column:claimed_at;type:timestamptz"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Contribution model
func (Contribution) TableName() string {
	return "contributions"
}
