package gateway

import (
	"context"
	"time"

	"github.com/memearena/arena/internal/domain"
)

// CreateRegistryInput holds the fields for opening an on-chain funding registry
// for the winning meme
type CreateRegistryInput struct {
	SessionID     uint64
	MemeProgramID string
	Metadata      domain.TokenMetadata
	// FundLimit is the registry capacity in lamports
	FundLimit int64
	// EndTime is when the registry stops accepting funds
	EndTime time.Time
}

// FundingRegistry describes a created funding registry
type FundingRegistry struct {
	// RegistryAddress is the on-chain address of the registry account
	RegistryAddress string
	// TxSignature is the registry creation transaction
	TxSignature string
	// ClaimAvailableTime is when contributors may start claiming tokens
	ClaimAvailableTime time.Time
}

// StartTokenInput holds the fields for finalizing token creation after the
// contribution window closes
type StartTokenInput struct {
	SessionID     uint64
	MemeProgramID string
	Metadata      domain.TokenMetadata
}

// TokenCreation describes the minted token
type TokenCreation struct {
	// MintAddress is the on-chain address of the token mint
	MintAddress string
	// TxSignature is the token creation transaction
	TxSignature string
}

// TokenGateway abstracts the external launchpad service that manages on-chain
// funding registries and token creation
//
//go:generate mockgen -source=gateway.go -destination=../mocks/gateway.go -package=mocks -mock_names=TokenGateway=MockTokenGateway
type TokenGateway interface {
	// CreateFundingRegistry opens a funding registry for the winning meme
	CreateFundingRegistry(ctx context.Context, input CreateRegistryInput) (*FundingRegistry, error)
	// StartToken finalizes token creation once the contribution window closed
	StartToken(ctx context.Context, input StartTokenInput) (*TokenCreation, error)
	// GetVaultBalance reads the vault token balance for a mint, as a decimal string
	GetVaultBalance(ctx context.Context, mintAddress string) (string, error)
}
