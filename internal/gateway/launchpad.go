package gateway

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/memearena/arena/internal/adapter"
	"github.com/memearena/arena/internal/domain"
)

type launchpadGateway struct {
	baseURL    string
	apiKey     string
	httpClient adapter.HTTPClient
	jsonUtil   adapter.JSON
}

// NewLaunchpadGateway creates a TokenGateway backed by the launchpad HTTP service
func NewLaunchpadGateway(baseURL, apiKey string, httpClient adapter.HTTPClient, jsonUtil adapter.JSON) TokenGateway {
	return &launchpadGateway{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		jsonUtil:   jsonUtil,
	}
}

type createRegistryRequest struct {
	SessionID     uint64               `json:"session_id"`
	MemeProgramID string               `json:"meme_program_id"`
	Metadata      domain.TokenMetadata `json:"metadata"`
	FundLimit     int64                `json:"fund_limit"`
	EndTime       time.Time            `json:"end_time"`
}

type createRegistryResponse struct {
	RegistryAddress    string    `json:"registry_address"`
	TxSignature        string    `json:"tx_signature"`
	ClaimAvailableTime time.Time `json:"claim_available_time"`
}

type startTokenRequest struct {
	SessionID     uint64               `json:"session_id"`
	MemeProgramID string               `json:"meme_program_id"`
	Metadata      domain.TokenMetadata `json:"metadata"`
}

type startTokenResponse struct {
	MintAddress string `json:"mint_address"`
	TxSignature string `json:"tx_signature"`
}

type vaultBalanceResponse struct {
	MintAddress string `json:"mint_address"`
	Balance     string `json:"balance"`
}

func (g *launchpadGateway) post(ctx context.Context, path string, reqBody, result interface{}) error {
	body, err := g.jsonUtil.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	respBody, err := g.httpClient.Post(ctx, g.baseURL+path, "application/json", bytes.NewReader(body), map[string]string{
		"Authorization": "Bearer " + g.apiKey,
	})
	if err != nil {
		return err
	}

	if err := g.jsonUtil.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// CreateFundingRegistry opens a funding registry for the winning meme
func (g *launchpadGateway) CreateFundingRegistry(ctx context.Context, input CreateRegistryInput) (*FundingRegistry, error) {
	var resp createRegistryResponse
	err := g.post(ctx, "/v1/registries", createRegistryRequest{
		SessionID:     input.SessionID,
		MemeProgramID: input.MemeProgramID,
		Metadata:      input.Metadata,
		FundLimit:     input.FundLimit,
		EndTime:       input.EndTime,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to create funding registry: %w", err)
	}

	return &FundingRegistry{
		RegistryAddress:    resp.RegistryAddress,
		TxSignature:        resp.TxSignature,
		ClaimAvailableTime: resp.ClaimAvailableTime,
	}, nil
}

// StartToken finalizes token creation once the contribution window closed
func (g *launchpadGateway) StartToken(ctx context.Context, input StartTokenInput) (*TokenCreation, error) {
	var resp startTokenResponse
	err := g.post(ctx, "/v1/tokens", startTokenRequest{
		SessionID:     input.SessionID,
		MemeProgramID: input.MemeProgramID,
		Metadata:      input.Metadata,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to start token creation: %w", err)
	}

	return &TokenCreation{
		MintAddress: resp.MintAddress,
		TxSignature: resp.TxSignature,
	}, nil
}

// GetVaultBalance reads the vault token balance for a mint, as a decimal string
func (g *launchpadGateway) GetVaultBalance(ctx context.Context, mintAddress string) (string, error) {
	var resp vaultBalanceResponse
	err := g.httpClient.Get(ctx, fmt.Sprintf("%s/v1/vaults/%s/balance", g.baseURL, url.PathEscape(mintAddress)), &resp)
	if err != nil {
		return "", fmt.Errorf("failed to get vault balance: %w", err)
	}
	return resp.Balance, nil
}
