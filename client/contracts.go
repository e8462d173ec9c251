package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Contract statuses used by the management service.
const (
	ContractActive     = "active"
	ContractExpired    = "expired"
	ContractTerminated = "terminated"
)

// Contract is a rental agreement binding a room to an occupant.
type Contract struct {
	ID        string `json:"_id"`
	RoomID    string `json:"room"`
	TenantID  string `json:"tenant"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Deposit   int64  `json:"deposit"`
	RentPrice int64  `json:"rentPrice"`
	Status    string `json:"status"`
}

// ContractInput is the mutable subset of Contract accepted by create and update.
type ContractInput struct {
	RoomID    string `json:"room,omitempty"`
	TenantID  string `json:"tenant,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Deposit   int64  `json:"deposit,omitempty"`
	RentPrice int64  `json:"rentPrice,omitempty"`
	Status    string `json:"status,omitempty"`
}

// FetchContracts retrieves all contracts, optionally filtered by status.
func (c *Client) FetchContracts(ctx context.Context, status string) ([]Contract, error) {
	opts := RequestOptions{}
	if status != "" {
		opts.Query = url.Values{"status": {status}}
	}
	body, err := c.Get(ctx, "/contracts", opts)
	if err != nil {
		return nil, err
	}

	var contracts []Contract
	if err := json.Unmarshal(body, &contracts); err != nil {
		return nil, fmt.Errorf("failed to parse contracts response: %w", err)
	}
	return contracts, nil
}

// FetchContract retrieves a single contract by ID.
func (c *Client) FetchContract(ctx context.Context, id string) (Contract, error) {
	body, err := c.Get(ctx, "/contract/"+id, RequestOptions{})
	if err != nil {
		return Contract{}, err
	}

	var contract Contract
	if err := json.Unmarshal(body, &contract); err != nil {
		return Contract{}, fmt.Errorf("failed to parse contract response: %w", err)
	}
	return contract, nil
}

// CreateContract creates a contract and returns the stored record.
func (c *Client) CreateContract(ctx context.Context, input ContractInput) (Contract, error) {
	body, err := c.Post(ctx, "/contract", RequestOptions{Body: input})
	if err != nil {
		return Contract{}, err
	}

	var contract Contract
	if err := json.Unmarshal(body, &contract); err != nil {
		return Contract{}, fmt.Errorf("failed to parse created contract: %w", err)
	}
	return contract, nil
}

// UpdateContract applies a partial update to a contract.
func (c *Client) UpdateContract(ctx context.Context, id string, input ContractInput) (Contract, error) {
	body, err := c.Patch(ctx, "/contract/"+id, RequestOptions{Body: input})
	if err != nil {
		return Contract{}, err
	}

	var contract Contract
	if err := json.Unmarshal(body, &contract); err != nil {
		return Contract{}, fmt.Errorf("failed to parse updated contract: %w", err)
	}
	return contract, nil
}

// DeleteContract removes a contract.
func (c *Client) DeleteContract(ctx context.Context, id string) error {
	_, err := c.Delete(ctx, "/contract/"+id, RequestOptions{})
	return err
}
