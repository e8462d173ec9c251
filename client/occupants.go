package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Occupant is a person living in a room under a contract.
type Occupant struct {
	ID             string `json:"_id"`
	FullName       string `json:"fullName"`
	PhoneNumber    string `json:"phoneNumber,omitempty"`
	IdentityNumber string `json:"identityNumber,omitempty"`
	RoomID         string `json:"room,omitempty"`
	ContractID     string `json:"contract,omitempty"`
}

// OccupantInput is the mutable subset of Occupant accepted by create and update.
type OccupantInput struct {
	FullName       string `json:"fullName,omitempty"`
	PhoneNumber    string `json:"phoneNumber,omitempty"`
	IdentityNumber string `json:"identityNumber,omitempty"`
	RoomID         string `json:"room,omitempty"`
	ContractID     string `json:"contract,omitempty"`
}

// FetchOccupants retrieves all occupants, optionally restricted to one room.
func (c *Client) FetchOccupants(ctx context.Context, roomID string) ([]Occupant, error) {
	opts := RequestOptions{}
	if roomID != "" {
		opts.Query = url.Values{"room": {roomID}}
	}
	body, err := c.Get(ctx, "/occupants", opts)
	if err != nil {
		return nil, err
	}

	var occupants []Occupant
	if err := json.Unmarshal(body, &occupants); err != nil {
		return nil, fmt.Errorf("failed to parse occupants response: %w", err)
	}
	return occupants, nil
}

// FetchOccupant retrieves a single occupant by ID.
func (c *Client) FetchOccupant(ctx context.Context, id string) (Occupant, error) {
	body, err := c.Get(ctx, "/occupant/"+id, RequestOptions{})
	if err != nil {
		return Occupant{}, err
	}

	var occupant Occupant
	if err := json.Unmarshal(body, &occupant); err != nil {
		return Occupant{}, fmt.Errorf("failed to parse occupant response: %w", err)
	}
	return occupant, nil
}

// CreateOccupant creates an occupant and returns the stored record.
func (c *Client) CreateOccupant(ctx context.Context, input OccupantInput) (Occupant, error) {
	body, err := c.Post(ctx, "/occupant", RequestOptions{Body: input})
	if err != nil {
		return Occupant{}, err
	}

	var occupant Occupant
	if err := json.Unmarshal(body, &occupant); err != nil {
		return Occupant{}, fmt.Errorf("failed to parse created occupant: %w", err)
	}
	return occupant, nil
}

// UpdateOccupant applies a partial update to an occupant.
func (c *Client) UpdateOccupant(ctx context.Context, id string, input OccupantInput) (Occupant, error) {
	body, err := c.Patch(ctx, "/occupant/"+id, RequestOptions{Body: input})
	if err != nil {
		return Occupant{}, err
	}

	var occupant Occupant
	if err := json.Unmarshal(body, &occupant); err != nil {
		return Occupant{}, fmt.Errorf("failed to parse updated occupant: %w", err)
	}
	return occupant, nil
}

// DeleteOccupant removes an occupant.
func (c *Client) DeleteOccupant(ctx context.Context, id string) error {
	_, err := c.Delete(ctx, "/occupant/"+id, RequestOptions{})
	return err
}
