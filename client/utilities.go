package client

import (
	"context"
	"encoding/json"
	"fmt"
)

// Utility is a metered service billed per room (electricity, water, ...).
type Utility struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	PricePerUnit int64  `json:"pricePerUnit"`
	Unit         string `json:"unit,omitempty"`
	Note         string `json:"note,omitempty"`
}

// UtilityInput is the mutable subset of Utility accepted by create and update.
type UtilityInput struct {
	Name         string `json:"name,omitempty"`
	PricePerUnit int64  `json:"pricePerUnit,omitempty"`
	Unit         string `json:"unit,omitempty"`
	Note         string `json:"note,omitempty"`
}

// FetchUtilities retrieves all utilities.
func (c *Client) FetchUtilities(ctx context.Context) ([]Utility, error) {
	body, err := c.Get(ctx, "/utilities", RequestOptions{})
	if err != nil {
		return nil, err
	}

	var utilities []Utility
	if err := json.Unmarshal(body, &utilities); err != nil {
		return nil, fmt.Errorf("failed to parse utilities response: %w", err)
	}
	return utilities, nil
}

// FetchUtility retrieves a single utility by ID.
func (c *Client) FetchUtility(ctx context.Context, id string) (Utility, error) {
	body, err := c.Get(ctx, "/utility/"+id, RequestOptions{})
	if err != nil {
		return Utility{}, err
	}

	var utility Utility
	if err := json.Unmarshal(body, &utility); err != nil {
		return Utility{}, fmt.Errorf("failed to parse utility response: %w", err)
	}
	return utility, nil
}

// CreateUtility creates a utility and returns the stored record.
func (c *Client) CreateUtility(ctx context.Context, input UtilityInput) (Utility, error) {
	body, err := c.Post(ctx, "/utility", RequestOptions{Body: input})
	if err != nil {
		return Utility{}, err
	}

	var utility Utility
	if err := json.Unmarshal(body, &utility); err != nil {
		return Utility{}, fmt.Errorf("failed to parse created utility: %w", err)
	}
	return utility, nil
}

// UpdateUtility applies a partial update to a utility.
func (c *Client) UpdateUtility(ctx context.Context, id string, input UtilityInput) (Utility, error) {
	body, err := c.Patch(ctx, "/utility/"+id, RequestOptions{Body: input})
	if err != nil {
		return Utility{}, err
	}

	var utility Utility
	if err := json.Unmarshal(body, &utility); err != nil {
		return Utility{}, fmt.Errorf("failed to parse updated utility: %w", err)
	}
	return utility, nil
}

// DeleteUtility removes a utility.
func (c *Client) DeleteUtility(ctx context.Context, id string) error {
	_, err := c.Delete(ctx, "/utility/"+id, RequestOptions{})
	return err
}
