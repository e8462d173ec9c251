package client

import (
	"context"
	"encoding/json"
	"fmt"
)

// Amenity is a fixture that comes with a room (bed, air conditioner, ...).
type Amenity struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Note string `json:"note,omitempty"`
}

// AmenityInput is the mutable subset of Amenity accepted by create and update.
type AmenityInput struct {
	Name string `json:"name,omitempty"`
	Note string `json:"note,omitempty"`
}

// FetchAmenities retrieves all amenities.
func (c *Client) FetchAmenities(ctx context.Context) ([]Amenity, error) {
	body, err := c.Get(ctx, "/amenities", RequestOptions{})
	if err != nil {
		return nil, err
	}

	var amenities []Amenity
	if err := json.Unmarshal(body, &amenities); err != nil {
		return nil, fmt.Errorf("failed to parse amenities response: %w", err)
	}
	return amenities, nil
}

// FetchAmenity retrieves a single amenity by ID.
func (c *Client) FetchAmenity(ctx context.Context, id string) (Amenity, error) {
	body, err := c.Get(ctx, "/amenity/"+id, RequestOptions{})
	if err != nil {
		return Amenity{}, err
	}

	var amenity Amenity
	if err := json.Unmarshal(body, &amenity); err != nil {
		return Amenity{}, fmt.Errorf("failed to parse amenity response: %w", err)
	}
	return amenity, nil
}

// CreateAmenity creates an amenity and returns the stored record.
func (c *Client) CreateAmenity(ctx context.Context, input AmenityInput) (Amenity, error) {
	body, err := c.Post(ctx, "/amenity", RequestOptions{Body: input})
	if err != nil {
		return Amenity{}, err
	}

	var amenity Amenity
	if err := json.Unmarshal(body, &amenity); err != nil {
		return Amenity{}, fmt.Errorf("failed to parse created amenity: %w", err)
	}
	return amenity, nil
}

// UpdateAmenity applies a partial update to an amenity.
func (c *Client) UpdateAmenity(ctx context.Context, id string, input AmenityInput) (Amenity, error) {
	body, err := c.Patch(ctx, "/amenity/"+id, RequestOptions{Body: input})
	if err != nil {
		return Amenity{}, err
	}

	var amenity Amenity
	if err := json.Unmarshal(body, &amenity); err != nil {
		return Amenity{}, fmt.Errorf("failed to parse updated amenity: %w", err)
	}
	return amenity, nil
}

// DeleteAmenity removes an amenity.
func (c *Client) DeleteAmenity(ctx context.Context, id string) error {
	_, err := c.Delete(ctx, "/amenity/"+id, RequestOptions{})
	return err
}
