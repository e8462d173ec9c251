package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"
)

// Room statuses used by the management service.
const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomUnavailable = "unavailable"
)

// Room is a rentable room and its attached amenities, utilities, and images.
type Room struct {
	ID          string    `json:"_id"`
	RoomNumber  string    `json:"roomNumber"`
	Status      string    `json:"status"`
	RentPrice   int64     `json:"rentPrice"`
	Description string    `json:"description,omitempty"`
	Amenities   []Amenity `json:"amenities,omitempty"`
	Utilities   []Utility `json:"utilities,omitempty"`
	Images      []string  `json:"images,omitempty"`
}

// RoomInput is the mutable subset of Room accepted by create and update.
// Amenities and utilities are referenced by ID.
type RoomInput struct {
	RoomNumber  string   `json:"roomNumber,omitempty"`
	Status      string   `json:"status,omitempty"`
	RentPrice   int64    `json:"rentPrice,omitempty"`
	Description string   `json:"description,omitempty"`
	AmenityIDs  []string `json:"amenities,omitempty"`
	UtilityIDs  []string `json:"utilities,omitempty"`
}

// FetchRooms retrieves all rooms, optionally filtered by status.
func (c *Client) FetchRooms(ctx context.Context, status string) ([]Room, error) {
	opts := RequestOptions{}
	if status != "" {
		opts.Query = url.Values{"status": {status}}
	}
	body, err := c.Get(ctx, "/rooms", opts)
	if err != nil {
		return nil, err
	}

	var rooms []Room
	if err := json.Unmarshal(body, &rooms); err != nil {
		log.Error().Err(err).Str("body_preview", string(body[:min(len(body), 200)])).Msg("Failed to parse rooms JSON")
		return nil, fmt.Errorf("failed to parse rooms response: %w", err)
	}
	log.Info().Int("count", len(rooms)).Msg("Successfully fetched rooms")
	return rooms, nil
}

// FetchRoom retrieves a single room by ID along with its raw JSON body.
func (c *Client) FetchRoom(ctx context.Context, id string) (Room, string, error) {
	body, err := c.Get(ctx, "/room/"+id, RequestOptions{})
	if err != nil {
		return Room{}, "", err
	}

	var room Room
	if err := json.Unmarshal(body, &room); err != nil {
		log.Error().Err(err).Str("body_preview", string(body[:min(len(body), 200)])).Msg("Failed to parse room JSON")
		return Room{}, string(body), fmt.Errorf("failed to parse room response: %w", err)
	}
	return room, string(body), nil
}

// CreateRoom creates a room and returns the stored record.
func (c *Client) CreateRoom(ctx context.Context, input RoomInput) (Room, error) {
	body, err := c.Post(ctx, "/room", RequestOptions{Body: input})
	if err != nil {
		return Room{}, err
	}

	var room Room
	if err := json.Unmarshal(body, &room); err != nil {
		return Room{}, fmt.Errorf("failed to parse created room: %w", err)
	}
	return room, nil
}

// UpdateRoom applies a partial update to a room.
func (c *Client) UpdateRoom(ctx context.Context, id string, input RoomInput) (Room, error) {
	body, err := c.Patch(ctx, "/room/"+id, RequestOptions{Body: input})
	if err != nil {
		return Room{}, err
	}

	var room Room
	if err := json.Unmarshal(body, &room); err != nil {
		return Room{}, fmt.Errorf("failed to parse updated room: %w", err)
	}
	return room, nil
}

// DeleteRoom removes a room.
func (c *Client) DeleteRoom(ctx context.Context, id string) error {
	if _, err := c.Delete(ctx, "/room/"+id, RequestOptions{}); err != nil {
		return err
	}
	log.Info().Str("room_id", id).Msg("Room deleted")
	return nil
}
