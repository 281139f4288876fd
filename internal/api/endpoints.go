package api

import (
	"context"
	"fmt"
)

// CreateHotel creates a new hotel.
func (c *Client) CreateHotel(ctx context.Context, input Hotel) (*CreateHotelResponse, error) {
	var resp CreateHotelResponse
	if err := c.post(ctx, "/hotels", input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateHotel replaces the base data of an existing hotel.
func (c *Client) UpdateHotel(ctx context.Context, id int64, input Hotel) error {
	return c.put(ctx, fmt.Sprintf("/hotels/%d", id), input, nil)
}

// GetHotelByID fetches the current base data of a hotel.
func (c *Client) GetHotelByID(ctx context.Context, id int64) (*Hotel, error) {
	var resp Hotel
	if err := c.get(ctx, fmt.Sprintf("/hotels/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetHotelAggregate fetches a hotel together with all related sub-resources.
func (c *Client) GetHotelAggregate(ctx context.Context, id int64) (*HotelAggregate, error) {
	var resp HotelAggregate
	if err := c.get(ctx, fmt.Sprintf("/hotels/%d/full", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateRoom creates or replaces the main room configuration of a hotel.
func (c *Client) CreateRoom(ctx context.Context, input RoomConfig) (*CreateRoomResponse, error) {
	var resp CreateRoomResponse
	if err := c.post(ctx, "/rooms", input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddCategoriesToRoom adds category records to a room configuration.
func (c *Client) AddCategoriesToRoom(ctx context.Context, roomID int64, categories []RoomCategory) (*AddCategoriesResponse, error) {
	body := struct {
		Categories []RoomCategory `json:"categories"`
	}{Categories: categories}

	var resp AddCategoriesResponse
	if err := c.post(ctx, fmt.Sprintf("/rooms/%d/categories", roomID), body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateOrUpdateRoomOperationalHandling upserts the operational handling record.
func (c *Client) CreateOrUpdateRoomOperationalHandling(ctx context.Context, roomID int64, input RoomOperationalHandling) error {
	return c.post(ctx, fmt.Sprintf("/rooms/%d/operational-handling", roomID), input, nil)
}

// CreateEvent creates the event department record of a hotel.
func (c *Client) CreateEvent(ctx context.Context, input Event) (*CreateEventResponse, error) {
	var resp CreateEventResponse
	if err := c.post(ctx, "/events", input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateEvent replaces the event department record.
func (c *Client) UpdateEvent(ctx context.Context, id int64, input Event) error {
	return c.put(ctx, fmt.Sprintf("/events/%d", id), input, nil)
}

// UpsertBooking upserts the booking sub-record of an event.
func (c *Client) UpsertBooking(ctx context.Context, eventID int64, data EventBooking) error {
	return c.put(ctx, eventPath(eventID, "booking"), data, nil)
}

// UpsertOperations upserts the operations sub-record of an event.
func (c *Client) UpsertOperations(ctx context.Context, eventID int64, data EventOperations) error {
	return c.put(ctx, eventPath(eventID, "operations"), data, nil)
}

// UpsertFinancials upserts the financials sub-record of an event.
func (c *Client) UpsertFinancials(ctx context.Context, eventID int64, data EventFinancials) error {
	return c.put(ctx, eventPath(eventID, "financials"), data, nil)
}

// UpsertEquipment upserts the equipment sub-record of an event.
func (c *Client) UpsertEquipment(ctx context.Context, eventID int64, data EventEquipment) error {
	return c.put(ctx, eventPath(eventID, "equipment"), data, nil)
}

// UpsertSpaces bulk-upserts the event spaces of an event.
func (c *Client) UpsertSpaces(ctx context.Context, eventID int64, spaces []EventSpace) error {
	body := struct {
		Spaces []EventSpace `json:"spaces"`
	}{Spaces: spaces}
	return c.put(ctx, eventPath(eventID, "spaces"), body, nil)
}

func eventPath(eventID int64, section string) string {
	return fmt.Sprintf("/events/%d/%s", eventID, section)
}

// UpsertFoodBeverageDetails upserts the F&B aggregate of a hotel.
func (c *Client) UpsertFoodBeverageDetails(ctx context.Context, hotelID int64, payload FoodBeverage) error {
	return c.put(ctx, fmt.Sprintf("/hotels/%d/fb-details", hotelID), payload, nil)
}

// CreateInformationPolicy creates one information policy with its items.
func (c *Client) CreateInformationPolicy(ctx context.Context, policy InformationPolicy) error {
	return c.post(ctx, "/information-policies", policy, nil)
}

// SubmitChanges sends a change set to the approval workflow instead of
// applying it directly.
func (c *Client) SubmitChanges(ctx context.Context, entityID int64, entityType string, newData, originalData any) error {
	req := SubmitChangesRequest{
		EntityID:     entityID,
		EntityType:   entityType,
		NewData:      newData,
		OriginalData: originalData,
	}
	return c.post(ctx, "/approvals/submit", req, nil)
}

// AssignTemporaryFiles moves uploads made before the entity existed onto it.
func (c *Client) AssignTemporaryFiles(ctx context.Context, entityType string, entityID int64) (*AssignFilesResponse, error) {
	body := struct {
		EntityType string `json:"entity_type"`
		EntityID   int64  `json:"entity_id"`
	}{EntityType: entityType, EntityID: entityID}

	var resp AssignFilesResponse
	if err := c.post(ctx, "/files/assign-temporary", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
