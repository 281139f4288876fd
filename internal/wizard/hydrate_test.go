package wizard

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-ob/internal/api"
)

const aggregateJSON = `{
  "hotel": {"id": 42, "system_hotel_id": "SYS-1", "name": "Seeblick", "parking_available": 1, "pets_allowed": "0"},
  "rooms": {
    "room": {"id": 7, "hotel_id": 42, "main_contact_name_room": "Jane", "breakfast_included": "1"},
    "categories": [{"id": 3, "category_name": "Double", "accessible_room": 1}]
  },
  "events": {
    "event": {"id": 11, "hotel_id": 42, "contact_name": "Max"},
    "equipment": {"beamer_count": 2, "podium_available": true},
    "spaces": []
  },
  "foodBeverage": null
}`

func TestHydrate(t *testing.T) {
	var agg api.HotelAggregate
	require.NoError(t, json.Unmarshal([]byte(aggregateJSON), &agg))

	s, err := Hydrate(&agg, Permissions{PermEditAll})
	require.NoError(t, err)

	assert.Equal(t, ModeEdit, s.Mode)
	assert.Equal(t, StepHotel, s.ActiveStep)
	assert.Equal(t, IDs{HotelID: 42, RoomConfigID: 7, EventID: 11}, s.IDs)

	hotel := CommittedAs[HotelInfo](s.Data, StepHotel)
	assert.Equal(t, "SYS-1", hotel.SystemHotelID)
	assert.True(t, hotel.ParkingAvailable)
	assert.False(t, hotel.PetsAllowed)
	assert.Equal(t, hotel, LiveAs[HotelInfo](s.Data, StepHotel))

	room := CommittedAs[RoomInfo](s.Data, StepRoomInfo)
	assert.Equal(t, "Jane", room.MainContactNameRoom)
	assert.True(t, room.BreakfastIncluded)

	cats := CommittedAs[[]RoomCategory](s.Data, StepRoomCategories)
	require.Len(t, cats, 1)
	assert.True(t, cats[0].AccessibleRoom)

	events := CommittedAs[EventsInfo](s.Data, StepEventsInfo)
	assert.Equal(t, "Max", events.Contact.ContactName)
	assert.Equal(t, 2, events.Equipment.BeamerCount)
	assert.Equal(t, EventBooking{}, events.Booking)

	// roomOperational is absent
	assert.Equal(t, RoomHandling{}, CommittedAs[RoomHandling](s.Data, StepRoomHandling))
	assert.Equal(t, FoodBeverage{}, CommittedAs[FoodBeverage](s.Data, StepFoodBeverage))

	want := map[Step]bool{
		StepHotel:               true,
		StepRoomInfo:            true,
		StepRoomCategories:      true,
		StepRoomHandling:        false,
		StepEventsInfo:          true,
		StepEventSpaces:         false,
		StepFoodBeverage:        false,
		StepInformationPolicies: false,
	}
	for step, complete := range want {
		assert.Equal(t, complete, s.Completion.IsComplete(step), step)
	}
}

func TestHydrate_EmptyAggregate(t *testing.T) {
	s, err := Hydrate(&api.HotelAggregate{}, nil)
	require.NoError(t, err)

	assert.Equal(t, IDs{}, s.IDs)
	done, _ := s.Completion.Progress()
	assert.Zero(t, done)
	assert.Equal(t, []RoomCategory{}, CommittedAs[[]RoomCategory](s.Data, StepRoomCategories))

	_, err = Hydrate(nil, nil)
	assert.Error(t, err)
}

func TestLoadForEdit(t *testing.T) {
	src := fakeAggregates{agg: &api.HotelAggregate{
		FoodBeverage: &api.FoodBeverage{RestaurantCount: 2},
	}}

	s, err := LoadForEdit(context.Background(), src, 42, Permissions{PermEditWithApproval})
	require.NoError(t, err)

	assert.Equal(t, int64(42), s.IDs.HotelID)
	assert.Equal(t, 2, CommittedAs[FoodBeverage](s.Data, StepFoodBeverage).RestaurantCount)
	assert.True(t, s.Permissions.NeedsApproval())

	_, err = LoadForEdit(context.Background(), fakeAggregates{err: errRejected}, 42, nil)
	assert.ErrorIs(t, err, errRejected)
}

func TestHydratedSession_EditsThroughDispatcher(t *testing.T) {
	var agg api.HotelAggregate
	require.NoError(t, json.Unmarshal([]byte(aggregateJSON), &agg))
	s, err := Hydrate(&agg, nil)
	require.NoError(t, err)

	fb := newFakeBackend()
	d := NewDispatcher(fb)
	require.NoError(t, s.JumpTo(StepRoomHandling))

	_, err = d.Submit(context.Background(), s, StepRoomHandling, RoomHandling{LostAndFoundDays: 30})
	require.NoError(t, err)

	assert.Equal(t, []string{"createOrUpdateRoomOperationalHandling"}, fb.called())
	assert.True(t, s.Completion.IsComplete(StepRoomHandling))
	assert.Equal(t, StepEventsInfo, s.ActiveStep)
}
