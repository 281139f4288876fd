package wizard

import (
	"context"
	"errors"
	"fmt"

	"hotel-ob/internal/api"
)

// AggregateSource loads the full record of an existing hotel. *api.Client
// implements it.
type AggregateSource interface {
	GetHotelAggregate(ctx context.Context, id int64) (*api.HotelAggregate, error)
}

// Hydrate builds an edit-mode session from a backend aggregate. Missing
// sections leave their step at the empty value. A step counts as complete
// when its section carries data; information policies are not part of the
// aggregate and always start incomplete.
func Hydrate(agg *api.HotelAggregate, perms Permissions) (*Session, error) {
	if agg == nil {
		return nil, errors.New("hydrating session: no hotel aggregate")
	}
	s := NewSession(ModeEdit, perms)

	if h := agg.Hotel; h != nil {
		if err := s.Data.Set(StepHotel, hotelFromWire(*h)); err != nil {
			return nil, err
		}
		s.IDs.HotelID = h.ID
		s.Completion.MarkComplete(StepHotel)
	}

	if r := agg.Rooms; r != nil {
		if r.Room != nil {
			if err := s.Data.Set(StepRoomInfo, roomInfoFromWire(*r.Room)); err != nil {
				return nil, err
			}
			s.IDs.RoomConfigID = r.Room.ID
			s.Completion.MarkComplete(StepRoomInfo)
		}
		if len(r.Categories) > 0 {
			if err := s.Data.Set(StepRoomCategories, categoriesFromWire(r.Categories)); err != nil {
				return nil, err
			}
			s.Completion.MarkComplete(StepRoomCategories)
		}
	}

	if h := agg.RoomOperational; h != nil {
		if err := s.Data.Set(StepRoomHandling, handlingFromWire(*h)); err != nil {
			return nil, err
		}
		s.Completion.MarkComplete(StepRoomHandling)
	}

	if e := agg.Events; e != nil {
		if e.Event != nil {
			if err := s.Data.Set(StepEventsInfo, eventsFromWire(*e)); err != nil {
				return nil, err
			}
			s.IDs.EventID = e.Event.ID
			s.Completion.MarkComplete(StepEventsInfo)
		}
		if len(e.Spaces) > 0 {
			if err := s.Data.Set(StepEventSpaces, spacesFromWire(e.Spaces)); err != nil {
				return nil, err
			}
			s.Completion.MarkComplete(StepEventSpaces)
		}
	}

	if fb := agg.FoodBeverage; fb != nil {
		if err := s.Data.Set(StepFoodBeverage, foodBeverageFromWire(*fb)); err != nil {
			return nil, err
		}
		s.Completion.MarkComplete(StepFoodBeverage)
	}

	return s, nil
}

// LoadForEdit fetches hotelID from src and hydrates an edit session for it.
func LoadForEdit(ctx context.Context, src AggregateSource, hotelID int64, perms Permissions) (*Session, error) {
	agg, err := src.GetHotelAggregate(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("loading hotel %d: %w", hotelID, err)
	}
	s, err := Hydrate(agg, perms)
	if err != nil {
		return nil, err
	}
	if s.IDs.HotelID == 0 {
		s.IDs.HotelID = hotelID
	}
	return s, nil
}
