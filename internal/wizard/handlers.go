package wizard

import (
	"context"
	"fmt"

	"hotel-ob/internal/api"
)

// handler describes how one step is persisted.
type handler struct {
	// blocking makes a failed follow-up call fail the whole step.
	blocking bool
	// terminal ends an add-mode session after this step succeeds.
	terminal bool

	// requires names the missing parent id, or returns "" when the step can run.
	requires  func(s *Session) string
	plan      func(s *Session) []Call
	settle    func(s *Session, results []Result) error
	followUps func(s *Session) []Call
}

// entityHotel is the entity type used by the approval and file endpoints.
const entityHotel = "hotel"

var handlers = map[Step]handler{
	StepHotel: {
		plan:      planHotel,
		settle:    settleHotel,
		followUps: assignHotelFiles,
	},
	StepRoomInfo: {
		blocking: true,
		requires: needHotel,
		plan:     planRoomInfo,
		settle:   settleRoomInfo,
	},
	StepRoomCategories: {
		blocking: true,
		requires: needRoomConfig,
		plan:     planRoomCategories,
		settle:   settleRoomCategories,
	},
	StepRoomHandling: {
		blocking: true,
		requires: needRoomConfig,
		plan:     planRoomHandling,
	},
	StepEventsInfo: {
		requires:  needHotel,
		plan:      planEventsInfo,
		settle:    settleEventsInfo,
		followUps: upsertEventSections,
	},
	StepEventSpaces: {
		blocking: true,
		requires: needEvent,
		plan:     planEventSpaces,
	},
	StepFoodBeverage: {
		blocking: true,
		terminal: true,
		requires: needHotel,
		plan:     planFoodBeverage,
	},
	StepInformationPolicies: {
		blocking: true,
		requires: needSystemHotelID,
		plan:     planInformationPolicies,
	},
}

func needHotel(s *Session) string {
	if s.IDs.HotelID == 0 {
		return "hotel id"
	}
	return ""
}

func needRoomConfig(s *Session) string {
	if s.IDs.RoomConfigID == 0 {
		return "room configuration id"
	}
	return ""
}

func needEvent(s *Session) string {
	if s.IDs.EventID == 0 {
		return "event id"
	}
	return ""
}

func needSystemHotelID(s *Session) string {
	if CommittedAs[HotelInfo](s.Data, StepHotel).SystemHotelID == "" {
		return "hotel system id"
	}
	return ""
}

func planHotel(s *Session) []Call {
	payload := hotelToWire(CommittedAs[HotelInfo](s.Data, StepHotel))
	id := s.IDs.HotelID

	if id == 0 {
		return []Call{{
			Name: "createHotel",
			Run: func(ctx context.Context, b Backend) (any, error) {
				return b.CreateHotel(ctx, payload)
			},
		}}
	}

	if s.Permissions.NeedsApproval() {
		var original *api.Hotel
		return []Call{
			{
				Name: "getHotelById",
				Run: func(ctx context.Context, b Backend) (any, error) {
					h, err := b.GetHotelByID(ctx, id)
					original = h
					return h, err
				},
			},
			{
				Name: "submitChanges",
				Run: func(ctx context.Context, b Backend) (any, error) {
					return nil, b.SubmitChanges(ctx, id, entityHotel, payload, original)
				},
			},
		}
	}

	return []Call{{
		Name: "updateHotel",
		Run: func(ctx context.Context, b Backend) (any, error) {
			return nil, b.UpdateHotel(ctx, id, payload)
		},
	}}
}

func settleHotel(s *Session, results []Result) error {
	for _, r := range results {
		if r.Call != "createHotel" {
			continue
		}
		resp, _ := r.Value.(*api.CreateHotelResponse)
		if resp == nil || resp.HotelID == 0 {
			return &StepError{Step: StepHotel, Call: r.Call, Err: fmt.Errorf("backend returned no hotel id")}
		}
		s.IDs.HotelID = resp.HotelID
	}

	id := s.IDs.HotelID
	s.Data.update(StepHotel, func(v any) any {
		h, _ := v.(HotelInfo)
		h.ID = id
		return h
	})
	return nil
}

func assignHotelFiles(s *Session) []Call {
	id := s.IDs.HotelID
	return []Call{{
		Name: "assignTemporaryFiles",
		Run: func(ctx context.Context, b Backend) (any, error) {
			return b.AssignTemporaryFiles(ctx, entityHotel, id)
		},
	}}
}

func planRoomInfo(s *Session) []Call {
	payload := roomInfoToWire(CommittedAs[RoomInfo](s.Data, StepRoomInfo), s.IDs.HotelID)
	return []Call{{
		Name: "createRoom",
		Run: func(ctx context.Context, b Backend) (any, error) {
			return b.CreateRoom(ctx, payload)
		},
	}}
}

func settleRoomInfo(s *Session, results []Result) error {
	resp, _ := results[0].Value.(*api.CreateRoomResponse)
	if resp == nil || resp.Data.RoomID == 0 {
		return &StepError{Step: StepRoomInfo, Call: "createRoom", Err: fmt.Errorf("backend returned no room id")}
	}
	s.IDs.RoomConfigID = resp.Data.RoomID
	return nil
}

func planRoomCategories(s *Session) []Call {
	roomID := s.IDs.RoomConfigID
	payload := categoriesToWire(CommittedAs[[]RoomCategory](s.Data, StepRoomCategories))
	return []Call{{
		Name: "addCategoriesToRoom",
		Run: func(ctx context.Context, b Backend) (any, error) {
			return b.AddCategoriesToRoom(ctx, roomID, payload)
		},
	}}
}

// settleRoomCategories copies the ids of the created categories back onto the
// submitted entries, matched by position.
func settleRoomCategories(s *Session, results []Result) error {
	resp, _ := results[0].Value.(*api.AddCategoriesResponse)
	if resp == nil {
		return nil
	}
	created := resp.CreatedCategories
	s.Data.update(StepRoomCategories, func(v any) any {
		cats, _ := v.([]RoomCategory)
		for i := range cats {
			if i < len(created) && created[i].ID != 0 {
				cats[i].ID = created[i].ID
			}
		}
		return cats
	})
	return nil
}

func planRoomHandling(s *Session) []Call {
	roomID := s.IDs.RoomConfigID
	payload := handlingToWire(CommittedAs[RoomHandling](s.Data, StepRoomHandling))
	return []Call{{
		Name: "createOrUpdateRoomOperationalHandling",
		Run: func(ctx context.Context, b Backend) (any, error) {
			return nil, b.CreateOrUpdateRoomOperationalHandling(ctx, roomID, payload)
		},
	}}
}

func planEventsInfo(s *Session) []Call {
	info := CommittedAs[EventsInfo](s.Data, StepEventsInfo)
	payload := eventContactToWire(info.Contact, s.IDs.HotelID)

	if id := s.IDs.EventID; id != 0 {
		return []Call{{
			Name: "updateEvent",
			Run: func(ctx context.Context, b Backend) (any, error) {
				return nil, b.UpdateEvent(ctx, id, payload)
			},
		}}
	}
	return []Call{{
		Name: "createEvent",
		Run: func(ctx context.Context, b Backend) (any, error) {
			return b.CreateEvent(ctx, payload)
		},
	}}
}

func settleEventsInfo(s *Session, results []Result) error {
	if results[0].Call != "createEvent" {
		return nil
	}
	resp, _ := results[0].Value.(*api.CreateEventResponse)
	if resp == nil || resp.EventID == 0 {
		return &StepError{Step: StepEventsInfo, Call: "createEvent", Err: fmt.Errorf("backend returned no event id")}
	}
	s.IDs.EventID = resp.EventID
	return nil
}

// upsertEventSections saves the four event sub-records independently.
func upsertEventSections(s *Session) []Call {
	id := s.IDs.EventID
	info := CommittedAs[EventsInfo](s.Data, StepEventsInfo)
	booking := bookingToWire(info.Booking)
	operations := operationsToWire(info.Operations)
	financials := financialsToWire(info.Financials)
	equipment := equipmentToWire(info.Equipment)

	return []Call{
		{
			Name: "upsertBooking",
			Run: func(ctx context.Context, b Backend) (any, error) {
				return nil, b.UpsertBooking(ctx, id, booking)
			},
		},
		{
			Name: "upsertOperations",
			Run: func(ctx context.Context, b Backend) (any, error) {
				return nil, b.UpsertOperations(ctx, id, operations)
			},
		},
		{
			Name: "upsertFinancials",
			Run: func(ctx context.Context, b Backend) (any, error) {
				return nil, b.UpsertFinancials(ctx, id, financials)
			},
		},
		{
			Name: "upsertEquipment",
			Run: func(ctx context.Context, b Backend) (any, error) {
				return nil, b.UpsertEquipment(ctx, id, equipment)
			},
		},
	}
}

func planEventSpaces(s *Session) []Call {
	id := s.IDs.EventID
	payload := spacesToWire(CommittedAs[[]EventSpace](s.Data, StepEventSpaces))
	return []Call{{
		Name: "upsertSpaces",
		Run: func(ctx context.Context, b Backend) (any, error) {
			return nil, b.UpsertSpaces(ctx, id, payload)
		},
	}}
}

func planFoodBeverage(s *Session) []Call {
	id := s.IDs.HotelID
	payload := foodBeverageToWire(CommittedAs[FoodBeverage](s.Data, StepFoodBeverage))
	return []Call{{
		Name: "upsertFoodBeverageDetails",
		Run: func(ctx context.Context, b Backend) (any, error) {
			return nil, b.UpsertFoodBeverageDetails(ctx, id, payload)
		},
	}}
}

func planInformationPolicies(s *Session) []Call {
	systemID := CommittedAs[HotelInfo](s.Data, StepHotel).SystemHotelID
	policies := CommittedAs[[]InformationPolicy](s.Data, StepInformationPolicies)

	calls := make([]Call, 0, len(policies))
	for _, p := range policies {
		payload := policyToWire(p, systemID)
		calls = append(calls, Call{
			Name: fmt.Sprintf("createInformationPolicy(%s)", p.Type),
			Run: func(ctx context.Context, b Backend) (any, error) {
				return nil, b.CreateInformationPolicy(ctx, payload)
			},
		})
	}
	return calls
}
