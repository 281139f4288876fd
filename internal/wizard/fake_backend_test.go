package wizard

import (
	"context"
	"errors"
	"sync"

	"hotel-ob/internal/api"
)

// fakeBackend records every call and answers with canned responses.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error

	hotelID      int64
	roomID       int64
	eventID      int64
	categoryIDs  []int64
	original     *api.Hotel
	lastHotel    api.Hotel
	lastRoom     api.RoomConfig
	lastEvent    api.Event
	lastPolicies []api.InformationPolicy
	submitted    []any
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		fail:    map[string]error{},
		hotelID: 42,
		roomID:  7,
		eventID: 11,
	}
}

var errRejected = &api.Error{StatusCode: 422, Message: "rejected"}

func (f *fakeBackend) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.fail[name]
}

func (f *fakeBackend) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) CreateHotel(_ context.Context, input api.Hotel) (*api.CreateHotelResponse, error) {
	if err := f.record("createHotel"); err != nil {
		return nil, err
	}
	f.lastHotel = input
	return &api.CreateHotelResponse{HotelID: f.hotelID, Name: input.Name, Success: true}, nil
}

func (f *fakeBackend) UpdateHotel(_ context.Context, _ int64, input api.Hotel) error {
	f.lastHotel = input
	return f.record("updateHotel")
}

func (f *fakeBackend) GetHotelByID(_ context.Context, id int64) (*api.Hotel, error) {
	if err := f.record("getHotelById"); err != nil {
		return nil, err
	}
	if f.original != nil {
		return f.original, nil
	}
	return &api.Hotel{ID: id}, nil
}

func (f *fakeBackend) CreateRoom(_ context.Context, input api.RoomConfig) (*api.CreateRoomResponse, error) {
	if err := f.record("createRoom"); err != nil {
		return nil, err
	}
	f.lastRoom = input
	return &api.CreateRoomResponse{Data: api.RoomRef{RoomID: f.roomID, HotelID: input.HotelID}}, nil
}

func (f *fakeBackend) AddCategoriesToRoom(_ context.Context, _ int64, categories []api.RoomCategory) (*api.AddCategoriesResponse, error) {
	if err := f.record("addCategoriesToRoom"); err != nil {
		return nil, err
	}
	resp := &api.AddCategoriesResponse{}
	for i, c := range categories {
		if i < len(f.categoryIDs) {
			c.ID = f.categoryIDs[i]
		}
		resp.CreatedCategories = append(resp.CreatedCategories, c)
	}
	return resp, nil
}

func (f *fakeBackend) CreateOrUpdateRoomOperationalHandling(context.Context, int64, api.RoomOperationalHandling) error {
	return f.record("createOrUpdateRoomOperationalHandling")
}

func (f *fakeBackend) CreateEvent(_ context.Context, input api.Event) (*api.CreateEventResponse, error) {
	if err := f.record("createEvent"); err != nil {
		return nil, err
	}
	f.lastEvent = input
	return &api.CreateEventResponse{EventID: f.eventID}, nil
}

func (f *fakeBackend) UpdateEvent(_ context.Context, _ int64, input api.Event) error {
	f.lastEvent = input
	return f.record("updateEvent")
}

func (f *fakeBackend) UpsertBooking(context.Context, int64, api.EventBooking) error {
	return f.record("upsertBooking")
}

func (f *fakeBackend) UpsertOperations(context.Context, int64, api.EventOperations) error {
	return f.record("upsertOperations")
}

func (f *fakeBackend) UpsertFinancials(context.Context, int64, api.EventFinancials) error {
	return f.record("upsertFinancials")
}

func (f *fakeBackend) UpsertEquipment(context.Context, int64, api.EventEquipment) error {
	return f.record("upsertEquipment")
}

func (f *fakeBackend) UpsertSpaces(context.Context, int64, []api.EventSpace) error {
	return f.record("upsertSpaces")
}

func (f *fakeBackend) UpsertFoodBeverageDetails(context.Context, int64, api.FoodBeverage) error {
	return f.record("upsertFoodBeverageDetails")
}

func (f *fakeBackend) CreateInformationPolicy(_ context.Context, policy api.InformationPolicy) error {
	if err := f.record("createInformationPolicy"); err != nil {
		return err
	}
	f.mu.Lock()
	f.lastPolicies = append(f.lastPolicies, policy)
	f.mu.Unlock()
	return nil
}

func (f *fakeBackend) SubmitChanges(_ context.Context, _ int64, _ string, newData, originalData any) error {
	if err := f.record("submitChanges"); err != nil {
		return err
	}
	f.submitted = []any{newData, originalData}
	return nil
}

func (f *fakeBackend) AssignTemporaryFiles(context.Context, string, int64) (*api.AssignFilesResponse, error) {
	if err := f.record("assignTemporaryFiles"); err != nil {
		return nil, err
	}
	return &api.AssignFilesResponse{UpdatedCount: 2}, nil
}

// fakeAggregates serves a fixed aggregate to LoadForEdit.
type fakeAggregates struct {
	agg *api.HotelAggregate
	err error
}

func (f fakeAggregates) GetHotelAggregate(context.Context, int64) (*api.HotelAggregate, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.agg == nil {
		return nil, errors.New("not found")
	}
	return f.agg, nil
}
