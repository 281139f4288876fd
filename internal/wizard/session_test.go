package wizard

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequencer(t *testing.T) {
	steps := Steps()
	require.Len(t, steps, 8)
	assert.Equal(t, StepHotel, FirstStep())
	assert.Equal(t, StepInformationPolicies, LastStep())

	next, ok := Advance(StepRoomHandling)
	assert.True(t, ok)
	assert.Equal(t, StepEventsInfo, next)

	_, ok = Advance(StepInformationPolicies)
	assert.False(t, ok)

	assert.Equal(t, StepHotel, Retreat(StepHotel))
	assert.Equal(t, StepEventSpaces, Retreat(StepFoodBeverage))

	// callers cannot reorder the sequence
	steps[0] = StepFoodBeverage
	assert.Equal(t, StepHotel, FirstStep())
}

func TestParseStep(t *testing.T) {
	tests := []struct {
		in      string
		want    Step
		wantErr bool
	}{
		{"hotel", StepHotel, false},
		{"roomCategories", StepRoomCategories, false},
		{"room-categories", StepRoomCategories, false},
		{"EVENT_SPACES", StepEventSpaces, false},
		{"spa", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStep(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownStep)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestData_CopiesOnWriteAndRead(t *testing.T) {
	d := NewData()
	cats := []RoomCategory{{CategoryName: "Double"}}
	require.NoError(t, d.Set(StepRoomCategories, cats))

	cats[0].CategoryName = "mutated"
	assert.Equal(t, "Double", CommittedAs[[]RoomCategory](d, StepRoomCategories)[0].CategoryName)

	read := CommittedAs[[]RoomCategory](d, StepRoomCategories)
	read[0].CategoryName = "mutated"
	assert.Equal(t, "Double", CommittedAs[[]RoomCategory](d, StepRoomCategories)[0].CategoryName)
}

func TestData_LiveIsIndependentOfCommitted(t *testing.T) {
	d := NewData()
	require.NoError(t, d.Set(StepHotel, HotelInfo{Name: "Seeblick"}))
	require.NoError(t, d.SetLive(StepHotel, HotelInfo{Name: "Seebl"}))

	assert.Equal(t, "Seeblick", CommittedAs[HotelInfo](d, StepHotel).Name)
	assert.Equal(t, "Seebl", LiveAs[HotelInfo](d, StepHotel).Name)

	require.NoError(t, d.Set(StepHotel, HotelInfo{Name: "Seeblick Resort"}))
	assert.Equal(t, "Seeblick Resort", LiveAs[HotelInfo](d, StepHotel).Name)
}

func TestData_EmptyValues(t *testing.T) {
	d := NewData()
	for _, step := range Steps() {
		assert.False(t, d.HasCommitted(step))
		assert.NotNil(t, d.Committed(step), step)
	}
	assert.Equal(t, []EventSpace{}, CommittedAs[[]EventSpace](d, StepEventSpaces))

	require.NoError(t, d.Set(StepEventSpaces, []EventSpace(nil)))
	assert.NotNil(t, CommittedAs[[]EventSpace](d, StepEventSpaces))
}

func TestData_RejectsWrongType(t *testing.T) {
	d := NewData()
	assert.Error(t, d.Set(StepRoomInfo, HotelInfo{}))
	assert.Error(t, d.SetLive(StepHotel, map[string]any{"name": "x"}))
	assert.ErrorIs(t, d.Set(Step("spa"), HotelInfo{}), ErrUnknownStep)
}

func TestDecodeValue(t *testing.T) {
	v, err := DecodeValue(StepRoomInfo, []byte(`{"mainContactNameRoom":"Jane","petsAllowed":true}`))
	require.NoError(t, err)
	info := v.(RoomInfo)
	assert.Equal(t, "Jane", info.MainContactNameRoom)
	assert.True(t, info.PetsAllowed)

	v, err = DecodeValue(StepInformationPolicies, nil)
	require.NoError(t, err)
	assert.Equal(t, []InformationPolicy{}, v)

	_, err = DecodeValue(StepHotel, []byte(`{"name":`))
	assert.Error(t, err)
}

func TestSession_JumpToOnlyMovesCursor(t *testing.T) {
	s := NewSession(ModeAdd, nil)
	require.NoError(t, s.Data.Set(StepHotel, HotelInfo{Name: "Seeblick"}))
	s.Completion.MarkComplete(StepHotel)
	s.IDs.HotelID = 42
	before := s.Clone()

	require.NoError(t, s.JumpTo(StepFoodBeverage))

	assert.Equal(t, StepFoodBeverage, s.ActiveStep)
	assert.Equal(t, before.IDs, s.IDs)
	assert.Equal(t, before.Completion, s.Completion)
	assert.Equal(t, CommittedAs[HotelInfo](before.Data, StepHotel), CommittedAs[HotelInfo](s.Data, StepHotel))
	assert.False(t, s.Data.HasCommitted(StepFoodBeverage))

	assert.ErrorIs(t, s.JumpTo(Step("spa")), ErrUnknownStep)
	assert.Equal(t, StepFoodBeverage, s.ActiveStep)

	assert.Equal(t, StepEventSpaces, s.Back())
}

func TestSession_Reset(t *testing.T) {
	s := NewSession(ModeAdd, Permissions{PermEditAll})
	s.ActiveStep = StepRoomHandling
	s.IDs = IDs{HotelID: 1, RoomConfigID: 2}
	require.NoError(t, s.Data.Set(StepHotel, HotelInfo{Name: "x"}))
	s.Completion.MarkComplete(StepHotel)
	id := s.ID

	s.Reset()

	assert.Equal(t, id, s.ID)
	assert.Equal(t, StepHotel, s.ActiveStep)
	assert.Equal(t, IDs{}, s.IDs)
	assert.False(t, s.Data.HasCommitted(StepHotel))
	done, total := s.Completion.Progress()
	assert.Equal(t, 0, done)
	assert.Equal(t, 8, total)
	assert.True(t, s.Permissions.Has(PermEditAll))
}

func TestSession_JSONRoundTrip(t *testing.T) {
	s := NewSession(ModeEdit, Permissions{PermEditWithApproval})
	s.ActiveStep = StepEventsInfo
	s.IDs = IDs{HotelID: 42, RoomConfigID: 7}
	require.NoError(t, s.Data.Set(StepHotel, HotelInfo{ID: 42, Name: "Seeblick", PetsAllowed: true}))
	require.NoError(t, s.Data.Set(StepRoomCategories, []RoomCategory{{ID: 3, CategoryName: "Double"}}))
	require.NoError(t, s.Data.SetLive(StepEventsInfo, EventsInfo{Contact: EventContact{ContactName: "Max"}}))
	s.Completion.MarkComplete(StepHotel)

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"createdHotelId":42`)

	var got Session
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, ModeEdit, got.Mode)
	assert.Equal(t, StepEventsInfo, got.ActiveStep)
	assert.Equal(t, s.IDs, got.IDs)
	assert.True(t, got.Completion.IsComplete(StepHotel))
	assert.True(t, got.Permissions.NeedsApproval())
	assert.Equal(t, CommittedAs[HotelInfo](s.Data, StepHotel), CommittedAs[HotelInfo](got.Data, StepHotel))
	assert.Equal(t, "Double", CommittedAs[[]RoomCategory](got.Data, StepRoomCategories)[0].CategoryName)
	assert.Equal(t, "Max", LiveAs[EventsInfo](got.Data, StepEventsInfo).Contact.ContactName)
	assert.False(t, got.Data.HasCommitted(StepEventsInfo))
	assert.Equal(t, StateIdle, got.State())
}

func TestSession_UnmarshalToleratesGaps(t *testing.T) {
	var s Session
	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc","activeStep":"spa","data":null}`), &s))

	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, StepHotel, s.ActiveStep)
	assert.NotNil(t, s.Data)
	assert.NotNil(t, s.Completion)
}

func TestPermissions(t *testing.T) {
	perms := ParsePermissions(" edit_with_approval, ,edit_all")
	assert.Equal(t, Permissions{PermEditWithApproval, PermEditAll}, perms)
	assert.False(t, perms.NeedsApproval())
	assert.True(t, Permissions{PermEditWithApproval}.NeedsApproval())
	assert.False(t, Permissions(nil).NeedsApproval())
	assert.Empty(t, ParsePermissions(""))
}
