package api

import (
	"bytes"
	"fmt"
	"strconv"
)

// Flag is a boolean that the backend stores as 0/1. It decodes from 0/1,
// "0"/"1", true/false and null, and always encodes as a JSON boolean.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	switch s {
	case "", "null", "0", "false":
		*f = false
		return nil
	case "1", "true":
		*f = true
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid flag value %q", s)
	}
	*f = n != 0
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}

// Hotel is the base hotel record.
type Hotel struct {
	ID               int64  `json:"id,omitempty"`
	SystemHotelID    string `json:"system_hotel_id,omitempty"`
	Name             string `json:"name"`
	Street           string `json:"street"`
	PostalCode       string `json:"postal_code"`
	City             string `json:"city"`
	Country          string `json:"country"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Website          string `json:"website"`
	StarRating       int    `json:"star_rating"`
	TotalRooms       int    `json:"total_rooms"`
	CheckInTime      string `json:"check_in_time"`
	CheckOutTime     string `json:"check_out_time"`
	Currency         string `json:"currency"`
	Description      string `json:"description"`
	ParkingAvailable Flag   `json:"parking_available"`
	PetsAllowed      Flag   `json:"pets_allowed"`
}

// CreateHotelResponse is returned by POST /hotels.
type CreateHotelResponse struct {
	HotelID int64  `json:"hotelId"`
	Name    string `json:"name"`
	Success bool   `json:"success"`
}

// RoomConfig is the main room configuration of a hotel.
type RoomConfig struct {
	ID                      int64   `json:"id,omitempty"`
	HotelID                 int64   `json:"hotel_id"`
	MainContactNameRoom     string  `json:"main_contact_name_room"`
	MainContactPositionRoom string  `json:"main_contact_position_room"`
	ReceptionHours          string  `json:"reception_hours"`
	PhoneRoom               string  `json:"phone_room"`
	EmailRoom               string  `json:"email_room"`
	CheckInFrom             string  `json:"check_in_from"`
	CheckOutUntil           string  `json:"check_out_until"`
	EarlyCheckInFee         float64 `json:"early_check_in_fee"`
	LateCheckOutFee         float64 `json:"late_check_out_fee"`
	BreakfastIncluded       Flag    `json:"breakfast_included"`
	PetsAllowed             Flag    `json:"pets_allowed"`
	PetFee                  float64 `json:"pet_fee"`
	ExtraBedAvailable       Flag    `json:"extra_bed_available"`
	ExtraBedFee             float64 `json:"extra_bed_fee"`
}

// CreateRoomResponse is returned by POST /rooms.
type CreateRoomResponse struct {
	Data RoomRef `json:"data"`
}

// RoomRef identifies a created room configuration.
type RoomRef struct {
	RoomID  int64 `json:"roomId"`
	HotelID int64 `json:"hotelId,omitempty"`
}

// RoomCategory is one category of rooms under a room configuration.
type RoomCategory struct {
	ID               int64   `json:"id,omitempty"`
	CategoryName     string  `json:"category_name"`
	PMSName          string  `json:"pms_name"`
	NumRooms         int     `json:"num_rooms"`
	SizeSqm          float64 `json:"size_sqm"`
	BedType          string  `json:"bed_type"`
	MaxOccupancy     int     `json:"max_occupancy"`
	SurchargesUpsell string  `json:"surcharges_upsell"`
	RoomFeatures     string  `json:"room_features"`
	AccessibleRoom   Flag    `json:"accessible_room"`
	ConnectingRooms  Flag    `json:"connecting_rooms"`
}

// AddCategoriesResponse is returned when categories are added to a room.
type AddCategoriesResponse struct {
	CreatedCategories []RoomCategory `json:"createdCategories"`
}

// RoomOperationalHandling holds revenue and housekeeping handling for rooms.
type RoomOperationalHandling struct {
	RevenueManagerName    string   `json:"revenue_manager_name"`
	RevenueContactDetails string   `json:"revenue_contact_details"`
	DemandCalendar        Flag     `json:"demand_calendar"`
	GroupHandlingContact  string   `json:"group_handling_contact"`
	GroupRequestMinRooms  int      `json:"group_request_min_rooms"`
	DepositRequired       Flag     `json:"deposit_required"`
	PaymentMethods        []string `json:"payment_methods"`
	ThirdPartyPayments    Flag     `json:"third_party_payments"`
	HousekeepingSchedule  string   `json:"housekeeping_schedule"`
	LostAndFoundDays      int      `json:"lost_and_found_days"`
}

// Event is the event department contact record.
type Event struct {
	ID              int64  `json:"id,omitempty"`
	HotelID         int64  `json:"hotel_id"`
	ContactName     string `json:"contact_name"`
	ContactPhone    string `json:"contact_phone"`
	ContactEmail    string `json:"contact_email"`
	ContactPosition string `json:"contact_position"`
}

// CreateEventResponse is returned by POST /events.
type CreateEventResponse struct {
	EventID int64 `json:"eventId"`
}

// EventBooking describes how event bookings are taken.
type EventBooking struct {
	HasOptions          Flag   `json:"has_options"`
	AllowsOverbooking   Flag   `json:"allows_overbooking"`
	RoomsOnlyAllowed    Flag   `json:"rooms_only_allowed"`
	LastMinuteLeadTime  string `json:"last_minute_lead_time"`
	ContractedCompanies string `json:"contracted_companies"`
}

// EventOperations describes event day operations.
type EventOperations struct {
	HasOverflowRooms    Flag   `json:"has_overflow_rooms"`
	LeadTimeDays        int    `json:"lead_time_days"`
	SoldOutDates        string `json:"sold_out_dates"`
	CoffeeBreakLocation string `json:"coffee_break_location"`
	TechSupportOnSite   Flag   `json:"tech_support_on_site"`
}

// EventFinancials describes deposits, payments and commissions.
type EventFinancials struct {
	RequiresDeposit Flag     `json:"requires_deposit"`
	DepositRules    string   `json:"deposit_rules"`
	PaymentMethods  []string `json:"payment_methods"`
	InvoiceHandling string   `json:"invoice_handling"`
	CommissionRules string   `json:"commission_rules"`
}

// EventEquipment lists the technical equipment available for events.
type EventEquipment struct {
	BeamerCount     int    `json:"beamer_count"`
	MicrophoneCount int    `json:"microphone_count"`
	FlipchartCount  int    `json:"flipchart_count"`
	PodiumAvailable Flag   `json:"podium_available"`
	WifiSpeed       string `json:"wifi_speed"`
}

// EventSpace is one bookable event room.
type EventSpace struct {
	ID                int64   `json:"id,omitempty"`
	Name              string  `json:"name"`
	AreaSqm           float64 `json:"area_sqm"`
	CeilingHeightM    float64 `json:"ceiling_height_m"`
	Daylight          Flag    `json:"daylight"`
	CapacityTheater   int     `json:"capacity_theater"`
	CapacityBanquet   int     `json:"capacity_banquet"`
	CapacityClassroom int     `json:"capacity_classroom"`
	RentalPricePerDay float64 `json:"rental_price_per_day"`
}

// FoodBeverage is the F&B detail aggregate of a hotel.
type FoodBeverage struct {
	FBContactName        string   `json:"fb_contact_name"`
	FBContactPhone       string   `json:"fb_contact_phone"`
	FBContactEmail       string   `json:"fb_contact_email"`
	RestaurantCount      int      `json:"restaurant_count"`
	BarCount             int      `json:"bar_count"`
	BreakfastStart       string   `json:"breakfast_start"`
	BreakfastEnd         string   `json:"breakfast_end"`
	BreakfastPrice       float64  `json:"breakfast_price"`
	RoomServiceAvailable Flag     `json:"room_service_available"`
	RoomServiceHours     string   `json:"room_service_hours"`
	DietaryOptions       []string `json:"dietary_options"`
}

// InformationPolicy is one policy document with its items.
type InformationPolicy struct {
	SystemHotelID string       `json:"system_hotel_id"`
	Type          string       `json:"type"`
	Items         []PolicyItem `json:"items"`
}

// PolicyItem is a single entry within an information policy.
type PolicyItem struct {
	Title       string         `json:"title"`
	IsCondition Flag           `json:"is_condition"`
	Details     []PolicyDetail `json:"details"`
}

// PolicyDetail is a name/description pair under a policy item.
type PolicyDetail struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SubmitChangesRequest routes a change set into the approval workflow.
type SubmitChangesRequest struct {
	EntityID     int64  `json:"entity_id"`
	EntityType   string `json:"entity_type"`
	NewData      any    `json:"new_data"`
	OriginalData any    `json:"original_data"`
}

// AssignFilesResponse is returned when temporary uploads are reassigned.
type AssignFilesResponse struct {
	UpdatedCount int `json:"updatedCount"`
}

// HotelAggregate bundles a hotel with all of its sub-resources. Every section
// may be absent.
type HotelAggregate struct {
	Hotel           *Hotel                   `json:"hotel"`
	Rooms           *RoomAggregate           `json:"rooms"`
	RoomOperational *RoomOperationalHandling `json:"roomOperational"`
	Events          *EventAggregate          `json:"events"`
	FoodBeverage    *FoodBeverage            `json:"foodBeverage"`
}

// RoomAggregate is the main room configuration plus its categories.
type RoomAggregate struct {
	Room       *RoomConfig    `json:"room"`
	Categories []RoomCategory `json:"categories"`
}

// EventAggregate is an event contact record plus its sub-records.
type EventAggregate struct {
	Event      *Event           `json:"event"`
	Booking    *EventBooking    `json:"booking"`
	Operations *EventOperations `json:"operations"`
	Financials *EventFinancials `json:"financials"`
	Equipment  *EventEquipment  `json:"equipment"`
	Spaces     []EventSpace     `json:"spaces"`
}
