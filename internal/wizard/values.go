package wizard

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/tiendc/go-deepcopy"
)

// HotelInfo is the value of the hotel step.
type HotelInfo struct {
	ID               int64  `json:"id,omitempty"`
	SystemHotelID    string `json:"systemHotelId"`
	Name             string `json:"name"`
	Street           string `json:"street"`
	PostalCode       string `json:"postalCode"`
	City             string `json:"city"`
	Country          string `json:"country"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Website          string `json:"website"`
	StarRating       int    `json:"starRating"`
	TotalRooms       int    `json:"totalRooms"`
	CheckInTime      string `json:"checkInTime"`
	CheckOutTime     string `json:"checkOutTime"`
	Currency         string `json:"currency"`
	Description      string `json:"description"`
	ParkingAvailable bool   `json:"parkingAvailable"`
	PetsAllowed      bool   `json:"petsAllowed"`
}

// RoomInfo is the value of the roomInfo step.
type RoomInfo struct {
	MainContactNameRoom     string  `json:"mainContactNameRoom"`
	MainContactPositionRoom string  `json:"mainContactPositionRoom"`
	ReceptionHours          string  `json:"receptionHours"`
	PhoneRoom               string  `json:"phoneRoom"`
	EmailRoom               string  `json:"emailRoom"`
	CheckInFrom             string  `json:"checkInFrom"`
	CheckOutUntil           string  `json:"checkOutUntil"`
	EarlyCheckInFee         float64 `json:"earlyCheckInFee"`
	LateCheckOutFee         float64 `json:"lateCheckOutFee"`
	BreakfastIncluded       bool    `json:"breakfastIncluded"`
	PetsAllowed             bool    `json:"petsAllowed"`
	PetFee                  float64 `json:"petFee"`
	ExtraBedAvailable       bool    `json:"extraBedAvailable"`
	ExtraBedFee             float64 `json:"extraBedFee"`
}

// RoomCategory is one entry of the roomCategories step.
type RoomCategory struct {
	ID               int64   `json:"id,omitempty"`
	CategoryName     string  `json:"categoryName"`
	PMSName          string  `json:"pmsName"`
	NumRooms         int     `json:"numRooms"`
	SizeSqm          float64 `json:"sizeSqm"`
	BedType          string  `json:"bedType"`
	MaxOccupancy     int     `json:"maxOccupancy"`
	SurchargesUpsell string  `json:"surchargesUpsell"`
	RoomFeatures     string  `json:"roomFeatures"`
	AccessibleRoom   bool    `json:"accessibleRoom"`
	ConnectingRooms  bool    `json:"connectingRooms"`
}

// RoomHandling is the value of the roomHandling step.
type RoomHandling struct {
	RevenueManagerName    string   `json:"revenueManagerName"`
	RevenueContactDetails string   `json:"revenueContactDetails"`
	DemandCalendar        bool     `json:"demandCalendar"`
	GroupHandlingContact  string   `json:"groupHandlingContact"`
	GroupRequestMinRooms  int      `json:"groupRequestMinRooms"`
	DepositRequired       bool     `json:"depositRequired"`
	PaymentMethods        []string `json:"paymentMethods"`
	ThirdPartyPayments    bool     `json:"thirdPartyPayments"`
	HousekeepingSchedule  string   `json:"housekeepingSchedule"`
	LostAndFoundDays      int      `json:"lostAndFoundDays"`
}

// EventsInfo is the value of the eventsInfo step: the event contact plus the
// four sub-records stored separately by the backend.
type EventsInfo struct {
	Contact    EventContact    `json:"contact"`
	Booking    EventBooking    `json:"booking"`
	Operations EventOperations `json:"operations"`
	Financials EventFinancials `json:"financials"`
	Equipment  EventEquipment  `json:"equipment"`
}

type EventContact struct {
	ContactName     string `json:"contactName"`
	ContactPhone    string `json:"contactPhone"`
	ContactEmail    string `json:"contactEmail"`
	ContactPosition string `json:"contactPosition"`
}

type EventBooking struct {
	HasOptions          bool   `json:"hasOptions"`
	AllowsOverbooking   bool   `json:"allowsOverbooking"`
	RoomsOnlyAllowed    bool   `json:"roomsOnlyAllowed"`
	LastMinuteLeadTime  string `json:"lastMinuteLeadTime"`
	ContractedCompanies string `json:"contractedCompanies"`
}

type EventOperations struct {
	HasOverflowRooms    bool   `json:"hasOverflowRooms"`
	LeadTimeDays        int    `json:"leadTimeDays"`
	SoldOutDates        string `json:"soldOutDates"`
	CoffeeBreakLocation string `json:"coffeeBreakLocation"`
	TechSupportOnSite   bool   `json:"techSupportOnSite"`
}

type EventFinancials struct {
	RequiresDeposit bool     `json:"requiresDeposit"`
	DepositRules    string   `json:"depositRules"`
	PaymentMethods  []string `json:"paymentMethods"`
	InvoiceHandling string   `json:"invoiceHandling"`
	CommissionRules string   `json:"commissionRules"`
}

type EventEquipment struct {
	BeamerCount     int    `json:"beamerCount"`
	MicrophoneCount int    `json:"microphoneCount"`
	FlipchartCount  int    `json:"flipchartCount"`
	PodiumAvailable bool   `json:"podiumAvailable"`
	WifiSpeed       string `json:"wifiSpeed"`
}

// EventSpace is one entry of the eventSpaces step.
type EventSpace struct {
	ID                int64   `json:"id,omitempty"`
	Name              string  `json:"name"`
	AreaSqm           float64 `json:"areaSqm"`
	CeilingHeightM    float64 `json:"ceilingHeightM"`
	Daylight          bool    `json:"daylight"`
	CapacityTheater   int     `json:"capacityTheater"`
	CapacityBanquet   int     `json:"capacityBanquet"`
	CapacityClassroom int     `json:"capacityClassroom"`
	RentalPricePerDay float64 `json:"rentalPricePerDay"`
}

// FoodBeverage is the value of the foodBeverage step.
type FoodBeverage struct {
	FBContactName        string   `json:"fbContactName"`
	FBContactPhone       string   `json:"fbContactPhone"`
	FBContactEmail       string   `json:"fbContactEmail"`
	RestaurantCount      int      `json:"restaurantCount"`
	BarCount             int      `json:"barCount"`
	BreakfastStart       string   `json:"breakfastStart"`
	BreakfastEnd         string   `json:"breakfastEnd"`
	BreakfastPrice       float64  `json:"breakfastPrice"`
	RoomServiceAvailable bool     `json:"roomServiceAvailable"`
	RoomServiceHours     string   `json:"roomServiceHours"`
	DietaryOptions       []string `json:"dietaryOptions"`
}

// InformationPolicy is one entry of the informationPolicies step.
type InformationPolicy struct {
	Type  string       `json:"type"`
	Items []PolicyItem `json:"items"`
}

type PolicyItem struct {
	Title       string         `json:"title"`
	IsCondition bool           `json:"isCondition"`
	Details     []PolicyDetail `json:"details"`
}

type PolicyDetail struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// EmptyValue returns the zero value held by step before anything is entered.
func EmptyValue(step Step) (any, error) {
	switch step {
	case StepHotel:
		return HotelInfo{}, nil
	case StepRoomInfo:
		return RoomInfo{}, nil
	case StepRoomCategories:
		return []RoomCategory{}, nil
	case StepRoomHandling:
		return RoomHandling{}, nil
	case StepEventsInfo:
		return EventsInfo{}, nil
	case StepEventSpaces:
		return []EventSpace{}, nil
	case StepFoodBeverage:
		return FoodBeverage{}, nil
	case StepInformationPolicies:
		return []InformationPolicy{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStep, step)
}

// DecodeValue decodes a camelCase JSON document into the value type of step.
// An empty document yields the step's empty value.
func DecodeValue(step Step, raw []byte) (any, error) {
	switch step {
	case StepHotel:
		return decodeAs[HotelInfo](raw)
	case StepRoomInfo:
		return decodeAs[RoomInfo](raw)
	case StepRoomCategories:
		return decodeAs[[]RoomCategory](raw)
	case StepRoomHandling:
		return decodeAs[RoomHandling](raw)
	case StepEventsInfo:
		return decodeAs[EventsInfo](raw)
	case StepEventSpaces:
		return decodeAs[[]EventSpace](raw)
	case StepFoodBeverage:
		return decodeAs[FoodBeverage](raw)
	case StepInformationPolicies:
		return decodeAs[[]InformationPolicy](raw)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStep, step)
}

func decodeAs[T any](raw []byte) (any, error) {
	var v T
	if len(raw) == 0 || string(raw) == "null" {
		return emptyOf(v), nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decoding step value: %w", err)
	}
	return emptyOf(v), nil
}

// emptyOf turns nil slices into empty ones so list steps never hold nil.
func emptyOf(v any) any {
	switch tv := v.(type) {
	case []RoomCategory:
		if tv == nil {
			return []RoomCategory{}
		}
	case []EventSpace:
		if tv == nil {
			return []EventSpace{}
		}
	case []InformationPolicy:
		if tv == nil {
			return []InformationPolicy{}
		}
	}
	return v
}

// stepOf reports which step a value type belongs to.
func stepOf(v any) (Step, bool) {
	switch v.(type) {
	case HotelInfo:
		return StepHotel, true
	case RoomInfo:
		return StepRoomInfo, true
	case []RoomCategory:
		return StepRoomCategories, true
	case RoomHandling:
		return StepRoomHandling, true
	case EventsInfo:
		return StepEventsInfo, true
	case []EventSpace:
		return StepEventSpaces, true
	case FoodBeverage:
		return StepFoodBeverage, true
	case []InformationPolicy:
		return StepInformationPolicies, true
	}
	return "", false
}

// cloneValue deep-copies a step value so stored values never share memory
// with callers or with each other.
func cloneValue(v any) (any, error) {
	switch tv := v.(type) {
	case HotelInfo:
		return cloneAs(tv)
	case RoomInfo:
		return cloneAs(tv)
	case []RoomCategory:
		return cloneAs(tv)
	case RoomHandling:
		return cloneAs(tv)
	case EventsInfo:
		return cloneAs(tv)
	case []EventSpace:
		return cloneAs(tv)
	case FoodBeverage:
		return cloneAs(tv)
	case []InformationPolicy:
		return cloneAs(tv)
	}
	return nil, fmt.Errorf("unsupported step value %T", v)
}

func cloneAs[T any](v T) (any, error) {
	var out T
	if err := deepcopy.Copy(&out, &v); err != nil {
		return nil, fmt.Errorf("copying step value: %w", err)
	}
	return emptyOf(out), nil
}
