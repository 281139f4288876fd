package wizard

import "hotel-ob/internal/api"

// Field-by-field mapping between camelCase step values and snake_case wire
// records. The *ToWire functions build request payloads; the *FromWire
// functions are used by hydration.

func hotelToWire(h HotelInfo) api.Hotel {
	return api.Hotel{
		SystemHotelID:    h.SystemHotelID,
		Name:             h.Name,
		Street:           h.Street,
		PostalCode:       h.PostalCode,
		City:             h.City,
		Country:          h.Country,
		Phone:            h.Phone,
		Email:            h.Email,
		Website:          h.Website,
		StarRating:       h.StarRating,
		TotalRooms:       h.TotalRooms,
		CheckInTime:      h.CheckInTime,
		CheckOutTime:     h.CheckOutTime,
		Currency:         h.Currency,
		Description:      h.Description,
		ParkingAvailable: api.Flag(h.ParkingAvailable),
		PetsAllowed:      api.Flag(h.PetsAllowed),
	}
}

func hotelFromWire(h api.Hotel) HotelInfo {
	return HotelInfo{
		ID:               h.ID,
		SystemHotelID:    h.SystemHotelID,
		Name:             h.Name,
		Street:           h.Street,
		PostalCode:       h.PostalCode,
		City:             h.City,
		Country:          h.Country,
		Phone:            h.Phone,
		Email:            h.Email,
		Website:          h.Website,
		StarRating:       h.StarRating,
		TotalRooms:       h.TotalRooms,
		CheckInTime:      h.CheckInTime,
		CheckOutTime:     h.CheckOutTime,
		Currency:         h.Currency,
		Description:      h.Description,
		ParkingAvailable: bool(h.ParkingAvailable),
		PetsAllowed:      bool(h.PetsAllowed),
	}
}

func roomInfoToWire(r RoomInfo, hotelID int64) api.RoomConfig {
	return api.RoomConfig{
		HotelID:                 hotelID,
		MainContactNameRoom:     r.MainContactNameRoom,
		MainContactPositionRoom: r.MainContactPositionRoom,
		ReceptionHours:          r.ReceptionHours,
		PhoneRoom:               r.PhoneRoom,
		EmailRoom:               r.EmailRoom,
		CheckInFrom:             r.CheckInFrom,
		CheckOutUntil:           r.CheckOutUntil,
		EarlyCheckInFee:         r.EarlyCheckInFee,
		LateCheckOutFee:         r.LateCheckOutFee,
		BreakfastIncluded:       api.Flag(r.BreakfastIncluded),
		PetsAllowed:             api.Flag(r.PetsAllowed),
		PetFee:                  r.PetFee,
		ExtraBedAvailable:       api.Flag(r.ExtraBedAvailable),
		ExtraBedFee:             r.ExtraBedFee,
	}
}

func roomInfoFromWire(r api.RoomConfig) RoomInfo {
	return RoomInfo{
		MainContactNameRoom:     r.MainContactNameRoom,
		MainContactPositionRoom: r.MainContactPositionRoom,
		ReceptionHours:          r.ReceptionHours,
		PhoneRoom:               r.PhoneRoom,
		EmailRoom:               r.EmailRoom,
		CheckInFrom:             r.CheckInFrom,
		CheckOutUntil:           r.CheckOutUntil,
		EarlyCheckInFee:         r.EarlyCheckInFee,
		LateCheckOutFee:         r.LateCheckOutFee,
		BreakfastIncluded:       bool(r.BreakfastIncluded),
		PetsAllowed:             bool(r.PetsAllowed),
		PetFee:                  r.PetFee,
		ExtraBedAvailable:       bool(r.ExtraBedAvailable),
		ExtraBedFee:             r.ExtraBedFee,
	}
}

func categoriesToWire(cats []RoomCategory) []api.RoomCategory {
	out := make([]api.RoomCategory, 0, len(cats))
	for _, c := range cats {
		out = append(out, api.RoomCategory{
			ID:               c.ID,
			CategoryName:     c.CategoryName,
			PMSName:          c.PMSName,
			NumRooms:         c.NumRooms,
			SizeSqm:          c.SizeSqm,
			BedType:          c.BedType,
			MaxOccupancy:     c.MaxOccupancy,
			SurchargesUpsell: c.SurchargesUpsell,
			RoomFeatures:     c.RoomFeatures,
			AccessibleRoom:   api.Flag(c.AccessibleRoom),
			ConnectingRooms:  api.Flag(c.ConnectingRooms),
		})
	}
	return out
}

func categoriesFromWire(cats []api.RoomCategory) []RoomCategory {
	out := make([]RoomCategory, 0, len(cats))
	for _, c := range cats {
		out = append(out, RoomCategory{
			ID:               c.ID,
			CategoryName:     c.CategoryName,
			PMSName:          c.PMSName,
			NumRooms:         c.NumRooms,
			SizeSqm:          c.SizeSqm,
			BedType:          c.BedType,
			MaxOccupancy:     c.MaxOccupancy,
			SurchargesUpsell: c.SurchargesUpsell,
			RoomFeatures:     c.RoomFeatures,
			AccessibleRoom:   bool(c.AccessibleRoom),
			ConnectingRooms:  bool(c.ConnectingRooms),
		})
	}
	return out
}

func handlingToWire(h RoomHandling) api.RoomOperationalHandling {
	return api.RoomOperationalHandling{
		RevenueManagerName:    h.RevenueManagerName,
		RevenueContactDetails: h.RevenueContactDetails,
		DemandCalendar:        api.Flag(h.DemandCalendar),
		GroupHandlingContact:  h.GroupHandlingContact,
		GroupRequestMinRooms:  h.GroupRequestMinRooms,
		DepositRequired:       api.Flag(h.DepositRequired),
		PaymentMethods:        h.PaymentMethods,
		ThirdPartyPayments:    api.Flag(h.ThirdPartyPayments),
		HousekeepingSchedule:  h.HousekeepingSchedule,
		LostAndFoundDays:      h.LostAndFoundDays,
	}
}

func handlingFromWire(h api.RoomOperationalHandling) RoomHandling {
	return RoomHandling{
		RevenueManagerName:    h.RevenueManagerName,
		RevenueContactDetails: h.RevenueContactDetails,
		DemandCalendar:        bool(h.DemandCalendar),
		GroupHandlingContact:  h.GroupHandlingContact,
		GroupRequestMinRooms:  h.GroupRequestMinRooms,
		DepositRequired:       bool(h.DepositRequired),
		PaymentMethods:        h.PaymentMethods,
		ThirdPartyPayments:    bool(h.ThirdPartyPayments),
		HousekeepingSchedule:  h.HousekeepingSchedule,
		LostAndFoundDays:      h.LostAndFoundDays,
	}
}

func eventContactToWire(c EventContact, hotelID int64) api.Event {
	return api.Event{
		HotelID:         hotelID,
		ContactName:     c.ContactName,
		ContactPhone:    c.ContactPhone,
		ContactEmail:    c.ContactEmail,
		ContactPosition: c.ContactPosition,
	}
}

func bookingToWire(b EventBooking) api.EventBooking {
	return api.EventBooking{
		HasOptions:          api.Flag(b.HasOptions),
		AllowsOverbooking:   api.Flag(b.AllowsOverbooking),
		RoomsOnlyAllowed:    api.Flag(b.RoomsOnlyAllowed),
		LastMinuteLeadTime:  b.LastMinuteLeadTime,
		ContractedCompanies: b.ContractedCompanies,
	}
}

func operationsToWire(o EventOperations) api.EventOperations {
	return api.EventOperations{
		HasOverflowRooms:    api.Flag(o.HasOverflowRooms),
		LeadTimeDays:        o.LeadTimeDays,
		SoldOutDates:        o.SoldOutDates,
		CoffeeBreakLocation: o.CoffeeBreakLocation,
		TechSupportOnSite:   api.Flag(o.TechSupportOnSite),
	}
}

func financialsToWire(f EventFinancials) api.EventFinancials {
	return api.EventFinancials{
		RequiresDeposit: api.Flag(f.RequiresDeposit),
		DepositRules:    f.DepositRules,
		PaymentMethods:  f.PaymentMethods,
		InvoiceHandling: f.InvoiceHandling,
		CommissionRules: f.CommissionRules,
	}
}

func equipmentToWire(e EventEquipment) api.EventEquipment {
	return api.EventEquipment{
		BeamerCount:     e.BeamerCount,
		MicrophoneCount: e.MicrophoneCount,
		FlipchartCount:  e.FlipchartCount,
		PodiumAvailable: api.Flag(e.PodiumAvailable),
		WifiSpeed:       e.WifiSpeed,
	}
}

// eventsFromWire rebuilds the eventsInfo value. Absent sub-records stay empty.
func eventsFromWire(agg api.EventAggregate) EventsInfo {
	var info EventsInfo
	if e := agg.Event; e != nil {
		info.Contact = EventContact{
			ContactName:     e.ContactName,
			ContactPhone:    e.ContactPhone,
			ContactEmail:    e.ContactEmail,
			ContactPosition: e.ContactPosition,
		}
	}
	if b := agg.Booking; b != nil {
		info.Booking = EventBooking{
			HasOptions:          bool(b.HasOptions),
			AllowsOverbooking:   bool(b.AllowsOverbooking),
			RoomsOnlyAllowed:    bool(b.RoomsOnlyAllowed),
			LastMinuteLeadTime:  b.LastMinuteLeadTime,
			ContractedCompanies: b.ContractedCompanies,
		}
	}
	if o := agg.Operations; o != nil {
		info.Operations = EventOperations{
			HasOverflowRooms:    bool(o.HasOverflowRooms),
			LeadTimeDays:        o.LeadTimeDays,
			SoldOutDates:        o.SoldOutDates,
			CoffeeBreakLocation: o.CoffeeBreakLocation,
			TechSupportOnSite:   bool(o.TechSupportOnSite),
		}
	}
	if f := agg.Financials; f != nil {
		info.Financials = EventFinancials{
			RequiresDeposit: bool(f.RequiresDeposit),
			DepositRules:    f.DepositRules,
			PaymentMethods:  f.PaymentMethods,
			InvoiceHandling: f.InvoiceHandling,
			CommissionRules: f.CommissionRules,
		}
	}
	if e := agg.Equipment; e != nil {
		info.Equipment = EventEquipment{
			BeamerCount:     e.BeamerCount,
			MicrophoneCount: e.MicrophoneCount,
			FlipchartCount:  e.FlipchartCount,
			PodiumAvailable: bool(e.PodiumAvailable),
			WifiSpeed:       e.WifiSpeed,
		}
	}
	return info
}

func spacesToWire(spaces []EventSpace) []api.EventSpace {
	out := make([]api.EventSpace, 0, len(spaces))
	for _, s := range spaces {
		out = append(out, api.EventSpace{
			ID:                s.ID,
			Name:              s.Name,
			AreaSqm:           s.AreaSqm,
			CeilingHeightM:    s.CeilingHeightM,
			Daylight:          api.Flag(s.Daylight),
			CapacityTheater:   s.CapacityTheater,
			CapacityBanquet:   s.CapacityBanquet,
			CapacityClassroom: s.CapacityClassroom,
			RentalPricePerDay: s.RentalPricePerDay,
		})
	}
	return out
}

func spacesFromWire(spaces []api.EventSpace) []EventSpace {
	out := make([]EventSpace, 0, len(spaces))
	for _, s := range spaces {
		out = append(out, EventSpace{
			ID:                s.ID,
			Name:              s.Name,
			AreaSqm:           s.AreaSqm,
			CeilingHeightM:    s.CeilingHeightM,
			Daylight:          bool(s.Daylight),
			CapacityTheater:   s.CapacityTheater,
			CapacityBanquet:   s.CapacityBanquet,
			CapacityClassroom: s.CapacityClassroom,
			RentalPricePerDay: s.RentalPricePerDay,
		})
	}
	return out
}

func foodBeverageToWire(f FoodBeverage) api.FoodBeverage {
	return api.FoodBeverage{
		FBContactName:        f.FBContactName,
		FBContactPhone:       f.FBContactPhone,
		FBContactEmail:       f.FBContactEmail,
		RestaurantCount:      f.RestaurantCount,
		BarCount:             f.BarCount,
		BreakfastStart:       f.BreakfastStart,
		BreakfastEnd:         f.BreakfastEnd,
		BreakfastPrice:       f.BreakfastPrice,
		RoomServiceAvailable: api.Flag(f.RoomServiceAvailable),
		RoomServiceHours:     f.RoomServiceHours,
		DietaryOptions:       f.DietaryOptions,
	}
}

func foodBeverageFromWire(f api.FoodBeverage) FoodBeverage {
	return FoodBeverage{
		FBContactName:        f.FBContactName,
		FBContactPhone:       f.FBContactPhone,
		FBContactEmail:       f.FBContactEmail,
		RestaurantCount:      f.RestaurantCount,
		BarCount:             f.BarCount,
		BreakfastStart:       f.BreakfastStart,
		BreakfastEnd:         f.BreakfastEnd,
		BreakfastPrice:       f.BreakfastPrice,
		RoomServiceAvailable: bool(f.RoomServiceAvailable),
		RoomServiceHours:     f.RoomServiceHours,
		DietaryOptions:       f.DietaryOptions,
	}
}

func policyToWire(p InformationPolicy, systemHotelID string) api.InformationPolicy {
	items := make([]api.PolicyItem, 0, len(p.Items))
	for _, it := range p.Items {
		details := make([]api.PolicyDetail, 0, len(it.Details))
		for _, d := range it.Details {
			details = append(details, api.PolicyDetail{Name: d.Name, Description: d.Description})
		}
		items = append(items, api.PolicyItem{
			Title:       it.Title,
			IsCondition: api.Flag(it.IsCondition),
			Details:     details,
		})
	}
	return api.InformationPolicy{
		SystemHotelID: systemHotelID,
		Type:          p.Type,
		Items:         items,
	}
}
