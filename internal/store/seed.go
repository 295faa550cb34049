package store

import (
	"time"

	"smartwaste-backend/internal/model"
)

// SeedUser is the profile used until the user is changed by scheduling.
func SeedUser() model.UserProfile {
	return model.UserProfile{
		ID:            "u1",
		Name:          "Kwame Asante",
		Phone:         "+233 24 123 4567",
		Email:         "kwame.asante@gmail.com",
		Address:       "15 Independence Ave",
		Area:          "East Legon, Accra",
		TotalPickups:  47,
		WasteRecycled: 128,
		EcoPoints:     2340,
	}
}

// SeedPickups returns the default pickup history, most recent first.
func SeedPickups() []model.Pickup {
	return []model.Pickup{
		{
			ID:            "p1",
			WasteType:     model.WasteRecyclable,
			Status:        model.StatusInProgress,
			ScheduledDate: "2025-01-15",
			TimeSlot:      "8:00 AM - 10:00 AM",
			Location:      "East Legon",
			Address:       "15 Independence Ave, East Legon",
			Amount:        15,
			PaymentMethod: "MTN MoMo",
			DriverName:    "Kofi Mensah",
			DriverPhone:   "+233 20 987 6543",
			DriverRating:  4.8,
			CreatedAt:     mustTime("2025-01-14T10:30:00Z"),
		},
		{
			ID:            "p2",
			WasteType:     model.WasteGeneral,
			Status:        model.StatusConfirmed,
			ScheduledDate: "2025-01-16",
			TimeSlot:      "10:00 AM - 12:00 PM",
			Location:      "Airport Residential",
			Address:       "32 Airport Bypass Road",
			Amount:        25,
			PaymentMethod: "Vodafone Cash",
			DriverName:    "Ama Darko",
			DriverPhone:   "+233 27 555 1234",
			DriverRating:  4.6,
			CreatedAt:     mustTime("2025-01-14T14:00:00Z"),
		},
		{
			ID:            "p3",
			WasteType:     model.WasteOrganic,
			Status:        model.StatusCompleted,
			ScheduledDate: "2025-01-12",
			TimeSlot:      "6:00 AM - 8:00 AM",
			Location:      "Osu",
			Address:       "7 Oxford Street, Osu",
			Amount:        20,
			PaymentMethod: "MTN MoMo",
			DriverName:    "Yaw Boateng",
			DriverRating:  4.9,
			Notes:         "Garden waste and food scraps",
			CreatedAt:     mustTime("2025-01-11T08:00:00Z"),
		},
		{
			ID:            "p4",
			WasteType:     model.WasteEWaste,
			Status:        model.StatusCompleted,
			ScheduledDate: "2025-01-10",
			TimeSlot:      "2:00 PM - 4:00 PM",
			Location:      "Cantonments",
			Address:       "19 Cantonments Road",
			Amount:        40,
			PaymentMethod: "AirtelTigo Money",
			DriverName:    "Abena Serwah",
			DriverRating:  4.7,
			Notes:         "Old monitors and keyboards",
			CreatedAt:     mustTime("2025-01-09T16:30:00Z"),
		},
		{
			ID:            "p5",
			WasteType:     model.WasteHazardous,
			Status:        model.StatusCompleted,
			ScheduledDate: "2025-01-08",
			TimeSlot:      "10:00 AM - 12:00 PM",
			Location:      "Labone",
			Address:       "5 Labone Crescent",
			Amount:        60,
			PaymentMethod: "MTN MoMo",
			DriverName:    "Kofi Mensah",
			DriverRating:  4.8,
			Notes:         "Paint cans and batteries",
			CreatedAt:     mustTime("2025-01-07T09:00:00Z"),
		},
		{
			ID:            "p6",
			WasteType:     model.WasteRecyclable,
			Status:        model.StatusCompleted,
			ScheduledDate: "2025-01-06",
			TimeSlot:      "8:00 AM - 10:00 AM",
			Location:      "East Legon",
			Address:       "15 Independence Ave, East Legon",
			Amount:        15,
			PaymentMethod: "MTN MoMo",
			DriverName:    "Yaw Boateng",
			DriverRating:  4.9,
			CreatedAt:     mustTime("2025-01-05T11:00:00Z"),
		},
		{
			ID:            "p7",
			WasteType:     model.WasteGeneral,
			Status:        model.StatusCompleted,
			ScheduledDate: "2025-01-04",
			TimeSlot:      "6:00 AM - 8:00 AM",
			Location:      "East Legon",
			Address:       "15 Independence Ave, East Legon",
			Amount:        25,
			PaymentMethod: "Vodafone Cash",
			CreatedAt:     mustTime("2025-01-03T07:00:00Z"),
		},
		{
			ID:            "p8",
			WasteType:     model.WasteMedical,
			Status:        model.StatusCompleted,
			ScheduledDate: "2025-01-02",
			TimeSlot:      "4:00 PM - 6:00 PM",
			Location:      "Ridge",
			Address:       "10 Ridge Hospital Road",
			Amount:        55,
			PaymentMethod: "MTN MoMo",
			DriverName:    "Ama Darko",
			DriverRating:  4.6,
			Notes:         "Expired medicines",
			CreatedAt:     mustTime("2025-01-01T17:00:00Z"),
		},
		{
			ID:            "p9",
			WasteType:     model.WasteOrganic,
			Status:        model.StatusCompleted,
			ScheduledDate: "2024-12-30",
			TimeSlot:      "8:00 AM - 10:00 AM",
			Location:      "Dzorwulu",
			Address:       "22 Dzorwulu Road",
			Amount:        20,
			PaymentMethod: "AirtelTigo Money",
			CreatedAt:     mustTime("2024-12-29T10:00:00Z"),
		},
		{
			ID:            "p10",
			WasteType:     model.WasteRecyclable,
			Status:        model.StatusCompleted,
			ScheduledDate: "2024-12-28",
			TimeSlot:      "10:00 AM - 12:00 PM",
			Location:      "East Legon",
			Address:       "15 Independence Ave, East Legon",
			Amount:        15,
			PaymentMethod: "MTN MoMo",
			CreatedAt:     mustTime("2024-12-27T12:00:00Z"),
		},
		{
			ID:            "p11",
			WasteType:     model.WasteGeneral,
			Status:        model.StatusCompleted,
			ScheduledDate: "2024-12-26",
			TimeSlot:      "6:00 AM - 8:00 AM",
			Location:      "Adabraka",
			Address:       "8 Adabraka Lane",
			Amount:        25,
			PaymentMethod: "Vodafone Cash",
			CreatedAt:     mustTime("2024-12-25T07:30:00Z"),
		},
		{
			ID:            "p12",
			WasteType:     model.WasteEWaste,
			Status:        model.StatusCompleted,
			ScheduledDate: "2024-12-22",
			TimeSlot:      "2:00 PM - 4:00 PM",
			Location:      "Spintex",
			Address:       "45 Spintex Road",
			Amount:        40,
			PaymentMethod: "MTN MoMo",
			Notes:         "Old printer and cables",
			CreatedAt:     mustTime("2024-12-21T15:00:00Z"),
		},
		{
			ID:            "p13",
			WasteType:     model.WasteOrganic,
			Status:        model.StatusCompleted,
			ScheduledDate: "2024-12-20",
			TimeSlot:      "8:00 AM - 10:00 AM",
			Location:      "Roman Ridge",
			Address:       "3 Roman Ridge Crescent",
			Amount:        20,
			PaymentMethod: "AirtelTigo Money",
			CreatedAt:     mustTime("2024-12-19T09:00:00Z"),
		},
		{
			ID:            "p14",
			WasteType:     model.WasteRecyclable,
			Status:        model.StatusCancelled,
			ScheduledDate: "2024-12-18",
			TimeSlot:      "10:00 AM - 12:00 PM",
			Location:      "East Legon",
			Address:       "15 Independence Ave, East Legon",
			Amount:        15,
			PaymentMethod: "MTN MoMo",
			CreatedAt:     mustTime("2024-12-17T11:00:00Z"),
		},
		{
			ID:            "p15",
			WasteType:     model.WasteHazardous,
			Status:        model.StatusCompleted,
			ScheduledDate: "2024-12-15",
			TimeSlot:      "12:00 PM - 2:00 PM",
			Location:      "Tema",
			Address:       "18 Community 1, Tema",
			Amount:        60,
			PaymentMethod: "Vodafone Cash",
			Notes:         "Chemical containers",
			CreatedAt:     mustTime("2024-12-14T13:00:00Z"),
		},
		{
			ID:            "p16",
			WasteType:     model.WasteGeneral,
			Status:        model.StatusCompleted,
			ScheduledDate: "2024-12-12",
			TimeSlot:      "6:00 AM - 8:00 AM",
			Location:      "Madina",
			Address:       "56 Madina Market Road",
			Amount:        25,
			PaymentMethod: "MTN MoMo",
			CreatedAt:     mustTime("2024-12-11T06:30:00Z"),
		},
		{
			ID:            "p17",
			WasteType:     model.WasteRecyclable,
			Status:        model.StatusCompleted,
			ScheduledDate: "2024-12-10",
			TimeSlot:      "8:00 AM - 10:00 AM",
			Location:      "Achimota",
			Address:       "12 Achimota Road",
			Amount:        15,
			PaymentMethod: "AirtelTigo Money",
			CreatedAt:     mustTime("2024-12-09T08:30:00Z"),
		},
		{
			ID:            "p18",
			WasteType:     model.WasteMedical,
			Status:        model.StatusCompleted,
			ScheduledDate: "2024-12-08",
			TimeSlot:      "4:00 PM - 6:00 PM",
			Location:      "Korle Bu",
			Address:       "2 Korle Bu Teaching Hospital Area",
			Amount:        55,
			PaymentMethod: "MTN MoMo",
			Notes:         "Syringes and bandages",
			CreatedAt:     mustTime("2024-12-07T17:00:00Z"),
		},
		{
			ID:            "p19",
			WasteType:     model.WasteEWaste,
			Status:        model.StatusCompleted,
			ScheduledDate: "2024-12-05",
			TimeSlot:      "10:00 AM - 12:00 PM",
			Location:      "Nima",
			Address:       "30 Nima Highway",
			Amount:        40,
			PaymentMethod: "Vodafone Cash",
			Notes:         "Broken phone screens",
			CreatedAt:     mustTime("2024-12-04T10:30:00Z"),
		},
		{
			ID:            "p20",
			WasteType:     model.WasteOrganic,
			Status:        model.StatusCompleted,
			ScheduledDate: "2024-12-02",
			TimeSlot:      "6:00 AM - 8:00 AM",
			Location:      "Dansoman",
			Address:       "14 Dansoman Estate",
			Amount:        20,
			PaymentMethod: "MTN MoMo",
			CreatedAt:     mustTime("2024-12-01T07:00:00Z"),
		},
	}
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
