package itinerary

import "github.com/FACorreiaa/tiktok-to-trip/internal/app/models"

// Demo returns a fresh copy of the fixed Tokyo sample served by the demo endpoint.
func Demo() *models.Itinerary {
	s := models.StringPtr
	return &models.Itinerary{
		Destination:     "Tokyo, Japan",
		DurationDays:    5,
		Summary:         "An incredible 5-day journey through Tokyo, blending ancient temples with cutting-edge technology, world-class cuisine, and hidden local gems.",
		Vibe:            "Culture & Culinary Adventure",
		BestTimeToVisit: s("March-May (cherry blossoms) or October-November (autumn colors)"),
		EstimatedBudget: s("$150-200/day (mid-range)"),
		SourceURL:       s("https://tiktok.com/@traveler/video/demo"),
		SourceCreator:   s("@tokyofoodie"),
		Days: []models.DayPlan{
			{
				Day:   1,
				Title: "Shibuya & Harajuku - Modern Tokyo",
				Notes: s("Start early at Meiji Shrine before the crowds, then explore Harajuku and Shibuya"),
				Locations: []models.Location{
					{
						Name:        "Shibuya Crossing",
						Type:        models.LocationAttraction,
						Description: s("The world's busiest pedestrian crossing - an iconic Tokyo experience"),
						Address:     s("Shibuya, Tokyo"),
						Tips:        s("Best viewed from Starbucks above or Shibuya Sky observation deck"),
					},
					{
						Name:        "Ichiran Ramen Shibuya",
						Type:        models.LocationRestaurant,
						Description: s("Famous solo-dining ramen experience with customizable noodles"),
						Address:     s("1-22-7 Jinnan, Shibuya"),
						PriceLevel:  s("$$"),
						Tips:        s("Go during off-peak hours (2-5pm) to avoid the queue"),
					},
					{
						Name:        "Takeshita Street",
						Type:        models.LocationAttraction,
						Description: s("Harajuku's famous pedestrian street full of quirky fashion and crepes"),
						Address:     s("Harajuku, Shibuya"),
					},
					{
						Name:        "Meiji Shrine",
						Type:        models.LocationAttraction,
						Description: s("Serene Shinto shrine surrounded by forest - perfect contrast to busy Harajuku"),
						Address:     s("1-1 Yoyogikamizonocho, Shibuya"),
					},
				},
			},
			{
				Day:   2,
				Title: "Asakusa & Akihabara - Old Meets New",
				Notes: s("Take the Sumida River water bus from Asakusa to see Tokyo from the water"),
				Locations: []models.Location{
					{
						Name:        "Senso-ji Temple",
						Type:        models.LocationAttraction,
						Description: s("Tokyo's oldest temple with the iconic Kaminarimon gate"),
						Address:     s("2-3-1 Asakusa, Taito"),
						Tips:        s("Arrive before 9am for photos without crowds"),
					},
					{
						Name:        "Nakamise Shopping Street",
						Type:        models.LocationAttraction,
						Description: s("Traditional shopping street leading to Senso-ji"),
						Tips:        s("Try the fresh melon pan and ningyo-yaki (small cakes)"),
					},
					{
						Name:        "Akihabara Electric Town",
						Type:        models.LocationAttraction,
						Description: s("Electronics, anime, and gaming paradise"),
						Address:     s("Akihabara, Chiyoda"),
					},
					{
						Name:        "Kanda Matsuya",
						Type:        models.LocationRestaurant,
						Description: s("100-year-old soba noodle shop - local favorite"),
						Address:     s("1-13 Kanda Sudacho, Chiyoda"),
						PriceLevel:  s("$"),
					},
				},
			},
			{
				Day:   3,
				Title: "Tsukiji & Ginza - Food & Luxury",
				Notes: s("Combine morning market visit with afternoon Ginza exploration"),
				Locations: []models.Location{
					{
						Name:        "Tsukiji Outer Market",
						Type:        models.LocationAttraction,
						Description: s("Food lover's paradise - fresh sushi, tamagoyaki, and street food"),
						Address:     s("Tsukiji, Chuo"),
						Tips:        s("Must try: fresh sushi breakfast, tamagoyaki, and strawberry daifuku"),
					},
					{
						Name:        "Sushi Dai",
						Type:        models.LocationRestaurant,
						Description: s("Legendary omakase experience - worth the wait"),
						PriceLevel:  s("$$$"),
						Tips:        s("Queue starts at 5am, expect 2-3 hour wait"),
					},
					{
						Name:        "Ginza District",
						Type:        models.LocationAttraction,
						Description: s("Upscale shopping and dining district"),
						Address:     s("Ginza, Chuo"),
					},
					{
						Name:        "teamLab Borderless",
						Type:        models.LocationAttraction,
						Description: s("Immersive digital art museum - absolutely stunning"),
						Address:     s("Azabudai Hills, Minato"),
						Tips:        s("Book tickets in advance, wear white clothes for better photos"),
					},
				},
			},
			{
				Day:   4,
				Title: "Day Trip - Nikko or Kamakura",
				Notes: s("Alternative: Visit Kamakura for the Great Buddha and beach vibes. Both are ~2 hours from Tokyo."),
				Locations: []models.Location{
					{
						Name:        "Nikko Toshogu Shrine",
						Type:        models.LocationAttraction,
						Description: s("UNESCO World Heritage site with ornate carvings and mountain scenery"),
						Address:     s("Nikko, Tochigi Prefecture"),
						Tips:        s("Get the Nikko Pass for discounted transport and entry"),
					},
					{
						Name:        "Shinkyo Bridge",
						Type:        models.LocationAttraction,
						Description: s("Sacred vermillion bridge over the Daiya River"),
					},
					{
						Name:        "Yuba (Tofu Skin) Lunch",
						Type:        models.LocationRestaurant,
						Description: s("Nikko specialty - silky tofu skin in various preparations"),
						PriceLevel:  s("$$"),
					},
				},
			},
			{
				Day:   5,
				Title: "Shinjuku & Departure",
				Notes: s("Leave time for last-minute shopping and getting to the airport"),
				Locations: []models.Location{
					{
						Name:        "Shinjuku Gyoen",
						Type:        models.LocationAttraction,
						Description: s("Beautiful garden perfect for a peaceful morning"),
						Address:     s("11 Naitomachi, Shinjuku"),
						Tips:        s("Best during cherry blossom or autumn season"),
					},
					{
						Name:        "Omoide Yokocho (Memory Lane)",
						Type:        models.LocationAttraction,
						Description: s("Atmospheric alley of tiny yakitori bars - old Tokyo vibes"),
						Address:     s("Nishi-Shinjuku, Shinjuku"),
						Tips:        s("Best experienced in the evening, but worth walking through anytime"),
					},
					{
						Name:        "Don Quijote Shinjuku",
						Type:        models.LocationAttraction,
						Description: s("Massive discount store for last-minute souvenirs"),
						Address:     s("1-16-5 Kabukicho, Shinjuku"),
						Tips:        s("Open 24 hours - tax-free shopping for tourists"),
					},
				},
			},
		},
		PackingTips: []string{
			"Comfortable walking shoes - you'll walk 15-20k steps daily",
			"Portable WiFi or SIM card - essential for navigation",
			"Small towel - many restrooms don't have hand dryers",
			"Cash - many small restaurants are cash-only",
			"Layers - weather can be unpredictable",
		},
		LocalPhrases: []models.Phrase{
			{Phrase: "Sumimasen", Meaning: "Excuse me / Sorry"},
			{Phrase: "Oishii", Meaning: "Delicious"},
			{Phrase: "Ikura desu ka?", Meaning: "How much is this?"},
			{Phrase: "Kanpai!", Meaning: "Cheers!"},
			{Phrase: "Arigatou gozaimasu", Meaning: "Thank you very much"},
		},
	}
}
