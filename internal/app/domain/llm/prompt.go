package llm

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/domain/content"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
)

const systemPrompt = "You are a travel expert that creates detailed, actionable travel itineraries. " +
	"Always respond with valid JSON only."

var styleHints = map[models.TravelStyle]string{
	models.StyleBudget:    "keep costs low, favour street food, free sights and public transport",
	models.StyleLuxury:    "favour high-end hotels, fine dining and private experiences",
	models.StyleFoodie:    "build each day around memorable places to eat and drink",
	models.StyleAdventure: "favour outdoor activities, hikes and adrenaline",
	models.StyleRelaxed:   "keep days light with plenty of downtime",
	models.StyleFamily:    "choose kid-friendly stops and keep travel between them short",
}

const extractionTemplate = `You are a travel expert AI that converts social media travel content into detailed, actionable trip itineraries.

Given the following content from a travel video/post, extract and create a comprehensive travel itinerary.

CONTENT:
Platform: %s
Creator: %s
Title: %s
Description: %s
%s

USER PREFERENCES:
Duration: %s
Style: %s

YOUR TASK:
1. Identify the destination(s) mentioned
2. Extract ALL specific places mentioned (restaurants, attractions, hotels, activities)
3. Organize them into a logical day-by-day itinerary
4. Add helpful context and tips based on your knowledge
5. Fill in gaps with relevant recommendations that match the vibe of the original content

IMPORTANT GUIDELINES:
- Be specific with location names and addresses when possible
- Include a mix of the creator's recommendations AND your own relevant additions
- Provide practical tips (best times to visit, what to order, how to get there)
- Match the energy/vibe of the original content (if it's budget travel, keep it budget-friendly)
- If the content mentions a specific neighborhood or area, include other nearby gems
- Include local phrases if relevant to the destination
- Add packing tips specific to the destination

Respond in the following JSON format:
{
    "destination": "City, Country",
    "duration_days": <number>,
    "summary": "2-3 sentence overview of the trip",
    "vibe": "Short description like 'Adventure & Culture' or 'Foodie Paradise'",
    "best_time_to_visit": "Season or months",
    "estimated_budget": "Budget range per day",
    "days": [
        {
            "day": 1,
            "title": "Catchy title for the day",
            "locations": [
                {
                    "name": "Place name",
                    "type": "restaurant|attraction|hotel|activity|neighborhood",
                    "description": "What it is and why it's special",
                    "address": "Address if known",
                    "price_level": "$|$$|$$$|$$$$",
                    "tips": "Insider tip",
                    "booking_url": "Reservation or ticket link if mentioned"
                }
            ],
            "notes": "Optional day-level notes"
        }
    ],
    "packing_tips": ["tip1", "tip2"],
    "local_phrases": [
        {"phrase": "local phrase", "meaning": "English meaning"}
    ]
}

Ensure your response is valid JSON only, no additional text.`

// BuildPrompt renders the extraction prompt for c.
func BuildPrompt(c *content.Content, duration *int, preferences *string) string {
	transcript := ""
	if c.Transcript != "" {
		transcript = "Transcript/Captions:\n" + c.Transcript
	}

	return fmt.Sprintf(extractionTemplate,
		orDefault(string(c.Platform), "unknown"),
		orDefault(c.Creator, "unknown"),
		c.Title,
		c.Description,
		transcript,
		durationInstruction(duration),
		styleInstruction(preferences),
	)
}

func durationInstruction(duration *int) string {
	if duration == nil || *duration <= 0 {
		return "Infer appropriate duration from content (typically 3-7 days)"
	}
	return fmt.Sprintf("Create a %d-day itinerary", *duration)
}

func styleInstruction(preferences *string) string {
	if preferences == nil || strings.TrimSpace(*preferences) == "" {
		return "Match the style/vibe of the original content"
	}
	if style, ok := models.ParseTravelStyle(*preferences); ok {
		return fmt.Sprintf("Style preferences: %s (%s)", style.Label(), styleHints[style])
	}
	return "Style preferences: " + *preferences
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
