package renderer

import (
	"context"
	"fmt"
	"io"
	"strconv"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
)

// Form actions handled by the web frontend.
const (
	SubmitPath       = "/trip"
	DemoPath         = "/trip/demo"
	ResetPath        = "/reset"
	DismissErrorPath = "/error/dismiss"
	ExportPath       = "/export.txt"
)

// TogglePath is the action that flips one day card.
func TogglePath(day int) string {
	return "/days/" + strconv.Itoa(day) + "/toggle"
}

const (
	baseCardClass    = "rounded-xl border border-gray-200 bg-white p-4 shadow-sm"
	baseButtonClass  = "inline-flex items-center rounded-lg px-4 py-2 text-sm font-medium"
	primaryButton    = "bg-indigo-600 text-white hover:bg-indigo-700"
	secondaryButton  = "bg-white text-gray-700 border border-gray-300 hover:bg-gray-50"
	disabledButton   = "opacity-50 cursor-not-allowed hover:bg-indigo-600"
	inputClass       = "w-full rounded-lg border border-gray-300 px-3 py-2 text-sm"
	sectionTitleCls  = "text-lg font-semibold text-gray-900"
	mutedTextClass   = "text-sm text-gray-500"
	expandedCardCls  = "border-indigo-300 shadow-md"
	locationItemBase = "flex gap-3 rounded-lg p-3"
)

// htmlWriter keeps the first write error so components read top to bottom.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) open(tag string, attrs ...string) {
	h.raw("<" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		h.raw(" " + attrs[i] + `="` + templ.EscapeString(attrs[i+1]) + `"`)
	}
	h.raw(">")
}

func (h *htmlWriter) close(tag string) {
	h.raw("</" + tag + ">")
}

func (h *htmlWriter) element(tag, text string, attrs ...string) {
	h.open(tag, attrs...)
	h.text(text)
	h.close(tag)
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err == nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

// Page renders the whole document for a session snapshot.
func Page(state State) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<!DOCTYPE html>")
		h.open("html", "lang", "en")
		h.open("head")
		h.raw(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.element("title", pageTitle(state))
		h.raw(`<script src="https://cdn.tailwindcss.com"></script>`)
		h.close("head")
		h.open("body", "class", "min-h-screen bg-gray-50", "data-phase", state.Phase.String())
		h.open("main", "class", "mx-auto max-w-3xl space-y-6 px-4 py-10")
		h.open("header", "class", "text-center")
		h.element("h1", "TikTok to Trip", "class", "text-3xl font-bold text-gray-900")
		h.element("p", "Turn a travel video into a day-by-day itinerary.", "class", mutedTextClass)
		h.close("header")

		if state.Phase == PhaseError && state.Error != "" {
			h.component(ErrorBanner(state.Error))
		}
		if state.Phase == PhaseDisplaying && state.Itinerary != nil {
			h.component(ItineraryView(state))
		} else {
			h.component(TripForm(state))
		}

		h.close("main")
		h.close("body")
		h.close("html")
	})
}

func pageTitle(state State) string {
	if state.Itinerary != nil {
		return state.Itinerary.Destination + " | TikTok to Trip"
	}
	return "TikTok to Trip"
}

// TripForm is the URL, duration and travel style form plus the demo button.
// Every control is disabled while a request is in flight.
func TripForm(state State) templ.Component {
	return component(func(h *htmlWriter) {
		disabled := state.Loading()
		buttonClass := twmerge.Merge(baseButtonClass, primaryButton)
		if disabled {
			buttonClass = twmerge.Merge(buttonClass, disabledButton)
		}

		h.open("section", "id", "trip-form", "class", baseCardClass)
		h.open("form", "method", "post", "action", SubmitPath, "class", "space-y-4")
		if disabled {
			h.raw(`<fieldset disabled class="space-y-4">`)
		} else {
			h.raw(`<fieldset class="space-y-4">`)
		}

		h.element("label", "Video link", "for", "url", "class", "block text-sm font-medium text-gray-700")
		h.open("input", "id", "url", "name", "url", "type", "url", "required", "required",
			"placeholder", "https://www.tiktok.com/@creator/video/...", "value", state.Form.URL, "class", inputClass)

		h.element("label", "Trip length (days)", "for", "trip_duration", "class", "block text-sm font-medium text-gray-700")
		h.open("input", "id", "trip_duration", "name", "trip_duration", "type", "number",
			"min", strconv.Itoa(models.MinTripDurationDays), "max", strconv.Itoa(models.MaxTripDurationDays),
			"value", state.Form.Duration, "class", inputClass)

		h.element("label", "Travel style", "for", "preferences", "class", "block text-sm font-medium text-gray-700")
		h.open("select", "id", "preferences", "name", "preferences", "class", inputClass)
		h.raw(`<option value="">Any style</option>`)
		for _, style := range models.TravelStyles {
			if string(style) == state.Form.Preferences {
				h.open("option", "value", string(style), "selected", "selected")
			} else {
				h.open("option", "value", string(style))
			}
			h.text(style.Label())
			h.close("option")
		}
		h.close("select")

		label := "Create itinerary"
		if disabled {
			label = "Extracting..."
		}
		h.element("button", label, "type", "submit", "class", buttonClass)
		h.raw("</fieldset>")
		h.close("form")

		h.open("form", "method", "post", "action", DemoPath, "class", "mt-3")
		if disabled {
			h.raw(`<button type="submit" disabled class="` + templ.EscapeString(twmerge.Merge(baseButtonClass, secondaryButton, "opacity-50")) + `">`)
		} else {
			h.raw(`<button type="submit" class="` + templ.EscapeString(twmerge.Merge(baseButtonClass, secondaryButton)) + `">`)
		}
		h.text("Try the demo")
		h.close("button")
		h.close("form")
		h.close("section")
	})
}

// ErrorBanner is the dismissable inline error message.
func ErrorBanner(message string) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("div", "id", "error-banner", "role", "alert",
			"class", "flex items-start justify-between rounded-lg border border-red-200 bg-red-50 p-4 text-sm text-red-700")
		h.element("p", message, "class", "error-message")
		h.open("form", "method", "post", "action", DismissErrorPath)
		h.element("button", "Dismiss", "type", "submit", "class", "font-medium underline")
		h.close("form")
		h.close("div")
	})
}

// ItineraryView renders a loaded itinerary using the expansion map of state.
func ItineraryView(state State) templ.Component {
	return component(func(h *htmlWriter) {
		it := state.Itinerary
		h.open("article", "id", "itinerary", "class", "space-y-6")
		h.component(DestinationHeader(it))

		h.open("div", "id", "days", "class", "space-y-3")
		for _, day := range it.Days {
			h.component(DayCard(day, state.IsExpanded(day.Day)))
		}
		h.close("div")

		if len(it.PackingTips) > 0 {
			h.component(PackingTips(it.PackingTips))
		}
		if len(it.LocalPhrases) > 0 {
			h.component(LocalPhrases(it.LocalPhrases))
		}

		h.open("div", "class", "flex gap-3")
		h.element("a", "Copy as text", "id", "export-link", "href", string(templ.URL(ExportPath)),
			"class", twmerge.Merge(baseButtonClass, secondaryButton))
		h.open("form", "method", "post", "action", ResetPath)
		h.element("button", "Plan another trip", "type", "submit", "class", twmerge.Merge(baseButtonClass, primaryButton))
		h.close("form")
		h.close("div")
		h.close("article")
	})
}

// DestinationHeader shows destination, length, vibe and summary.
func DestinationHeader(it *models.Itinerary) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("header", "id", "destination", "class", baseCardClass)
		h.element("h2", it.Destination, "class", "text-2xl font-bold text-gray-900")
		h.open("p", "class", mutedTextClass)
		h.element("span", pluralDays(it.DurationDays), "class", "duration")
		if it.Vibe != "" {
			h.text(" · ")
			h.element("span", it.Vibe, "class", "vibe")
		}
		h.close("p")
		if it.Summary != "" {
			h.element("p", it.Summary, "class", "summary mt-2 text-gray-700")
		}
		if budget := models.Deref(it.EstimatedBudget); budget != "" {
			h.element("p", "Budget: "+budget, "class", "budget "+mutedTextClass)
		}
		if best := models.Deref(it.BestTimeToVisit); best != "" {
			h.element("p", "Best time to visit: "+best, "class", "best-time "+mutedTextClass)
		}
		if creator := models.Deref(it.SourceCreator); creator != "" {
			h.open("p", "class", "source "+mutedTextClass)
			h.text("From ")
			if src := models.Deref(it.SourceURL); src != "" {
				h.element("a", creator, "href", string(templ.URL(src)), "rel", "noopener", "target", "_blank", "class", "underline")
			} else {
				h.text(creator)
			}
			h.close("p")
		}
		h.close("header")
	})
}

// DayCard renders one day. A collapsed card shows only its title and stop count.
func DayCard(day models.DayPlan, expanded bool) templ.Component {
	return component(func(h *htmlWriter) {
		class := baseCardClass
		if expanded {
			class = twmerge.Merge(class, expandedCardCls)
		}

		h.open("section", "id", "day-"+strconv.Itoa(day.Day), "class", "day-card "+class,
			"data-day", strconv.Itoa(day.Day), "data-expanded", strconv.FormatBool(expanded))
		h.open("form", "method", "post", "action", TogglePath(day.Day))
		h.open("button", "type", "submit", "aria-expanded", strconv.FormatBool(expanded),
			"class", "flex w-full items-center justify-between text-left")
		h.element("h3", fmt.Sprintf("Day %d: %s", day.Day, day.Title), "class", "day-title "+sectionTitleCls)
		h.element("span", pluralStops(day.StopCount()), "class", "stop-count "+mutedTextClass)
		h.close("button")
		h.close("form")

		if expanded {
			if notes := models.Deref(day.Notes); notes != "" {
				h.element("p", notes, "class", "day-notes mt-2 text-sm text-gray-600")
			}
			h.open("ol", "class", "locations mt-3 space-y-2")
			for _, loc := range day.Locations {
				h.component(LocationItem(loc))
			}
			h.close("ol")
		}
		h.close("section")
	})
}

// LocationItem renders one stop with its icon and optional details.
func LocationItem(loc models.Location) templ.Component {
	return component(func(h *htmlWriter) {
		icon := Icon(loc.Type)
		h.open("li", "class", "location "+locationItemBase, "data-type", string(loc.Type.Kind()))
		h.element("span", icon.Glyph, "class", twmerge.Merge("icon flex h-8 w-8 items-center justify-center rounded-full", icon.Class), "aria-hidden", "true")
		h.open("div", "class", "min-w-0 flex-1")
		h.open("p", "class", "font-medium text-gray-900")
		h.element("span", loc.Name, "class", "location-name")
		h.text(" ")
		h.element("span", loc.Type.Label(), "class", "location-type "+mutedTextClass)
		h.close("p")

		if v := models.Deref(loc.Description); v != "" {
			h.element("p", v, "class", "description text-sm text-gray-700")
		}
		if v := models.Deref(loc.Address); v != "" {
			h.element("p", v, "class", "address "+mutedTextClass)
		}
		if v := models.Deref(loc.PriceLevel); v != "" {
			h.element("span", v, "class", "price-level mr-2 text-sm text-gray-600")
		}
		if loc.Rating != nil {
			h.element("span", fmt.Sprintf("★ %.1f", *loc.Rating), "class", "rating text-sm text-amber-600")
		}
		if v := models.Deref(loc.Tips); v != "" {
			h.element("p", "Tip: "+v, "class", "tips mt-1 text-sm text-indigo-700")
		}
		if v := models.Deref(loc.GoogleMapsURL); v != "" {
			h.element("a", "Open in Maps", "href", string(templ.URL(v)), "rel", "noopener", "target", "_blank",
				"class", "maps-link text-sm underline")
		}
		if v := models.Deref(loc.BookingURL); v != "" {
			h.element("a", "Book", "href", string(templ.URL(v)), "rel", "noopener", "target", "_blank",
				"class", "booking-link ml-3 text-sm underline")
		}
		h.close("div")
		h.close("li")
	})
}

// PackingTips lists the packing advice.
func PackingTips(tips []string) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("section", "id", "packing-tips", "class", baseCardClass)
		h.element("h3", "Packing tips", "class", sectionTitleCls)
		h.open("ul", "class", "mt-2 list-disc pl-5 text-sm text-gray-700")
		for _, tip := range tips {
			h.element("li", tip)
		}
		h.close("ul")
		h.close("section")
	})
}

// LocalPhrases lists phrase and meaning pairs.
func LocalPhrases(phrases []models.Phrase) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("section", "id", "local-phrases", "class", baseCardClass)
		h.element("h3", "Local phrases", "class", sectionTitleCls)
		h.open("dl", "class", "mt-2 grid grid-cols-2 gap-2 text-sm")
		for _, p := range phrases {
			h.element("dt", p.Phrase, "class", "font-medium text-gray-900")
			h.element("dd", p.Meaning, "class", "text-gray-600")
		}
		h.close("dl")
		h.close("section")
	})
}
