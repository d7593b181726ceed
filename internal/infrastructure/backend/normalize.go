package backend

import (
	"strconv"

	"github.com/vadesa1/stans-events-web/domain"
)

// eventWire accepts both event wire shapes at once: the flat listing shape
// (venue/date/image_url at the top level) and the provider shape (nested
// dates, _embedded venues, images array). normalizeEvent collapses whichever
// fields arrived into the one canonical domain.Event.
type eventWire struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Venue       string             `json:"venue"`
	Date        string             `json:"date"`
	Dates       *domain.EventDates `json:"dates"`
	Latitude    float64            `json:"latitude"`
	Longitude   float64            `json:"longitude"`
	Category    string             `json:"category"`
	Source      string             `json:"source"`
	ImageURL    string             `json:"image_url"`
	Description string             `json:"description"`
	Info        string             `json:"info"`
	Address     string             `json:"address"`
	City        string             `json:"city"`
	State       string             `json:"state"`

	Images []struct {
		URL string `json:"url"`
	} `json:"images"`

	Embedded *struct {
		Venues []wireVenue `json:"venues"`
	} `json:"_embedded"`
}

type wireVenue struct {
	Name     string `json:"name"`
	Location struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"location"`
	Address struct {
		Line1 string `json:"line1"`
	} `json:"address"`
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	State struct {
		Name      string `json:"name"`
		StateCode string `json:"stateCode"`
	} `json:"state"`
}

func normalizeEvent(w eventWire) domain.Event {
	ev := domain.Event{
		ID:           w.ID,
		Name:         w.Name,
		Venue:        w.Venue,
		VenueAddress: w.Address,
		City:         w.City,
		State:        w.State,
		Date:         w.Date,
		Dates:        w.Dates,
		Latitude:     w.Latitude,
		Longitude:    w.Longitude,
		Category:     w.Category,
		Source:       w.Source,
		ImageURL:     w.ImageURL,
		Description:  w.Description,
	}

	if ev.Description == "" {
		ev.Description = w.Info
	}
	if ev.ImageURL == "" && len(w.Images) > 0 {
		ev.ImageURL = w.Images[0].URL
	}

	if w.Embedded != nil && len(w.Embedded.Venues) > 0 {
		v := w.Embedded.Venues[0]
		if ev.Venue == "" {
			ev.Venue = v.Name
		}
		if ev.VenueAddress == "" {
			ev.VenueAddress = v.Address.Line1
		}
		if ev.City == "" {
			ev.City = v.City.Name
		}
		if ev.State == "" {
			if v.State.StateCode != "" {
				ev.State = v.State.StateCode
			} else {
				ev.State = v.State.Name
			}
		}
		if ev.Latitude == 0 {
			if lat, err := strconv.ParseFloat(v.Location.Latitude, 64); err == nil {
				ev.Latitude = lat
			}
		}
		if ev.Longitude == 0 {
			if lon, err := strconv.ParseFloat(v.Location.Longitude, 64); err == nil {
				ev.Longitude = lon
			}
		}
	}

	return ev
}

func normalizeEvents(wires []eventWire) []domain.Event {
	events := make([]domain.Event, len(wires))
	for i, w := range wires {
		events[i] = normalizeEvent(w)
	}
	return events
}
