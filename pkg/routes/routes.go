// Package routes implements the route selector overlay.
//
// The selector shows a base image with one overlay per route. A sidebar
// lists the routes; hovering a button previews its overlay and clicking
// makes it the active one. Hover wins over the active selection and a new
// hover replaces the previous one immediately.
package routes

import (
	"strings"

	"github.com/matzehuels/sunburst/pkg/errors"
)

// Route is one selectable overlay.
type Route struct {
	ID  string `json:"id" toml:"id"`
	Src string `json:"src" toml:"src"`
	Alt string `json:"alt" toml:"alt"`
}

// DefaultBase is the image under every overlay. The stock images live
// in the viewer's asset directory.
const DefaultBase = "/assets/base.png"

// Defaults returns the three stock routes.
func Defaults() []Route {
	return []Route{
		{ID: "route1", Src: "/assets/route1.png", Alt: "Route 1 Image"},
		{ID: "route2", Src: "/assets/route2.png", Alt: "Route 2 Image"},
		{ID: "route3", Src: "/assets/route3.png", Alt: "Route 3 Image"},
	}
}

// Label returns the button text for a route id: "route2" becomes
// "Route 2" and "north" becomes "Route north".
func Label(id string) string {
	return "Route " + strings.Replace(id, "route", "", 1)
}

// Validate checks that every route has an id and image and that ids are
// unique.
func Validate(rs []Route) error {
	seen := make(map[string]bool, len(rs))
	for i, r := range rs {
		if strings.TrimSpace(r.ID) == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "route %d has no id", i)
		}
		if r.Src == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "route %s has no image", r.ID)
		}
		if seen[r.ID] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate route id %s", r.ID)
		}
		seen[r.ID] = true
	}
	return nil
}

// Selector tracks hover and active state. The zero value has no routes;
// use [NewSelector]. A Selector is not safe for concurrent use.
type Selector struct {
	routes []Route
	hover  string
	active string
}

// NewSelector returns a selector over rs with nothing hovered or active.
func NewSelector(rs []Route) *Selector {
	return &Selector{routes: rs}
}

// Routes returns the routes in display order.
func (s *Selector) Routes() []Route { return s.routes }

// Enter marks id as hovered. Unknown ids are ignored.
func (s *Selector) Enter(id string) {
	if s.has(id) {
		s.hover = id
	}
}

// Leave clears the hover.
func (s *Selector) Leave() { s.hover = "" }

// Click makes id the active route. Unknown ids are ignored.
func (s *Selector) Click(id string) {
	if s.has(id) {
		s.active = id
	}
}

// Active returns the clicked route id, or "".
func (s *Selector) Active() string { return s.active }

// Current returns the id whose overlay is shown: the hovered route if
// any, else the active one, else "".
func (s *Selector) Current() string {
	if s.hover != "" {
		return s.hover
	}
	return s.active
}

// Shown reports whether the overlay of id is visible.
func (s *Selector) Shown(id string) bool {
	return id != "" && s.Current() == id
}

func (s *Selector) has(id string) bool {
	for _, r := range s.routes {
		if r.ID == id {
			return true
		}
	}
	return false
}
