// Package view models the micro-site's screen state as a small finite-state
// machine instead of the independent visibility booleans it replaces, plus
// the display-only theme flag.
package view

import "fmt"

// View identifies the currently visible screen.
type View string

const (
	// Links is the landing screen and the initial state.
	Links View = "links"
	// Catalog is the product browser.
	Catalog View = "catalog"
	// Promotions is the promo-only browser.
	Promotions View = "promotions"
)

// Parse maps a wire value to a View.
func Parse(s string) (View, error) {
	switch View(s) {
	case Links, Catalog, Promotions:
		return View(s), nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// CanGo reports whether a direct transition from v to target is allowed.
// Catalog and promotions are only reachable from the links screen, and both
// return there; there is no direct hop between the two browsers. Staying on
// the current view is always allowed.
func (v View) CanGo(target View) bool {
	if v == target {
		return true
	}
	switch v {
	case Links:
		return target == Catalog || target == Promotions
	case Catalog, Promotions:
		return target == Links
	}
	return false
}

// Go transitions to target, or errors when the transition is not allowed.
// Closing a browser view discards its cart and search state; that cleanup
// belongs to the caller, which owns the state in question.
func (v View) Go(target View) (View, error) {
	if !v.CanGo(target) {
		return v, fmt.Errorf("cannot go from %s to %s", v, target)
	}
	return target, nil
}

// Theme is the display-only dark/light flag. It never affects search, cart,
// or order logic.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// ParseTheme maps a wire value to a Theme, defaulting to Dark for anything
// unrecognised.
func ParseTheme(s string) Theme {
	if Theme(s) == Light {
		return Light
	}
	return Dark
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}
