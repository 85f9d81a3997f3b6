// Package profile holds the static link-in-bio data: who the page belongs to
// and which outbound links it lists.
package profile

import "net/url"

// LinkKind tells the UI how to render and route a link.
type LinkKind string

const (
	// KindExternal opens the URL in a new tab.
	KindExternal LinkKind = "external"
	// KindCatalog switches to the embedded catalog view instead of
	// navigating anywhere.
	KindCatalog LinkKind = "catalog"
	// KindPromotions switches to the promotions view.
	KindPromotions LinkKind = "promotions"
)

// Link is one outbound entry on the landing screen.
type Link struct {
	ID       string
	Title    string
	URL      string
	Kind     LinkKind
	Featured bool
}

// Profile is the landing page identity block plus its links.
type Profile struct {
	Name     string
	Username string
	Bio      string
	Links    []Link
}

// Default returns the MidNight Studio profile. The WhatsApp contact link is
// built from the configured recipient number so the landing page and the
// order hand-off always target the same account.
func Default(whatsappNumber string) Profile {
	contact := url.URL{
		Scheme:   "https",
		Host:     "wa.me",
		Path:     "/" + whatsappNumber,
		RawQuery: url.Values{"text": {"Hola MidNight Studio! Vengo de tu LinkBio y quisiera hacer una consulta."}}.Encode(),
	}

	return Profile{
		Name:     "MidNight Studio",
		Username: "@MidNighttStudio",
		Bio:      "Creatividad sin límites 🎨 Estampados • Tazas • Fotos • Diseño digital hecho realidad ✨ Delivery & Pick up🛵.",
		Links: []Link{
			{ID: "1", Title: "Atencion WhatsApp", URL: contact.String(), Kind: KindExternal},
			{ID: "2", Title: "Catalogo", Kind: KindCatalog, Featured: true},
			{ID: "3", Title: "Promociones", Kind: KindPromotions},
			{ID: "4", Title: "Instagram", URL: "https://www.instagram.com/midnighttstudio/", Kind: KindExternal},
		},
	}
}
