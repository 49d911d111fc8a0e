package ui

import "io"

const (
	DefaultBannerSrc = "https://www.instacart.com/company/wp-content/uploads/2022/11/cooking-statistics-hero.jpg"
	DefaultBannerAlt = "banner"
)

// NavBar is the fixed title bar with an inert search form.
type NavBar struct{}

// Render writes the navbar fragment.
func (NavBar) Render(w io.Writer) error { return render(w, "navbar", NavBar{}) }

// Footer is the fixed copyright line and social links.
type Footer struct{}

// Render writes the footer fragment.
func (Footer) Render(w io.Writer) error { return render(w, "footer", Footer{}) }

// Banner is the decorative image above the grid.
type Banner struct {
	Src string
	Alt string
}

// DefaultBanner returns the stock banner image.
func DefaultBanner() Banner {
	return Banner{Src: DefaultBannerSrc, Alt: DefaultBannerAlt}
}

// Render writes the banner fragment. Empty fields use the defaults.
func (b Banner) Render(w io.Writer) error { return render(w, "banner", b.withDefaults()) }

func (b Banner) withDefaults() Banner {
	d := DefaultBanner()
	if b.Src == "" {
		b.Src = d.Src
	}
	if b.Alt == "" {
		b.Alt = d.Alt
	}
	return b
}
