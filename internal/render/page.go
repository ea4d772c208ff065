package render

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"cardlink/internal/cardview"
	"cardlink/internal/models"
	"cardlink/internal/socials"
)

// Layout variants
const (
	VariantDesktop = "desktop"
	VariantMobile  = "mobile"
)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// Contact row kinds
const (
	ContactEmail    = "email"
	ContactPhone    = "phone"
	ContactWhatsApp = "whatsapp"
	ContactWebsite  = "website"
	ContactAddress  = "address"
)

// ContactRow is one line of the contact section. Href is empty for plain text rows.
type ContactRow struct {
	Kind     string
	Label    string
	Href     string
	External bool
}

// SocialTile is one entry of the social grid.
type SocialTile struct {
	Platform string
	Username string
	URL      string
	Icon     string
	Color    string
}

// MediaTile is one entry of the media grid. Tiles without a
// ThumbnailURL show a placeholder icon.
type MediaTile struct {
	Title        string
	Type         string
	Video        Video
	ThumbnailURL string
}

// Href is where the tile leads: the provider player for recognized
// videos, the original URL otherwise.
func (t MediaTile) Href() string {
	if t.Video.Embeddable() {
		return t.Video.EmbedURL
	}
	return t.Video.URL
}

// ReviewRow is one entry of the reviews list.
type ReviewRow struct {
	Title string
	URL   string
}

// Classes bundles the presentational classes derived from shape and layout.
type Classes struct {
	Shape     string
	Alignment string
	Style     string
}

// Page is the template model for a public card. Desktop and mobile layouts
// render the same Page, so they present the same information.
type Page struct {
	Slug      string
	CardURL   string
	QRCodeURL string
	Variant   string

	Title     string
	Subtitle  string
	Bio       string
	AvatarURL string
	Initial   string

	Theme   models.Theme
	Layout  models.Layout
	Classes Classes

	Contacts []ContactRow
	Socials  []SocialTile
	Media    []MediaTile
	Reviews  []ReviewRow
}

// Sections reports which conditional sections a page renders.
type Sections struct {
	Contact bool
	Social  bool
	Media   bool
	Reviews bool
}

// Sections returns the sections present on p. Empty sections are omitted.
func (p *Page) Sections() Sections {
	return Sections{
		Contact: len(p.Contacts) > 0,
		Social:  len(p.Socials) > 0,
		Media:   len(p.Media) > 0,
		Reviews: len(p.Reviews) > 0,
	}
}

// IsMobile returns true for the stacked mobile variant.
func (p *Page) IsMobile() bool {
	return p.Variant == VariantMobile
}

// FontFamily returns the CSS font-family value for the layout font.
// The value is unquoted so it passes the template CSS filter.
func (p *Page) FontFamily() string {
	return p.Layout.Font + ", sans-serif"
}

// BorderColor returns the primary color at reduced opacity.
func (p *Page) BorderColor() string {
	return p.Theme.Primary + "50"
}

// NewPage builds the template model for vm. baseURL is the public origin
// used for the share and QR links.
func NewPage(vm *cardview.ViewModel, baseURL, variant string) *Page {
	card := vm.Card
	if variant != VariantMobile {
		variant = VariantDesktop
	}

	cardURL := strings.TrimRight(baseURL, "/") + "/c/" + card.Slug
	p := &Page{
		Slug:      card.Slug,
		CardURL:   cardURL,
		QRCodeURL: "/c/" + card.Slug + "/qr.png",
		Variant:   variant,
		Title:     card.Title,
		Subtitle:  Subtitle(card.Position, card.Company),
		Bio:       card.Bio,
		AvatarURL: card.AvatarURL,
		Initial:   initial(card.Title),
		Theme:     vm.Theme,
		Layout:    vm.Layout,
		Classes: Classes{
			Shape:     ShapeClass(card.Shape),
			Alignment: AlignmentClass(vm.Layout.Alignment),
			Style:     StyleClass(vm.Layout.Style),
		},
		Contacts: ContactRows(card),
	}
	if p.Title == "" {
		p.Title = "Professional"
	}

	for _, l := range vm.SocialLinks {
		p.Socials = append(p.Socials, SocialTile{
			Platform: l.Platform,
			Username: l.Username,
			URL:      l.URL,
			Icon:     socials.Icon(l.Platform),
			Color:    socials.Color(l.Platform),
		})
	}
	for _, m := range vm.MediaItems {
		video := mediaVideo(m)
		p.Media = append(p.Media, MediaTile{
			Title:        m.Title,
			Type:         m.Type,
			Video:        video,
			ThumbnailURL: video.ThumbnailURL,
		})
	}
	for _, r := range vm.Reviews {
		p.Reviews = append(p.Reviews, ReviewRow{Title: r.Title, URL: r.ReviewURL})
	}

	return p
}

// Subtitle combines position and company as "Position at Company",
// or returns whichever one is set.
func Subtitle(position, company string) string {
	switch {
	case position != "" && company != "":
		return position + " at " + company
	case position != "":
		return position
	default:
		return company
	}
}

// ContactRows returns the contact rows for the non-empty contact fields.
func ContactRows(card *models.Card) []ContactRow {
	var rows []ContactRow
	if card.Email != "" {
		rows = append(rows, ContactRow{Kind: ContactEmail, Label: card.Email, Href: "mailto:" + card.Email})
	}
	if card.Address != "" {
		row := ContactRow{Kind: ContactAddress, Label: card.Address}
		if link := strings.TrimSpace(card.MapLink); link != "" {
			row.Href = link
			row.External = true
		}
		rows = append(rows, row)
	}
	if card.Phone != "" {
		rows = append(rows, ContactRow{Kind: ContactPhone, Label: card.Phone, Href: "tel:" + card.Phone})
	}
	if card.WhatsApp != "" {
		rows = append(rows, ContactRow{
			Kind:     ContactWhatsApp,
			Label:    "Send message",
			Href:     "https://wa.me/" + nonDigits.ReplaceAllString(card.WhatsApp, ""),
			External: true,
		})
	}
	if card.Website != "" {
		rows = append(rows, ContactRow{
			Kind:     ContactWebsite,
			Label:    card.Website,
			Href:     socials.EnsureScheme(card.Website),
			External: true,
		})
	}
	return rows
}

// mediaVideo resolves the playable form of a media item. Only videos are
// matched against providers; other items are shown as plain links.
func mediaVideo(m models.MediaItem) Video {
	if !m.IsVideo() {
		return Video{URL: m.URL}
	}
	return ResolveVideo(m.URL)
}

func initial(title string) string {
	r, _ := utf8.DecodeRuneInString(title)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}
