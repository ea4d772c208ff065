package render

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardlink/internal/cardview"
	"cardlink/internal/models"
)

func viewModel(card *models.Card) *cardview.ViewModel {
	return &cardview.ViewModel{
		Card:   card,
		Theme:  card.ResolvedTheme(),
		Layout: card.ResolvedLayout(),
	}
}

func TestNewPage_EmptySectionsOmitted(t *testing.T) {
	card := &models.Card{ID: uuid.New(), Slug: "bare", IsPublished: true}

	for _, variant := range []string{VariantDesktop, VariantMobile} {
		p := NewPage(viewModel(card), "https://cards.example.com", variant)
		assert.Equal(t, Sections{}, p.Sections(), variant)
		assert.Equal(t, "Professional", p.Title)
		assert.Empty(t, p.Subtitle)
	}
}

func TestNewPage_VariantParity(t *testing.T) {
	card := &models.Card{
		ID:       uuid.New(),
		Slug:     "jane",
		Title:    "jane Doe",
		Position: "CTO",
		Company:  "Acme",
		Email:    "jane@acme.test",
		Phone:    "+1 555 0100",
		WhatsApp: "+1 (555) 0101",
		Website:  "acme.test",
		Address:  "1 Main St",
		MapLink:  "https://maps.example.com/?q=1+Main+St",
		Shape:    models.ShapeCircle,
	}
	vm := viewModel(card)
	vm.SocialLinks = []models.SocialLink{{Platform: "GitHub", Username: "jane", URL: "https://github.com/jane"}}
	vm.MediaItems = []models.MediaItem{{Type: models.MediaVideo, URL: "https://youtu.be/abc", Title: "Intro"}}
	vm.Reviews = []models.ReviewLink{{Title: "Google", ReviewURL: "https://g.page/r/acme"}}

	desktop := NewPage(vm, "https://cards.example.com/", VariantDesktop)
	mobile := NewPage(vm, "https://cards.example.com/", VariantMobile)

	assert.False(t, desktop.IsMobile())
	assert.True(t, mobile.IsMobile())

	// Both variants carry the same information.
	mobile.Variant = desktop.Variant
	assert.Equal(t, desktop, mobile)

	assert.Equal(t, Sections{Contact: true, Social: true, Media: true, Reviews: true}, desktop.Sections())
	assert.Equal(t, "CTO at Acme", desktop.Subtitle)
	assert.Equal(t, "J", desktop.Initial)
	assert.Equal(t, "https://cards.example.com/c/jane", desktop.CardURL)
	assert.Equal(t, "/c/jane/qr.png", desktop.QRCodeURL)
	assert.Equal(t, "rounded-full aspect-square", desktop.Classes.Shape)
	assert.Equal(t, "Inter, sans-serif", desktop.FontFamily())
	assert.Equal(t, models.DefaultTheme.Primary+"50", desktop.BorderColor())

	require.Len(t, desktop.Socials, 1)
	assert.Equal(t, "github", desktop.Socials[0].Icon)

	require.Len(t, desktop.Media, 1)
	assert.True(t, desktop.Media[0].Video.Embeddable())
	assert.Equal(t, "https://img.youtube.com/vi/abc/hqdefault.jpg", desktop.Media[0].ThumbnailURL)
	assert.Equal(t, "https://www.youtube.com/embed/abc", desktop.Media[0].Href())
}

func TestNewPage_UnknownVariantFallsBackToDesktop(t *testing.T) {
	card := &models.Card{Slug: "x"}
	p := NewPage(viewModel(card), "", "tablet")
	assert.Equal(t, VariantDesktop, p.Variant)
}

func TestNewPage_NonVideoMediaIsPlainLink(t *testing.T) {
	card := &models.Card{Slug: "x"}
	vm := viewModel(card)
	vm.MediaItems = []models.MediaItem{
		{Type: models.MediaImage, URL: "https://youtu.be/abc", ThumbnailURL: "https://cdn.example.com/t.png"},
		{Type: models.MediaVideo, URL: "https://example.com/clip.mp4"},
	}

	p := NewPage(vm, "", VariantDesktop)
	require.Len(t, p.Media, 2)
	for _, m := range p.Media {
		assert.False(t, m.Video.Embeddable())
		assert.Empty(t, m.ThumbnailURL, "stored thumbnails are not used for %s", m.Video.URL)
		assert.Equal(t, m.Video.URL, m.Href())
	}
}

func TestNewPage_VimeoHasPlaceholderThumbnail(t *testing.T) {
	vm := viewModel(&models.Card{Slug: "x"})
	vm.MediaItems = []models.MediaItem{{Type: models.MediaVideo, URL: "https://vimeo.com/76979871"}}

	p := NewPage(vm, "", VariantMobile)
	require.Len(t, p.Media, 1)
	assert.Empty(t, p.Media[0].ThumbnailURL)
	assert.Equal(t, "https://player.vimeo.com/video/76979871", p.Media[0].Href())
}

func TestSubtitle(t *testing.T) {
	tests := []struct {
		position, company, want string
	}{
		{"CTO", "Acme", "CTO at Acme"},
		{"CTO", "", "CTO"},
		{"", "Acme", "Acme"},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := Subtitle(tt.position, tt.company); got != tt.want {
			t.Errorf("Subtitle(%q, %q) = %q, want %q", tt.position, tt.company, got, tt.want)
		}
	}
}

func TestContactRows(t *testing.T) {
	card := &models.Card{
		Email:    "a@b.test",
		Address:  "Somewhere",
		WhatsApp: "+44 7700-900123",
		Website:  "https://site.test",
	}

	rows := ContactRows(card)
	require.Len(t, rows, 4)

	assert.Equal(t, ContactRow{Kind: ContactEmail, Label: "a@b.test", Href: "mailto:a@b.test"}, rows[0])
	assert.Equal(t, ContactRow{Kind: ContactAddress, Label: "Somewhere"}, rows[1], "address without map link is plain text")
	assert.Equal(t, "https://wa.me/447700900123", rows[2].Href)
	assert.Equal(t, "Send message", rows[2].Label)
	assert.Equal(t, "https://site.test", rows[3].Href)
	assert.True(t, rows[3].External)
}
