package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardlink/internal/models"
)

func TestCardForm_Validate(t *testing.T) {
	tests := []struct {
		name    string
		form    CardForm
		wantErr string
	}{
		{"minimal valid", CardForm{Slug: "jane"}, ""},
		{"full valid", CardForm{
			Slug: "jane", Email: "jane@example.com", MapLink: "https://maps.example.com",
			Shape: models.ShapeCircle, Primary: "#3B82F6", Text: "#fff",
			Style: models.StyleCreative, Alignment: models.AlignLeft,
		}, ""},
		{"missing slug", CardForm{}, "slug"},
		{"reserved slug", CardForm{Slug: "admin"}, "slug"},
		{"bad email", CardForm{Slug: "jane", Email: "not-an-email"}, "email"},
		{"bad shape", CardForm{Slug: "jane", Shape: "triangle"}, "shape"},
		{"bad color", CardForm{Slug: "jane", Primary: "blue"}, "primary"},
		{"bad map link scheme", CardForm{Slug: "jane", MapLink: "javascript:alert(1)"}, "map_link"},
		{"bad alignment", CardForm{Slug: "jane", Alignment: "justify"}, "alignment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, FirstError(err), tt.wantErr)
		})
	}
}

func TestCardForm_Apply(t *testing.T) {
	card := &models.Card{Theme: &models.Theme{Primary: "#000000"}}

	CardForm{Slug: "jane", Title: "Jane"}.Apply(card)
	assert.Equal(t, "jane", card.Slug)
	assert.Nil(t, card.Theme, "clearing every color resets the theme")
	assert.Nil(t, card.Layout)

	CardForm{Slug: "jane", ThemeName: "Ocean Blue", Primary: "#3B82F6", Font: "Roboto"}.Apply(card)
	require.NotNil(t, card.Theme)
	assert.Equal(t, "Ocean Blue", card.Theme.Name)
	require.NotNil(t, card.Layout)
	assert.Equal(t, "Roboto", card.Layout.Font)
}

func TestSocialLinkForm_Validate(t *testing.T) {
	assert.NoError(t, SocialLinkForm{Platform: "GitHub", Username: "jane"}.Validate())
	assert.Error(t, SocialLinkForm{Platform: "MySpace", Username: "jane"}.Validate())
	assert.Error(t, SocialLinkForm{Platform: "GitHub"}.Validate())
}

func TestMediaAndReviewForms_Validate(t *testing.T) {
	assert.NoError(t, MediaItemForm{URL: "https://youtu.be/abc"}.Validate())
	assert.Error(t, MediaItemForm{URL: "ftp://example.com/a"}.Validate())
	assert.Error(t, MediaItemForm{Type: "audio", URL: "https://example.com"}.Validate())

	assert.NoError(t, ReviewLinkForm{Title: "Google", ReviewURL: "https://g.page/r/x"}.Validate())
	assert.Error(t, ReviewLinkForm{ReviewURL: "https://g.page/r/x"}.Validate())
}

func TestProfileForm_Validate(t *testing.T) {
	assert.NoError(t, ProfileForm{Name: "Jane", GlobalUsername: "jane.doe"}.Validate())
	assert.NoError(t, ProfileForm{}.Validate(), "empty global username clears it")
	assert.Error(t, ProfileForm{GlobalUsername: "jane doe"}.Validate())
}

func TestFirstError(t *testing.T) {
	assert.Empty(t, FirstError(nil))
	err := CardForm{Primary: "nope"}.Validate()
	// Fields are reported in sorted order.
	assert.Contains(t, FirstError(err), "primary")
}
