package validation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"cardlink/internal/models"
	"cardlink/internal/socials"
)

// httpURL is an ozzo rule wrapping ValidateURL.
var httpURL = ozzo.By(func(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if ok, msg := ValidateURL(s); !ok {
		return errors.New(msg)
	}
	return nil
})

var slugRule = ozzo.By(func(value any) error {
	s, _ := value.(string)
	if ReservedSlugs[s] {
		return fmt.Errorf("%q is reserved", s)
	}
	if !ValidateSlug(s) {
		return errors.New("may only contain lowercase letters, numbers, hyphens and underscores")
	}
	return nil
})

var fontPattern = regexp.MustCompile(`^[A-Za-z0-9 -]+$`)

var hexColor = ozzo.Match(HexColorPattern).Error("must be a hex color like #3B82F6")

// CardForm is the owner-submitted card editor form.
type CardForm struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Bio         string `json:"bio"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	WhatsApp    string `json:"whatsapp"`
	Website     string `json:"website"`
	Address     string `json:"address"`
	MapLink     string `json:"map_link"`
	Shape       string `json:"shape"`
	ThemeName   string `json:"theme_name"`
	Primary     string `json:"primary"`
	Secondary   string `json:"secondary"`
	Background  string `json:"background"`
	Text        string `json:"text"`
	Style       string `json:"style"`
	Alignment   string `json:"alignment"`
	Font        string `json:"font"`
	IsPublished bool   `json:"is_published"`
}

func (f CardForm) Validate() error {
	return ozzo.ValidateStruct(&f,
		ozzo.Field(&f.Slug, ozzo.Required.Error("slug is required"), slugRule),
		ozzo.Field(&f.Title, ozzo.Length(0, 120)),
		ozzo.Field(&f.Company, ozzo.Length(0, 120)),
		ozzo.Field(&f.Position, ozzo.Length(0, 120)),
		ozzo.Field(&f.Bio, ozzo.Length(0, 1000)),
		ozzo.Field(&f.Email, is.EmailFormat.Error("invalid email format")),
		ozzo.Field(&f.Phone, ozzo.Length(0, 40)),
		ozzo.Field(&f.WhatsApp, ozzo.Length(0, 40)),
		ozzo.Field(&f.MapLink, httpURL),
		ozzo.Field(&f.Shape, ozzo.In(models.ShapeRectangle, models.ShapeRounded, models.ShapeCircle, models.ShapeHexagon)),
		ozzo.Field(&f.Primary, hexColor),
		ozzo.Field(&f.Secondary, hexColor),
		ozzo.Field(&f.Background, hexColor),
		ozzo.Field(&f.Text, hexColor),
		ozzo.Field(&f.Style, ozzo.In(models.StyleModern, models.StyleClassic, models.StyleMinimal, models.StyleCreative)),
		ozzo.Field(&f.Alignment, ozzo.In(models.AlignLeft, models.AlignCenter, models.AlignRight)),
		ozzo.Field(&f.Font, ozzo.Length(0, 60), ozzo.Match(fontPattern).Error("may only contain letters, numbers, spaces and hyphens")),
	)
}

// Apply copies the form onto card. Theme and layout stay nil when no field of theirs was set.
func (f CardForm) Apply(card *models.Card) {
	card.Slug = f.Slug
	card.Title = f.Title
	card.Company = f.Company
	card.Position = f.Position
	card.Bio = f.Bio
	card.Email = f.Email
	card.Phone = f.Phone
	card.WhatsApp = f.WhatsApp
	card.Website = f.Website
	card.Address = f.Address
	card.MapLink = f.MapLink
	card.Shape = f.Shape
	card.IsPublished = f.IsPublished

	card.Theme = nil
	if f.Primary != "" || f.Secondary != "" || f.Background != "" || f.Text != "" {
		card.Theme = &models.Theme{
			Name:       f.ThemeName,
			Primary:    f.Primary,
			Secondary:  f.Secondary,
			Background: f.Background,
			Text:       f.Text,
		}
	}

	card.Layout = nil
	if f.Style != "" || f.Alignment != "" || f.Font != "" {
		card.Layout = &models.Layout{Style: f.Style, Alignment: f.Alignment, Font: f.Font}
	}
}

// SocialLinkForm adds a social link to a card.
type SocialLinkForm struct {
	Platform string `json:"platform"`
	Username string `json:"username"`
}

func (f SocialLinkForm) Validate() error {
	return ozzo.ValidateStruct(&f,
		ozzo.Field(&f.Platform, ozzo.Required.Error("platform is required"), ozzo.By(knownPlatform)),
		ozzo.Field(&f.Username, ozzo.Required.Error("username or URL is required"), ozzo.Length(1, 255)),
	)
}

func knownPlatform(value any) error {
	s, _ := value.(string)
	if _, ok := socials.Lookup(s); !ok {
		return fmt.Errorf("unknown platform %q", s)
	}
	return nil
}

// MediaItemForm adds a media item to a card.
type MediaItemForm struct {
	Type         string `json:"type"`
	URL          string `json:"url"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
}

func (f MediaItemForm) Validate() error {
	return ozzo.ValidateStruct(&f,
		ozzo.Field(&f.Type, ozzo.In(models.MediaVideo, models.MediaImage, models.MediaDocument)),
		ozzo.Field(&f.URL, ozzo.Required.Error("URL is required"), httpURL),
		ozzo.Field(&f.Title, ozzo.Length(0, 200)),
		ozzo.Field(&f.Description, ozzo.Length(0, 1000)),
		ozzo.Field(&f.ThumbnailURL, httpURL),
	)
}

// ReviewLinkForm adds a review link to a card.
type ReviewLinkForm struct {
	Title     string `json:"title"`
	ReviewURL string `json:"review_url"`
}

func (f ReviewLinkForm) Validate() error {
	return ozzo.ValidateStruct(&f,
		ozzo.Field(&f.Title, ozzo.Required.Error("title is required"), ozzo.Length(1, 200)),
		ozzo.Field(&f.ReviewURL, ozzo.Required.Error("review URL is required"), httpURL),
	)
}

// TitleForm retitles a media item or review link.
type TitleForm struct {
	Title string `json:"title"`
}

func (f TitleForm) Validate() error {
	return ozzo.ValidateStruct(&f,
		ozzo.Field(&f.Title, ozzo.Length(0, 200)),
	)
}

// ProfileForm updates the owner profile.
type ProfileForm struct {
	Name           string `json:"name"`
	GlobalUsername string `json:"global_username"`
}

func (f ProfileForm) Validate() error {
	return ozzo.ValidateStruct(&f,
		ozzo.Field(&f.Name, ozzo.Length(0, 120)),
		ozzo.Field(&f.GlobalUsername, ozzo.Length(0, 100), ozzo.Match(UsernamePattern).Error("may not contain spaces or slashes")),
	)
}

// ConsoleLoginForm is the operator console login form.
type ConsoleLoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (f ConsoleLoginForm) Validate() error {
	return ozzo.ValidateStruct(&f,
		ozzo.Field(&f.Username, ozzo.Required.Error("username is required")),
		ozzo.Field(&f.Password, ozzo.Required.Error("password is required")),
	)
}

// FirstError returns the message of one failing field, for single-line form feedback.
func FirstError(err error) string {
	var errs ozzo.Errors
	if errors.As(err, &errs) && len(errs) > 0 {
		fields := make([]string, 0, len(errs))
		for field := range errs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		return fields[0] + ": " + errs[fields[0]].Error()
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
