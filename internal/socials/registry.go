// Package socials holds the social platform registry and the username
// auto-sync rules for card social links.
package socials

// Platform names as stored in social_links.platform.
const (
	Instagram  = "Instagram"
	GitHub     = "GitHub"
	LinkedIn   = "LinkedIn"
	Twitter    = "Twitter"
	YouTube    = "YouTube"
	Facebook   = "Facebook"
	Pinterest  = "Pinterest"
	Snapchat   = "Snapchat"
	TikTok     = "TikTok"
	Telegram   = "Telegram"
	Discord    = "Discord"
	WhatsApp   = "WhatsApp"
	CustomLink = "Custom Link"
)

// Fallbacks for platforms missing from the registry.
const (
	DefaultIcon  = "globe"
	DefaultColor = "#333"
)

// Platform describes how a platform's profile URL is built and shown.
type Platform struct {
	Name        string
	BaseURL     string
	Placeholder string
	Icon        string
	Color       string
	AutoSync    bool // URL is fully derivable from a plain username
}

// platforms is ordered; BulkGenerate and the admin picker follow this order.
var platforms = []Platform{
	{Name: Instagram, BaseURL: "https://instagram.com/", Placeholder: "username", Icon: "instagram", Color: "#E1306C", AutoSync: true},
	{Name: GitHub, BaseURL: "https://github.com/", Placeholder: "username", Icon: "github", Color: "#333", AutoSync: true},
	{Name: LinkedIn, BaseURL: "https://linkedin.com/in/", Placeholder: "username", Icon: "linkedin", Color: "#0A66C2", AutoSync: true},
	{Name: Twitter, BaseURL: "https://x.com/", Placeholder: "username", Icon: "twitter", Color: "#1DA1F2", AutoSync: true},
	{Name: YouTube, BaseURL: "https://youtube.com/@", Placeholder: "username", Icon: "youtube", Color: "#FF0000", AutoSync: true},
	{Name: Facebook, BaseURL: "https://facebook.com/", Placeholder: "username", Icon: "facebook", Color: "#1877F3", AutoSync: true},
	{Name: Pinterest, BaseURL: "https://pinterest.com/", Placeholder: "username", Icon: "pinterest", Color: "#E60023", AutoSync: true},
	{Name: Snapchat, BaseURL: "https://snapchat.com/add/", Placeholder: "username", Icon: "snapchat", Color: "#FFFC00", AutoSync: true},
	{Name: TikTok, BaseURL: "https://tiktok.com/@", Placeholder: "username", Icon: "tiktok", Color: "#69C9D0", AutoSync: true},
	{Name: Telegram, BaseURL: "https://t.me/", Placeholder: "username", Icon: "telegram", Color: "#0088cc", AutoSync: true},
	{Name: Discord, BaseURL: "https://discord.gg/", Placeholder: "server-invite", Icon: "discord", Color: "#7289DA"},
	{Name: WhatsApp, BaseURL: "https://wa.me/", Placeholder: "phone-number", Icon: "whatsapp", Color: "#25D366"},
	{Name: CustomLink, BaseURL: "", Placeholder: "https://example.com", Icon: "external-link", Color: "#6366F1"},
}

var byName = func() map[string]Platform {
	m := make(map[string]Platform, len(platforms))
	for _, p := range platforms {
		m[p.Name] = p
	}
	return m
}()

// Lookup returns the platform registered under name.
func Lookup(name string) (Platform, bool) {
	p, ok := byName[name]
	return p, ok
}

// Platforms returns all registered platforms in display order.
func Platforms() []Platform {
	out := make([]Platform, len(platforms))
	copy(out, platforms)
	return out
}

// Icon returns the icon name for a platform, or DefaultIcon if unknown.
func Icon(name string) string {
	if p, ok := byName[name]; ok {
		return p.Icon
	}
	return DefaultIcon
}

// Color returns the brand color for a platform, or DefaultColor if unknown.
func Color(name string) string {
	if p, ok := byName[name]; ok {
		return p.Color
	}
	return DefaultColor
}

// IsAutoSyncable returns true if the platform's URL can be derived from the
// global username alone.
func IsAutoSyncable(name string) bool {
	p, ok := byName[name]
	return ok && p.AutoSync
}

// AutoSyncablePlatforms returns the names of every eligible platform in display order.
func AutoSyncablePlatforms() []string {
	var names []string
	for _, p := range platforms {
		if p.AutoSync {
			names = append(names, p.Name)
		}
	}
	return names
}
