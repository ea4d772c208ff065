package socials

import (
	"github.com/google/uuid"

	"cardlink/internal/models"
)

// NewLink builds a social link for a card. The link starts auto-synced only
// when the platform is eligible and the username equals the global username.
func NewLink(cardID uuid.UUID, platform, username, globalUsername string, displayOrder int) models.SocialLink {
	return models.SocialLink{
		CardID:       cardID,
		Platform:     platform,
		Username:     username,
		URL:          DeriveURL(platform, username),
		DisplayOrder: displayOrder,
		IsActive:     true,
		IsAutoSynced: tracksGlobal(platform, username, globalUsername),
	}
}

// ApplyManualEdit returns link with a human-entered username. Editing away
// from the global username opts the link out of sync; entering the global
// username opts it back in.
func ApplyManualEdit(link models.SocialLink, newUsername, globalUsername string) models.SocialLink {
	link.Username = newUsername
	link.URL = DeriveURL(link.Platform, newUsername)
	link.IsAutoSynced = tracksGlobal(link.Platform, newUsername, globalUsername)
	return link
}

func tracksGlobal(platform, username, globalUsername string) bool {
	return globalUsername != "" && username == globalUsername && IsAutoSyncable(platform)
}

// Reconcile propagates a global username change. It updates links in place
// and returns copies of the ones that changed so the caller can persist them.
// Links that are not auto-synced are never touched.
func Reconcile(oldName, newName string, links []models.SocialLink) []models.SocialLink {
	if newName == "" || oldName == newName {
		return nil
	}

	var changed []models.SocialLink
	for i := range links {
		link := &links[i]
		if !link.IsAutoSynced || !IsAutoSyncable(link.Platform) {
			continue
		}
		link.Username = newName
		link.URL = DeriveURL(link.Platform, newName)
		changed = append(changed, *link)
	}
	return changed
}

// BulkGenerate returns one auto-synced candidate per eligible platform that
// the card does not already have. Display order continues after existing links.
func BulkGenerate(cardID uuid.UUID, globalUsername string, existing []models.SocialLink) []models.SocialLink {
	if globalUsername == "" {
		return nil
	}

	present := make(map[string]bool, len(existing))
	for _, l := range existing {
		present[l.Platform] = true
	}

	var out []models.SocialLink
	for _, name := range AutoSyncablePlatforms() {
		if present[name] {
			continue
		}
		present[name] = true
		out = append(out, models.SocialLink{
			CardID:       cardID,
			Platform:     name,
			Username:     globalUsername,
			URL:          DeriveURL(name, globalUsername),
			DisplayOrder: len(existing) + len(out),
			IsActive:     true,
			IsAutoSynced: true,
		})
	}
	return out
}
