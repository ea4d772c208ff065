package models

// PublicCardResponse is the JSON form of an assembled public card.
type PublicCardResponse struct {
	Card        *Card        `json:"card"`
	Theme       Theme        `json:"theme"`
	Layout      Layout       `json:"layout"`
	SocialLinks []SocialLink `json:"social_links"`
	MediaItems  []MediaItem  `json:"media_items"`
	Reviews     []ReviewLink `json:"reviews"`
}
