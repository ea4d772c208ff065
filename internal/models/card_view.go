package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Device type constants
const (
	DeviceMobile  = "mobile"
	DeviceDesktop = "desktop"
)

var mobileMarkers = []string{"mobile", "android", "iphone", "ipad"}

// CardView is an append-only record of one public card view.
type CardView struct {
	ID         uuid.UUID `json:"id"`
	CardID     uuid.UUID `json:"card_id"`
	VisitorIP  string    `json:"visitor_ip"`
	UserAgent  string    `json:"user_agent"`
	Referrer   string    `json:"referrer"`
	DeviceType string    `json:"device_type"`
	ViewedAt   time.Time `json:"viewed_at"`
}

// ClassifyDevice maps a user agent to mobile or desktop using a
// case-insensitive substring match.
func ClassifyDevice(userAgent string) string {
	ua := strings.ToLower(userAgent)
	for _, m := range mobileMarkers {
		if strings.Contains(ua, m) {
			return DeviceMobile
		}
	}
	return DeviceDesktop
}
