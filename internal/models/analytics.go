package models

// MonthlyCount is the number of new users in one calendar month.
type MonthlyCount struct {
	Month string `json:"month"` // e.g. "Jan 2026"
	Users int64  `json:"users"`
}

// PlatformAnalytics aggregates platform-wide usage for the operator console.
type PlatformAnalytics struct {
	TotalUsers        int64          `json:"total_users"`
	TotalCards        int64          `json:"total_cards"`
	PublishedCards    int64          `json:"published_cards"`
	TotalViews        int64          `json:"total_views"`
	NewUsersThisMonth int64          `json:"new_users_this_month"`
	MobileViews       int64          `json:"mobile_views"`
	DesktopViews      int64          `json:"desktop_views"`
	UserGrowth        []MonthlyCount `json:"user_growth"`
}

// PublishRate returns the published share of all cards, in percent.
func (a *PlatformAnalytics) PublishRate() float64 {
	if a.TotalCards == 0 {
		return 0
	}
	return float64(a.PublishedCards) / float64(a.TotalCards) * 100
}

// AvgViewsPerCard returns total views divided by total cards.
func (a *PlatformAnalytics) AvgViewsPerCard() float64 {
	if a.TotalCards == 0 {
		return 0
	}
	return float64(a.TotalViews) / float64(a.TotalCards)
}

// GrowthPercent compares the last two months of user growth, in percent.
func (a *PlatformAnalytics) GrowthPercent() float64 {
	n := len(a.UserGrowth)
	if n < 2 {
		return 0
	}
	prev := a.UserGrowth[n-2].Users
	last := a.UserGrowth[n-1].Users
	base := prev
	if base < 1 {
		base = 1
	}
	return float64(last-prev) / float64(base) * 100
}
