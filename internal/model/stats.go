package model

// ProviderStats is the provider dashboard summary.
type ProviderStats struct {
	ServiceCount int64   `json:"serviceCount"`
	BookingCount int64   `json:"bookingCount"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// AdminStats is the marketplace-wide summary.
type AdminStats struct {
	UserCount    int64   `json:"userCount"`
	ServiceCount int64   `json:"serviceCount"`
	BookingCount int64   `json:"bookingCount"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// UserStats is the customer dashboard summary.
type UserStats struct {
	BookingCount int64   `json:"bookingCount"`
	TotalSpent   float64 `json:"totalSpent"`
	ReviewCount  int64   `json:"reviewCount"`
	PendingCount int64   `json:"pendingCount"`
}
