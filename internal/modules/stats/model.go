// README: Stats report shapes and the ride filter.
package stats

import "getdriven/internal/modules/ride"

// Filter narrows the ride set a report is computed over. Zero values mean
// "no constraint". Month matches the date's year-month prefix exactly;
// client and brand are case-insensitive substring matches; the date range
// is inclusive on both ends and either bound may be given alone.
type Filter struct {
	Month      string
	ClientName string
	CarBrand   string
	DateFrom   string
	DateTo     string
}

type MonthBucket struct {
	Month    string  `json:"month"`
	Gross    float64 `json:"gross"`
	Net      float64 `json:"net"`
	Rides    int     `json:"rides"`
	Hours    float64 `json:"hours"`
	Overtime float64 `json:"overtime"`
	Night    float64 `json:"night"`
}

type WeekBucket struct {
	Week  string  `json:"week"`
	Net   float64 `json:"net"`
	Rides int     `json:"rides"`
	Hours float64 `json:"hours"`
}

type CarBucket struct {
	Car      string  `json:"car"`
	Brand    string  `json:"brand"`
	Rides    int     `json:"rides"`
	Hours    float64 `json:"hours"`
	Earnings float64 `json:"earnings"`
}

type BrandBucket struct {
	Brand    string  `json:"brand"`
	Rides    int     `json:"rides"`
	Hours    float64 `json:"hours"`
	Earnings float64 `json:"earnings"`
}

type ClientBucket struct {
	Client   string  `json:"client"`
	Rides    int     `json:"rides"`
	Earnings float64 `json:"earnings"`
	Hours    float64 `json:"hours"`
}

type HourBucket struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

type DayBucket struct {
	Day      string  `json:"day"`
	Rides    int     `json:"rides"`
	Hours    float64 `json:"hours"`
	Earnings float64 `json:"earnings"`
}

// Report is recomputed on every request; it has no lifecycle of its own.
// The available_* fields always describe the user's full ride set so the
// caller can keep offering filter choices even when the filter matched
// nothing.
type Report struct {
	TotalRides         int     `json:"total_rides"`
	TotalHours         float64 `json:"total_hours"`
	TotalGross         float64 `json:"total_gross"`
	TotalNet           float64 `json:"total_net"`
	TotalWWV           float64 `json:"total_wwv"`
	TotalOvertimeHours float64 `json:"total_overtime_hours"`
	TotalNightHours    float64 `json:"total_night_hours"`
	TotalSocial        float64 `json:"total_social"`
	TotalExtraCosts    float64 `json:"total_extra_costs"`
	AvgPerRide         float64 `json:"avg_per_ride"`
	AvgPerHour         float64 `json:"avg_per_hour"`

	MonthlyEarnings    []MonthBucket  `json:"monthly_earnings"`
	WeeklyEarnings     []WeekBucket   `json:"weekly_earnings"`
	CarStats           []CarBucket    `json:"car_stats"`
	BrandStats         []BrandBucket  `json:"brand_stats"`
	ClientStats        []ClientBucket `json:"client_stats"`
	HourlyDistribution []HourBucket   `json:"hourly_distribution"`
	DayOfWeekStats     []DayBucket    `json:"day_of_week_stats"`
	RecentRides        []ride.Ride    `json:"recent_rides"`

	AvailableMonths  []string `json:"available_months"`
	AvailableClients []string `json:"available_clients"`
	AvailableBrands  []string `json:"available_brands"`
}
