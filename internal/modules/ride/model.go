// README: Ride record; shift description, cost inputs and engine-computed pay fields.
package ride

import "time"

// Ride is one chauffeur work shift. The computed block is owned by the
// payroll engine: it is derived from the shift description, the cost inputs
// and the policy in effect at create/update time, and is never accepted
// from a caller.
type Ride struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	Date       string `json:"date"`       // YYYY-MM-DD
	ClientName string `json:"client_name"`
	CarBrand   string `json:"car_brand"`
	CarModel   string `json:"car_model"`
	StartTime  string `json:"start_time"` // HH:MM
	EndTime    string `json:"end_time"`   // HH:MM
	Notes      string `json:"notes"`

	ExtraCosts float64 `json:"extra_costs"`
	WWVKm      float64 `json:"wwv_km"`

	TotalHours         float64 `json:"total_hours"`
	NormalHours        float64 `json:"normal_hours"`
	OvertimeHours      float64 `json:"overtime_hours"`
	NightHours         float64 `json:"night_hours"`
	NormalPay          float64 `json:"normal_pay"`
	OvertimePay        float64 `json:"overtime_pay"`
	NightPay           float64 `json:"night_pay"`
	GrossPay           float64 `json:"gross_pay"`
	WWVAmount          float64 `json:"wwv_amount"`
	SocialContribution float64 `json:"social_contribution"`
	GrossTotal         float64 `json:"gross_total"`
	NetPay             float64 `json:"net_pay"`

	CreatedAt time.Time `json:"created_at"`
}

// Input is the caller-supplied part of a ride on create and update.
type Input struct {
	Date       string  `json:"date"`
	ClientName string  `json:"client_name"`
	CarBrand   string  `json:"car_brand"`
	CarModel   string  `json:"car_model"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	ExtraCosts float64 `json:"extra_costs"`
	WWVKm      float64 `json:"wwv_km"`
	Notes      string  `json:"notes"`
}
