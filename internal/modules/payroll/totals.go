// README: Pay totals composer; folds travel reimbursement, extras and the social contribution into the final figures.
package payroll

import "getdriven/internal/modules/settings"

// Totals completes a Breakdown into the figures stored on the ride record.
type Totals struct {
	WWVAmount          float64 `json:"wwv_amount"`
	SocialContribution float64 `json:"social_contribution"`
	GrossTotal         float64 `json:"gross_total"`
	NetPay             float64 `json:"net_pay"`
}

// Finalize composes the final gross and net figures. The order is fixed:
// the social contribution is part of the gross total (it is an employer-side
// addition reflected in the bruto amount) and is subtracted again for net.
func Finalize(b Breakdown, wwvKm, extraCosts float64, p settings.Policy) Totals {
	wwvAmount := round2(wwvKm * p.WWVRate)
	social := round2(b.GrossPay * p.SocialContributionPct / 100)
	grossTotal := round2(b.GrossPay + wwvAmount + extraCosts + social)
	netPay := round2(grossTotal - social)

	return Totals{
		WWVAmount:          wwvAmount,
		SocialContribution: social,
		GrossTotal:         grossTotal,
		NetPay:             netPay,
	}
}
