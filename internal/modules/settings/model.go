// README: Compensation policy definition and default merging.
package settings

// Policy holds the per-user compensation parameters applied when a ride's
// pay is computed. A user always resolves to a complete policy: missing
// rows or unset fields fall back to Defaults.
type Policy struct {
	BaseRate              float64 `json:"base_rate"`
	OvertimeMultiplier    float64 `json:"overtime_multiplier"`
	NightSurcharge        float64 `json:"night_surcharge"`
	WWVRate               float64 `json:"wwv_rate"`
	SocialContributionPct float64 `json:"social_contribution_pct"`
	NormalHoursThreshold  float64 `json:"normal_hours_threshold"`
}

// Defaults is the built-in policy used when a user has no stored settings.
// Values copied into a new settings row at registration.
var Defaults = Policy{
	BaseRate:              12.83,
	OvertimeMultiplier:    1.5,
	NightSurcharge:        1.46,
	WWVRate:               0.26,
	SocialContributionPct: 2.71,
	NormalHoursThreshold:  9.0,
}

// Update is a partial policy change; nil fields keep their current value.
type Update struct {
	BaseRate              *float64 `json:"base_rate"`
	OvertimeMultiplier    *float64 `json:"overtime_multiplier"`
	NightSurcharge        *float64 `json:"night_surcharge"`
	WWVRate               *float64 `json:"wwv_rate"`
	SocialContributionPct *float64 `json:"social_contribution_pct"`
	NormalHoursThreshold  *float64 `json:"normal_hours_threshold"`
}

// Empty reports whether the update carries no changes at all.
func (u Update) Empty() bool {
	return u.BaseRate == nil && u.OvertimeMultiplier == nil && u.NightSurcharge == nil &&
		u.WWVRate == nil && u.SocialContributionPct == nil && u.NormalHoursThreshold == nil
}

// Merge returns a copy of p with the update's set fields applied. The
// receiver (and therefore Defaults) is never mutated.
func (p Policy) Merge(u Update) Policy {
	if u.BaseRate != nil {
		p.BaseRate = *u.BaseRate
	}
	if u.OvertimeMultiplier != nil {
		p.OvertimeMultiplier = *u.OvertimeMultiplier
	}
	if u.NightSurcharge != nil {
		p.NightSurcharge = *u.NightSurcharge
	}
	if u.WWVRate != nil {
		p.WWVRate = *u.WWVRate
	}
	if u.SocialContributionPct != nil {
		p.SocialContributionPct = *u.SocialContributionPct
	}
	if u.NormalHoursThreshold != nil {
		p.NormalHoursThreshold = *u.NormalHoursThreshold
	}
	return p
}
