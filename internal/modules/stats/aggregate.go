// README: Stats aggregation engine; pure grouping/sorting over an in-memory ride set.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"getdriven/internal/modules/ride"
)

const (
	dateLayout    = "2006-01-02"
	recentLimit   = 5
	weeklyBuckets = 12
)

// dayLabels is Monday-first; weekday indices follow time.Weekday shifted so
// Monday is 0.
var dayLabels = [7]string{"Ma", "Di", "Wo", "Do", "Vr", "Za", "Zo"}

// Aggregate builds a report over allRides narrowed by the filter. The input
// slices are never mutated. Rides with malformed dates or times are skipped
// only in the buckets that need to parse them; they still count toward the
// scalar totals.
func Aggregate(allRides []ride.Ride, f Filter) Report {
	filtered := make([]ride.Ride, 0, len(allRides))
	for _, r := range allRides {
		if f.matches(r) {
			filtered = append(filtered, r)
		}
	}

	rep := emptyReport()
	rep.AvailableMonths, rep.AvailableClients, rep.AvailableBrands = availableFilters(allRides)
	if len(filtered) == 0 {
		return rep
	}

	scalarTotals(&rep, filtered)
	rep.MonthlyEarnings = monthlyBuckets(filtered)
	rep.WeeklyEarnings = weeklyBucketsOf(filtered)
	rep.CarStats, rep.BrandStats = carBuckets(filtered)
	rep.ClientStats = clientBuckets(filtered)
	rep.HourlyDistribution = hourlyDistribution(filtered)
	rep.DayOfWeekStats = dayOfWeekBuckets(filtered)
	rep.RecentRides = recentRides(filtered)
	return rep
}

func (f Filter) matches(r ride.Ride) bool {
	if f.Month != "" && !strings.HasPrefix(r.Date, f.Month) {
		return false
	}
	if f.ClientName != "" && !strings.Contains(strings.ToLower(r.ClientName), strings.ToLower(f.ClientName)) {
		return false
	}
	if f.CarBrand != "" && !strings.Contains(strings.ToLower(r.CarBrand), strings.ToLower(f.CarBrand)) {
		return false
	}
	if f.DateFrom != "" && r.Date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && r.Date > f.DateTo {
		return false
	}
	return true
}

func emptyReport() Report {
	return Report{
		MonthlyEarnings:    []MonthBucket{},
		WeeklyEarnings:     []WeekBucket{},
		CarStats:           []CarBucket{},
		BrandStats:         []BrandBucket{},
		ClientStats:        []ClientBucket{},
		HourlyDistribution: []HourBucket{},
		DayOfWeekStats:     []DayBucket{},
		RecentRides:        []ride.Ride{},
		AvailableMonths:    []string{},
		AvailableClients:   []string{},
		AvailableBrands:    []string{},
	}
}

// grossTotalOf prefers the stored gross_total and falls back to
// reconstructing it from the components for records written before the
// field existed.
func grossTotalOf(r ride.Ride) float64 {
	if r.GrossTotal != 0 {
		return r.GrossTotal
	}
	return r.GrossPay + r.WWVAmount + r.ExtraCosts + r.SocialContribution
}

func scalarTotals(rep *Report, rides []ride.Ride) {
	var hours, gross, net, wwv, overtime, night, social, extra float64
	for _, r := range rides {
		hours += r.TotalHours
		gross += grossTotalOf(r)
		net += r.NetPay
		wwv += r.WWVAmount
		overtime += r.OvertimeHours
		night += r.NightHours
		social += r.SocialContribution
		extra += r.ExtraCosts
	}
	rep.TotalRides = len(rides)
	rep.TotalHours = round2(hours)
	rep.TotalGross = round2(gross)
	rep.TotalNet = round2(net)
	rep.TotalWWV = round2(wwv)
	rep.TotalOvertimeHours = round2(overtime)
	rep.TotalNightHours = round2(night)
	rep.TotalSocial = round2(social)
	rep.TotalExtraCosts = round2(extra)
	if rep.TotalRides > 0 {
		rep.AvgPerRide = round2(net / float64(rep.TotalRides))
	}
	if hours > 0 {
		rep.AvgPerHour = round2(net / hours)
	}
}

func monthlyBuckets(rides []ride.Ride) []MonthBucket {
	byKey := map[string]*MonthBucket{}
	order := make([]*MonthBucket, 0)
	for _, r := range rides {
		key := monthKey(r.Date)
		b, ok := byKey[key]
		if !ok {
			b = &MonthBucket{Month: key}
			byKey[key] = b
			order = append(order, b)
		}
		b.Gross += grossTotalOf(r)
		b.Net += r.NetPay
		b.Rides++
		b.Hours += r.TotalHours
		b.Overtime += r.OvertimeHours
		b.Night += r.NightHours
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i].Month < order[j].Month })

	out := make([]MonthBucket, 0, len(order))
	for _, b := range order {
		b.Gross = round2(b.Gross)
		b.Net = round2(b.Net)
		b.Hours = round2(b.Hours)
		b.Overtime = round2(b.Overtime)
		b.Night = round2(b.Night)
		out = append(out, *b)
	}
	return out
}

func weeklyBucketsOf(rides []ride.Ride) []WeekBucket {
	byKey := map[string]*WeekBucket{}
	order := make([]*WeekBucket, 0)
	for _, r := range rides {
		d, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			continue
		}
		key := weekKey(d)
		b, ok := byKey[key]
		if !ok {
			b = &WeekBucket{Week: key}
			byKey[key] = b
			order = append(order, b)
		}
		b.Net += r.NetPay
		b.Rides++
		b.Hours += r.TotalHours
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i].Week < order[j].Week })
	if len(order) > weeklyBuckets {
		order = order[len(order)-weeklyBuckets:]
	}

	out := make([]WeekBucket, 0, len(order))
	for _, b := range order {
		b.Net = round2(b.Net)
		b.Hours = round2(b.Hours)
		out = append(out, *b)
	}
	return out
}

// weekKey labels a date "{year}-W{week}" using Monday-start week-of-year
// numbering: days before the year's first Monday land in week 00.
func weekKey(d time.Time) string {
	mondayWeekday := (int(d.Weekday()) + 6) % 7
	week := (d.YearDay() + 6 - mondayWeekday) / 7
	return fmt.Sprintf("%d-W%02d", d.Year(), week)
}

func carBuckets(rides []ride.Ride) ([]CarBucket, []BrandBucket) {
	carByKey := map[string]*CarBucket{}
	carOrder := make([]*CarBucket, 0)
	brandByKey := map[string]*BrandBucket{}
	brandOrder := make([]*BrandBucket, 0)

	for _, r := range rides {
		carKey := r.CarBrand + " " + r.CarModel
		cb, ok := carByKey[carKey]
		if !ok {
			cb = &CarBucket{Car: carKey, Brand: r.CarBrand}
			carByKey[carKey] = cb
			carOrder = append(carOrder, cb)
		}
		cb.Rides++
		cb.Hours += r.TotalHours
		cb.Earnings += r.NetPay

		bb, ok := brandByKey[r.CarBrand]
		if !ok {
			bb = &BrandBucket{Brand: r.CarBrand}
			brandByKey[r.CarBrand] = bb
			brandOrder = append(brandOrder, bb)
		}
		bb.Rides++
		bb.Hours += r.TotalHours
		bb.Earnings += r.NetPay
	}

	sort.SliceStable(carOrder, func(i, j int) bool { return carOrder[i].Rides > carOrder[j].Rides })
	sort.SliceStable(brandOrder, func(i, j int) bool { return brandOrder[i].Rides > brandOrder[j].Rides })

	cars := make([]CarBucket, 0, len(carOrder))
	for _, b := range carOrder {
		b.Hours = round2(b.Hours)
		b.Earnings = round2(b.Earnings)
		cars = append(cars, *b)
	}
	brands := make([]BrandBucket, 0, len(brandOrder))
	for _, b := range brandOrder {
		b.Hours = round2(b.Hours)
		b.Earnings = round2(b.Earnings)
		brands = append(brands, *b)
	}
	return cars, brands
}

func clientBuckets(rides []ride.Ride) []ClientBucket {
	byKey := map[string]*ClientBucket{}
	order := make([]*ClientBucket, 0)
	for _, r := range rides {
		b, ok := byKey[r.ClientName]
		if !ok {
			b = &ClientBucket{Client: r.ClientName}
			byKey[r.ClientName] = b
			order = append(order, b)
		}
		b.Rides++
		b.Earnings += r.NetPay
		b.Hours += r.TotalHours
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i].Earnings > order[j].Earnings })

	out := make([]ClientBucket, 0, len(order))
	for _, b := range order {
		b.Earnings = round2(b.Earnings)
		b.Hours = round2(b.Hours)
		out = append(out, *b)
	}
	return out
}

// hourlyDistribution counts, per clock hour, how many rides touch that hour.
// A shift whose end hour is at or before its start hour wraps past midnight.
// Rides with unparseable times contribute nothing.
func hourlyDistribution(rides []ride.Ride) []HourBucket {
	var counts [24]int
	for _, r := range rides {
		start, ok := clockHour(r.StartTime)
		if !ok {
			continue
		}
		end, ok := clockHour(r.EndTime)
		if !ok {
			continue
		}
		if end <= start {
			end += 24
		}
		for h := start; h < end; h++ {
			counts[h%24]++
		}
	}
	out := make([]HourBucket, 0, 24)
	for h := 0; h < 24; h++ {
		out = append(out, HourBucket{Hour: fmt.Sprintf("%02d", h), Count: counts[h]})
	}
	return out
}

func clockHour(hhmm string) (int, bool) {
	h, err := strconv.Atoi(strings.SplitN(hhmm, ":", 2)[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

func dayOfWeekBuckets(rides []ride.Ride) []DayBucket {
	var buckets [7]DayBucket
	for i := range buckets {
		buckets[i].Day = dayLabels[i]
	}
	for _, r := range rides {
		d, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			continue
		}
		idx := (int(d.Weekday()) + 6) % 7 // Monday = 0
		buckets[idx].Rides++
		buckets[idx].Hours += r.TotalHours
		buckets[idx].Earnings += r.NetPay
	}
	out := make([]DayBucket, 0, 7)
	for i := range buckets {
		buckets[i].Hours = round2(buckets[i].Hours)
		buckets[i].Earnings = round2(buckets[i].Earnings)
		out = append(out, buckets[i])
	}
	return out
}

// recentRides picks the 5 rides with the greatest date, keeping the input's
// relative order among equal dates.
func recentRides(rides []ride.Ride) []ride.Ride {
	sorted := make([]ride.Ride, len(rides))
	copy(sorted, rides)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })
	if len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}
	return sorted
}

func availableFilters(allRides []ride.Ride) (months, clients, brands []string) {
	months = distinct(allRides, func(r ride.Ride) string { return monthKey(r.Date) })
	clients = distinct(allRides, func(r ride.Ride) string { return r.ClientName })
	brands = distinct(allRides, func(r ride.Ride) string { return r.CarBrand })
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	sort.Strings(clients)
	sort.Strings(brands)
	return months, clients, brands
}

func distinct(rides []ride.Ride, key func(ride.Ride) string) []string {
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, r := range rides {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

func monthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
