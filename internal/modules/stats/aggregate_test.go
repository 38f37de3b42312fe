// README: Aggregation engine tests (filters, buckets, ordering, rounding, skip rules).
package stats

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"getdriven/internal/modules/ride"
)

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func equalStrings(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// mkRide builds a minimal ride with sane computed fields for aggregation.
func mkRide(date, client, brand, model, start, end string, hours, net float64) ride.Ride {
	return ride.Ride{
		Date:       date,
		ClientName: client,
		CarBrand:   brand,
		CarModel:   model,
		StartTime:  start,
		EndTime:    end,
		TotalHours: hours,
		NetPay:     net,
		GrossPay:   net,
		GrossTotal: net,
	}
}

func sampleRides() []ride.Ride {
	return []ride.Ride{
		mkRide("2024-12-02", "Hotel Astoria", "Mercedes", "S-Class", "08:00", "17:00", 9, 137.17),
		mkRide("2024-12-05", "Hotel Astoria", "Mercedes", "S-Class", "20:00", "06:00", 10, 160.50),
		mkRide("2024-12-20", "Van Dam BV", "BMW", "7 Series", "09:00", "13:00", 4, 60.00),
		mkRide("2024-11-28", "Airport VIP", "Mercedes", "V-Class", "06:00", "14:00", 8, 110.00),
	}
}

func TestAggregate_EmptyEverything(t *testing.T) {
	rep := Aggregate(nil, Filter{Month: "2024-12"})

	if rep.TotalRides != 0 || rep.TotalNet != 0 || rep.TotalHours != 0 {
		t.Errorf("expected zero scalars, got %+v", rep)
	}
	if len(rep.AvailableMonths) != 0 || len(rep.AvailableClients) != 0 || len(rep.AvailableBrands) != 0 {
		t.Errorf("expected empty available filters, got %+v", rep)
	}
	if rep.MonthlyEarnings == nil || rep.RecentRides == nil {
		t.Error("bucket slices must be empty, not nil")
	}
}

func TestAggregate_FilterMatchesNothingKeepsAvailableFilters(t *testing.T) {
	rep := Aggregate(sampleRides(), Filter{Month: "2020-01"})

	if rep.TotalRides != 0 {
		t.Errorf("TotalRides = %d, want 0", rep.TotalRides)
	}
	if len(rep.MonthlyEarnings) != 0 || len(rep.RecentRides) != 0 {
		t.Error("expected empty buckets for a filter matching nothing")
	}
	wantMonths := []string{"2024-12", "2024-11"}
	if !equalStrings(rep.AvailableMonths, wantMonths) {
		t.Errorf("AvailableMonths = %v, want %v", rep.AvailableMonths, wantMonths)
	}
	wantClients := []string{"Airport VIP", "Hotel Astoria", "Van Dam BV"}
	if !equalStrings(rep.AvailableClients, wantClients) {
		t.Errorf("AvailableClients = %v, want %v", rep.AvailableClients, wantClients)
	}
	wantBrands := []string{"BMW", "Mercedes"}
	if !equalStrings(rep.AvailableBrands, wantBrands) {
		t.Errorf("AvailableBrands = %v, want %v", rep.AvailableBrands, wantBrands)
	}
}

func TestAggregate_ScalarTotals(t *testing.T) {
	rep := Aggregate(sampleRides(), Filter{})

	if rep.TotalRides != 4 {
		t.Errorf("TotalRides = %d, want 4", rep.TotalRides)
	}
	if rep.TotalHours != 31.0 {
		t.Errorf("TotalHours = %v, want 31.0", rep.TotalHours)
	}
	if rep.TotalNet != 467.67 {
		t.Errorf("TotalNet = %v, want 467.67", rep.TotalNet)
	}
	// avg_per_ride = 467.67 / 4, avg_per_hour = 467.67 / 31
	if rep.AvgPerRide != 116.92 {
		t.Errorf("AvgPerRide = %v, want 116.92", rep.AvgPerRide)
	}
	if rep.AvgPerHour != 15.09 {
		t.Errorf("AvgPerHour = %v, want 15.09", rep.AvgPerHour)
	}
}

func TestAggregate_ZeroHoursAvoidsDivisionByZero(t *testing.T) {
	rides := []ride.Ride{mkRide("2024-01-01", "c", "b", "m", "10:00", "10:00", 0, 0)}
	rep := Aggregate(rides, Filter{})
	if rep.AvgPerHour != 0 || rep.AvgPerRide != 0 {
		t.Errorf("expected zero averages, got per_ride=%v per_hour=%v", rep.AvgPerRide, rep.AvgPerHour)
	}
}

func TestAggregate_MonthFilterIsPrefixMatch(t *testing.T) {
	rep := Aggregate(sampleRides(), Filter{Month: "2024-12"})

	if rep.TotalRides != 3 {
		t.Errorf("TotalRides = %d, want 3", rep.TotalRides)
	}
	for _, r := range rep.RecentRides {
		if !strings.HasPrefix(r.Date, "2024-12") {
			t.Errorf("ride %s leaked through month filter", r.Date)
		}
	}
	// Metadata ignores the filter.
	if !equalStrings(rep.AvailableMonths, []string{"2024-12", "2024-11"}) {
		t.Errorf("AvailableMonths = %v", rep.AvailableMonths)
	}
}

func TestAggregate_SubstringFiltersAreCaseInsensitive(t *testing.T) {
	tests := []struct {
		name string
		f    Filter
		want int
	}{
		{"client lowercase fragment", Filter{ClientName: "astoria"}, 2},
		{"client uppercase fragment", Filter{ClientName: "VAN DAM"}, 1},
		{"brand fragment", Filter{CarBrand: "merc"}, 3},
		{"brand no match", Filter{CarBrand: "tesla"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := Aggregate(sampleRides(), tt.f)
			if rep.TotalRides != tt.want {
				t.Errorf("TotalRides = %d, want %d", rep.TotalRides, tt.want)
			}
		})
	}
}

func TestAggregate_DateRangeInclusive(t *testing.T) {
	tests := []struct {
		name string
		f    Filter
		want int
	}{
		{"both bounds", Filter{DateFrom: "2024-12-02", DateTo: "2024-12-05"}, 2},
		{"from only", Filter{DateFrom: "2024-12-05"}, 2},
		{"to only", Filter{DateTo: "2024-11-30"}, 1},
		{"bounds equal to a ride date", Filter{DateFrom: "2024-12-20", DateTo: "2024-12-20"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := Aggregate(sampleRides(), tt.f)
			if rep.TotalRides != tt.want {
				t.Errorf("TotalRides = %d, want %d", rep.TotalRides, tt.want)
			}
		})
	}
}

func TestAggregate_MonthlyBucketsSortedAscending(t *testing.T) {
	rep := Aggregate(sampleRides(), Filter{})

	if len(rep.MonthlyEarnings) != 2 {
		t.Fatalf("got %d monthly buckets, want 2", len(rep.MonthlyEarnings))
	}
	if rep.MonthlyEarnings[0].Month != "2024-11" || rep.MonthlyEarnings[1].Month != "2024-12" {
		t.Errorf("months out of order: %+v", rep.MonthlyEarnings)
	}
	dec := rep.MonthlyEarnings[1]
	if dec.Rides != 3 || dec.Hours != 23.0 {
		t.Errorf("december bucket = %+v", dec)
	}
	if dec.Net != 357.67 {
		t.Errorf("december net = %v, want 357.67", dec.Net)
	}
}

func TestAggregate_WeeklyBuckets(t *testing.T) {
	// Same %W week (2024-12-02 is a Monday, 2024-12-05 a Thursday), plus a
	// later week. Scenario: two rides in one week collapse into one bucket.
	rep := Aggregate(sampleRides(), Filter{Month: "2024-12"})

	if len(rep.WeeklyEarnings) != 2 {
		t.Fatalf("got %d weekly buckets, want 2: %+v", len(rep.WeeklyEarnings), rep.WeeklyEarnings)
	}
	first := rep.WeeklyEarnings[0]
	if first.Week != "2024-W49" || first.Rides != 2 {
		t.Errorf("first week bucket = %+v, want 2024-W49 with 2 rides", first)
	}
	second := rep.WeeklyEarnings[1]
	if second.Week != "2024-W51" || second.Rides != 1 {
		t.Errorf("second week bucket = %+v, want 2024-W51 with 1 ride", second)
	}
}

func TestWeekKey_MondayStartConvention(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-01-01", "2024-W01"}, // Monday: the year starts on week 1
		{"2024-01-07", "2024-W01"}, // the following Sunday stays in week 1
		{"2024-01-08", "2024-W02"},
		{"2025-01-01", "2025-W00"}, // Wednesday: partial week before first Monday
		{"2025-01-05", "2025-W00"},
		{"2025-01-06", "2025-W01"}, // first Monday of 2025
		{"2024-12-30", "2024-W53"}, // Monday of the year's last partial week
		{"2023-01-01", "2023-W00"}, // Sunday
		{"2023-01-02", "2023-W01"},
	}
	for _, tt := range tests {
		d, err := parseDate(tt.date)
		if err != nil {
			t.Fatalf("parse %s: %v", tt.date, err)
		}
		if got := weekKey(d); got != tt.want {
			t.Errorf("weekKey(%s) = %s, want %s", tt.date, got, tt.want)
		}
	}
}

func TestAggregate_WeeklyKeepsLastTwelve(t *testing.T) {
	rides := make([]ride.Ride, 0)
	// 15 distinct weeks: every Monday starting 2024-01-01.
	dates := []string{
		"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22", "2024-01-29",
		"2024-02-05", "2024-02-12", "2024-02-19", "2024-02-26", "2024-03-04",
		"2024-03-11", "2024-03-18", "2024-03-25", "2024-04-01", "2024-04-08",
	}
	for _, d := range dates {
		rides = append(rides, mkRide(d, "c", "b", "m", "08:00", "12:00", 4, 50))
	}
	rep := Aggregate(rides, Filter{})
	if len(rep.WeeklyEarnings) != 12 {
		t.Fatalf("got %d weekly buckets, want 12", len(rep.WeeklyEarnings))
	}
	if rep.WeeklyEarnings[0].Week != "2024-W04" {
		t.Errorf("oldest kept week = %s, want 2024-W04", rep.WeeklyEarnings[0].Week)
	}
	if rep.WeeklyEarnings[11].Week != "2024-W15" {
		t.Errorf("newest week = %s, want 2024-W15", rep.WeeklyEarnings[11].Week)
	}
}

func TestAggregate_CarAndBrandBuckets(t *testing.T) {
	rep := Aggregate(sampleRides(), Filter{})

	if len(rep.CarStats) != 3 {
		t.Fatalf("got %d car buckets, want 3", len(rep.CarStats))
	}
	top := rep.CarStats[0]
	if top.Car != "Mercedes S-Class" || top.Brand != "Mercedes" || top.Rides != 2 {
		t.Errorf("top car = %+v", top)
	}
	if top.Hours != 19.0 || top.Earnings != 297.67 {
		t.Errorf("top car sums = %+v", top)
	}

	if len(rep.BrandStats) != 2 {
		t.Fatalf("got %d brand buckets, want 2", len(rep.BrandStats))
	}
	if rep.BrandStats[0].Brand != "Mercedes" || rep.BrandStats[0].Rides != 3 {
		t.Errorf("top brand = %+v", rep.BrandStats[0])
	}
}

func TestAggregate_ClientBucketsSortedByEarnings(t *testing.T) {
	rep := Aggregate(sampleRides(), Filter{})

	if len(rep.ClientStats) != 3 {
		t.Fatalf("got %d client buckets, want 3", len(rep.ClientStats))
	}
	if rep.ClientStats[0].Client != "Hotel Astoria" || rep.ClientStats[0].Earnings != 297.67 {
		t.Errorf("top client = %+v", rep.ClientStats[0])
	}
	if rep.ClientStats[1].Client != "Airport VIP" {
		t.Errorf("second client = %+v", rep.ClientStats[1])
	}
}

func TestAggregate_HourlyDistribution(t *testing.T) {
	rides := []ride.Ride{
		mkRide("2024-01-01", "c", "b", "m", "08:00", "11:00", 3, 30), // hours 8,9,10
		mkRide("2024-01-02", "c", "b", "m", "23:00", "01:00", 2, 20), // hours 23,0 (wrap)
		mkRide("2024-01-03", "c", "b", "m", "bad", "11:00", 3, 30),   // skipped
		mkRide("2024-01-04", "c", "b", "m", "-1:00", "03:00", 4, 40), // skipped, hour out of range
		mkRide("2024-01-05", "c", "b", "m", "08:00", "25:00", 4, 40), // skipped, hour out of range
	}
	rep := Aggregate(rides, Filter{})

	if len(rep.HourlyDistribution) != 24 {
		t.Fatalf("got %d hour slots, want 24", len(rep.HourlyDistribution))
	}
	counts := map[string]int{}
	for _, h := range rep.HourlyDistribution {
		counts[h.Hour] = h.Count
	}
	for hour, want := range map[string]int{"08": 1, "09": 1, "10": 1, "23": 1, "00": 1, "11": 0, "07": 0, "01": 0, "02": 0} {
		if counts[hour] != want {
			t.Errorf("hour %s count = %d, want %d", hour, counts[hour], want)
		}
	}
	if rep.HourlyDistribution[0].Hour != "00" || rep.HourlyDistribution[23].Hour != "23" {
		t.Error("hour slots must be emitted in label order")
	}
	// Rides with bad times still count toward scalar totals.
	if rep.TotalRides != 5 {
		t.Errorf("TotalRides = %d, want 5", rep.TotalRides)
	}
}

func TestAggregate_DayOfWeekBuckets(t *testing.T) {
	rides := []ride.Ride{
		mkRide("2024-12-02", "c", "b", "m", "08:00", "12:00", 4, 40),  // Monday
		mkRide("2024-12-08", "c", "b", "m", "08:00", "12:00", 4, 45),  // Sunday
		mkRide("2024-12-09", "c", "b", "m", "08:00", "12:00", 4, 50),  // Monday
		mkRide("not-a-date", "c", "b", "m", "08:00", "12:00", 4, 99),  // skipped
	}
	rep := Aggregate(rides, Filter{})

	if len(rep.DayOfWeekStats) != 7 {
		t.Fatalf("got %d day buckets, want 7", len(rep.DayOfWeekStats))
	}
	wantLabels := []string{"Ma", "Di", "Wo", "Do", "Vr", "Za", "Zo"}
	for i, b := range rep.DayOfWeekStats {
		if b.Day != wantLabels[i] {
			t.Errorf("day %d label = %s, want %s", i, b.Day, wantLabels[i])
		}
	}
	monday := rep.DayOfWeekStats[0]
	if monday.Rides != 2 || monday.Earnings != 90.0 {
		t.Errorf("monday bucket = %+v", monday)
	}
	sunday := rep.DayOfWeekStats[6]
	if sunday.Rides != 1 || sunday.Earnings != 45.0 {
		t.Errorf("sunday bucket = %+v", sunday)
	}
	// Tuesday has no rides but is still emitted, zero-filled.
	if rep.DayOfWeekStats[1].Rides != 0 {
		t.Errorf("tuesday bucket = %+v", rep.DayOfWeekStats[1])
	}
}

func TestAggregate_RecentRidesStableOrder(t *testing.T) {
	rides := []ride.Ride{
		mkRide("2024-12-01", "first", "b", "m", "08:00", "12:00", 4, 1),
		mkRide("2024-12-01", "second", "b", "m", "08:00", "12:00", 4, 2),
		mkRide("2024-12-03", "third", "b", "m", "08:00", "12:00", 4, 3),
		mkRide("2024-12-02", "fourth", "b", "m", "08:00", "12:00", 4, 4),
		mkRide("2024-12-01", "fifth", "b", "m", "08:00", "12:00", 4, 5),
		mkRide("2024-12-04", "sixth", "b", "m", "08:00", "12:00", 4, 6),
	}
	rep := Aggregate(rides, Filter{})

	if len(rep.RecentRides) != 5 {
		t.Fatalf("got %d recent rides, want 5", len(rep.RecentRides))
	}
	gotClients := make([]string, 0, 5)
	for _, r := range rep.RecentRides {
		gotClients = append(gotClients, r.ClientName)
	}
	// Dates descending; ties keep input order.
	want := []string{"sixth", "third", "fourth", "first", "second"}
	if !equalStrings(gotClients, want) {
		t.Errorf("recent rides = %v, want %v", gotClients, want)
	}
}

func TestAggregate_OrderIndependentTotalsAndBuckets(t *testing.T) {
	base := sampleRides()
	rep1 := Aggregate(base, Filter{})

	shuffled := make([]ride.Ride, len(base))
	copy(shuffled, base)
	rng := rand.New(rand.NewSource(42))
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	rep2 := Aggregate(shuffled, Filter{})

	if rep1.TotalNet != rep2.TotalNet || rep1.TotalHours != rep2.TotalHours || rep1.TotalRides != rep2.TotalRides {
		t.Error("scalar totals depend on input order")
	}
	if len(rep1.MonthlyEarnings) != len(rep2.MonthlyEarnings) {
		t.Fatal("monthly bucket count depends on input order")
	}
	for i := range rep1.MonthlyEarnings {
		if rep1.MonthlyEarnings[i] != rep2.MonthlyEarnings[i] {
			t.Errorf("monthly bucket %d differs: %+v vs %+v", i, rep1.MonthlyEarnings[i], rep2.MonthlyEarnings[i])
		}
	}
}

func TestGrossTotalOf_FallbackReconstruction(t *testing.T) {
	r := ride.Ride{GrossPay: 100, WWVAmount: 10, ExtraCosts: 5, SocialContribution: 2.71}
	// GrossTotal unset: reconstructed from the components.
	if got := grossTotalOf(r); got != 117.71 {
		t.Errorf("grossTotalOf = %v, want 117.71", got)
	}
	r.GrossTotal = 120
	if got := grossTotalOf(r); got != 120 {
		t.Errorf("grossTotalOf = %v, want stored 120", got)
	}
}
