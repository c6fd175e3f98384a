package domain

import "time"

// DailyReport aggregates one day of activity
type DailyReport struct {
	Date           time.Time
	TotalRevenue   float64
	TotalServices  int
	TotalCars      int
	NewCustomers   int
	PopularPackage string
	RevenueChange  float64
	ServicesChange float64
}

// DailyStats is the raw per-day aggregate read from storage
type DailyStats struct {
	Date           time.Time
	Revenue        float64
	Services       int
	Cars           int
	NewCustomers   int
	PopularPackage string
}

// Summary holds dashboard totals
type Summary struct {
	TotalCars     int
	TotalPackages int
	TotalServices int
	TotalPayments int
	TotalRevenue  float64
	TotalUsers    *int
}

// PercentChange returns the change from previous to current in percent,
// rounded to two decimals; 0 when previous is 0
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	change := (current - previous) / previous * 100
	if change < 0 {
		return float64(int64(change*100-0.5)) / 100
	}
	return float64(int64(change*100+0.5)) / 100
}

// BuildDailyReports turns per-day stats into reports for the `days` days ending at `end`,
// newest first. Days without stats are zero-filled. The day before the window is used
// only to compute the change of the oldest day.
func BuildDailyReports(stats []DailyStats, end time.Time, days int) []DailyReport {
	byDate := make(map[string]DailyStats, len(stats))
	for _, s := range stats {
		byDate[s.Date.Format(DateFormat)] = s
	}

	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	reports := make([]DailyReport, 0, days)
	for i := 0; i < days; i++ {
		day := endDay.AddDate(0, 0, -i)
		cur := byDate[day.Format(DateFormat)]
		prev := byDate[day.AddDate(0, 0, -1).Format(DateFormat)]

		reports = append(reports, DailyReport{
			Date:           day,
			TotalRevenue:   cur.Revenue,
			TotalServices:  cur.Services,
			TotalCars:      cur.Cars,
			NewCustomers:   cur.NewCustomers,
			PopularPackage: cur.PopularPackage,
			RevenueChange:  PercentChange(cur.Revenue, prev.Revenue),
			ServicesChange: PercentChange(float64(cur.Services), float64(prev.Services)),
		})
	}
	return reports
}
