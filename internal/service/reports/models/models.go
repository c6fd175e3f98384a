package models

import "github.com/m04kA/SMC-CarWashService/internal/domain"

// DailyReportResponse показатели за один день
type DailyReportResponse struct {
	Date           string  `json:"date"` // "2025-10-15"
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalServices  int     `json:"totalServices"`
	TotalCars      int     `json:"totalCars"`
	NewCustomers   int     `json:"newCustomers"`
	PopularPackage string  `json:"popularPackage"`
	RevenueChange  float64 `json:"revenueChange"`
	ServicesChange float64 `json:"servicesChange"`
}

// SummaryResponse итоговые показатели для дашборда
type SummaryResponse struct {
	TotalCars     int     `json:"totalCars"`
	TotalPackages int     `json:"totalPackages"`
	TotalServices int     `json:"totalServices"`
	TotalPayments int     `json:"totalPayments"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalUsers    *int    `json:"totalUsers,omitempty"`
}

// FromDomainDailyReports конвертирует дневные отчеты
func FromDomainDailyReports(list []domain.DailyReport) []DailyReportResponse {
	result := make([]DailyReportResponse, 0, len(list))
	for _, r := range list {
		result = append(result, DailyReportResponse{
			Date:           r.Date.Format(domain.DateFormat),
			TotalRevenue:   r.TotalRevenue,
			TotalServices:  r.TotalServices,
			TotalCars:      r.TotalCars,
			NewCustomers:   r.NewCustomers,
			PopularPackage: r.PopularPackage,
			RevenueChange:  r.RevenueChange,
			ServicesChange: r.ServicesChange,
		})
	}
	return result
}

// FromDomainSummary конвертирует domain.Summary в SummaryResponse
func FromDomainSummary(s *domain.Summary) SummaryResponse {
	return SummaryResponse{
		TotalCars:     s.TotalCars,
		TotalPackages: s.TotalPackages,
		TotalServices: s.TotalServices,
		TotalPayments: s.TotalPayments,
		TotalRevenue:  s.TotalRevenue,
		TotalUsers:    s.TotalUsers,
	}
}
