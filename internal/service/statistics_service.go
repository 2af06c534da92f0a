package service

import (
	"context"
	"fmt"
	"time"

	"github.com/SkhumbuzoT/prime-tools/internal/model"

	"gorm.io/gorm"
)

// --- DTOs ---

type FleetTrendPoint struct {
	Period        string `json:"period"`
	EstimateCount int    `json:"estimate_count"`
	TotalRevenue  string `json:"total_revenue"`
	TotalCost     string `json:"total_cost"`
	TotalProfit   string `json:"total_profit"`
	FuelSpend     string `json:"fuel_spend"`
}

type TrendFilter struct {
	GroupBy   string // week, month, quarter, year
	StartDate string // RFC3339
	EndDate   string // RFC3339
}

// --- Interface ---

type StatisticsService interface {
	GetFleetStatistics(ctx context.Context, startDate, endDate time.Time) (*model.FleetStatisticsResponse, error)
	GetFleetTrend(ctx context.Context, filter TrendFilter) ([]FleetTrendPoint, error)
}

type statisticsService struct {
	db *gorm.DB
}

func NewStatisticsService(db *gorm.DB) StatisticsService {
	return &statisticsService{db: db}
}

// --- Implementation ---

func (s *statisticsService) GetFleetStatistics(ctx context.Context, startDate, endDate time.Time) (*model.FleetStatisticsResponse, error) {
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("end_date must not precede start_date")
	}

	type estimateAgg struct {
		TotalEstimates  int     `gorm:"column:total_estimates"`
		LossMakingCount int     `gorm:"column:loss_making_count"`
		TotalRevenue    float64 `gorm:"column:total_revenue"`
		TotalCost       float64 `gorm:"column:total_cost"`
		TotalProfit     float64 `gorm:"column:total_profit"`
		AvgMarginPct    float64 `gorm:"column:avg_margin_pct"`
	}

	var est estimateAgg
	if err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_estimates,
			COUNT(*) FILTER (WHERE profit < 0) AS loss_making_count,
			COALESCE(SUM(total_revenue), 0) AS total_revenue,
			COALESCE(SUM(total_cost), 0) AS total_cost,
			COALESCE(SUM(profit), 0) AS total_profit,
			COALESCE(AVG(profit_margin_pct), 0) AS avg_margin_pct
		FROM trip_estimates
		WHERE created_at >= $1 AND created_at <= $2
	`, startDate, endDate).Scan(&est).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate estimates: %w", err)
	}

	type slipAgg struct {
		SlipCount  int     `gorm:"column:slip_count"`
		FuelLitres float64 `gorm:"column:fuel_litres"`
		FuelSpend  float64 `gorm:"column:fuel_spend"`
	}

	var slips slipAgg
	if err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS slip_count,
			COALESCE(SUM(litres), 0) AS fuel_litres,
			COALESCE(SUM(total), 0) AS fuel_spend
		FROM fuel_slips
		WHERE slip_date >= $1 AND slip_date <= $2
	`, startDate, endDate).Scan(&slips).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate fuel slips: %w", err)
	}

	type routeAgg struct {
		LoadingPoint    string  `gorm:"column:loading_point"`
		OffloadingPoint string  `gorm:"column:offloading_point"`
		EstimateCount   int     `gorm:"column:estimate_count"`
		TotalProfit     float64 `gorm:"column:total_profit"`
		AvgMarginPct    float64 `gorm:"column:avg_margin_pct"`
	}

	var routes []routeAgg
	if err := s.db.WithContext(ctx).Raw(`
		SELECT
			loading_point,
			offloading_point,
			COUNT(*) AS estimate_count,
			COALESCE(SUM(profit), 0) AS total_profit,
			COALESCE(AVG(profit_margin_pct), 0) AS avg_margin_pct
		FROM trip_estimates
		WHERE created_at >= $1 AND created_at <= $2
		  AND loading_point != '' AND offloading_point != ''
		GROUP BY loading_point, offloading_point
		ORDER BY total_profit DESC
		LIMIT 10
	`, startDate, endDate).Scan(&routes).Error; err != nil {
		return nil, fmt.Errorf("failed to rank routes: %w", err)
	}

	topRoutes := make([]model.RouteRanking, 0, len(routes))
	for _, r := range routes {
		topRoutes = append(topRoutes, model.RouteRanking{
			LoadingPoint:    r.LoadingPoint,
			OffloadingPoint: r.OffloadingPoint,
			EstimateCount:   r.EstimateCount,
			TotalProfit:     r.TotalProfit,
			AvgMarginPct:    r.AvgMarginPct,
		})
	}

	return &model.FleetStatisticsResponse{
		TotalEstimates:     est.TotalEstimates,
		LossMakingCount:    est.LossMakingCount,
		TotalRevenue:       est.TotalRevenue,
		TotalCost:          est.TotalCost,
		TotalProfit:        est.TotalProfit,
		AvgProfitMarginPct: est.AvgMarginPct,
		FuelSlipCount:      slips.SlipCount,
		FuelLitres:         slips.FuelLitres,
		FuelSpend:          slips.FuelSpend,
		TopRoutes:          topRoutes,
		TimeRangeStartDate: startDate,
		TimeRangeEndDate:   endDate,
	}, nil
}

func (s *statisticsService) GetFleetTrend(ctx context.Context, filter TrendFilter) ([]FleetTrendPoint, error) {
	// Validate group_by
	groupBy := filter.GroupBy
	switch groupBy {
	case "week", "month", "quarter", "year":
		// valid
	default:
		groupBy = "month" // default
	}

	// Build raw SQL using DATE_TRUNC
	query := `
		SELECT
			TO_CHAR(DATE_TRUNC($1, e.created_at), 'YYYY-MM-DD') AS period,
			COUNT(*) AS estimate_count,
			COALESCE(SUM(e.total_revenue), 0) AS total_revenue,
			COALESCE(SUM(e.total_cost), 0) AS total_cost,
			COALESCE(SUM(e.profit), 0) AS total_profit,
			COALESCE((
				SELECT SUM(f.total)
				FROM fuel_slips f
				WHERE DATE_TRUNC($1, f.slip_date::timestamptz) = DATE_TRUNC($1, e.created_at)
			), 0) AS fuel_spend
		FROM trip_estimates e
		WHERE e.created_at >= $2::timestamptz
		  AND e.created_at <= $3::timestamptz
		GROUP BY DATE_TRUNC($1, e.created_at)
		ORDER BY period
	`

	type rawResult struct {
		Period        string  `gorm:"column:period"`
		EstimateCount int     `gorm:"column:estimate_count"`
		TotalRevenue  float64 `gorm:"column:total_revenue"`
		TotalCost     float64 `gorm:"column:total_cost"`
		TotalProfit   float64 `gorm:"column:total_profit"`
		FuelSpend     float64 `gorm:"column:fuel_spend"`
	}

	var rows []rawResult
	if err := s.db.WithContext(ctx).Raw(query,
		groupBy,
		filter.StartDate,
		filter.EndDate,
	).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query fleet trend: %w", err)
	}

	result := make([]FleetTrendPoint, 0, len(rows))
	for _, r := range rows {
		result = append(result, FleetTrendPoint{
			Period:        r.Period,
			EstimateCount: r.EstimateCount,
			TotalRevenue:  fmt.Sprintf("%.2f", r.TotalRevenue),
			TotalCost:     fmt.Sprintf("%.2f", r.TotalCost),
			TotalProfit:   fmt.Sprintf("%.2f", r.TotalProfit),
			FuelSpend:     fmt.Sprintf("%.2f", r.FuelSpend),
		})
	}

	return result, nil
}
