package model

import (
	"time"
)

// FleetStatisticsResponse aggregates estimate and fuel-slip totals for a
// date range, plus the routes ranked by profit.
type FleetStatisticsResponse struct {
	TotalEstimates     int            `json:"total_estimates"`
	LossMakingCount    int            `json:"loss_making_count"`
	TotalRevenue       float64        `json:"total_revenue"`
	TotalCost          float64        `json:"total_cost"`
	TotalProfit        float64        `json:"total_profit"`
	AvgProfitMarginPct float64        `json:"avg_profit_margin_pct"`
	FuelSlipCount      int            `json:"fuel_slip_count"`
	FuelLitres         float64        `json:"fuel_litres"`
	FuelSpend          float64        `json:"fuel_spend"`
	TopRoutes          []RouteRanking `json:"top_routes"`
	TimeRangeStartDate time.Time      `json:"time_range_start_date"`
	TimeRangeEndDate   time.Time      `json:"time_range_end_date"`
}

// RouteRanking represents a loading/offloading pair ranked by accumulated profit
type RouteRanking struct {
	LoadingPoint    string  `json:"loading_point"`
	OffloadingPoint string  `json:"offloading_point"`
	EstimateCount   int     `json:"estimate_count"`
	TotalProfit     float64 `json:"total_profit"`
	AvgMarginPct    float64 `json:"avg_margin_pct"`
}
