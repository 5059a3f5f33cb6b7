package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmaciasantana/pos-api/internal/domain/entity"
	"github.com/farmaciasantana/pos-api/internal/domain/enum"
	"github.com/farmaciasantana/pos-api/internal/domain/repository"
	"github.com/farmaciasantana/pos-api/pkg/pagination"
)

// DashboardService aggregates the figures shown on the terminal home
// screen: catalog size, stock alerts, today's takings and a 7-day sales
// series.
type DashboardService struct {
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	saleRepo    repository.SaleRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	saleRepo repository.SaleRepository,
) *DashboardService {
	return &DashboardService{
		productRepo: productRepo,
		clientRepo:  clientRepo,
		saleRepo:    saleRepo,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalProducts  int64             `json:"total_products"`
	TotalClients   int64             `json:"total_clients"`
	LowStockCount  int64             `json:"low_stock_count"`
	TodaySales     int64             `json:"today_sales"`
	TodayRevenue   decimal.Decimal   `json:"today_revenue"`
	WeekRevenue    decimal.Decimal   `json:"week_revenue"`
	DailySalesData []DailySalesPoint `json:"daily_sales_data"`
	RecentSales    []entity.Sale     `json:"recent_sales"`
}

// DailySalesPoint is one day in the dashboard sales series.
type DailySalesPoint struct {
	Date    string          `json:"date"`
	Sales   int64           `json:"sales"`
	Revenue decimal.Decimal `json:"revenue"`
}

const recentSalesLimit = 5

// GetDashboardStats collects all dashboard statistics. Counts come from
// the list endpoints with a single-row page; revenue figures only count
// completed sales.
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		TodayRevenue: decimal.Zero,
		WeekRevenue:  decimal.Zero,
	}

	countPage := &pagination.PaginationParams{Page: 1, PerPage: 1}

	_, totalProducts, err := s.productRepo.List(ctx, &repository.ProductFilterParams{Pagination: countPage})
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = totalProducts

	_, totalClients, err := s.clientRepo.List(ctx, &repository.ClientFilterParams{Pagination: countPage})
	if err != nil {
		return nil, err
	}
	stats.TotalClients = totalClients

	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	stats.LowStockCount = int64(len(lowStock))

	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := startOfToday.AddDate(0, 0, -6)
	completed := enum.SaleStatusCompleted

	weekSales, _, err := s.saleRepo.List(ctx, &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 1000},
		Status:     &completed,
		StartDate:  &weekStart,
	})
	if err != nil {
		return nil, err
	}

	stats.DailySalesData = make([]DailySalesPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := startOfToday.AddDate(0, 0, -i)
		next := day.AddDate(0, 0, 1)

		var count int64
		revenue := decimal.Zero
		for _, sale := range weekSales {
			if sale.CreatedAt.Before(day) || !sale.CreatedAt.Before(next) {
				continue
			}
			count++
			revenue = revenue.Add(sale.Total)
		}

		if i == 0 {
			stats.TodaySales = count
			stats.TodayRevenue = revenue
		}
		stats.WeekRevenue = stats.WeekRevenue.Add(revenue)

		stats.DailySalesData = append(stats.DailySalesData, DailySalesPoint{
			Date:    day.Format("02/01"),
			Sales:   count,
			Revenue: revenue,
		})
	}

	recent, _, err := s.saleRepo.List(ctx, &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: recentSalesLimit},
	})
	if err != nil {
		return nil, err
	}
	stats.RecentSales = recent

	return stats, nil
}
