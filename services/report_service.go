package services

import (
	"context"

	"cardapio-go/repository"

	"github.com/shopspring/decimal"
)

const DefaultTopItems = 5

type Report struct {
	TotalSales    decimal.Decimal      `json:"total_sales"`
	TotalOrders   int64                `json:"total_orders"`
	AverageTicket decimal.Decimal      `json:"average_ticket"`
	TopItems      []repository.TopItem `json:"top_items"`
}

type IReportService interface {
	Summary(ctx context.Context, top int) (*Report, error)
}

type ReportService struct {
	repo repository.IOrderRepository
}

func NewReportService(repo repository.IOrderRepository) *ReportService {
	return &ReportService{repo: repo}
}

// Summary covers every order that was not cancelled.
func (s *ReportService) Summary(ctx context.Context, top int) (*Report, error) {
	if top <= 0 || top > 50 {
		top = DefaultTopItems
	}

	summary, err := s.repo.SalesSummary(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.TopItems(ctx, top)
	if err != nil {
		return nil, err
	}

	report := &Report{
		TotalSales:    summary.TotalSales,
		TotalOrders:   summary.TotalOrders,
		AverageTicket: decimal.Zero,
		TopItems:      items,
	}
	if summary.TotalOrders > 0 {
		report.AverageTicket = summary.TotalSales.Div(decimal.NewFromInt(summary.TotalOrders)).Round(2)
	}
	return report, nil
}
