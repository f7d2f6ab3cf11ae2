package statistics

import (
	"context"
	"fmt"

	models "github.com/hevolife/bookingfast/internal/models"
	types "github.com/hevolife/bookingfast/pkg/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Statistic types served to the dashboard.
type StatisticType string

const (
	StatisticTypeDailyBookingCount StatisticType = "daily_booking_count"
	StatisticTypeDailyRevenue      StatisticType = "daily_revenue"
	StatisticTypeTotalRevenue      StatisticType = "total_revenue"
	StatisticTypePaymentStatus     StatisticType = "bookings_by_payment_status"
)

type BookingStatisticDataItem struct {
	ID StatisticType `json:"id"`
}

type BookingStatisticRequest struct {
	Filters   []*types.CommonFilter       `json:"filters"`
	DataItems []*BookingStatisticDataItem `json:"data_items"`
}

// Build composes a WHERE clause from the request filters.
func (f *BookingStatisticRequest) Build(builder clause.Builder) {
	if f == nil || len(f.Filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	for i, filter := range f.Filters {
		if i > 0 {
			builder.WriteString(" AND ")
		}
		filter.Build(builder)
	}
}

type BookingStatisticResponseDataItem struct {
	Date  string `json:"date"`
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
}

type BookingStatisticResponse struct {
	DataItems map[StatisticType][]BookingStatisticResponseDataItem `json:"data_items"`
}

// Service provides statistics operations
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) getDailyBookingCount(ctx context.Context, request *BookingStatisticRequest) ([]BookingStatisticResponseDataItem, error) {
	var results []BookingStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table((models.Booking{}).TableName()).
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') as date, count(*) as value").
		Where("booking_status != ?", types.BookingStatusCancelled).
		Where(clause.Where{Exprs: []clause.Expression{request}}).
		Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Order("date")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Daily revenue sums the derived payment_amount column; refunds are already
// reflected there, so no ledger unrolling is needed.
func (s *Service) getDailyRevenue(ctx context.Context, request *BookingStatisticRequest) ([]BookingStatisticResponseDataItem, error) {
	var results []BookingStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table((models.Booking{}).TableName()).
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') as date, COALESCE(SUM(payment_amount), 0) as value").
		Where("booking_status != ?", types.BookingStatusCancelled).
		Where(clause.Where{Exprs: []clause.Expression{request}}).
		Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true})
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getTotalRevenue(ctx context.Context, request *BookingStatisticRequest) ([]BookingStatisticResponseDataItem, error) {
	var results []BookingStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table((models.Booking{}).TableName()).
		Select("COALESCE(SUM(payment_amount), 0) as value").
		Where("booking_status != ?", types.BookingStatusCancelled).
		Where(clause.Where{Exprs: []clause.Expression{request}})
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getBookingsByPaymentStatus(ctx context.Context, request *BookingStatisticRequest) ([]BookingStatisticResponseDataItem, error) {
	var results []BookingStatisticResponseDataItem
	q := s.db.WithContext(ctx).Table((models.Booking{}).TableName()).
		Select("payment_status as label, count(*) as value").
		Where("booking_status != ?", types.BookingStatusCancelled).
		Where(clause.Where{Exprs: []clause.Expression{request}}).
		Group("payment_status").
		Order("label")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetBookingStatistics serves the requested data items in one call.
func (s *Service) GetBookingStatistics(ctx context.Context, request *BookingStatisticRequest) (*BookingStatisticResponse, error) {
	if request == nil || len(request.DataItems) == 0 {
		return nil, fmt.Errorf("no data items requested")
	}

	resp := &BookingStatisticResponse{DataItems: map[StatisticType][]BookingStatisticResponseDataItem{}}
	for _, item := range request.DataItems {
		var (
			rows []BookingStatisticResponseDataItem
			err  error
		)
		switch item.ID {
		case StatisticTypeDailyBookingCount:
			rows, err = s.getDailyBookingCount(ctx, request)
		case StatisticTypeDailyRevenue:
			rows, err = s.getDailyRevenue(ctx, request)
		case StatisticTypeTotalRevenue:
			rows, err = s.getTotalRevenue(ctx, request)
		case StatisticTypePaymentStatus:
			rows, err = s.getBookingsByPaymentStatus(ctx, request)
		default:
			return nil, fmt.Errorf("unsupported statistic type: %s", item.ID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to compute %s: %w", item.ID, err)
		}
		resp.DataItems[item.ID] = rows
	}
	return resp, nil
}
