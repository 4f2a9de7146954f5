package domain

import (
	"context"

	eventitemdomain "github.com/monasabatlabs/monasabat/internal/eventitem/domain"
)

// Stats is the admin dashboard aggregate.
type Stats struct {
	TotalUsers        int64                            `json:"total_users"`
	TotalSuppliers    int64                            `json:"total_suppliers"`
	TotalServices     int64                            `json:"total_services"`
	TotalBookings     int64                            `json:"total_bookings"`
	ConfirmedBookings int64                            `json:"confirmed_bookings"`
	CancelledBookings int64                            `json:"cancelled_bookings"`
	TotalRevenue      int64                            `json:"total_revenue"`
	TopCategories     []eventitemdomain.CategoryCount  `json:"top_categories"`
}

type Service interface {
	Stats(ctx context.Context) (Stats, error)
}
