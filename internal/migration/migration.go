package migration

import (
	"fmt"

	"go.uber.org/fx"
	"gorm.io/gorm"

	bookingdomain "github.com/monasabatlabs/monasabat/internal/booking/domain"
	contactdomain "github.com/monasabatlabs/monasabat/internal/contact/domain"
	eventitemdomain "github.com/monasabatlabs/monasabat/internal/eventitem/domain"
	joinrequestdomain "github.com/monasabatlabs/monasabat/internal/joinrequest/domain"
	supplierdomain "github.com/monasabatlabs/monasabat/internal/supplier/domain"
	subscriptiondomain "github.com/monasabatlabs/monasabat/internal/subscription/domain"
)

// Run converges the schema for every model. AutoMigrate keeps the
// schema portable across the postgres and sqlite drivers; it must be
// run explicitly by the migrate entrypoint before serving.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&supplierdomain.Supplier{},
		&subscriptiondomain.Subscription{},
		&eventitemdomain.EventItem{},
		&bookingdomain.Booking{},
		&contactdomain.ContactRequest{},
		&joinrequestdomain.JoinRequest{},
	); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

var Module = fx.Module("migrations",
	fx.Invoke(Run),
)
