package domain

import (
	"errors"
	"strings"

	"github.com/monasabatlabs/monasabat/internal/config"
)

var ErrUnknownPlan = errors.New("unknown_plan")

// Flow identifies which activity path a countable event arrived on.
type Flow string

const (
	FlowContact Flow = "contact"
	FlowBooking Flow = "booking"
)

// Policy is the pure quota decision logic. All category sets and limit
// tables come from configuration; there is no I/O here.
type Policy struct {
	contactCategories    map[string]struct{}
	contactSubcategories map[string]struct{}
	bookingCategories    map[string]struct{}
	planLimits           map[string]int
	freeLimit            int
	warningWindow        int
}

func NewPolicy(cfg config.Config) *Policy {
	return &Policy{
		contactCategories:    toSet(cfg.Quota.ContactOnlyCategories),
		contactSubcategories: toSet(cfg.Quota.ContactOnlySubcategories),
		bookingCategories:    toSet(cfg.Quota.BookingLimitedCategories),
		planLimits:           lowerKeys(cfg.Quota.PlanLimits),
		freeLimit:            cfg.Quota.FreeLimit,
		warningWindow:        cfg.Quota.WarningWindow,
	}
}

// IsContactOnly reports whether a service category uses the direct-contact
// flow instead of the availability-based booking flow.
func (p *Policy) IsContactOnly(category, subcategory string) bool {
	if _, ok := p.contactCategories[norm(category)]; ok {
		return true
	}
	if subcategory == "" {
		return false
	}
	_, ok := p.contactSubcategories[norm(subcategory)]
	return ok
}

// IsBookingLimited reports whether bookings in this category count against
// the supplier quota.
func (p *Policy) IsBookingLimited(category string) bool {
	_, ok := p.bookingCategories[norm(category)]
	return ok
}

// IsCountable decides whether an activity event is subject to quota
// enforcement at all. Non-countable categories never touch lock state.
func (p *Policy) IsCountable(flow Flow, category, subcategory string) bool {
	switch flow {
	case FlowContact:
		return p.IsContactOnly(category, subcategory)
	case FlowBooking:
		return p.IsBookingLimited(category)
	default:
		return false
	}
}

// LimitFor returns the countable-activity ceiling for a plan. An empty
// plan means the free tier. A plan missing from the table is an error.
func (p *Policy) LimitFor(plan string) (int, error) {
	if plan == "" {
		return p.freeLimit, nil
	}
	limit, ok := p.planLimits[norm(plan)]
	if !ok {
		return 0, ErrUnknownPlan
	}
	return limit, nil
}

// KnownPlan reports whether plan exists in the limit table.
func (p *Policy) KnownPlan(plan string) bool {
	_, ok := p.planLimits[norm(plan)]
	return ok
}

// WarningThreshold is relative to the limit so premium suppliers get a
// proportionally higher warning ceiling.
func (p *Policy) WarningThreshold(limit int) int {
	return limit - p.warningWindow
}

func (p *Policy) ShouldWarn(count int64, limit int) bool {
	return count >= int64(p.WarningThreshold(limit)) && count < int64(limit)
}

func (p *Policy) ShouldLock(count int64, limit int) bool {
	return count >= int64(limit)
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = norm(v); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func lowerKeys(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[norm(k)] = v
	}
	return out
}
