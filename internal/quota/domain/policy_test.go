package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/monasabatlabs/monasabat/internal/config"
	"github.com/monasabatlabs/monasabat/internal/quota/domain"
)

func testConfig() config.Config {
	return config.Config{
		Quota: config.QuotaConfig{
			ContactOnlyCategories:    []string{"farm", "wedding-halls"},
			ContactOnlySubcategories: []string{},
			BookingLimitedCategories: []string{"hall", "farm", "salon"},
			PlanLimits:               map[string]int{"basic": 50, "premium": 100},
			FreeLimit:                50,
			WarningWindow:            10,
		},
	}
}

func TestIsCountable(t *testing.T) {
	p := domain.NewPolicy(testConfig())

	assert.True(t, p.IsCountable(domain.FlowContact, "farm", ""))
	assert.True(t, p.IsCountable(domain.FlowContact, "wedding-halls", ""))
	assert.True(t, p.IsCountable(domain.FlowContact, "Farm", ""), "category match is case-insensitive")
	assert.False(t, p.IsCountable(domain.FlowContact, "photography", ""))

	assert.True(t, p.IsCountable(domain.FlowBooking, "hall", ""))
	assert.True(t, p.IsCountable(domain.FlowBooking, "Salon", ""))
	assert.False(t, p.IsCountable(domain.FlowBooking, "catering", ""))

	assert.False(t, p.IsCountable(domain.Flow("unknown"), "farm", ""))
}

func TestLimitFor(t *testing.T) {
	p := domain.NewPolicy(testConfig())

	limit, err := p.LimitFor("basic")
	assert.NoError(t, err)
	assert.Equal(t, 50, limit)

	limit, err = p.LimitFor("premium")
	assert.NoError(t, err)
	assert.Equal(t, 100, limit)

	// No subscription falls back to the free tier.
	limit, err = p.LimitFor("")
	assert.NoError(t, err)
	assert.Equal(t, 50, limit)

	_, err = p.LimitFor("platinum")
	assert.ErrorIs(t, err, domain.ErrUnknownPlan)
}

func TestWarningWindow(t *testing.T) {
	p := domain.NewPolicy(testConfig())

	assert.Equal(t, 40, p.WarningThreshold(50))
	assert.Equal(t, 90, p.WarningThreshold(100))

	assert.False(t, p.ShouldWarn(39, 50))
	assert.True(t, p.ShouldWarn(40, 50))
	assert.True(t, p.ShouldWarn(49, 50))
	assert.False(t, p.ShouldWarn(50, 50), "at the limit the lock takes over")
}

func TestShouldLockMonotonic(t *testing.T) {
	p := domain.NewPolicy(testConfig())

	locked := false
	for count := int64(0); count <= 200; count++ {
		now := p.ShouldLock(count, 50)
		if locked {
			assert.True(t, now, "ShouldLock must stay true once crossed, count=%d", count)
		}
		if now {
			locked = true
		}
	}
	assert.True(t, locked)
	assert.Equal(t, int64(50), func() int64 {
		for c := int64(0); ; c++ {
			if p.ShouldLock(c, 50) {
				return c
			}
		}
	}())
}
