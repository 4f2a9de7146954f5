package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	bookingdomain "github.com/monasabatlabs/monasabat/internal/booking/domain"
	eventitemdomain "github.com/monasabatlabs/monasabat/internal/eventitem/domain"
	joinrequestdomain "github.com/monasabatlabs/monasabat/internal/joinrequest/domain"
	supplierdomain "github.com/monasabatlabs/monasabat/internal/supplier/domain"
)

func TestStatusForDomainSentinels(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", supplierdomain.ErrSupplierNotFound, http.StatusNotFound, "not_found"},
		{"join request not found", joinrequestdomain.ErrJoinRequestNotFound, http.StatusNotFound, "not_found"},
		{"locked", supplierdomain.ErrSupplierLocked, http.StatusForbidden, "supplier_locked"},
		{"item ownership", eventitemdomain.ErrNotItemOwner, http.StatusForbidden, "access_denied"},
		{"validation", bookingdomain.ErrDateUnavailable, http.StatusBadRequest, "date_unavailable"},
		{"unknown", errors.New("driver: bad connection"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := statusFor(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, code)
		})
	}
}

// Wrapped storage failures keep their cause in the message but still
// map to 503 so callers know the operation is retryable.
func TestStatusForWrappedStorageFailure(t *testing.T) {
	err := fmt.Errorf("%w: %v", supplierdomain.ErrStorageUnavailable, errors.New("connection refused"))

	status, code := statusFor(err)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "storage_unavailable", code)
}
