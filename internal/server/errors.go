package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingdomain "github.com/monasabatlabs/monasabat/internal/booking/domain"
	contactdomain "github.com/monasabatlabs/monasabat/internal/contact/domain"
	eventitemdomain "github.com/monasabatlabs/monasabat/internal/eventitem/domain"
	joinrequestdomain "github.com/monasabatlabs/monasabat/internal/joinrequest/domain"
	otpdomain "github.com/monasabatlabs/monasabat/internal/otp/domain"
	quotadomain "github.com/monasabatlabs/monasabat/internal/quota/domain"
	supplierdomain "github.com/monasabatlabs/monasabat/internal/supplier/domain"
	subscriptiondomain "github.com/monasabatlabs/monasabat/internal/subscription/domain"
)

type apiError struct {
	status  int
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *apiError) Error() string { return e.Code + ": " + e.Message }

func invalidRequestError() error {
	return &apiError{
		status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "request body could not be parsed",
	}
}

func newValidationError(field, code, message string) error {
	return &apiError{
		status:  http.StatusBadRequest,
		Code:    code,
		Message: message,
		Field:   field,
	}
}

// statusFor translates domain sentinels into HTTP statuses. Anything
// unrecognized is a 500 so internal failures never leak detail.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, supplierdomain.ErrSupplierNotFound),
		errors.Is(err, subscriptiondomain.ErrSubscriptionNotFound),
		errors.Is(err, eventitemdomain.ErrEventItemNotFound),
		errors.Is(err, bookingdomain.ErrBookingNotFound),
		errors.Is(err, contactdomain.ErrContactRequestNotFound),
		errors.Is(err, joinrequestdomain.ErrJoinRequestNotFound):
		return http.StatusNotFound, "not_found"

	case errors.Is(err, supplierdomain.ErrSupplierLocked):
		return http.StatusForbidden, "supplier_locked"
	case errors.Is(err, supplierdomain.ErrNotSupplier),
		errors.Is(err, bookingdomain.ErrNotBookingOwner),
		errors.Is(err, contactdomain.ErrNotRequestOwner),
		errors.Is(err, eventitemdomain.ErrNotItemOwner):
		return http.StatusForbidden, "access_denied"

	case errors.Is(err, otpdomain.ErrCodeInvalid):
		return http.StatusUnauthorized, "invalid_code"

	case errors.Is(err, bookingdomain.ErrContactOnlyCategory),
		errors.Is(err, bookingdomain.ErrDateUnavailable),
		errors.Is(err, bookingdomain.ErrInvalidStatus),
		errors.Is(err, bookingdomain.ErrNotPending),
		errors.Is(err, contactdomain.ErrNotContactCategory),
		errors.Is(err, contactdomain.ErrInvalidStatus),
		errors.Is(err, eventitemdomain.ErrInvalidPrice),
		errors.Is(err, eventitemdomain.ErrInvalidName),
		errors.Is(err, joinrequestdomain.ErrInvalidStatus),
		errors.Is(err, joinrequestdomain.ErrMissingName),
		errors.Is(err, joinrequestdomain.ErrMissingPhone),
		errors.Is(err, quotadomain.ErrUnknownPlan):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, supplierdomain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, "storage_unavailable"
	}
	return http.StatusInternalServerError, "internal_error"
}

func (s *Server) abortWithError(c *gin.Context, err error) {
	var ae *apiError
	if errors.As(err, &ae) {
		c.AbortWithStatusJSON(ae.status, gin.H{"error": ae})
		return
	}

	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{
		"code":    code,
		"message": err.Error(),
	}})
}
