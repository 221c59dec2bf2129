package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kindermind/scheduler/internal/schederr"
)

// statusByKind maps scheduling error kinds to HTTP statuses. Anything
// outside the map is an unexpected failure and answers 500.
var statusByKind = map[schederr.Kind]int{
	schederr.KindInvalidWindow:                http.StatusBadRequest,
	schederr.KindSlotGeneration:               http.StatusBadRequest,
	schederr.KindAvailabilityConflict:         http.StatusConflict,
	schederr.KindSlotNotAvailable:             http.StatusConflict,
	schederr.KindInsufficientConsecutiveSlots: http.StatusConflict,
	schederr.KindBooking:                      http.StatusBadRequest,
	schederr.KindAppointmentNotFound:          http.StatusNotFound,
	schederr.KindAccessDenied:                 http.StatusForbidden,
	schederr.KindCancellation:                 http.StatusBadRequest,
	schederr.KindQRVerification:               http.StatusBadRequest,
	schederr.KindSessionStart:                 http.StatusBadRequest,
	schederr.KindNoShow:                       http.StatusBadRequest,
	schederr.KindInvalidTransition:            http.StatusBadRequest,
}

// FromError answers the request with the status and code matching a
// scheduling error, falling back to a generic 500.
func FromError(c *gin.Context, err error) {
	kind := schederr.KindOf(err)
	if kind == "" {
		Internal(c, "internal_error", "Something went wrong.")
		return
	}

	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	Write(c, status, string(kind), err.Error())
}
