package failure

import (
	"errors"
	"net/http"
)

// Reasons classify a failure independently of the transport.
const (
	ReasonValidation         = "validation"
	ReasonNoEligibleMaster   = "no_eligible_master"
	ReasonSlotUnavailable    = "slot_unavailable"
	ReasonPersistenceFailure = "persistence_failure"
	ReasonNotFound           = "not_found"
	ReasonUnauthorized       = "unauthorized"
	ReasonForbidden          = "forbidden"
	ReasonConflict           = "conflict"
	ReasonInternal           = "internal"
)

// Failure is an error carrying its HTTP status and reason.
type Failure struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, reason, msg string) error {
	return &Failure{Code: code, Reason: reason, Message: msg}
}

// BadRequest turns err into a validation failure; nil stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, ReasonValidation, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, ReasonValidation, msg)
}

// NotFound names the missing entity.
func NotFound(entityName string) error {
	return newFailure(http.StatusNotFound, ReasonNotFound, entityName)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, ReasonUnauthorized, msg)
}

// Forbidden is for authenticated callers lacking the role.
func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, ReasonForbidden, msg)
}

func Conflict(msg string) error {
	return newFailure(http.StatusConflict, ReasonConflict, msg)
}

// NoEligibleMaster reports that no single master covers the requested bundle.
func NoEligibleMaster(msg string) error {
	return newFailure(http.StatusUnprocessableEntity, ReasonNoEligibleMaster, msg)
}

// SlotUnavailable reports a start time that is no longer free.
func SlotUnavailable(msg string) error {
	return newFailure(http.StatusConflict, ReasonSlotUnavailable, msg)
}

// PersistenceFailure hides the store error behind a retryable message.
func PersistenceFailure(msg string) error {
	return newFailure(http.StatusServiceUnavailable, ReasonPersistenceFailure, msg)
}

// GetCode returns the status of the first Failure in err's chain, 500 otherwise.
func GetCode(err error) int {
	if fail, ok := as(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetReason returns the reason of the first Failure in err's chain, ReasonInternal otherwise.
func GetReason(err error) string {
	if fail, ok := as(err); ok && fail.Reason != "" {
		return fail.Reason
	}

	return ReasonInternal
}

func HasReason(err error, reason string) bool {
	return err != nil && GetReason(err) == reason
}

func as(err error) (*Failure, bool) {
	var fail *Failure

	return fail, errors.As(err, &fail)
}
