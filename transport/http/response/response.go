package response

import (
	"encoding/json"
	"net/http"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/shared/logger"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error  *string `json:"error,omitempty"`
	Reason *string `json:"reason,omitempty"`
}

// DataError carries the current state next to a rejected action.
type DataError[T any] struct {
	Data *T `json:"data,omitempty"`
	Error
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError maps err to its failure status. Internal failures never leak their message.
func WithError(writer http.ResponseWriter, err error) {
	code, body := describe(err)
	write(writer, code, body)
}

// WithErrorJSON is WithError plus the payload the client should render next.
func WithErrorJSON(writer http.ResponseWriter, err error, payload any) {
	code, body := describe(err)
	write(writer, code, DataError[any]{Data: &payload, Error: body})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func describe(err error) (int, Error) {
	code := failure.GetCode(err)
	reason := failure.GetReason(err)
	msg := err.Error()

	if reason == failure.ReasonInternal && code >= http.StatusInternalServerError {
		msg = http.StatusText(code)
	}

	return code, Error{Error: &msg, Reason: &reason}
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err := writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
