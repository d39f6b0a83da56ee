package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound          = "NOT_FOUND"
	CodeBadRequest        = "BAD_REQUEST"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL_ERROR"
	CodeTooManyRequests   = "TOO_MANY_REQUESTS"
	CodeAccountNotFound   = "ACCOUNT_NOT_FOUND"
	CodeWrongPassword     = "WRONG_PASSWORD"
	CodeAlreadyRegistered = "ALREADY_REGISTERED"
	CodeConnection        = "CONNECTION_ERROR"
)

// User-facing messages for the auth flow and the admin gate.
const (
	MsgAccountNotFound   = "الحساب غير موجود"
	MsgWrongPassword     = "كلمة المرور غير صحيحة"
	MsgAlreadyRegistered = "رقم الهاتف مسجل مسبقاً"
	MsgConnection        = "خطأ في الاتصال، حاول مرة أخرى"
	MsgAccessDenied      = "غير مصرح لك بالدخول"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    CodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Status:  http.StatusConflict,
	}
}

func TooManyRequests(message string) *AppError {
	return &AppError{
		Code:    CodeTooManyRequests,
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

func AccountNotFound() *AppError {
	return New(CodeAccountNotFound, MsgAccountNotFound, http.StatusNotFound, nil)
}

func WrongPassword() *AppError {
	return New(CodeWrongPassword, MsgWrongPassword, http.StatusUnauthorized, nil)
}

func AlreadyRegistered(err error) *AppError {
	return New(CodeAlreadyRegistered, MsgAlreadyRegistered, http.StatusConflict, err)
}

// Connection collapses any transport fault into the one generic message.
func Connection(err error) *AppError {
	return New(CodeConnection, MsgConnection, http.StatusServiceUnavailable, err)
}

func AccessDenied() *AppError {
	return Forbidden(MsgAccessDenied, nil)
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// As reports whether err carries an AppError and returns it.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
