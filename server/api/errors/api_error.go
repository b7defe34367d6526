package errors

import "net/http"

const (
	ErrCodeInvalidRequest = "ERR_CODE_INVALID_REQUEST"
	ErrCodeWindowExists   = "ERR_CODE_WINDOW_EXISTS"
	ErrCodeWindowNotFound = "ERR_CODE_WINDOW_NOT_FOUND"
	ErrCodeShellRejected  = "ERR_CODE_SHELL_REJECTED"
	ErrCodeShellOffline   = "ERR_CODE_SHELL_OFFLINE"
	ErrCodeShellAttached  = "ERR_CODE_SHELL_ATTACHED"
	ErrCodeShellTimeout   = "ERR_CODE_SHELL_TIMEOUT"
	ErrCodeTelemetry      = "ERR_CODE_TELEMETRY"
)

// APIError wraps error which is interpreted as in http error
type APIError struct {
	Message    string
	Err        error
	HTTPStatus int
	ErrCode    string
}

func NewAPIError(statusCode int, errCode string, message string, err error) (ae APIError) {
	ae = APIError{
		HTTPStatus: statusCode,
		ErrCode:    errCode,
		Message:    message,
		Err:        err,
	}
	return ae
}

func NewBadRequest(errCode string, message string, err error) APIError {
	return NewAPIError(http.StatusBadRequest, errCode, message, err)
}

// Error interface implementation
func (ae APIError) Error() string {
	if ae.Err != nil {
		if ae.Message != "" {
			return ae.Message + ": " + ae.Err.Error()
		}
		return ae.Err.Error()
	}

	return ae.Message
}

func (ae APIError) Unwrap() error {
	return ae.Err
}
