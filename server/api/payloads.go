package api

import (
	"github.com/openrport/sysdash/server/api/errors"
)

// SuccessPayload represents a uniform format for all successful API responses.
type SuccessPayload struct {
	Data interface{} `json:"data"`
}

func NewSuccessPayload(data interface{}) SuccessPayload {
	return SuccessPayload{
		Data: data,
	}
}

// ErrorPayload represents a uniform format for all error API responses.
type ErrorPayload struct {
	Errors []ErrorPayloadItem `json:"errors"`
}

// ErrorPayloadItem represents a uniform format for a single error used in API responses.
type ErrorPayloadItem struct {
	Code   string `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func NewErrorPayloadWithCode(code, title, detail string) ErrorPayload {
	return ErrorPayload{
		Errors: []ErrorPayloadItem{
			{
				Code:   code,
				Title:  title,
				Detail: detail,
			},
		},
	}
}

func NewErrorPayload(err error) ErrorPayload {
	return NewErrorPayloadWithCode("", err.Error(), "")
}

// NewAPIErrorPayload uses the message as title and the wrapped error as
// detail.
func NewAPIErrorPayload(apiErr errors.APIError) ErrorPayload {
	title := apiErr.Message
	detail := ""
	if apiErr.Err != nil {
		detail = apiErr.Err.Error()
	}
	if title == "" {
		title, detail = detail, ""
	}
	return NewErrorPayloadWithCode(apiErr.ErrCode, title, detail)
}

type OpenDetachedWindowInput struct {
	Component string  `json:"component"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

type StatusPayload struct {
	Version        string `json:"version"`
	Platform       string `json:"platform"`
	ShellConnected bool   `json:"shell_connected"`
}
