package types

import "github.com/niastore/nia-storefront/pkg/enums"

// Flash is a one-shot notice for the client to surface after an action.
type Flash struct {
	Level   enums.FlashLevel `json:"level"`
	Message string           `json:"message"`
}

func NewFlash(level enums.FlashLevel, message string) *Flash {
	return &Flash{Level: level, Message: message}
}

type SuccessEnvelope struct {
	Data     any    `json:"data"`
	Flash    *Flash `json:"flash,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

type APIError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Details  any    `json:"details,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
