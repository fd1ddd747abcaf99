package service

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderConflict      = errors.New("order already finalized with a different payment")
	ErrSignatureMismatch  = errors.New("payment signature mismatch")
	ErrGatewayUnsupported = errors.New("gateway is not supported")
	ErrGatewayUnavailable = errors.New("gateway request failed")
)
