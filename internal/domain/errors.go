package domain

import "errors"

var (
	ErrMalformedRecord    = errors.New("malformed input record")
	ErrServiceUnavailable = errors.New("validation service unreachable")
	ErrServiceFault       = errors.New("validation service fault")
	ErrPersistence        = errors.New("result store write failed")
	ErrRender             = errors.New("report rendering failed")
)
