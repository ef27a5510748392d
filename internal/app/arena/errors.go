package arena

import "errors"

var (
	ErrNoToken      = errors.New("no authorization")
	ErrInvalidToken = errors.New("invalid token")
)
