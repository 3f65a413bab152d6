package distributions

import "errors"

var (
	ErrUnknownFamily = errors.New("distributions: unknown family")
	ErrInvalidParams = errors.New("distributions: invalid parameters")
)
