package export

import "errors"

var (
	ErrUnknownFormat = errors.New("export: unknown format")
	ErrNoData        = errors.New("export: summary has no temperatures")
)
