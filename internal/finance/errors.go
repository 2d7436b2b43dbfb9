package finance

import "errors"

var (
	ErrFileNotFound      = errors.New("data file not found")
	ErrDateColumnMissing = errors.New("no date column in data file")
	ErrEmptySelection    = errors.New("selection has no rows")
	ErrUnknownAsset      = errors.New("unknown asset")
	ErrInvalidWindow     = errors.New("invalid volatility window")
	ErrInvalidMonth      = errors.New("invalid month")
	ErrInvalidYear       = errors.New("invalid year")
	ErrEmptyTable        = errors.New("data file has no header")
	ErrNoData            = errors.New("not enough data points")
)
