package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidInput         ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPeriod        ErrorCode = 102
	ErrCodeInvalidPriceSeries   ErrorCode = 103
	ErrCodeInvalidCandidate     ErrorCode = 104
	ErrCodeInvalidVersion       ErrorCode = 105

	// History errors (200-299)
	ErrCodeInsufficientHistory ErrorCode = 200
	ErrCodeEmptySeries         ErrorCode = 201

	// Ratio errors (300-399)
	ErrCodeDegenerateRatio ErrorCode = 300

	// Upstream data errors (400-499)
	ErrCodeUpstreamDataMissing ErrorCode = 400
	ErrCodeMissingOptionLeg    ErrorCode = 401
	ErrCodeMissingPortfolio    ErrorCode = 402

	// Datasource errors (500-599)
	ErrCodeDataSourceUnavailable ErrorCode = 500
	ErrCodeQueryFailed           ErrorCode = 501
	ErrCodeDataParseFailed       ErrorCode = 502
	ErrCodeNoDataFound           ErrorCode = 503
)
