package usecase

// DomainError is a business-rule failure the caller can act on.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure failure (upstream API, queue, ledger
// database). Surfaced as-is; there are no automatic retries anywhere.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

const (
	CodeNotFound            = "NOT_FOUND"
	CodeAlreadyImported     = "ALREADY_IMPORTED"
	CodeNoAdvisorsAvailable = "NO_ADVISORS_AVAILABLE"
	CodeInvalidOperation    = "INVALID_OPERATION"
	CodeBusy                = "BUSY"
	CodeUpstreamError       = "UPSTREAM_ERROR"
	CodeLedgerError         = "LEDGER_ERROR"
)
