package domain

import "errors"

// Sentinel errors for the five failure kinds. Components wrap them with
// context using fmt.Errorf("...: %w", ErrX); callers classify with errors.Is.
var (
	ErrLocationNotFound           = errors.New("location not found")
	ErrLocationServiceUnavailable = errors.New("location service unavailable")
	ErrInvalidDate                = errors.New("invalid date")
	ErrWeatherService             = errors.New("weather service error")
	ErrInsufficientData           = errors.New("insufficient data")
)

// ErrorKind is the stable, machine-readable name of a failure kind.
type ErrorKind string

const (
	KindLocationNotFound           ErrorKind = "location_not_found"
	KindLocationServiceUnavailable ErrorKind = "location_service_unavailable"
	KindInvalidDate                ErrorKind = "invalid_date"
	KindWeatherService             ErrorKind = "weather_service_error"
	KindInsufficientData           ErrorKind = "insufficient_data"
	KindInternal                   ErrorKind = "internal"
)

var kinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrLocationNotFound, KindLocationNotFound},
	{ErrLocationServiceUnavailable, KindLocationServiceUnavailable},
	{ErrInvalidDate, KindInvalidDate},
	{ErrWeatherService, KindWeatherService},
	{ErrInsufficientData, KindInsufficientData},
}

// KindOf classifies err. Errors outside the taxonomy are KindInternal.
func KindOf(err error) ErrorKind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// Retryable reports whether retrying the same request could succeed.
// Only upstream outages qualify; bad input must be corrected instead.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindLocationServiceUnavailable, KindWeatherService:
		return true
	default:
		return false
	}
}

// UserMessage returns the plain-language message shown for a failure kind.
func UserMessage(kind ErrorKind) string {
	switch kind {
	case KindLocationNotFound:
		return "We could not find that place. Check the spelling or try a nearby city."
	case KindLocationServiceUnavailable:
		return "The location lookup service is not responding right now. Please try again in a moment."
	case KindInvalidDate:
		return "That date does not exist on the calendar. Pick a valid month and day."
	case KindWeatherService:
		return "We could not reach the historical weather archive. Please try again in a moment."
	case KindInsufficientData:
		return "There is not enough historical data for that place and day to estimate the odds."
	default:
		return "Something went wrong while preparing the outlook."
	}
}
