package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/couchcryptid/weather-odds/internal/domain"
	"github.com/couchcryptid/weather-odds/internal/outlook"
)

var validate = validator.New()

// kindInvalidRequest covers malformed parameters outside the domain taxonomy.
const kindInvalidRequest domain.ErrorKind = "invalid_request"

type outlookHandler struct {
	assessor Assessor
	maxYears int
	logger   *slog.Logger
}

// outlookForm holds the query or form fields of an outlook request.
type outlookForm struct {
	Location string `validate:"required"`
	Month    int    `validate:"min=1,max=12"`
	Day      int    `validate:"min=1,max=31"`
	Years    int    `validate:"min=0"`
}

// errorBody is the JSON shape of every failed request.
type errorBody struct {
	Error     domain.ErrorKind `json:"error"`
	Message   string           `json:"message"`
	Retryable bool             `json:"retryable"`
}

func (h *outlookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	form, err := h.bind(r)
	if err != nil {
		h.logger.Debug("rejected outlook request", "kind", err.kind, "error", err.err)
		writeJSON(w, err.status, errorBody{Error: err.kind, Message: err.message()})
		return
	}

	a, aerr := h.assessor.Assess(r.Context(), outlook.Request{
		Location: form.Location,
		Month:    form.Month,
		Day:      form.Day,
		Years:    form.Years,
	})
	if aerr != nil {
		var rangeErr *outlook.RangeError
		if errors.As(aerr, &rangeErr) {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: kindInvalidRequest, Message: rangeErr.Error()})
			return
		}
		kind := domain.KindOf(aerr)
		status, ok := statusByKind[kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, errorBody{
			Error:     kind,
			Message:   domain.UserMessage(kind),
			Retryable: domain.Retryable(aerr),
		})
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// requestError is a rejected request that never reached the service.
type requestError struct {
	status int
	kind   domain.ErrorKind
	err    error
}

// message is the user-facing text. Malformed parameters echo the reason so
// the caller knows what to fix; taxonomy kinds use the shared wording.
func (e *requestError) message() string {
	if e.kind == kindInvalidRequest {
		return e.err.Error()
	}
	return domain.UserMessage(e.kind)
}

func badRequest(kind domain.ErrorKind, err error) *requestError {
	return &requestError{status: http.StatusBadRequest, kind: kind, err: err}
}

// bind reads and validates the request. A blank location is reported as
// location_not_found and a bad month or day as invalid_date, both with 400.
func (h *outlookHandler) bind(r *http.Request) (outlookForm, *requestError) {
	if err := r.ParseForm(); err != nil {
		return outlookForm{}, badRequest(kindInvalidRequest, err)
	}

	form := outlookForm{Location: strings.TrimSpace(r.Form.Get("location"))}

	var err error
	if date := strings.TrimSpace(r.Form.Get("date")); date != "" {
		form.Month, form.Day, err = parseDate(date)
	} else {
		form.Month, form.Day, err = parseMonthDay(r.Form.Get("month"), r.Form.Get("day"))
	}
	if err != nil {
		return form, badRequest(domain.KindInvalidDate, err)
	}

	if v := strings.TrimSpace(r.Form.Get("years")); v != "" {
		form.Years, err = strconv.Atoi(v)
		if err != nil {
			return form, badRequest(kindInvalidRequest, fmt.Errorf("years %q is not a number", v))
		}
	}

	if err := validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Field() {
			case "Location":
				return form, badRequest(domain.KindLocationNotFound, domain.ErrLocationNotFound)
			case "Month", "Day":
				return form, badRequest(domain.KindInvalidDate, fmt.Errorf("%s: %w", verrs[0].Field(), domain.ErrInvalidDate))
			}
		}
		return form, badRequest(kindInvalidRequest, err)
	}
	if form.Years > h.maxYears {
		return form, badRequest(kindInvalidRequest, &outlook.RangeError{Field: "years", Value: form.Years, Min: 1, Max: h.maxYears})
	}
	return form, nil
}

func parseMonthDay(month, day string) (int, int, error) {
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return 0, 0, fmt.Errorf("month %q: %w", month, domain.ErrInvalidDate)
	}
	d, err := strconv.Atoi(strings.TrimSpace(day))
	if err != nil {
		return 0, 0, fmt.Errorf("day %q: %w", day, domain.ErrInvalidDate)
	}
	return m, d, nil
}

// dateLayouts are tried in order after MM-DD. The year, when present, is ignored.
var dateLayouts = []string{time.DateOnly, "2006-01-02T15:04", time.RFC3339}

func parseDate(s string) (int, int, error) {
	if len(s) == len("01-02") && s[2] == '-' {
		// time.Parse would place MM-DD in year 0 and reject 02-29.
		return parseMonthDay(s[:2], s[3:])
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return int(t.Month()), t.Day(), nil
		}
	}
	return 0, 0, fmt.Errorf("date %q: %w", s, domain.ErrInvalidDate)
}

var statusByKind = map[domain.ErrorKind]int{
	domain.KindLocationNotFound:           http.StatusNotFound,
	domain.KindInvalidDate:                http.StatusBadRequest,
	domain.KindLocationServiceUnavailable: http.StatusServiceUnavailable,
	domain.KindWeatherService:             http.StatusBadGateway,
	domain.KindInsufficientData:           http.StatusUnprocessableEntity,
}
