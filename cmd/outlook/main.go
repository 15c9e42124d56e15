// Command outlook prints the historical weather odds for one place and
// calendar day as JSON.
//
// Usage:
//
//	go run ./cmd/outlook -location Paris -date 07-14 [-years 10]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/weather-odds/internal/app"
	"github.com/couchcryptid/weather-odds/internal/config"
	"github.com/couchcryptid/weather-odds/internal/domain"
	"github.com/couchcryptid/weather-odds/internal/observability"
	"github.com/couchcryptid/weather-odds/internal/outlook"
)

func main() {
	location := flag.String("location", "", "place name, e.g. \"Douala\" or \"New York\"")
	date := flag.String("date", "", "calendar day as MM-DD")
	years := flag.Int("years", 0, "number of past years to sample (default DEFAULT_YEARS)")
	flag.Parse()

	if err := run(*location, *date, *years); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(location, date string, years int) error {
	_ = godotenv.Load()

	month, day, err := parseMonthDay(date)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// Only the report goes to stdout.
	cfg.LogLevel = "error"
	logger := observability.NewLogger(cfg)

	a, err := app.New(cfg, logger, observability.NewMetrics())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := a.Service.Assess(ctx, outlook.Request{Location: location, Month: month, Day: day, Years: years})
	if err != nil {
		var rangeErr *outlook.RangeError
		if errors.As(err, &rangeErr) {
			return rangeErr
		}
		return errors.New(domain.UserMessage(domain.KindOf(err)))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func parseMonthDay(s string) (int, int, error) {
	m, d, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return 0, 0, fmt.Errorf("date %q must be MM-DD", s)
	}
	month, err := strconv.Atoi(m)
	if err != nil {
		return 0, 0, fmt.Errorf("date %q must be MM-DD", s)
	}
	day, err := strconv.Atoi(d)
	if err != nil {
		return 0, 0, fmt.Errorf("date %q must be MM-DD", s)
	}
	return month, day, nil
}
