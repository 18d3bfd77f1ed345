package maintenance

import (
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Formatter renders the time left until an ISO 8601 timestamp.
type Formatter interface {
	FormatRemaining(isoTimestamp string) string
}

const (
	UnknownText = "shortly"
	DueText     = "any moment now"
)

var remainingMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Minute, Format: "less than a minute %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
	{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
	{D: humanize.Day, Format: "%d hours %s", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "1 day %s", DivBy: 1},
	{D: math.MaxInt64, Format: "%d days %s", DivBy: humanize.Day},
}

// RelativeFormatter floors the remaining time to the largest whole unit.
type RelativeFormatter struct {
	Now func() time.Time
}

func NewRelativeFormatter() *RelativeFormatter {
	return &RelativeFormatter{Now: time.Now}
}

func (f *RelativeFormatter) FormatRemaining(isoTimestamp string) string {
	target, err := time.Parse(time.RFC3339, strings.TrimSpace(isoTimestamp))
	if err != nil {
		return UnknownText
	}

	now := time.Now()
	if f.Now != nil {
		now = f.Now()
	}

	if !target.After(now) {
		return DueText
	}

	return humanize.CustomRelTime(now, target, "remaining", "remaining", remainingMagnitudes)
}
