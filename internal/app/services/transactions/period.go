package transactions

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/fintrack-app/fintrack/internal/errors"
)

var (
	isoPeriodRe       = regexp.MustCompile(`^\d{4}-\d{2}$`)
	localizedPeriodRe = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
)

// resolvePeriod normalises a period selector to the YYYY-MM prefix used for
// month filtering. An empty input selects the current calendar month. Two
// input shapes are accepted: the internal YYYY-MM form and the localized
// MM/YYYY display form, which is parsed and converted.
func resolvePeriod(period string, now time.Time) (string, error) {
	if period == "" {
		return now.UTC().Format("2006-01"), nil
	}
	if isoPeriodRe.MatchString(period) {
		return period, nil
	}
	if m := localizedPeriodRe.FindStringSubmatch(period); m != nil {
		month, err := strconv.Atoi(m[1])
		if err != nil || month < 1 || month > 12 {
			return "", errors.BadUserInput("period month must be between 1 and 12")
		}
		return fmt.Sprintf("%s-%02d", m[2], month), nil
	}
	return "", errors.BadUserInput("period must be in YYYY-MM or MM/YYYY format")
}
