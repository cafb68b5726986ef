package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/faucetdb/ppls/internal/ui"
)

// dateLikeValue is a pflag.Value accepting a calendar date or an ISO 8601
// datetime. Other unambiguous date spellings are normalized to one of the
// two.
type dateLikeValue struct {
	value *string
}

var _ pflag.Value = (*dateLikeValue)(nil)

func newDateLikeValue(p *string) *dateLikeValue {
	return &dateLikeValue{value: p}
}

func (d *dateLikeValue) String() string {
	if d.value == nil {
		return ""
	}
	return *d.value
}

func (d *dateLikeValue) Set(s string) error {
	s = strings.TrimSpace(s)
	if ui.IsDateOnly(s) || ui.IsDateTime(s) {
		*d.value = s
		return nil
	}
	t, err := dateparse.ParseStrict(s)
	if err != nil {
		return errors.New("use YYYY-MM-DD or an ISO 8601 datetime")
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		*d.value = t.Format(time.DateOnly)
	} else {
		*d.value = t.Format(time.RFC3339)
	}
	return nil
}

func (d *dateLikeValue) Type() string {
	return "YYYY-MM-DD|ISO-8601"
}

// optional returns &v when the named flag was passed, nil otherwise.
func optional[T any](cmd *cobra.Command, name string, v T) *T {
	if !flagChanged(cmd, name) {
		return nil
	}
	return &v
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", raw)
	}
	return id, nil
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
