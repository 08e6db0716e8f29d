package format

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	EmptyCellText   = "-"
	DefaultDate     = "01/02/2006"
	DefaultTime     = "03:04 PM"
	DefaultSeconds  = "03:04:05 PM"
	DefaultCurrency = "$"
)

// DateFunc formats a timestamp cell. showSeconds only matters with showTime.
type DateFunc func(v any, showTime, showSeconds bool) string

// MoneyFunc formats a money cell without the empty-value handling.
type MoneyFunc func(v float64) string

// Options are the formatter override hooks of a table.
type Options struct {
	Date      DateFunc
	Money     MoneyFunc
	EmptyCell string
	Currency  string
	Locale    language.Tag
	Layout    string
	Location  *time.Location
}

// DefaultOptions returns en-US formatting in the local time zone.
func DefaultOptions() Options {
	return Options{
		EmptyCell: EmptyCellText,
		Currency:  DefaultCurrency,
		Locale:    language.AmericanEnglish,
		Layout:    DefaultDate,
		Location:  time.Local,
	}
}

func (o Options) empty() string {
	if o.EmptyCell == "" {
		return EmptyCellText
	}
	return o.EmptyCell
}

// DateFormatter returns the date formatter for o, honoring an override.
func (o Options) DateFormatter() DateFunc {
	if o.Date != nil {
		return o.Date
	}
	layout, loc := o.Layout, o.Location
	return func(v any, showTime, showSeconds bool) string {
		return DateLayout(v, layout, loc, showTime, showSeconds)
	}
}

// Date formats v with the default layout in the local time zone.
func Date(v any, showTime, showSeconds bool) string {
	return DateLayout(v, DefaultDate, time.Local, showTime, showSeconds)
}

// DateLayout formats v (epoch milliseconds, time.Time or RFC3339 string).
// Unparseable values format as the empty string.
func DateLayout(v any, layout string, loc *time.Location, showTime, showSeconds bool) string {
	t, ok := TimeOf(v)
	if !ok {
		return ""
	}
	if layout == "" {
		layout = DefaultDate
	}
	if loc != nil {
		t = t.In(loc)
	}
	if !showTime {
		return t.Format(layout)
	}
	tl := DefaultTime
	if showSeconds {
		tl = DefaultSeconds
	}
	return t.Format(layout + " " + tl)
}

// TimeOf converts a cell or filter value into a time. Numbers are epoch
// milliseconds.
func TimeOf(v any) (time.Time, bool) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return x, !x.IsZero()
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, !x.IsZero()
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, false
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true
		}
		if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
			return t, true
		}
		if ms, err := strconv.ParseFloat(s, 64); err == nil {
			return time.UnixMilli(int64(ms)), true
		}
		return time.Time{}, false
	case json.Number:
		ms, err := x.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(ms)), true
	}
	ms, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(ms) {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)), true
}

// Money renders v with two decimals and locale digit grouping.
func Money(v float64, tag language.Tag) string {
	p := message.NewPrinter(tag)
	return p.Sprint(number.Decimal(v, number.Scale(2)))
}

// MoneyFormatter returns the money formatter for o (symbol prefix included).
func (o Options) MoneyFormatter() MoneyFunc {
	if o.Money != nil {
		return o.Money
	}
	sym := o.Currency
	if sym == "" {
		sym = DefaultCurrency
	}
	tag := o.Locale
	return func(v float64) string { return sym + Money(v, tag) }
}

// Number renders a numeric cell value in its shortest form.
func Number(v any) (string, bool) {
	f, err := cast.ToFloat64E(v)
	if err != nil || v == nil {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}
