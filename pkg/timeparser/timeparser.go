// Package timeparser reads and writes the ISO 8601 subset used by EPCIS
// documents:
//
//	±YYYY-MM-DDThh:mm:ss[.SSS]TZD
//
// where a year <= 0 (or any year written with a leading '-') denotes a year
// BCE: 0000 is 1 BCE, -0001 is 2 BCE and so on. TZD is either Z or an offset
// in the form +hh:mm / -hh:mm. A missing TZD is accepted and read as UTC.
//
// Instants are represented with time.Time, whose years are astronomical
// (year 0 is 1 BCE), so they survive a Format/Parse cycle unchanged.
package timeparser

import (
	"fmt"
	"strings"
	"time"

	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/logger"
	"go.uber.org/zap"
)

type Era int

const (
	CE Era = iota
	BCE
)

func (e Era) String() string {
	if e == BCE {
		return "BCE"
	}
	return "CE"
}

// Timestamp is the result of Parse.
type Timestamp struct {
	Time      time.Time
	Era       Era
	YearOfEra int
	// Offset is the designator as written: "Z", "+hh:mm", "-hh:mm", or empty
	// when the input carried none.
	Offset string
}

// ParseError reports where and why a timestamp could not be read.
type ParseError struct {
	Text string
	Pos  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid timestamp %q at position %d: %s", e.Text, e.Pos, e.Msg)
}

type parser struct {
	text string
	pos  int
}

func (p *parser) fail(pos int, format string, args ...any) error {
	return &ParseError{Text: p.text, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) number(digits int, name string) (int, error) {
	start := p.pos
	if start+digits > len(p.text) {
		return 0, p.fail(start, "%s has wrong format: unexpected end of input", name)
	}
	n := 0
	for i := start; i < start+digits; i++ {
		c := p.text[i]
		if c < '0' || c > '9' {
			return 0, p.fail(i, "%s has wrong format: %q is not a digit", name, c)
		}
		n = n*10 + int(c-'0')
	}
	p.pos += digits
	return n, nil
}

func (p *parser) expect(delimiter byte) error {
	if p.pos >= len(p.text) || p.text[p.pos] != delimiter {
		return p.fail(p.pos, "expected delimiter '%c'", delimiter)
	}
	p.pos++
	return nil
}

// zone reads the time zone designator at the current position.
func (p *parser) zone() (*time.Location, string, error) {
	rest := p.text[p.pos:]
	switch {
	case rest == "":
		logger.Warn("no time zone designator found, assuming UTC", zap.String("timestamp", p.text), zap.Int("position", p.pos))
		return time.UTC, "", nil
	case rest == "Z":
		return time.UTC, rest, nil
	case rest[0] == '+' || rest[0] == '-':
		start := p.pos
		if len(rest) != len("+hh:mm") {
			return nil, "", p.fail(start, "invalid time zone designator %q", rest)
		}
		p.pos++
		hh, err := p.number(2, "offset hour (hh)")
		if err != nil {
			return nil, "", err
		}
		if err := p.expect(':'); err != nil {
			return nil, "", err
		}
		mm, err := p.number(2, "offset minute (mm)")
		if err != nil {
			return nil, "", err
		}
		if hh > 23 || mm > 59 {
			return nil, "", p.fail(start, "invalid time zone designator %q", rest)
		}
		secs := hh*3600 + mm*60
		if rest[0] == '-' {
			secs = -secs
		}
		return time.FixedZone(rest, secs), rest, nil
	default:
		return nil, "", p.fail(p.pos, "invalid time zone designator %q", rest)
	}
}

// Parse reads text strictly: every field must be present with its exact width
// and within range for the calendar, except the optional milliseconds and
// time zone designator.
func Parse(text string) (Timestamp, error) {
	p := &parser{text: text}

	sign := byte('+')
	if strings.HasPrefix(text, "-") || strings.HasPrefix(text, "+") {
		sign = text[0]
		p.pos = 1
	}

	var (
		fields = [6]int{}
		starts = [6]int{}
		names  = [6]string{"year (YYYY)", "month (MM)", "day (DD)", "hour (hh)", "minute (mm)", "second (ss)"}
		widths = [6]int{4, 2, 2, 2, 2, 2}
		delims = [6]byte{'-', '-', 'T', ':', ':', 0}
	)
	for i := range fields {
		starts[i] = p.pos
		n, err := p.number(widths[i], names[i])
		if err != nil {
			return Timestamp{}, err
		}
		fields[i] = n
		if delims[i] != 0 {
			if err := p.expect(delims[i]); err != nil {
				return Timestamp{}, err
			}
		}
	}
	year, month, day, hour, minute, second := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]

	ms := 0
	if p.pos < len(text) && text[p.pos] == '.' {
		p.pos++
		n, err := p.number(3, "millisecond (SSS)")
		if err != nil {
			return Timestamp{}, err
		}
		ms = n
	}

	loc, offset, err := p.zone()
	if err != nil {
		return Timestamp{}, err
	}

	ts := Timestamp{Era: CE, YearOfEra: year, Offset: offset}
	astronomical := year
	if sign == '-' || year == 0 {
		ts.Era = BCE
		ts.YearOfEra = year + 1
		astronomical = -year
	}

	if month < 1 || month > 12 {
		return Timestamp{}, p.fail(starts[1], "month %02d out of range", month)
	}
	if last := daysIn(astronomical, time.Month(month)); day < 1 || day > last {
		return Timestamp{}, p.fail(starts[2], "day %02d out of range for %04d-%02d", day, astronomical, month)
	}
	if hour > 23 {
		return Timestamp{}, p.fail(starts[3], "hour %02d out of range", hour)
	}
	if minute > 59 {
		return Timestamp{}, p.fail(starts[4], "minute %02d out of range", minute)
	}
	if second > 59 {
		return Timestamp{}, p.fail(starts[5], "second %02d out of range", second)
	}

	ts.Time = time.Date(astronomical, time.Month(month), day, hour, minute, second, ms*int(time.Millisecond), loc)
	return ts, nil
}

// ParseTime is Parse for callers that only need the instant.
func ParseTime(text string) (time.Time, error) {
	ts, err := Parse(text)
	if err != nil {
		return time.Time{}, err
	}
	return ts.Time, nil
}

// Format writes t in its own location as YYYY-MM-DDThh:mm:ss.SSS followed by
// Z for a zero offset or ±hh:mm otherwise. Astronomical years below zero are
// written with a leading '-'.
func Format(t time.Time) string {
	var b strings.Builder

	year := t.Year()
	if year < 0 {
		b.WriteByte('-')
		year = -year
	}
	fmt.Fprintf(&b, "%04d-%02d-%02dT%02d:%02d:%02d.%03d",
		year, int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/int(time.Millisecond))

	_, offset := t.Zone()
	if offset == 0 {
		b.WriteByte('Z')
		return b.String()
	}
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	fmt.Fprintf(&b, "%c%02d:%02d", sign, offset/3600, (offset%3600)/60)
	return b.String()
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
