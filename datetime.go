package mdx

import (
	"fmt"
	"strings"
	"time"

	"github.com/quantfold/mdx/native"
)

// Datetime is a point or partial point in time. Each component is
// independently present or absent; a value may carry only a date, only a
// time of day, or any subset down to a single field. Accessors return
// (value, ok) so absent parts are never mistaken for zero values.
type Datetime struct {
	raw native.Datetime
}

// NewDatetime returns a value with no parts set.
func NewDatetime() Datetime { return Datetime{} }

func fromNativeDatetime(raw native.Datetime) Datetime { return Datetime{raw: raw} }

func (d Datetime) nativeValue() native.Datetime { return d.raw }

func (d *Datetime) has(part uint8) bool { return d.raw.Parts&part != 0 }

func (d Datetime) Year() (int, bool) {
	return int(d.raw.Year), d.has(native.DatetimeYearPart)
}

func (d Datetime) Month() (int, bool) {
	return int(d.raw.Month), d.has(native.DatetimeMonthPart)
}

func (d Datetime) Day() (int, bool) {
	return int(d.raw.Day), d.has(native.DatetimeDayPart)
}

func (d Datetime) Hours() (int, bool) {
	return int(d.raw.Hours), d.has(native.DatetimeHoursPart)
}

func (d Datetime) Minutes() (int, bool) {
	return int(d.raw.Minutes), d.has(native.DatetimeMinutesPart)
}

func (d Datetime) Seconds() (int, bool) {
	return int(d.raw.Seconds), d.has(native.DatetimeSecondsPart)
}

// Milliseconds returns the fractional-seconds part.
func (d Datetime) Milliseconds() (int, bool) {
	return int(d.raw.MilliSeconds), d.has(native.DatetimeFracSecondsPart)
}

// Offset returns the UTC offset in minutes.
func (d Datetime) Offset() (int, bool) {
	return int(d.raw.Offset), d.has(native.DatetimeOffsetPart)
}

func (d *Datetime) SetYear(v int) {
	d.raw.Year = uint16(v)
	d.raw.Parts |= native.DatetimeYearPart
}

func (d *Datetime) SetMonth(v int) {
	d.raw.Month = uint8(v)
	d.raw.Parts |= native.DatetimeMonthPart
}

func (d *Datetime) SetDay(v int) {
	d.raw.Day = uint8(v)
	d.raw.Parts |= native.DatetimeDayPart
}

func (d *Datetime) SetHours(v int) {
	d.raw.Hours = uint8(v)
	d.raw.Parts |= native.DatetimeHoursPart
}

func (d *Datetime) SetMinutes(v int) {
	d.raw.Minutes = uint8(v)
	d.raw.Parts |= native.DatetimeMinutesPart
}

func (d *Datetime) SetSeconds(v int) {
	d.raw.Seconds = uint8(v)
	d.raw.Parts |= native.DatetimeSecondsPart
}

func (d *Datetime) SetMilliseconds(v int) {
	d.raw.MilliSeconds = uint16(v)
	d.raw.Parts |= native.DatetimeFracSecondsPart
}

func (d *Datetime) SetOffset(minutes int) {
	d.raw.Offset = int16(minutes)
	d.raw.Parts |= native.DatetimeOffsetPart
}

// SetDate sets year, month, and day together.
func (d *Datetime) SetDate(year, month, day int) {
	d.SetYear(year)
	d.SetMonth(month)
	d.SetDay(day)
}

// SetTime sets hours, minutes, and seconds together.
func (d *Datetime) SetTime(hours, minutes, seconds int) {
	d.SetHours(hours)
	d.SetMinutes(minutes)
	d.SetSeconds(seconds)
}

// FromTime builds a fully-populated Datetime from t, including its UTC
// offset.
func FromTime(t time.Time) Datetime {
	var d Datetime
	d.SetDate(t.Year(), int(t.Month()), t.Day())
	d.SetTime(t.Hour(), t.Minute(), t.Second())
	d.SetMilliseconds(t.Nanosecond() / 1e6)
	_, off := t.Zone()
	d.SetOffset(off / 60)
	return d
}

func (d Datetime) hasDate() bool {
	return d.raw.Parts&native.DatetimeDatePart == native.DatetimeDatePart
}

func (d Datetime) hasTime() bool {
	const hms = native.DatetimeHoursPart | native.DatetimeMinutesPart | native.DatetimeSecondsPart
	return d.raw.Parts&hms == hms
}

// Time converts to a time.Time. It fails unless the full date and time of
// day are present; a missing offset is read as UTC.
func (d Datetime) Time() (time.Time, error) {
	if !d.hasDate() || !d.hasTime() {
		return time.Time{}, fmt.Errorf("mdx: datetime is partial (parts 0x%02x)", d.raw.Parts)
	}
	loc := time.UTC
	if off, ok := d.Offset(); ok {
		loc = time.FixedZone("", off*60)
	}
	ms := 0
	if v, ok := d.Milliseconds(); ok {
		ms = v
	}
	return time.Date(int(d.raw.Year), time.Month(d.raw.Month), int(d.raw.Day),
		int(d.raw.Hours), int(d.raw.Minutes), int(d.raw.Seconds), ms*1e6, loc), nil
}

// String renders the present parts: the date as YYYY-MM-DD, the time of day
// as HH:MM:SS with optional .mmm, joined by T when both are present, with a
// trailing signed HH:MM offset when one is set. A value with neither a
// complete date nor a complete time renders as the empty string.
func (d Datetime) String() string {
	var b strings.Builder
	if d.hasDate() {
		fmt.Fprintf(&b, "%04d-%02d-%02d", d.raw.Year, d.raw.Month, d.raw.Day)
	}
	if d.hasTime() {
		if b.Len() > 0 {
			b.WriteByte('T')
		}
		fmt.Fprintf(&b, "%02d:%02d:%02d", d.raw.Hours, d.raw.Minutes, d.raw.Seconds)
		if ms, ok := d.Milliseconds(); ok {
			fmt.Fprintf(&b, ".%03d", ms)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	if off, ok := d.Offset(); ok {
		sign := '+'
		if off < 0 {
			sign = '-'
			off = -off
		}
		fmt.Fprintf(&b, "%c%02d:%02d", sign, off/60, off%60)
	}
	return b.String()
}
