package native

// Datetime is the wire representation of a partial date/time value. Parts
// is a bitmask of the fields that are actually set; an unset field's
// storage is meaningless.
type Datetime struct {
	Parts        uint8
	Hours        uint8
	Minutes      uint8
	Seconds      uint8
	MilliSeconds uint16
	Month        uint8
	Day          uint8
	Year         uint16
	Offset       int16 // minutes east of UTC
}

const (
	DatetimeYearPart        uint8 = 0x1
	DatetimeMonthPart       uint8 = 0x2
	DatetimeDayPart         uint8 = 0x4
	DatetimeOffsetPart      uint8 = 0x8
	DatetimeHoursPart       uint8 = 0x10
	DatetimeMinutesPart     uint8 = 0x20
	DatetimeSecondsPart     uint8 = 0x40
	DatetimeFracSecondsPart uint8 = 0x80

	DatetimeDatePart = DatetimeYearPart | DatetimeMonthPart | DatetimeDayPart
	DatetimeTimePart = DatetimeHoursPart | DatetimeMinutesPart | DatetimeSecondsPart
)
