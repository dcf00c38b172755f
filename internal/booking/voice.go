package booking

import (
	"strconv"
	"strings"
	"time"
)

// onesWords covers 0-19; tensWords is indexed by the tens digit for
// 20-59. Together they spell every valid calendar minute and day of
// month.
var onesWords = [...]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven",
	"eight", "nine", "ten", "eleven", "twelve", "thirteen", "fourteen",
	"fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
}

var tensWords = [...]string{2: "twenty", 3: "thirty", 4: "forty", 5: "fifty"}

// numberInWords spells n as English words for 0-59 and falls back to
// digits outside that range. Calendar minutes and days of month never
// leave the table, but the fallback keeps the function total.
func numberInWords(n int) string {
	if n < 0 || n > 59 {
		return strconv.Itoa(n)
	}
	if n < 20 {
		return onesWords[n]
	}
	tens := tensWords[n/10]
	if n%10 == 0 {
		return tens
	}
	return tens + " " + onesWords[n%10]
}

// FormatForVoice renders an instant as a spoken-word phrase suitable
// for verbatim playback by a voice agent:
//
//	"<Weekday> <Month> <DayInWords> at <HourInWords>[ <MinuteInWords>] <AM|PM>"
//
// A minute of exactly zero omits the minute word, so 15:00 reads
// "three PM", never "three zero PM". The function is pure and
// deterministic; it does no I/O and reads no clock.
func FormatForVoice(t time.Time) string {
	hour := t.Hour()
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}

	var b strings.Builder
	b.WriteString(t.Weekday().String())
	b.WriteByte(' ')
	b.WriteString(t.Month().String())
	b.WriteByte(' ')
	b.WriteString(numberInWords(t.Day()))
	b.WriteString(" at ")
	b.WriteString(numberInWords(hour12))
	if m := t.Minute(); m != 0 {
		b.WriteByte(' ')
		b.WriteString(numberInWords(m))
	}
	b.WriteByte(' ')
	b.WriteString(meridiem)
	return b.String()
}
