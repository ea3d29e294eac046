package attendance

import (
	"strings"
	"time"
)

// ActivityType is the closed set of recognized attendance actions. Raw rows
// carry free-form spellings ("CHECK-IN", "Check In", "BREAK START"); they are
// normalized on ingestion and unrecognized values become ActivityUnknown.
type ActivityType string

const (
	ActivityCheckIn    ActivityType = "CHECK_IN"
	ActivityCheckOut   ActivityType = "CHECK_OUT"
	ActivityBreakStart ActivityType = "BREAK_START"
	ActivityBreakEnd   ActivityType = "BREAK_END"
	ActivityUnknown    ActivityType = "UNKNOWN"
)

// ParseActivityType maps any historical spelling of an activity type onto the
// closed enumeration. Pure and total: unknown input is never an error, it is
// ActivityUnknown and excluded from time computation. New spelling variants
// are a one-line addition here.
func ParseActivityType(raw string) ActivityType {
	var b strings.Builder
	for _, r := range raw {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r - ('a' - 'A'))
		} else if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	switch b.String() {
	case "CHECKIN", "CLOCKIN":
		return ActivityCheckIn
	case "CHECKOUT", "CLOCKOUT":
		return ActivityCheckOut
	case "BREAKSTART", "STARTBREAK":
		return ActivityBreakStart
	case "BREAKEND", "ENDBREAK":
		return ActivityBreakEnd
	default:
		return ActivityUnknown
	}
}

// ActivityEvent is one append-only attendance log row. Events are never
// mutated or deleted; all derived state is recomputed from them on demand.
type ActivityEvent struct {
	ID              int64
	EmployeeID      int64
	RawType         string // spelling as stored by the producer
	Type            ActivityType
	Time            time.Time
	DurationMinutes *int // producer-supplied hint, never used in computation
	Description     string
	Log             string
	CreatedAt       time.Time
}

// IntervalKind distinguishes paired work time from paired break time.
type IntervalKind string

const (
	IntervalWork  IntervalKind = "WORK"
	IntervalBreak IntervalKind = "BREAK"
)

// Interval is one closed (start, end) pairing produced by the session pairer.
type Interval struct {
	Kind  IntervalKind
	Start time.Time
	End   time.Time
}

func (i Interval) Seconds() int64 {
	return int64(i.End.Sub(i.Start) / time.Second)
}

// Anomaly records an event that could not be paired: duplicate check-ins,
// orphan check-outs, break ends with no start, missed check-outs on past
// days. Anomalies never fail reconstruction and never contribute to totals.
type Anomaly struct {
	Type   ActivityType
	Time   time.Time
	Reason string
}

// WorkSession is the reconstruction result for one employee-day. Derived,
// never persisted: every report recomputes it from raw events.
type WorkSession struct {
	Date      time.Time
	Intervals []Interval

	WorkSeconds     int64
	BreakSeconds    int64
	NetSeconds      int64
	OvertimeSeconds int64

	// Set only when the day is still open ("today") and a start-type event
	// has no closing pair yet. Running time is reported through live status,
	// never as a closed interval.
	OpenWorkStart  *time.Time
	OpenBreakStart *time.Time

	Anomalies []Anomaly
}

// Live status values for the current, still-open day.
const (
	StatusNotCheckedIn = "NOT_CHECKED_IN"
	StatusCheckedIn    = "CHECKED_IN"
	StatusOnBreak      = "ON_BREAK"
	StatusCheckedOut   = "CHECKED_OUT"

	BreakStatusOn  = "ON_BREAK"
	BreakStatusOff = "NOT_ON_BREAK"

	ArrivalOnTime       = "ON_TIME"
	ArrivalLate         = "LATE"
	ArrivalNotCheckedIn = "NOT_CHECKED_IN"
)

// LiveStatus classifies the employee's current attendance state from the most
// recent recognized event of the day.
type LiveStatus struct {
	AttendanceStatus string
	BreakStatus      string
	ArrivalStatus    string
	LastActivityTime *time.Time
	RunningSeconds   int64 // since the open check-in, 0 when none
}
