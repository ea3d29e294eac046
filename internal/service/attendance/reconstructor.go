package attendance

import (
	"math"
	"sort"
	"time"

	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
)

// Reconstructor derives work sessions from the raw activity log. It is a pure
// calculator: no clock, no storage, identical input yields identical output.
// One instance is built per employee from their job timings (or the system
// defaults) and applied day by day.
type Reconstructor struct {
	// StandardSeconds is the standard workday used for the fallback overtime
	// rule and for utilization figures. Defaults to 8 hours.
	StandardSeconds int64

	// ScheduledStart is the shift start as an offset from midnight, used to
	// classify arrivals as LATE or ON_TIME. Defaults to 09:00.
	ScheduledStart time.Duration

	// ScheduledEnd, when set, switches overtime to the configured-shift-end
	// rule: time worked past the scheduled end counts as overtime. When nil
	// the fallback rule applies: net time beyond StandardSeconds.
	ScheduledEnd *time.Duration
}

// NewReconstructor returns a Reconstructor with the system defaults
// (8-hour standard day, 09:00 scheduled start, no configured shift end).
func NewReconstructor() Reconstructor {
	return Reconstructor{
		StandardSeconds: 8 * 3600,
		ScheduledStart:  9 * time.Hour,
	}
}

// Reconstruct pairs the given employee-day's events into WORK and BREAK
// intervals and aggregates totals. Events may arrive unsorted and may carry
// unnormalized raw types; both are handled here. now decides whether the day
// is still open: a dangling check-in on a past day is a missed checkout and
// contributes nothing, a dangling check-in today is surfaced as an open
// session instead of a guessed interval.
func (r Reconstructor) Reconstruct(day time.Time, events []attendance.ActivityEvent, now time.Time) attendance.WorkSession {
	session := attendance.WorkSession{Date: day}

	sorted := make([]attendance.ActivityEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	var openWork, openBreak *time.Time

	for _, ev := range sorted {
		kind := normalizedType(ev)
		t := ev.Time

		switch kind {
		case attendance.ActivityCheckIn:
			if openWork != nil {
				// Last check-in of an unterminated run wins.
				session.Anomalies = append(session.Anomalies, attendance.Anomaly{
					Type:   attendance.ActivityCheckIn,
					Time:   *openWork,
					Reason: "duplicate check-in, earlier open discarded",
				})
			}
			openWork = &t

		case attendance.ActivityCheckOut:
			if openWork == nil {
				session.Anomalies = append(session.Anomalies, attendance.Anomaly{
					Type:   attendance.ActivityCheckOut,
					Time:   t,
					Reason: "check-out with no open check-in",
				})
				continue
			}
			session.Intervals = append(session.Intervals, attendance.Interval{
				Kind:  attendance.IntervalWork,
				Start: *openWork,
				End:   t,
			})
			openWork = nil

		case attendance.ActivityBreakStart:
			if openBreak != nil {
				session.Anomalies = append(session.Anomalies, attendance.Anomaly{
					Type:   attendance.ActivityBreakStart,
					Time:   *openBreak,
					Reason: "duplicate break start, earlier open discarded",
				})
			}
			openBreak = &t

		case attendance.ActivityBreakEnd:
			if openBreak == nil {
				session.Anomalies = append(session.Anomalies, attendance.Anomaly{
					Type:   attendance.ActivityBreakEnd,
					Time:   t,
					Reason: "break end with no open break start",
				})
				continue
			}
			session.Intervals = append(session.Intervals, attendance.Interval{
				Kind:  attendance.IntervalBreak,
				Start: *openBreak,
				End:   t,
			})
			openBreak = nil

		default:
			// Unrecognized types are retained for listing but never paired.
		}
	}

	if openWork != nil {
		if sameDay(day, now) {
			session.OpenWorkStart = openWork
		} else {
			session.Anomalies = append(session.Anomalies, attendance.Anomaly{
				Type:   attendance.ActivityCheckIn,
				Time:   *openWork,
				Reason: "missed check-out, open session dropped",
			})
		}
	}
	if openBreak != nil {
		if sameDay(day, now) {
			session.OpenBreakStart = openBreak
		} else {
			session.Anomalies = append(session.Anomalies, attendance.Anomaly{
				Type:   attendance.ActivityBreakStart,
				Time:   *openBreak,
				Reason: "missed break end, open break dropped",
			})
		}
	}

	r.aggregate(&session)
	return session
}

// aggregate sums interval durations and applies the overtime rule.
func (r Reconstructor) aggregate(session *attendance.WorkSession) {
	for _, iv := range session.Intervals {
		switch iv.Kind {
		case attendance.IntervalWork:
			session.WorkSeconds += iv.Seconds()
		case attendance.IntervalBreak:
			session.BreakSeconds += iv.Seconds()
		}
	}

	session.NetSeconds = session.WorkSeconds - session.BreakSeconds
	if session.NetSeconds < 0 {
		session.NetSeconds = 0
	}

	if r.ScheduledEnd != nil {
		scheduledEnd := session.Date.Add(*r.ScheduledEnd)
		for _, iv := range session.Intervals {
			if iv.Kind != attendance.IntervalWork {
				continue
			}
			if past := int64(iv.End.Sub(scheduledEnd) / time.Second); past > 0 {
				session.OvertimeSeconds += past
			}
		}
	} else if over := session.NetSeconds - r.StandardSeconds; over > 0 {
		session.OvertimeSeconds = over
	}
}

// LiveStatus classifies the current attendance state for an open day. events
// must belong to the day containing now.
func (r Reconstructor) LiveStatus(events []attendance.ActivityEvent, now time.Time) attendance.LiveStatus {
	status := attendance.LiveStatus{
		AttendanceStatus: attendance.StatusNotCheckedIn,
		BreakStatus:      attendance.BreakStatusOff,
		ArrivalStatus:    attendance.ArrivalNotCheckedIn,
	}

	sorted := make([]attendance.ActivityEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	var last *attendance.ActivityEvent
	var firstCheckIn *time.Time
	for i := range sorted {
		kind := normalizedType(sorted[i])
		if kind == attendance.ActivityUnknown {
			continue
		}
		last = &sorted[i]
		if kind == attendance.ActivityCheckIn && firstCheckIn == nil {
			t := sorted[i].Time
			firstCheckIn = &t
		}
	}

	if last == nil {
		return status
	}

	t := last.Time
	status.LastActivityTime = &t

	switch normalizedType(*last) {
	case attendance.ActivityCheckIn:
		status.AttendanceStatus = attendance.StatusCheckedIn
	case attendance.ActivityCheckOut:
		status.AttendanceStatus = attendance.StatusCheckedOut
	case attendance.ActivityBreakStart:
		status.AttendanceStatus = attendance.StatusOnBreak
		status.BreakStatus = attendance.BreakStatusOn
	case attendance.ActivityBreakEnd:
		status.AttendanceStatus = attendance.StatusCheckedIn
	}

	if firstCheckIn != nil {
		scheduled := startOfDay(*firstCheckIn).Add(r.ScheduledStart)
		if firstCheckIn.After(scheduled) {
			status.ArrivalStatus = attendance.ArrivalLate
		} else {
			status.ArrivalStatus = attendance.ArrivalOnTime
		}
	}

	// Running duration of the open session, if any.
	session := r.Reconstruct(startOfDay(now), sorted, now)
	if session.OpenWorkStart != nil {
		status.RunningSeconds = int64(now.Sub(*session.OpenWorkStart) / time.Second)
	}

	return status
}

// RoundHours converts whole seconds to hours rounded to 2 decimal places, the
// unit every external report uses.
func RoundHours(seconds int64) float64 {
	return math.Round(float64(seconds)/3600*100) / 100
}

func normalizedType(ev attendance.ActivityEvent) attendance.ActivityType {
	if ev.Type != "" && ev.Type != attendance.ActivityUnknown {
		return ev.Type
	}
	return attendance.ParseActivityType(ev.RawType)
}

func sameDay(day, now time.Time) bool {
	y1, m1, d1 := day.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
