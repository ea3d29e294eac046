package report

import (
	"time"

	"github.com/emsuite/ems-backend-go/internal/pkg/validator"
)

// Period presets map to trailing windows ending today: a week is the
// last 7 days, a month the last 30, a quarter the last 90.
const (
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
)

type Query struct {
	Period    string `json:"period"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (q *Query) Validate() error {
	var errs validator.ValidationErrors

	if q.Period != "" && !validator.IsInSlice(q.Period, []string{PeriodWeek, PeriodMonth, PeriodQuarter}) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "period must be one of week, month, quarter"})
	}
	if q.StartDate != "" {
		if _, ok := validator.IsValidDate(q.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		}
	}
	if q.EndDate != "" {
		if _, ok := validator.IsValidDate(q.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		}
	}
	if (q.StartDate == "") != (q.EndDate == "") {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date and end_date must be provided together"})
	}
	if q.StartDate != "" && q.EndDate != "" {
		start, err1 := time.Parse("2006-01-02", q.StartDate)
		end, err2 := time.Parse("2006-01-02", q.EndDate)
		if err1 == nil && err2 == nil && end.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Label names the resolved window: the requested preset, "week" when
// nothing was asked for, "custom" for an explicit date range.
func (q *Query) Label() string {
	if q.StartDate != "" && q.EndDate != "" {
		return "custom"
	}
	if q.Period == "" {
		return PeriodWeek
	}
	return q.Period
}

// Range resolves the query to a concrete [start, end] date pair. An
// explicit start/end wins over the period preset; with neither, the
// default is the trailing week.
func (q *Query) Range(now time.Time) (start, end time.Time) {
	if q.StartDate != "" && q.EndDate != "" {
		start, _ = time.Parse("2006-01-02", q.StartDate)
		end, _ = time.Parse("2006-01-02", q.EndDate)
		return start, end
	}

	end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch q.Period {
	case PeriodMonth:
		start = end.AddDate(0, 0, -29)
	case PeriodQuarter:
		start = end.AddDate(0, 0, -89)
	default:
		start = end.AddDate(0, 0, -6)
	}
	return start, end
}

type DailyBreakdown struct {
	Date           string  `json:"date"`
	WorkingHours   float64 `json:"working_hours"`
	BreakTime      float64 `json:"break_time"`
	Overtime       float64 `json:"overtime"`
	ManHours       float64 `json:"man_hours"`
	TasksCompleted int     `json:"tasks_completed"`
	TotalTasks     int     `json:"total_tasks"`
}

type HoursReport struct {
	EmployeeID        int64            `json:"employee_id"`
	Period            string           `json:"period"`
	StartDate         string           `json:"start_date"`
	EndDate           string           `json:"end_date"`
	DailyBreakdown    []DailyBreakdown `json:"daily_breakdown"`
	TotalWorkingHours float64          `json:"total_working_hours"`
	TotalBreakTime    float64          `json:"total_break_time"`
	TotalOvertime     float64          `json:"total_overtime"`
	AvgBreakTime      float64          `json:"avg_break_time"`
	AvgOvertime       float64          `json:"avg_overtime"`
	DaysAnalyzed      int              `json:"days_analyzed"`
}

type ManHoursEntry struct {
	Date         string  `json:"date"`
	WorkingHours float64 `json:"working_hours"`
	BreakTime    float64 `json:"break_time"`
	Productivity float64 `json:"productivity"`
	Utilization  float64 `json:"utilization"`
	ManHours     float64 `json:"man_hours"`
}

type ManHoursReport struct {
	EmployeeID         int64           `json:"employee_id"`
	EmployeeName       string          `json:"employee_name,omitempty"`
	Period             string          `json:"period"`
	StartDate          string          `json:"start_date"`
	EndDate            string          `json:"end_date"`
	Entries            []ManHoursEntry `json:"entries"`
	TotalWorkingHours  float64         `json:"total_working_hours"`
	TotalManHours      float64         `json:"total_man_hours"`
	TotalOvertime      float64         `json:"total_overtime"`
	AvgProductivity    float64         `json:"avg_productivity"`
	OverallUtilization float64         `json:"overall_utilization"`
	DaysAnalyzed       int             `json:"days_analyzed"`
}
