package commands

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/easy-qfnu/portal-client/pkg/portal"
	"github.com/easy-qfnu/portal-client/pkg/present"
)

func (r *Root) academicCommands() []*cli.Command {
	termFlag := &cli.StringFlag{Name: "term", Usage: "academic term, e.g. 2024-2025-1 (see 'portal terms')"}

	return []*cli.Command{
		{
			Name:  "grades",
			Usage: "List grades with statistics",
			Flags: []cli.Flag{
				termFlag,
				&cli.StringFlag{Name: "course-type", Usage: "course category code (see 'portal course-types')"},
				&cli.StringFlag{Name: "course-name", Usage: "filter by course name"},
				&cli.StringFlag{Name: "display-type", Usage: "portal display mode"},
				&cli.StringSliceFlag{Name: "select", Usage: "course codes counted in the custom statistics (default all)"},
			},
			Action: r.grades,
		},
		{
			Name:   "exams",
			Usage:  "List exam arrangements",
			Flags:  []cli.Flag{termFlag},
			Action: r.exams,
		},
		{
			Name:  "schedule",
			Usage: "Show the timetable for a date",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "date", Usage: "YYYY-MM-DD (default today)"},
			},
			Action: r.schedule,
		},
		{
			Name:   "course-plan",
			Usage:  "Show the training programme and completion",
			Action: r.coursePlan,
		},
		{
			Name:   "selection",
			Usage:  "List selected courses",
			Flags:  []cli.Flag{termFlag},
			Action: r.selection,
		},
		{
			Name:   "terms",
			Usage:  "List selectable terms",
			Action: r.terms,
		},
		{
			Name:   "course-types",
			Usage:  "List course category codes",
			Action: r.courseTypes,
		},
	}
}

type gradeSummary struct {
	PassRate     int    `json:"pass_rate"`
	CourseCount  int    `json:"course_count"`
	TotalCredits string `json:"total_credits"`
	WeightedGPA  string `json:"weighted_gpa"`
	AvgScore     string `json:"avg_score"`
}

type gradesOutput struct {
	*portal.GradeResponse
	Summary gradeSummary `json:"summary"`
}

func (r *Root) grades(ctx context.Context, c *cli.Command) error {
	resp, err := r.rt.API.Grades(ctx, portal.GradeQuery{
		Term:        c.String("term"),
		CourseType:  c.String("course-type"),
		CourseName:  c.String("course-name"),
		DisplayType: c.String("display-type"),
	})
	if err != nil {
		return err
	}
	if resp == nil {
		resp = &portal.GradeResponse{}
	}

	selected := selectGrades(resp.Grades, c.StringSlice("select"))
	stats := present.CalculateCustomStats(resp.Grades, selected)

	return r.writeJSON(c, gradesOutput{
		GradeResponse: resp,
		Summary: gradeSummary{
			PassRate:     present.PassRate(resp.Grades),
			CourseCount:  stats.CourseCount,
			TotalCredits: stats.CreditsText(),
			WeightedGPA:  stats.GPAText(),
			AvgScore:     stats.ScoreText(),
		},
	})
}

// selectGrades marks grades whose course code is listed; an empty list
// selects everything.
func selectGrades(grades []portal.Grade, codes []string) []bool {
	selected := make([]bool, len(grades))
	want := make(map[string]bool, len(codes))
	for _, code := range codes {
		if code = strings.TrimSpace(code); code != "" {
			want[code] = true
		}
	}
	for i, g := range grades {
		selected[i] = len(want) == 0 || want[g.CourseCode]
	}
	return selected
}

type examOutput struct {
	portal.ExamSchedule
	Status string `json:"status"`
}

func (r *Root) exams(ctx context.Context, c *cli.Command) error {
	list, err := r.rt.API.ExamSchedules(ctx, c.String("term"))
	if err != nil {
		return err
	}
	now := r.now()
	out := make([]examOutput, 0, len(list))
	for _, e := range list {
		out = append(out, examOutput{ExamSchedule: e, Status: examStatusText(present.ParseExamStatus(e.ExamTime, now))})
	}
	return r.writeJSON(c, out)
}

func examStatusText(st present.ExamStatus) string {
	switch {
	case st.IsPast:
		return "past"
	case st.IsToday:
		return "today"
	case st.IsSoon:
		return "soon"
	default:
		return "upcoming"
	}
}

type scheduleCourse struct {
	portal.ClassSchedule
	Periods string `json:"periods"`
	Time    string `json:"time"`
}

type scheduleDay struct {
	Day     int              `json:"day"`
	DayText string           `json:"day_text"`
	Courses []scheduleCourse `json:"courses"`
}

type scheduleOutput struct {
	Date        string        `json:"date"`
	CurrentWeek string        `json:"current_week"`
	Days        []scheduleDay `json:"days"`
}

func (r *Root) schedule(ctx context.Context, c *cli.Command) error {
	date := strings.TrimSpace(c.String("date"))
	if date == "" {
		date = present.TodayString(r.now())
	}
	resp, err := r.rt.API.Schedule(ctx, date)
	if err != nil {
		return err
	}
	if resp == nil {
		resp = &portal.ClassScheduleResponse{}
	}

	out := scheduleOutput{Date: date, CurrentWeek: resp.CurrentWeekRaw, Days: []scheduleDay{}}
	for _, day := range present.GroupByDayOfWeek(resp.Courses) {
		sd := scheduleDay{Day: day.Day, DayText: present.DayOfWeekText(day.Day)}
		for _, course := range day.Courses {
			sd.Courses = append(sd.Courses, scheduleCourse{
				ClassSchedule: course,
				Periods:       present.FormatPeriods(course.TimeParsed.PeriodArray),
				Time:          present.PeriodTimeRange(course.TimeParsed.PeriodArray),
			})
		}
		out.Days = append(out.Days, sd)
	}
	return r.writeJSON(c, out)
}

type planTotals struct {
	TotalRequired       float64 `json:"total_required"`
	TotalEarned         float64 `json:"total_earned"`
	Progress            int     `json:"progress"`
	CourseCount         int     `json:"course_count"`
	CompletedCount      int     `json:"completed_count"`
	GroupCount          int     `json:"group_count"`
	CompletedGroupCount int     `json:"completed_group_count"`
}

type coursePlanOutput struct {
	*portal.CoursePlanResponse
	Totals planTotals `json:"totals"`
}

func (r *Root) coursePlan(ctx context.Context, c *cli.Command) error {
	resp, err := r.rt.API.CoursePlan(ctx)
	if err != nil {
		return err
	}
	if resp == nil {
		resp = &portal.CoursePlanResponse{}
	}
	t := present.CalculatePlanTotals(resp.Groups)
	return r.writeJSON(c, coursePlanOutput{
		CoursePlanResponse: resp,
		Totals: planTotals{
			TotalRequired:       t.TotalRequired,
			TotalEarned:         t.TotalEarned,
			Progress:            t.Progress,
			CourseCount:         t.CourseCount,
			CompletedCount:      t.CompletedCount,
			GroupCount:          t.GroupCount,
			CompletedGroupCount: t.CompletedGroupCount,
		},
	})
}

type selectionOutput struct {
	Results      []portal.SelectionResult `json:"results"`
	TotalCredits string                   `json:"total_credits"`
	TotalHours   int                      `json:"total_hours"`
}

func (r *Root) selection(ctx context.Context, c *cli.Command) error {
	resp, err := r.rt.API.SelectionResults(ctx, c.String("term"))
	if err != nil {
		return err
	}
	var results []portal.SelectionResult
	if resp != nil {
		results = resp.Results
	}
	if results == nil {
		results = []portal.SelectionResult{}
	}
	return r.writeJSON(c, selectionOutput{
		Results:      results,
		TotalCredits: present.FormatCredits(present.TotalSelectionCredits(results)),
		TotalHours:   present.TotalSelectionHours(results),
	})
}

type option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (r *Root) terms(_ context.Context, c *cli.Command) error {
	opts := present.TermOptions(r.now())
	out := make([]option, 0, len(opts))
	for _, o := range opts {
		out = append(out, option{Value: o.Value, Label: o.Label})
	}
	return r.writeJSON(c, out)
}

func (r *Root) courseTypes(_ context.Context, c *cli.Command) error {
	opts := present.CourseTypeOptions()
	out := make([]option, 0, len(opts))
	for _, o := range opts {
		out = append(out, option{Value: o.Value, Label: o.Label})
	}
	return r.writeJSON(c, out)
}
