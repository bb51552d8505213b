package present

import (
	"testing"
	"time"

	"github.com/easy-qfnu/portal-client/pkg/portal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreClass(t *testing.T) {
	cases := map[string]string{
		"95":   "text-success",
		"90":   "text-success",
		"85.5": "text-info",
		"72":   "text-[#00C7BE]",
		"60":   "text-warning",
		"59":   "text-danger",
		"优":    "text-success",
		"良好":   "text-success",
		"中等":   "text-info",
		"及格":   "text-info",
		"不及格":  "text-danger",
		"缓考":   "text-[#1C1C1E]",
	}
	for score, want := range cases {
		assert.Equal(t, want, ScoreClass(score), score)
	}
}

func TestCalculateCustomStats(t *testing.T) {
	grades := []portal.Grade{
		{Score: "90", Credit: "4", GPA: "4.0"},
		{Score: "优", Credit: "2", GPA: "4.0"},
		{Score: "70", Credit: "2", GPA: "2.0"},
		{Score: "80", Credit: "3", GPA: "3.0"},
	}

	stats := CalculateCustomStats(grades, []bool{true, true, true, false})

	assert.Equal(t, 3, stats.CourseCount)
	assert.Equal(t, "8.0", stats.CreditsText())
	// (4*4 + 4*2 + 2*2) / 8
	assert.Equal(t, "3.50", stats.GPAText())
	// (90*4 + 70*2) / 6
	assert.Equal(t, "83.33", stats.ScoreText())
}

func TestCalculateCustomStats_empty_selection(t *testing.T) {
	stats := CalculateCustomStats([]portal.Grade{{Score: "90", Credit: "2"}}, nil)

	assert.Equal(t, 0, stats.CourseCount)
	assert.Equal(t, "--", stats.GPAText())
	assert.Equal(t, "--", stats.ScoreText())
}

func TestPassRate(t *testing.T) {
	grades := []portal.Grade{
		{Score: "60"}, {Score: "59"}, {Score: "良"}, {Score: "不及格"},
	}
	assert.Equal(t, 50, PassRate(grades))
	assert.Equal(t, 0, PassRate(nil))
}

func TestCourseTypeOptions(t *testing.T) {
	opts := CourseTypeOptions()
	require.Len(t, opts, 16)
	assert.Equal(t, CourseTypeOption{"01", "公共课"}, opts[0])
	assert.Equal(t, CourseTypeOption{"16", "公共必修课"}, opts[15])
}

func TestTermOptions(t *testing.T) {
	opts := TermOptions(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))

	// 2026 down to 2020 inclusive, three terms each.
	require.Len(t, opts, 7*3)
	assert.Equal(t, TermOption{"2025-2026-3", "2025-2026 学年 第三学期"}, opts[0])
	assert.Equal(t, TermOption{"2025-2026-1", "2025-2026 学年 第一学期"}, opts[2])
	assert.Equal(t, "2019-2020-1", opts[len(opts)-1].Value)
}

func TestExamStatus(t *testing.T) {
	now := time.Date(2025, 1, 10, 15, 30, 0, 0, time.Local)

	assert.Equal(t, ExamStatus{IsPast: true}, ParseExamStatus("2025-01-09 09:00-11:00", now))
	assert.Equal(t, ExamStatus{IsToday: true}, ParseExamStatus("2025-01-10 09:00-11:00", now))
	assert.Equal(t, ExamStatus{IsSoon: true}, ParseExamStatus("2025-01-17", now))
	assert.Equal(t, ExamStatus{}, ParseExamStatus("2025-01-18", now))
	assert.Equal(t, ExamStatus{}, ParseExamStatus("第18周", now))

	assert.Equal(t, "text-[#8E8E93]", ExamStatusClass("2025-01-01", now))
	assert.Equal(t, "text-danger", ExamStatusClass("2025-01-10", now))
	assert.Equal(t, "text-warning", ExamStatusClass("2025-01-12", now))
	assert.Equal(t, "text-primary", ExamStatusClass("", now))
}

func TestCoursePlanStatusClass(t *testing.T) {
	assert.Equal(t, "text-success", CoursePlanStatusClass("已修(优)"))
	assert.Equal(t, "text-info", CoursePlanStatusClass("已修(及格)"))
	assert.Equal(t, "text-primary", CoursePlanStatusClass("已修"))
	assert.Equal(t, "text-[#8E8E93]", CoursePlanStatusClass("未修"))
	assert.Equal(t, "text-[#8E8E93]", CoursePlanStatusClass(""))
	assert.Equal(t, "text-[#1C1C1E]", CoursePlanStatusClass("在修"))
}

func TestCalculatePlanTotals(t *testing.T) {
	groups := []portal.CourseGroup{
		{RequiredCredits: 10, EarnedCredits: 10, Courses: []portal.CoursePlanInfo{{Status: "已修(优)"}, {Status: "已修"}}},
		{RequiredCredits: 6, EarnedCredits: 2, Courses: []portal.CoursePlanInfo{{Status: "未修"}}},
	}

	got := CalculatePlanTotals(groups)

	assert.Equal(t, PlanTotals{
		TotalRequired:       16,
		TotalEarned:         12,
		Progress:            75,
		CourseCount:         3,
		CompletedCount:      2,
		GroupCount:          2,
		CompletedGroupCount: 1,
	}, got)
	assert.Equal(t, 0, CalculatePlanTotals(nil).Progress)
}

func TestSelectionTotals(t *testing.T) {
	results := []portal.SelectionResult{
		{Credit: "2.5", Hours: "40"},
		{Credit: "1", Hours: "16"},
		{Credit: "", Hours: "n/a"},
	}
	assert.Equal(t, "3.5", FormatCredits(TotalSelectionCredits(results)))
	assert.Equal(t, 56, TotalSelectionHours(results))
}

func TestPeriods(t *testing.T) {
	assert.Equal(t, "--", FormatPeriods(nil))
	assert.Equal(t, "第3节", FormatPeriods([]int{3}))
	assert.Equal(t, "第2-4节", FormatPeriods([]int{2, 3, 4}))

	assert.Equal(t, "08:55-11:40", PeriodTimeRange([]int{2, 3, 4}))
	assert.Equal(t, "20:50-21:35", PeriodTimeRange([]int{11}))
	assert.Equal(t, "", PeriodTimeRange([]int{12}))
	assert.Equal(t, "", PeriodTimeRange(nil))
	assert.Equal(t, "14:00-14:45", PeriodTime(5))
}

func TestDayOfWeekText(t *testing.T) {
	assert.Equal(t, "星期一", DayOfWeekText(1))
	assert.Equal(t, "星期日", DayOfWeekText(7))
	assert.Equal(t, "星期8", DayOfWeekText(8))
}

func TestGroupByDayOfWeek(t *testing.T) {
	courses := []portal.ClassSchedule{
		{Name: "c", TimeParsed: portal.ClassTimeParse{DayOfWeek: 3, PeriodArray: []int{5}}},
		{Name: "b", TimeParsed: portal.ClassTimeParse{DayOfWeek: 1, PeriodArray: []int{3, 4}}},
		{Name: "a", TimeParsed: portal.ClassTimeParse{DayOfWeek: 1, PeriodArray: []int{1, 2}}},
		{Name: "unscheduled"},
	}

	got := GroupByDayOfWeek(courses)

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Day)
	assert.Equal(t, "a", got[0].Courses[0].Name)
	assert.Equal(t, "b", got[0].Courses[1].Name)
	assert.Equal(t, 3, got[1].Day)
}

func TestQuestionTypeClass(t *testing.T) {
	assert.Equal(t, "bg-info/10 text-info", QuestionTypeClass("多选题"))
	assert.Equal(t, "bg-primary/10 text-primary", QuestionTypeClass("简答题"))
}

func TestAnnouncementClass(t *testing.T) {
	assert.Contains(t, AnnouncementClass("warning"), "yellow")
	assert.Contains(t, AnnouncementClass("error"), "red")
	assert.Contains(t, AnnouncementClass("info"), "blue")
}

func TestHighlightKeyword(t *testing.T) {
	got := HighlightKeyword("Go and go", "GO")
	assert.Equal(t,
		`<mark class="bg-warning/30 text-warning px-0.5 rounded">Go</mark> and <mark class="bg-warning/30 text-warning px-0.5 rounded">go</mark>`,
		got)

	assert.Equal(t, `a<mark class="bg-warning/30 text-warning px-0.5 rounded">.*</mark>b`, HighlightKeyword("a.*b", ".*"))
	assert.Equal(t, "text", HighlightKeyword("text", ""))
	assert.Equal(t, "", HighlightKeyword("", "x"))
}

func TestFormatTime(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	assert.Equal(t, "2023-11-15 06:13", FormatTime(1700000000, loc))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1.0K", FormatNumber(1000))
	assert.Equal(t, "9.9K", FormatNumber(9949))
	assert.Equal(t, "1.2W", FormatNumber(12345))
	assert.Equal(t, "2.5M", FormatNumber(2_500_000))
}

func TestFormatUptime(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	now := start.Add(2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second)

	assert.Equal(t, "2天 03:04:05", FormatUptime(start, now))
	assert.Equal(t, "00:01:05", FormatUptime(start, start.Add(65*time.Second)))
	assert.Equal(t, "--:--:--", FormatUptime(time.Time{}, now))
}

func TestPlainText(t *testing.T) {
	html := `<p>系统维护通知</p><p>时间：<b>周六</b> 22:00<br>请提前保存</p>`
	assert.Equal(t, "系统维护通知\n时间：周六 22:00\n请提前保存", PlainText(html))
	assert.Equal(t, "no markup", PlainText("  no markup "))
}
