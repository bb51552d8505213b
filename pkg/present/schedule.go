package present

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/easy-qfnu/portal-client/pkg/portal"
)

var dayOfWeekText = map[int]string{
	1: "星期一",
	2: "星期二",
	3: "星期三",
	4: "星期四",
	5: "星期五",
	6: "星期六",
	7: "星期日",
}

var periodTimes = map[int]string{
	1:  "08:00-08:45",
	2:  "08:55-09:40",
	3:  "10:00-10:45",
	4:  "10:55-11:40",
	5:  "14:00-14:45",
	6:  "14:55-15:40",
	7:  "16:00-16:45",
	8:  "16:55-17:40",
	9:  "19:00-19:45",
	10: "19:55-20:40",
	11: "20:50-21:35",
}

// DayOfWeekText names weekday 1..7 (Monday first).
func DayOfWeekText(day int) string {
	if s, ok := dayOfWeekText[day]; ok {
		return s
	}
	return fmt.Sprintf("星期%d", day)
}

// PeriodTime returns the clock range of a single period, or "".
func PeriodTime(period int) string { return periodTimes[period] }

// FormatPeriods renders "第2节" or "第2-4节".
func FormatPeriods(periods []int) string {
	switch len(periods) {
	case 0:
		return "--"
	case 1:
		return fmt.Sprintf("第%d节", periods[0])
	default:
		return fmt.Sprintf("第%d-%d节", periods[0], periods[len(periods)-1])
	}
}

// PeriodTimeRange spans from the first period's start to the last period's end.
func PeriodTimeRange(periods []int) string {
	if len(periods) == 0 {
		return ""
	}
	first, okFirst := periodTimes[periods[0]]
	last, okLast := periodTimes[periods[len(periods)-1]]
	if !okFirst || !okLast {
		return ""
	}
	start, _, _ := strings.Cut(first, "-")
	_, end, _ := strings.Cut(last, "-")
	return start + "-" + end
}

// DaySchedule is the courses of one weekday.
type DaySchedule struct {
	Day     int
	Courses []portal.ClassSchedule
}

// GroupByDayOfWeek groups courses by weekday (ascending) and orders each day by
// first period. Courses without a weekday are dropped.
func GroupByDayOfWeek(courses []portal.ClassSchedule) []DaySchedule {
	byDay := make(map[int][]portal.ClassSchedule)
	for _, c := range courses {
		if day := c.TimeParsed.DayOfWeek; day != 0 {
			byDay[day] = append(byDay[day], c)
		}
	}

	days := make([]int, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Ints(days)

	out := make([]DaySchedule, 0, len(days))
	for _, day := range days {
		list := byDay[day]
		sort.SliceStable(list, func(i, j int) bool {
			return firstPeriod(list[i]) < firstPeriod(list[j])
		})
		out = append(out, DaySchedule{Day: day, Courses: list})
	}
	return out
}

// TodayString is t formatted as YYYY-MM-DD.
func TodayString(t time.Time) string { return t.Format("2006-01-02") }

func firstPeriod(c portal.ClassSchedule) int {
	if len(c.TimeParsed.PeriodArray) == 0 {
		return 0
	}
	return c.TimeParsed.PeriodArray[0]
}
