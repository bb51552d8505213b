package present

import (
	"math"
	"strconv"
	"strings"

	"github.com/easy-qfnu/portal-client/pkg/portal"
)

// CoursePlanStatusClass colours a course-plan completion status.
func CoursePlanStatusClass(status string) string {
	switch {
	case status == "":
		return "text-[#8E8E93]"
	case strings.Contains(status, "优"), strings.Contains(status, "良"):
		return "text-success"
	case strings.Contains(status, "中"), strings.Contains(status, "及格"):
		return "text-info"
	case strings.Contains(status, "已修"):
		return "text-primary"
	case strings.Contains(status, "未修"):
		return "text-[#8E8E93]"
	default:
		return "text-[#1C1C1E]"
	}
}

// PlanTotals summarises a course plan.
type PlanTotals struct {
	TotalRequired       float64
	TotalEarned         float64
	Progress            int // percent, rounded
	CourseCount         int
	CompletedCount      int
	GroupCount          int
	CompletedGroupCount int
}

// CalculatePlanTotals sums credits across groups. A group is complete once
// its earned credits reach the required credits.
func CalculatePlanTotals(groups []portal.CourseGroup) PlanTotals {
	t := PlanTotals{GroupCount: len(groups)}
	for _, g := range groups {
		t.TotalRequired += g.RequiredCredits
		t.TotalEarned += g.EarnedCredits
		if g.EarnedCredits >= g.RequiredCredits {
			t.CompletedGroupCount++
		}
		t.CourseCount += len(g.Courses)
		for _, c := range g.Courses {
			if strings.Contains(c.Status, "已修") {
				t.CompletedCount++
			}
		}
	}
	if t.TotalRequired > 0 {
		t.Progress = int(math.Round(t.TotalEarned / t.TotalRequired * 100))
	}
	return t
}

// TotalSelectionCredits sums credits; unparseable values count as zero.
func TotalSelectionCredits(results []portal.SelectionResult) float64 {
	var sum float64
	for _, r := range results {
		if v, ok := parseNumber(r.Credit); ok {
			sum += v
		}
	}
	return sum
}

// TotalSelectionHours sums the integer part of each result's hours.
func TotalSelectionHours(results []portal.SelectionResult) int {
	sum := 0
	for _, r := range results {
		if v, ok := parseNumber(r.Hours); ok {
			sum += int(v)
		}
	}
	return sum
}

// FormatCredits renders credits with one decimal.
func FormatCredits(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }
