// Package present holds the pure formatting and aggregation helpers used to
// display portal data.
package present

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/easy-qfnu/portal-client/pkg/portal"
)

// ScoreClass picks the colour class for a score, numeric or graded.
func ScoreClass(score string) string {
	num, ok := parseNumber(score)
	if !ok {
		switch {
		case strings.Contains(score, "不及格"):
			return "text-danger"
		case strings.Contains(score, "优"), strings.Contains(score, "良"):
			return "text-success"
		case strings.Contains(score, "中"), strings.Contains(score, "及格"):
			return "text-info"
		default:
			return "text-[#1C1C1E]"
		}
	}

	switch {
	case num >= 90:
		return "text-success"
	case num >= 80:
		return "text-info"
	case num >= 70:
		return "text-[#00C7BE]"
	case num >= 60:
		return "text-warning"
	default:
		return "text-danger"
	}
}

// CustomStats aggregates a user-selected subset of grades.
type CustomStats struct {
	CourseCount  int
	TotalCredits float64
	// WeightedGPA and AvgScore are nil when no selected course carries one.
	WeightedGPA *float64
	AvgScore    *float64
}

// CreditsText formats total credits with one decimal.
func (s CustomStats) CreditsText() string { return strconv.FormatFloat(s.TotalCredits, 'f', 1, 64) }

// GPAText renders the weighted GPA or "--".
func (s CustomStats) GPAText() string { return optionalText(s.WeightedGPA) }

// ScoreText renders the credit-weighted average score or "--".
func (s CustomStats) ScoreText() string { return optionalText(s.AvgScore) }

// CalculateCustomStats aggregates grades whose index is selected.
func CalculateCustomStats(grades []portal.Grade, selected []bool) CustomStats {
	var (
		stats             CustomStats
		gpaSum, scoreSum  float64
		gpaCred, scoreCrd float64
	)
	for i, g := range grades {
		if i >= len(selected) || !selected[i] {
			continue
		}
		stats.CourseCount++

		credit, ok := parseNumber(g.Credit)
		if !ok {
			credit = 0
		}
		stats.TotalCredits += credit

		if gpa, ok := parseNumber(g.GPA); ok && gpa >= 0 && credit > 0 {
			gpaSum += gpa * credit
			gpaCred += credit
		}
		if score, ok := parseNumber(g.Score); ok && credit > 0 {
			scoreSum += score * credit
			scoreCrd += credit
		}
	}
	if gpaCred > 0 {
		v := gpaSum / gpaCred
		stats.WeightedGPA = &v
	}
	if scoreCrd > 0 {
		v := scoreSum / scoreCrd
		stats.AvgScore = &v
	}
	return stats
}

// PassRate is the rounded percentage of passed courses.
func PassRate(grades []portal.Grade) int {
	if len(grades) == 0 {
		return 0
	}
	passed := 0
	for _, g := range grades {
		if num, ok := parseNumber(g.Score); ok {
			if num >= 60 {
				passed++
			}
			continue
		}
		if strings.Contains(g.Score, "不及格") {
			continue
		}
		for _, mark := range []string{"优", "良", "中", "及格"} {
			if strings.Contains(g.Score, mark) {
				passed++
				break
			}
		}
	}
	return int(math.Round(float64(passed) / float64(len(grades)) * 100))
}

// CourseTypeOption is one course-category filter value.
type CourseTypeOption struct {
	Value string
	Label string
}

// CourseTypeOptions lists the grade filter categories.
func CourseTypeOptions() []CourseTypeOption {
	return []CourseTypeOption{
		{"01", "公共课"},
		{"02", "公共基础课"},
		{"03", "专业基础课"},
		{"04", "专业课"},
		{"05", "专业选修课"},
		{"06", "公共选修课"},
		{"07", "专业任选课"},
		{"08", "实践教学环节"},
		{"09", "公共任选课"},
		{"10", "教师教育基础课程（必修）"},
		{"11", "专业必修课"},
		{"12", "学科基础必修课"},
		{"13", "专业方向限选课"},
		{"14", "考试报名虚拟课程"},
		{"15", "教师教育选修课程"},
		{"16", "公共必修课"},
	}
}

// parseNumber reads a leading number leniently: "92.5分" reads as 92.5.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	seenDigit, seenDot := false, false
scan:
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			end = i + 1
		case r == '.' && !seenDot:
			seenDot = true
		case (r == '-' || r == '+') && i == 0:
		default:
			break scan
		}
	}
	if !seenDigit {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func optionalText(v *float64) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf("%.2f", *v)
}
