package present

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

const firstTermYear = 2020

var termOrdinals = map[int]string{1: "一", 2: "二", 3: "三"}

// TermOption is one selectable academic term.
type TermOption struct {
	Value string
	Label string
}

// TermOptions lists terms newest first, from the academic year ending in
// now.Year()+1 back to the one ending in 2020.
func TermOptions(now time.Time) []TermOption {
	var out []TermOption
	for year := now.Year() + 1; year >= firstTermYear; year-- {
		for term := 3; term >= 1; term-- {
			out = append(out, TermOption{
				Value: fmt.Sprintf("%d-%d-%d", year-1, year, term),
				Label: fmt.Sprintf("%d-%d 学年 第%s学期", year-1, year, termOrdinals[term]),
			})
		}
	}
	return out
}

// ExamStatus places an exam date relative to today.
type ExamStatus struct {
	IsPast  bool
	IsToday bool
	IsSoon  bool // within the next seven days
}

var examDatePattern = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)

// ParseExamStatus reads the first YYYY-MM-DD in examTime. Unparseable times
// yield the zero status.
func ParseExamStatus(examTime string, now time.Time) ExamStatus {
	m := examDatePattern.FindStringSubmatch(examTime)
	if m == nil {
		return ExamStatus{}
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])

	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	exam := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, loc)
	diff := int(math.Round(exam.Sub(today).Hours() / 24))

	return ExamStatus{
		IsPast:  diff < 0,
		IsToday: diff == 0,
		IsSoon:  diff > 0 && diff <= 7,
	}
}

// ExamStatusClass colours an exam by how close it is.
func ExamStatusClass(examTime string, now time.Time) string {
	st := ParseExamStatus(examTime, now)
	switch {
	case st.IsPast:
		return "text-[#8E8E93]"
	case st.IsToday:
		return "text-danger"
	case st.IsSoon:
		return "text-warning"
	default:
		return "text-primary"
	}
}
