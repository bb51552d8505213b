package portal

// Grade is one row of the transcript.
type Grade struct {
	Semester   string `json:"semester"`
	CourseCode string `json:"course_code"`
	CourseName string `json:"course_name"`
	Score      string `json:"score"`
	Credit     string `json:"credit"`
	GPA        string `json:"gpa"`
	ExamType   string `json:"exam_type"`
	CourseProp string `json:"course_prop"`
}

// GradeStat aggregates a set of grades.
type GradeStat struct {
	WeightedGPA  float64 `json:"weighted_gpa"`
	TotalCredits float64 `json:"total_credits"`
	CourseCount  int     `json:"course_count"`
}

type YearStat struct {
	Year string    `json:"year"`
	Stat GradeStat `json:"stat"`
}

type SemesterStat struct {
	Semester string    `json:"semester"`
	Stat     GradeStat `json:"stat"`
}

// GradeResponse is the grades payload with server-side statistics.
type GradeResponse struct {
	Grades        []Grade        `json:"grades"`
	YearStats     []YearStat     `json:"year_stats"`
	SemesterStats []SemesterStat `json:"semester_stats"`
	TotalStat     GradeStat      `json:"total_stat"`
}

// GradeQuery filters the grades endpoint. Empty fields are not sent.
type GradeQuery struct {
	Term        string
	CourseType  string
	CourseName  string
	DisplayType string
}

// ExamSchedule is one scheduled exam.
type ExamSchedule struct {
	Index       string `json:"index"`
	Campus      string `json:"campus"`
	Session     string `json:"session"`
	CourseID    string `json:"course_id"`
	CourseName  string `json:"course_name"`
	Instructor  string `json:"instructor"`
	ExamTime    string `json:"exam_time"`
	ExamRoom    string `json:"exam_room"`
	SeatNumber  string `json:"seat_number"`
	AdmissionNo string `json:"admission_no"`
	Remarks     string `json:"remarks"`
	Operation   string `json:"operation"`
}

// ClassScheduleResponse is a day's timetable.
type ClassScheduleResponse struct {
	CurrentWeekRaw string          `json:"currentWeekRaw"`
	Courses        []ClassSchedule `json:"courses"`
}

type ClassSchedule struct {
	Index         int            `json:"index"`
	Name          string         `json:"name"`
	Credit        string         `json:"credit"`
	Category      string         `json:"category"`
	Location      string         `json:"location"`
	Classes       string         `json:"classes"`
	RawTimeString string         `json:"rawTimeString"`
	TimeParsed    ClassTimeParse `json:"timeParsed"`
}

type ClassTimeParse struct {
	Week        int   `json:"week"`
	DayOfWeek   int   `json:"dayOfWeek"`
	PeriodArray []int `json:"periodArray"`
}

// CoursePlanResponse is the training programme.
type CoursePlanResponse struct {
	Objectives  string        `json:"objectives"`
	Description string        `json:"description"`
	Groups      []CourseGroup `json:"groups"`
}

type CourseGroup struct {
	GroupName       string           `json:"group_name"`
	RequiredCredits float64          `json:"required_credits"`
	EarnedCredits   float64          `json:"earned_credits"`
	Courses         []CoursePlanInfo `json:"courses"`
}

type CoursePlanInfo struct {
	CourseName string  `json:"course_name"`
	CourseCode string  `json:"course_code"`
	Status     string  `json:"status"`
	CourseProp string  `json:"course_prop"`
	CourseAttr string  `json:"course_attr"`
	Credits    float64 `json:"credits"`
	Hours      string  `json:"hours"`
	Term       string  `json:"term"`
}

// SelectionResult is one selected course.
type SelectionResult struct {
	Index      string `json:"index"`
	CourseName string `json:"course_name"`
	CourseID   string `json:"course_id"`
	Teacher    string `json:"teacher"`
	Hours      string `json:"hours"`
	Credit     string `json:"credit"`
	CourseAttr string `json:"course_attr"`
	CourseProp string `json:"course_prop"`
	Operator   string `json:"operator"`
	SelectTime string `json:"select_time"`
}

type SelectionResultsResponse struct {
	Results []SelectionResult `json:"results"`
}

// Question is a freshman quiz question.
type Question struct {
	ID           int    `json:"id"`
	Type         string `json:"type"`
	QuestionText string `json:"question"`
	OptionA      string `json:"option_a"`
	OptionB      string `json:"option_b"`
	OptionC      string `json:"option_c"`
	OptionD      string `json:"option_d"`
	OptionAnswer string `json:"option_answer"`
}

// Recommendation is a published course recommendation.
type Recommendation struct {
	CourseName           string `json:"course_name"`
	TeacherName          string `json:"teacher_name"`
	RecommendationReason string `json:"recommendation_reason"`
	RecommenderNickname  string `json:"recommender_nickname"`
	RecommendationTime   int64  `json:"recommendation_time"`
	Campus               string `json:"campus"`
	RecommendationYear   string `json:"recommendation_year"`
}

// RecommendRequest submits a new recommendation. RecommenderNickname may be empty.
type RecommendRequest struct {
	CourseName           string `json:"course_name"`
	TeacherName          string `json:"teacher_name"`
	RecommendationReason string `json:"recommendation_reason"`
	RecommenderNickname  string `json:"recommender_nickname"`
	Campus               string `json:"campus"`
	RecommendationYear   string `json:"recommendation_year"`
}

type RecommendResponse struct {
	Message            string `json:"message"`
	RecommendationTime int64  `json:"recommendation_time"`
}

// Announcement is a site banner.
type Announcement struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Type      string `json:"type"`
	SortOrder int    `json:"sort_order"`
}

// DashboardData is the stats overview.
type DashboardData struct {
	TotalRequests   int64            `json:"totalRequests"`
	TodayRequests   int64            `json:"todayRequests"`
	UniqueIPs       int64            `json:"uniqueIPs"`
	TodayUniqueIPs  int64            `json:"todayUniqueIPs"`
	AvgLatencyMs    float64          `json:"avgLatencyMs"`
	StartTime       int64            `json:"startTime"`
	APIStats        []APIStat        `json:"apiStats"`
	StatusCodeStats []StatusCodeStat `json:"statusCodeStats"`
	TopKeywords     []KeywordStat    `json:"topKeywords"`
}

type APIStat struct {
	Path       string  `json:"path"`
	Count      int64   `json:"count"`
	AvgLatency float64 `json:"avgLatency"`
}

type StatusCodeStat struct {
	StatusCode int   `json:"statusCode"`
	Count      int64 `json:"count"`
}

type KeywordStat struct {
	Keyword      string `json:"keyword"`
	SearchCount  int64  `json:"searchCount"`
	LastSearched int64  `json:"lastSearched"`
}

// TrendData is one day of request volume.
type TrendData struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}
