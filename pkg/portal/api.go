// Package portal is the typed surface of the academic-affairs portal API.
package portal

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/easy-qfnu/portal-client/pkg/httpclient"
)

const (
	pathCoursePlan       = "/api/v1/zhjw/course-plan"
	pathExamSchedules    = "/api/v1/zhjw/exam-schedules"
	pathGrades           = "/api/v1/zhjw/grades"
	pathSchedule         = "/api/v1/zhjw/schedule"
	pathSelectionResults = "/api/v1/zhjw/selection-results"
	pathQuestionSearch   = "/api/v1/questions/search"
	pathRecommendQuery   = "/api/v1/course-recommendation/query"
	pathRecommend        = "/api/v1/course-recommendation/recommend"
	pathAnnouncements    = "/api/v1/site/announcements"
)

// API calls the portal through the shared HTTP client, so every failure is
// already normalized and surfaced when it reaches the caller.
type API struct {
	doer httpclient.Doer
}

// NewAPI wraps doer.
func NewAPI(doer httpclient.Doer) *API {
	return &API{doer: doer}
}

func (a *API) CoursePlan(ctx context.Context) (*CoursePlanResponse, error) {
	return get[*CoursePlanResponse](ctx, a, pathCoursePlan, nil)
}

func (a *API) ExamSchedules(ctx context.Context, term string) ([]ExamSchedule, error) {
	return get[[]ExamSchedule](ctx, a, pathExamSchedules, httpclient.Query("term", term))
}

func (a *API) Grades(ctx context.Context, q GradeQuery) (*GradeResponse, error) {
	return get[*GradeResponse](ctx, a, pathGrades, httpclient.Query(
		"term", q.Term,
		"course_type", q.CourseType,
		"course_name", q.CourseName,
		"display_type", q.DisplayType,
	))
}

// Schedule returns the timetable for date (YYYY-MM-DD).
func (a *API) Schedule(ctx context.Context, date string) (*ClassScheduleResponse, error) {
	return get[*ClassScheduleResponse](ctx, a, pathSchedule, httpclient.Query("date", date))
}

func (a *API) SelectionResults(ctx context.Context, term string) (*SelectionResultsResponse, error) {
	return get[*SelectionResultsResponse](ctx, a, pathSelectionResults, httpclient.Query("term", term))
}

func (a *API) SearchQuestions(ctx context.Context, keyword string) ([]Question, error) {
	return get[[]Question](ctx, a, pathQuestionSearch, httpclient.Query("keyword", keyword))
}

func (a *API) QueryRecommendations(ctx context.Context, keyword string) ([]Recommendation, error) {
	return get[[]Recommendation](ctx, a, pathRecommendQuery, httpclient.Query("keyword", keyword))
}

// Recommend submits a recommendation. Required fields are checked locally
// before anything is sent.
func (a *API) Recommend(ctx context.Context, req RecommendRequest) (*RecommendResponse, error) {
	if missing := req.missingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("recommendation is missing %s", strings.Join(missing, ", "))
	}
	raw, err := a.doer.Do(ctx, httpclient.Request{Method: http.MethodPost, Path: pathRecommend, Body: req})
	if err != nil {
		return nil, err
	}
	out, err := httpclient.Decode[*RecommendResponse](raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", pathRecommend, err)
	}
	return out, nil
}

func (a *API) Announcements(ctx context.Context) ([]Announcement, error) {
	return get[[]Announcement](ctx, a, pathAnnouncements, nil)
}

func (r RecommendRequest) missingFields() []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"course_name", r.CourseName},
		{"teacher_name", r.TeacherName},
		{"recommendation_reason", r.RecommendationReason},
		{"campus", r.Campus},
		{"recommendation_year", r.RecommendationYear},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func get[T any](ctx context.Context, a *API, path string, query url.Values) (T, error) {
	var zero T
	raw, err := a.doer.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return zero, err
	}
	out, err := httpclient.Decode[T](raw)
	if err != nil {
		return zero, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}
