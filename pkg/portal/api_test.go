package portal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/easy-qfnu/portal-client/pkg/httpclient"
)

type fakeDoer struct {
	calls    []httpclient.Request
	response string
	err      error
}

func (f *fakeDoer) Do(_ context.Context, req httpclient.Request) (json.RawMessage, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.response), nil
}

func TestGradesSendsOnlyNonEmptyFilters(t *testing.T) {
	doer := &fakeDoer{response: `{"grades":[{"course_name":"数据结构","score":"92","credit":"4","gpa":"4.2"}],"total_stat":{"weighted_gpa":4.2,"total_credits":4,"course_count":1}}`}
	api := NewAPI(doer)

	resp, err := api.Grades(context.Background(), GradeQuery{Term: "2024-2025-1", CourseType: "04"})
	if err != nil {
		t.Fatalf("Grades: %v", err)
	}
	if len(resp.Grades) != 1 || resp.Grades[0].CourseName != "数据结构" || resp.TotalStat.CourseCount != 1 {
		t.Fatalf("unexpected grades %+v", resp)
	}

	call := doer.calls[0]
	if call.Method != http.MethodGet || call.Path != "/api/v1/zhjw/grades" {
		t.Fatalf("unexpected call %+v", call)
	}
	if call.Query.Get("term") != "2024-2025-1" || call.Query.Get("course_type") != "04" {
		t.Fatalf("unexpected query %v", call.Query)
	}
	if _, ok := call.Query["course_name"]; ok {
		t.Fatalf("empty course_name must be omitted")
	}
	if _, ok := call.Query["display_type"]; ok {
		t.Fatalf("empty display_type must be omitted")
	}
}

func TestEndpointsUseExpectedPaths(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		path string
		call func(*API) error
	}{
		{"course plan", "/api/v1/zhjw/course-plan", func(a *API) error { _, err := a.CoursePlan(ctx); return err }},
		{"exams", "/api/v1/zhjw/exam-schedules", func(a *API) error { _, err := a.ExamSchedules(ctx, ""); return err }},
		{"schedule", "/api/v1/zhjw/schedule", func(a *API) error { _, err := a.Schedule(ctx, "2025-03-03"); return err }},
		{"selection", "/api/v1/zhjw/selection-results", func(a *API) error { _, err := a.SelectionResults(ctx, "x"); return err }},
		{"questions", "/api/v1/questions/search", func(a *API) error { _, err := a.SearchQuestions(ctx, "校训"); return err }},
		{"recommend query", "/api/v1/course-recommendation/query", func(a *API) error { _, err := a.QueryRecommendations(ctx, "数学"); return err }},
		{"announcements", "/api/v1/site/announcements", func(a *API) error { _, err := a.Announcements(ctx); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doer := &fakeDoer{response: "null"}
			if err := tc.call(NewAPI(doer)); err != nil {
				t.Fatalf("call: %v", err)
			}
			if len(doer.calls) != 1 || doer.calls[0].Path != tc.path || doer.calls[0].Method != http.MethodGet {
				t.Fatalf("calls = %+v", doer.calls)
			}
		})
	}
}

func TestExamSchedulesOmitsEmptyTerm(t *testing.T) {
	doer := &fakeDoer{response: `[]`}
	if _, err := NewAPI(doer).ExamSchedules(context.Background(), ""); err != nil {
		t.Fatalf("ExamSchedules: %v", err)
	}
	if len(doer.calls[0].Query) != 0 {
		t.Fatalf("expected no query, got %v", doer.calls[0].Query)
	}
}

func TestRecommendValidatesRequiredFields(t *testing.T) {
	doer := &fakeDoer{response: `{"message":"ok","recommendation_time":1700000000}`}
	api := NewAPI(doer)

	if _, err := api.Recommend(context.Background(), RecommendRequest{CourseName: "线性代数"}); err == nil {
		t.Fatalf("expected validation error")
	}
	if len(doer.calls) != 0 {
		t.Fatalf("invalid request must not be sent")
	}

	resp, err := api.Recommend(context.Background(), RecommendRequest{
		CourseName:           "线性代数",
		TeacherName:          "张老师",
		RecommendationReason: "讲得清楚",
		Campus:               "曲阜",
		RecommendationYear:   "2024",
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.RecommendationTime != 1700000000 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if doer.calls[0].Method != http.MethodPost || doer.calls[0].Path != "/api/v1/course-recommendation/recommend" {
		t.Fatalf("unexpected call %+v", doer.calls[0])
	}
}

func TestAPIPropagatesClientErrors(t *testing.T) {
	want := &httpclient.Error{Message: "network error, please check your connection"}
	_, err := NewAPI(&fakeDoer{err: want}).Announcements(context.Background())
	if !errors.Is(err, want) {
		t.Fatalf("expected client error, got %v", err)
	}
}

func TestAPIDecodeFailureIsWrapped(t *testing.T) {
	_, err := NewAPI(&fakeDoer{response: `{"groups":"nope"}`}).CoursePlan(context.Background())
	if err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestAPIThroughHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{"code":0,"msg":"success","data":{"currentWeekRaw":"第3周/20周","courses":[{"name":"网络管理","timeParsed":{"week":3,"dayOfWeek":1,"periodArray":[2,3,4]}}]}}`)
	}))
	defer srv.Close()

	client := httpclient.New(httpclient.Config{BaseURL: srv.URL}, staticCreds("tok"), nil)
	resp, err := NewAPI(client).Schedule(context.Background(), "2025-03-10")
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if resp.CurrentWeekRaw != "第3周/20周" || resp.Courses[0].TimeParsed.PeriodArray[2] != 4 {
		t.Fatalf("unexpected schedule %+v", resp)
	}
}

type staticCreds string

func (s staticCreds) Credential() string { return string(s) }
func (s staticCreds) Clear()             {}
