package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrackr/jobtrackr/internal/models"
	"github.com/jobtrackr/jobtrackr/internal/repositories"
	"github.com/jobtrackr/jobtrackr/internal/services"
	"github.com/jobtrackr/jobtrackr/internal/validation"
)

type apiResponse struct {
	Success    bool                     `json:"success"`
	Message    string                   `json:"message"`
	Data       json.RawMessage          `json:"data"`
	Errors     []validation.FieldError  `json:"errors"`
	Pagination *repositories.Pagination `json:"pagination"`
	Timestamp  string                   `json:"timestamp"`
}

func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbCtx, err := repositories.NewDbContext(repositories.DriverSQLite, ":memory:")
	require.NoError(t, err)

	sqlDB, err := dbCtx.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbCtx.Migrate())
	t.Cleanup(func() { _ = dbCtx.Close() })

	jobs := repositories.NewJobsRepository(dbCtx.DB)
	activities := repositories.NewActivitiesRepository(dbCtx.DB)

	bus := EventBus.New()
	recorder, err := services.NewActivityRecorder(activities, bus)
	require.NoError(t, err)
	t.Cleanup(recorder.Stop)

	handler := NewJobHandler(services.NewJobService(jobs, bus), activities)

	r := gin.New()
	Routes(r, handler)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var res apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), "body: %s", w.Body.String())
	return w, res
}

func validJobBody() map[string]any {
	return map[string]any{
		"position": "Backend Engineer",
		"company":  "Acme Corp",
		"salary":   map[string]any{"amount": 95000, "currency": "USD"},
		"link":     "https://acme.example.com/jobs/42",
		"status":   "applied",
	}
}

func createJob(t *testing.T, r *gin.Engine, body map[string]any) models.Job {
	t.Helper()

	w, res := doRequest(t, r, http.MethodPost, "/api/jobs", body)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var job models.Job
	require.NoError(t, json.Unmarshal(res.Data, &job))
	return job
}

func fieldMessages(fieldErrors []validation.FieldError) map[string]string {
	out := map[string]string{}
	for _, fe := range fieldErrors {
		out[fe.Field] = fe.Message
	}
	return out
}

const unknownID = "b5bba312-77b2-44dd-9ae1-cf0b0e0a0a41"

func Test_CreateJob_ReturnsCreatedRecord(t *testing.T) {
	r := setupAPI(t)

	job := createJob(t, r, validJobBody())
	assert.NotEmpty(t, job.ID)
	assert.False(t, job.CreatedAt.IsZero())

	w, res := doRequest(t, r, http.MethodGet, "/api/jobs/"+job.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched models.Job
	require.NoError(t, json.Unmarshal(res.Data, &fetched))
	assert.Equal(t, "Backend Engineer", fetched.Position)
	assert.Equal(t, "Acme Corp", fetched.Company)
	assert.Equal(t, 95000.0, fetched.Salary.Amount)
	assert.Equal(t, "USD", fetched.Salary.Currency)
}

func Test_CreateJob_AppliesDefaults(t *testing.T) {
	r := setupAPI(t)

	body := validJobBody()
	delete(body, "status")

	job := createJob(t, r, body)
	assert.Equal(t, models.StatusApplied, job.Status)
	assert.Equal(t, models.PriorityMedium, job.Priority)
	assert.False(t, job.DateApplied.IsZero())
}

func Test_CreateJob_MissingPosition(t *testing.T) {
	r := setupAPI(t)

	body := validJobBody()
	delete(body, "position")

	w, res := doRequest(t, r, http.MethodPost, "/api/jobs", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, res.Success)
	assert.Equal(t, "Position is required", fieldMessages(res.Errors)["position"])
}

func Test_CreateJob_NegativeSalaryAmount(t *testing.T) {
	r := setupAPI(t)

	body := validJobBody()
	body["salary"] = map[string]any{"amount": -500, "currency": "USD"}

	w, res := doRequest(t, r, http.MethodPost, "/api/jobs", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Salary amount must be a non-negative number",
		fieldMessages(res.Errors)["salary.amount"])
}

func Test_CreateJob_InvalidJSON(t *testing.T) {
	r := setupAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func Test_ListJobs_FilterByStatus(t *testing.T) {
	r := setupAPI(t)

	createJob(t, r, validJobBody())
	body := validJobBody()
	body["status"] = "interviewing"
	createJob(t, r, body)

	w, res := doRequest(t, r, http.MethodGet, "/api/jobs?status=applied", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var jobs []models.Job
	require.NoError(t, json.Unmarshal(res.Data, &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, models.StatusApplied, jobs[0].Status)
}

func Test_ListJobs_UnmatchedStatusGivesEmptyResult(t *testing.T) {
	r := setupAPI(t)

	createJob(t, r, validJobBody())

	w, res := doRequest(t, r, http.MethodGet, "/api/jobs?status=withdrawn", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, res.Success)

	var jobs []models.Job
	require.NoError(t, json.Unmarshal(res.Data, &jobs))
	assert.Empty(t, jobs)
	require.NotNil(t, res.Pagination)
	assert.Equal(t, int64(0), res.Pagination.Total)
}

func Test_ListJobs_CompanySubstringIsCaseInsensitive(t *testing.T) {
	r := setupAPI(t)

	createJob(t, r, validJobBody())
	body := validJobBody()
	body["company"] = "Web Inc"
	createJob(t, r, body)

	w, res := doRequest(t, r, http.MethodGet, "/api/jobs?company=acme", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var jobs []models.Job
	require.NoError(t, json.Unmarshal(res.Data, &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, "Acme Corp", jobs[0].Company)
}

func Test_ListJobs_PaginationMetadata(t *testing.T) {
	r := setupAPI(t)

	for i := 0; i < 15; i++ {
		createJob(t, r, validJobBody())
	}

	w, res := doRequest(t, r, http.MethodGet, "/api/jobs?page=2&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var jobs []models.Job
	require.NoError(t, json.Unmarshal(res.Data, &jobs))
	assert.Len(t, jobs, 5)
	require.NotNil(t, res.Pagination)
	assert.Equal(t, repositories.Pagination{Current: 2, Pages: 2, Total: 15}, *res.Pagination)

	w, res = doRequest(t, r, http.MethodGet, "/api/jobs?page=9&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(res.Data, &jobs))
	assert.Empty(t, jobs)
	assert.Equal(t, repositories.Pagination{Current: 9, Pages: 2, Total: 15}, *res.Pagination)
}

func Test_ListJobs_RejectsInvalidQuery(t *testing.T) {
	r := setupAPI(t)

	cases := []string{
		"/api/jobs?page=abc",
		"/api/jobs?page=0",
		"/api/jobs?limit=0",
		"/api/jobs?limit=500",
		"/api/jobs?sortBy=secretColumn",
		"/api/jobs?sortOrder=sideways",
	}
	for _, path := range cases {
		w, res := doRequest(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "path %s", path)
		assert.False(t, res.Success)
	}
}

func Test_GetJob_MalformedIDIsClientError(t *testing.T) {
	r := setupAPI(t)

	w, res := doRequest(t, r, http.MethodGet, "/api/jobs/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid job id format", res.Message)
}

func Test_GetJob_UnknownIDIsNotFound(t *testing.T) {
	r := setupAPI(t)

	w, res := doRequest(t, r, http.MethodGet, "/api/jobs/"+unknownID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Job not found", res.Message)
}

func Test_UpdateJob_ChangesOnlySubmittedFields(t *testing.T) {
	r := setupAPI(t)

	job := createJob(t, r, validJobBody())

	w, res := doRequest(t, r, http.MethodPut, "/api/jobs/"+job.ID, map[string]any{
		"status":     "interviewing",
		"nextAction": "Prepare for phone screen",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Job updated successfully", res.Message)

	var updated models.Job
	require.NoError(t, json.Unmarshal(res.Data, &updated))
	assert.Equal(t, models.StatusInterviewing, updated.Status)
	assert.Equal(t, "Prepare for phone screen", updated.NextAction)
	assert.Equal(t, job.Position, updated.Position)
	assert.Equal(t, job.Company, updated.Company)
	assert.Equal(t, job.Salary, updated.Salary)
}

func Test_UpdateJob_RejectsExplicitlyEmptyRequiredField(t *testing.T) {
	r := setupAPI(t)

	job := createJob(t, r, validJobBody())

	w, res := doRequest(t, r, http.MethodPut, "/api/jobs/"+job.ID, map[string]any{
		"position": "",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Position cannot be empty", fieldMessages(res.Errors)["position"])
}

func Test_UpdateJob_UnknownIDIsNotFound(t *testing.T) {
	r := setupAPI(t)

	w, _ := doRequest(t, r, http.MethodPut, "/api/jobs/"+unknownID, map[string]any{
		"status": "interviewing",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func Test_DeleteJob_ThenGetReturnsNotFound(t *testing.T) {
	r := setupAPI(t)

	job := createJob(t, r, validJobBody())

	w, res := doRequest(t, r, http.MethodDelete, "/api/jobs/"+job.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, res.Success)
	assert.Equal(t, "Job deleted successfully", res.Message)

	w, _ = doRequest(t, r, http.MethodGet, "/api/jobs/"+job.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Deleting again is also a 404.
	w, _ = doRequest(t, r, http.MethodDelete, "/api/jobs/"+job.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func Test_StatsSummary(t *testing.T) {
	r := setupAPI(t)

	statuses := []string{"applied", "applied", "interviewing", "offered", "rejected"}
	for _, status := range statuses {
		body := validJobBody()
		body["status"] = status
		createJob(t, r, body)
	}

	w, res := doRequest(t, r, http.MethodGet, "/api/jobs/stats/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats repositories.Stats
	require.NoError(t, json.Unmarshal(res.Data, &stats))
	assert.Equal(t, int64(5), stats.TotalJobs)
	assert.Equal(t, int64(5), stats.RecentJobs)
	assert.Equal(t, int64(2), stats.StatusCounts[models.StatusApplied])
	assert.Equal(t, int64(1), stats.StatusCounts[models.StatusInterviewing])
	assert.InDelta(t, 95000, stats.AverageSalary, 0.01)
}

func Test_ActivityTrail_RecordsCreateAndStatusChange(t *testing.T) {
	r := setupAPI(t)

	job := createJob(t, r, validJobBody())
	_, _ = doRequest(t, r, http.MethodPut, "/api/jobs/"+job.ID, map[string]any{
		"status": "interviewing",
	})

	w, res := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/jobs/%s/activity", job.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var activities []models.JobActivity
	require.NoError(t, json.Unmarshal(res.Data, &activities))
	require.Len(t, activities, 2)
	assert.Equal(t, models.ActivityStatusChanged, activities[0].Kind)
	assert.Equal(t, models.ActivityCreated, activities[1].Kind)
	assert.Contains(t, activities[0].Details, "applied")
	assert.Contains(t, activities[0].Details, "interviewing")
}

func Test_Health(t *testing.T) {
	r := setupAPI(t)

	w, res := doRequest(t, r, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, res.Success)
	assert.NotEmpty(t, res.Timestamp)
}
