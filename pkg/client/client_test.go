package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrackr/jobtrackr/internal/handlers"
	"github.com/jobtrackr/jobtrackr/internal/repositories"
	"github.com/jobtrackr/jobtrackr/internal/services"
)

func newTestServer(t *testing.T) *httptest.Server {
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

	handler := handlers.NewJobHandler(services.NewJobService(jobs, bus), activities)

	r := gin.New()
	handlers.Routes(r, handler)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func amount(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

func createRequest() *CreateJobRequest {
	return &CreateJobRequest{
		Position: "Backend Engineer",
		Company:  "Acme Corp",
		Salary:   &SalaryRequest{Amount: amount(95000), Currency: "USD"},
		Link:     "https://acme.example.com/jobs/42",
	}
}

func Test_Client_CreateGetRoundTrip(t *testing.T) {
	c := New(newTestServer(t).URL)
	ctx := context.Background()

	created, err := c.CreateJob(ctx, createRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	fetched, err := c.GetJob(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Backend Engineer", fetched.Position)
	assert.Equal(t, 95000.0, fetched.Salary.Amount)
	assert.Equal(t, "applied", fetched.Status)
}

func Test_Client_ListJobsWithFilters(t *testing.T) {
	c := New(newTestServer(t).URL)
	ctx := context.Background()

	_, err := c.CreateJob(ctx, createRequest())
	require.NoError(t, err)

	req := createRequest()
	req.Status = "interviewing"
	_, err = c.CreateJob(ctx, req)
	require.NoError(t, err)

	page, err := c.ListJobs(ctx, ListJobsParams{Status: "interviewing"})
	require.NoError(t, err)
	require.Len(t, page.Jobs, 1)
	assert.Equal(t, "interviewing", page.Jobs[0].Status)
	assert.Equal(t, int64(1), page.Pagination.Total)
}

func Test_Client_UpdateAndDelete(t *testing.T) {
	c := New(newTestServer(t).URL)
	ctx := context.Background()

	created, err := c.CreateJob(ctx, createRequest())
	require.NoError(t, err)

	updated, err := c.UpdateJob(ctx, created.ID, &UpdateJobRequest{
		Status: strPtr("offered"),
	})
	require.NoError(t, err)
	assert.Equal(t, "offered", updated.Status)

	require.NoError(t, c.DeleteJob(ctx, created.ID))

	_, err = c.GetJob(ctx, created.ID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func Test_Client_PartialUpdateOmitsUnsetFields(t *testing.T) {
	c := New(newTestServer(t).URL)
	ctx := context.Background()

	created, err := c.CreateJob(ctx, createRequest())
	require.NoError(t, err)

	// Only nextAction is set; everything else must survive untouched.
	updated, err := c.UpdateJob(ctx, created.ID, &UpdateJobRequest{
		NextAction: strPtr("Prepare for phone screen"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Prepare for phone screen", updated.NextAction)
	assert.Equal(t, created.Position, updated.Position)
	assert.Equal(t, created.Company, updated.Company)
	assert.Equal(t, created.Salary, updated.Salary)
	assert.Equal(t, created.Status, updated.Status)
}

func Test_Client_ValidationErrorCarriesFieldDetail(t *testing.T) {
	c := New(newTestServer(t).URL)

	req := createRequest()
	req.Position = ""

	_, err := c.CreateJob(context.Background(), req)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.NotEmpty(t, apiErr.Fields)
	assert.Equal(t, "position", apiErr.Fields[0].Field)
	assert.Equal(t, "Position is required", apiErr.Fields[0].Message)
}

func Test_Client_MalformedIDIsClientError(t *testing.T) {
	c := New(newTestServer(t).URL)

	_, err := c.GetJob(context.Background(), "not-a-uuid")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func Test_Client_StatsAndHealth(t *testing.T) {
	c := New(newTestServer(t).URL)
	ctx := context.Background()

	_, err := c.CreateJob(ctx, createRequest())
	require.NoError(t, err)

	stats, err := c.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalJobs)
	assert.Equal(t, int64(1), stats.StatusCounts["applied"])

	assert.NoError(t, c.Health(ctx))
}

func Test_Client_ActivityTrail(t *testing.T) {
	c := New(newTestServer(t).URL)
	ctx := context.Background()

	created, err := c.CreateJob(ctx, createRequest())
	require.NoError(t, err)

	activities, err := c.GetActivity(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "created", activities[0].Kind)
}
