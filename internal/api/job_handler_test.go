package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"talentd/internal/database"
)

func newTestDB(t *testing.T, models ...any) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	if body != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func setIDParam(c *gin.Context, id uint) {
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", id)}}
}

func TestGetJob_NotFound(t *testing.T) {
	db := newTestDB(t, &database.Job{})
	h := NewJobHandler(db)

	c, w := newTestContext(t, http.MethodGet, "/v1/jobs/42", nil)
	setIDParam(c, 42)

	h.GetJob(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestCreateJob_RoundTrip(t *testing.T) {
	db := newTestDB(t, &database.Job{})
	h := NewJobHandler(db)

	body, _ := json.Marshal(map[string]any{
		"title":   "Backend Engineer",
		"company": "Acme",
		"jobType": "full-time",
	})
	c, w := newTestContext(t, http.MethodPost, "/v1/jobs", body)

	h.CreateJob(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var created database.Job
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected created job to have an id")
	}
	if !created.IsActive {
		t.Fatal("expected created job to be active")
	}

	c, w = newTestContext(t, http.MethodGet, "/v1/jobs/1", nil)
	setIDParam(c, created.ID)
	h.GetJob(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var fetched database.Job
	if err := json.Unmarshal(w.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if fetched.Title != "Backend Engineer" || fetched.Company != "Acme" {
		t.Fatalf("unexpected job: %+v", fetched)
	}
}

func TestCreateJob_MissingRequiredFields(t *testing.T) {
	db := newTestDB(t, &database.Job{})
	h := NewJobHandler(db)

	body, _ := json.Marshal(map[string]any{"location": "Bangalore"})
	c, w := newTestContext(t, http.MethodPost, "/v1/jobs", body)

	h.CreateJob(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestListJobs_SeparatesInternships(t *testing.T) {
	db := newTestDB(t, &database.Job{})
	h := NewJobHandler(db)

	seed := []database.Job{
		{Title: "SDE I", Company: "Acme", IsActive: true},
		{Title: "SWE Intern", Company: "Acme", IsInternship: true, IsActive: true},
		{Title: "Closed Role", Company: "Acme", IsActive: false},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed job: %v", err)
		}
	}

	c, w := newTestContext(t, http.MethodGet, "/v1/jobs", nil)
	h.ListJobs(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Items []database.Job `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Title != "SDE I" {
		t.Fatalf("unexpected jobs: %+v", resp.Items)
	}

	c, w = newTestContext(t, http.MethodGet, "/v1/internships", nil)
	h.ListInternships(c)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Title != "SWE Intern" {
		t.Fatalf("unexpected internships: %+v", resp.Items)
	}
}

func TestUpdateJob_PreservesGenerationFlag(t *testing.T) {
	db := newTestDB(t, &database.Job{})
	h := NewJobHandler(db)

	job := database.Job{Title: "SDE I", Company: "Acme", IsAIGenerated: true, IsActive: true}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}

	body, _ := json.Marshal(map[string]any{
		"title":   "SDE II",
		"company": "Acme",
	})
	c, w := newTestContext(t, http.MethodPut, "/v1/jobs/1", body)
	setIDParam(c, job.ID)

	h.UpdateJob(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var updated database.Job
	if err := db.First(&updated, job.ID).Error; err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if updated.Title != "SDE II" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if !updated.IsAIGenerated {
		t.Fatal("expected generation flag to survive updates")
	}
}

func TestDeleteJob_ThenGetReturns404(t *testing.T) {
	db := newTestDB(t, &database.Job{})
	h := NewJobHandler(db)

	job := database.Job{Title: "SDE I", Company: "Acme", IsActive: true}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}

	c, w := newTestContext(t, http.MethodDelete, "/v1/jobs/1", nil)
	setIDParam(c, job.ID)
	h.DeleteJob(c)
	c.Writer.WriteHeaderNow()
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", w.Code)
	}

	c, w = newTestContext(t, http.MethodGet, "/v1/jobs/1", nil)
	setIDParam(c, job.ID)
	h.GetJob(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestIDParam_RejectsGarbage(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3", ""} {
		c, w := newTestContext(t, http.MethodGet, "/v1/jobs/x", nil)
		c.Params = gin.Params{{Key: "id", Value: raw}}
		if _, ok := idParam(c); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q got %d", raw, w.Code)
		}
	}
}
