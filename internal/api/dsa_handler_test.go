package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"talentd/internal/database"
)

func TestMarkSolved_Idempotent(t *testing.T) {
	db := newTestDB(t, &database.DsaProblem{}, &database.SolvedProblem{})
	h := NewDsaHandler(db)

	problem := database.DsaProblem{Title: "Two Sum", Difficulty: "easy"}
	if err := db.Create(&problem).Error; err != nil {
		t.Fatalf("seed problem: %v", err)
	}

	for i := 0; i < 3; i++ {
		c, w := newTestContext(t, http.MethodPost, "/v1/dsa/problems/1/solved", nil)
		setIDParam(c, problem.ID)
		c.Set("userID", uint(7))

		h.MarkSolved(c)
		c.Writer.WriteHeaderNow()
		if w.Code != http.StatusNoContent {
			t.Fatalf("attempt %d: expected 204 got %d body=%s", i, w.Code, w.Body.String())
		}
	}

	var count int64
	if err := db.Model(&database.SolvedProblem{}).
		Where("user_id = ? AND problem_id = ?", 7, problem.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count solved: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one solved row, got %d", count)
	}
}

func TestMarkSolved_UnknownProblem(t *testing.T) {
	db := newTestDB(t, &database.DsaProblem{}, &database.SolvedProblem{})
	h := NewDsaHandler(db)

	c, w := newTestContext(t, http.MethodPost, "/v1/dsa/problems/99/solved", nil)
	setIDParam(c, 99)
	c.Set("userID", uint(7))

	h.MarkSolved(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestUnmarkSolved_ThenListEmpty(t *testing.T) {
	db := newTestDB(t, &database.DsaProblem{}, &database.SolvedProblem{})
	h := NewDsaHandler(db)

	problem := database.DsaProblem{Title: "Two Sum", Difficulty: "easy"}
	if err := db.Create(&problem).Error; err != nil {
		t.Fatalf("seed problem: %v", err)
	}
	if err := db.Create(&database.SolvedProblem{UserID: 7, ProblemID: problem.ID}).Error; err != nil {
		t.Fatalf("seed solved: %v", err)
	}

	c, w := newTestContext(t, http.MethodDelete, "/v1/dsa/problems/1/solved", nil)
	setIDParam(c, problem.ID)
	c.Set("userID", uint(7))
	h.UnmarkSolved(c)
	c.Writer.WriteHeaderNow()
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", w.Code)
	}

	c, w = newTestContext(t, http.MethodGet, "/v1/dsa/solved", nil)
	c.Set("userID", uint(7))
	h.ListSolved(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	var resp struct {
		ProblemIDs []uint `json:"problemIds"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.ProblemIDs) != 0 {
		t.Fatalf("expected no solved problems, got %v", resp.ProblemIDs)
	}
}

func TestListSolved_OnlyOwnRows(t *testing.T) {
	db := newTestDB(t, &database.DsaProblem{}, &database.SolvedProblem{})
	h := NewDsaHandler(db)

	rows := []database.SolvedProblem{
		{UserID: 7, ProblemID: 1},
		{UserID: 7, ProblemID: 3},
		{UserID: 8, ProblemID: 2},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed solved: %v", err)
		}
	}

	c, w := newTestContext(t, http.MethodGet, "/v1/dsa/solved", nil)
	c.Set("userID", uint(7))
	h.ListSolved(c)

	var resp struct {
		ProblemIDs []uint `json:"problemIds"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.ProblemIDs) != 2 {
		t.Fatalf("expected two solved problems, got %v", resp.ProblemIDs)
	}
}

func TestCreateProblem_RoundTrip(t *testing.T) {
	db := newTestDB(t, &database.DsaProblem{})
	h := NewDsaHandler(db)

	body, _ := json.Marshal(map[string]any{
		"title":      "Two Sum",
		"difficulty": "easy",
		"category":   "arrays",
	})
	c, w := newTestContext(t, http.MethodPost, "/v1/dsa/problems", body)
	h.CreateProblem(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var created database.DsaProblem
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == 0 || created.Title != "Two Sum" {
		t.Fatalf("unexpected problem: %+v", created)
	}

	c, w = newTestContext(t, http.MethodGet, "/v1/dsa/problems/1", nil)
	setIDParam(c, created.ID)
	h.GetProblem(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestCreateProblem_RequiresTitle(t *testing.T) {
	db := newTestDB(t, &database.DsaProblem{})
	h := NewDsaHandler(db)

	body, _ := json.Marshal(map[string]any{"difficulty": "easy"})
	c, w := newTestContext(t, http.MethodPost, "/v1/dsa/problems", body)
	h.CreateProblem(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestUpdateProblem_PreservesGenerationFlag(t *testing.T) {
	db := newTestDB(t, &database.DsaProblem{})
	h := NewDsaHandler(db)

	problem := database.DsaProblem{Title: "Two Sum", Difficulty: "easy", IsAIGenerated: true}
	if err := db.Create(&problem).Error; err != nil {
		t.Fatalf("seed problem: %v", err)
	}

	body, _ := json.Marshal(map[string]any{
		"title":      "Three Sum",
		"difficulty": "medium",
	})
	c, w := newTestContext(t, http.MethodPut, "/v1/dsa/problems/1", body)
	setIDParam(c, problem.ID)
	h.UpdateProblem(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var updated database.DsaProblem
	if err := db.First(&updated, problem.ID).Error; err != nil {
		t.Fatalf("reload problem: %v", err)
	}
	if updated.Title != "Three Sum" || updated.Difficulty != "medium" {
		t.Fatalf("unexpected problem: %+v", updated)
	}
	if !updated.IsAIGenerated {
		t.Fatal("expected generation flag to survive updates")
	}
}

func TestDeleteProblem_ThenGetReturns404(t *testing.T) {
	db := newTestDB(t, &database.DsaProblem{})
	h := NewDsaHandler(db)

	problem := database.DsaProblem{Title: "Two Sum"}
	if err := db.Create(&problem).Error; err != nil {
		t.Fatalf("seed problem: %v", err)
	}

	c, w := newTestContext(t, http.MethodDelete, "/v1/dsa/problems/1", nil)
	setIDParam(c, problem.ID)
	h.DeleteProblem(c)
	c.Writer.WriteHeaderNow()
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", w.Code)
	}

	c, w = newTestContext(t, http.MethodGet, "/v1/dsa/problems/1", nil)
	setIDParam(c, problem.ID)
	h.GetProblem(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestTopicCompanySheetCRUD(t *testing.T) {
	db := newTestDB(t, &database.DsaTopic{}, &database.DsaCompany{}, &database.DsaSheet{})
	h := NewDsaHandler(db)

	cases := []struct {
		name   string
		create gin.HandlerFunc
		update gin.HandlerFunc
		remove gin.HandlerFunc
		body   map[string]any
		count  func() int64
	}{
		{
			name:   "topic",
			create: h.CreateTopic,
			update: h.UpdateTopic,
			remove: h.DeleteTopic,
			body:   map[string]any{"name": "Graphs", "difficulty": "hard"},
			count: func() int64 {
				var n int64
				db.Model(&database.DsaTopic{}).Count(&n)
				return n
			},
		},
		{
			name:   "company",
			create: h.CreateCompany,
			update: h.UpdateCompany,
			remove: h.DeleteCompany,
			body:   map[string]any{"name": "Acme", "problemCount": 10},
			count: func() int64 {
				var n int64
				db.Model(&database.DsaCompany{}).Count(&n)
				return n
			},
		},
		{
			name:   "sheet",
			create: h.CreateSheet,
			update: h.UpdateSheet,
			remove: h.DeleteSheet,
			body:   map[string]any{"name": "Interview 75", "creator": "talentd"},
			count: func() int64 {
				var n int64
				db.Model(&database.DsaSheet{}).Count(&n)
				return n
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(tc.body)
			c, w := newTestContext(t, http.MethodPost, "/v1/dsa/"+tc.name, body)
			tc.create(c)
			if w.Code != http.StatusCreated {
				t.Fatalf("create: expected 201 got %d body=%s", w.Code, w.Body.String())
			}
			var created struct {
				ID uint `json:"ID"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if created.ID == 0 {
				t.Fatal("expected created row to have an id")
			}

			tc.body["name"] = "Renamed"
			body, _ = json.Marshal(tc.body)
			c, w = newTestContext(t, http.MethodPut, "/v1/dsa/"+tc.name, body)
			setIDParam(c, created.ID)
			tc.update(c)
			if w.Code != http.StatusOK {
				t.Fatalf("update: expected 200 got %d body=%s", w.Code, w.Body.String())
			}

			c, w = newTestContext(t, http.MethodDelete, "/v1/dsa/"+tc.name, nil)
			setIDParam(c, created.ID)
			tc.remove(c)
			c.Writer.WriteHeaderNow()
			if w.Code != http.StatusNoContent {
				t.Fatalf("delete: expected 204 got %d", w.Code)
			}
			if n := tc.count(); n != 0 {
				t.Fatalf("expected no rows after delete, got %d", n)
			}
		})
	}
}

func TestSolvedEndpoints_RequireUser(t *testing.T) {
	db := newTestDB(t, &database.DsaProblem{}, &database.SolvedProblem{})
	h := NewDsaHandler(db)

	c, w := newTestContext(t, http.MethodGet, "/v1/dsa/solved", nil)
	h.ListSolved(c)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}
