package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestOptionalIDTriState(t *testing.T) {
	var payload struct {
		Department optionalID `json:"department"`
	}

	// absent
	if err := json.Unmarshal([]byte(`{}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Department.Present {
		t.Fatalf("absent field marked present")
	}

	// explicit null
	payload.Department = optionalID{}
	if err := json.Unmarshal([]byte(`{"department":null}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !payload.Department.Present || payload.Department.Value != nil {
		t.Fatalf("null field = %+v, want present nil", payload.Department)
	}

	// value
	payload.Department = optionalID{}
	if err := json.Unmarshal([]byte(`{"department":7}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !payload.Department.Present || payload.Department.Value == nil || *payload.Department.Value != 7 {
		t.Fatalf("value field = %+v, want present 7", payload.Department)
	}
}

func TestOptionalDateParsing(t *testing.T) {
	var payload struct {
		StartDate optionalDate `json:"start_date"`
	}

	if err := json.Unmarshal([]byte(`{"start_date":"2026-01-15"}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.StartDate.Value == nil || payload.StartDate.Value.Format(dateLayout) != "2026-01-15" {
		t.Fatalf("date = %+v", payload.StartDate)
	}

	if err := json.Unmarshal([]byte(`{"start_date":"15/01/2026"}`), &payload); err == nil {
		t.Fatalf("malformed date accepted")
	}
}

func orderingCtx(query string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestOrderingWhitelist(t *testing.T) {
	field, desc := ordering(orderingCtx("ordering=salary"), "salary", "username")
	if field != "salary" || desc {
		t.Fatalf("got %q desc=%v", field, desc)
	}

	field, desc = ordering(orderingCtx("ordering=-username"), "salary", "username")
	if field != "username" || !desc {
		t.Fatalf("got %q desc=%v", field, desc)
	}

	// Unknown fields are ignored, not an error.
	if field, _ = ordering(orderingCtx("ordering=password_hash"), "salary", "username"); field != "" {
		t.Fatalf("unlisted field accepted: %q", field)
	}
	if field, _ = ordering(orderingCtx(""), "salary", "username"); field != "" {
		t.Fatalf("empty ordering produced %q", field)
	}
}

func TestPageParamsBounds(t *testing.T) {
	p := pageParams(orderingCtx("page=3&page_size=50"))
	if p.Number != 3 || p.Size != 50 {
		t.Fatalf("page = %+v", p)
	}

	p = pageParams(orderingCtx(""))
	if p.Number != 1 || p.Size != 20 {
		t.Fatalf("defaults = %+v", p)
	}

	p = pageParams(orderingCtx("page=-2&page_size=9999"))
	if p.Number != 1 || p.Size != 100 {
		t.Fatalf("clamped = %+v", p)
	}
}
