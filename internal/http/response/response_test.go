package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestErrorCarriesRequestID(t *testing.T) {
	c, w := newTestContext()
	c.Set("request_id", "req-1")
	NotFound(c, "Order not found")

	if w.Code != http.StatusOK {
		t.Fatalf("envelope must use http 200, got %d", w.Code)
	}
	var body struct {
		StatusCode int               `json:"status_code"`
		Msg        string            `json:"msg"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.StatusCode != CodeNotFound || body.Msg != "Order not found" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
	if body.Data["request_id"] != "req-1" {
		t.Fatalf("request_id missing: %+v", body.Data)
	}
}

func TestErrorWithoutRequestID(t *testing.T) {
	c, w := newTestContext()
	BadRequest(c, "Invalid request")
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["data"] != nil {
		t.Fatalf("data should be null, got %v", body["data"])
	}
}

func TestSuccessWithPage(t *testing.T) {
	c, w := newTestContext()
	SuccessWithPage(c, []int{1, 2}, NewPagination(2, 10, 21))
	var body struct {
		StatusCode int        `json:"status_code"`
		Pagination Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.StatusCode != CodeOK || body.Pagination.TotalPage != 3 || body.Pagination.Page != 2 {
		t.Fatalf("unexpected page response: %+v", body)
	}
}

func TestNewPaginationZeroPageSize(t *testing.T) {
	if p := NewPagination(1, 0, 5); p.TotalPage != 0 {
		t.Fatalf("zero page size should yield zero pages, got %d", p.TotalPage)
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("db down")
	err := WrapError(CodeInternal, "error.internal", "Internal server error", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("AppError should unwrap to cause")
	}
	if err.Error() != "error.internal: Internal server error: db down" {
		t.Fatalf("unexpected error text: %s", err.Error())
	}
}
