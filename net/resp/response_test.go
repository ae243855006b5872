package resp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ncobase/longrun/ecode"
)

func TestSuccessWritesPayload(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, map[string]int{"start": 1})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}
	var body map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["start"] != 1 {
		t.Errorf("body = %v", body)
	}
}

func TestWithStatusCodeMessage(t *testing.T) {
	w := httptest.NewRecorder()
	WithStatusCode(w, http.StatusAccepted, "queued")

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["message"] != "queued" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestFail(t *testing.T) {
	w := httptest.NewRecorder()
	Fail(w, JobNotFound("job not found", map[string]string{"id": "x"}))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	var body Exception
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != ecode.JobNotFound || body.Message != "job not found" {
		t.Errorf("body = %+v", body)
	}
}

func TestFailNil(t *testing.T) {
	w := httptest.NewRecorder()
	Fail(w, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}
