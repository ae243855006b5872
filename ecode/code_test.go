package ecode

import (
	"net/http"
	"testing"
)

func TestTextAndStatus(t *testing.T) {
	if got := Text(JobNotFound); got != "Job not found" {
		t.Errorf("Text(JobNotFound) = %q", got)
	}
	if got := ToHTTPStatus(JobNotFound); got != http.StatusNotFound {
		t.Errorf("ToHTTPStatus(JobNotFound) = %d", got)
	}
	if got := ToHTTPStatus(12345); got != http.StatusInternalServerError {
		t.Errorf("unknown code mapped to %d", got)
	}
	if got := Text(12345); got != "Unknown error" {
		t.Errorf("Text(unknown) = %q", got)
	}
}

func TestRegister(t *testing.T) {
	Register(-1050, "Quota exceeded")
	if got := Text(-1050); got != "Quota exceeded" {
		t.Fatalf("Text(-1050) = %q", got)
	}
}

func TestMessages(t *testing.T) {
	if got := NotExist("job"); got != "job does not exist" {
		t.Errorf("NotExist = %q", got)
	}
	if got := FieldIsRequired("start"); got != "start required" {
		t.Errorf("FieldIsRequired = %q", got)
	}
}
