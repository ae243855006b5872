package ctxutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestEnsureTraceID(t *testing.T) {
	ctx, id := EnsureTraceID(context.Background())
	if id == "" {
		t.Fatal("expected a trace id")
	}
	_, again := EnsureTraceID(ctx)
	if again != id {
		t.Errorf("trace id changed: %s != %s", again, id)
	}
}

func TestTraceMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceMiddleware())

	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = GetTraceID(c.Request.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceHeader, "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if seen != "abc" {
		t.Errorf("handler saw trace %q", seen)
	}
	if got := w.Header().Get(TraceHeader); got != "abc" {
		t.Errorf("response header = %q", got)
	}
}

func TestWithAsyncContextSurvivesParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(SetTraceID(context.Background(), "t1"))
	ctx, done := WithAsyncContext(parent, 0)
	defer done()
	cancel()

	if ctx.Err() != nil {
		t.Fatalf("async context cancelled with parent: %v", ctx.Err())
	}
	if GetTraceID(ctx) != "t1" {
		t.Errorf("trace id lost")
	}
}
