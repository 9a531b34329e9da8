package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log.SetOutput(&bytes.Buffer{})
	defer log.SetOutput(os.Stderr)

	r := gin.New()
	r.Use(RecoveryMiddleware())
	r.GET("/boom", func(c *gin.Context) {
		panic("something broke")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"code":-1`) || !strings.Contains(body, "internal server error") {
		t.Errorf("body = %s, want the error envelope", body)
	}
}

func TestLoggingMiddleware_IncludesUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	r := gin.New()
	r.Use(LoggingMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.Set("user_id", "user-42")
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping?q=1", nil))

	out := buf.String()
	if !strings.Contains(out, "user=user-42") {
		t.Errorf("log line = %q, want the resolved user", out)
	}
	if !strings.Contains(out, "/ping?q=1") || !strings.Contains(out, "status=200") {
		t.Errorf("log line = %q, want path with query and status", out)
	}
}

func TestLoggingMiddleware_AnonymousRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	r := gin.New()
	r.Use(LoggingMiddleware())
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if !strings.Contains(buf.String(), "user=-") {
		t.Errorf("log line = %q, want placeholder user for anonymous request", buf.String())
	}
}
