package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/smartinvest/internal/logger"
)

func TestToString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{123, ""},
	}
	for _, c := range cases {
		if got := toString(c.in); got != c.want {
			t.Fatalf("toString(%v)=%q, want %q", c.in, got, c.want)
		}
	}
}

// captureLog routes the global logger into a buffer for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.InitWriter(&buf, "info", false)
	t.Cleanup(func() { logger.Init("info", false) })
	return &buf
}

func TestRequestLogger(t *testing.T) {
	cases := []struct {
		name      string
		handler   gin.HandlerFunc
		wantCode  int
		wantLevel string
		wantErrs  bool
	}{
		{
			name:      "success logs at info",
			handler:   func(c *gin.Context) { c.String(http.StatusOK, "pong") },
			wantCode:  http.StatusOK,
			wantLevel: "info",
		},
		{
			name: "upstream failure logs at error with gin errors",
			handler: func(c *gin.Context) {
				_ = c.Error(io.ErrUnexpectedEOF)
				c.String(http.StatusBadGateway, "upstream")
			},
			wantCode:  http.StatusBadGateway,
			wantLevel: "error",
			wantErrs:  true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			buf := captureLog(t)
			router := gin.New()
			router.Use(RequestID(), RequestLogger())
			router.GET("/api/v1/stock/:symbol", tc.handler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stock/AAPL", nil))
			if w.Code != tc.wantCode {
				t.Fatalf("status %d, want %d", w.Code, tc.wantCode)
			}

			var rec map[string]any
			if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
				t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
			}
			if rec["message"] != "http_request" || rec["level"] != tc.wantLevel {
				t.Fatalf("unexpected record: %v", rec)
			}
			if rec["path"] != "/api/v1/stock/AAPL" || rec["request_id"] != w.Header().Get(RequestIDHeader) {
				t.Fatalf("unexpected request fields: %v", rec)
			}
			if _, ok := rec["errors"]; ok != tc.wantErrs {
				t.Fatalf("errors field present=%v, want %v", ok, tc.wantErrs)
			}
		})
	}
}
