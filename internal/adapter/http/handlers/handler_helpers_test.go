package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"topreparateurs/internal/adapter/http/middleware"
	"topreparateurs/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

var (
	client   = entities.Actor{ID: "c-1", Role: entities.RoleClient}
	repairer = entities.Actor{ID: "r-1", Role: entities.RoleRepairer}
	admin    = entities.Actor{ID: "a-1", Role: entities.RoleAdmin}
)

func init() {
	gin.SetMode(gin.TestMode)
}

// as stands in for the auth middleware.
func as(actor entities.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetActor(c, actor)
		c.Next()
	}
}

func do(r http.Handler, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	if body == "" {
		return do(r, method, path, nil, "")
	}
	return do(r, method, path, bytes.NewBufferString(body), "application/json")
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body %q: %v", w.Body.String(), err)
	}
	return body
}
