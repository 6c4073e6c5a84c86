package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"casebackend/internal/auth"

	"github.com/gin-gonic/gin"
)

func TestStrategyFor(t *testing.T) {
	cases := map[string]AuthStrategy{
		http.MethodGet:     AuthOptional,
		http.MethodHead:    AuthOptional,
		http.MethodOptions: AuthOptional,
		http.MethodPost:    AuthBearerRequired,
		http.MethodPut:     AuthBearerRequired,
		http.MethodPatch:   AuthBearerRequired,
		http.MethodDelete:  AuthBearerRequired,
	}
	for method, want := range cases {
		if got := StrategyFor(method); got != want {
			t.Fatalf("StrategyFor(%s) = %v, want %v", method, got, want)
		}
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"Bearer":        "",
		"Basic abc":     "",
		"Bearer abc":    "abc",
		"bearer  abc ":  "abc",
		"BEARER xyz.io": "xyz.io",
	}
	for header, want := range cases {
		if got := bearerToken(header); got != want {
			t.Fatalf("bearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestAuthenticateSetsCurrentUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	signer := auth.Signer{Secret: []byte("mw-secret")}

	r := gin.New()
	r.Use(RequestID(), Authenticate(signer))
	handler := func(c *gin.Context) {
		user, ok := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"ok": ok, "mobile": user.Mobile, "id": user.UserID})
	}
	r.GET("/x", handler)
	r.POST("/x", handler)

	token, err := signer.Sign(3, "0900")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	cases := []struct {
		method, token string
		status        int
	}{
		{http.MethodGet, "", http.StatusOK},
		{http.MethodGet, token, http.StatusOK},
		{http.MethodGet, "bad", http.StatusUnauthorized},
		{http.MethodPost, "", http.StatusUnauthorized},
		{http.MethodPost, token, http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, "/x", nil)
		if tc.token != "" {
			req.Header.Set("Authorization", "Bearer "+tc.token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tc.status {
			t.Fatalf("%s token=%q: expected %d, got %d", tc.method, tc.token, tc.status, w.Code)
		}
		if w.Code == http.StatusUnauthorized && w.Header().Get("WWW-Authenticate") == "" {
			t.Fatalf("401 should carry WWW-Authenticate")
		}
	}
}
