package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestDuplicateUserFilter(t *testing.T) {
	filter := duplicateUserFilter("jdoe", "jdoe@example.com")

	or, ok := filter["$or"].([]bson.M)
	if !ok {
		t.Fatalf("filter has no $or clause: %v", filter)
	}

	var matchesEmail, matchesUsername bool
	for _, clause := range or {
		if clause["email"] == "jdoe@example.com" {
			matchesEmail = true
		}
		if clause["username"] == "jdoe" {
			matchesUsername = true
		}
	}
	if !matchesEmail || !matchesUsername {
		t.Errorf("filter must match on either field, got email=%v username=%v",
			matchesEmail, matchesUsername)
	}
}

func TestIsUserConflict(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	if !isUserConflict(dup) {
		t.Error("duplicate-key write should read as a user conflict")
	}

	if isUserConflict(errors.New("connection reset")) {
		t.Error("a generic error is not a user conflict")
	}
	if isUserConflict(nil) {
		t.Error("nil error is not a user conflict")
	}
}

// logoutRouter wires only the session middleware and the logout route, the
// same order SetupRouter uses.
func logoutRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(sessions.Sessions("cc_session", cookie.NewStore([]byte("test-secret"))))
	router.POST("/api/logout", Logout)
	return router
}

func TestLogout_WithoutSession(t *testing.T) {
	router := logoutRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/logout", nil))

	if w.Code != http.StatusOK {
		t.Errorf("logout with no session cookie = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestLogout_Repeated(t *testing.T) {
	router := logoutRouter()

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/logout", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first logout = %d, want %d", first.Code, http.StatusOK)
	}

	// Replay with the expired cookie the first call handed back.
	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	for _, c := range first.Result().Cookies() {
		req.AddCookie(c)
	}
	second := httptest.NewRecorder()
	router.ServeHTTP(second, req)

	if second.Code != http.StatusOK {
		t.Errorf("second logout = %d, want %d", second.Code, http.StatusOK)
	}
}
