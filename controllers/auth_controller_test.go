package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftbox/draftbox/controllers"
	"github.com/draftbox/draftbox/store/memstore"
)

func registerRequest(t *testing.T, r *gin.Engine, username string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "long-enough-pass",
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterDuplicateUsername(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	r := gin.New()
	auth := controllers.NewAuthController(memstore.New())
	r.POST("/auth/register", auth.Register)

	assert.Equal(t, http.StatusOK, registerRequest(t, r, "alice").Code)

	w := registerRequest(t, r, "alice")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "40901")
}
