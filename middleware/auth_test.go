package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yash77492562/E-commerce-sub000/utils"
)

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AdminAuthMiddleware(), func(c *gin.Context) {
		adminID, _ := GetAdminIDFromContext(c)
		adminEmail, _ := GetAdminEmailFromContext(c)
		c.JSON(http.StatusOK, gin.H{"admin_id": adminID, "admin_email": adminEmail})
	})
	return router
}

func TestAdminAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	adminID := uuid.Must(uuid.NewV7())
	token, err := utils.GenerateJWT(adminID, "admin@example.com", "Admin")
	require.NoError(t, err)

	router := protectedRouter()

	t.Run("valid bearer token sets admin context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), adminID.String())
		assert.Contains(t, w.Body.String(), "admin@example.com")
	})

	t.Run("valid cookie token passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "other-secret")
		forged, err := utils.GenerateJWT(adminID, "admin@example.com", "Admin")
		require.NoError(t, err)
		t.Setenv("JWT_SECRET", "test-secret")

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := utils.ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc", "abc.def.ghi"} {
		_, err := utils.ExtractTokenFromHeader(header)
		assert.Error(t, err, "header %q", header)
	}
}
