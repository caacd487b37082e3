package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Fyyrerde4xhsj/TapNow/database"
	"github.com/Fyyrerde4xhsj/TapNow/models"
)

func setupAuthDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.RefreshToken{}, &models.RevokedToken{}))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	db := setupAuthDB(t)

	rt, err := models.NewRefreshToken(7, 7)
	require.NoError(t, err)
	require.NoError(t, db.Create(rt).Error)

	req := httptest.NewRequest(http.MethodPost, "/v1/logout", strings.NewReader(`{"refresh_token":"`+rt.ID+`"}`))
	rec := httptest.NewRecorder()
	LogoutHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var stored models.RefreshToken
	require.NoError(t, db.First(&stored, "id = ?", rt.ID).Error)
	assert.True(t, stored.Revoked)
}

func TestLogoutDoesNotConfirmUnknownTokens(t *testing.T) {
	setupAuthDB(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/logout", strings.NewReader(`{"refresh_token":"rt_does_not_exist"}`))
	rec := httptest.NewRecorder()
	LogoutHandler(rec, req)

	// Unknown ids get the same answer as real ones.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Logged out")
}

func TestLogoutRequiresRefreshToken(t *testing.T) {
	setupAuthDB(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/logout", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	LogoutHandler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
