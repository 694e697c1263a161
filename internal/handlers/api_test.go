// internal/handlers/api_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jason-s-yu/memoria/internal/auth"
	"github.com/jason-s-yu/memoria/internal/database"
	"github.com/jason-s-yu/memoria/internal/models"
	"github.com/jason-s-yu/memoria/internal/oracle"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func postJSON(t *testing.T, h http.HandlerFunc, method, body string, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/", bytes.NewBufferString(body))
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestAIMoveHandler(t *testing.T) {
	h := AIMoveHandler(quietLogger(), oracle.NewReference(3))

	body := `{"state":{"difficulty":"easy","totalPairs":2,"scores":{"player":0,"opponent":0},
		"board":[{"index":0,"status":"hidden"},{"index":1,"status":"hidden"},{"index":2,"status":"hidden"},{"index":3,"status":"hidden"}],
		"memory":{"🐙":[1,3]}}}`
	rec := postJSON(t, h, http.MethodPost, body, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var move models.MoveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &move))
	assert.ElementsMatch(t, []int{1, 3}, move.Cards)
}

func TestAIMoveHandlerErrors(t *testing.T) {
	h := AIMoveHandler(quietLogger(), oracle.NewReference(3))

	rec := postJSON(t, h, http.MethodPost, `{{`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h, http.MethodPost, `{"state":{"board":[]}}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	allMatched := `{"state":{"board":[{"index":0,"status":"matched"},{"index":1,"status":"matched"}]}}`
	rec = postJSON(t, h, http.MethodPost, allMatched, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

type memoryPreferences struct {
	mu    sync.Mutex
	saved map[uuid.UUID]models.Preferences
	err   error
}

func (m *memoryPreferences) Get(_ context.Context, userID uuid.UUID) (*models.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.saved[userID]
	if !ok {
		p = models.DefaultPreferences(userID)
	}
	return &p, nil
}

func (m *memoryPreferences) Put(_ context.Context, prefs *models.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.saved == nil {
		m.saved = make(map[uuid.UUID]models.Preferences)
	}
	m.saved[prefs.UserID] = *prefs
	return nil
}

func TestPreferencesRoundTrip(t *testing.T) {
	require.NoError(t, auth.Init())
	store := &memoryPreferences{}
	logger := quietLogger()

	owner := uuid.New()
	token, err := auth.CreateGuestJWT(owner)
	require.NoError(t, err)
	cookie := auth.CookieName + "=" + token

	rec := postJSON(t, GetPreferencesHandler(logger, store), http.MethodGet, "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var prefs models.Preferences
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prefs))
	assert.True(t, prefs.Enabled)
	assert.Equal(t, 0.6, prefs.MusicVolume)

	rec = postJSON(t, PutPreferencesHandler(logger, store), http.MethodPut, `{"enabled":false,"musicVolume":0.2,"musicTrack":2}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	saved := store.saved[owner]
	assert.False(t, saved.Enabled)
	assert.Equal(t, 0.2, saved.MusicVolume)
	assert.Equal(t, 0.6, saved.SfxVolume, "fields left out keep their defaults")
	assert.Equal(t, 2, saved.MusicTrack)
}

func TestPutPreferencesValidates(t *testing.T) {
	require.NoError(t, auth.Init())
	store := &memoryPreferences{}
	h := PutPreferencesHandler(quietLogger(), store)

	for _, body := range []string{
		`{"musicVolume":1.5}`,
		`{"sfxVolume":-0.1}`,
		`{"musicTrack":3}`,
		`[]`,
	} {
		rec := postJSON(t, h, http.MethodPut, body, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Empty(t, store.saved)
}

func TestPreferencesStorageErrors(t *testing.T) {
	require.NoError(t, auth.Init())
	logger := quietLogger()

	// The shared pool is nil in tests, so the Postgres store reports no database.
	rec := postJSON(t, GetPreferencesHandler(logger, PostgresPreferences), http.MethodGet, "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = postJSON(t, PutPreferencesHandler(logger, &memoryPreferences{err: database.ErrNoDatabase}), http.MethodPut, `{}`, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = postJSON(t, GetPreferencesHandler(logger, &memoryPreferences{err: errors.New("disk on fire")}), http.MethodGet, "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestEnsureGuestUser(t *testing.T) {
	require.NoError(t, auth.Init())

	rec := httptest.NewRecorder()
	first, err := EnsureGuestUser(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "theme=dark; "+auth.CookieName+"="+cookies[0].Value)
	rec = httptest.NewRecorder()
	again, err := EnsureGuestUser(rec, req)
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Empty(t, rec.Result().Cookies())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", auth.CookieName+"=garbage")
	rec = httptest.NewRecorder()
	fresh, err := EnsureGuestUser(rec, req)
	require.NoError(t, err)
	assert.NotEqual(t, first, fresh)
	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestExtractCookieToken(t *testing.T) {
	assert.Equal(t, "abc", extractCookieToken("a=1; auth_token=abc; b=2", "auth_token"))
	assert.Equal(t, "", extractCookieToken("a=1; b=2", "auth_token"))
	assert.Equal(t, "", extractCookieToken("", "auth_token"))
}
