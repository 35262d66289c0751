package operator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	service, err := NewService(db)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return service
}

func TestService_Profiles(t *testing.T) {
	service := newTestService(t)

	t.Run("Get Unknown Operator", func(t *testing.T) {
		_, err := service.GetProfile("ghost")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("Upsert And Get", func(t *testing.T) {
		prefs := json.RawMessage(`{"soundOn":true}`)
		assert.NoError(t, service.UpsertProfile("station-1", "Kari", prefs))

		profile, err := service.GetProfile("station-1")
		assert.NoError(t, err)
		assert.Equal(t, "Kari", profile.DisplayName)

		preferences, err := (&Context{Profile: profile}).GetPreferencesMap()
		assert.NoError(t, err)
		assert.Equal(t, true, preferences["soundOn"])
	})

	t.Run("Upsert Overwrites", func(t *testing.T) {
		assert.NoError(t, service.UpsertProfile("station-1", "Kari Nordmann", nil))

		profile, err := service.GetProfile("station-1")
		assert.NoError(t, err)
		assert.Equal(t, "Kari Nordmann", profile.DisplayName)
	})

	t.Run("Rejects Invalid Preferences JSON", func(t *testing.T) {
		err := service.UpsertProfile("station-1", "Kari", json.RawMessage(`{broken`))
		assert.Error(t, err)
	})

	t.Run("Rejects Empty Operator ID", func(t *testing.T) {
		assert.Error(t, service.UpsertProfile("", "Nobody", nil))
		_, err := service.GetProfile("")
		assert.Error(t, err)
	})
}

func TestMiddleware(t *testing.T) {
	service := newTestService(t)
	assert.NoError(t, service.UpsertProfile("station-1", "Kari", nil))

	var seen *Context
	handler := Middleware(service)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	t.Run("Injects Known Operator", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderOperatorID, "station-1")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.NotNil(t, seen)
		assert.Equal(t, "Kari", seen.DisplayName)
	})

	t.Run("Unknown Operator Gets Empty Profile", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderOperatorID, "station-9")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.NotNil(t, seen)
		assert.Equal(t, "station-9", seen.OperatorID)
	})

	t.Run("No Header Means No Context", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Nil(t, seen)
	})
}

func TestID(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", ID(ctx))

	ctx = context.WithValue(ctx, OperatorContextKey, &Context{
		Profile: &Profile{OperatorID: "station-1"},
	})
	assert.Equal(t, "station-1", ID(ctx))
}
