package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/pkg/clock"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, logger.NewNop())
}

func TestGetUser(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/users/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":42,"name":"Анна","role":"manager","is_active":true}`))
	})

	user, err := client.GetUser(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.True(t, user.IsPrivileged())
}

func TestGetUser_NotFound(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetUser(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIsPrivileged(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   bool
	}{
		{name: "администратор", status: http.StatusOK, body: `{"id":1,"role":"admin","is_active":true}`, want: true},
		{name: "сотрудник", status: http.StatusOK, body: `{"id":1,"role":"employee","is_active":true}`, want: false},
		{name: "заблокированный менеджер", status: http.StatusOK, body: `{"id":1,"role":"manager","is_active":false}`, want: false},
		{name: "нет пользователя", status: http.StatusNotFound, want: false},
		{name: "сервис недоступен", status: http.StatusServiceUnavailable, body: "down", want: false},
		{name: "битый ответ", status: http.StatusOK, body: "{", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			assert.Equal(t, tt.want, client.IsPrivileged(context.Background(), 1))
		})
	}
}

func TestIsPrivileged_CachesRoleUntilExpiry(t *testing.T) {
	var calls int32
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"id":7,"role":"admin","is_active":true}`))
	})

	now := &clock.Fixed{At: time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)}
	client.WithPrivilegeCache(time.Minute).WithTimeProvider(now)

	assert.True(t, client.IsPrivileged(context.Background(), 7))
	assert.True(t, client.IsPrivileged(context.Background(), 7))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	now.Advance(time.Minute)
	assert.True(t, client.IsPrivileged(context.Background(), 7))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIsPrivileged_DoesNotCacheFailures(t *testing.T) {
	var calls int32
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"id":7,"role":"manager","is_active":true}`))
	})
	client.WithPrivilegeCache(time.Minute)

	assert.False(t, client.IsPrivileged(context.Background(), 7))
	assert.True(t, client.IsPrivileged(context.Background(), 7))
}
