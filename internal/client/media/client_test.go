package media

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/mediafeed/internal/client/api"
	"github.com/iudanet/mediafeed/internal/client/auth"
	"github.com/iudanet/mediafeed/internal/client/identitytest"
	"github.com/iudanet/mediafeed/internal/client/storage/memory"
	pkgapi "github.com/iudanet/mediafeed/pkg/api"
)

type fixture struct {
	server  *identitytest.Server
	clock   *clockwork.FakeClock
	tokens  *auth.TokenManager
	service *auth.Service
	media   *Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	server := identitytest.NewServer()
	t.Cleanup(server.Close)
	server.AddUser("ann@example.com", "password123", "Ann", "Lee")

	apiClient := api.NewClient(server.URL)
	clock := clockwork.NewFakeClock()
	tokens := auth.NewTokenManager(memory.New(), apiClient, auth.WithClock(clock))
	media, err := NewClient(apiClient, tokens, server.URL, nil)
	require.NoError(t, err)

	return &fixture{
		server:  server,
		clock:   clock,
		tokens:  tokens,
		service: auth.NewService(apiClient, tokens, nil),
		media:   media,
	}
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	_, err := f.service.Login(context.Background(), "ann@example.com", "password123")
	require.NoError(t, err)
}

func TestClient_FetchPage(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	page, err := f.media.FetchPage(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, page.Media, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, 1, page.NextPage)

	page, err = f.media.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, page.Media, 1)
	assert.Equal(t, "m3", page.Media[0].ID)
	assert.False(t, page.HasMore)

	assert.Equal(t, 0, f.server.RefreshCalls())
}

func TestClient_FetchPage_InvalidPage(t *testing.T) {
	f := newFixture(t)

	_, err := f.media.FetchPage(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidPage)
	assert.Equal(t, 0, f.server.MediaCalls())
}

func TestClient_FetchPage_NotLoggedIn(t *testing.T) {
	f := newFixture(t)

	_, err := f.media.FetchPage(context.Background(), 0)

	assert.ErrorIs(t, err, auth.ErrNoRefreshToken)
	assert.Equal(t, 0, f.server.MediaCalls())
	assert.Equal(t, 0, f.server.RefreshCalls())
}

func TestClient_FetchPage_RefreshesExpiredToken(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.clock.Advance(5 * time.Minute)

	_, err := f.media.FetchPage(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, 1, f.server.RefreshCalls())
	assert.Equal(t, 1, f.server.MediaCalls())
}

func TestClient_FetchPage_RetriesRejectedToken(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	token, err := f.tokens.EnsureAccessToken(context.Background())
	require.NoError(t, err)
	f.server.RevokeAccessToken(token)

	page, err := f.media.FetchPage(context.Background(), 0)

	require.NoError(t, err)
	assert.Len(t, page.Media, 2)
	assert.Equal(t, 1, f.server.RefreshCalls())
	assert.Equal(t, 2, f.server.MediaCalls())

	fresh, err := f.tokens.EnsureAccessToken(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, token, fresh)
}

func TestClient_FetchPage_RetriesOnce(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	// Повтор тоже получает 401: ошибка отдается вызывающему
	f.server.FailTimes(identitytest.RouteMedia, 3, http.StatusUnauthorized, "")

	_, err := f.media.FetchPage(context.Background(), 0)

	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, 2, f.server.MediaCalls())
	assert.Equal(t, 1, f.server.RefreshCalls())
}

func TestClient_FetchPage_SessionExpired(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.clock.Advance(time.Hour)
	f.server.RevokeRefreshTokens()

	_, err := f.media.FetchPage(context.Background(), 0)

	assert.ErrorIs(t, err, auth.ErrSessionExpired)
	loggedIn, err := f.service.IsLoggedIn(context.Background())
	require.NoError(t, err)
	assert.False(t, loggedIn)
	assert.Equal(t, 0, f.server.MediaCalls())
}

func TestClient_FetchPage_ConcurrentSingleRefresh(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.clock.Advance(time.Hour)

	release := f.server.HoldRefresh()
	defer release()

	const callers = 5
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.media.FetchPage(context.Background(), 0)
		}()
	}

	require.Eventually(t, func() bool { return f.server.RefreshCalls() == 1 }, 5*time.Second, time.Millisecond)
	release()
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, f.server.RefreshCalls())
	assert.Equal(t, callers, f.server.MediaCalls())
}

func TestClient_ToggleLike(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	page, err := f.media.FetchPage(context.Background(), 0)
	require.NoError(t, err)
	item := &page.Media[0]
	require.Equal(t, 3, item.Likes)

	assert.True(t, f.media.ToggleLike(item))
	assert.Equal(t, 4, item.Likes)
	assert.True(t, f.media.Liked(item.ID))

	// Лайк сохраняется при повторной загрузке
	page, err = f.media.FetchPage(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Media[0].Likes)

	assert.False(t, f.media.ToggleLike(&page.Media[0]))
	assert.Equal(t, 3, page.Media[0].Likes)
	assert.False(t, f.media.Liked(item.ID))
}

func TestClient_ShareLink(t *testing.T) {
	client, err := NewClient(nil, nil, "http://localhost:8000/", nil)
	require.NoError(t, err)

	tests := []struct {
		name    string
		item    pkgapi.MediaItem
		want    string
		wantErr bool
	}{
		{
			name: "share link wins over download url",
			item: pkgapi.MediaItem{ID: "m1", DownloadURL: "/uploads/m1.jpg", Media: "/share/m1"},
			want: "http://localhost:8000/share/m1",
		},
		{
			name: "absolute share link",
			item: pkgapi.MediaItem{ID: "m2", DownloadURL: "/uploads/m2.mp4", Media: "https://share.example.com/m2"},
			want: "https://share.example.com/m2",
		},
		{
			name: "download url fallback",
			item: pkgapi.MediaItem{ID: "m3", DownloadURL: "https://cdn.example.com/m3.png"},
			want: "https://cdn.example.com/m3.png",
		},
		{
			name:    "no link",
			item:    pkgapi.MediaItem{ID: "m4"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := client.ShareLink(tt.item)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, link)
		})
	}
}
