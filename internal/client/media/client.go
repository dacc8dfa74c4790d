// Package media loads the media feed on behalf of the logged-in user.
package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"golang.org/x/oauth2"

	"github.com/iudanet/mediafeed/internal/client/api"
	pkgapi "github.com/iudanet/mediafeed/pkg/api"
)

// ErrInvalidPage возвращается для отрицательного номера страницы
var ErrInvalidPage = errors.New("page must not be negative")

// PageFetcher is implemented by *api.Client.
type PageFetcher interface {
	GetMediaPage(ctx context.Context, source oauth2.TokenSource, page int) (*pkgapi.MediaPage, error)
}

// Tokens is implemented by *auth.TokenManager.
type Tokens interface {
	TokenSource(ctx context.Context) oauth2.TokenSource
	RefreshRejected(ctx context.Context, rejected string) (string, error)
}

// Client fetches feed pages with a token obtained through the token manager.
// A page request rejected with 401 is retried exactly once with a refreshed token.
type Client struct {
	api     PageFetcher
	tokens  Tokens
	logger  *slog.Logger
	baseURL *url.URL

	liked map[string]bool
	mu    sync.Mutex
}

// NewClient создает клиент ленты. baseURL используется для относительных ссылок.
func NewClient(fetcher PageFetcher, tokens Tokens, baseURL string, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		api:     fetcher,
		tokens:  tokens,
		logger:  logger,
		baseURL: base,
		liked:   make(map[string]bool),
	}, nil
}

// FetchPage loads one page of the feed. Page numbering starts at 0.
func (c *Client) FetchPage(ctx context.Context, page int) (*pkgapi.MediaPage, error) {
	if page < 0 {
		return nil, ErrInvalidPage
	}

	source := &recordingSource{src: c.tokens.TokenSource(ctx)}
	result, err := c.api.GetMediaPage(ctx, source, page)
	if err == nil || !errors.Is(err, api.ErrUnauthorized) || source.last == "" {
		return c.applyLikes(result), err
	}

	// Сервер отверг токен, который локально еще валиден: один повтор, без рекурсии
	c.logger.Debug("access token rejected, retrying with a refreshed one", "page", page)
	token, err := c.tokens.RefreshRejected(ctx, source.last)
	if err != nil {
		return nil, err
	}

	result, err = c.api.GetMediaPage(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}), page)
	return c.applyLikes(result), err
}

// ToggleLike flips the like of an item on this client and returns whether
// the item is now liked. Likes are not sent to the server.
func (c *Client) ToggleLike(item *pkgapi.MediaItem) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.liked[item.ID] {
		delete(c.liked, item.ID)
		item.Likes--
		return false
	}
	c.liked[item.ID] = true
	item.Likes++
	return true
}

// Liked reports whether the item was liked on this client.
func (c *Client) Liked(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.liked[id]
}

// ShareLink returns the absolute link to an item. The server's share link
// wins over the download address; relative links are resolved against the
// server address.
func (c *Client) ShareLink(item pkgapi.MediaItem) (string, error) {
	link := item.Media
	if link == "" {
		link = item.DownloadURL
	}
	if link == "" {
		return "", fmt.Errorf("media %s has no link", item.ID)
	}
	ref, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("invalid media link: %w", err)
	}
	return c.baseURL.ResolveReference(ref).String(), nil
}

// applyLikes добавляет локальные лайки к счетчикам сервера
func (c *Client) applyLikes(page *pkgapi.MediaPage) *pkgapi.MediaPage {
	if page == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range page.Media {
		if c.liked[page.Media[i].ID] {
			page.Media[i].Likes++
		}
	}
	return page
}

// recordingSource запоминает последний выданный токен
type recordingSource struct {
	src  oauth2.TokenSource
	last string
}

func (s *recordingSource) Token() (*oauth2.Token, error) {
	token, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	s.last = token.AccessToken
	return token, nil
}
