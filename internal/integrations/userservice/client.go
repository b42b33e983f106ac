package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/pkg/clock"
)

const usersPath = "/internal/users/%d"

type privilegeEntry struct {
	privileged bool
	expiresAt  time.Time
}

// Client клиент UserService
// Результаты IsPrivileged кэшируются на cacheTTL; ошибки сервиса не кэшируются
type Client struct {
	baseURL      string
	httpClient   *http.Client
	cacheTTL     time.Duration
	timeProvider TimeProvider
	log          Logger

	mu    sync.Mutex
	cache map[int64]privilegeEntry
}

// NewClient создает клиент UserService без кэша ролей
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: timeout},
		timeProvider: clock.Real{},
		log:          log,
		cache:        make(map[int64]privilegeEntry),
	}
}

// WithPrivilegeCache включает кэш ролей; ttl <= 0 отключает его
func (c *Client) WithPrivilegeCache(ttl time.Duration) *Client {
	c.cacheTTL = ttl
	return c
}

// WithTimeProvider подменяет источник времени
func (c *Client) WithTimeProvider(tp TimeProvider) *Client {
	c.timeProvider = tp
	return c
}

// GetUser получает пользователя по ID
func (c *Client) GetUser(ctx context.Context, userID int64) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+fmt.Sprintf(usersPath, userID), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for user %d: %v", ErrInternal, userID, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request user %d: %v", ErrInternal, userID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: user %d: status %d: %s", ErrInvalidResponse, userID, resp.StatusCode, string(body))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: decode user %d: %v", ErrInvalidResponse, userID, err)
	}

	return &user, nil
}

// IsPrivileged может ли пользователь управлять чужими бронированиями (admin или manager)
// Недоступность UserService не блокирует владельцев: пользователь считается обычным
func (c *Client) IsPrivileged(ctx context.Context, userID int64) bool {
	if privileged, ok := c.cached(userID); ok {
		return privileged
	}

	user, err := c.GetUser(ctx, userID)
	switch {
	case err == nil:
		privileged := user.IsPrivileged()
		c.remember(userID, privileged)
		return privileged
	case errors.Is(err, ErrUserNotFound):
		c.log.Warn("UserService: user id=%d not found, treating as regular user", userID)
		c.remember(userID, false)
		return false
	default:
		c.log.Error("UserService: privilege lookup failed for user_id=%d, treating as regular user: %v", userID, err)
		return false
	}
}

func (c *Client) cached(userID int64) (bool, bool) {
	if c.cacheTTL <= 0 {
		return false, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache[userID]
	if !ok {
		return false, false
	}
	if !c.timeProvider.Now().Before(entry.expiresAt) {
		delete(c.cache, userID)
		return false, false
	}
	return entry.privileged, true
}

func (c *Client) remember(userID int64, privileged bool) {
	if c.cacheTTL <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[userID] = privilegeEntry{
		privileged: privileged,
		expiresAt:  c.timeProvider.Now().Add(c.cacheTTL),
	}
}
