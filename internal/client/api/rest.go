package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gestorhq/gestorcli/internal/client/models"
	"github.com/gestorhq/gestorcli/internal/client/repositories/credentials"
	"github.com/gestorhq/gestorcli/internal/common"
	"github.com/gestorhq/gestorcli/internal/logging"
)

const (
	// DefaultRequestTimeout bounds every regular API call.
	DefaultRequestTimeout = 10 * time.Second
	// DefaultHealthTimeout bounds the reachability probe; it is shorter so
	// startup does not hang on a dead server.
	DefaultHealthTimeout = 5 * time.Second
)

// RESTClient talks JSON over HTTP to the Gestor backend.
type RESTClient struct {
	baseURL        string
	httpClient     *http.Client
	store          credentials.Store
	log            logging.Logger
	requestTimeout time.Duration
	healthTimeout  time.Duration
}

func NewRESTClient(baseURL string, store credentials.Store, log logging.Logger) *RESTClient {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &RESTClient{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{},
		store:          store,
		log:            log,
		requestTimeout: DefaultRequestTimeout,
		healthTimeout:  DefaultHealthTimeout,
	}
}

// SetTimeouts overrides the request and health-probe deadlines. Zero values
// keep the current ones.
func (c *RESTClient) SetTimeouts(request, health time.Duration) {
	if request > 0 {
		c.requestTimeout = request
	}
	if health > 0 {
		c.healthTimeout = health
	}
}

// do performs one bounded request. The bearer token is attached when the
// credential store holds one; a store read failure is treated as "no token"
// so that a broken cache degrades to an unauthenticated call instead of
// blocking everything.
func (c *RESTClient) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeader, uuid.NewString())

	token, err := c.store.Token(ctx)
	if err != nil {
		c.log.Warn(ctx, "credential store read failed, sending unauthenticated request", "error", err)
	} else if token != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := newTransportError(err)
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "kind", apiErr.Kind)
		return apiErr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		apiErr := newHTTPError(resp.StatusCode, data)
		c.log.Debug(ctx, "request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			// The deadline can expire while the body is still streaming;
			// that is a timeout, not a malformed response.
			if isTimeout(err) {
				return newTransportError(err)
			}
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	AccessToken string      `json:"access_token"`
	User        models.User `json:"user"`
}

func (c *RESTClient) Login(ctx context.Context, email, password string) (models.Credentials, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return models.Credentials{}, err
	}

	// Credentials are only written once the request has fully resolved, so
	// a timeout can never leave a partial cache behind.
	if err := c.store.SetCredentials(ctx, resp.AccessToken, resp.User); err != nil {
		return models.Credentials{}, fmt.Errorf("failed to persist credentials: %w", err)
	}
	return models.Credentials{Token: resp.AccessToken, User: resp.User}, nil
}

func (c *RESTClient) Register(ctx context.Context, req models.RegisterRequest) (models.Credentials, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return models.Credentials{}, err
	}

	if err := c.store.SetCredentials(ctx, resp.AccessToken, resp.User); err != nil {
		return models.Credentials{}, fmt.Errorf("failed to persist credentials: %w", err)
	}
	return models.Credentials{Token: resp.AccessToken, User: resp.User}, nil
}

// Logout tells the server to drop the session and always wipes the local
// credential cache, even when the remote call fails or times out.
func (c *RESTClient) Logout(ctx context.Context) error {
	defer func() {
		// The request context may already be cancelled; the local wipe must
		// still run.
		clearCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := c.store.Clear(clearCtx); err != nil {
			c.log.Error(clearCtx, "failed to clear credential store on logout", "error", err)
		}
	}()

	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Profile fetches the current user. A 401/403 here means the cached token is
// dead, which is a different condition than a failed login, so it is
// reclassified as an invalid session.
func (c *RESTClient) Profile(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &user)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Kind == KindHTTP &&
			(apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden) {
			return models.User{}, &Error{Kind: KindInvalidSession, Status: apiErr.Status, Message: apiErr.Message}
		}
		return models.User{}, err
	}
	return user, nil
}

func (c *RESTClient) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CheckServerConnection probes GET /health with the short deadline. Any
// failure, including a non-2xx answer, reads as "unreachable".
func (c *RESTClient) CheckServerConnection(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	req.Header.Set(common.RequestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}
