package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vidsht/Membership-Model-sub002/domain"
)

// Backend route table. The membership API is a stateful-session REST backend;
// probe reads the current identity, extend keeps the server session alive.
const (
	probePath            = "/api/auth/me"
	extendPath           = "/api/auth/extend"
	loginPath            = "/api/auth/login"
	merchantLoginPath    = "/api/merchants/login"
	registerPath         = "/api/auth/register"
	merchantRegisterPath = "/api/merchants/register"
	logoutPath           = "/api/auth/logout"
)

// Client implements domain.MembershipAPI over the backend's REST API. Every
// failure leaves here already classified as one of the three error kinds, so
// no caller ever re-inspects status codes or error strings.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a membership API client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetToken implements domain.MembershipAPI
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the currently installed bearer token
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// identityPayload is the backend's wire shape for a membership record
type identityPayload struct {
	ID            uint       `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
	PlanKey       string     `json:"plan_key"`
	PlanName      string     `json:"plan_name"`
	PlanExpiresAt *time.Time `json:"plan_expires_at"`
	Lifetime      bool       `json:"lifetime"`
}

func (p *identityPayload) toDomain() *domain.Identity {
	return &domain.Identity{
		ID:            p.ID,
		Email:         p.Email,
		Name:          p.Name,
		Role:          domain.Role(p.Role),
		Status:        domain.AccountStatus(p.Status),
		PlanKey:       p.PlanKey,
		PlanName:      p.PlanName,
		PlanExpiresAt: p.PlanExpiresAt,
		Lifetime:      p.Lifetime,
	}
}

type authResponse struct {
	Token string          `json:"token"`
	User  identityPayload `json:"user"`
}

type probeResponse struct {
	User identityPayload `json:"user"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Probe implements domain.MembershipAPI
func (c *Client) Probe(ctx context.Context) (*domain.Identity, error) {
	if c.tokenExpiredLocally() {
		return nil, &domain.APIError{Kind: domain.KindUnauthorized, Op: "probe", Message: "access token expired"}
	}

	var out probeResponse
	if err := c.do(ctx, "probe", http.MethodGet, probePath, nil, &out); err != nil {
		return nil, err
	}
	return out.User.toDomain(), nil
}

// ExtendSession implements domain.MembershipAPI. The backend may rotate the
// access token on renewal; when it does, the new token replaces the old one.
func (c *Client) ExtendSession(ctx context.Context) error {
	if c.tokenExpiredLocally() {
		return &domain.APIError{Kind: domain.KindUnauthorized, Op: "extend", Message: "access token expired"}
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, "extend", http.MethodPost, extendPath, nil, &out); err != nil {
		return err
	}
	if out.Token != "" {
		c.SetToken(out.Token)
	}
	return nil
}

// Login implements domain.MembershipAPI
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	return c.credentialCall(ctx, "login", loginPath, map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	})
}

// MerchantLogin implements domain.MembershipAPI
func (c *Client) MerchantLogin(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	return c.credentialCall(ctx, "merchant_login", merchantLoginPath, map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	})
}

// Register implements domain.MembershipAPI
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error) {
	return c.credentialCall(ctx, "register", registerPath, map[string]string{
		"name":     reg.Name,
		"email":    reg.Email,
		"password": reg.Password,
		"plan_key": reg.PlanKey,
	})
}

// MerchantRegister implements domain.MembershipAPI
func (c *Client) MerchantRegister(ctx context.Context, reg domain.MerchantRegistration) (*domain.AuthResult, error) {
	return c.credentialCall(ctx, "merchant_register", merchantRegisterPath, map[string]string{
		"business_name": reg.BusinessName,
		"email":         reg.Email,
		"password":      reg.Password,
		"plan_key":      reg.PlanKey,
	})
}

// Logout implements domain.MembershipAPI. Best-effort; the caller clears its
// local state regardless of this call's outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "logout", http.MethodPost, logoutPath, map[string]string{}, nil)
}

func (c *Client) credentialCall(ctx context.Context, op, path string, body map[string]string) (*domain.AuthResult, error) {
	var out authResponse
	if err := c.do(ctx, op, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	if out.Token != "" {
		c.SetToken(out.Token)
	}
	return &domain.AuthResult{
		Identity:    out.User.toDomain(),
		AccessToken: out.Token,
	}, nil
}

// do executes one backend call and classifies any failure.
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &domain.APIError{Kind: domain.KindTransient, Op: op, Err: fmt.Errorf("marshal request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &domain.APIError{Kind: domain.KindTransient, Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.APIError{Kind: domain.KindTransient, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if err := classifyStatus(op, resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &domain.APIError{Kind: domain.KindTransient, Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

// classifyStatus maps an HTTP status to the error taxonomy: 401 is the
// backend's authoritative unauthorized signal, 4xx payload rejections are
// validation failures, everything else unexpected is transient.
func classifyStatus(op string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	message := readErrorMessage(resp.Body)
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &domain.APIError{Kind: domain.KindUnauthorized, Op: op, Message: message}
	case resp.StatusCode == http.StatusBadRequest ||
		resp.StatusCode == http.StatusConflict ||
		resp.StatusCode == http.StatusUnprocessableEntity:
		return &domain.APIError{Kind: domain.KindValidation, Op: op, Message: message}
	default:
		return &domain.APIError{
			Kind: domain.KindTransient,
			Op:   op,
			Err:  fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
}

func readErrorMessage(body io.Reader) string {
	var payload errorResponse
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

// tokenExpiredLocally peeks at the bearer token's exp claim so an obviously
// dead token is reported unauthorized without a network round-trip. The token
// is the backend's to verify; an opaque or unparseable token is left for the
// backend to judge.
func (c *Client) tokenExpiredLocally() bool {
	token := c.Token()
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// Compile-time interface compliance verification
var _ domain.MembershipAPI = (*Client)(nil)
