package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"salonbook/config"
	"salonbook/models"
)

// DefaultIdentityEndpoint is the Identity Toolkit REST API base URL.
const DefaultIdentityEndpoint = "https://identitytoolkit.googleapis.com"

// IdentityClient calls the Identity Toolkit REST API with the project's web
// API key. The Admin SDK has no password grant, so email+password sign-in,
// sign-up and reset emails go through REST.
type IdentityClient struct {
	APIKey     string
	Endpoint   string
	HTTPClient *http.Client
}

// NewIdentityClient builds a client from the loaded configuration.
func NewIdentityClient() *IdentityClient {
	return &IdentityClient{
		APIKey:     config.AppConfig.FirebaseWebAPIKey,
		Endpoint:   DefaultIdentityEndpoint,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type identityTokenResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type identityErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *IdentityClient) post(ctx context.Context, action string, reqBody, respBody any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to encode auth request: %w", err)
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultIdentityEndpoint
	}
	url := fmt.Sprintf("%s/v1/accounts:%s?key=%s", endpoint, action, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("auth provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr identityErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr != nil {
			return fmt.Errorf("auth provider error: status %d", resp.StatusCode)
		}
		return mapIdentityError(apiErr.Error.Message, resp.StatusCode)
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return fmt.Errorf("failed to decode auth response: %w", err)
		}
	}
	return nil
}

// mapIdentityError translates the API's error codes to the service's typed
// errors. Unknown codes pass through with the raw message.
func mapIdentityError(code string, status int) error {
	switch {
	case code == "EMAIL_EXISTS":
		return ErrEmailInUse
	case code == "EMAIL_NOT_FOUND", code == "INVALID_PASSWORD",
		strings.HasPrefix(code, "INVALID_LOGIN_CREDENTIALS"):
		return ErrInvalidCredentials
	case strings.HasPrefix(code, "WEAK_PASSWORD"):
		return ErrWeakPassword
	default:
		return fmt.Errorf("auth provider error: %s (status %d)", code, status)
	}
}

func (c *IdentityClient) session(resp identityTokenResponse) *models.Session {
	expiresIn, err := strconv.Atoi(resp.ExpiresIn)
	if err != nil {
		expiresIn = 3600
	}
	return &models.Session{
		UID:          resp.LocalID,
		Email:        resp.Email,
		IDToken:      resp.IDToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(expiresIn) * time.Second),
	}
}

// SignUp creates an email+password account and returns the fresh session.
func (c *IdentityClient) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	var resp identityTokenResponse
	err := c.post(ctx, "signUp", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return c.session(resp), nil
}

// SignIn exchanges email+password for a session.
func (c *IdentityClient) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	var resp identityTokenResponse
	err := c.post(ctx, "signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return c.session(resp), nil
}

// SendPasswordReset asks the provider to email a reset link. The provider
// owns the token and the reset page.
func (c *IdentityClient) SendPasswordReset(ctx context.Context, email string) error {
	return c.post(ctx, "sendOobCode", map[string]any{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}, nil)
}
