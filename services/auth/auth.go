package auth

import (
	"context"
	"fmt"

	"salonbook/models"
	"salonbook/utils"

	firebaseauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
)

// CodeVerifier issues and checks the emailed verification codes. Satisfied by
// the verification service.
type CodeVerifier interface {
	Initiate(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) error
}

// AuthService wraps the hosted identity provider. Accounts, credentials and
// reset emails live with the provider; this service only brokers sessions.
type AuthService interface {
	InitiateRegistration(ctx context.Context, email, password string) (string, error)
	VerifyRegistrationCode(ctx context.Context, tempID, code string) error
	FinalizeRegistration(ctx context.Context, tempID string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	LoginWithIDToken(ctx context.Context, idToken string) (*models.Session, error)
	Logout(ctx context.Context, uid string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ObserveSession(onChange func(*models.Session)) func()
	VerifySessionToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}

// DefaultAuthService is the Firebase-backed implementation.
type DefaultAuthService struct {
	Identity *IdentityClient
	Firebase *firebaseauth.Client
	RegStore RegistrationStore
	Codes    CodeVerifier
	Broker   *SessionBroker
}

// VerifyPasswordComplexity enforces the provider's minimum password length.
func VerifyPasswordComplexity(password string) error {
	if len(password) < 6 {
		return ErrWeakPassword
	}
	return nil
}

// Login exchanges email+password for a session and publishes it.
func (s *DefaultAuthService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	session, err := s.Identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.Broker.Publish(session)
	utils.GetLogger().Info("User signed in", zap.String("email", session.Email))
	return session, nil
}

// LoginWithIDToken signs in with a provider-issued ID token (Google sign-in).
// The token is verified against the project before a session is published.
func (s *DefaultAuthService) LoginWithIDToken(ctx context.Context, idToken string) (*models.Session, error) {
	if s.Firebase == nil {
		return nil, fmt.Errorf("auth provider not initialised")
	}

	token, err := s.Firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("invalid ID token: %w", err)
	}

	email, _ := token.Claims["email"].(string)
	session := &models.Session{
		UID:     token.UID,
		Email:   email,
		IDToken: idToken,
	}

	s.Broker.Publish(session)
	utils.GetLogger().Info("User signed in with provider", zap.String("uid", token.UID))
	return session, nil
}

// Logout revokes the user's refresh tokens and publishes a signed-out state.
// Existing ID tokens stay valid until they expire; revocation only blocks
// refresh.
func (s *DefaultAuthService) Logout(ctx context.Context, uid string) error {
	if s.Firebase != nil && uid != "" {
		if err := s.Firebase.RevokeRefreshTokens(ctx, uid); err != nil {
			utils.GetLogger().Error("Failed to revoke refresh tokens", zap.String("uid", uid), zap.Error(err))
			return fmt.Errorf("logout failed: %w", err)
		}
	}

	s.Broker.Publish(nil)
	return nil
}

// RequestPasswordReset delegates to the provider's reset email. The response
// is the same whether or not the address exists.
func (s *DefaultAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	err := s.Identity.SendPasswordReset(ctx, email)
	if err == ErrInvalidCredentials {
		// Unknown address: swallow so callers cannot probe for accounts.
		return nil
	}
	return err
}

// ObserveSession registers a session observer and returns its unsubscribe.
func (s *DefaultAuthService) ObserveSession(onChange func(*models.Session)) func() {
	return s.Broker.Observe(onChange)
}

// VerifySessionToken validates a client-presented ID token.
func (s *DefaultAuthService) VerifySessionToken(ctx context.Context, idToken string) (*firebaseauth.Token, error) {
	if s.Firebase == nil {
		return nil, fmt.Errorf("auth provider not initialised")
	}
	return s.Firebase.VerifyIDToken(ctx, idToken)
}
