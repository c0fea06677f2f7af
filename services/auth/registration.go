package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"salonbook/models"
	"salonbook/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registration sessions outlive the 5-minute code so the user can request the
// code again without restarting the form.
const regSessionTTL = 30 * time.Minute

// RegistrationStore holds in-flight registration sessions.
type RegistrationStore interface {
	Save(ctx context.Context, session models.RegistrationSession) error
	Get(ctx context.Context, tempID string) (*models.RegistrationSession, error)
	Delete(ctx context.Context, tempID string) error
}

// RedisRegistrationStore keeps sessions as JSON under the registration TTL.
type RedisRegistrationStore struct {
	Client *redis.Client
}

func regKey(tempID string) string { return "regsession:" + tempID }

func (s *RedisRegistrationStore) Save(ctx context.Context, session models.RegistrationSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode registration session: %w", err)
	}
	return s.Client.Set(ctx, regKey(session.TempID), data, regSessionTTL).Err()
}

func (s *RedisRegistrationStore) Get(ctx context.Context, tempID string) (*models.RegistrationSession, error) {
	data, err := s.Client.Get(ctx, regKey(tempID)).Result()
	if err == redis.Nil {
		return nil, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve registration session: %w", err)
	}
	var session models.RegistrationSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to decode registration session: %w", err)
	}
	return &session, nil
}

func (s *RedisRegistrationStore) Delete(ctx context.Context, tempID string) error {
	return s.Client.Del(ctx, regKey(tempID)).Err()
}

// InitiateRegistration validates the basic data, opens a registration session
// and emails a verification code. The account is not created yet; that happens
// at finalization.
func (s *DefaultAuthService) InitiateRegistration(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("email and password are required")
	}
	if err := VerifyPasswordComplexity(password); err != nil {
		return "", err
	}

	tempID := uuid.New().String()
	now := time.Now()
	session := models.RegistrationSession{
		TempID:        tempID,
		Email:         email,
		Password:      password,
		CodeStatus:    "pending",
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if err := s.Codes.Initiate(ctx, email); err != nil {
		return "", fmt.Errorf("failed to initiate verification: %w", err)
	}

	if err := s.RegStore.Save(ctx, session); err != nil {
		utils.GetLogger().Error("InitiateRegistration: failed to save session", zap.Error(err))
		return "", fmt.Errorf("registration failed, please try again")
	}

	return tempID, nil
}

// VerifyRegistrationCode checks the emailed code and marks the session
// verified. Code errors pass through typed so the form can distinguish a typo
// from an expired code.
func (s *DefaultAuthService) VerifyRegistrationCode(ctx context.Context, tempID, code string) error {
	session, err := s.RegStore.Get(ctx, tempID)
	if err != nil {
		return err
	}

	if err := s.Codes.Verify(ctx, session.Email, code); err != nil {
		return err
	}

	session.CodeStatus = "verified"
	session.LastUpdatedAt = time.Now()
	if err := s.RegStore.Save(ctx, *session); err != nil {
		utils.GetLogger().Error("VerifyRegistrationCode: failed to update session", zap.Error(err))
		return fmt.Errorf("registration failed, please try again")
	}
	return nil
}

// FinalizeRegistration creates the account with the provider, clears the
// registration session and publishes the fresh session.
func (s *DefaultAuthService) FinalizeRegistration(ctx context.Context, tempID string) (*models.Session, error) {
	session, err := s.RegStore.Get(ctx, tempID)
	if err != nil {
		return nil, err
	}
	if session.CodeStatus != "verified" {
		return nil, ErrCodeNotVerified
	}

	authSession, err := s.Identity.SignUp(ctx, session.Email, session.Password)
	if err != nil {
		return nil, err
	}

	if err := s.RegStore.Delete(ctx, tempID); err != nil {
		utils.GetLogger().Error("FinalizeRegistration: failed to clear session", zap.Error(err))
	}

	s.Broker.Publish(authSession)
	utils.GetLogger().Info("User registered", zap.String("email", authSession.Email))
	return authSession, nil
}
