package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"salonbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CodeStore holds pending verification codes with expiry. The code lives in
// the backend, not in client state, so a reload or a forged client cannot
// bypass the check.
type CodeStore interface {
	Set(ctx context.Context, key, code string) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}

// ErrCodeNotFound is returned when no code is pending for the address,
// typically because it expired.
var ErrCodeNotFound = fmt.Errorf("verification code not found or expired")

// ErrCodeMismatch is returned when the provided code does not match.
var ErrCodeMismatch = fmt.Errorf("verification code does not match")

// RedisCodeStore keeps codes in Redis under the code TTL.
type RedisCodeStore struct {
	Client *redis.Client
}

func (s *RedisCodeStore) Set(ctx context.Context, key, code string) error {
	return s.Client.Set(ctx, key, code, utils.CodeTTL).Err()
}

func (s *RedisCodeStore) Get(ctx context.Context, key string) (string, error) {
	code, err := s.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCodeNotFound
	}
	return code, err
}

func (s *RedisCodeStore) Del(ctx context.Context, key string) error {
	return s.Client.Del(ctx, key).Err()
}

// CodeSender delivers a verification code to an email address. Satisfied by
// the email relay.
type CodeSender interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

// Service issues and checks the 6-digit numeric codes emailed during
// self-service registration. Codes expire after utils.CodeTTL and are deleted
// on successful verification.
type Service struct {
	Store  CodeStore
	Sender CodeSender
}

// generateCode returns a random 6-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func codeKey(email string) string {
	return utils.CodeCachePrefix + email
}

// Initiate generates a code for the address, stores it with the standard TTL
// and emails it through the relay.
func (s *Service) Initiate(ctx context.Context, email string) error {
	code, err := generateCode()
	if err != nil {
		return err
	}

	if err := s.Store.Set(ctx, codeKey(email), code); err != nil {
		utils.GetLogger().Error("Failed to cache verification code", zap.Error(err))
		return fmt.Errorf("failed to initiate verification")
	}

	if err := s.Sender.SendVerificationCode(ctx, email, code); err != nil {
		utils.GetLogger().Error("Failed to send verification code", zap.Error(err))
		return fmt.Errorf("failed to send verification code")
	}

	utils.GetLogger().Sugar().Infof("Sent verification code to %s (expires in %v)", email, utils.CodeTTL)
	return nil
}

// Verify compares the provided code against the stored one and deletes it on
// a match. An expired or absent code surfaces ErrCodeNotFound.
func (s *Service) Verify(ctx context.Context, email, providedCode string) error {
	stored, err := s.Store.Get(ctx, codeKey(email))
	if err != nil {
		if err == ErrCodeNotFound {
			return ErrCodeNotFound
		}
		return fmt.Errorf("failed to retrieve verification code: %w", err)
	}

	if stored != providedCode {
		return ErrCodeMismatch
	}

	if err := s.Store.Del(ctx, codeKey(email)); err != nil {
		utils.GetLogger().Error("Failed to delete verification code after verification", zap.Error(err))
	}
	return nil
}
