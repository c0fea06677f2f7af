package verification

import (
	"context"
	"errors"
	"regexp"
	"testing"
)

// memStore simulates the code cache; expired codes simply disappear.
type memStore struct {
	codes map[string]string
}

func newMemStore() *memStore { return &memStore{codes: make(map[string]string)} }

func (s *memStore) Set(ctx context.Context, key, code string) error {
	s.codes[key] = code
	return nil
}

func (s *memStore) Get(ctx context.Context, key string) (string, error) {
	code, ok := s.codes[key]
	if !ok {
		return "", ErrCodeNotFound
	}
	return code, nil
}

func (s *memStore) Del(ctx context.Context, key string) error {
	delete(s.codes, key)
	return nil
}

type capturingSender struct {
	email string
	code  string
}

func (c *capturingSender) SendVerificationCode(ctx context.Context, email, code string) error {
	c.email = email
	c.code = code
	return nil
}

func TestInitiateSendsSixDigitCode(t *testing.T) {
	sender := &capturingSender{}
	svc := &Service{Store: newMemStore(), Sender: sender}

	if err := svc.Initiate(context.Background(), "cliente@example.com"); err != nil {
		t.Fatalf("Initiate failed: %v", err)
	}
	if sender.email != "cliente@example.com" {
		t.Errorf("code sent to %q", sender.email)
	}
	if !regexp.MustCompile(`^\d{6}$`).MatchString(sender.code) {
		t.Errorf("code %q is not 6 numeric digits", sender.code)
	}
}

func TestVerifyMatchDeletesCode(t *testing.T) {
	sender := &capturingSender{}
	store := newMemStore()
	svc := &Service{Store: store, Sender: sender}
	ctx := context.Background()

	if err := svc.Initiate(ctx, "cliente@example.com"); err != nil {
		t.Fatalf("Initiate failed: %v", err)
	}
	if err := svc.Verify(ctx, "cliente@example.com", sender.code); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	// A second attempt must find nothing: the code is single-use.
	if err := svc.Verify(ctx, "cliente@example.com", sender.code); !errors.Is(err, ErrCodeNotFound) {
		t.Errorf("second Verify = %v, want ErrCodeNotFound", err)
	}
}

func TestVerifyMismatch(t *testing.T) {
	sender := &capturingSender{}
	svc := &Service{Store: newMemStore(), Sender: sender}
	ctx := context.Background()

	if err := svc.Initiate(ctx, "cliente@example.com"); err != nil {
		t.Fatalf("Initiate failed: %v", err)
	}
	wrong := "000000"
	if wrong == sender.code {
		wrong = "000001"
	}
	if err := svc.Verify(ctx, "cliente@example.com", wrong); !errors.Is(err, ErrCodeMismatch) {
		t.Errorf("Verify = %v, want ErrCodeMismatch", err)
	}
}

func TestVerifyExpiredCode(t *testing.T) {
	svc := &Service{Store: newMemStore(), Sender: &capturingSender{}}

	// Nothing was ever stored for this address: same as an expired entry.
	err := svc.Verify(context.Background(), "cliente@example.com", "123456")
	if !errors.Is(err, ErrCodeNotFound) {
		t.Errorf("Verify = %v, want ErrCodeNotFound", err)
	}
}
