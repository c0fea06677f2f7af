package models

import "time"

// Session is an authenticated user session issued by the hosted auth provider.
type Session struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	IDToken      string    `json:"idToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// RegistrationSession tracks an in-flight self-service registration while the
// emailed verification code is pending. Held in Redis, never in Mongo.
type RegistrationSession struct {
	TempID        string    `json:"tempId"`
	Email         string    `json:"email"`
	Password      string    `json:"password"`
	CodeStatus    string    `json:"codeStatus"` // "pending" or "verified"
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
