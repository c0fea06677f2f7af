package utils

import (
	"errors"
	"time"

	"salonbook/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "salonbook-dev"
	}
	return []byte(secret)
}

// GenerateAdminToken creates a signed JWT for an authenticated admin device.
// The token expires after the specified duration.
func GenerateAdminToken(deviceID string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":    "admin",
		"device": deviceID,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractAdminDeviceFromToken validates an admin token and returns the device
// claim it was issued to.
func ExtractAdminDeviceFromToken(tokenString string) (string, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	if sub, _ := claims["sub"].(string); sub != "admin" {
		return "", errors.New("token is not an admin token")
	}

	device, ok := claims["device"].(string)
	if !ok || device == "" {
		return "", errors.New("token does not contain a valid 'device' claim")
	}

	return device, nil
}
