package handlers

import (
	"errors"
	"net/http"

	"salonbook/middleware"
	"salonbook/services/auth"
	"salonbook/services/verification"

	"github.com/gin-gonic/gin"
)

// RegisterInitiateHandler opens a registration session and emails a 6-digit
// verification code. The account is not created until finalization.
func (hb *HandlerBundle) RegisterInitiateHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	tempID, err := hb.Auth.InitiateRegistration(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, auth.ErrWeakPassword) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tempId": tempID, "codeStatus": "pending"})
}

// RegisterVerifyHandler checks the emailed code.
func (hb *HandlerBundle) RegisterVerifyHandler(c *gin.Context) {
	var input struct {
		TempID string `json:"tempId" binding:"required"`
		Code   string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.Auth.VerifyRegistrationCode(c.Request.Context(), input.TempID, input.Code); err != nil {
		switch {
		case errors.Is(err, verification.ErrCodeMismatch):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong verification code"})
		case errors.Is(err, verification.ErrCodeNotFound):
			c.JSON(http.StatusGone, gin.H{"error": "verification code expired, request a new one"})
		case errors.Is(err, auth.ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"codeStatus": "verified"})
}

// RegisterFinalizeHandler creates the account and returns the session.
func (hb *HandlerBundle) RegisterFinalizeHandler(c *gin.Context) {
	var input struct {
		TempID string `json:"tempId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := hb.Auth.FinalizeRegistration(c.Request.Context(), input.TempID)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrCodeNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrEmailInUse):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, session)
}

// LoginHandler signs in with email and password.
func (hb *HandlerBundle) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := hb.Auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, session)
}

// ProviderLoginHandler signs in with a provider-issued ID token.
func (hb *HandlerBundle) ProviderLoginHandler(c *gin.Context) {
	var input struct {
		IDToken string `json:"idToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := hb.Auth.LoginWithIDToken(c.Request.Context(), input.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, session)
}

// LogoutHandler revokes the authenticated user's refresh tokens.
func (hb *HandlerBundle) LogoutHandler(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	if err := hb.Auth.Logout(c.Request.Context(), session.UID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}

// PasswordResetHandler asks the provider to email a reset link. The response
// is identical whether or not the address has an account.
func (hb *HandlerBundle) PasswordResetHandler(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.Auth.RequestPasswordReset(c.Request.Context(), input.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "reset email sent if the account exists"})
}
