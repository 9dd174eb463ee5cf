package handlers

import (
	"errors"
	"net/http"

	request "paintbuddy/internal/adapter/http/dto/request"
	response "paintbuddy/internal/adapter/http/dto/response"
	"paintbuddy/internal/adapter/http/middleware"
	"paintbuddy/internal/usecase"
	"paintbuddy/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidAuthPayload = pkg.NewDomainErrorSimple("INVALID_AUTH_INPUT", "Invalid request payload", http.StatusBadRequest)

// AuthHandler handles registration, login, email verification, password
// reset and Google sign-in.
type AuthHandler struct {
	usecase usecase.IAuthUseCase
}

func NewAuthHandler(uc usecase.IAuthUseCase) *AuthHandler {
	return &AuthHandler{usecase: uc}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var payload request.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAuthPayload.HTTPStatus, errInvalidAuthPayload.ToHTTPError())
		return
	}

	user, err := h.usecase.Register(c.Request.Context(), usecase.RegisterInput{
		Name:            payload.Name,
		Email:           payload.Email,
		Password:        payload.Password,
		ConfirmPassword: payload.ConfirmPassword,
	})
	if err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.RegisterResponse{
		User:    response.FromUser(user),
		Message: "Account created. Check your inbox for a verification link.",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var payload request.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAuthPayload.HTTPStatus, errInvalidAuthPayload.ToHTTPError())
		return
	}

	result, err := h.usecase.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.AuthResponse{Token: result.Token, User: response.FromUser(result.User)})
}

// VerifyEmail accepts the token from the emailed link, either as a query
// parameter or a JSON body.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		var payload request.VerifyEmailRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(errInvalidAuthPayload.HTTPStatus, errInvalidAuthPayload.ToHTTPError())
			return
		}
		token = payload.Token
	}

	result, err := h.usecase.VerifyEmail(c.Request.Context(), token)
	if err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.AuthResponse{Token: result.Token, User: response.FromUser(result.User)})
}

func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var payload request.GoogleSignInRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAuthPayload.HTTPStatus, errInvalidAuthPayload.ToHTTPError())
		return
	}

	result, err := h.usecase.GoogleSignIn(c.Request.Context(), payload.IDToken)
	if err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.AuthResponse{Token: result.Token, User: response.FromUser(result.User)})
}

// ForgotPassword starts the reset flow. The response is the same whether or
// not an account exists, so the endpoint cannot confirm addresses.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var payload request.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAuthPayload.HTTPStatus, errInvalidAuthPayload.ToHTTPError())
		return
	}

	if err := h.usecase.RequestPasswordReset(c.Request.Context(), payload.Email); err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If an account exists for that address, a reset link is on its way.",
	})
}

// ResetPassword consumes the emailed token, sets the new password and signs
// the user in.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var payload request.ResetPasswordRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAuthPayload.HTTPStatus, errInvalidAuthPayload.ToHTTPError())
		return
	}

	result, err := h.usecase.ResetPassword(c.Request.Context(), payload.Token, payload.Password, payload.ConfirmPassword)
	if err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.AuthResponse{Token: result.Token, User: response.FromUser(result.User)})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized).ToHTTPError())
		return
	}

	user, err := h.usecase.GetUser(c.Request.Context(), claims.UserID)
	if err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromUser(user))
}

func mapAuthError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "Invalid email or password", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrEmailTaken):
		return pkg.NewDomainErrorSimple("EMAIL_TAKEN", "An account with this email already exists", http.StatusConflict)
	case errors.Is(err, usecase.ErrWeakPassword):
		return pkg.NewDomainErrorSimple("WEAK_PASSWORD", usecase.ErrWeakPassword.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPasswordMismatch):
		return pkg.NewDomainErrorSimple("PASSWORD_MISMATCH", "Passwords do not match", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidVerification):
		return pkg.NewDomainErrorSimple("INVALID_VERIFICATION", "Invalid or expired verification link", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidReset):
		return pkg.NewDomainErrorSimple("INVALID_RESET", "Invalid or expired reset link", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUserNotFound):
		return pkg.NewDomainErrorSimple("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
