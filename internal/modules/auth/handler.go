package auth

import (
	"errors"
	"net/http"

	"github.com/22DP3HEisu/JustFitness-Mobile/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication and sessions
type Handler struct {
	service *Service
}

// NewHandler creates a new auth handler with injected service
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/auth/logout-all", h.LogoutAll)

	userGroup := protected.Group("/users")
	{
		userGroup.GET("/me", h.GetMe)
		userGroup.PUT("/me", h.UpdateProfile)
	}
}

// Register creates a new account and opens its first session.
// @Summary		Register a new user
// @Description	Creates an account with email and password. The response carries the user together with an access/refresh token pair, so the client is signed in right away.
// @Tags		Authentication
// @Param		request	body	RegisterRequest	true	"Registration data (email, password, name, phone)"
// @Success		201	{object}		map[string]interface{} "Account created, token pair issued"
// @Failure		400	{object}		map[string]interface{} "Validation failed, details list every violated rule"
// @Failure		409	{object}		map[string]interface{} "Email is already registered"
// @Failure		500	{object}		map[string]interface{} "Server error while creating the account"
// @Router		/auth/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, tokens, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", vErr.Fields)
			return
		}
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register user")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Login authenticates a user and opens a session.
// @Summary		Log in
// @Description	Authenticates by email and password and issues an access/refresh token pair. The same error is returned for an unknown email and a wrong password.
// @Tags		Authentication
// @Param		request	body	LoginRequest	true	"Credentials (email, password)"
// @Success		200	{object}		map[string]interface{} "Authenticated, token pair issued"
// @Failure		400	{object}		map[string]interface{} "Validation failed"
// @Failure		401	{object}		map[string]interface{} "Email or password is incorrect"
// @Failure		500	{object}		map[string]interface{} "Server error while logging in"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, tokens, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", vErr.Fields)
			return
		}
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Refresh exchanges a refresh token for a new access token.
// @Summary		Refresh access token
// @Description	Issues a fresh access token for a live refresh token. The refresh token is not rotated and stays usable until its own expiry or logout. Invalid, expired and revoked tokens all get the same 401.
// @Tags		Authentication
// @Param		request	body	RefreshRequest	true	"Refresh token"
// @Success		200	{object}		map[string]interface{} "New access token"
// @Failure		400	{object}		map[string]interface{} "Missing refresh_token field"
// @Failure		401	{object}		map[string]interface{} "Refresh token is invalid, expired or revoked"
// @Failure		500	{object}		map[string]interface{} "Server error while refreshing"
// @Router		/auth/refresh [POST]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	accessToken, err := h.service.RefreshAccess(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) {
			response.Error(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "REFRESH_FAILED", "Failed to refresh token")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"access_token": accessToken,
		"expires_in":   AccessTokenLifetime,
	})
}

// Logout revokes the session behind a refresh token.
// @Summary		Log out
// @Description	Revokes the given refresh token. Logging out an unknown or already-revoked token still answers 200, the operation is idempotent.
// @Tags		Authentication
// @Param		request	body	LogoutRequest	true	"Refresh token to revoke"
// @Success		200	{object}		map[string]interface{} "Session revoked (or was not live to begin with)"
// @Failure		400	{object}		map[string]interface{} "Missing refresh_token field"
// @Router		/auth/logout [POST]
func (h *Handler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	h.service.Logout(c.Request.Context(), req.RefreshToken)

	response.Success(c, http.StatusOK, gin.H{
		"message": "Logged out",
	})
}

// LogoutAll revokes every session of the authenticated user.
// @Summary		Log out everywhere
// @Description	Revokes all refresh tokens of the current user across all devices and reports how many sessions were dropped. Outstanding access tokens keep working until they expire.
// @Tags		Authentication
// @Security	BearerAuth
// @Success		200	{object}		map[string]interface{} "Number of sessions revoked"
// @Failure		401	{object}		map[string]interface{} "Missing or invalid access token"
// @Router		/auth/logout-all [POST]
func (h *Handler) LogoutAll(c *gin.Context) {
	userID := c.GetInt64("user_id")

	revoked := h.service.LogoutAll(c.Request.Context(), userID)

	response.Success(c, http.StatusOK, gin.H{
		"sessions_revoked": revoked,
	})
}

// GetMe returns the profile of the authenticated user.
// @Summary		Get own profile
// @Description	Returns the profile of the user behind the access token. The password hash never appears in any response.
// @Tags		Profile
// @Security	BearerAuth
// @Success		200	{object}		map[string]interface{} "User profile"
// @Failure		401	{object}		map[string]interface{} "Missing or invalid access token"
// @Failure		404	{object}		map[string]interface{} "Account no longer exists"
// @Router		/users/me [GET]
func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetInt64("user_id")

	user, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "PROFILE_FAILED", "Failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": user,
	})
}

// UpdateProfile changes name and phone of the authenticated user.
// @Summary		Update own profile
// @Description	Updates name and phone. Email cannot be changed through this endpoint.
// @Tags		Profile
// @Security	BearerAuth
// @Param		request	body	UpdateProfileRequest	true	"Fields to update (name, phone)"
// @Success		200	{object}		map[string]interface{} "Updated profile"
// @Failure		400	{object}		map[string]interface{} "Validation failed"
// @Failure		401	{object}		map[string]interface{} "Missing or invalid access token"
// @Failure		404	{object}		map[string]interface{} "Account no longer exists"
// @Failure		500	{object}		map[string]interface{} "Server error while updating"
// @Router		/users/me [PUT]
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", vErr.Fields)
			return
		}
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Could not update profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": user,
	})
}
