package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nyumbani/internal/auth"
	"nyumbani/internal/common"
	"nyumbani/internal/services"
)

// AuthHandlers exchanges provider ID tokens for sessions and manages
// refresh and revocation.
type AuthHandlers struct {
	verifier   auth.IdentityVerifier
	tokenSvc   auth.TokenService
	profileSvc services.ProfileService
}

func NewAuthHandlers(verifier auth.IdentityVerifier, tokenSvc auth.TokenService, profileSvc services.ProfileService) *AuthHandlers {
	return &AuthHandlers{verifier: verifier, tokenSvc: tokenSvc, profileSvc: profileSvc}
}

type loginRequest struct {
	IDToken string `json:"id_token"`
}

// Login verifies the identity provider's ID token, resolves the matching
// profile and mints a session. No profile means no session: the account
// exists upstream but was never provisioned here.
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.IDToken == "" {
		return common.SendValidationError(c, "id_token", "id_token is required")
	}

	identity, err := h.verifier.Verify(req.IDToken)
	if err != nil {
		return common.SendUnauthorizedError(c)
	}

	profile, err := h.profileSvc.GetProfileByUID(ctx, identity.UID)
	if err != nil {
		return common.SendServerError(c, "Failed to resolve profile")
	}
	if profile == nil {
		return common.SendForbiddenError(c)
	}

	tokens, err := h.tokenSvc.GenerateTokens(ctx, profile.ID, profile.Role)
	if err != nil {
		return common.SendServerError(c, "Failed to create session")
	}
	return c.JSON(http.StatusOK, tokens)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandlers) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.RefreshToken == "" {
		return common.SendValidationError(c, "refresh_token", "refresh_token is required")
	}

	tokens, err := h.tokenSvc.RefreshTokens(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return common.SendUnauthorizedError(c)
	}
	return c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandlers) Logout(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.RefreshToken != "" {
		if err := h.tokenSvc.RevokeRefreshToken(c.Request().Context(), req.RefreshToken); err != nil {
			return common.SendServerError(c, "Failed to revoke session")
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the profile behind the current session.
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	profile, err := h.profileSvc.GetByID(ctx, userID)
	if err != nil {
		return common.SendNotFoundError(c, "Profile")
	}
	return c.JSON(http.StatusOK, profile)
}
