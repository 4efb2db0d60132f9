package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmcomponents/gateway-service/internal/credentials"
	"github.com/mmcomponents/gateway-service/internal/domain"
	"github.com/mmcomponents/gateway-service/internal/pkg"
)

// TokenRequest represents the input for minting a custom token.
type TokenRequest struct {
	UID string `json:"uid" form:"uid" binding:"required,min=1,max=128"`
}

// TokenResponse represents the minted custom token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// AuthHandler handles authentication endpoints backed by the credential
// provider. provider may be nil when credentials are disabled.
type AuthHandler struct {
	provider *credentials.Provider
}

// NewHandler creates an AuthHandler with the given credential provider.
func NewHandler(provider *credentials.Provider) *AuthHandler {
	return &AuthHandler{provider: provider}
}

// Status handles GET /auth/status.
func (h *AuthHandler) Status(c *gin.Context) {
	configured := h.provider != nil
	resp := gin.H{"configured": configured}
	if configured {
		resp["project"] = h.provider.ProjectID()
	}
	c.JSON(http.StatusOK, resp)
}

// Token handles POST /auth/token: mints a custom identity token for the
// given uid, signed with the service account key.
func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	if h.provider == nil {
		pkg.Error(c, domain.NewAppError(domain.CodeInternal, "credential provider is not configured", nil))
		return
	}

	token, expiresAt, err := h.provider.IssueCustomToken(req.UID)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeInternal, "failed to issue token", err))
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	})
}
