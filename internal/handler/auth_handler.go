/*
Package handler provides the HTTP handlers and routing setup for the hub.

This file contains the admin token mint endpoint: it exchanges the admin
password for a signed JWT suitable for the `auth` credential cookie.
*/
package handler

import (
	"crypto/subtle"
	"net/http"

	authjwt "kchat/internal/pkg/auth/jwt"
	"kchat/internal/pkg/errs"
	"kchat/internal/pkg/logx"
	"kchat/internal/pkg/req"
	"kchat/internal/pkg/resp"
)

// AdminTokenRequest is the body of POST /api/auth/token.
type AdminTokenRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AdminTokenResponse carries the minted credential.
type AdminTokenResponse struct {
	Token string `json:"token"`
}

// HandleAdminToken exchanges the configured admin password for an admin
// JWT. The token is signed with the *current* secret setting, so rotating
// the secret at runtime invalidates previously minted credentials.
func HandleAdminToken(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body AdminTokenRequest
		if cerr := req.BindJSON(r, &body); cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		if subtle.ConstantTimeCompare([]byte(body.Password), []byte(deps.Config.AdminPassword)) != 1 {
			logx.Warn("Admin token request rejected: wrong password.")
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		name := body.Name
		if name == "" {
			name = "admin"
		}

		claims := &authjwt.Claims{
			Name: name,
			Role: authjwt.RoleAdmin,
		}

		token, err := authjwt.GenerateToken(claims, deps.Hub.Settings.Secret(), authjwt.AdminTokenExpiration)
		if err != nil {
			logx.Error(err, "Failed to sign admin token")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, AdminTokenResponse{Token: token})
	}
}
