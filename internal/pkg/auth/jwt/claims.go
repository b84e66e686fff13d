package jwt

import "github.com/golang-jwt/jwt"

// RoleAdmin is the only privileged role the hub recognizes.
const RoleAdmin = "admin"

// Claims defines the JWT payload carried by the `auth` credential cookie.
// Presence of a verified Claims value is what makes a connection privileged;
// the hub re-verifies the raw token on every privileged operation, so a
// cached Claims value is never trusted beyond a single verified call.
type Claims struct {
	// StandardClaims embeds Exp (Expiration), Iat (Issued At), and Iss
	// (Issuer), which drive token validity checks.
	jwt.StandardClaims

	// Name is the display name of the credential holder.
	Name string `json:"name"`

	// Role is the privilege level granted by the credential.
	Role string `json:"role"`
}

// IsAdmin reports whether the claims grant moderation privileges.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
