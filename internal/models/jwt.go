package models

// JWTClaims holds the claims extracted from a verified OIDC token
type JWTClaims struct {
	Sub   string
	Email string
	Name  string
	Iss   string
	Aud   string
	Exp   int64
	Iat   int64
}
