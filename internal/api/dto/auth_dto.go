package dto

// LoginRequest payload for POST /auth/login.
type LoginRequest struct {
	SecretKey string `json:"secretKey"`
}

// LoginResponse carries the issued token and its lifetime (e.g. "30m").
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn string `json:"expiresIn"`
}

// VerifyRequest payload for POST /auth/verify.
type VerifyRequest struct {
	Token string `json:"token"`
}

// DecodedToken is the public view of verified claims.
type DecodedToken struct {
	Scope     []string `json:"scope"`
	IssuedAt  int64    `json:"issuedAt"`
	Iat       int64    `json:"iat,omitempty"`
	ExpiresAt int64    `json:"exp,omitempty"`
}

// VerifyResponse reports token validity.
type VerifyResponse struct {
	Valid   bool          `json:"valid"`
	Decoded *DecodedToken `json:"decoded,omitempty"`
	Error   string        `json:"error,omitempty"`
}
