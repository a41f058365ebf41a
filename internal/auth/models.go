package auth

type LoginRequest struct {
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// adminCredential is the stored admin secret, a bcrypt hash in the catalog.
type adminCredential struct {
	PasswordHash string `json:"passwordHash"`
}
