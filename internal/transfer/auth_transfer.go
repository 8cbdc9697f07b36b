package transfer

import "github.com/golang-jwt/jwt/v5"

type CustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type ContentCreation struct {
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
	Platform string `json:"platform"`
}
