// Package models - JwtToken thuộc domain auth.
package models

import "github.com/dgrijalva/jwt-go"

// JwtToken chứa data được mã hóa trong JWT token.
type JwtToken struct {
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Time         string `json:"time"`
	RandomNumber string `json:"randomNumber"`
	jwt.StandardClaims
}
