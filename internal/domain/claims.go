package domain

import "github.com/golang-jwt/jwt/v5"

const RoleAdmin = "admin"

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
