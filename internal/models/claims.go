package models

import "github.com/golang-jwt/jwt/v5"

const RoleAdmin = "admin"

// ServiceClaims are the JWT claims accepted on the admin API.
type ServiceClaims struct {
	Subject string `json:"sub_name,omitempty"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}
