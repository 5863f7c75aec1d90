package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWT secret key, loaded from JWT_SECRET at startup
var JwtKey []byte

// Claims represents the JWT claims for both principal types: a student
// token carries StudentID, an admin token carries Username and Role.
type Claims struct {
	StudentID int64  `json:"student_id,omitempty"`
	Username  string `json:"username,omitempty"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// GenerateStudentToken issues a 1-hour token for a student
func GenerateStudentToken(studentID int64) (string, error) {
	claims := &Claims{
		StudentID: studentID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtKey)
}

// GenerateAdminToken issues a 2-hour token carrying the admin role
func GenerateAdminToken(username string) (string, error) {
	claims := &Claims{
		Username: username,
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtKey)
}

// ParseToken verifies a token's signature and expiry and returns its claims
func ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
