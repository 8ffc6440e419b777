package jwt

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims identify a client allowed to capture events.
type Claims struct {
	Client string `json:"client"`
	jwt.RegisteredClaims
}

func GenerateToken(client string, secret []byte, issuer string, t time.Duration) (string, error) {
	clims := Claims{
		client,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	tokenClaims := jwt.NewWithClaims(jwt.SigningMethodHS256, clims)
	return tokenClaims.SignedString(secret)
}

// ParseToken validates an HS256 token signed with secret.
func ParseToken(token string, secret []byte) (*Claims, error) {
	tokenClaims, err := jwt.ParseWithClaims(token, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if clims, ok := tokenClaims.Claims.(*Claims); ok && tokenClaims.Valid {
		return clims, nil
	}
	return nil, ErrInvalidToken
}
