package agent

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer is the issuer claim for agent tokens.
const TokenIssuer = "dockhand-server"

// tokenLifetime bounds how long a minted agent token stays valid.
const tokenLifetime = 5 * time.Minute

// MintToken signs a short-lived HS256 token for a single node agent.
func MintToken(secret []byte, nodeID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": TokenIssuer,
		"sub": nodeID,
		"iat": now.Unix(),
		"exp": now.Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign agent token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates an agent token, returning the node id.
func VerifyToken(secret []byte, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer(TokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("parse agent token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("agent token has no subject")
	}
	return sub, nil
}
