package app

import (
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// InviteService issues and redeems signed game-invite tokens. A token
// names one game and expires; it carries no authority beyond pointing
// the redeeming player at the right game id, so the usual join rules
// still apply.
type InviteService struct {
	secret string
	issuer string
	ttl    time.Duration
}

// NewInviteService constructs an InviteService. secret signs tokens,
// issuer tags them, ttl bounds their lifetime.
func NewInviteService(secret, issuer string, ttl time.Duration) *InviteService {
	return &InviteService{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
	}
}

// CreateInvite signs an invite token for the given game on behalf of
// the inviting player.
func (s *InviteService) CreateInvite(gameID, inviterID string) (string, error) {
	if s == nil || s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("invite service is not configured")
	}
	if gameID == "" {
		return "", fmt.Errorf("game id is required")
	}

	claims := jwt.MapClaims{
		"iss":  s.issuer,
		"sub":  inviterID,
		"exp":  time.Now().Add(s.ttl).Unix(),
		"game": gameID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// RedeemInvite verifies a token and returns the game id it points at.
func (s *InviteService) RedeemInvite(tokenString string) (string, error) {
	if s == nil || s.secret == "" {
		return "", fmt.Errorf("invite service is not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid invite token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid invite token")
	}
	if iss, _ := claims["iss"].(string); iss != s.issuer {
		return "", fmt.Errorf("invite token has wrong issuer")
	}
	gameID, _ := claims["game"].(string)
	if gameID == "" {
		return "", fmt.Errorf("invite token names no game")
	}
	return gameID, nil
}
