package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/carelink/booking-api/internal/model"
)

// JWTService issues and verifies the bearer credentials carried by API
// requests. A token asserts exactly one (subject, role) pair.
type JWTService interface {
	Generate(identity model.Identity) (*model.TokenResponse, error)
	Validate(token string) (model.Identity, error)
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type jwtService struct {
	secret []byte
	expiry time.Duration
	issuer string
}

func NewJWTService(secret string, expiry time.Duration) JWTService {
	return &jwtService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: "carelink-booking-api",
	}
}

func (s *jwtService) Generate(identity model.Identity) (*model.TokenResponse, error) {
	if !identity.Role.Valid() {
		return nil, fmt.Errorf("invalid role: %q", identity.Role)
	}

	expiresAt := time.Now().Add(s.expiry)
	claims := Claims{
		Role: string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.SubjectID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &model.TokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *jwtService) Validate(tokenString string) (model.Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return model.Identity{}, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return model.Identity{}, fmt.Errorf("invalid token")
	}

	role := model.Role(claims.Role)
	if !role.Valid() {
		return model.Identity{}, fmt.Errorf("invalid role claim: %q", claims.Role)
	}

	subjectID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Identity{}, fmt.Errorf("invalid subject claim: %w", err)
	}

	return model.Identity{Role: role, SubjectID: subjectID}, nil
}
