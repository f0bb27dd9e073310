package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/shak0x90/steadygainsinvestments-sub000/config"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// JwtService validates bearer tokens issued by the identity provider in
// front of this API. Tokens carry the account id in "sub" and the role
// in "role"; the core trusts both once the signature checks out.
type JwtService struct {
	secret []byte
	issuer string
}

func NewJwtService(cfg config.JWTConfig) (*JwtService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	return &JwtService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}, nil
}

type identityClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (j *JwtService) ParseToken(tokenString string) (userID, role string, err error) {
	claims := &identityClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	})
	if err != nil {
		return "", "", err
	}
	if !token.Valid {
		return "", "", errors.New("invalid token")
	}
	if j.issuer != "" && claims.Issuer != j.issuer {
		return "", "", errors.New("invalid token issuer")
	}
	if claims.Subject == "" {
		return "", "", errors.New("token has no subject")
	}

	role = claims.Role
	if role == "" {
		role = RoleUser
	}

	return claims.Subject, role, nil
}

func AuthMiddleware(jwtSvc *JwtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "UNAUTHORIZED",
				"message": "Missing or malformed authorization header",
			})
			c.Abort()
			return
		}

		userID, role, err := jwtSvc.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "UNAUTHORIZED",
				"message": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		if role != RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "FORBIDDEN",
				"message": "Administrator access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
