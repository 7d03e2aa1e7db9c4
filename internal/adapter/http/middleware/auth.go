package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/pkg"
	"topreparateurs/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const actorKey = "actor"

var (
	errMissingToken = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authorization header required", http.StatusUnauthorized)
	errInvalidToken = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Invalid or expired token", http.StatusUnauthorized)
	errForbidden    = pkg.NewDomainErrorSimple("FORBIDDEN", "Caller is not allowed to perform this action", http.StatusForbidden)
)

// Claims is the access token payload: the subject is the actor id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthConfig holds the token verification settings.
type AuthConfig struct {
	Secret string
	Issuer string
}

// GenerateToken signs an HS256 token for actor valid for ttl.
func GenerateToken(cfg AuthConfig, actor entities.Actor, ttl time.Duration) (string, time.Time, error) {
	if cfg.Secret == "" {
		return "", time.Time{}, errors.New("jwt secret is empty")
	}
	if !actor.Role.Valid() || strings.TrimSpace(actor.ID) == "" {
		return "", time.Time{}, errors.New("token needs a subject and a valid role")
	}
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := Claims{
		Role: string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken verifies signature, expiry and issuer and returns the actor.
func ParseToken(cfg AuthConfig, raw string) (entities.Actor, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}, opts...)
	if err != nil {
		return entities.Actor{}, err
	}
	if !token.Valid {
		return entities.Actor{}, errors.New("invalid token")
	}
	actor := entities.Actor{ID: claims.Subject, Role: entities.Role(claims.Role)}
	if actor.ID == "" || !actor.Role.Valid() || actor.Role == entities.RoleSystem {
		return entities.Actor{}, errors.New("token carries no usable actor")
	}
	return actor, nil
}

// Auth requires a bearer token and stores the actor in the gin and request contexts.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(errMissingToken.HTTPStatus, errMissingToken.ToHTTPError())
			return
		}
		scheme, raw, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(errInvalidToken.HTTPStatus, errInvalidToken.ToHTTPError())
			return
		}

		actor, err := ParseToken(cfg, strings.TrimSpace(raw))
		if err != nil {
			logger.Warn(c.Request.Context(), "[http][auth] token rejected", "err", err)
			c.AbortWithStatusJSON(errInvalidToken.HTTPStatus, errInvalidToken.ToHTTPError())
			return
		}

		SetActor(c, actor)
		c.Next()
	}
}

// SetActor attaches actor to the request. Handlers read it back with ActorFrom.
func SetActor(c *gin.Context, actor entities.Actor) {
	c.Set(actorKey, actor)
	ctx := context.WithValue(c.Request.Context(), logger.ActorIDKey, actor.ID)
	ctx = context.WithValue(ctx, logger.ActorRoleKey, string(actor.Role))
	c.Request = c.Request.WithContext(ctx)
}

// ActorFrom returns the authenticated actor, or a zero Actor.
func ActorFrom(c *gin.Context) entities.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(entities.Actor); ok {
			return actor
		}
	}
	return entities.Actor{}
}

// RequireRole lets through only actors holding one of roles.
func RequireRole(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		if actor.ID == "" {
			c.AbortWithStatusJSON(errMissingToken.HTTPStatus, errMissingToken.ToHTTPError())
			return
		}
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(errForbidden.HTTPStatus, errForbidden.ToHTTPError())
	}
}
