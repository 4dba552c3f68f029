package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AnonymousUserID is the subject recorded for requests when authentication is disabled.
const AnonymousUserID = "anonymous"

var (
	errMissingHeader = errors.New("Authorization header required")
	errHeaderFormat  = errors.New("Authorization header format must be Bearer {token}")
	errNoSubject     = errors.New("Invalid token claims")
)

// AuthMiddleware creates a Gin middleware handler that validates HS256 JWT bearer tokens
// and records the token subject for the request. An empty secret disables
// authentication and every request runs as AnonymousUserID. Extra parser options
// (for example jwt.WithIssuer) tighten validation.
func AuthMiddleware(jwtSecret string, opts ...jwt.ParserOption) gin.HandlerFunc {
	keyFunc := func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	}

	return func(c *gin.Context) {
		if jwtSecret == "" {
			setSubject(c, AnonymousUserID)
			c.Next()
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())
		subject, err := tokenSubject(c.GetHeader("Authorization"), keyFunc, opts)
		if err != nil {
			logger.Warn("Request rejected by auth", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": authErrorMessage(err)})
			return
		}

		setSubject(c, subject)
		c.Next()
	}
}

// tokenSubject extracts the bearer token from header, validates it and returns its sub claim.
func tokenSubject(header string, keyFunc jwt.Keyfunc, opts []jwt.ParserOption) (string, error) {
	if header == "" {
		return "", errMissingHeader
	}
	scheme, raw, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || raw == "" || strings.Contains(raw, " ") {
		return "", errHeaderFormat
	}

	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(raw, claims, keyFunc, opts...); err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errNoSubject
	}
	return claims.Subject, nil
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, errMissingHeader), errors.Is(err, errHeaderFormat), errors.Is(err, errNoSubject):
		return err.Error()
	case errors.Is(err, jwt.ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return "Token not valid yet"
	}
	return "Invalid token"
}

// setSubject stores the subject in the request context and tags the request logger with it.
func setSubject(c *gin.Context, subject string) {
	logger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("subject", subject))
	ctx := WithLogger(WithSubject(c.Request.Context(), subject), logger)
	c.Request = c.Request.WithContext(ctx)
}
