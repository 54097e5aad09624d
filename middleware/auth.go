package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CustomClaims are the portal-specific claims carried by access tokens
type CustomClaims struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

// Validate rejects tokens that carry no role
func (c CustomClaims) Validate(ctx context.Context) error {
	if c.Role == "" {
		return errors.New("token has no role")
	}
	return nil
}

// HasRole reports whether the token was issued for one of roles
func (c CustomClaims) HasRole(roles ...string) bool {
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}

// RevocationChecker reports whether a token id has been logged out
type RevocationChecker interface {
	IsRevoked(tokenID string) bool
}

// AccountChecker reports whether the account behind a token subject still exists
type AccountChecker interface {
	AccountExists(role, subject string) bool
}

// TokenSettings configures EnsureValidToken
type TokenSettings struct {
	Secret   string
	Issuer   string
	Audience string
}

// EnsureValidToken is a middleware that checks the HS256 bearer token and rejects revoked ones
func EnsureValidToken(settings TokenSettings, revoked RevocationChecker, logger *zap.Logger) (gin.HandlerFunc, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	jwtValidator, err := validator.New(
		func(ctx context.Context) (interface{}, error) {
			return []byte(settings.Secret), nil
		},
		validator.HS256,
		settings.Issuer,
		[]string{settings.Audience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &CustomClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Debug("encountered error while validating JWT", zap.Error(err))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		if _, writeErr := w.Write([]byte(`{"success":false,"error":{"code":"INVALID_TOKEN","message":"Failed to validate JWT."}}`)); writeErr != nil {
			logger.Warn("failed to write error response", zap.Error(writeErr))
		}
	}

	middleware := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return func(c *gin.Context) {
		validated := false
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			token, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
			if !ok {
				return
			}
			if revoked != nil && revoked.IsRevoked(token.RegisteredClaims.ID) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "TOKEN_REVOKED",
						"message": "Token has been revoked",
					},
				})
				return
			}

			validated = true
			c.Request = r
			c.Set("user_id", token.RegisteredClaims.Subject)
			c.Set("validated_claims", token)
			if custom, ok := token.CustomClaims.(*CustomClaims); ok {
				c.Set("role", custom.Role)
			}

			c.Next()
		}

		middleware.CheckJWT(handler).ServeHTTP(c.Writer, c.Request)
		if !validated {
			c.Abort()
		}
	}, nil
}

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", &AuthError{Code: "MISSING_USER_ID", Message: "User ID not found in context"}
	}

	userIDStr, ok := userID.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_USER_ID", Message: "User ID is not a string"}
	}

	return userIDStr, nil
}

// GetRole extracts the account role from the Gin context
func GetRole(c *gin.Context) (string, error) {
	role, exists := c.Get("role")
	if !exists {
		return "", &AuthError{Code: "MISSING_ROLE", Message: "Role not found in context"}
	}

	roleStr, ok := role.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_ROLE", Message: "Role is not a string"}
	}

	return roleStr, nil
}

// GetClaims extracts the validated JWT claims from the Gin context
func GetClaims(c *gin.Context) (*validator.ValidatedClaims, error) {
	claims, exists := c.Get("validated_claims")
	if !exists {
		return nil, &AuthError{Code: "MISSING_CLAIMS", Message: "Claims not found in context"}
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "Claims are not in the expected format"}
	}

	return validatedClaims, nil
}

// GetTokenID returns the jti of the current token and when it expires
func GetTokenID(c *gin.Context) (string, time.Time, error) {
	claims, err := GetClaims(c)
	if err != nil {
		return "", time.Time{}, err
	}
	if claims.RegisteredClaims.ID == "" {
		return "", time.Time{}, &AuthError{Code: "MISSING_TOKEN_ID", Message: "Token has no id"}
	}
	return claims.RegisteredClaims.ID, time.Unix(claims.RegisteredClaims.Expiry, 0), nil
}

// RequireRole is a middleware that checks the token was issued to one of roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := GetRole(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_CLAIMS",
					"message": "Could not retrieve token claims",
				},
			})
			c.Abort()
			return
		}

		if !(CustomClaims{Role: role}).HasRole(roles...) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INSUFFICIENT_ROLE",
					"message": "Insufficient permissions to access this resource",
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAccount rejects tokens whose account has been deleted since they were issued
func RequireAccount(accounts AccountChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := GetUserID(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_USER_ID",
					"message": "Could not retrieve token subject",
				},
			})
			return
		}
		role, _ := GetRole(c)
		if !accounts.AccountExists(role, userID) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ACCOUNT_NOT_FOUND",
					"message": "The account for this token no longer exists",
				},
			})
			return
		}

		c.Next()
	}
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
