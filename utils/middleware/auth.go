package middleware

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
	"github.com/sahilchouksey/studyflow/utils/auth"
	"github.com/sahilchouksey/studyflow/utils/response"
)

// InternalSecretHeader carries the shared secret of trusted schedulers
const InternalSecretHeader = "x-internal-secret"

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	users      repository.UserRepository
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		users:      users,
	}
}

// authFailure is an authentication outcome that ends the request
type authFailure struct {
	status  int
	message string
}

func (f *authFailure) respond(c *fiber.Ctx) error {
	if f.status == fiber.StatusInternalServerError {
		return response.InternalServerError(c, f.message)
	}
	return response.Unauthorized(c, f.message)
}

// authenticate validates the bearer token and loads its user
func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (*auth.Claims, *model.User, *authFailure) {
	// Get token from Authorization header
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, nil, &authFailure{fiber.StatusUnauthorized, "Missing authorization token"}
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, nil, &authFailure{fiber.StatusUnauthorized, "Invalid authorization format"}
	}

	// Validate token
	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, nil, &authFailure{fiber.StatusUnauthorized, "Token has expired"}
		}
		return nil, nil, &authFailure{fiber.StatusUnauthorized, "Invalid token"}
	}

	// Check if it's an access token
	if claims.TokenType != "access" {
		return nil, nil, &authFailure{fiber.StatusUnauthorized, "Invalid token type"}
	}

	// Load user so that deleted accounts and role changes take effect immediately
	user, err := m.users.Get(c.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, &authFailure{fiber.StatusUnauthorized, "User not found"}
		}
		return nil, nil, &authFailure{fiber.StatusInternalServerError, "Failed to load user"}
	}

	return claims, user, nil
}

func storeIdentity(c *fiber.Ctx, claims *auth.Claims, user *model.User) {
	c.Locals("user_id", user.ID)
	c.Locals("user_role", user.Role)
	c.Locals("claims", claims)
	c.Locals("user", user)
	c.Locals("token_jti", claims.ID)
}

// Required is middleware that requires a valid JWT token
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, user, failure := m.authenticate(c)
		if failure != nil {
			return failure.respond(c)
		}
		storeIdentity(c, claims, user)
		return c.Next()
	}
}

// RequireAdmin is middleware that requires admin role
// It validates the JWT token inline and checks the stored role
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, user, failure := m.authenticate(c)
		if failure != nil {
			return failure.respond(c)
		}

		if !user.IsAdmin() {
			return response.Forbidden(c, "Admin access required")
		}

		storeIdentity(c, claims, user)
		return c.Next()
	}
}

// RequiredOrInternal lets trusted schedulers in with the shared secret header.
// Requests without the header need a valid JWT as with Required.
// Wrong secrets count towards the guard's lockout for the caller's IP.
func (m *AuthMiddleware) RequiredOrInternal(secret string, guard *BruteForceProtection) fiber.Handler {
	required := m.Required()
	return func(c *fiber.Ctx) error {
		presented := c.Get(InternalSecretHeader)
		if presented == "" {
			return required(c)
		}

		ip := c.IP()
		if locked, err := guard.CheckLocked(c, ip); locked {
			return err
		}

		if secret == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
			guard.RecordFailedAttempt(c.UserContext(), ip)
			return response.Unauthorized(c, "Invalid internal secret")
		}

		guard.RecordSuccessfulAttempt(c.UserContext(), ip)
		c.Locals("internal", true)
		return c.Next()
	}
}

// IsInternal reports whether the request was authorised by the shared secret
func IsInternal(c *fiber.Ctx) bool {
	internal, _ := c.Locals("internal").(bool)
	return internal
}

// GetUserID extracts user ID from context
func GetUserID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals("user_id").(string)
	return id, ok && id != ""
}

// GetUser extracts full user object from context
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	user := c.Locals("user")
	if user == nil {
		return nil, false
	}
	u, ok := user.(*model.User)
	return u, ok
}
