package security

import (
	"fmt"
	"strconv"
	"time"

	"warehouse-dashboard/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT signs a token with the claims JWTMiddleware expects. The dashboard
// does not log users in; this is used by the dev `token` command and tests.
func GenerateJWT(secret []byte, userID int, role string, username string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userID":   strconv.Itoa(userID),
		"role":     role,
		"username": username,
		"exp":      time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ActorFromContext builds the acting operator out of verified claims. Missing or
// malformed claims are an error; callers must never substitute a default actor.
func ActorFromContext(c *gin.Context) (models.Actor, error) {
	rawID, ok := c.Get(ctxUserID)
	if !ok {
		return models.Actor{}, fmt.Errorf("userID claim missing")
	}

	var id int
	switch v := rawID.(type) {
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return models.Actor{}, fmt.Errorf("userID is not numeric: %w", err)
		}
		id = parsed
	case float64:
		id = int(v)
	default:
		return models.Actor{}, fmt.Errorf("userID has unexpected type %T", rawID)
	}

	username, _ := c.Get(ctxUsername)
	role, _ := c.Get(ctxRole)

	actor := models.Actor{ID: id}
	actor.Username, _ = username.(string)
	actor.Role, _ = role.(string)

	if err := actor.Validate(); err != nil {
		return models.Actor{}, err
	}

	return actor, nil
}
