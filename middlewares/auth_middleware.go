package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/trusttaste/booking-core/utils"
)

// AuthMiddleware validates the bearer token and stores the caller's
// restaurant scope on the context. Websocket clients may pass the token
// as a query parameter instead of a header.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" && c.Query("token") != "" {
			token = "Bearer " + c.Query("token")
		}

		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(token, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims == nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}

		if claims.RestaurantID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("no restaurant scope in token"))
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("restaurantID", claims.RestaurantID)
		c.Set("role", claims.Role)

		c.Next()
	}
}
