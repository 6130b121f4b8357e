package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS cho phép các origin được cấu hình, "*" cho phép tất cả
// Origin phải có scheme http:// hoặc https://, origin sai format bị bỏ qua
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", HeaderCorrelationID},
		ExposeHeaders:    []string{HeaderCorrelationID, "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	origins := make([]string, 0, len(allowedOrigins))
	allowAll := false
	for _, o := range allowedOrigins {
		o = strings.TrimSpace(o)
		switch {
		case o == "*":
			allowAll = true
		case strings.HasPrefix(o, "http://"), strings.HasPrefix(o, "https://"):
			origins = append(origins, o)
		}
	}

	switch {
	case allowAll:
		// Echo origin thay vì "*" vì AllowCredentials = true
		cfg.AllowOriginFunc = func(string) bool { return true }
	case len(origins) > 0:
		cfg.AllowOrigins = origins
	default:
		cfg.AllowOriginFunc = func(string) bool { return false }
	}

	return cors.New(cfg)
}
