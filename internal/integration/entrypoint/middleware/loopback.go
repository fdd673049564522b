// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// ErrCodeNotLoopback is returned to callers outside the local machine.
const ErrCodeNotLoopback = "NET-010001"

// LoopbackOnly rejects requests whose client address is not a loopback address.
// The engine must not trust proxy headers, so ClientIP reflects the socket peer.
func LoopbackOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP, _, _ = net.SplitHostPort(c.Request.RemoteAddr)
		}

		if !IsLoopback(clientIP) {
			slog.WarnContext(c.Request.Context(), "rejected non-loopback request",
				"client_ip", clientIP,
				"path", c.Request.URL.Path,
			)
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Error: "API is only reachable from this device",
				Code:  ErrCodeNotLoopback,
			})
			return
		}

		c.Next()
	}
}

// IsLoopback reports whether ip parses as a loopback address.
func IsLoopback(ip string) bool {
	parsed := net.ParseIP(ip)
	return parsed != nil && parsed.IsLoopback()
}
