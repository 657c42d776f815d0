package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientIP returns the address the request originated from for access logs.
// X-Real-IP wins over the first parseable X-Forwarded-For hop; anything that
// does not parse as an IP is ignored and gin's own resolution is used.
func ClientIP(c *gin.Context) string {
	if ip := parseIP(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}
	for _, hop := range strings.Split(c.GetHeader("X-Forwarded-For"), ",") {
		if ip := parseIP(hop); ip != "" {
			return ip
		}
	}
	return c.ClientIP()
}

func parseIP(raw string) string {
	ip := net.ParseIP(strings.TrimSpace(raw))
	if ip == nil {
		return ""
	}
	return ip.String()
}
