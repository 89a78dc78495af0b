package util

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// SecurityEventType represents different types of security events
type SecurityEventType string

const (
	EventLoginSuccess      SecurityEventType = "LOGIN_SUCCESS"
	EventLoginFailure      SecurityEventType = "LOGIN_FAILURE"
	EventLogout            SecurityEventType = "LOGOUT"
	EventUnauthorized      SecurityEventType = "UNAUTHORIZED_ACCESS"
	EventRateLimitExceeded SecurityEventType = "RATE_LIMIT_EXCEEDED"
	EventSuspicious        SecurityEventType = "SUSPICIOUS_ACTIVITY"
	EventEndpointCall      SecurityEventType = "ENDPOINT_CALL"
)

// SecurityEvent represents a security event to be logged
type SecurityEvent struct {
	EventType SecurityEventType
	Username  string
	IP        string
	UserAgent string
	Message   string
	Details   map[string]interface{}
}

var securityLogger = appLogger.WithField("channel", "security")

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// LogSecurityEvent logs a security event. Passwords must never be put in an event.
func LogSecurityEvent(event SecurityEvent) {
	fields := logrus.Fields{
		"event":      sanitizeLogValue(string(event.EventType)),
		"username":   sanitizeLogValue(event.Username),
		"ip":         sanitizeLogValue(event.IP),
		"user_agent": sanitizeLogValue(event.UserAgent),
	}
	for k, v := range event.Details {
		if s, ok := v.(string); ok {
			v = sanitizeLogValue(s)
		}
		fields[k] = v
	}

	entry := securityLogger.WithFields(fields)
	msg := sanitizeLogValue(event.Message)
	switch event.EventType {
	case EventLoginFailure, EventUnauthorized, EventRateLimitExceeded, EventSuspicious:
		entry.Warn(msg)
	default:
		entry.Info(msg)
	}
}

// LogLoginSuccess logs a successful login event
func LogLoginSuccess(username, ip, userAgent string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventLoginSuccess,
		Username:  username,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "User logged in successfully",
	})
}

// LogLoginFailure logs a failed login attempt. The reason is deliberately
// the same for unknown users and wrong passwords.
func LogLoginFailure(username, ip, userAgent string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventLoginFailure,
		Username:  username,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "Login failed: invalid credentials",
	})
}

// LogLogout logs a logout event
func LogLogout(username, ip, userAgent string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventLogout,
		Username:  username,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "User logged out",
	})
}

// LogUnauthorizedAccess logs a request to a protected route while logged out
func LogUnauthorizedAccess(ip, resource string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventUnauthorized,
		IP:        ip,
		Message:   "Unauthorized access to " + resource,
	})
}

// LogRateLimitExceeded logs when rate limit is exceeded
func LogRateLimitExceeded(ip, endpoint string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventRateLimitExceeded,
		IP:        ip,
		Message:   "Rate limit exceeded for endpoint: " + endpoint,
	})
}

// SetSecurityLoggerForTest replaces the security logger for testing purposes
func SetSecurityLoggerForTest(logger *logrus.Logger) func() {
	original := securityLogger
	securityLogger = logger.WithField("channel", "security")
	return func() { securityLogger = original }
}
