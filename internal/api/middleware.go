package api

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	honeybadger "github.com/honeybadger-io/honeybadger-go"
	"github.com/sirupsen/logrus"

	"github.com/ft-kumarsatyam/venue-management-system/internal/auth"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/apperror"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/response"
	"github.com/ft-kumarsatyam/venue-management-system/internal/user"
)

var (
	ErrUnauthorized   = apperror.New(http.StatusUnauthorized, "unauthorized")
	ErrForbidden      = apperror.New(http.StatusForbidden, "forbidden: system admin access required")
	ErrRequestTimeout = apperror.New(http.StatusGatewayTimeout, "request timeout")
)

// UserLookup is the part of user.Service the admin gate needs.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// RequireSystemAdmin ensures the authenticated user is a system admin.
// It MUST be used after auth.AuthRequired middleware.
func RequireSystemAdmin(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			response.Abort(c, ErrUnauthorized)
			return
		}

		// Check permissions
		u, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			response.Abort(c, ErrUnauthorized)
			return
		}

		if !u.IsSystemAdmin || !u.IsActive {
			response.Abort(c, ErrForbidden)
			return
		}

		c.Next()
	}
}

// RequestLogger logs one line per request through logrus.
func RequestLogger(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"ip":       c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request served")
		}
	}
}

// Honeybadger reports panics and 5xx responses. With an empty apiKey it is a
// no-op.
func Honeybadger(apiKey, env string, log *logrus.Entry) gin.HandlerFunc {
	if apiKey == "" {
		log.Info("honeybadger is not active, set HONEYBADGER_API_KEY to enable error reporting")
		return func(c *gin.Context) { c.Next() }
	}

	honeybadger.Configure(honeybadger.Configuration{
		APIKey: apiKey,
		Env:    env,
	})
	log.Info("honeybadger error reporting is enabled")

	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				honeybadger.Notify(fmt.Sprintf("Panic: %s %s", c.Request.Method, c.Request.URL.Path),
					c.Request, honeybadger.Context{"stack": string(debug.Stack())}, honeybadger.Tags{"panic", "http"})
				log.WithField("panic", rec).Error("recovered from panic, notified honeybadger")
				panic(rec) // gin.Recovery writes the response
			}
		}()

		c.Next()

		if status := c.Writer.Status(); status >= 500 {
			honeybadger.Notify(fmt.Sprintf("Error: HTTP %d: %s %s", status, c.Request.Method, c.Request.URL.Path),
				c.Request, honeybadger.Context{"errors": c.Errors.String()}, honeybadger.Tags{"5XX", "http"})
		}
	}
}

// RequestTimeout sets a per-request context deadline. Handlers must honour
// ctx.Done(); a timed-out request that wrote nothing gets a 504.
func RequestTimeout(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			response.Abort(c, ErrRequestTimeout)
		}
	}
}

// BodyLimit caps request bodies at n bytes; larger uploads fail while parsing.
func BodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
