package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"product-details/internal/session"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	sessionKey      = "session"
)

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDKey)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// sessionMiddleware attaches the caller's selection session. With create
// set, a missing or stale cookie starts a new session; without it, the
// request simply carries no session.
func sessionMiddleware(store *session.Store, opts Options, create bool) gin.HandlerFunc {
	maxAge := int(opts.SessionTTL.Seconds())
	return func(c *gin.Context) {
		id, _ := c.Cookie(opts.SessionCookie)
		var (
			sess    *session.Session
			created bool
		)
		if create {
			sess, created = store.GetOrCreate(id)
		} else if found, ok := store.Get(id); ok {
			sess = found
		} else {
			c.Next()
			return
		}
		if created || maxAge > 0 {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(opts.SessionCookie, sess.ID, maxAge, "/", "", opts.SecureCookie, true)
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

// lookupSession is currentSession for routes that may run without one.
func lookupSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}
