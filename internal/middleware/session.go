package middleware

import (
	"github.com/deppfellow/frontdesk/internal/database"
	"github.com/deppfellow/frontdesk/internal/server"
	"github.com/labstack/echo/v4"
)

// SessionKey is the Echo context key of the request's database session.
const SessionKey = "db_session"

// SessionMiddleware gives every request its own database session.
type SessionMiddleware struct {
	server *server.Server
}

func NewSessionMiddleware(s *server.Server) *SessionMiddleware {
	return &SessionMiddleware{server: s}
}

// Attach checks a connection out of the pool before the handler runs and
// returns it on every exit path, panics included.
func (sm *SessionMiddleware) Attach() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, err := sm.server.DB.Acquire(c.Request().Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := session.Release(); err != nil {
					GetLogger(c).Warn().Err(err).Msg("failed to release database session")
				}
			}()

			c.Set(SessionKey, session)
			return next(c)
		}
	}
}

// GetSession returns the request's database session, or nil when Attach
// did not run.
func GetSession(c echo.Context) *database.Session {
	if session, ok := c.Get(SessionKey).(*database.Session); ok {
		return session
	}
	return nil
}
