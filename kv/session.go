package kv

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// Session stores values in a named cookie session of the current request.
// Every write saves the session, so the response carries the new cookie.
// Requires the echo-contrib session middleware.
type Session struct {
	c    echo.Context
	name string
}

// NewSession binds a Storage to the session called name on c.
func NewSession(c echo.Context, name string) *Session {
	return &Session{c: c, name: name}
}

func (s *Session) Get(key string) (string, bool, error) {
	sess, err := session.Get(s.name, s.c)
	if err != nil {
		return "", false, err
	}
	v, ok := sess.Values[key].(string)
	return v, ok, nil
}

func (s *Session) Set(key, value string) error {
	sess, err := session.Get(s.name, s.c)
	if err != nil {
		return err
	}
	sess.Values[key] = value
	return sess.Save(s.c.Request(), s.c.Response())
}

func (s *Session) Remove(key string) error {
	sess, err := session.Get(s.name, s.c)
	if err != nil {
		return err
	}
	if _, ok := sess.Values[key]; !ok {
		return nil
	}
	delete(sess.Values, key)
	return sess.Save(s.c.Request(), s.c.Response())
}
