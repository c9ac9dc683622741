package content

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ValidationError reports a record rejected before it reached a store.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("content: %s %s", e.Field, e.Msg)
}

// env holds the collaborators shared by all repositories.
type env struct {
	log   *zap.Logger
	newID func() string
	now   func() time.Time
}

// Facade groups the four content repositories behind one value. Pages take
// what they need from it without knowing which store backs each type.
type Facade struct {
	Blog     *BlogRepository
	Careers  *CareerRepository
	Work     *WorkRepository
	Services *ServiceRepository
}

// RemoteAPI is everything the server-backed repositories need.
type RemoteAPI interface {
	WorkAPI
	ServiceAPI
}

type facadeOptions struct {
	env      env
	fixtures *Fixtures
}

// Option configures a Facade.
type Option func(*facadeOptions)

// WithLogger sets the logger used for degraded reads and failed writes.
func WithLogger(l *zap.Logger) Option {
	return func(o *facadeOptions) { o.env.log = l }
}

// WithIDFunc replaces the id generator for new records.
func WithIDFunc(fn func() string) Option {
	return func(o *facadeOptions) { o.env.newID = fn }
}

// WithClock replaces the clock used for default dates.
func WithClock(fn func() time.Time) Option {
	return func(o *facadeOptions) { o.env.now = fn }
}

// WithFixtures seeds the fixture-backed repositories with fx instead of the
// embedded data.
func WithFixtures(fx Fixtures) Option {
	return func(o *facadeOptions) { o.fixtures = &fx }
}

// NewFacade builds the repositories. Fixture-backed ones are seeded once,
// from the embedded files unless WithFixtures is given.
func NewFacade(api RemoteAPI, opts ...Option) (*Facade, error) {
	o := facadeOptions{
		env: env{
			log:   zap.NewNop(),
			newID: NewID,
			now:   time.Now,
		},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fixtures == nil {
		fx, err := LoadFixtures()
		if err != nil {
			return nil, err
		}
		o.fixtures = &fx
	}

	e := &o.env
	return &Facade{
		Blog:     newBlogRepository(o.fixtures.Posts, e),
		Careers:  newCareerRepository(o.fixtures.Jobs, e),
		Work:     &WorkRepository{api: api, env: e},
		Services: &ServiceRepository{api: api, env: e},
	}, nil
}
