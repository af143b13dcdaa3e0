package clock

import (
	"fmt"
	"sync"
	"time"

	"github.com/shidoapp/shido/internal/model"
)

// Clock supplies the current instant in the user's local zone. Today must
// always equal model.DateOf(Now()).
type Clock interface {
	Now() time.Time
	Today() model.Date
}

// LoadLocation resolves an IANA zone name. Empty and "Local" mean the
// system zone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

type System struct {
	loc *time.Location
}

func NewSystem(timezone string) (*System, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &System{loc: loc}, nil
}

func (c *System) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *System) Today() model.Date {
	return model.DateOf(c.Now())
}

func (c *System) Location() *time.Location {
	return c.loc
}

// Fixed is a settable clock for tests and replays.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now}
}

func (c *Fixed) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Fixed) Today() model.Date {
	return model.DateOf(c.Now())
}

func (c *Fixed) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *Fixed) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
