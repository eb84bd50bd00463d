package wsc

import (
	"bytes"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
)

type commander interface {
	command() command
}

// Subscribe builds a subscription command for the push service.
type Subscribe struct {
	Events []ps2.Event
	Worlds []ps2.WorldID
}

func (s *Subscribe) AllWorlds() *Subscribe {
	s.Worlds = []ps2.WorldID{}
	return s
}
func (s *Subscribe) AddWorld(w ...ps2.WorldID) *Subscribe {
	s.Worlds = append(s.Worlds, w...)
	return s
}

// MapEvents subscribes to every event type that changes territory.
func (s *Subscribe) MapEvents() *Subscribe {
	s.Events = append(s.Events, ps2.FacilityControl, ps2.ContinentLock, ps2.Metagame)
	return s
}

func (s Subscribe) command() command {
	c := command{
		Action:  subscribe,
		Service: eventService,
	}

	// A nil slice (the default) leaves the field unset;
	// an explicitly empty slice means all.
	if s.Events != nil && len(s.Events) == 0 {
		c.EventNames = []string{"all"}
	} else {
		for _, e := range s.Events {
			c.EventNames = append(c.EventNames, e.EventName())
		}
	}
	if s.Worlds != nil && len(s.Worlds) == 0 {
		c.Worlds = []string{"all"}
	} else {
		for _, w := range s.Worlds {
			c.Worlds = append(c.Worlds, w.StringID())
		}
	}
	return c
}

type command struct {
	Action     action      `json:"action"`
	Service    service     `json:"service"`
	EventNames []string    `json:"eventNames,omitempty"`
	Worlds     []string    `json:"worlds,omitempty"`
	All        *stringBool `json:"all,omitempty"`
}

type stringBool bool

func (b stringBool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("\"true\""), nil
	}
	return []byte("\"false\""), nil
}
func (b *stringBool) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, "\"")
	if bytes.Equal(data, []byte("true")) {
		*b = true
	}
	return nil
}

func (c command) command() command { return c }

// ClearAll removes every active subscription on the connection.
var ClearAll = command{
	Service: eventService,
	Action:  clearSubscribe,
	All:     func(b bool) *stringBool { return (*stringBool)(&b) }(true),
}
