// Package wsc implements a WebSocket Client for Planetside 2's event
// streaming service, limited to the map-relevant event types.
package wsc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
	"github.com/brhumphe/ps2-map-analyzer-sub000/event"
)

func New(serviceID string, env ps2.Environment) *Client {
	return &Client{
		serviceID: serviceID,
		env:       env,
	}
}

type Client struct {
	conn       *websocket.Conn
	serviceID  string
	env        ps2.Environment
	serviceURL string
	err        chan error

	connectHandler          func()
	facilityControlHandlers []func(event.FacilityControl)
	continentLockHandlers   []func(event.ContinentLock)
	metagameHandlers        []func(event.MetagameEvent)
}

// SetURL allows overriding the default url for the event streaming service.
//
// This is useful for services like https://nanite-systems.net/ that
// wrap the official Census event streaming API.
// The serviceID and env from the constructor are ignored when a URL is set.
func (c *Client) SetURL(url string) {
	c.serviceURL = url
}

// SetConnectHandler sets a function h to be called upon connect success.
func (c *Client) SetConnectHandler(h func()) {
	c.connectHandler = h
}

// AddHandler registers a handler for one of the supported event types.
// It panics for any other function type;
// registration happens at startup where a panic is an immediate bug report.
func (c *Client) AddHandler(h any) {
	switch v := h.(type) {
	case func(event.FacilityControl):
		c.facilityControlHandlers = append(c.facilityControlHandlers, v)
	case func(event.ContinentLock):
		c.continentLockHandlers = append(c.continentLockHandlers, v)
	case func(event.MetagameEvent):
		c.metagameHandlers = append(c.metagameHandlers, v)
	default:
		panic(fmt.Sprintf("AddHandler: invalid type '%T'", h))
	}
}

// Run will connect and run the websocket client,
// blocking until ctx is cancelled or a connection error occurs.
//
// The returned error will be nil if the given context was cancelled or
// the deadline exceeded.
// Use [WithRetry] to reconnect on error.
func (c *Client) Run(ctx context.Context) error {
	ctx, shutdown := context.WithCancel(ctx)
	defer shutdown()
	url := c.url()
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	slog.Debug("dialing event service", "url", url)
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("wsc.Client.Run: unable to connect: %w", err)
	}
	defer conn.Close()
	c.conn = conn
	if c.connectHandler != nil {
		c.connectHandler()
	}
	c.err = make(chan error, 1)
	messages := make(chan rawMessage, 100)
	go c.handle(messages)
	go c.read(messages)

	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-c.err:
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Send writes a subscription message to the event push service.
//
// Example:
//
//	sub := wsc.Subscribe{}
//	sub.AddWorld(ps2.Emerald)
//	sub.MapEvents()
//	client.Send(sub)
func (c *Client) Send(cs commander) {
	b, err := json.Marshal(cs.command())
	if err != nil {
		slog.Error("error marshaling command to JSON", "error", err, "command", cs)
		return
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		c.exit(fmt.Errorf("write error: %w", err))
		return
	}
}

func (c *Client) read(messages chan<- rawMessage) {
	defer close(messages)
	for {
		m := rawMessage{}
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			c.exit(fmt.Errorf("read: %w", err))
			break
		}
		if err := json.Unmarshal(message, &m); err != nil {
			slog.Error("decoding JSON failed", "error", err, "raw", string(message))
			continue
		}
		messages <- m
	}
}

func (c *Client) handle(messages <-chan rawMessage) {
	for m := range messages {
		switch v := m.message().(type) {
		case event.FacilityControl:
			for _, h := range c.facilityControlHandlers {
				h(v)
			}
		case event.ContinentLock:
			for _, h := range c.continentLockHandlers {
				h(v)
			}
		case event.MetagameEvent:
			for _, h := range c.metagameHandlers {
				h(v)
			}
		}
	}
}

func (c *Client) url() string {
	if c.serviceURL != "" {
		return c.serviceURL
	}
	return fmt.Sprintf("wss://push.planetside2.com/streaming?environment=%s&service-id=s:%s", c.env, url.QueryEscape(c.serviceID))
}

// exit signals the client to stop with err.
func (c *Client) exit(err error) {
	select {
	case c.err <- err:
	default:
	}
}
