package wsc

import (
	"bytes"
	"fmt"
)

type service uint8

const (
	eventService service = iota
	push
)

var services = map[service]string{
	eventService: "event",
	push:         "push",
}

func (e *service) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, "\"")
	for ev, s := range services {
		if bytes.Equal(data, []byte(s)) {
			*e = ev
			return nil
		}
	}
	return fmt.Errorf("service.UnmarshalJSON: invalid value '%s' for service", data)
}
func (s service) String() string { return services[s] }

func (s service) MarshalJSON() ([]byte, error) { return []byte("\"" + s.String() + "\""), nil }

type messageType uint8

const (
	connectionStateChanged messageType = iota
	heartbeat
	serviceStateChanged
	serviceMessage
)

var messageTypes = map[messageType]string{
	connectionStateChanged: "connectionStateChanged",
	heartbeat:              "heartbeat",
	serviceMessage:         "serviceMessage",
	serviceStateChanged:    "serviceStateChanged",
}

func (mt *messageType) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, "\"")
	for ev, s := range messageTypes {
		if bytes.Equal(data, []byte(s)) {
			*mt = ev
			return nil
		}
	}
	return fmt.Errorf("messageType.UnmarshalJSON: invalid value '%s' for messageType", data)
}

func (mt messageType) String() string { return messageTypes[mt] }

type action uint8

const (
	subscribe action = iota
	clearSubscribe
)

func (a action) String() string {
	switch a {
	case subscribe:
		return "subscribe"
	case clearSubscribe:
		return "clearSubscribe"
	default:
		return ""
	}
}
func (a action) MarshalJSON() ([]byte, error) {
	return []byte("\"" + a.String() + "\""), nil
}
