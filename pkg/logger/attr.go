package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Attribute keys shared by every package that logs.
const (
	KeyError     = "error"
	KeyErrors    = "errors"
	KeyIdentity  = "identity"
	KeyConnID    = "conn_id"
	KeyRequestID = "request_id"
	KeyClientIP  = "client_ip"
	KeyState     = "state"
	KeyEvent     = "event"
	KeyComponent = "component"
	KeyDuration  = "duration"
)

// Group nests attrs under name.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error logs err under "error". A nil error yields the empty Attr, which
// handlers drop, so it is safe to pass unconditionally.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(KeyError, err)
}

// Errors logs the non-nil errs as a group keyed by their argument position.
func Errors(errs ...error) slog.Attr {
	var attrs []slog.Attr
	for i, err := range errs {
		if err != nil {
			attrs = append(attrs, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(attrs) == 0 {
		return slog.Attr{}
	}
	return Group(KeyErrors, attrs...)
}

func Identity(identity string) slog.Attr { return slog.String(KeyIdentity, identity) }

// ConnID returns the empty Attr for an empty id.
func ConnID(id string) slog.Attr { return optional(KeyConnID, id) }

// RequestID returns the empty Attr for an empty id.
func RequestID(id string) slog.Attr { return optional(KeyRequestID, id) }

// ClientIP returns the empty Attr for an empty address.
func ClientIP(ip string) slog.Attr { return optional(KeyClientIP, ip) }

func State(name string) slog.Attr { return slog.String(KeyState, name) }

func Event(name string) slog.Attr { return slog.String(KeyEvent, name) }

func Component(name string) slog.Attr { return slog.String(KeyComponent, name) }

func Duration(d time.Duration) slog.Attr { return slog.Duration(KeyDuration, d) }

func optional(key, value string) slog.Attr {
	if value == "" {
		return slog.Attr{}
	}
	return slog.String(key, value)
}
