package transport

import (
	"context"
	"net"
	"strconv"
)

const (
	// MinPort is 0, which lets the kernel pick a free port
	MinPort = 0
	// MaxPort defines the maximum valid port number
	MaxPort = 65535
)

// Server defines the interface for transport servers
type Server interface {
	// Run starts the server and blocks until it stops
	Run() error
	// Shutdown gracefully shuts down the server
	Shutdown(context.Context) error
}

// ValidateAddress reports whether addr is a "host:port" or ":port" listen address
func ValidateAddress(addr string) bool {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return false
	}
	if host != "" && !isValidHost(host) {
		return false
	}

	p, err := strconv.Atoi(port)
	return err == nil && p >= MinPort && p <= MaxPort
}

// isValidHost accepts IP addresses and plain host names
func isValidHost(host string) bool {
	if net.ParseIP(host) != nil {
		return true
	}
	if len(host) > 253 {
		return false
	}

	for i, r := range host {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.':
		case r == '-' && i != 0 && i != len(host)-1:
		default:
			return false
		}
	}
	return true
}
