package bolt

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/rs/dnscache"
)

// sharedResolver is the process-wide cached resolver backing every
// Address.Resolve call; dnscache.Resolver serializes its own refreshes
// internally, so one instance can safely be shared across connections
// instead of re-resolving on every dial.
var resolver dnscache.Resolver

func sharedResolver() *dnscache.Resolver { return &resolver }

// Address is a (host, port) pair awaiting resolution into concrete socket
// addresses.
type Address struct {
	Host string
	Port int
}

// NewAddress builds an Address from a host and port.
func NewAddress(host string, port int) *Address {
	return &Address{Host: host, Port: port}
}

// HostPort renders the address in "host:port" form for net.Dial.
func (a *Address) HostPort() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Resolve turns a.Host into an ordered list of 16-byte IPv6-mapped
// addresses, so callers can try each in turn. An empty result is reported
// as UnresolvedAddress.
func (a *Address) Resolve(ctx context.Context) ([]net.IP, error) {
	ips, err := sharedResolver().LookupHost(ctx, a.Host)
	if err != nil {
		return nil, NewError(UnresolvedAddress, err)
	}
	out := make([]net.IP, 0, len(ips))
	for _, s := range ips {
		ip := net.ParseIP(s)
		if ip == nil {
			continue
		}
		out = append(out, ip.To16())
	}
	if len(out) == 0 {
		return nil, ErrEmptyAddressList
	}
	return out, nil
}

func (a *Address) String() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}
