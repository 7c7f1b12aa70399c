// Package netx contains small network helpers.
package netx

import (
	"fmt"
	"net"
)

// FindFreePort probes TCP ports starting at start and returns the first one
// that can be bound, trying at most maxTries ports. The probe listener is
// closed before returning, so the caller binds the port itself; another
// process can in principle grab it in between, which is acceptable for a
// development convenience.
func FindFreePort(start, maxTries int) (int, error) {
	for port := start; port < start+maxTries; port++ {
		l, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			continue
		}
		l.Close()
		return port, nil
	}
	return 0, fmt.Errorf("no free port in range %d-%d", start, start+maxTries-1)
}
