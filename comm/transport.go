package comm

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"

	"github.com/tarm/serial"
)

// Dialer opens the transport to the robot. It may block; the channel always
// calls it from its own goroutine.
type Dialer func(ctx context.Context, host string, port int) (io.ReadWriteCloser, error)

// TCPDialer connects to host:port over TCP.
func TCPDialer() Dialer {
	var d net.Dialer
	return func(ctx context.Context, host string, port int) (io.ReadWriteCloser, error) {
		conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
}

// SerialDialer opens the serial device named by host. The port argument is
// ignored; the line speed is fixed by baud.
func SerialDialer(baud int) Dialer {
	return func(ctx context.Context, host string, _ int) (io.ReadWriteCloser, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := serial.OpenPort(&serial.Config{Name: host, Baud: baud})
		if err != nil {
			return nil, fmt.Errorf("could not open serial port %s: %w", host, err)
		}
		return p, nil
	}
}
