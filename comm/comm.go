package comm

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

type eventKind int

const (
	linkUp eventKind = iota
	dataReceived
	linkClosed
	linkFailed
)

// Event is produced by the transport goroutines. It must be passed back to
// Client.Handle on the goroutine that owns the client.
type Event struct {
	kind    eventKind
	attempt *attempt
	link    *link
	data    []byte
	err     error
}

type attempt struct {
	cancel context.CancelFunc
}

type link struct {
	conn io.ReadWriteCloser
	w    *bufio.Writer
}

type handler interface {
	connected()
	disconnected()
	failed(description string)
	record(record string)
}

// channel owns the robot transport. All methods except the background
// goroutines it starts must be called from a single goroutine.
type channel struct {
	dial    Dialer
	handler handler
	log     *zap.SugaredLogger
	events  chan Event
	done    chan struct{}
	once    sync.Once

	state   State
	attempt *attempt
	link    *link
	buf     []byte
}

func newChannel(dial Dialer, h handler, logger *zap.SugaredLogger) *channel {
	return &channel{
		dial:    dial,
		handler: h,
		log:     logger,
		events:  make(chan Event, 64),
		done:    make(chan struct{}),
	}
}

func (c *channel) post(ev Event) bool {
	select {
	case c.events <- ev:
		return true
	case <-c.done:
		return false
	}
}

// connect starts an asynchronous connection attempt. The result is reported
// through the events channel.
func (c *channel) connect(host string, port int) bool {
	switch c.state {
	case Connected:
		c.log.Debugf("already connected")
		return true
	case Connecting:
		c.log.Debugf("connection attempt already in progress")
		return true
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &attempt{cancel: cancel}
	c.attempt = a
	c.state = Connecting
	c.log.Infof("connecting to %s:%d", host, port)
	go func() {
		conn, err := c.dial(ctx, host, port)
		if err != nil {
			c.post(Event{kind: linkFailed, attempt: a, err: fmt.Errorf("could not connect to %s:%d: %w", host, port, err)})
			return
		}
		l := &link{conn: conn, w: bufio.NewWriter(conn)}
		if !c.post(Event{kind: linkUp, attempt: a, link: l}) {
			conn.Close()
		}
	}()
	return true
}

func (c *channel) disconnect() {
	switch c.state {
	case Connecting:
		c.attempt.cancel()
		c.attempt = nil
		c.state = Disconnected
		c.log.Infof("connection attempt cancelled")
		c.handler.disconnected()
	case Connected:
		c.teardown()
		c.log.Infof("disconnected")
		c.handler.disconnected()
	}
}

func (c *channel) close() {
	c.disconnect()
	c.once.Do(func() { close(c.done) })
}

func (c *channel) teardown() {
	if c.link != nil {
		c.link.conn.Close()
		c.link = nil
	}
	if c.attempt != nil {
		c.attempt.cancel()
		c.attempt = nil
	}
	c.buf = nil
	c.state = Disconnected
}

func (c *channel) handle(ev Event) {
	switch ev.kind {
	case linkUp:
		if ev.attempt != c.attempt || c.state != Connecting {
			ev.link.conn.Close()
			return
		}
		c.attempt.cancel()
		c.attempt = nil
		c.link = ev.link
		c.state = Connected
		c.log.Infof("connected")
		go c.readLoop(ev.link)
		c.handler.connected()
	case linkFailed:
		if ev.attempt != nil {
			if ev.attempt != c.attempt {
				return
			}
		} else if ev.link == nil || ev.link != c.link {
			return
		}
		c.teardown()
		c.log.Warnf("transport error: %v", ev.err)
		c.handler.failed(ev.err.Error())
	case linkClosed:
		if ev.link != c.link {
			return
		}
		c.teardown()
		c.log.Infof("connection closed by peer")
		c.handler.disconnected()
	case dataReceived:
		if ev.link != c.link {
			return
		}
		c.feed(ev.data)
	}
}

func (c *channel) readLoop(l *link) {
	buf := make([]byte, 4096)
	for {
		n, err := l.conn.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			if !c.post(Event{kind: dataReceived, link: l, data: data}) {
				return
			}
		}
		if err != nil {
			kind := linkFailed
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
				kind = linkClosed
			}
			c.post(Event{kind: kind, link: l, err: err})
			return
		}
	}
}

// send writes one newline terminated record. It fails without side effects
// when the channel is not connected.
func (c *channel) send(data []byte) bool {
	if c.state != Connected {
		c.log.Warnf("not connected, dropping %s", data)
		return false
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data[:len(data):len(data)], '\n')
	}
	_, err := c.link.w.Write(data)
	if err == nil {
		err = c.link.w.Flush()
	}
	if err != nil {
		c.teardown()
		c.log.Warnf("write failed: %v", err)
		c.handler.failed(err.Error())
		return false
	}
	c.log.Debugf("sent %s", bytes.TrimSpace(data))
	return true
}

// feed appends incoming bytes to the assembly buffer and hands every
// complete record to the handler.
func (c *channel) feed(data []byte) {
	c.buf = append(c.buf, data...)
	for {
		i := bytes.IndexByte(c.buf, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimSpace(string(c.buf[:i]))
		c.buf = c.buf[i+1:]
		if len(line) > 0 {
			c.log.Debugf("received %s", line)
			c.handler.record(line)
		}
	}
	if len(c.buf) == 0 {
		c.buf = nil
	}
}
