package apis

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Console message types sent by the control pad.
const (
	ConsolePress      = "press"
	ConsoleRelease    = "release"
	ConsoleSpeed      = "speed"
	ConsoleConnect    = "connect"
	ConsoleDisconnect = "disconnect"
	ConsoleRgb        = "rgb"
	ConsoleBuzzer     = "buzzer"
	ConsoleUltrasonic = "ultrasonic"
)

// ConsoleEvent is one input from the control pad.
type ConsoleEvent struct {
	Type   string `json:"type"`
	Button string `json:"button,omitempty"`
	Value  int    `json:"value,omitempty"`
	Host   string `json:"host,omitempty"`
	Port   int    `json:"port,omitempty"`
	Status int    `json:"status,omitempty"`
	Color  int    `json:"color,omitempty"`
}

type consoleStatus struct {
	Type      string `json:"type"`
	Connected bool   `json:"connected"`
	Message   string `json:"message"`
}

type consoleDistance struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

type consoleLog struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Console serves the control pad over a websocket. Only one pad is attached
// at a time; a new connection replaces the previous one.
type Console struct {
	upgrader  websocket.Upgrader
	log       *zap.SugaredLogger
	events    chan ConsoleEvent
	broadcast chan []byte
	done      chan struct{}
	closeOnce sync.Once

	mu     sync.Mutex
	active *websocket.Conn
}

// NewConsole creates a console accepting connections from the request's own
// host and from the listed origins.
func NewConsole(origins []string, logger *zap.SugaredLogger) *Console {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	c := &Console{
		log:       logger.Named("console"),
		events:    make(chan ConsoleEvent, 16),
		broadcast: make(chan []byte, 32),
		done:      make(chan struct{}),
	}
	c.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header["Origin"]
			if len(origin) == 0 {
				return true
			}
			if allowed[origin[0]] {
				return true
			}
			u, err := url.Parse(origin[0])
			if err != nil {
				return false
			}
			return u.Host == r.Host
		},
	}
	go c.writer()
	return c
}

// Events delivers pad input in arrival order.
func (c *Console) Events() <-chan ConsoleEvent {
	return c.events
}

func (c *Console) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.log.Warnf("websocket upgrade failed: %v", err)
		return
	}
	c.mu.Lock()
	if c.active != nil {
		c.log.Infof("closing previous console %s", c.active.RemoteAddr())
		c.active.Close()
	}
	c.active = conn
	c.mu.Unlock()
	c.log.Infof("console attached from %s", conn.RemoteAddr())

	defer func() {
		conn.Close()
		c.mu.Lock()
		if c.active == conn {
			c.active = nil
		}
		c.mu.Unlock()
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			c.log.Debugf("websocket read failed: %v", err)
			return
		}
		var ev ConsoleEvent
		if err := json.Unmarshal(message, &ev); err != nil {
			c.log.Warnf("could not unmarshal console message: %v", err)
			continue
		}
		select {
		case c.events <- ev:
		case <-c.done:
			return
		}
	}
}

func (c *Console) writer() {
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.broadcast:
			c.mu.Lock()
			conn := c.active
			c.mu.Unlock()
			if conn == nil {
				c.log.Debugf("no console attached, discarding %s", msg)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.log.Warnf("websocket write failed: %v", err)
			}
		}
	}
}

func (c *Console) push(v interface{}) {
	msg, err := json.Marshal(v)
	if err != nil {
		c.log.Errorf("could not marshal console message: %v", err)
		return
	}
	select {
	case c.broadcast <- msg:
	default:
		c.log.Warnf("console backlog full, dropping %s", msg)
	}
}

func (c *Console) Status(connected bool, message string) {
	c.push(consoleStatus{Type: "status", Connected: connected, Message: message})
}

func (c *Console) Distance(value int) {
	c.push(consoleDistance{Type: "distance", Value: value})
}

func (c *Console) Log(message string) {
	c.push(consoleLog{Type: "log", Message: message})
}

// Close detaches the current pad and stops the writer.
func (c *Console) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		if c.active != nil {
			c.active.Close()
		}
		c.mu.Unlock()
	})
}
