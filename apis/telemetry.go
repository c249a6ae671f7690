package apis

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/donovanhide/eventsource"
	"go.uber.org/zap"
)

const telemetryChannel = "robot"

// Telemetry event names.
const (
	TelemetryStatus   = "status"
	TelemetryDistance = "distance"
	TelemetryMessage  = "message"
)

type telemetryEvent struct {
	id    string
	event string
	data  string
}

func (e telemetryEvent) Id() string    { return e.id }
func (e telemetryEvent) Event() string { return e.event }
func (e telemetryEvent) Data() string  { return e.data }

// Telemetry streams robot status and responses as server-sent events.
type Telemetry struct {
	srv *eventsource.Server
	log *zap.SugaredLogger

	mu     sync.Mutex
	lastID uint64
	closed bool
}

func NewTelemetry(logger *zap.SugaredLogger) *Telemetry {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	logger = logger.Named("telemetry")
	srv := eventsource.NewServer()
	srv.AllowCORS = true
	srv.Logger = zap.NewStdLog(logger.Desugar())
	return &Telemetry{srv: srv, log: logger}
}

func (t *Telemetry) Handler() http.HandlerFunc {
	return t.srv.Handler(telemetryChannel)
}

func (t *Telemetry) publish(event, data string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.lastID++
	t.srv.Publish([]string{telemetryChannel}, telemetryEvent{
		id:    strconv.FormatUint(t.lastID, 10),
		event: event,
		data:  data,
	})
}

func (t *Telemetry) Status(connected bool, message string) {
	data, err := json.Marshal(struct {
		Connected bool   `json:"connected"`
		Message   string `json:"message"`
	}{connected, message})
	if err != nil {
		t.log.Errorf("could not marshal status: %v", err)
		return
	}
	t.publish(TelemetryStatus, string(data))
}

func (t *Telemetry) Distance(value int) {
	t.publish(TelemetryDistance, strconv.Itoa(value))
}

func (t *Telemetry) Message(message string) {
	t.publish(TelemetryMessage, message)
}

func (t *Telemetry) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	t.srv.Close()
}
