package apis

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/donovanhide/eventsource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestTelemetryStream(t *testing.T) {
	telemetry := NewTelemetry(zaptest.NewLogger(t).Sugar())
	srv := httptest.NewServer(telemetry.Handler())
	defer srv.Close()
	defer telemetry.Close()

	stream, err := eventsource.Subscribe(srv.URL, "")
	require.NoError(t, err)
	defer stream.Close()

	telemetry.Status(false, "connection refused")
	telemetry.Distance(37)
	telemetry.Message(`{"command":"IR","value":1}`)

	want := []struct{ id, event, data string }{
		{"1", TelemetryStatus, `{"connected":false,"message":"connection refused"}`},
		{"2", TelemetryDistance, "37"},
		{"3", TelemetryMessage, `{"command":"IR","value":1}`},
	}
	for _, w := range want {
		select {
		case ev := <-stream.Events:
			assert.Equal(t, w.id, ev.Id())
			assert.Equal(t, w.event, ev.Event())
			assert.Equal(t, w.data, ev.Data())
		case <-time.After(2 * time.Second):
			t.Fatalf("no %s event", w.event)
		}
	}
}

func TestTelemetryPublishAfterClose(t *testing.T) {
	telemetry := NewTelemetry(zaptest.NewLogger(t).Sugar())
	telemetry.Close()
	telemetry.Close()
	telemetry.Distance(1)
}

func TestHandlerRequiresCredentials(t *testing.T) {
	console := NewConsole(nil, quietLogger())
	defer console.Close()
	telemetry := NewTelemetry(zaptest.NewLogger(t).Sugar())
	defer telemetry.Close()

	srv := httptest.NewServer(NewHandler(console, telemetry, HTTPCredentials{Username: "pilot", Password: "s3cret"}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/ws", nil)
	require.NoError(t, err)
	req.SetBasicAuth("pilot", "s3cret")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	// authorized, but not a websocket handshake
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
