package comm

import (
	"encoding/json"
	"math"
)

// ReadUltrasonic is the command name the robot uses when answering a
// distance request.
const ReadUltrasonic = "READ_ULTRASONIC"

type Router struct {
	onMessage  []func(string)
	onDistance []func(int)
}

func (r *Router) OnMessage(f func(message string)) {
	r.onMessage = append(r.onMessage, f)
}

func (r *Router) OnDistance(f func(distance int)) {
	r.onDistance = append(r.onDistance, f)
}

// Route parses a response record and dispatches it. Records that are not
// JSON objects are dropped.
func (r *Router) Route(record string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(record), &fields); err != nil || fields == nil {
		return
	}
	if distance, ok := parseDistance(fields); ok {
		for _, f := range r.onDistance {
			f(distance)
		}
		return
	}
	for _, f := range r.onMessage {
		f(record)
	}
}

func parseDistance(fields map[string]json.RawMessage) (int, bool) {
	var command string
	if raw, ok := fields["command"]; !ok || json.Unmarshal(raw, &command) != nil || command != ReadUltrasonic {
		return 0, false
	}
	raw, ok := fields["distance"]
	if !ok {
		return 0, false
	}
	var distance float64
	if err := json.Unmarshal(raw, &distance); err != nil {
		return 0, false
	}
	return int(math.Trunc(distance)), true
}
