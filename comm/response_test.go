package comm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func routeAll(records ...string) (messages []string, distances []int) {
	var r Router
	r.OnMessage(func(m string) { messages = append(messages, m) })
	r.OnDistance(func(d int) { distances = append(distances, d) })
	for _, rec := range records {
		r.Route(rec)
	}
	return messages, distances
}

func TestRouteDistance(t *testing.T) {
	messages, distances := routeAll(`{"command":"READ_ULTRASONIC","distance":37}`)
	assert.Equal(t, []int{37}, distances)
	assert.Empty(t, messages)
}

func TestRouteRawMessages(t *testing.T) {
	records := []string{
		`{"command":"READ_ULTRASONIC"}`,
		`{"command":"READ_ULTRASONIC","distance":"far"}`,
		`{"command":"MOTOR","status":"ok"}`,
		`{"distance":12}`,
	}
	messages, distances := routeAll(records...)
	assert.Equal(t, records, messages)
	assert.Empty(t, distances)
}

func TestRouteDropsMalformed(t *testing.T) {
	messages, distances := routeAll(
		`{"command":"READ_ULTRA`,
		`[1,2,3]`,
		`"READ_ULTRASONIC"`,
		`null`,
		`garbage`,
		``,
	)
	assert.Empty(t, messages)
	assert.Empty(t, distances)
}

func TestRouteFractionalDistance(t *testing.T) {
	_, distances := routeAll(`{"command":"READ_ULTRASONIC","distance":41.8}`)
	assert.Equal(t, []int{41}, distances)
}
