package comm

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{NewMotorCommand(R1, Backward, 120), `{"endpoint":"/motor","motor_number":2,"direction":1,"speed":120}`},
		{NewStopCommand(L2), `{"endpoint":"/motor","motor_number":1,"direction":0,"speed":0}`},
		{NewServoCommand(1, 90), `{"endpoint":"/servo","servo_number":1,"angle":90}`},
		{NewRgbAllCommand(On, Red), `{"endpoint":"/rgb/all","status":1,"color":0}`},
		{NewRgbIndividualCommand(3, On, Indigo), `{"endpoint":"/rgb/individual","led_number":3,"status":1,"color":5}`},
		{NewRgbAllBrightnessCommand(10, 20, 30), `{"endpoint":"/rgb/brightness/all","r":10,"g":20,"b":30}`},
		{NewRgbIndividualBrightnessCommand(14, 1, 2, 3), `{"endpoint":"/rgb/brightness/individual","led_number":14,"r":1,"g":2,"b":3}`},
		{NewBuzzerCommand(Off), `{"endpoint":"/buzzer","status":0}`},
		{NewUltrasonicCommand(On), `{"endpoint":"/ultrasonic","status":1}`},
		{NewReadUltrasonicCommand(), `{"endpoint":"/ultrasonic/read"}`},
		{NewReadInfraredSensorCommand(), `{"endpoint":"/ir/sensor"}`},
		{NewReadInfraredCodeCommand(), `{"endpoint":"/ir/code"}`},
	}
	for _, tt := range tests {
		t.Run(tt.cmd.Endpoint(), func(t *testing.T) {
			got := Encode(tt.cmd)
			assert.JSONEq(t, tt.want, string(got))
			assert.False(t, bytes.ContainsAny(got, "\r\n"))

			decoded, err := Decode(got)
			require.NoError(t, err)
			assert.Equal(t, tt.cmd, decoded)
		})
	}
}

func TestEncodeIsSelfDescribing(t *testing.T) {
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(Encode(NewMotorCommand(L1, Forward, 255)), &fields))
	assert.Equal(t, map[string]interface{}{
		"endpoint":     "/motor",
		"motor_number": float64(0),
		"direction":    float64(0),
		"speed":        float64(255),
	}, fields)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte(`{"endpoint":"/laser"}`))
	assert.ErrorIs(t, err, ErrUnknownEndpoint)

	_, err = Decode([]byte(`{"endpoint":`))
	assert.Error(t, err)
}
