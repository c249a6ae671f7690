package comm

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownEndpoint = errors.New("unknown endpoint")

type motorPayload struct {
	Endpoint    string `json:"endpoint"`
	MotorNumber int    `json:"motor_number"`
	Direction   int    `json:"direction"`
	Speed       int    `json:"speed"`
}

type servoPayload struct {
	Endpoint    string `json:"endpoint"`
	ServoNumber int    `json:"servo_number"`
	Angle       int    `json:"angle"`
}

type rgbAllPayload struct {
	Endpoint string `json:"endpoint"`
	Status   int    `json:"status"`
	Color    int    `json:"color"`
}

type rgbIndividualPayload struct {
	Endpoint  string `json:"endpoint"`
	LedNumber int    `json:"led_number"`
	Status    int    `json:"status"`
	Color     int    `json:"color"`
}

type brightnessPayload struct {
	Endpoint string `json:"endpoint"`
	R        int    `json:"r"`
	G        int    `json:"g"`
	B        int    `json:"b"`
}

type individualBrightnessPayload struct {
	Endpoint  string `json:"endpoint"`
	LedNumber int    `json:"led_number"`
	R         int    `json:"r"`
	G         int    `json:"g"`
	B         int    `json:"b"`
}

type statusPayload struct {
	Endpoint string `json:"endpoint"`
	Status   int    `json:"status"`
}

type endpointPayload struct {
	Endpoint string `json:"endpoint"`
}

// wireCommand is the union of every field a command record can carry.
type wireCommand struct {
	Endpoint    string `json:"endpoint"`
	MotorNumber int    `json:"motor_number"`
	Direction   int    `json:"direction"`
	Speed       int    `json:"speed"`
	ServoNumber int    `json:"servo_number"`
	Angle       int    `json:"angle"`
	LedNumber   int    `json:"led_number"`
	Status      int    `json:"status"`
	Color       int    `json:"color"`
	R           int    `json:"r"`
	G           int    `json:"g"`
	B           int    `json:"b"`
}

func payloadFor(cmd Command) interface{} {
	endpoint := cmd.Endpoint()
	switch cmd.command {
	case motor:
		return motorPayload{endpoint, int(cmd.motor), int(cmd.direction), cmd.speed}
	case servo:
		return servoPayload{endpoint, cmd.index, cmd.angle}
	case rgbAll:
		return rgbAllPayload{endpoint, int(cmd.status), int(cmd.color)}
	case rgbIndividual:
		return rgbIndividualPayload{endpoint, cmd.index, int(cmd.status), int(cmd.color)}
	case rgbAllBrightness:
		return brightnessPayload{endpoint, cmd.r, cmd.g, cmd.b}
	case rgbIndividualBrightness:
		return individualBrightnessPayload{endpoint, cmd.index, cmd.r, cmd.g, cmd.b}
	case buzzer, ultrasonic:
		return statusPayload{endpoint, int(cmd.status)}
	default:
		return endpointPayload{endpoint}
	}
}

// Encode serializes cmd to a single-line JSON record without terminator.
func Encode(cmd Command) []byte {
	// payloads only hold strings and ints, so marshalling cannot fail
	data, _ := json.Marshal(payloadFor(cmd))
	return data
}

// Decode parses a command record produced by Encode.
func Decode(data []byte) (Command, error) {
	var w wireCommand
	if err := json.Unmarshal(data, &w); err != nil {
		return Command{}, fmt.Errorf("could not parse command: %w", err)
	}
	kind := invalid
	for k, endpoint := range endpoints {
		if endpoint == w.Endpoint {
			kind = k
			break
		}
	}
	switch kind {
	case motor:
		return NewMotorCommand(Motor(w.MotorNumber), Direction(w.Direction), w.Speed), nil
	case servo:
		return NewServoCommand(w.ServoNumber, w.Angle), nil
	case rgbAll:
		return NewRgbAllCommand(Status(w.Status), Color(w.Color)), nil
	case rgbIndividual:
		return NewRgbIndividualCommand(w.LedNumber, Status(w.Status), Color(w.Color)), nil
	case rgbAllBrightness:
		return NewRgbAllBrightnessCommand(w.R, w.G, w.B), nil
	case rgbIndividualBrightness:
		return NewRgbIndividualBrightnessCommand(w.LedNumber, w.R, w.G, w.B), nil
	case buzzer:
		return NewBuzzerCommand(Status(w.Status)), nil
	case ultrasonic:
		return NewUltrasonicCommand(Status(w.Status)), nil
	case ultrasonicRead:
		return NewReadUltrasonicCommand(), nil
	case infraredSensor:
		return NewReadInfraredSensorCommand(), nil
	case infraredCode:
		return NewReadInfraredCodeCommand(), nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownEndpoint, w.Endpoint)
}

func (c Command) String() string {
	return string(Encode(c))
}
