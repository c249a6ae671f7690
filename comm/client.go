package comm

import (
	"go.uber.org/zap"
)

// Client is the robot-side connection: it owns the framed channel, routes
// responses and offers one method per device endpoint.
//
// Client is not safe for concurrent use. Events() must be drained by the
// owning goroutine, which passes each value to Handle.
type Client struct {
	Router

	ch             *channel
	onConnected    []func()
	onDisconnected []func()
	onError        []func(string)
}

func NewClient(dial Dialer, logger *zap.SugaredLogger) *Client {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	c := &Client{}
	c.ch = newChannel(dial, c, logger.Named("channel"))
	return c
}

func (c *Client) OnConnected(f func()) {
	c.onConnected = append(c.onConnected, f)
}

func (c *Client) OnDisconnected(f func()) {
	c.onDisconnected = append(c.onDisconnected, f)
}

func (c *Client) OnError(f func(description string)) {
	c.onError = append(c.onError, f)
}

// Connect starts connecting to the robot. The returned value only tells
// whether the attempt was accepted; OnConnected or OnError report the
// outcome.
func (c *Client) Connect(host string, port int) bool {
	return c.ch.connect(host, port)
}

func (c *Client) Disconnect() {
	c.ch.disconnect()
}

// Close disconnects and stops all background goroutines.
func (c *Client) Close() {
	c.ch.close()
}

func (c *Client) IsConnected() bool {
	return c.ch.state == Connected
}

func (c *Client) State() State {
	return c.ch.state
}

func (c *Client) Events() <-chan Event {
	return c.ch.events
}

func (c *Client) Handle(ev Event) {
	c.ch.handle(ev)
}

// SendRaw writes an already encoded record.
func (c *Client) SendRaw(record []byte) bool {
	return c.ch.send(record)
}

func (c *Client) Send(cmd Command) bool {
	return c.ch.send(Encode(cmd))
}

func (c *Client) ControlMotor(m Motor, direction Direction, speed int) bool {
	return c.Send(NewMotorCommand(m, direction, speed))
}

func (c *Client) ControlServo(servoNumber, angle int) bool {
	return c.Send(NewServoCommand(servoNumber, angle))
}

func (c *Client) ControlRgbAll(status Status, color Color) bool {
	return c.Send(NewRgbAllCommand(status, color))
}

func (c *Client) ControlRgbIndividual(ledNumber int, status Status, color Color) bool {
	return c.Send(NewRgbIndividualCommand(ledNumber, status, color))
}

func (c *Client) SetRgbAllBrightness(r, g, b int) bool {
	return c.Send(NewRgbAllBrightnessCommand(r, g, b))
}

func (c *Client) SetRgbIndividualBrightness(ledNumber, r, g, b int) bool {
	return c.Send(NewRgbIndividualBrightnessCommand(ledNumber, r, g, b))
}

func (c *Client) ControlBuzzer(status Status) bool {
	return c.Send(NewBuzzerCommand(status))
}

func (c *Client) ControlUltrasonic(status Status) bool {
	return c.Send(NewUltrasonicCommand(status))
}

func (c *Client) RequestUltrasonicDistance() bool {
	return c.Send(NewReadUltrasonicCommand())
}

func (c *Client) RequestInfraredSensor() bool {
	return c.Send(NewReadInfraredSensorCommand())
}

func (c *Client) RequestInfraredCode() bool {
	return c.Send(NewReadInfraredCodeCommand())
}

func (c *Client) connected() {
	for _, f := range c.onConnected {
		f()
	}
}

func (c *Client) disconnected() {
	for _, f := range c.onDisconnected {
		f()
	}
}

func (c *Client) failed(description string) {
	for _, f := range c.onError {
		f(description)
	}
}

func (c *Client) record(record string) {
	c.Route(record)
}
