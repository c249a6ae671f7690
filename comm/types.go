package comm

type commandKind int

// commandKind values
const (
	invalid commandKind = iota
	motor
	servo
	rgbAll
	rgbIndividual
	rgbAllBrightness
	rgbIndividualBrightness
	buzzer
	ultrasonic
	ultrasonicRead
	infraredSensor
	infraredCode
)

var endpoints = map[commandKind]string{
	motor:                   "/motor",
	servo:                   "/servo",
	rgbAll:                  "/rgb/all",
	rgbIndividual:           "/rgb/individual",
	rgbAllBrightness:        "/rgb/brightness/all",
	rgbIndividualBrightness: "/rgb/brightness/individual",
	buzzer:                  "/buzzer",
	ultrasonic:              "/ultrasonic",
	ultrasonicRead:          "/ultrasonic/read",
	infraredSensor:          "/ir/sensor",
	infraredCode:            "/ir/code",
}

// Motor identifies one of the four wheel motors.
type Motor int

const (
	L1 Motor = iota // front left
	L2              // rear left
	R1              // front right
	R2              // rear right
)

// Motors lists the wheel motors in dispatch order.
var Motors = [4]Motor{L1, L2, R1, R2}

func (m Motor) String() string {
	switch m {
	case L1:
		return "L1"
	case L2:
		return "L2"
	case R1:
		return "R1"
	case R2:
		return "R2"
	}
	return "unknown"
}

type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

type Status int

const (
	Off Status = iota
	On
)

type Color int

const (
	Red Color = iota
	Green
	Blue
	Yellow
	Purple
	Indigo
	White
	ColorOff
)

// MaxSpeed is the highest speed a motor command can carry.
const MaxSpeed = 255

// Command is a single device-control request. Only the fields belonging to
// its kind are meaningful; the zero value is not a valid command.
type Command struct {
	command   commandKind
	motor     Motor
	direction Direction
	speed     int
	index     int
	angle     int
	status    Status
	color     Color
	r, g, b   int
}

// Endpoint returns the server endpoint the command targets.
func (c Command) Endpoint() string {
	return endpoints[c.command]
}

func (c Command) Motor() Motor         { return c.motor }
func (c Command) Direction() Direction { return c.direction }
func (c Command) Speed() int           { return c.speed }

// IsMotor reports whether c is a motor command.
func (c Command) IsMotor() bool {
	return c.command == motor
}
