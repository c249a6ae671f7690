package comm

func NewMotorCommand(m Motor, direction Direction, speed int) Command {
	return Command{command: motor, motor: m, direction: direction, speed: speed}
}

// NewStopCommand returns the command that halts motor m.
func NewStopCommand(m Motor) Command {
	return NewMotorCommand(m, Forward, 0)
}

func NewServoCommand(servoNumber, angle int) Command {
	return Command{command: servo, index: servoNumber, angle: angle}
}

func NewRgbAllCommand(status Status, color Color) Command {
	return Command{command: rgbAll, status: status, color: color}
}

func NewRgbIndividualCommand(ledNumber int, status Status, color Color) Command {
	return Command{command: rgbIndividual, index: ledNumber, status: status, color: color}
}

func NewRgbAllBrightnessCommand(r, g, b int) Command {
	return Command{command: rgbAllBrightness, r: r, g: g, b: b}
}

func NewRgbIndividualBrightnessCommand(ledNumber, r, g, b int) Command {
	return Command{command: rgbIndividualBrightness, index: ledNumber, r: r, g: g, b: b}
}

func NewBuzzerCommand(status Status) Command {
	return Command{command: buzzer, status: status}
}

func NewUltrasonicCommand(status Status) Command {
	return Command{command: ultrasonic, status: status}
}

func NewReadUltrasonicCommand() Command {
	return Command{command: ultrasonicRead}
}

func NewReadInfraredSensorCommand() Command {
	return Command{command: infraredSensor}
}

func NewReadInfraredCodeCommand() Command {
	return Command{command: infraredCode}
}
