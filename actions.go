package main

import (
	"fmt"

	"github.com/thiefmaster/raspbot/apis"
	"github.com/thiefmaster/raspbot/comm"
	"github.com/thiefmaster/raspbot/motion"
)

func (s *appState) handleConsoleEvent(ev apis.ConsoleEvent) {
	switch ev.Type {
	case apis.ConsolePress:
		g, err := motion.ParseGesture(ev.Button)
		if err != nil {
			s.log.Warnf("ignoring press: %v", err)
			return
		}
		s.scheduler.Press(g)
	case apis.ConsoleRelease:
		// any release stops every motor, whatever button it came from
		s.scheduler.Release()
	case apis.ConsoleSpeed:
		s.scheduler.SetSpeed(ev.Value)
	case apis.ConsoleConnect:
		s.connect(ev.Host, ev.Port)
	case apis.ConsoleDisconnect:
		s.client.Disconnect()
	case apis.ConsoleRgb:
		s.deviceCommand("rgb", s.client.ControlRgbAll(comm.Status(ev.Status), comm.Color(ev.Color)))
	case apis.ConsoleBuzzer:
		s.deviceCommand("buzzer", s.client.ControlBuzzer(comm.Status(ev.Status)))
	case apis.ConsoleUltrasonic:
		s.deviceCommand("ultrasonic read", s.client.RequestUltrasonicDistance())
	default:
		s.log.Warnf("unknown console message type %q", ev.Type)
	}
}

func (s *appState) deviceCommand(name string, sent bool) {
	if !sent {
		s.console.Log(fmt.Sprintf("%s: not connected to robot", name))
	}
}

// connect falls back to the configured address for empty fields.
func (s *appState) connect(host string, port int) {
	if host == "" {
		host = s.config.Robot.Host
	}
	if port == 0 {
		port = s.config.Robot.Port
	}
	if s.client.Connect(host, port) {
		s.console.Status(s.client.IsConnected(), fmt.Sprintf("connecting to %s:%d", host, port))
	}
}

func (s *appState) robotConnected() {
	s.console.Status(true, "connected to robot")
	s.telemetry.Status(true, "connected to robot")
}

func (s *appState) robotDisconnected() {
	s.scheduler.Reset()
	s.console.Status(false, "disconnected from robot")
	s.telemetry.Status(false, "disconnected from robot")
}

func (s *appState) robotFailed(description string) {
	s.scheduler.Reset()
	s.log.Warnf("robot connection error: %s", description)
	msg := "connection error: " + description
	s.console.Status(false, msg)
	s.telemetry.Status(false, msg)
}

func (s *appState) robotMessage(message string) {
	s.console.Log(message)
	s.telemetry.Message(message)
}

func (s *appState) robotDistance(distance int) {
	s.log.Infof("ultrasonic distance: %d cm", distance)
	s.console.Distance(distance)
	s.telemetry.Distance(distance)
}
