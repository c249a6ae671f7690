package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/thiefmaster/raspbot/apis"
	"github.com/thiefmaster/raspbot/comm"
	"github.com/thiefmaster/raspbot/motion"
)

const (
	transportTCP    = "tcp"
	transportSerial = "serial"
)

type robotConfig struct {
	Transport   string
	Host        string
	Port        int
	Baud        int
	Autoconnect bool
}

type motionConfig struct {
	Speed    int
	Interval time.Duration
}

type consoleConfig struct {
	Listen      string
	Origins     []string
	Credentials apis.HTTPCredentials
}

type logConfig struct {
	Level string
}

type appConfig struct {
	Robot   robotConfig
	Motion  motionConfig
	Console consoleConfig
	Log     logConfig
}

func defaultConfig() appConfig {
	return appConfig{
		Robot: robotConfig{
			Transport: transportTCP,
			Host:      "192.168.0.133",
			Port:      8080,
			Baud:      115200,
		},
		Motion: motionConfig{
			Speed:    100,
			Interval: motion.DefaultInterval,
		},
		Console: consoleConfig{
			Listen: "127.0.0.1:8765",
		},
		Log: logConfig{
			Level: "info",
		},
	}
}

func (c *appConfig) load(path string) error {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not open config file: %w", err)
	}
	if err = yaml.UnmarshalStrict(yamlFile, c); err != nil {
		return fmt.Errorf("could not parse config file: %w", err)
	}
	return c.validate()
}

func (c *appConfig) validate() error {
	switch c.Robot.Transport {
	case transportTCP:
		if c.Robot.Port < 1 || c.Robot.Port > 65535 {
			return fmt.Errorf("invalid robot port %d", c.Robot.Port)
		}
	case transportSerial:
		if c.Robot.Baud <= 0 {
			return fmt.Errorf("invalid baud rate %d", c.Robot.Baud)
		}
	default:
		return fmt.Errorf("unknown transport %q", c.Robot.Transport)
	}
	if c.Robot.Host == "" {
		return fmt.Errorf("robot host is required")
	}
	if c.Motion.Interval <= 0 {
		return fmt.Errorf("motion interval must be positive, got %v", c.Motion.Interval)
	}
	if c.Motion.Speed < 0 {
		c.Motion.Speed = 0
	} else if c.Motion.Speed > comm.MaxSpeed {
		c.Motion.Speed = comm.MaxSpeed
	}
	return nil
}

func (c *appConfig) dialer() comm.Dialer {
	if c.Robot.Transport == transportSerial {
		return comm.SerialDialer(c.Robot.Baud)
	}
	return comm.TCPDialer()
}
