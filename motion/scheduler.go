// Package motion turns directional button gestures into paced motor
// command bursts.
package motion

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/thiefmaster/raspbot/comm"
)

type Gesture int

const (
	Forward Gesture = iota
	Backward
	Left
	Right
)

func (g Gesture) String() string {
	switch g {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("gesture(%d)", int(g))
}

func ParseGesture(s string) (Gesture, error) {
	switch strings.ToLower(s) {
	case "forward":
		return Forward, nil
	case "backward":
		return Backward, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown gesture %q", s)
}

// directions per motor, in comm.Motors order
var gestureDirections = map[Gesture][4]comm.Direction{
	Forward:  {comm.Forward, comm.Forward, comm.Forward, comm.Forward},
	Backward: {comm.Backward, comm.Backward, comm.Backward, comm.Backward},
	Left:     {comm.Backward, comm.Backward, comm.Forward, comm.Forward},
	Right:    {comm.Forward, comm.Forward, comm.Backward, comm.Backward},
}

// Sender is the part of the robot connection the scheduler drives.
type Sender interface {
	IsConnected() bool
	Send(cmd comm.Command) bool
}

// Scheduler queues the motor commands of the current gesture and releases
// them one per pacer tick. A release drops whatever is left and stops all
// motors without waiting for the pacer.
//
// Scheduler is not safe for concurrent use; Press, Release, Tick and
// SetSpeed must all run on the same goroutine.
type Scheduler struct {
	sender Sender
	pacer  Pacer
	log    *zap.SugaredLogger
	queue  []comm.Command
	speed  int
}

func NewScheduler(sender Sender, pacer Pacer, speed int, logger *zap.SugaredLogger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Scheduler{
		sender: sender,
		pacer:  pacer,
		log:    logger.Named("motion"),
		speed:  clampSpeed(speed),
	}
}

func clampSpeed(v int) int {
	if v < 0 {
		return 0
	}
	if v > comm.MaxSpeed {
		return comm.MaxSpeed
	}
	return v
}

// Press replaces the queue with the commands for g. The first command goes
// out immediately when the pacer is idle.
func (s *Scheduler) Press(g Gesture) {
	if !s.sender.IsConnected() {
		return
	}
	directions, ok := gestureDirections[g]
	if !ok {
		s.log.Warnf("ignoring unknown gesture %v", g)
		return
	}
	s.log.Debugf("%v pressed, speed %d", g, s.speed)
	s.queue = s.queue[:0]
	for i, m := range comm.Motors {
		s.queue = append(s.queue, comm.NewMotorCommand(m, directions[i], s.speed))
	}
	if !s.pacer.Active() {
		s.pacer.Start()
		s.Tick()
	}
}

// Release stops all motors right away, bypassing the pacer.
func (s *Scheduler) Release() {
	if !s.sender.IsConnected() {
		return
	}
	s.log.Debugf("released, stopping motors")
	s.queue = s.queue[:0]
	for _, m := range comm.Motors {
		s.queue = append(s.queue, comm.NewStopCommand(m))
	}
	s.pacer.Stop()
	for len(s.queue) > 0 {
		cmd := s.queue[0]
		s.queue = s.queue[1:]
		s.sender.Send(cmd)
	}
}

// Tick sends the next queued command, or stops the pacer when there is
// nothing left.
func (s *Scheduler) Tick() {
	if len(s.queue) == 0 {
		s.pacer.Stop()
		return
	}
	cmd := s.queue[0]
	s.queue = s.queue[1:]
	s.sender.Send(cmd)
}

// Reset drops queued commands without sending anything. Used when the
// connection goes away.
func (s *Scheduler) Reset() {
	s.queue = s.queue[:0]
	s.pacer.Stop()
}

// SetSpeed changes the speed used by future presses. Queued commands keep
// the speed they were created with.
func (s *Scheduler) SetSpeed(v int) {
	s.speed = clampSpeed(v)
	s.log.Debugf("speed set to %d", s.speed)
}

func (s *Scheduler) Speed() int {
	return s.speed
}

// Pending returns a copy of the queued commands.
func (s *Scheduler) Pending() []comm.Command {
	return append([]comm.Command(nil), s.queue...)
}
