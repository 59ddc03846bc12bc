package arbiter

import (
	"sync"

	"github.com/guidecane/firmware/pkg/models"
)

// commandSlot is the single producer / single consumer handoff between the
// ble write callback and the control loop. One buffered command, last write
// wins; the guard rules out torn reads between the two goroutines.
type commandSlot struct {
	mutex   *sync.Mutex
	cmd     models.NavCommand
	present bool
}

func newCommandSlot() *commandSlot {
	return &commandSlot{mutex: &sync.Mutex{}}
}

// Put buffers a command, overwriting any command not yet drained
func (s *commandSlot) Put(cmd models.NavCommand) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.cmd = cmd
	s.present = true
}

// Take drains the slot, returning false when it is empty
func (s *commandSlot) Take() (models.NavCommand, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.present {
		return 0, false
	}
	s.present = false
	return s.cmd, true
}
