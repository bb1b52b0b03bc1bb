package game

import "github.com/pthm-cable/orbital/components"

// CommandQueue holds mutations deferred out of the physics step.
type CommandQueue struct {
	pending []components.Command
}

// Push appends commands in order.
func (q *CommandQueue) Push(cmds ...components.Command) {
	q.pending = append(q.pending, cmds...)
}

// Drain returns all pending commands and empties the queue. Commands
// pushed while the drained batch runs land in the next batch.
func (q *CommandQueue) Drain() []components.Command {
	cmds := q.pending
	q.pending = nil
	return cmds
}

// Len returns the number of pending commands.
func (q *CommandQueue) Len() int {
	return len(q.pending)
}

// Pending returns a copy of the pending commands.
func (q *CommandQueue) Pending() []components.Command {
	return append([]components.Command(nil), q.pending...)
}
