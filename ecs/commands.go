package ecs

import (
	"errors"
	"fmt"
)

type commandKind uint8

const (
	cmdRemove commandKind = iota
	cmdAdd
	cmdSpawn
	cmdDefer
)

// Flush applies queued commands one kind at a time in this order.
var flushOrder = [...]commandKind{cmdRemove, cmdAdd, cmdSpawn, cmdDefer}

type command struct {
	kind       commandKind
	entity     EntityId
	compType   ComponentType
	component  any
	components []any
	fn         func()
}

// Commands buffers structural changes requested during a frame. The
// scheduler flushes it after the last system, so nothing queued is visible
// to systems of the same frame.
//
// Flush detaches components first, then attaches. Spawns follow, and
// deferred functions run last, after every structural change. Changes aimed
// at an entity that is no longer alive are dropped.
type Commands struct {
	queue []command
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run at the end of the flush.
func (c *Commands) Defer(fn func()) {
	c.queue = append(c.queue, command{kind: cmdDefer, fn: fn})
}

// Spawn queues the creation of an entity with the given components.
func (c *Commands) Spawn(components ...any) {
	c.queue = append(c.queue, command{kind: cmdSpawn, components: components})
}

// AddComponent queues attaching component to entity.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.queue = append(c.queue, command{kind: cmdAdd, entity: entity, component: component})
}

// RemoveComponent queues detaching a component type from entity.
func (c *Commands) RemoveComponent(entity EntityId, compType ComponentType) {
	c.queue = append(c.queue, command{kind: cmdRemove, entity: entity, compType: compType})
}

// Pending returns the number of queued commands.
func (c *Commands) Pending() int {
	return len(c.queue)
}

// Flush applies every queued command to storage and empties the buffer.
// Commands queued by deferred functions are kept for the next flush.
//
// A panicking deferred function does not stop the flush. Every recovered
// panic is returned as a *PanicError, joined.
func (c *Commands) Flush(storage *Storage) error {
	queue := c.queue
	c.queue = nil

	var errs []error
	for _, kind := range flushOrder {
		for _, cmd := range queue {
			if cmd.kind != kind {
				continue
			}
			if err := apply(storage, cmd); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if c.queue == nil {
		c.queue = queue[:0]
	}
	return errors.Join(errs...)
}

func apply(storage *Storage, cmd command) (err error) {
	switch cmd.kind {
	case cmdRemove:
		storage.RemoveComponent(cmd.entity, cmd.compType)
	case cmdAdd:
		storage.AddComponent(cmd.entity, cmd.component)
	case cmdSpawn:
		storage.Spawn(cmd.components...)
	case cmdDefer:
		defer recoverInto(&err)
		cmd.fn()
	}
	return err
}

// recoverInto turns a recovered panic into a *PanicError stored in err. It
// must be deferred directly.
func recoverInto(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if rerr, ok := r.(error); ok {
		*err = fmt.Errorf("%w: %w", &PanicError{Value: r}, rerr)
		return
	}
	*err = &PanicError{Value: r}
}
