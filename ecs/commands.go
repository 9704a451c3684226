package ecs

import (
	"errors"
	"fmt"
)

// Commands buffers structural changes requested while systems run and applies them
// after the frame, so snapshots being iterated are never invalidated mid-run.
type Commands struct {
	creates  []createCommand
	destroys []EntityId
	adds     []addComponentCommand
	removes  []removeComponentCommand
	defers   []func()
}

// NewCommands creates an empty command buffer. Schedulers create one per frame.
func NewCommands() *Commands {
	return &Commands{}
}

// ComponentData is a tagged payload used when creating entities through Commands.
type ComponentData struct {
	Type ComponentType
	Data []byte
}

type createCommand struct {
	components []ComponentData
	onCreate   func(EntityId)
}

type addComponentCommand struct {
	entity EntityId
	typ    ComponentType
	data   []byte
}

type removeComponentCommand struct {
	entity EntityId
	typ    ComponentType
}

// Defer queues a function to run after all structural changes are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// CreateEntity queues creation of an entity with the given components.
// onCreate, when non-nil, receives the new id after it has been created.
func (c *Commands) CreateEntity(onCreate func(EntityId), components ...ComponentData) {
	c.creates = append(c.creates, createCommand{
		components: components,
		onCreate:   onCreate,
	})
}

// DestroyEntity queues an entity destruction.
func (c *Commands) DestroyEntity(entity EntityId) {
	c.destroys = append(c.destroys, entity)
}

// AddComponent queues a component addition. data is copied immediately.
func (c *Commands) AddComponent(entity EntityId, typ ComponentType, data []byte) {
	c.adds = append(c.adds, addComponentCommand{
		entity: entity,
		typ:    typ,
		data:   append([]byte(nil), data...),
	})
}

// RemoveComponent queues a component removal.
func (c *Commands) RemoveComponent(entity EntityId, typ ComponentType) {
	c.removes = append(c.removes, removeComponentCommand{
		entity: entity,
		typ:    typ,
	})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.creates) + len(c.destroys) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies all queued commands to world and resets the buffer.
// Order is destroys, removes, adds, creates, then deferred functions. Operations on
// entities destroyed in the same flush are skipped. Commands queued from onCreate or
// deferred callbacks while flushing are applied in a further round before Flush returns.
// Failures do not stop the flush; they are joined into the returned error.
func (c *Commands) Flush(world *World) error {
	var errs []error
	destroyed := make(map[EntityId]bool, len(c.destroys))

	for c.Len() > 0 {
		round := *c
		*c = Commands{}
		errs = append(errs, round.apply(world, destroyed)...)
	}

	return errors.Join(errs...)
}

// apply runs one round of queued commands. destroyed carries over between rounds.
func (c *Commands) apply(world *World, destroyed map[EntityId]bool) []error {
	var errs []error

	for _, id := range c.destroys {
		world.DestroyEntity(id)
		destroyed[id] = true
	}

	for _, cmd := range c.removes {
		if !destroyed[cmd.entity] {
			world.RemoveComponent(cmd.entity, cmd.typ)
		}
	}

	for _, cmd := range c.adds {
		if destroyed[cmd.entity] {
			continue
		}
		if _, err := world.AddComponent(cmd.entity, cmd.typ, cmd.data); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range c.creates {
		id, err := createWith(world, cmd.components)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if cmd.onCreate != nil {
			cmd.onCreate(id)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	return errs
}

// createWith creates an entity and attaches components, destroying it again if any
// attachment fails so no partially built entity is left behind.
func createWith(world *World, components []ComponentData) (EntityId, error) {
	id, err := world.CreateEntity()
	if err != nil {
		return 0, err
	}
	for _, comp := range components {
		if _, err := world.AddComponent(id, comp.Type, comp.Data); err != nil {
			world.DestroyEntity(id)
			return 0, fmt.Errorf("create entity: %w", err)
		}
	}
	return id, nil
}
