// Package object holds the drawable, updatable things a terminal client
// puts on screen: the table itself, spark particles and text.
package object

import (
	"time"

	"github.com/tomz197/pinball/internal/draw"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Spawner Spawner
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas      // High-resolution canvas (2x vertical)
	Writer *draw.ChunkWriter // Text overlay output
	Now    time.Time         // Frame time, for fades
}

// Object is a drawable and updatable entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object. Use ctx.Canvas for shapes, ctx.Writer for text.
	Draw(ctx DrawContext) error
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// Layer is an ordered set of objects updated and drawn together.
// Objects spawned during Update are added after the update pass.
type Layer struct {
	Objects []Object
	toSpawn []Object
}

// Spawn queues an object to be added after the current update cycle.
func (l *Layer) Spawn(obj Object) {
	l.toSpawn = append(l.toSpawn, obj)
}

// Update advances every object, drops and releases finished ones, then adds
// queued spawns.
func (l *Layer) Update(delta time.Duration) error {
	ctx := UpdateContext{Delta: delta, Spawner: l}
	kept := l.Objects[:0]
	var firstErr error
	for _, obj := range l.Objects {
		remove, err := obj.Update(ctx)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if remove {
			ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	clear(l.Objects[len(kept):])
	l.Objects = append(kept, l.toSpawn...)
	clear(l.toSpawn)
	l.toSpawn = l.toSpawn[:0]
	return firstErr
}

// Draw draws every object in order.
func (l *Layer) Draw(ctx DrawContext) error {
	for _, obj := range l.Objects {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Reset releases every object.
func (l *Layer) Reset() {
	for _, obj := range l.Objects {
		ReleaseObject(obj)
	}
	for _, obj := range l.toSpawn {
		ReleaseObject(obj)
	}
	clear(l.Objects)
	clear(l.toSpawn)
	l.Objects = l.Objects[:0]
	l.toSpawn = l.toSpawn[:0]
}

// Len returns the number of live objects.
func (l *Layer) Len() int {
	return len(l.Objects)
}
