package hittest

import (
	"errors"
	"sync"

	"github.com/solarlune/resolv"

	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

// DefaultCellSize is the spatial hash cell size in pixels.
const DefaultCellSize = 16

// Picker errors.
var (
	ErrDuplicateObject = errors.New("hittest: duplicate object id")
	ErrUnknownObject   = errors.New("hittest: unknown object id")
)

// objectData rides on each resolv object.
type objectData struct {
	id    string
	depth float64
}

// Picker indexes scene objects as axis-aligned rectangles and answers
// point queries. Depth breaks overlap ties: the smallest depth wins, like
// the nearest object along a camera ray.
type Picker struct {
	mu      sync.RWMutex
	space   *resolv.Space
	objects map[string]*resolv.Object
}

// NewPicker creates a picker covering a width-by-height pixel area.
func NewPicker(width, height int) *Picker {
	return &Picker{
		space:   resolv.NewSpace(width, height, DefaultCellSize, DefaultCellSize),
		objects: make(map[string]*resolv.Object),
	}
}

// Add registers a rectangle under an object id at the given depth.
func (p *Picker) Add(id string, x, y, w, h, depth float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.objects[id]; exists {
		return ErrDuplicateObject
	}

	obj := resolv.NewObject(x, y, w, h)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = objectData{id: id, depth: depth}
	p.space.Add(obj)
	p.objects[id] = obj
	return nil
}

// Move repositions a registered rectangle.
func (p *Picker) Move(id string, x, y float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	obj, ok := p.objects[id]
	if !ok {
		return ErrUnknownObject
	}
	obj.X = x
	obj.Y = y
	obj.Update()
	return nil
}

// Remove unregisters an object id. Unknown ids are a no-op.
func (p *Picker) Remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	obj, ok := p.objects[id]
	if !ok {
		return
	}
	p.space.Remove(obj)
	delete(p.objects, id)
}

// Clear removes every registered object.
func (p *Picker) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, obj := range p.objects {
		p.space.Remove(obj)
		delete(p.objects, id)
	}
}

// Len returns the number of registered objects.
func (p *Picker) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.objects)
}

// Pick hit-tests a screen position. A miss reports background; a hit
// carries the shallowest overlapping object's id and depth. Implements
// the manager's HitTester interface.
func (p *Picker) Pick(pt raw.Point) raw.HitInfo {
	p.mu.Lock()
	defer p.mu.Unlock()

	probe := resolv.NewObject(pt.X, pt.Y, 1, 1)
	p.space.Add(probe)
	collision := probe.Check(0, 0)
	p.space.Remove(probe)

	info := raw.HitInfo{WorldPoint: [3]float64{pt.X, pt.Y, 0}}
	if collision == nil {
		return info
	}

	best := objectData{}
	found := false
	for _, obj := range collision.Objects {
		data, ok := obj.Data.(objectData)
		if !ok {
			continue
		}
		if !found || data.depth < best.depth {
			best = data
			found = true
		}
	}
	if !found {
		return info
	}

	info.Hit = true
	info.TargetID = best.id
	info.Distance = best.depth
	return info
}
