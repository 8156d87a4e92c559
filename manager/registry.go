// Package manager is the Manager Registry and the per-manager batch-apply
// logic: translating a wire NodeList into tree mutations, driving a
// recompute, and diffing the result through the Change Tracker.
//
// Grounded on the original's `lazy_static! LAYOUT_MANAGERS:
// Mutex<HashMap<i32, Arc<Mutex<LayoutManager>>>>` plus an AtomicI32 handle
// counter (dc_jni/src/layout_manager.rs): one short-held registry mutex
// guards handle lookup/insert/remove only, and each Manager carries its own
// mutex held for the duration of a single batch-apply or recompute — so the
// registry lock is never held across a solver run (SPEC_FULL.md §7).
package manager

import "sync"

// Registry owns the process-wide handle -> Manager map.
type Registry struct {
	mu       sync.Mutex
	managers map[int32]*Manager
	nextID   int32
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{managers: make(map[int32]*Manager)}
}

// Create allocates a new handle and Manager, installs it in the registry,
// and returns the handle.
func (r *Registry) Create(opts ...Option) int32 {
	m := newManager(opts...)
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.managers[id] = m
	return id
}

// Get looks up the Manager for a handle.
func (r *Registry) Get(handle int32) (*Manager, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.managers[handle]
	return m, ok
}

// Release drops a handle from the registry. The Manager itself (and its
// trees) become eligible for garbage collection once no other reference is
// held — Go has no finalizer-driven teardown to mirror here, so this method
// exists purely to give hosts an explicit release point the original gets
// for free from Rust's Arc refcounting.
func (r *Registry) Release(handle int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.managers, handle)
}
