package task

// Registry holds the behavior partitions for the two scheduling windows.
// AnyHours behaviors appear in both partitions as the same instance, never
// cloned. A Registry is immutable once built; build it before handing it to
// concurrently running agents.
type Registry struct {
	work []MetaTask
	off  []MetaTask
}

// RegistryBuilder accumulates behaviors and partitions them on Build.
// Adding the same instance twice registers it once.
type RegistryBuilder struct {
	tasks []MetaTask
	seen  map[MetaTask]bool
}

// NewRegistryBuilder creates an empty builder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{seen: make(map[MetaTask]bool)}
}

// Add registers a behavior. Nil and duplicate instances are ignored.
func (b *RegistryBuilder) Add(t MetaTask) *RegistryBuilder {
	if t != nil && !b.seen[t] {
		b.seen[t] = true
		b.tasks = append(b.tasks, t)
	}
	return b
}

// Build partitions the registered behaviors into the work and off-hours
// sets, unioning AnyHours behaviors into both.
func (b *RegistryBuilder) Build() *Registry {
	r := &Registry{}
	for _, t := range b.tasks {
		switch t.Window() {
		case WorkHours:
			r.work = append(r.work, t)
		case OffHours:
			r.off = append(r.off, t)
		case AnyHours:
			r.work = append(r.work, t)
			r.off = append(r.off, t)
		}
	}
	return r
}

// BehaviorsFor returns the behaviors schedulable in a window. AnyHours
// returns the work-hours set, which contains every AnyHours behavior.
// The returned slice is a copy; the partitions themselves never change.
func (r *Registry) BehaviorsFor(w Window) []MetaTask {
	var src []MetaTask
	switch w {
	case OffHours:
		src = r.off
	default:
		src = r.work
	}
	out := make([]MetaTask, len(src))
	copy(out, src)
	return out
}
