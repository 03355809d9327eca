package charge

import (
	"sort"

	"github.com/milk9111/playerfsm/component"
)

// Kind tags a concurrent charge or hold operation, e.g. "basic" or "skill:1".
type Kind string

const (
	KindBasic Kind = "basic"
)

// Canceled is raised when an operation is ended before it completed.
type Canceled struct {
	Kind     Kind
	Reason   component.CancelReason
	Progress float64
}

// Progress is raised every tick an operation advances.
type Progress struct {
	Kind  Kind
	Value float64
}

type operation struct {
	elapsed  float64
	duration float64
	complete bool
}

func (op *operation) value() float64 {
	if op == nil || op.duration <= 0 {
		return 0
	}
	v := op.elapsed / op.duration
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Manager owns running elapsed/duration pairs. It only provides derived values;
// it never decides state transitions.
type Manager struct {
	name string
	ops  map[Kind]*operation

	lastCancel map[Kind]Canceled

	onCompleted []func(Kind)
	onCanceled  []func(Canceled)
	onProgress  []func(Progress)
}

// NewManager creates an empty manager. name is used for logs only.
func NewManager(name string) *Manager {
	return &Manager{
		name:       name,
		ops:        make(map[Kind]*operation),
		lastCancel: make(map[Kind]Canceled),
	}
}

// Name returns the manager name.
func (m *Manager) Name() string {
	return m.name
}

// Start creates or restarts the operation for kind. A duration <= 0 never
// completes.
func (m *Manager) Start(kind Kind, duration float64) {
	if m == nil {
		return
	}
	m.ops[kind] = &operation{duration: duration}
	delete(m.lastCancel, kind)
}

// Tick advances every running operation by dt seconds.
func (m *Manager) Tick(dt float64) {
	if m == nil || len(m.ops) == 0 {
		return
	}
	for _, kind := range m.kinds() {
		op := m.ops[kind]
		if op == nil || op.complete {
			continue
		}
		op.elapsed += dt
		if op.duration > 0 && op.elapsed >= op.duration {
			op.elapsed = op.duration
			op.complete = true
		}
		m.emitProgress(Progress{Kind: kind, Value: op.value()})
		if op.complete {
			for _, fn := range m.onCompleted {
				fn(kind)
			}
		}
	}
}

// End stops the operation for kind. Unless the operation had already
// completed, the reason is recorded and Canceled is raised. It reports whether
// a cancellation happened.
func (m *Manager) End(kind Kind, reason component.CancelReason) bool {
	if m == nil {
		return false
	}
	op, ok := m.ops[kind]
	if !ok {
		return false
	}
	delete(m.ops, kind)
	if op.complete {
		return false
	}
	ev := Canceled{Kind: kind, Reason: reason, Progress: op.value()}
	m.lastCancel[kind] = ev
	for _, fn := range m.onCanceled {
		fn(ev)
	}
	return true
}

// EndAll ends every running operation with reason.
func (m *Manager) EndAll(reason component.CancelReason) {
	if m == nil {
		return
	}
	for _, kind := range m.kinds() {
		m.End(kind, reason)
	}
}

// Reset discards every operation without raising events. Recorded
// cancellations are kept.
func (m *Manager) Reset() {
	if m == nil {
		return
	}
	for kind := range m.ops {
		delete(m.ops, kind)
	}
}

// Value returns the normalized progress for kind.
func (m *Manager) Value(kind Kind) float64 {
	if m == nil {
		return 0
	}
	return m.ops[kind].value()
}

// Elapsed returns the seconds accumulated for kind.
func (m *Manager) Elapsed(kind Kind) float64 {
	if m == nil {
		return 0
	}
	if op, ok := m.ops[kind]; ok {
		return op.elapsed
	}
	return 0
}

// IsActive reports whether an operation exists for kind.
func (m *Manager) IsActive(kind Kind) bool {
	if m == nil {
		return false
	}
	_, ok := m.ops[kind]
	return ok
}

// IsComplete reports whether the operation for kind reached its duration.
func (m *Manager) IsComplete(kind Kind) bool {
	if m == nil {
		return false
	}
	op, ok := m.ops[kind]
	return ok && op.complete
}

// LastCancelReason returns the reason recorded by the most recent End on kind.
func (m *Manager) LastCancelReason(kind Kind) component.CancelReason {
	if m == nil {
		return component.CancelNone
	}
	return m.lastCancel[kind].Reason
}

// TakeCancel returns and clears the cancellation recorded for kind. The
// snapshot carries the progress the operation had when it was ended.
func (m *Manager) TakeCancel(kind Kind) (Canceled, bool) {
	if m == nil {
		return Canceled{}, false
	}
	c, ok := m.lastCancel[kind]
	delete(m.lastCancel, kind)
	return c, ok
}

// OnCompleted registers fn for completion notifications.
func (m *Manager) OnCompleted(fn func(Kind)) {
	if m == nil || fn == nil {
		return
	}
	m.onCompleted = append(m.onCompleted, fn)
}

// OnCanceled registers fn for cancellation notifications.
func (m *Manager) OnCanceled(fn func(Canceled)) {
	if m == nil || fn == nil {
		return
	}
	m.onCanceled = append(m.onCanceled, fn)
}

// OnProgress registers fn for per-tick progress notifications.
func (m *Manager) OnProgress(fn func(Progress)) {
	if m == nil || fn == nil {
		return
	}
	m.onProgress = append(m.onProgress, fn)
}

// View returns a read-only view of kind suitable for component.Context.
func (m *Manager) View(kind Kind) *View {
	return &View{m: m, kind: kind}
}

func (m *Manager) emitProgress(p Progress) {
	for _, fn := range m.onProgress {
		fn(p)
	}
}

func (m *Manager) kinds() []Kind {
	out := make([]Kind, 0, len(m.ops))
	for k := range m.ops {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// View exposes one kind of a Manager.
type View struct {
	m    *Manager
	kind Kind
}

func (v *View) Value() float64   { return v.m.Value(v.kind) }
func (v *View) IsComplete() bool { return v.m.IsComplete(v.kind) }
func (v *View) IsActive() bool   { return v.m.IsActive(v.kind) }

// Reset discards the viewed operation without events.
func (v *View) Reset() {
	if v.m == nil {
		return
	}
	delete(v.m.ops, v.kind)
}

// Kind returns the viewed kind.
func (v *View) Kind() Kind { return v.kind }

var _ component.ChargeValue = (*View)(nil)
var _ component.ChargeResetter = (*View)(nil)
