// internal/event/event.go
package event

// Listener - интерфейс для подписчиков на события
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Handle is an opaque registration returned by Subscribe. The zero Handle is never issued.
type Handle uint64

type registration struct {
	handle   Handle
	listener Listener
	mask     uint32 // bit per Type; 0 = all types
}

// Dispatcher is one publisher's listener set. Listeners are invoked in
// subscription order. The dispatcher does not own listener lifetimes: a
// registration stays until Unsubscribe is called with its handle.
type Dispatcher struct {
	regs []registration
	next Handle
}

// NewDispatcher - создаёт новый диспетчер
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers listener for the given types, or for every type when none are given.
func (d *Dispatcher) Subscribe(listener Listener, types ...Type) Handle {
	var mask uint32
	for _, t := range types {
		mask |= 1 << uint(t)
	}
	d.next++
	d.regs = append(d.regs, registration{handle: d.next, listener: listener, mask: mask})
	return d.next
}

// Unsubscribe removes a registration. Unknown handles are ignored.
func (d *Dispatcher) Unsubscribe(h Handle) bool {
	for i, r := range d.regs {
		if r.handle == h {
			d.regs = append(d.regs[:i:i], d.regs[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registrations.
func (d *Dispatcher) Len() int {
	return len(d.regs)
}

// Clear drops every registration.
func (d *Dispatcher) Clear() {
	d.regs = nil
}

// Dispatch - отправка события всем подписчикам. Iterates over a snapshot, so
// unsubscribing from inside a handler takes effect from the next Dispatch.
func (d *Dispatcher) Dispatch(e Event) {
	if len(d.regs) == 0 {
		return
	}
	snapshot := make([]registration, len(d.regs))
	copy(snapshot, d.regs)
	for _, r := range snapshot {
		if r.mask != 0 && r.mask&(1<<uint(e.Type)) == 0 {
			continue
		}
		r.listener.OnEvent(e)
	}
}
