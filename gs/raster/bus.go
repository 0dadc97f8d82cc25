package raster

// Bus is the flow-controlled fragment bus between the rasterizer and the
// pixel pipeline. A bounded channel models the valid/ready handshake: a full
// bus stalls the producer, fragments are never dropped or reordered.
type Bus struct {
	ch chan Fragment
}

func NewBus(depth int) *Bus {
	return &Bus{ch: make(chan Fragment, depth)}
}

// Send blocks until the consumer side has capacity.
func (b *Bus) Send(f Fragment) { b.ch <- f }

// TrySend delivers f only if the consumer is ready, reporting success.
func (b *Bus) TrySend(f Fragment) bool {
	select {
	case b.ch <- f:
		return true
	default:
		return false
	}
}

// Recv blocks for the next fragment. ok is false after Close once the bus
// drained.
func (b *Bus) Recv() (f Fragment, ok bool) {
	f, ok = <-b.ch
	return
}

// TryRecv polls for a fragment without blocking.
func (b *Bus) TryRecv() (f Fragment, ok bool) {
	select {
	case f, ok = <-b.ch:
	default:
	}
	return
}

func (b *Bus) Close() { close(b.ch) }
