package audit

import "go.uber.org/zap"

type Event struct {
	Actor    string // "customer" or "admin"
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Dispatcher persists audit events off the request path through a
// buffered channel and a single worker. A nil dispatcher drops
// everything silently, so callers never need a guard.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(ev); err != nil {
			zap.L().Warn("audit write failed",
				zap.String("action", ev.Action), zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
	default:
		// Full queue: drop the event rather than stall a booking.
		zap.L().Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}
