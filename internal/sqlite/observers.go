package sqlite

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/shelter/pkg/types"
)

// subscriptionBuffer is the number of changes a slow observer may lag
// behind before notifications to it are dropped.
const subscriptionBuffer = 16

// observers fans table changes out to subscribers. Publishing never blocks
// a writer: a subscriber with a full buffer misses the notification.
type observers struct {
	mu     sync.Mutex
	subs   map[string]chan types.Change
	closed bool
	logger *zap.Logger
}

func newObservers(logger *zap.Logger) *observers {
	return &observers{
		subs:   make(map[string]chan types.Change),
		logger: logger,
	}
}

func (o *observers) subscribe() *types.Subscription {
	id := uuid.NewString()
	ch := make(chan types.Change, subscriptionBuffer)

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		close(ch)
		return types.NewSubscription(id, ch, nil)
	}
	o.subs[id] = ch
	o.logger.Debug("observer subscribed", zap.String("subscription", id))
	return types.NewSubscription(id, ch, func() { o.unsubscribe(id) })
}

func (o *observers) unsubscribe(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if ch, ok := o.subs[id]; ok {
		delete(o.subs, id)
		close(ch)
		o.logger.Debug("observer unsubscribed", zap.String("subscription", id))
	}
}

func (o *observers) publish(c types.Change) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for id, ch := range o.subs {
		select {
		case ch <- c:
		default:
			o.logger.Warn("dropping change notification",
				zap.String("subscription", id),
				zap.String("op", string(c.Op)))
		}
	}
}

// closeAll closes every subscription. Later subscribers get a closed
// channel.
func (o *observers) closeAll() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for id, ch := range o.subs {
		delete(o.subs, id)
		close(ch)
	}
	o.closed = true
}
