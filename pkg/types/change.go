package types

import "sync"

// ChangeOp names the kind of write that changed the pets table.
type ChangeOp string

// Change operations.
const (
	ChangeInsert    ChangeOp = "insert"
	ChangeUpdate    ChangeOp = "update"
	ChangeDelete    ChangeOp = "delete"
	ChangeDeleteAll ChangeOp = "delete_all"
	ChangeImport    ChangeOp = "import"
)

// Change notifies an observer that the pets table changed. ID is zero for
// bulk operations; Rows is the number of rows affected.
type Change struct {
	Op   ChangeOp `json:"op"`
	ID   int64    `json:"id,omitempty"`
	Rows int64    `json:"rows"`
}

// Subscription delivers table changes on C until it is closed.
type Subscription struct {
	ID string
	C  <-chan Change

	once   sync.Once
	cancel func()
}

// NewSubscription wraps a change channel. cancel is called once, on the
// first Close.
func NewSubscription(id string, c <-chan Change, cancel func()) *Subscription {
	return &Subscription{ID: id, C: c, cancel: cancel}
}

// Close unsubscribes. C is closed by the publisher once Close returns.
// Idempotent.
func (s *Subscription) Close() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}
