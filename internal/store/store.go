// Package store owns the durable order collection. It is the only
// component that reads or writes the persisted blob, and every mutation
// rewrites the collection whole.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veslo/orderdesk/internal/domain/order"
	"github.com/veslo/orderdesk/internal/kv"
)

// collectionKey names the single persisted entry holding every order.
const collectionKey = "salesOrders"

// UnavailableError reports that the persistence medium could not be read,
// written, or decoded. The caller may retry; the collection is never left
// partially written.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable: %s: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// IsUnavailable reports whether err classifies as a storage fault.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

// Store is the single point of read and mutation for the order
// collection. A mutex serializes the read-modify-write cycle, so two
// overlapping Create calls cannot each append to the same stale snapshot.
//
// The store caches nothing: every operation loads the collection from the
// medium, so a failed write leaves no phantom order behind.
type Store struct {
	mu sync.Mutex
	kv kv.Store

	// Seams for tests; uuid.NewString and time.Now in production.
	newID func() string
	now   func() time.Time
}

// New returns a Store backed by the given medium.
func New(medium kv.Store) *Store {
	return &Store{
		kv:    medium,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// List returns the persisted collection in insertion order, oldest first.
// A medium with no prior entry yields an empty slice: absence of data is
// the expected initial state, not a fault.
func (s *Store) List(ctx context.Context) ([]order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		zctx.From(ctx).Error("list orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

// Create validates the draft, freezes its total, assigns identity and
// creation time, appends it to the collection, and persists the whole
// collection in one write. The finalized order is returned.
//
// Validation failures surface before any persistence attempt. A failed
// write surfaces as UnavailableError and leaves the durable collection,
// and therefore subsequent List results, unchanged.
func (s *Store) Create(ctx context.Context, draft order.Draft) (*order.Order, error) {
	if draft.Status == "" {
		draft.Status = order.StatusPending
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	used := make(map[string]struct{}, len(orders))
	for _, existing := range orders {
		used[existing.ID] = struct{}{}
		for _, item := range existing.Items {
			used[item.ID] = struct{}{}
		}
	}

	// Draft rows carry local editing tokens in their ID field; replace
	// them with persistent identifiers.
	items := make([]order.LineItem, len(draft.Items))
	for i, item := range draft.Items {
		item.ID = s.freshID(used)
		items[i] = item
	}

	finalized := order.Order{
		ID:           s.freshID(used),
		OrderNumber:  draft.OrderNumber,
		CustomerName: draft.CustomerName,
		OrderDate:    draft.OrderDate,
		Status:       draft.Status,
		Items:        items,
		Total:        order.Total(items),
		CreatedAt:    s.now().UTC(),
	}

	// Fresh slice: orders already handed out by List are never mutated
	// in place.
	updated := make([]order.Order, 0, len(orders)+1)
	updated = append(updated, orders...)
	updated = append(updated, finalized)

	if err := s.kv.Put(ctx, collectionKey, encodeCollection(updated)); err != nil {
		werr := &UnavailableError{Op: "write collection", Err: err}
		zctx.From(ctx).Error("create order", zap.Error(werr))
		return nil, werr
	}

	zctx.From(ctx).Info("order created",
		zap.String("order_id", finalized.ID),
		zap.String("order_number", finalized.OrderNumber),
		zap.Int("items", len(finalized.Items)),
		zap.String("total", finalized.Total.String()),
	)
	return &finalized, nil
}

// load reads and decodes the collection. Callers must hold s.mu.
func (s *Store) load(ctx context.Context) ([]order.Order, error) {
	raw, err := s.kv.Get(ctx, collectionKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, &UnavailableError{Op: "read collection", Err: err}
	}

	orders, err := decodeCollection(raw)
	if err != nil {
		// Corrupt stored data is a storage fault, not an empty
		// collection: decoding must never silently discard orders.
		return nil, &UnavailableError{Op: "decode collection", Err: err}
	}
	return orders, nil
}

// freshID generates an identifier not present in used and records it.
func (s *Store) freshID(used map[string]struct{}) string {
	id := s.newID()
	for {
		if _, taken := used[id]; !taken {
			break
		}
		id = s.newID()
	}
	used[id] = struct{}{}
	return id
}
