package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Status labels an order's lifecycle state. Orders are created as
// StatusPending and the catalog never transitions them afterwards; the
// label exists for display only.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the known status labels.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// LineItem is a single product row within an order.
//
// ID holds a locally generated draft token while the item belongs to a
// draft; the store replaces it with a persistent identifier at creation.
// Neither form is ever interpreted by total calculation.
type LineItem struct {
	ID        string
	Product   string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Order is a persisted sales order. Total is frozen at creation time and
// never recomputed from Items afterwards.
type Order struct {
	ID           string
	OrderNumber  string
	CustomerName string
	OrderDate    time.Time
	Status       Status
	Items        []LineItem
	Total        decimal.Decimal
	CreatedAt    time.Time
}

// Draft is a not-yet-persisted order under construction by a caller. It
// carries no identity, frozen total, or creation timestamp; the store
// assigns all three at submission.
type Draft struct {
	OrderNumber  string
	CustomerName string
	OrderDate    time.Time
	Status       Status
	Items        []LineItem
}

// ErrEmptyItems is returned when a draft contains no line items.
var ErrEmptyItems = errors.New("order requires at least one line item")

// FieldError reports which draft field violated a data-model invariant.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid order: %s: %s", e.Field, e.Reason)
}

// IsInvalid reports whether err classifies as a draft validation failure,
// as opposed to a storage fault.
func IsInvalid(err error) bool {
	var fe *FieldError
	return errors.Is(err, ErrEmptyItems) || errors.As(err, &fe)
}

// Validate checks the draft against the data-model invariants. It returns
// ErrEmptyItems or a FieldError naming the first violated field.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.OrderNumber) == "" {
		return &FieldError{Field: "orderNumber", Reason: "required"}
	}
	if strings.TrimSpace(d.CustomerName) == "" {
		return &FieldError{Field: "customerName", Reason: "required"}
	}
	if d.OrderDate.IsZero() {
		return &FieldError{Field: "orderDate", Reason: "required"}
	}
	if d.Status != "" && !d.Status.Valid() {
		return &FieldError{Field: "status", Reason: fmt.Sprintf("unknown status %q", d.Status)}
	}
	if len(d.Items) == 0 {
		return ErrEmptyItems
	}
	for i, item := range d.Items {
		if strings.TrimSpace(item.Product) == "" {
			return &FieldError{Field: fmt.Sprintf("items[%d].product", i), Reason: "required"}
		}
		if item.Quantity < 1 {
			return &FieldError{Field: fmt.Sprintf("items[%d].quantity", i), Reason: "must be at least 1"}
		}
		if item.UnitPrice.IsNegative() {
			return &FieldError{Field: fmt.Sprintf("items[%d].unitPrice", i), Reason: "must not be negative"}
		}
	}
	return nil
}
