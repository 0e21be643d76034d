package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemList is a caller-owned, ordered working set of draft line items.
// Each row is keyed by a locally generated token so an editing surface can
// track rows across inserts and removals; tokens live only inside the
// draft and are replaced with persistent identifiers at submission.
//
// ItemList is not safe for concurrent use. A draft belongs to a single
// editing session.
type ItemList struct {
	rows []LineItem
}

// NewItemList returns an empty working set.
func NewItemList() *ItemList {
	return &ItemList{}
}

// Append adds a row at the end of the list and returns its token.
func (l *ItemList) Append(product string, quantity int, unitPrice decimal.Decimal) string {
	token := uuid.NewString()
	l.rows = append(l.rows, LineItem{
		ID:        token,
		Product:   product,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
	return token
}

// Remove deletes the row with the given token, preserving the order of the
// remaining rows. It reports whether a row was removed.
func (l *ItemList) Remove(token string) bool {
	for i, row := range l.rows {
		if row.ID == token {
			return l.RemoveAt(i)
		}
	}
	return false
}

// RemoveAt deletes the row at position i, preserving the order of the
// remaining rows. It reports whether i was in range.
func (l *ItemList) RemoveAt(i int) bool {
	if i < 0 || i >= len(l.rows) {
		return false
	}
	l.rows = append(l.rows[:i], l.rows[i+1:]...)
	return true
}

// Set replaces the product, quantity, and unit price of the row with the
// given token. It reports whether the token matched a row.
func (l *ItemList) Set(token, product string, quantity int, unitPrice decimal.Decimal) bool {
	for i := range l.rows {
		if l.rows[i].ID == token {
			l.rows[i].Product = product
			l.rows[i].Quantity = quantity
			l.rows[i].UnitPrice = unitPrice
			return true
		}
	}
	return false
}

// Items returns a copy of the current rows in order.
func (l *ItemList) Items() []LineItem {
	items := make([]LineItem, len(l.rows))
	copy(items, l.rows)
	return items
}

// Total returns the live running total of the current rows. Advisory
// only: the authoritative total is frozen by the store at creation.
func (l *ItemList) Total() decimal.Decimal {
	return Total(l.rows)
}

// Len returns the number of rows.
func (l *ItemList) Len() int {
	return len(l.rows)
}

// Draft assembles the current rows into a Draft ready for submission.
func (l *ItemList) Draft(orderNumber, customerName string, orderDate time.Time) Draft {
	return Draft{
		OrderNumber:  orderNumber,
		CustomerName: customerName,
		OrderDate:    orderDate,
		Status:       StatusPending,
		Items:        l.Items(),
	}
}
