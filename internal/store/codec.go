package store

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/veslo/orderdesk/internal/domain/order"
)

// schemaVersion is the envelope version written with every collection.
// Decoding rejects any other version instead of guessing at the layout.
const schemaVersion = 1

// dateLayout encodes order dates without a time component.
const dateLayout = "2006-01-02"

// encodeCollection serializes the order collection as a versioned JSON
// envelope. Decimals and timestamps are written as strings so no value
// passes through binary floats.
func encodeCollection(orders []order.Order) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("version", func(e *jx.Encoder) {
			e.Int(schemaVersion)
		})
		e.Field("orders", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range orders {
					encodeOrder(e, &orders[i])
				}
			})
		})
	})
	return e.Bytes()
}

func encodeOrder(e *jx.Encoder, o *order.Order) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(o.ID) })
		e.Field("orderNumber", func(e *jx.Encoder) { e.Str(o.OrderNumber) })
		e.Field("customerName", func(e *jx.Encoder) { e.Str(o.CustomerName) })
		e.Field("orderDate", func(e *jx.Encoder) { e.Str(o.OrderDate.Format(dateLayout)) })
		e.Field("status", func(e *jx.Encoder) { e.Str(string(o.Status)) })
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range o.Items {
					encodeItem(e, &o.Items[i])
				}
			})
		})
		e.Field("total", func(e *jx.Encoder) { e.Str(o.Total.String()) })
		e.Field("createdAt", func(e *jx.Encoder) { e.Str(o.CreatedAt.Format(time.RFC3339Nano)) })
	})
}

func encodeItem(e *jx.Encoder, item *order.LineItem) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(item.ID) })
		e.Field("product", func(e *jx.Encoder) { e.Str(item.Product) })
		e.Field("quantity", func(e *jx.Encoder) { e.Int(item.Quantity) })
		e.Field("unitPrice", func(e *jx.Encoder) { e.Str(item.UnitPrice.String()) })
	})
}

// decodeCollection parses a versioned envelope back into an order slice.
// Unknown object keys are skipped; an unknown envelope version is an
// error, never a silent discard of stored orders.
func decodeCollection(data []byte) ([]order.Order, error) {
	var (
		orders  []order.Order
		version = -1
	)
	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "version":
			v, err := d.Int()
			if err != nil {
				return errors.Wrap(err, "version")
			}
			version = v
			return nil
		case "orders":
			return d.Arr(func(d *jx.Decoder) error {
				o, err := decodeOrder(d)
				if err != nil {
					return err
				}
				orders = append(orders, o)
				return nil
			})
		default:
			return d.Skip()
		}
	}); err != nil {
		return nil, errors.Wrap(err, "decode collection")
	}
	if version != schemaVersion {
		return nil, errors.Errorf("unsupported schema version %d", version)
	}
	return orders, nil
}

func decodeOrder(d *jx.Decoder) (order.Order, error) {
	var o order.Order
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			return decodeStr(d, &o.ID)
		case "orderNumber":
			return decodeStr(d, &o.OrderNumber)
		case "customerName":
			return decodeStr(d, &o.CustomerName)
		case "orderDate":
			return decodeTime(d, dateLayout, &o.OrderDate)
		case "status":
			s, err := d.Str()
			if err != nil {
				return err
			}
			o.Status = order.Status(s)
			return nil
		case "items":
			return d.Arr(func(d *jx.Decoder) error {
				item, err := decodeItem(d)
				if err != nil {
					return err
				}
				o.Items = append(o.Items, item)
				return nil
			})
		case "total":
			return decodeDecimal(d, &o.Total)
		case "createdAt":
			return decodeTime(d, time.RFC3339Nano, &o.CreatedAt)
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return order.Order{}, errors.Wrap(err, "order")
	}
	return o, nil
}

func decodeItem(d *jx.Decoder) (order.LineItem, error) {
	var item order.LineItem
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			return decodeStr(d, &item.ID)
		case "product":
			return decodeStr(d, &item.Product)
		case "quantity":
			q, err := d.Int()
			if err != nil {
				return err
			}
			item.Quantity = q
			return nil
		case "unitPrice":
			return decodeDecimal(d, &item.UnitPrice)
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return order.LineItem{}, errors.Wrap(err, "item")
	}
	return item, nil
}

func decodeStr(d *jx.Decoder, dst *string) error {
	s, err := d.Str()
	if err != nil {
		return err
	}
	*dst = s
	return nil
}

func decodeDecimal(d *jx.Decoder, dst *decimal.Decimal) error {
	s, err := d.Str()
	if err != nil {
		return err
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return errors.Wrapf(err, "decimal %q", s)
	}
	*dst = v
	return nil
}

func decodeTime(d *jx.Decoder, layout string, dst *time.Time) error {
	s, err := d.Str()
	if err != nil {
		return err
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return errors.Wrapf(err, "time %q", s)
	}
	*dst = t
	return nil
}
