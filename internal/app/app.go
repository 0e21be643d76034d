// Package app wires the storage backend, the order store, and the CLI
// commands that present the catalog.
package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/veslo/orderdesk/internal/domain/order"
	"github.com/veslo/orderdesk/internal/kv"
	"github.com/veslo/orderdesk/internal/store"
)

const dateLayout = "2006-01-02"

const usage = `usage: orderdesk <command>

commands:
  list            print the order catalog
  show <id>       print one order by id or order number
  create          create an order (see create -h)
`

// Run opens the configured backend and dispatches the CLI command. It is
// the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config, args []string) error {
	ctx = zctx.Base(ctx, lg)

	medium, cleanup, err := openMedium(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	orders := store.New(medium)

	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("missing command")
	}
	switch cmd := args[0]; cmd {
	case "list":
		return runList(ctx, os.Stdout, orders)
	case "show":
		return runShow(ctx, os.Stdout, orders, args[1:])
	case "create":
		return runCreate(ctx, os.Stdout, orders, args[1:])
	default:
		fmt.Fprint(os.Stderr, usage)
		return errors.Errorf("unknown command %q", cmd)
	}
}

// openMedium constructs the key-value backend selected by the config and
// returns it with a cleanup func.
func openMedium(ctx context.Context, cfg *Config) (kv.Store, func(), error) {
	switch cfg.Backend {
	case BackendFile:
		fs, err := kv.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open file backend")
		}
		return fs, func() {}, nil
	case BackendPostgres:
		pool, err := kv.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open postgres backend")
		}
		if err := kv.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return kv.NewPGStore(pool), pool.Close, nil
	default:
		return nil, nil, errors.Errorf("unknown backend %q", cfg.Backend)
	}
}

func runList(ctx context.Context, w io.Writer, orders *store.Store) error {
	all, err := orders.List(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(w, "no orders")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tCUSTOMER\tDATE\tSTATUS\tITEMS\tTOTAL")
	for _, o := range all {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			o.OrderNumber, o.CustomerName, o.OrderDate.Format(dateLayout),
			o.Status, len(o.Items), o.Total.StringFixed(2),
		)
	}
	return tw.Flush()
}

func runShow(ctx context.Context, w io.Writer, orders *store.Store, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: orderdesk show <id-or-number>")
	}
	key := args[0]

	all, err := orders.List(ctx)
	if err != nil {
		return err
	}
	for i := range all {
		o := &all[i]
		if o.ID == key || o.OrderNumber == key {
			printOrder(w, o)
			return nil
		}
	}
	return errors.Errorf("order %q not found", key)
}

func runCreate(ctx context.Context, w io.Writer, orders *store.Store, args []string) error {
	var (
		fs       = flag.NewFlagSet("create", flag.ContinueOnError)
		number   = fs.String("number", "", "order number (display string)")
		customer = fs.String("customer", "", "customer name")
		date     = fs.String("date", time.Now().Format(dateLayout), "order date (YYYY-MM-DD)")
		items    itemFlags
	)
	fs.Var(&items, "item", "line item as product:quantity:price (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	orderDate, err := time.Parse(dateLayout, *date)
	if err != nil {
		return errors.Wrapf(err, "parse date %q", *date)
	}

	// Build the draft through the editing arena, the same path an
	// interactive surface would use.
	rows := order.NewItemList()
	for _, raw := range items {
		product, quantity, price, err := parseItem(raw)
		if err != nil {
			return err
		}
		rows.Append(product, quantity, price)
	}
	fmt.Fprintf(w, "draft total: %s\n", rows.Total().StringFixed(2))

	created, err := orders.Create(ctx, rows.Draft(*number, *customer, orderDate))
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "created:")
	printOrder(w, created)
	return nil
}

func printOrder(w io.Writer, o *order.Order) {
	fmt.Fprintf(w, "order %s (%s)\n", o.OrderNumber, o.ID)
	fmt.Fprintf(w, "  customer: %s\n", o.CustomerName)
	fmt.Fprintf(w, "  date:     %s\n", o.OrderDate.Format(dateLayout))
	fmt.Fprintf(w, "  status:   %s\n", o.Status)
	fmt.Fprintf(w, "  created:  %s\n", o.CreatedAt.Format(time.RFC3339))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, item := range o.Items {
		fmt.Fprintf(tw, "  %s\tx%d\t@ %s\t= %s\n",
			item.Product, item.Quantity,
			item.UnitPrice.StringFixed(2), order.LineTotal(item).StringFixed(2),
		)
	}
	tw.Flush()
	fmt.Fprintf(w, "  total:    %s\n", o.Total.StringFixed(2))
}

// itemFlags collects repeated -item flags.
type itemFlags []string

func (f *itemFlags) String() string {
	return strings.Join(*f, ", ")
}

func (f *itemFlags) Set(v string) error {
	*f = append(*f, v)
	return nil
}

// parseItem splits a product:quantity:price argument. The product part
// may itself contain colons; quantity and price are the last two fields.
func parseItem(raw string) (product string, quantity int, price decimal.Decimal, err error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 3 {
		return "", 0, decimal.Zero, errors.Errorf("item %q: want product:quantity:price", raw)
	}
	product = strings.Join(parts[:len(parts)-2], ":")
	quantity, err = strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return "", 0, decimal.Zero, errors.Wrapf(err, "item %q: quantity", raw)
	}
	price, err = decimal.NewFromString(parts[len(parts)-1])
	if err != nil {
		return "", 0, decimal.Zero, errors.Wrapf(err, "item %q: price", raw)
	}
	return product, quantity, price, nil
}
