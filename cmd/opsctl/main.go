// Command opsctl inspects and seeds the ordering database.
//
// Usage:
//
//	opsctl stuck-payments [-older-than 48h]
//	opsctl ledger -member <uuid> [-limit 20]
//	opsctl checklist -order <uuid>
//	opsctl seed-member -name <franchise> -location <city> [-id <uuid>]
//	opsctl seed-item -name <item> -price <amount> [-id <uuid>]
//	opsctl token -user <uuid> -role <owner|admin|franchise> [-location <city>] [-ttl 24h]
//
// Configuration is read from the same environment as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"ordering/cmd"
	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/changefeed"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/member"

	"github.com/labstack/gommon/log"
	"github.com/olekukonko/tablewriter"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: configs.LogLevel}))

	ctx := context.Background()
	name, args := os.Args[1], os.Args[2:]

	if name == "token" {
		err = runToken(configs, args, os.Stdout)
	} else {
		var app *cmd.CompositionRoot
		app, err = openApp(configs, logger)
		if err != nil {
			log.Fatalf("Error opening database: %v", err)
		}
		err = run(ctx, app, name, args, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "opsctl %s: %v\n", name, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: opsctl <stuck-payments|ledger|checklist|seed-member|seed-item|token> [flags]")
}

// openApp connects without a remote change feed; seeded rows are published to an
// in-process feed nobody observes.
func openApp(configs cmd.Config, logger *slog.Logger) (*cmd.CompositionRoot, error) {
	gormDB, err := postgres.Open(configs.Database())
	if err != nil {
		return nil, err
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return nil, err
	}
	return cmd.NewCompositionRoot(configs, gormDB, changefeed.NewMemoryFeed(logger), logger), nil
}

func run(ctx context.Context, app *cmd.CompositionRoot, name string, args []string, out io.Writer) error {
	operator, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleOwner, "")
	if err != nil {
		return err
	}

	switch name {
	case "stuck-payments":
		return stuckPayments(ctx, app, args, out)
	case "ledger":
		return ledger(ctx, app, operator, args, out)
	case "checklist":
		return checklist(ctx, app, operator, args, out)
	case "seed-member":
		return seedMember(ctx, app, operator, args, out)
	case "seed-item":
		return seedItem(ctx, app, args, out)
	default:
		usage()
		return fmt.Errorf("unknown command %q", name)
	}
}

func stuckPayments(ctx context.Context, app *cmd.CompositionRoot, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("stuck-payments", flag.ContinueOnError)
	olderThan := fs.Duration("older-than", cmd.DefaultPendingPaymentTTL, "minimum time spent in payment_pending")
	if err := fs.Parse(args); err != nil {
		return err
	}

	query, err := queries.NewGetStuckPaymentsQuery(*olderThan, time.Now())
	if err != nil {
		return err
	}
	views, err := app.CreateGetStuckPaymentsQueryHandler().Handle(ctx, query)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(out)
	table.Header("Order", "Franchise", "Total", "Pending since", "Gateway order", "Pending records")
	for _, v := range views {
		if err = table.Append([]string{
			v.OrderID.String(),
			v.FranchiseName,
			v.TotalAmount.String(),
			v.PendingSince.Format(time.RFC3339),
			v.GatewayOrderID,
			strconv.Itoa(v.PendingRecords),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func ledger(ctx context.Context, app *cmd.CompositionRoot, operator kernel.Actor, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("ledger", flag.ContinueOnError)
	memberFlag := fs.String("member", "", "member id")
	limit := fs.Int("limit", 20, "transactions to show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	memberID, err := kernel.UUIDFromString(*memberFlag)
	if err != nil {
		return fmt.Errorf("-member: %w", err)
	}

	query, err := queries.NewGetLoyaltyAccountQuery(memberID, operator, *limit)
	if err != nil {
		return err
	}
	view, err := app.CreateGetLoyaltyAccountQueryHandler().Handle(ctx, query)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "balance %d, earned %d, redeemed %d\n", view.Balance, view.TotalEarned, view.TotalRedeemed)
	table := tablewriter.NewWriter(out)
	table.Header("When", "Kind", "Points", "Order", "Description")
	for _, tx := range view.Transactions {
		orderRef := ""
		if tx.OrderID != nil {
			orderRef = tx.OrderID.String()
		}
		if err = table.Append([]string{
			tx.CreatedAt.Format(time.RFC3339),
			tx.Kind.String(),
			strconv.Itoa(tx.Points),
			orderRef,
			tx.Description,
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func checklist(ctx context.Context, app *cmd.CompositionRoot, operator kernel.Actor, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("checklist", flag.ContinueOnError)
	orderFlag := fs.String("order", "", "order id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	orderID, err := kernel.UUIDFromString(*orderFlag)
	if err != nil {
		return fmt.Errorf("-order: %w", err)
	}

	query, err := queries.NewGetPackingChecklistQuery(orderID, operator)
	if err != nil {
		return err
	}
	view, err := app.CreateGetPackingChecklistQueryHandler().Handle(ctx, query)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "order %s (%s): %d/%d packed\n", view.OrderID, view.OrderStatus, view.Packed, view.Total)
	table := tablewriter.NewWriter(out)
	table.Header("Item", "Quantity", "Packed", "Packed at")
	for _, e := range view.Entries {
		packedAt := ""
		if e.PackedAt != nil {
			packedAt = e.PackedAt.Format(time.RFC3339)
		}
		if err = table.Append([]string{
			e.ItemName,
			strconv.Itoa(e.Quantity),
			strconv.FormatBool(e.Packed),
			packedAt,
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func seedMember(ctx context.Context, app *cmd.CompositionRoot, operator kernel.Actor, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("seed-member", flag.ContinueOnError)
	idFlag := fs.String("id", "", "member id (generated when empty)")
	name := fs.String("name", "", "franchise name")
	location := fs.String("location", "", "franchise location")
	status := fs.String("status", member.Approved.String(), "initial status")
	if err := fs.Parse(args); err != nil {
		return err
	}
	memberID, err := idOrNew(*idFlag)
	if err != nil {
		return err
	}
	st, err := member.ParseStatus(*status)
	if err != nil {
		return err
	}

	register, err := commands.NewRegisterMemberCommand(memberID, *name, *location)
	if err != nil {
		return err
	}
	if err = app.CreateRegisterMemberCommandHandler().Handle(ctx, register); err != nil {
		return err
	}
	update, err := commands.NewUpdateMemberStatusCommand(memberID, operator, st, st == member.Approved || st == member.Verified)
	if err != nil {
		return err
	}
	if err = app.CreateUpdateMemberStatusCommandHandler().Handle(ctx, update); err != nil {
		return err
	}

	fmt.Fprintln(out, memberID.String())
	return nil
}

func seedItem(ctx context.Context, app *cmd.CompositionRoot, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("seed-item", flag.ContinueOnError)
	idFlag := fs.String("id", "", "item id (generated when empty)")
	name := fs.String("name", "", "item name")
	price := fs.String("price", "", "unit price, e.g. 450.00")
	if err := fs.Parse(args); err != nil {
		return err
	}
	itemID, err := idOrNew(*idFlag)
	if err != nil {
		return err
	}
	unitPrice, err := kernel.MoneyFromString(*price)
	if err != nil {
		return err
	}

	add, err := commands.NewAddCatalogItemCommand(itemID, *name, unitPrice)
	if err != nil {
		return err
	}
	if err = app.CreateAddCatalogItemCommandHandler().Handle(ctx, add); err != nil {
		return err
	}

	fmt.Fprintln(out, itemID.String())
	return nil
}

// runToken issues a bearer token for local testing against the API.
func runToken(configs cmd.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	userFlag := fs.String("user", "", "user or member id")
	roleFlag := fs.String("role", kernel.RoleFranchise.String(), "owner, admin or franchise")
	location := fs.String("location", "", "franchise location")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if configs.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}
	userID, err := kernel.UUIDFromString(*userFlag)
	if err != nil {
		return fmt.Errorf("-user: %w", err)
	}
	role, err := kernel.ParseRole(*roleFlag)
	if err != nil {
		return err
	}
	actor, err := kernel.NewActor(userID, role, *location)
	if err != nil {
		return err
	}

	token, err := httpin.IssueToken([]byte(configs.JWTSecret), actor, *ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, token)
	return nil
}

func idOrNew(s string) (kernel.UUID, error) {
	if s == "" {
		return kernel.NewUUID(), nil
	}
	return kernel.UUIDFromString(s)
}
