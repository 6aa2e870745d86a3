// Package deskctl is the command-line front end for the ticket store: it
// parses a subcommand, calls exactly one store operation and renders the result.
package deskctl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/k1networth/itdesk/internal/ticket"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	usageSummary = `usage: deskctl [--db PATH] <command> [flags]

commands:
  create --user NAME --issue TEXT [--priority Low|Medium|High]
  list
  close ID
`
)

// ErrUsage marks argument errors; Run maps it to ExitUsage.
var ErrUsage = errors.New("usage error")

type App struct {
	Log    *slog.Logger
	Store  ticket.Store
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes one subcommand and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	err := a.dispatch(ctx, args)
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage), isValidation(err):
		fmt.Fprintf(a.Stderr, "error: %v\n\n%s", err, usageSummary)
		return ExitUsage
	default:
		fmt.Fprintf(a.Stderr, "error: %v\n", err)
		return ExitFailure
	}
}

func (a *App) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", ErrUsage)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "create":
		return a.create(ctx, rest)
	case "list":
		return a.list(ctx, rest)
	case "close":
		return a.close(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.Stdout, usageSummary)
		return nil
	}
	return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
}

func (a *App) create(ctx context.Context, args []string) error {
	fs := newFlagSet("create", a.Stderr)
	user := fs.StringP("user", "u", "", "name of the person reporting the issue")
	issue := fs.StringP("issue", "i", "", "issue description")
	prio := fs.StringP("priority", "p", string(ticket.PriorityLow), "Low, Medium or High")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	req := ticket.CreateTicketRequest{UserName: *user, Issue: *issue, Priority: *prio}
	if err := req.Validate(); err != nil {
		return err
	}
	priority, _ := req.PriorityLevel()

	id, err := a.Store.Create(ctx, req.UserName, req.Issue, priority)
	if err != nil {
		return err
	}

	a.Log.Info("ticket_created", slog.Int64("id", id), slog.String("priority", string(priority)))
	fmt.Fprintf(a.Stdout, "Ticket %d created.\n", id)
	return nil
}

func (a *App) list(ctx context.Context, args []string) error {
	fs := newFlagSet("list", a.Stderr)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	tickets, err := a.Store.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(tickets) == 0 {
		fmt.Fprintln(a.Stdout, "No Tickets Found")
		return nil
	}

	tw := tabwriter.NewWriter(a.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Ticket ID\tUser Name\tIssue\tPriority\tStatus\tCreated At\tResolved At")
	for _, t := range tickets {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.UserName, t.Issue, t.Priority, t.Status, t.CreatedAt, t.ResolvedAt)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	sum, err := a.Store.Summary(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Stdout, "\nOpen Tickets: %d\nClosed Tickets: %d\n", sum.Open, sum.Closed)
	return nil
}

var errCloseRejected = errors.New("invalid ticket id or ticket already closed")

func (a *App) close(ctx context.Context, args []string) error {
	fs := newFlagSet("close", a.Stderr)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: close takes exactly one ticket id", ErrUsage)
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil || id < 1 {
		return fmt.Errorf("%w: ticket id must be a positive integer", ErrUsage)
	}

	ok, err := a.Store.CloseTicket(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errCloseRejected
	}

	a.Log.Info("ticket_closed", slog.Int64("id", id))
	fmt.Fprintf(a.Stdout, "Ticket %d closed.\n", id)
	return nil
}

func newFlagSet(name string, out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func isValidation(err error) bool {
	var verr ticket.ValidationError
	return errors.As(err, &verr)
}
