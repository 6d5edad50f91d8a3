// Command expensecli is a terminal client for the expense tracker API.
// It mirrors the browser client: a local record cache with filtering,
// sorting and totals, preferences and the bearer token persisted under a
// state directory.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/client"
	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/models"
	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/prefs"
)

const usage = `Usage: expensecli [-server <url>] [-state <dir>] <command> [options]

Commands:
  register  -user <name> [-password <pw>]
  login     -user <name> [-password <pw>]
  logout
  list      [-category <c>] [-search <text>] [-from <date>] [-to <date>] [-sort <order>]
  add       -description <d> -amount <a> -category <c> [-date <YYYY-MM-DD>]
  update    -id <id> -description <d> -amount <a> -category <c> -date <YYYY-MM-DD>
  delete    -id <id> [-yes]
  export    [same filters as list] [-o <file>]
  share     -ids <id,id,...> [-currency <symbol>]

Sort orders: date_desc date_asc amount_desc amount_asc description_asc category_asc`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("expensecli", flag.ContinueOnError)
	fs.SetOutput(stderr)

	server := fs.String("server", "http://localhost:8080", "API base URL")
	stateDir := fs.String("state", defaultStateDir(), "State directory for token and preferences")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stdout, usage)
		return fmt.Errorf("missing command")
	}

	store, err := prefs.NewStore(*stateDir)
	if err != nil {
		return fmt.Errorf("failed to open state directory: %w", err)
	}

	c := client.New(*server)
	c.Token = store.Token()
	app := client.NewApp(c)

	command, rest := fs.Arg(0), fs.Args()[1:]
	switch command {
	case "register":
		return runRegister(app, rest, stdin, stdout, stderr)
	case "login":
		return runLogin(app, store, rest, stdin, stdout, stderr)
	case "logout":
		if err := store.ClearCredentials(); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Logged out.")
		return nil
	case "list":
		return runList(app, store, rest, stdout, stderr)
	case "add":
		return runAdd(app, rest, stdout, stderr)
	case "update":
		return runUpdate(app, rest, stdout, stderr)
	case "delete":
		return runDelete(app, rest, stdin, stdout, stderr)
	case "export":
		return runExport(app, store, rest, stdout, stderr)
	case "share":
		return runShare(app, rest, stdout, stderr)
	default:
		fmt.Fprintln(stdout, usage)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func runRegister(app *client.App, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(stderr)
	user := fs.String("user", "", "Username")
	password := fs.String("password", "", "Password (prompted if omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pw, err := resolvePassword(*password, stdin, stdout)
	if err != nil {
		return err
	}
	created, err := app.Client.Register(*user, pw)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "User %s registered with ID %d. You can now login.\n", created.Username, created.ID)
	return nil
}

func runLogin(app *client.App, store *prefs.Store, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(stderr)
	user := fs.String("user", "", "Username")
	password := fs.String("password", "", "Password (prompted if omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pw, err := resolvePassword(*password, stdin, stdout)
	if err != nil {
		return err
	}
	token, loggedIn, err := app.Client.Login(*user, pw)
	if err != nil {
		return err
	}
	if err := store.SaveToken(token); err != nil {
		return err
	}
	if err := store.SaveUsername(loggedIn.Username); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Logged in as %s.\n", loggedIn.Username)
	return nil
}

// applyFilters turns filter flags into session commands, persisting the
// category and sort choice like the browser client does. Flags left unset
// fall back to the saved preference.
func applyFilters(app *client.App, store *prefs.Store, fs *flag.FlagSet, category, search, from, to, sortOrder *string) error {
	saved := store.LoadPreferences()
	cat, srt := saved.Category, saved.SortOrder

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "category":
			cat = *category
		case "sort":
			srt = *sortOrder
		}
	})

	app.Session.Apply(client.SetCategory{Category: cat})
	app.Session.Apply(client.SetSort{Order: client.SortOrder(srt)})
	app.Session.Apply(client.SetSearch{Term: strings.ToLower(strings.TrimSpace(*search))})

	end := *to
	if end != "" {
		// The -to flag is inclusive; the range bound is exclusive.
		parsed, err := time.Parse("2006-01-02", end)
		if err != nil {
			return fmt.Errorf("invalid -to date: %s", end)
		}
		end = parsed.AddDate(0, 0, 1).Format("2006-01-02")
	}
	app.Session.Apply(client.SetDateRange{Range: client.DateRange{Start: *from, End: end}})

	return store.SavePreferences(prefs.Preferences{Category: cat, SortOrder: srt})
}

func listFlags(fs *flag.FlagSet) (category, search, from, to, sortOrder *string) {
	category = fs.String("category", "", "Category filter (default: last used, \"All\" for everything)")
	search = fs.String("search", "", "Case-insensitive description search")
	from = fs.String("from", "", "Start date YYYY-MM-DD (inclusive)")
	to = fs.String("to", "", "End date YYYY-MM-DD (inclusive)")
	sortOrder = fs.String("sort", "", "Sort order (default: last used)")
	return
}

func runList(app *client.App, store *prefs.Store, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	category, search, from, to, sortOrder := listFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := applyFilters(app, store, fs, category, search, from, to, sortOrder); err != nil {
		return err
	}
	if err := app.Refresh(); err != nil {
		return err
	}

	view := app.Session.Project()
	if len(view.Items) == 0 {
		fmt.Fprintln(stdout, "No expenses found.")
	} else {
		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDATE\tDESCRIPTION\tCATEGORY\tAMOUNT")
		for _, e := range view.Items {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f\n", e.ID, e.Date, e.Description, e.Category, e.Amount)
		}
		tw.Flush()
	}
	fmt.Fprintf(stdout, "\nDisplayed total: %.2f\nOverall total:   %.2f\n", view.DisplayedTotal, view.OverallTotal)
	if len(view.Categories) > 0 {
		fmt.Fprintf(stdout, "Categories: %s\n", strings.Join(view.Categories, ", "))
	}
	return nil
}

func runExport(app *client.App, store *prefs.Store, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	category, search, from, to, sortOrder := listFlags(fs)
	outPath := fs.String("o", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := applyFilters(app, store, fs, category, search, from, to, sortOrder); err != nil {
		return err
	}
	if err := app.Refresh(); err != nil {
		return err
	}

	view := app.Session.Project()
	out := stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := view.WriteCSV(out); err != nil {
		return err
	}
	if *outPath != "" {
		fmt.Fprintf(stdout, "Exported %d expenses to %s\n", len(view.Items), *outPath)
	}
	return nil
}

// runShare prints a plain-text summary of the chosen records, suitable
// for pasting into a message.
func runShare(app *client.App, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("share", flag.ContinueOnError)
	fs.SetOutput(stderr)
	ids := fs.String("ids", "", "Comma-separated expense IDs")
	currency := fs.String("currency", "$", "Currency symbol")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *ids == "" {
		return fmt.Errorf("missing required flags: ids")
	}

	if err := app.Refresh(); err != nil {
		return err
	}
	for _, raw := range strings.Split(*ids, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid expense ID: %s", raw)
		}
		if _, ok := app.Session.Get(id); !ok {
			return fmt.Errorf("expense %d not found", id)
		}
		app.Session.Apply(client.ToggleSelect{ID: id})
	}

	fmt.Fprintln(stdout, app.Session.ShareText(*currency))
	return nil
}

func expenseFlags(fs *flag.FlagSet) (description, amountStr, category, date *string) {
	description = fs.String("description", "", "Description")
	amountStr = fs.String("amount", "", "Amount (> 0)")
	category = fs.String("category", "", "Category")
	date = fs.String("date", "", "Date YYYY-MM-DD")
	return
}

func payloadFromFlags(description, amountStr, category, date string) models.ExpensePayload {
	p := models.ExpensePayload{Description: description, Category: category, Date: date}
	if amountStr != "" {
		var amount float64
		if _, err := fmt.Sscanf(amountStr, "%f", &amount); err == nil {
			p.Amount = &amount
		}
	}
	return p
}

func runAdd(app *client.App, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	description, amountStr, category, date := expenseFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *date == "" {
		*date = time.Now().Format("2006-01-02")
	}

	expense, err := app.Add(payloadFromFlags(*description, *amountStr, *category, *date))
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Added expense %d: %s (%s) %.2f on %s\n",
		expense.ID, expense.Description, expense.Category, expense.Amount, expense.Date)
	return nil
}

func runUpdate(app *client.App, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(stderr)
	id := fs.Int64("id", 0, "Expense ID")
	description, amountStr, category, date := expenseFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("missing required flags: id")
	}

	expense, err := app.Update(*id, payloadFromFlags(*description, *amountStr, *category, *date))
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Updated expense %d: %s (%s) %.2f on %s\n",
		expense.ID, expense.Description, expense.Category, expense.Amount, expense.Date)
	return nil
}

func runDelete(app *client.App, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(stderr)
	id := fs.Int64("id", 0, "Expense ID")
	yes := fs.Bool("yes", false, "Skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("missing required flags: id")
	}

	if !*yes {
		fmt.Fprintf(stdout, "Delete expense %d? [y/N]: ", *id)
		scanner := bufio.NewScanner(stdin)
		if !scanner.Scan() || !strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
			fmt.Fprintln(stdout, "Cancelled.")
			return nil
		}
	}

	if err := app.Delete(*id); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Deleted expense %d.\n", *id)
	return nil
}

func resolvePassword(flagValue string, stdin io.Reader, stdout io.Writer) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Fprint(stdout, "Password: ")
	defer fmt.Fprintln(stdout)

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".expensecli"
	}
	return filepath.Join(home, ".expensecli")
}
