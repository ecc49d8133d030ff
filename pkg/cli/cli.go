// Package cli implements the interactive menu surface over the ledger. It
// performs the format validation the core deliberately does not (names,
// phone numbers, addresses, amounts) and hands the core normalized,
// pre-validated parameters only.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/avnoor-ludhar/banking/pkg/app"
	"github.com/avnoor-ludhar/banking/pkg/domain/account"
	"github.com/avnoor-ludhar/banking/pkg/money"
	"github.com/avnoor-ludhar/banking/pkg/service/report"
	"github.com/avnoor-ludhar/banking/pkg/service/transaction"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
)

// CLI drives the menu loop. Input, output and the password reader are
// injectable for tests.
type CLI struct {
	app      *app.App
	in       *bufio.Scanner
	out      io.Writer
	logger   *slog.Logger
	validate *inputValidator

	// password reads the admin credential; defaults to a no-echo terminal
	// read when stdin is a TTY.
	password func() (string, error)
}

// New builds a CLI over the application.
func New(a *app.App, in io.Reader, out io.Writer, logger *slog.Logger) *CLI {
	c := &CLI{
		app:      a,
		in:       bufio.NewScanner(in),
		out:      out,
		logger:   logger.With("component", "cli"),
		validate: newInputValidator(),
	}
	c.password = c.readSecret
	return c
}

// Run executes the menu loop until the user exits or input is exhausted.
func (c *CLI) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		heading.Fprintln(c.out, "\nWelcome to the Bank Management System!")
		fmt.Fprintln(c.out, "------------------------------------------------")
		fmt.Fprintln(c.out, "1. Register New Customer")
		fmt.Fprintln(c.out, "2. Open Account")
		fmt.Fprintln(c.out, "3. Perform Transaction")
		fmt.Fprintln(c.out, "4. View Account")
		fmt.Fprintln(c.out, "5. Search Accounts")
		fmt.Fprintln(c.out, "6. Generate Report")
		fmt.Fprintln(c.out, "7. Update Account Information")
		fmt.Fprintln(c.out, "8. Admin Actions")
		fmt.Fprintln(c.out, "9. Exit")

		choice, ok := c.prompt("\nPlease select an option (1-9): ")
		if !ok {
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "1":
			c.registerCustomer()
		case "2":
			c.openAccount()
		case "3":
			c.performTransaction(ctx)
		case "4":
			c.viewAccount()
		case "5":
			c.searchAccounts()
		case "6":
			c.generateReport()
		case "7":
			c.updateContactInfo()
		case "8":
			c.adminActions()
		case "9":
			fmt.Fprintln(c.out, "Thank you for using the Bank Management System.")
			return nil
		default:
			failure.Fprintln(c.out, "Invalid option. Please select again.")
		}
	}
}

// prompt writes the prompt and reads one line. ok is false on EOF.
func (c *CLI) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *CLI) readSecret() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		defer fmt.Fprintln(c.out)
		secret, err := term.ReadPassword(fd)
		return string(secret), err
	}
	line, ok := c.prompt("")
	if !ok {
		return "", io.EOF
	}
	return line, nil
}

func (c *CLI) registerCustomer() {
	fullName, ok := c.prompt("Enter customer full name: ")
	if !ok {
		return
	}
	username, ok := c.prompt("Enter username: ")
	if !ok {
		return
	}
	address, ok := c.prompt("Enter address: ")
	if !ok {
		return
	}
	phone, ok := c.prompt("Enter phone number: ")
	if !ok {
		return
	}

	if msg := c.validate.registration(fullName, username, address, phone); msg != "" {
		failure.Fprintln(c.out, msg)
		return
	}
	if _, err := c.app.Registry.RegisterUser(fullName, username, address, phone); err != nil {
		failure.Fprintln(c.out, err.Error())
		return
	}
	success.Fprintln(c.out, "Customer registered successfully!")
}

func (c *CLI) openAccount() {
	username, ok := c.prompt("Enter customer username: ")
	if !ok {
		return
	}
	if _, err := c.app.Registry.User(username); err != nil {
		failure.Fprintln(c.out, err.Error())
		return
	}

	kindInput, ok := c.prompt("Select account type (Checking/Savings): ")
	if !ok {
		return
	}
	kind, err := account.ParseType(kindInput)
	if err != nil {
		failure.Fprintln(c.out, "Must input a checking or savings account.")
		return
	}

	opening, ok := c.promptAmount("Initial deposit: ")
	if !ok {
		return
	}

	number := AccountNumber(c.app.Registry.HasAccount)
	acct, err := c.app.OpenAccount(username, number, opening, kind)
	if err != nil {
		failure.Fprintln(c.out, err.Error())
		return
	}
	success.Fprintf(c.out, "Account opened successfully with account number: %s\n", acct.Number())
}

// promptAmount reads and validates a positive monetary amount in the
// ledger's currency.
func (c *CLI) promptAmount(label string) (money.Money, bool) {
	raw, ok := c.prompt(label)
	if !ok {
		return money.Money{}, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		failure.Fprintln(c.out, "Invalid input. Please enter a valid amount.")
		return money.Money{}, false
	}
	amount, err := money.New(value, c.app.Currency())
	if err != nil || !amount.IsPositive() {
		failure.Fprintln(c.out, "Amount must be greater than zero.")
		return money.Money{}, false
	}
	return amount, true
}

func (c *CLI) performTransaction(ctx context.Context) {
	number, ok := c.prompt("Enter account number: ")
	if !ok {
		return
	}
	if _, err := c.app.Registry.Account(number); err != nil {
		failure.Fprintln(c.out, err.Error())
		return
	}

	kindInput, ok := c.prompt("Select transaction type (Deposit/Withdrawal/Transfer): ")
	if !ok {
		return
	}
	var kind transaction.Kind
	switch strings.ToLower(kindInput) {
	case "deposit":
		kind = transaction.Deposit
	case "withdrawal":
		kind = transaction.Withdrawal
	case "transfer":
		kind = transaction.Transfer
	default:
		failure.Fprintln(c.out, "Invalid transaction type. Must be Deposit, Withdrawal, or Transfer.")
		return
	}

	amount, ok := c.promptAmount("Amount: ")
	if !ok {
		return
	}

	req := transaction.Request{Kind: kind, AccountNumber: number, Amount: amount}
	if kind == transaction.Transfer {
		dest, ok := c.prompt("Enter destination account number: ")
		if !ok {
			return
		}
		req.Destination = dest
	}

	// The menu waits for the outcome; other submitters need not.
	task := c.app.Engine.Submit(req)
	waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := task.Wait(waitCtx); err != nil {
		failure.Fprintln(c.out, err.Error())
		return
	}
	success.Fprintf(c.out, "Transaction successful! New balance: %s\n", task.Balance())
}

func (c *CLI) viewAccount() {
	number, ok := c.prompt("Enter account number: ")
	if !ok {
		return
	}
	acct, err := c.app.Registry.Account(number)
	if err != nil {
		failure.Fprintln(c.out, err.Error())
		return
	}
	heading.Fprintln(c.out, "Account Details:")
	if err := report.WriteAccount(c.out, acct.Snapshot()); err != nil {
		c.logger.Error("failed to render account", "error", err)
	}
}

func (c *CLI) searchAccounts() {
	keyword, ok := c.prompt("Enter name, username or account number to search: ")
	if !ok {
		return
	}
	matches := c.app.Registry.Search(keyword)
	if len(matches) == 0 {
		failure.Fprintln(c.out, "No accounts found matching the search criteria.")
		return
	}
	for _, snap := range matches {
		fmt.Fprintf(c.out, "Owner: %s\nAccount Number: %s\nType: %s\nBalance: %s\n\n",
			snap.Owner, snap.Number, snap.Type, snap.Balance)
	}
}

func (c *CLI) generateReport() {
	fmt.Fprintln(c.out, "Report is being generated asynchronously.")
	done := c.app.GenerateReport()
	go func() {
		if err := <-done; err != nil {
			c.logger.Error("report generation failed", "error", err)
		}
	}()
}

func (c *CLI) updateContactInfo() {
	number, ok := c.prompt("Enter account number: ")
	if !ok {
		return
	}
	acct, err := c.app.Registry.Account(number)
	if err != nil {
		failure.Fprintln(c.out, err.Error())
		return
	}

	address, ok := c.prompt("Enter new address (leave blank to keep current): ")
	if !ok {
		return
	}
	phone, ok := c.prompt("Enter new phone number (leave blank to keep current): ")
	if !ok {
		return
	}
	if msg := c.validate.contact(address, phone); msg != "" {
		failure.Fprintln(c.out, msg)
		return
	}

	acct.Holder().UpdateContact(address, phone)
	success.Fprintln(c.out, "Account information updated successfully.")
}

func (c *CLI) adminActions() {
	fmt.Fprint(c.out, "Enter admin password: ")
	password, err := c.password()
	if err != nil {
		failure.Fprintln(c.out, "Could not read password.")
		return
	}
	if !c.app.Gate.Authorize(password) {
		failure.Fprintln(c.out, "Invalid password. Access denied.")
		return
	}

	for {
		heading.Fprintln(c.out, "\nAdmin Actions:")
		fmt.Fprintln(c.out, "1. Monitor Accounts")
		fmt.Fprintln(c.out, "2. Generate Report")
		fmt.Fprintln(c.out, "3. Exit")

		choice, ok := c.prompt("\nPlease select an option (1-3): ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			c.monitorAccounts()
		case "2":
			c.generateReport()
		case "3":
			return
		default:
			failure.Fprintln(c.out, "Invalid option. Please select again.")
		}
	}
}

func (c *CLI) monitorAccounts() {
	heading.Fprintln(c.out, "Monitoring all accounts:")
	for _, acct := range c.app.Registry.Accounts() {
		if err := report.WriteAccount(c.out, acct.Snapshot()); err != nil {
			c.logger.Error("failed to render account", "error", err)
			return
		}
		fmt.Fprintln(c.out)
	}
}
