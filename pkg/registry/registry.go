// Package registry owns the ledger's two mappings: account number to
// Account and username to User. It is the exclusive owner of all accounts.
//
// The registry's RWMutex guards only membership (insertion and lookup);
// mutation of an existing account is delegated entirely to that account's
// own lock. The registry lock is never held while an account lock is
// acquired, and vice versa, so the two lock levels cannot deadlock against
// each other.
package registry

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/avnoor-ludhar/banking/pkg/domain/account"
	"github.com/avnoor-ludhar/banking/pkg/domain/user"
	"github.com/avnoor-ludhar/banking/pkg/money"
)

// Registry maps account numbers to accounts and usernames to users. Both
// keys are unique and immutable once assigned. Created once at process
// start and held for the process lifetime.
type Registry struct {
	mu       sync.RWMutex
	accounts map[string]*account.Account
	users    map[string]*user.User
	logger   *slog.Logger
}

// New creates an empty registry.
func New(logger *slog.Logger) *Registry {
	return &Registry{
		accounts: make(map[string]*account.Account),
		users:    make(map[string]*user.User),
		logger:   logger.With("component", "registry"),
	}
}

// RegisterUser adds a new customer. Fails with user.ErrDuplicateUsername if
// the username is already taken.
func (r *Registry) RegisterUser(fullName, username, address, phone string) (*user.User, error) {
	u, err := user.New(fullName, username, address, phone)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[username]; exists {
		return nil, user.ErrDuplicateUsername
	}
	r.users[username] = u
	r.logger.Info("customer registered", "username", username)
	return u, nil
}

// Open creates an account for an existing user and inserts it into the
// registry. The whole operation is atomic with respect to concurrent opens:
// two opens can never both succeed with the same account number. The
// account is fully constructed, Initial Deposit seeded, before it becomes
// visible in the mapping.
func (r *Registry) Open(username, number string, opening money.Money, kind account.Type, rate float64) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	holder, exists := r.users[username]
	if !exists {
		return nil, user.ErrUserNotFound
	}
	if _, exists := r.accounts[number]; exists {
		return nil, account.ErrDuplicateAccount
	}

	var (
		a   *account.Account
		err error
	)
	switch kind {
	case account.Checking:
		a, err = account.NewChecking(number, holder, opening)
	case account.Savings:
		a, err = account.NewSavings(number, holder, opening, rate)
	default:
		return nil, account.ErrInvalidAccountType
	}
	if err != nil {
		return nil, err
	}

	r.accounts[number] = a
	r.logger.Info("account opened",
		"number", number,
		"username", username,
		"type", a.Type(),
		"opening_balance", opening.String(),
	)
	return a, nil
}

// Account resolves an account by number.
func (r *Registry) Account(number string) (*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, exists := r.accounts[number]
	if !exists {
		return nil, account.ErrAccountNotFound
	}
	return a, nil
}

// User resolves a customer by username.
func (r *Registry) User(username string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, exists := r.users[username]
	if !exists {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

// HasAccount reports whether an account number is taken. Used by the
// account-number generator to retry on collision.
func (r *Registry) HasAccount(number string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.accounts[number]
	return exists
}

// Accounts returns all accounts ordered by account number. The slice is a
// copy; the accounts themselves are shared and guarded by their own locks.
func (r *Registry) Accounts() []*account.Account {
	r.mu.RLock()
	out := make([]*account.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, a)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Number() < out[j].Number() })
	return out
}

// Search returns snapshots of accounts whose owner name, username or
// account number contains the keyword, case-insensitively. Snapshots are
// taken one account at a time under that account's lock.
func (r *Registry) Search(keyword string) []account.Snapshot {
	keyword = strings.ToLower(keyword)

	var matches []account.Snapshot
	for _, a := range r.Accounts() {
		if strings.Contains(strings.ToLower(a.Holder().FullName()), keyword) ||
			strings.Contains(strings.ToLower(a.Holder().Username()), keyword) ||
			strings.Contains(strings.ToLower(a.Number()), keyword) {
			matches = append(matches, a.Snapshot())
		}
	}
	return matches
}
