package database

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet represents a registered participant of the ledger.
type Wallet struct {
	ID      uuid.UUID       `json:"id"`
	Address Address         `json:"address"`
	Email   string          `json:"email"`
	Balance decimal.Decimal `json:"balance"`
}

// =============================================================================

// Wallets maintains the balance of every wallet. Balances only change by
// applying a mined block.
type Wallets struct {
	mu        sync.RWMutex
	wallets   map[Address]Wallet
	emails    map[string]Address
	newAddr   func() (Address, error)
	checkMail *validator.Validate
}

// WalletsOption represents an option for constructing the wallet ledger.
type WalletsOption func(w *Wallets)

// WithAddressGenerator replaces the function used to generate new wallet
// addresses.
func WithAddressGenerator(fn func() (Address, error)) WalletsOption {
	return func(w *Wallets) {
		w.newAddr = fn
	}
}

// NewWallets constructs an empty wallet ledger.
func NewWallets(options ...WalletsOption) *Wallets {
	w := Wallets{
		wallets:   make(map[Address]Wallet),
		emails:    make(map[string]Address),
		newAddr:   NewAddress,
		checkMail: validator.New(),
	}

	for _, option := range options {
		option(&w)
	}

	return &w
}

// Create registers a new wallet for the email with a zero balance and
// returns the generated address.
func (w *Wallets) Create(email string) (Wallet, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := w.checkMail.Var(email, "required,email"); err != nil {
		return Wallet{}, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.emails[email]; exists {
		return Wallet{}, fmt.Errorf("%w: email %s", ErrDuplicateWallet, email)
	}

	// Generate until an unused address is found.
	var address Address
	for {
		addr, err := w.newAddr()
		if err != nil {
			return Wallet{}, fmt.Errorf("generate address: %w", err)
		}

		if _, exists := w.wallets[addr]; !exists {
			address = addr
			break
		}
	}

	wallet := Wallet{
		ID:      uuid.New(),
		Address: address,
		Email:   email,
		Balance: decimal.Zero,
	}

	w.wallets[address] = wallet
	w.emails[email] = address

	return wallet, nil
}

// Get returns the wallet for the specified address.
func (w *Wallets) Get(address Address) (Wallet, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	wallet, exists := w.wallets[address]
	if !exists {
		return Wallet{}, fmt.Errorf("%w: %s", ErrWalletNotFound, address)
	}

	return wallet, nil
}

// Balance returns the balance for the specified address.
func (w *Wallets) Balance(address Address) (decimal.Decimal, error) {
	wallet, err := w.Get(address)
	if err != nil {
		return decimal.Zero, err
	}

	return wallet.Balance, nil
}

// Exists reports whether a wallet is registered for the address.
func (w *Wallets) Exists(address Address) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	_, exists := w.wallets[address]
	return exists
}

// Count returns the number of registered wallets.
func (w *Wallets) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return len(w.wallets)
}

// Copy makes a copy of the current wallets.
func (w *Wallets) Copy() map[Address]Wallet {
	w.mu.RLock()
	defer w.mu.RUnlock()

	wallets := make(map[Address]Wallet, len(w.wallets))
	for address, wallet := range w.wallets {
		wallets[address] = wallet
	}

	return wallets
}

// ApplyBlock updates the balances of every wallet touched by the block.
// Each sender pays the amount plus the fee, each receiver gets the amount
// and the beneficiary gets the mining reward plus the total fees. The changes
// are staged first and only committed when every balance stays non-negative.
func (w *Wallets) ApplyBlock(block Block) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	staged := make(map[Address]Wallet)
	lookup := func(address Address) (Wallet, error) {
		if wallet, exists := staged[address]; exists {
			return wallet, nil
		}

		wallet, exists := w.wallets[address]
		if !exists {
			return Wallet{}, fmt.Errorf("%w: %s", ErrWalletNotFound, address)
		}

		return wallet, nil
	}

	for _, tx := range block.Values() {
		from, err := lookup(tx.From)
		if err != nil {
			return fmt.Errorf("tx[%s]: from: %w", tx.Hash, err)
		}

		from.Balance = from.Balance.Sub(tx.Cost())
		if from.Balance.IsNegative() {
			return fmt.Errorf("tx[%s]: %w: %s", tx.Hash, ErrInsufficientBalance, tx.From)
		}
		staged[tx.From] = from

		to, err := lookup(tx.To)
		if err != nil {
			return fmt.Errorf("tx[%s]: to: %w", tx.Hash, err)
		}

		to.Balance = to.Balance.Add(tx.Amount)
		staged[tx.To] = to
	}

	earned := block.Header.MiningReward.Add(block.Header.TotalFees)
	if !earned.IsZero() {
		beneficiary, err := lookup(block.Header.BeneficiaryID)
		if err != nil {
			return fmt.Errorf("beneficiary: %w", err)
		}

		beneficiary.Balance = beneficiary.Balance.Add(earned)
		staged[block.Header.BeneficiaryID] = beneficiary
	}

	for address, wallet := range staged {
		w.wallets[address] = wallet
	}

	return nil
}
