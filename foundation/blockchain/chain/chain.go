// Package chain is the core API for the ledger and implements all the
// business rules and processing.
package chain

import (
	"fmt"
	"sync"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool/selector"
	"github.com/ardanlabs/ledger/foundation/blockchain/pow"
	"github.com/shopspring/decimal"
)

// Set of errors returned by the chain.
var (
	ErrInvalidConfiguration = database.ErrInvalidConfiguration
	ErrWalletNotFound       = database.ErrWalletNotFound
	ErrTransactionNotFound  = database.ErrTransactionNotFound
	ErrDuplicateWallet      = database.ErrDuplicateWallet
	ErrDuplicateTransaction = database.ErrDuplicateTransaction
	ErrInsufficientBalance  = database.ErrInsufficientBalance
	ErrInvalidAmount        = database.ErrInvalidAmount
	ErrInvalidPagination    = database.ErrInvalidPagination
	ErrEmptyPool            = database.ErrEmptyPool
	ErrSelfTransfer         = database.ErrSelfTransfer
	ErrInvalidEmail         = database.ErrInvalidEmail
	ErrSystemSender         = database.ErrSystemSender
)

// SystemEmail is the email of the wallet the chain creates to receive
// mining rewards and fees until another beneficiary is set.
const SystemEmail = "system@ledger.local"

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of the chain. It can be called while the chain
// lock is held, so it must not call back into the chain.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for mining in the background.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining() (done func())
}

// =============================================================================

// Config represents the configuration required to build a chain.
type Config struct {
	Difficulty     float64
	Reward         decimal.Decimal
	Fee            decimal.Decimal
	TransPerBlock  uint16              // Maximum transactions per block, 0 for no limit.
	SelectStrategy string              // Mempool select strategy, defaults to fifo.
	Storage        database.Serializer // Optional block archive.
	EvHandler      EventHandler
	Clock          func() time.Time
}

// Settings represents the mutable configuration of a chain.
type Settings struct {
	Difficulty  float64          `json:"difficulty"`
	Reward      decimal.Decimal  `json:"reward"`
	Fee         decimal.Decimal  `json:"fee"`
	Beneficiary database.Address `json:"beneficiary"`
}

// Chain manages the blocks, the pending transactions and the wallets.
type Chain struct {
	evHandler     EventHandler
	clock         func() time.Time
	transPerBlock int
	storage       database.Serializer
	system        database.Address

	mu       sync.RWMutex
	settings Settings
	blocks   []database.Block
	txIndex  map[string]database.Tx

	miningMu sync.Mutex

	mempool *mempool.Mempool
	wallets *database.Wallets

	Worker Worker
}

// New validates the configuration and constructs a chain seeded with a
// mined genesis block.
func New(cfg Config) (*Chain, error) {
	if err := validateSettings(cfg.Difficulty, cfg.Reward, cfg.Fee); err != nil {
		return nil, err
	}

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	strategy := cfg.SelectStrategy
	if strategy == "" {
		strategy = selector.StrategyFIFO
	}

	// Construct a mempool with the specified select strategy.
	mp, err := mempool.NewWithStrategy(strategy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	transPerBlock := -1
	if cfg.TransPerBlock > 0 {
		transPerBlock = int(cfg.TransPerBlock)
	}

	// The system wallet is the default beneficiary of every block.
	wallets := database.NewWallets()
	system, err := wallets.Create(SystemEmail)
	if err != nil {
		return nil, fmt.Errorf("create system wallet: %w", err)
	}

	c := Chain{
		evHandler:     ev,
		clock:         clock,
		transPerBlock: transPerBlock,
		storage:       cfg.Storage,
		system:        system.Address,
		settings: Settings{
			Difficulty:  cfg.Difficulty,
			Reward:      cfg.Reward,
			Fee:         cfg.Fee,
			Beneficiary: system.Address,
		},
		txIndex: make(map[string]database.Tx),
		mempool: mp,
		wallets: wallets,
	}

	if err := c.mineGenesis(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Shutdown cleanly brings the chain down.
func (c *Chain) Shutdown() error {
	c.evHandler("chain: Shutdown: started")
	defer c.evHandler("chain: Shutdown: completed")

	// Stop all blockchain writing activity.
	if c.Worker != nil {
		c.Worker.Shutdown()
	}

	if c.storage != nil {
		return c.storage.Close()
	}

	return nil
}

// =============================================================================

// validateSettings checks the chain parameters are in their domains.
func validateSettings(difficulty float64, reward decimal.Decimal, fee decimal.Decimal) error {
	if err := validateDifficulty(difficulty); err != nil {
		return err
	}

	if err := validateReward(reward); err != nil {
		return err
	}

	return validateFee(fee)
}

func validateDifficulty(difficulty float64) error {
	if !(difficulty >= pow.MinDifficulty) || difficulty > pow.MaxDifficulty {
		return fmt.Errorf("%w: difficulty %v must be in [%d, %d]", ErrInvalidConfiguration, difficulty, pow.MinDifficulty, pow.MaxDifficulty)
	}

	return nil
}

func validateReward(reward decimal.Decimal) error {
	if reward.IsNegative() {
		return fmt.Errorf("%w: reward %s must not be negative", ErrInvalidConfiguration, reward)
	}

	return nil
}

func validateFee(fee decimal.Decimal) error {
	if fee.IsNegative() || fee.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: fee %s must be in [0, 1]", ErrInvalidConfiguration, fee)
	}

	return nil
}
