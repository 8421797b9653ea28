// Package selector provides different transaction selecting algorithms.
package selector

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// List of different select strategies.
const (
	StrategyFIFO = "fifo"
	StrategyFee  = "fee"
)

// Map of different select strategies with functions.
var strategies = map[string]Func{
	StrategyFIFO: fifoSelect,
	StrategyFee:  feeSelect,
}

// Func defines a function that takes the pending transactions in the order
// they were accepted and selects howMany of them in an order based on the
// functions strategy. Receiving -1 for howMany must return all the
// transactions in the strategies ordering. The input slice is owned by the
// function and may be reordered.
type Func func(transactions []database.Tx, howMany int) []database.Tx

// Retrieve returns the specified select strategy function.
func Retrieve(strategy string) (Func, error) {
	fn, exists := strategies[strategy]
	if !exists {
		return nil, fmt.Errorf("strategy %q does not exist", strategy)
	}
	return fn, nil
}

// =============================================================================

// limit returns the first howMany transactions, or all of them for -1.
func limit(transactions []database.Tx, howMany int) []database.Tx {
	if howMany < 0 || howMany > len(transactions) {
		howMany = len(transactions)
	}

	final := make([]database.Tx, howMany)
	copy(final, transactions[:howMany])

	return final
}
