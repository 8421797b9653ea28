package selector

import "github.com/ardanlabs/ledger/foundation/blockchain/database"

// fifoSelect returns transactions in the order they were accepted.
var fifoSelect = func(transactions []database.Tx, howMany int) []database.Tx {
	return limit(transactions, howMany)
}
