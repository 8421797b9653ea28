package selector

import (
	"sort"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// feeSelect returns the transactions paying the highest fee first. Equal
// fees keep the order they were accepted in.
var feeSelect = func(transactions []database.Tx, howMany int) []database.Tx {

	/*
		Bill: {Amount: 10, Fee: 0.1, TimeStamp: 1},
		Pavl: {Amount: 50, Fee: 0.5, TimeStamp: 2},
		Edua: {Amount: 10, Fee: 0.1, TimeStamp: 3},
		Bill: {Amount: 90, Fee: 0.9, TimeStamp: 4},
	*/

	sort.Stable(byFee(transactions))

	/*
		Bill: {Amount: 90, Fee: 0.9, TimeStamp: 4},
		Pavl: {Amount: 50, Fee: 0.5, TimeStamp: 2},
		Bill: {Amount: 10, Fee: 0.1, TimeStamp: 1},
		Edua: {Amount: 10, Fee: 0.1, TimeStamp: 3},
	*/

	return limit(transactions, howMany)
}

// =============================================================================

// byFee provides sorting support by the transaction fee value.
type byFee []database.Tx

// Len returns the number of transactions in the list.
func (bf byFee) Len() int {
	return len(bf)
}

// Less helps to sort the list by fee in descending order to pick the
// transactions that provide the best reward.
func (bf byFee) Less(i, j int) bool {
	return bf[i].Fee.GreaterThan(bf[j].Fee)
}

// Swap moves transactions in the order of the fee value.
func (bf byFee) Swap(i, j int) {
	bf[i], bf[j] = bf[j], bf[i]
}
