package selector_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool/selector"
	"github.com/shopspring/decimal"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const (
	bill = database.Address("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")
	pavl = database.Address("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")
	edua = database.Address("0xbEE6ACE826eC3DE1B6349888B9151B92522F7F76")
	to   = database.Address("0x6Fe6CF3c8fF57c58d24BfC869668F48BCbDb3BD9")
)

func tran(from database.Address, amount int64, ts uint64) database.Tx {
	return database.NewTx(from, to, decimal.NewFromInt(amount), decimal.RequireFromString("0.01"), ts)
}

func TestSelect(t *testing.T) {
	type test struct {
		name     string
		strategy string
		txs      []database.Tx
		howMany  int
		best     []uint64
	}

	txs := func() []database.Tx {
		return []database.Tx{
			tran(bill, 10, 1),
			tran(pavl, 50, 2),
			tran(edua, 10, 3),
			tran(bill, 90, 4),
		}
	}

	tt := []test{
		{name: "fifo-all", strategy: selector.StrategyFIFO, txs: txs(), howMany: -1, best: []uint64{1, 2, 3, 4}},
		{name: "fifo-two", strategy: selector.StrategyFIFO, txs: txs(), howMany: 2, best: []uint64{1, 2}},
		{name: "fee-all", strategy: selector.StrategyFee, txs: txs(), howMany: -1, best: []uint64{4, 2, 1, 3}},
		{name: "fee-three", strategy: selector.StrategyFee, txs: txs(), howMany: 3, best: []uint64{4, 2, 1}},
		{name: "fee-more", strategy: selector.StrategyFee, txs: txs(), howMany: 10, best: []uint64{4, 2, 1, 3}},
		{name: "empty", strategy: selector.StrategyFee, txs: nil, howMany: -1, best: []uint64{}},
	}

	t.Log("Given the need to select transactions for the next block.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen selecting %d transactions with strategy %s.", testID, tst.howMany, tst.strategy)
				{
					fn, err := selector.Retrieve(tst.strategy)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to retrieve the strategy: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to retrieve the strategy.", success, testID)

					best := fn(tst.txs, tst.howMany)
					if len(best) != len(tst.best) {
						t.Fatalf("\t%s\tTest %d:\tShould get back %d transactions: got %d", failed, testID, len(tst.best), len(best))
					}

					for i, tx := range best {
						if tx.TimeStamp != tst.best[i] {
							t.Logf("\t%s\tTest %d:\tgot: %d", failed, testID, tx.TimeStamp)
							t.Logf("\t%s\tTest %d:\texp: %d", failed, testID, tst.best[i])
							t.Fatalf("\t%s\tTest %d:\tShould get back the right order.", failed, testID)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould get back the right order.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func TestRetrieveUnknown(t *testing.T) {
	t.Log("Given the need to reject unknown strategies.")
	{
		if _, err := selector.Retrieve("tip"); err == nil {
			t.Fatalf("\t%s\tShould not find strategy tip.", failed)
		}
		t.Logf("\t%s\tShould not find strategy tip.", success)
	}
}
