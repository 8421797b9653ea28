package disk_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/storage/disk"
	"github.com/shopspring/decimal"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestReadWrite(t *testing.T) {
	t.Log("Given the need to archive blocks on disk.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen writing and reading back a chain of blocks.", testID)
		{
			d, err := disk.New(t.TempDir())
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to open the disk storage: %v", failed, testID, err)
			}
			defer d.Close()
			t.Logf("\t%s\tTest %d:\tShould be able to open the disk storage.", success, testID)

			blocks := mine(t, 3)
			for _, block := range blocks {
				if err := d.Write(database.NewBlockData(block)); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to write block %d: %v", failed, testID, block.Header.Number, err)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould be able to write the blocks.", success, testID)

			iter := database.NewBlockIterator(d)
			var prev *database.Block
			var count int
			for {
				block, err := iter.Next()
				if errors.Is(err, database.ErrEndOfChain) {
					break
				}
				if err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to read block %d: %v", failed, testID, count, err)
				}

				if block.Hash() != blocks[count].Hash() {
					t.Fatalf("\t%s\tTest %d:\tShould read back the same block %d.", failed, testID, count)
				}

				if prev != nil {
					if err := block.ValidateBlock(*prev, func(string, ...any) {}); err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould read back a valid chain: %v", failed, testID, err)
					}
				}

				prev = &block
				count++
			}

			if count != len(blocks) || !iter.Done() {
				t.Fatalf("\t%s\tTest %d:\tShould iterate every block: got %d", failed, testID, count)
			}
			t.Logf("\t%s\tTest %d:\tShould iterate every block.", success, testID)

			if err := d.Reset(); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to reset the storage: %v", failed, testID, err)
			}

			if _, err := d.GetBlock(0); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould not find blocks after a reset.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould not find blocks after a reset.", success, testID)

			previous, err := d.Previous()
			if err != nil || len(previous) != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould keep the replaced chain: %v %v", failed, testID, previous, err)
			}

			old, err := disk.New(previous[0])
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to open the replaced chain: %v", failed, testID, err)
			}
			for _, block := range blocks {
				bd, err := old.GetBlock(block.Header.Number)
				if err != nil || bd.Hash != block.Hash() {
					t.Fatalf("\t%s\tTest %d:\tShould keep block %d of the replaced chain: %v", failed, testID, block.Header.Number, err)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould keep the replaced chain.", success, testID)

			if err := d.Reset(); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to reset an empty storage: %v", failed, testID, err)
			}
			if previous, _ := d.Previous(); len(previous) != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould not keep an empty chain: %v", failed, testID, previous)
			}
			t.Logf("\t%s\tTest %d:\tShould not keep an empty chain.", success, testID)
		}
	}
}

// =============================================================================

func mine(t *testing.T, n int) []database.Block {
	const from = database.Address("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")
	const to = database.Address("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")

	var blocks []database.Block
	var prev *database.Block
	for i := 0; i < n; i++ {
		var trans []database.Tx
		if i > 0 {
			trans = append(trans, database.NewTx(from, to, decimal.RequireFromString("1.25"), decimal.RequireFromString("0.01"), uint64(i)))
		}

		block, err := database.POW(context.Background(), database.POWArgs{
			BeneficiaryID: from,
			Difficulty:    2,
			MiningReward:  decimal.NewFromInt(100),
			PrevBlock:     prev,
			TimeStamp:     uint64(i + 1),
			Trans:         trans,
		})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine block %d: %v", failed, i, err)
		}

		blocks = append(blocks, block)
		prev = &blocks[len(blocks)-1]
	}

	return blocks
}
