package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardanlabs/ledger/app/tooling/admin/commands"
	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
	"github.com/ardanlabs/ledger/foundation/blockchain/storage/disk"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestAdmin(t *testing.T) {
	dbPath := t.TempDir()

	storage, err := disk.New(dbPath)
	if err != nil {
		t.Fatalf("Should be able to open the archive: %v", err)
	}

	c, err := chain.New(chain.Config{
		Difficulty: 1,
		Reward:     decimal.NewFromInt(100),
		Fee:        decimal.RequireFromString("0.01"),
		Storage:    storage,
	})
	if err != nil {
		t.Fatalf("Should be able to construct a chain: %v", err)
	}

	bill, err := c.CreateWallet("bill@ardanlabs.com")
	if err != nil {
		t.Fatalf("Should be able to create a wallet: %v", err)
	}
	jill, err := c.CreateWallet("jill@ardanlabs.com")
	if err != nil {
		t.Fatalf("Should be able to create a wallet: %v", err)
	}

	system := c.Beneficiary()
	if err := c.UpdateBeneficiary(bill); err != nil {
		t.Fatalf("Should be able to set the beneficiary: %v", err)
	}
	if _, err := c.GenerateNewBlock(context.Background()); err != nil {
		t.Fatalf("Should be able to mine a block: %v", err)
	}
	if err := c.UpdateBeneficiary(system); err != nil {
		t.Fatalf("Should be able to restore the beneficiary: %v", err)
	}
	if _, err := c.AddTransaction(bill, jill, decimal.RequireFromString("1.25")); err != nil {
		t.Fatalf("Should be able to add a transaction: %v", err)
	}
	if _, err := c.MineNewBlock(context.Background()); err != nil {
		t.Fatalf("Should be able to mine a block: %v", err)
	}

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		root := commands.New(zap.NewNop().Sugar(), "test")
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs(append(args, "--db-path", dbPath))
		err := root.Execute()
		return out.String(), err
	}

	t.Log("Given the need to inspect a block archive.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen verifying an intact archive.", testID)
		{
			out, err := run("verify")
			if err != nil || !strings.Contains(out, "3 blocks") || !strings.Contains(out, c.GetLastHash()) {
				t.Fatalf("\t%s\tTest %d:\tShould verify the chain: %q %v", failed, testID, out, err)
			}
			t.Logf("\t%s\tTest %d:\tShould verify the chain.", success, testID)
		}

		testID = 1
		t.Logf("\tTest %d:\tWhen replaying the balances.", testID)
		{
			out, err := run("balances")
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould replay the balances: %v", failed, testID, err)
			}

			for _, exp := range []string{"98.7375", "1.25", "0.0125"} {
				if !strings.Contains(out, exp) {
					t.Fatalf("\t%s\tTest %d:\tShould find balance %s: %q", failed, testID, exp, out)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould replay the balances.", success, testID)
		}

		testID = 2
		t.Logf("\tTest %d:\tWhen listing blocks and transactions.", testID)
		{
			out, err := run("blocks")
			if err != nil || !strings.Contains(out, "Beneficiary") || !strings.Contains(out, string(bill)) {
				t.Fatalf("\t%s\tTest %d:\tShould list the blocks: %q %v", failed, testID, out, err)
			}
			t.Logf("\t%s\tTest %d:\tShould list the blocks.", success, testID)

			out, err = run("trans", string(jill))
			if err != nil || !strings.Contains(out, "1.25") {
				t.Fatalf("\t%s\tTest %d:\tShould list the transactions: %q %v", failed, testID, out, err)
			}
			t.Logf("\t%s\tTest %d:\tShould list the transactions.", success, testID)
		}

		testID = 3
		t.Logf("\tTest %d:\tWhen a block in the archive was altered.", testID)
		{
			path := filepath.Join(dbPath, "2.json")
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to read block 2: %v", failed, testID, err)
			}

			data = bytes.Replace(data, []byte(`"1.25"`), []byte(`"9.25"`), 1)
			if err := os.WriteFile(path, data, 0600); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to write block 2: %v", failed, testID, err)
			}

			if _, err := run("verify"); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould fail to verify the chain.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould fail to verify the chain.", success, testID)
		}
	}
}
