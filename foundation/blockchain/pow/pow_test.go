package pow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
	"github.com/ardanlabs/ledger/foundation/blockchain/pow"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type header struct {
	Seed  int    `json:"seed"`
	Nonce uint64 `json:"nonce"`
}

func hashFn(seed int) pow.HashFunc {
	return func(nonce uint64) [digest.Size]byte {
		return digest.Sum(header{Seed: seed, Nonce: nonce})
	}
}

func TestThreshold(t *testing.T) {
	t.Log("Given the need to map difficulty to a threshold.")
	{
		difficulties := []float64{1, 1.5, 2, 10, 1000, pow.MaxDifficulty}

		prev := pow.Threshold(0.5)
		if !prev.Eq(pow.Threshold(1)) {
			t.Fatalf("\t%s\tShould saturate the threshold at or below difficulty 1.", failed)
		}
		t.Logf("\t%s\tShould saturate the threshold at or below difficulty 1.", success)

		for i := 1; i < len(difficulties); i++ {
			lo := pow.Threshold(difficulties[i-1])
			hi := pow.Threshold(difficulties[i])
			if !hi.Lt(lo) {
				t.Fatalf("\t%s\tTest %d:\tShould shrink the threshold from %g to %g.", failed, i, difficulties[i-1], difficulties[i])
			}
			t.Logf("\t%s\tTest %d:\tShould shrink the threshold from %g to %g.", success, i, difficulties[i-1], difficulties[i])
		}
	}
}

func TestSearch(t *testing.T) {
	t.Log("Given the need to find a nonce that solves the puzzle.")
	{
		for _, difficulty := range []float64{1, 4, 64} {
			sol, err := pow.Search(context.Background(), difficulty, hashFn(7), nil)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to solve difficulty %g: %v", failed, difficulty, err)
			}
			t.Logf("\t%s\tShould be able to solve difficulty %g.", success, difficulty)

			if sol.Hash != digest.Hash(header{Seed: 7, Nonce: sol.Nonce}) {
				t.Fatalf("\t%s\tShould return the hash of the winning nonce.", failed)
			}
			if !pow.Solved(sol.Hash, difficulty) {
				t.Fatalf("\t%s\tShould return a hash that passes validation.", failed)
			}
			if sol.Attempts != sol.Nonce+1 {
				t.Fatalf("\t%s\tShould count attempts from nonce zero, nonce %d attempts %d.", failed, sol.Nonce, sol.Attempts)
			}
			t.Logf("\t%s\tShould return a valid solution for difficulty %g.", success, difficulty)
		}

		sol, err := pow.Search(context.Background(), 1, hashFn(1), nil)
		if err != nil || sol.Nonce != 0 {
			t.Fatalf("\t%s\tShould accept the first nonce at the lowest difficulty.", failed)
		}
		t.Logf("\t%s\tShould accept the first nonce at the lowest difficulty.", success)
	}
}

func TestSearchCancel(t *testing.T) {
	t.Log("Given the need to stop a search from the outside.")
	{
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		never := func(nonce uint64) [digest.Size]byte {
			var h [digest.Size]byte
			for i := range h {
				h[i] = 0xff
			}
			return h
		}

		_, err := pow.Search(ctx, pow.MaxDifficulty, never, nil)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("\t%s\tShould return the context error, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould return the context error.", success)
	}
}

func TestMonotonicity(t *testing.T) {
	t.Log("Given the need for mining work to scale with difficulty.")
	{
		const trials = 60

		mean := func(difficulty float64) float64 {
			var total uint64
			for i := 0; i < trials; i++ {
				sol, err := pow.Search(context.Background(), difficulty, hashFn(i), nil)
				if err != nil {
					t.Fatalf("\t%s\tShould be able to solve difficulty %g: %v", failed, difficulty, err)
				}
				total += sol.Attempts
			}
			return float64(total) / trials
		}

		low := mean(4)
		mid := mean(64)
		high := mean(1024)

		t.Logf("\t%s\tmean attempts: 4[%.1f] 64[%.1f] 1024[%.1f]", success, low, mid, high)

		if !(low < mid && mid < high) {
			t.Fatalf("\t%s\tShould need more attempts as difficulty increases.", failed)
		}
		t.Logf("\t%s\tShould need more attempts as difficulty increases.", success)
	}
}

func TestSolved(t *testing.T) {
	if pow.Solved("not-a-hash", 1) {
		t.Fatalf("\t%s\tShould reject a malformed hash.", failed)
	}
	if !pow.Solved(digest.ZeroHash, pow.MaxDifficulty) {
		t.Fatalf("\t%s\tShould accept the zero hash at any difficulty.", failed)
	}
	t.Logf("\t%s\tShould validate hashes against the difficulty.", success)
}
