// Package pow implements the proof of work search used to mine blocks. The
// difficulty is mapped to a numeric threshold and a hash solves the puzzle
// when its value, read as an unsigned 256 bit integer, is below it.
package pow

import (
	"context"
	"errors"
	"math"
	"math/big"

	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
	"github.com/holiman/uint256"
)

// MinDifficulty is the smallest difficulty accepted by the ledger. It maps
// to the largest threshold, so every smaller value would solve the same way.
const MinDifficulty = 1

// MaxDifficulty is the largest difficulty accepted by the ledger. The
// expected number of attempts to solve a block equals the difficulty, so
// this keeps a single search within a few seconds of CPU time.
const MaxDifficulty = 1 << 24

// ctxCheckInterval is how many attempts are made between checks of the
// context for cancellation.
const ctxCheckInterval = 4096

// ErrNonceExhausted is returned if every nonce has been tried without a
// solution. It is not expected to happen for any valid difficulty.
var ErrNonceExhausted = errors.New("nonce space exhausted")

// maxTarget is the largest possible hash value, 2^256-1.
var maxTarget = new(uint256.Int).SetAllOne()

// =============================================================================

// HashFunc returns the raw digest of a block header for the specified nonce.
type HashFunc func(nonce uint64) [digest.Size]byte

// Solution represents the result of a successful search.
type Solution struct {
	Nonce    uint64
	Hash     string
	Attempts uint64
}

// Threshold returns the value a hash must be below to solve the puzzle for
// the specified difficulty. It is maxTarget / difficulty for difficulties
// in [MinDifficulty, MaxDifficulty] and saturates at maxTarget below that.
func Threshold(difficulty float64) *uint256.Int {
	if difficulty <= MinDifficulty || math.IsNaN(difficulty) {
		return new(uint256.Int).Set(maxTarget)
	}

	q := new(big.Float).SetPrec(512).SetInt(maxTarget.ToBig())
	q.Quo(q, new(big.Float).SetPrec(512).SetFloat64(difficulty))

	n, _ := q.Int(nil)
	threshold, overflow := uint256.FromBig(n)
	if overflow {
		return new(uint256.Int).Set(maxTarget)
	}

	return threshold
}

// IsSolved checks the raw hash against the threshold.
func IsSolved(hash [digest.Size]byte, threshold *uint256.Int) bool {
	var v uint256.Int
	v.SetBytes(hash[:])

	return v.Lt(threshold)
}

// Solved validates a hex-encoded hash complies with the pow rules for the
// specified difficulty.
func Solved(hash string, difficulty float64) bool {
	b, err := digest.Decode(hash)
	if err != nil || len(b) != digest.Size {
		return false
	}

	var sum [digest.Size]byte
	copy(sum[:], b)

	return IsSolved(sum, Threshold(difficulty))
}

// Search does the work of mining. The nonce starts at zero and is incremented
// by 1 until a hash that solves the puzzle is found. The search can only be
// stopped through the context, so callers that need a time bound must set
// a deadline.
func Search(ctx context.Context, difficulty float64, hashFn HashFunc, ev func(v string, args ...any)) (Solution, error) {
	if ev == nil {
		ev = func(v string, args ...any) {}
	}

	ev("pow: Search: MINING: started: difficulty[%g]", difficulty)
	defer ev("pow: Search: MINING: completed")

	threshold := Threshold(difficulty)

	var attempts uint64
	for nonce := uint64(0); ; nonce++ {
		if attempts%ctxCheckInterval == 0 {
			if ctx.Err() != nil {
				ev("pow: Search: MINING: CANCELLED: attempts[%d]", attempts)
				return Solution{}, ctx.Err()
			}
		}

		attempts++

		if attempts%1_000_000 == 0 {
			ev("pow: Search: MINING: attempts[%d]", attempts)
		}

		hash := hashFn(nonce)
		if IsSolved(hash, threshold) {
			sol := Solution{
				Nonce:    nonce,
				Hash:     digest.Encode(hash),
				Attempts: attempts,
			}

			ev("pow: Search: MINING: SOLVED: hash[%s]: attempts[%d]", sol.Hash, attempts)
			return sol, nil
		}

		if nonce == math.MaxUint64 {
			return Solution{}, ErrNonceExhausted
		}
	}
}
