// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date          time.Time       `json:"date"`
	ChainID       uint16          `json:"chain_id"`        // The chain id represents an unique id for this running instance.
	TransPerBlock uint16          `json:"trans_per_block"` // The maximum number of transactions that can be in a block, 0 for no limit.
	Difficulty    float64         `json:"difficulty"`      // Expected number of attempts to solve the work problem.
	MiningReward  decimal.Decimal `json:"mining_reward"`   // Reward for mining a block.
	FeeRate       decimal.Decimal `json:"fee_rate"`        // Fraction of each transaction amount paid as a fee.
	Selector      string          `json:"selector"`        // Strategy used to order pending transactions into a block.
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decode genesis %s: %w", path, err)
	}

	return genesis, nil
}
