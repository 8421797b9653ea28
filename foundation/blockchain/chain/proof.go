package chain

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
	"github.com/ardanlabs/ledger/foundation/blockchain/merkle"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// TxProof is the merkle inclusion proof of a confirmed transaction.
type TxProof struct {
	BlockNumber uint64      `json:"block_number"`
	TransRoot   string      `json:"trans_root"`
	Tx          database.Tx `json:"tx"`
	Proof       []string    `json:"proof"`
	Order       []int64     `json:"order"` // 1 when the proof hash is concatenated second.
}

// Verify checks the proof leads from the transaction hash to the root.
func (p TxProof) Verify() error {
	leaf, err := p.Tx.HashBytes()
	if err != nil {
		return err
	}

	root, err := digest.Decode(p.TransRoot)
	if err != nil {
		return err
	}

	proof := make([][]byte, len(p.Proof))
	for i, h := range p.Proof {
		if proof[i], err = hexutil.Decode(h); err != nil {
			return err
		}
	}

	if !merkle.VerifyProof(leaf, proof, p.Order, root) {
		return fmt.Errorf("tx[%s]: proof does not match root %s", p.Tx.Hash, p.TransRoot)
	}

	return nil
}

// GetTransactionProof returns the merkle proof that the confirmed
// transaction is part of its block.
func (c *Chain) GetTransactionProof(hash string) (TxProof, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tx, exists := c.txIndex[hash]
	if !exists {
		return TxProof{}, fmt.Errorf("%w: %s", ErrTransactionNotFound, hash)
	}

	for i := len(c.blocks) - 1; i >= 0; i-- {
		block := c.blocks[i]

		proof, order, err := block.Trans.Proof(tx)
		if err != nil {
			continue
		}

		p := TxProof{
			BlockNumber: block.Header.Number,
			TransRoot:   block.Header.TransRoot,
			Tx:          tx,
			Proof:       make([]string, len(proof)),
			Order:       order,
		}
		for j, h := range proof {
			p.Proof[j] = hexutil.Encode(h)
		}

		return p, nil
	}

	return TxProof{}, fmt.Errorf("%w: %s not in any block", ErrTransactionNotFound, hash)
}
