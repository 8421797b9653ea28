package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
	"github.com/ardanlabs/ledger/foundation/blockchain/merkle"
	"github.com/ardanlabs/ledger/foundation/blockchain/pow"
	"github.com/shopspring/decimal"
)

// BlockHeader represents common information required for each block.
type BlockHeader struct {
	Number        uint64          `json:"number"`          // Ethereum: Block number in the chain.
	PrevBlockHash string          `json:"prev_block_hash"` // Bitcoin: Hash of the previous block in the chain.
	TimeStamp     uint64          `json:"timestamp"`       // Bitcoin: Time the block was mined.
	BeneficiaryID Address         `json:"beneficiary"`     // Ethereum: The wallet who is receiving the reward and fees.
	Difficulty    float64         `json:"difficulty"`      // Expected number of attempts needed to solve the hash solution.
	MiningReward  decimal.Decimal `json:"mining_reward"`   // Ethereum: The reward for mining this block.
	TotalFees     decimal.Decimal `json:"total_fees"`      // Sum of the fees of every transaction in the block.
	TransRoot     string          `json:"trans_root"`      // Bitcoin/Ethereum: Represents the merkle tree root hash for the transactions in this block.
	Nonce         uint64          `json:"nonce"`           // Bitcoin: Value identified to solve the hash solution.
}

// Block represents a group of transactions batched together.
type Block struct {
	Header BlockHeader
	Trans  *merkle.Tree[Tx]
}

// POWArgs represents the set of arguments required to run POW.
type POWArgs struct {
	BeneficiaryID Address
	Difficulty    float64
	MiningReward  decimal.Decimal
	PrevBlock     *Block // nil when mining the genesis block.
	TimeStamp     uint64
	Trans         []Tx
	EvHandler     func(v string, args ...any)
}

// POW constructs a new Block and performs the work to find a nonce that
// solves the cryptographic POW puzzle.
func POW(ctx context.Context, args POWArgs) (Block, error) {
	ev := args.EvHandler
	if ev == nil {
		ev = func(string, ...any) {}
	}

	// When mining the first block, the previous block's hash will be zero.
	var number uint64
	prevBlockHash := digest.ZeroHash
	if args.PrevBlock != nil {
		number = args.PrevBlock.Header.Number + 1
		prevBlockHash = args.PrevBlock.Hash()
	}

	// Construct a merkle tree from the transactions for this block. The root
	// of this tree will be part of the block to be mined.
	tree, err := merkle.NewTree(args.Trans)
	if err != nil {
		return Block{}, err
	}

	totalFees := decimal.Zero
	for _, tx := range args.Trans {
		totalFees = totalFees.Add(tx.Fee)
	}

	timeStamp := args.TimeStamp
	if timeStamp == 0 {
		timeStamp = uint64(time.Now().UTC().Unix())
	}

	// Construct the block to be mined.
	nb := Block{
		Header: BlockHeader{
			Number:        number,
			PrevBlockHash: prevBlockHash,
			TimeStamp:     timeStamp,
			BeneficiaryID: args.BeneficiaryID,
			Difficulty:    args.Difficulty,
			MiningReward:  args.MiningReward,
			TotalFees:     totalFees,
			TransRoot:     tree.RootHex(),
			Nonce:         0, // Will be identified by the POW algorithm.
		},
		Trans: tree,
	}

	// Log the transactions that are a part of this potential block.
	for _, tx := range args.Trans {
		ev("database: POW: MINING: blk[%d]: tx[%s]", number, tx)
	}

	// Perform the proof of work mining operation. The header is copied for
	// every attempt so the search never touches the block being built.
	header := nb.Header
	hashFn := func(nonce uint64) [digest.Size]byte {
		header.Nonce = nonce
		return digest.Sum(header)
	}

	solution, err := pow.Search(ctx, args.Difficulty, hashFn, ev)
	if err != nil {
		return Block{}, err
	}

	nb.Header.Nonce = solution.Nonce

	return nb, nil
}

// Hash returns the unique hash for the Block. Only the header is hashed,
// the transactions are covered by the merkle root.
func (b Block) Hash() string {
	return digest.Hash(b.Header)
}

// Values returns the transactions in the block in their mined order.
func (b Block) Values() []Tx {
	if b.Trans == nil {
		return nil
	}

	return b.Trans.Values()
}

// ValidateGenesis validates the block is a well formed genesis block.
func (b Block) ValidateGenesis(evHandler func(v string, args ...any)) error {
	evHandler("database: ValidateGenesis: validate: blk[%d]: check: block is number zero", b.Header.Number)

	if b.Header.Number != 0 {
		return fmt.Errorf("genesis block has number %d", b.Header.Number)
	}

	evHandler("database: ValidateGenesis: validate: blk[%d]: check: parent hash is the zero hash", b.Header.Number)

	if b.Header.PrevBlockHash != digest.ZeroHash {
		return fmt.Errorf("genesis block parent hash is %s", b.Header.PrevBlockHash)
	}

	return b.validateContent(evHandler)
}

// ValidateBlock takes a block and validates it to be included into the blockchain.
func (b Block) ValidateBlock(previousBlock Block, evHandler func(v string, args ...any)) error {
	evHandler("database: ValidateBlock: validate: blk[%d]: check: block number is the next number", b.Header.Number)

	nextNumber := previousBlock.Header.Number + 1
	if b.Header.Number != nextNumber {
		return fmt.Errorf("this block is not the next number, got %d, exp %d", b.Header.Number, nextNumber)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: parent hash does match parent block", b.Header.Number)

	if b.Header.PrevBlockHash != previousBlock.Hash() {
		return fmt.Errorf("parent block hash doesn't match our known parent, got %s, exp %s", b.Header.PrevBlockHash, previousBlock.Hash())
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: block's timestamp is not before parent block's timestamp", b.Header.Number)

	if b.Header.TimeStamp < previousBlock.Header.TimeStamp {
		parentTime := time.Unix(int64(previousBlock.Header.TimeStamp), 0)
		blockTime := time.Unix(int64(b.Header.TimeStamp), 0)
		return fmt.Errorf("block timestamp is before parent block, parent %s, block %s", parentTime, blockTime)
	}

	return b.validateContent(evHandler)
}

// validateContent checks the parts of a block that do not depend on its
// parent: the proof of work, the merkle root, the fees and every transaction.
func (b Block) validateContent(evHandler func(v string, args ...any)) error {
	evHandler("database: ValidateBlock: validate: blk[%d]: check: block hash has been solved", b.Header.Number)

	if !(b.Header.Difficulty >= pow.MinDifficulty) {
		return fmt.Errorf("block %d difficulty %v is below %d", b.Header.Number, b.Header.Difficulty, pow.MinDifficulty)
	}

	hash := b.Hash()
	if !pow.Solved(hash, b.Header.Difficulty) {
		return fmt.Errorf("%s invalid block hash for difficulty %v", hash, b.Header.Difficulty)
	}

	if b.Trans == nil {
		return fmt.Errorf("block %d has no transaction tree", b.Header.Number)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: merkle root does match transactions", b.Header.Number)

	if b.Header.TransRoot != b.Trans.RootHex() {
		return fmt.Errorf("merkle root does not match transactions, got %s, exp %s", b.Trans.RootHex(), b.Header.TransRoot)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: transactions and fees", b.Header.Number)

	totalFees := decimal.Zero
	for _, tx := range b.Trans.Values() {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("tx[%s]: %w", tx.Hash, err)
		}
		totalFees = totalFees.Add(tx.Fee)
	}

	if !totalFees.Equal(b.Header.TotalFees) {
		return fmt.Errorf("total fees do not match transactions, got %s, exp %s", b.Header.TotalFees, totalFees)
	}

	if b.Header.MiningReward.IsNegative() {
		return fmt.Errorf("negative mining reward %s", b.Header.MiningReward)
	}

	return nil
}

// =============================================================================

// BlockData represents what can be serialized to disk and over the network.
type BlockData struct {
	Hash   string      `json:"hash"`
	Header BlockHeader `json:"block"`
	Trans  []Tx        `json:"trans"`
}

// NewBlockData constructs block data from a block.
func NewBlockData(block Block) BlockData {
	trans := block.Values()
	if trans == nil {
		trans = []Tx{}
	}

	blockData := BlockData{
		Hash:   block.Hash(),
		Header: block.Header,
		Trans:  trans,
	}

	return blockData
}

// ToBlock converts a storage block into a database block.
func ToBlock(blockData BlockData) (Block, error) {
	tree, err := merkle.NewTree(blockData.Trans)
	if err != nil {
		return Block{}, err
	}

	block := Block{
		Header: blockData.Header,
		Trans:  tree,
	}

	if hash := block.Hash(); hash != blockData.Hash {
		return Block{}, fmt.Errorf("block %d hash mismatch, got %s, exp %s", blockData.Header.Number, blockData.Hash, hash)
	}

	return block, nil
}
