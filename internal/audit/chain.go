// Package audit implements the append-only hash-chained log used for
// tamper-evident local audit records (spec §4.5). It is a genuinely new
// component relative to the teacher pack — no example repo does proof-of-
// work hashing — so it is built directly from the spec's pseudocode,
// following the sentinel-error and small-struct conventions the rest of
// columndb uses.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/columndb/columndb/internal/dberr"
)

// Block is one entry in the chain (spec §3 "AuditBlock").
type Block struct {
	Index        int
	TimestampMs  int64
	Transactions []string
	PreviousHash string
	Nonce        int
	Hash         string
}

// Chain is an append-only sequence B0..Bn, B0 the genesis block. Difficulty
// is fixed for the chain's lifetime; nothing in this package allows it to
// change after construction (spec §4.5, open question in §9).
type Chain struct {
	difficulty int
	blocks     []Block
	nowMs      func() int64
}

// New creates a chain with the given proof-of-work difficulty (number of
// leading hex zeros required) and mines the genesis block. nowMs supplies
// the current time in milliseconds; callers in production pass a wrapper
// around time.Now, tests pass a deterministic clock.
func New(difficulty int, nowMs func() int64) *Chain {
	c := &Chain{difficulty: difficulty, nowMs: nowMs}
	genesis := Block{
		Index:        0,
		TimestampMs:  nowMs(),
		Transactions: []string{"GENESIS BLOCK"},
		PreviousHash: "0",
	}
	mine(&genesis, difficulty)
	c.blocks = append(c.blocks, genesis)
	return c
}

// Difficulty returns the chain's fixed proof-of-work difficulty.
func (c *Chain) Difficulty() int { return c.difficulty }

// Len returns the number of blocks, including genesis.
func (c *Chain) Len() int { return len(c.blocks) }

// Blocks returns a defensive copy of the chain's blocks.
func (c *Chain) Blocks() []Block {
	out := make([]Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// Block returns block i, bounds-checked.
func (c *Chain) Block(i int) (Block, error) {
	if i < 0 || i >= len(c.blocks) {
		return Block{}, fmt.Errorf("block %d of %d: %w", i, len(c.blocks), dberr.OutOfRange)
	}
	return c.blocks[i], nil
}

// AddBlock appends tx as a new block's sole transaction, mines it against
// the chain's fixed difficulty, and commits it. Audit-log append is
// strictly sequential (spec §5); concurrent callers must serialize their
// own AddBlock calls — the chain itself does not lock.
func (c *Chain) AddBlock(tx string) Block {
	prev := c.blocks[len(c.blocks)-1]
	b := Block{
		Index:        prev.Index + 1,
		TimestampMs:  c.nowMs(),
		Transactions: []string{tx},
		PreviousHash: prev.Hash,
	}
	mine(&b, c.difficulty)
	c.blocks = append(c.blocks, b)
	return b
}

// hashInput builds the fixed concatenation order from spec §6:
// "{index}_{timestamp_ms}_{previous_hash}_{nonce}" followed by the raw
// transaction bytes in push order.
func hashInput(b Block) []byte {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(b.Index))
	sb.WriteByte('_')
	sb.WriteString(strconv.FormatInt(b.TimestampMs, 10))
	sb.WriteByte('_')
	sb.WriteString(b.PreviousHash)
	sb.WriteByte('_')
	sb.WriteString(strconv.Itoa(b.Nonce))
	for _, tx := range b.Transactions {
		sb.WriteString(tx)
	}
	return []byte(sb.String())
}

func computeHash(b Block) string {
	sum := sha256.Sum256(hashInput(b))
	return hex.EncodeToString(sum[:])
}

// mine searches nonces until the block's hash has `difficulty` leading
// hex zeros, per the spec §4.5 loop.
func mine(b *Block, difficulty int) {
	prefix := strings.Repeat("0", difficulty)
	for {
		b.Hash = computeHash(*b)
		if strings.HasPrefix(b.Hash, prefix) {
			return
		}
		b.Nonce++
	}
}

// VerifyChain recomputes every block's hash (genesis included), checks
// equality to the stored hash, checks previous-hash linkage for each
// non-genesis block, and re-validates the proof-of-work prefix. It fails closed: the first discrepancy returns
// false with no repair attempt (spec §7).
func (c *Chain) VerifyChain() bool {
	if len(c.blocks) == 0 {
		return false
	}
	prefix := strings.Repeat("0", c.difficulty)
	for i, b := range c.blocks {
		if computeHash(b) != b.Hash {
			return false
		}
		if !strings.HasPrefix(b.Hash, prefix) {
			return false
		}
		if i == 0 {
			if b.PreviousHash != "0" {
				return false
			}
			continue
		}
		if b.PreviousHash != c.blocks[i-1].Hash {
			return false
		}
	}
	return true
}
