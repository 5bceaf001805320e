package audit

import "testing"

func fixedClock() func() int64 {
	t := int64(1_700_000_000_000)
	return func() int64 {
		t++
		return t
	}
}

func TestAddBlockGrowsChainAndVerifies(t *testing.T) {
	c := New(2, fixedClock())
	for _, tx := range []string{"a", "b", "c"} {
		c.AddBlock(tx)
	}
	if c.Len() != 4 {
		t.Fatalf("expected 4 blocks (genesis + 3), got %d", c.Len())
	}
	if !c.VerifyChain() {
		t.Fatal("expected chain to verify")
	}
}

func TestTamperedTransactionFailsVerification(t *testing.T) {
	c := New(2, fixedClock())
	for _, tx := range []string{"a", "b", "c"} {
		c.AddBlock(tx)
	}
	if !c.VerifyChain() {
		t.Fatal("chain should verify before tampering")
	}

	blocks := c.blocks
	blocks[2].Transactions[0] = "b!"

	if c.VerifyChain() {
		t.Fatal("expected verification to fail after tampering with block 2's transaction")
	}
}

func TestGenesisBlockFixedFields(t *testing.T) {
	c := New(1, fixedClock())
	g, err := c.Block(0)
	if err != nil {
		t.Fatal(err)
	}
	if g.PreviousHash != "0" {
		t.Fatalf("genesis previous hash should be \"0\", got %q", g.PreviousHash)
	}
	if len(g.Transactions) != 1 || g.Transactions[0] != "GENESIS BLOCK" {
		t.Fatalf("genesis transaction mismatch: %+v", g.Transactions)
	}
}

func TestBlockOutOfRange(t *testing.T) {
	c := New(1, fixedClock())
	if _, err := c.Block(5); err == nil {
		t.Fatal("expected out-of-range error")
	}
}
