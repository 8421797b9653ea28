// Copyright 2017 Cameron Bergoon
// https://github.com/cbergoon/merkletree
// Licensed under the MIT License, see LICENCE file for details.

package merkle_test

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/merkle"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// Data uses the sha256 hashing algorithm for the merkle tree.
type Data struct {
	x string
}

// HashBytes hashes the values using sha256.
func (d Data) HashBytes() ([]byte, error) {
	h := sha256.Sum256([]byte(d.x))
	return h[:], nil
}

// Equals tests for equality of two piece of data.
func (d Data) Equals(other Data) bool {
	return d.x == other.x
}

// =============================================================================

func Test_NewTree(t *testing.T) {
	for i := 0; i < len(table); i++ {
		tree, err := merkle.NewTree(table[i].data)
		if err != nil {
			t.Fatalf("[case:%d] error: unexpected error: %v", table[i].testCaseId, err)
		}
		if !bytes.Equal(tree.MerkleRoot, table[i].expectedHash) {
			t.Errorf("[case:%d] error: expected hash equal to %v got %v", table[i].testCaseId, table[i].expectedHash, tree.MerkleRoot)
		}
	}
}

func Test_ReferenceRoot(t *testing.T) {
	t.Log("Given the need to reduce leaves pairwise into a single root.")
	{
		for size := 1; size <= 17; size++ {
			var data []Data
			for i := 0; i < size; i++ {
				data = append(data, Data{x: string(rune('a' + i))})
			}

			tree, err := merkle.NewTree(data)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to build a tree: %v", failed, size, err)
			}

			exp := referenceRoot(t, data)
			if !bytes.Equal(tree.MerkleRoot, exp) {
				t.Logf("\t%s\tTest %d:\tgot: %x", failed, size, tree.MerkleRoot)
				t.Logf("\t%s\tTest %d:\texp: %x", failed, size, exp)
				t.Fatalf("\t%s\tTest %d:\tShould match the pairwise reduction.", failed, size)
			}
			t.Logf("\t%s\tTest %d:\tShould match the pairwise reduction.", success, size)
		}
	}
}

func Test_EmptyAndSingle(t *testing.T) {
	t.Log("Given the need to handle degenerate trees.")
	{
		tree, err := merkle.NewTree([]Data{})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to build an empty tree: %v", failed, err)
		}
		if tree.RootHex() != merkle.EmptyRoot {
			t.Fatalf("\t%s\tShould get the empty root, got %s", failed, tree.RootHex())
		}
		empty := sha256.Sum256(nil)
		if merkle.EmptyRoot != hexutil.Encode(empty[:]) {
			t.Fatalf("\t%s\tShould define the empty root as the hash of nothing.", failed)
		}
		if err := tree.Verify(); err != nil {
			t.Fatalf("\t%s\tShould verify an empty tree: %v", failed, err)
		}
		if len(tree.Values()) != 0 {
			t.Fatalf("\t%s\tShould have no values in an empty tree.", failed)
		}
		t.Logf("\t%s\tShould get the fixed root for an empty tree.", success)

		d := Data{x: "single"}
		leaf, _ := d.HashBytes()
		exp := sha256.Sum256(append(append([]byte{}, leaf...), leaf...))

		root, err := merkle.RootHex([]Data{d})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to build a single leaf tree: %v", failed, err)
		}
		if root != hexutil.Encode(exp[:]) {
			t.Logf("\t%s\tgot: %s", failed, root)
			t.Logf("\t%s\texp: %s", failed, hexutil.Encode(exp[:]))
			t.Fatalf("\t%s\tShould hash the single leaf paired with itself.", failed)
		}
		if root == hexutil.Encode(leaf) {
			t.Fatalf("\t%s\tShould not use the leaf hash as the root.", failed)
		}
		t.Logf("\t%s\tShould hash the single leaf paired with itself.", success)
	}
}

func Test_Deterministic(t *testing.T) {
	data := []Data{{x: "Hello"}, {x: "Hi"}, {x: "Hey"}}

	r1, err := merkle.RootHex(data)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := merkle.RootHex(data)
	if err != nil {
		t.Fatal(err)
	}
	if r1 != r2 {
		t.Fatalf("\t%s\tShould get the same root for the same data: %s != %s", failed, r1, r2)
	}

	swapped := []Data{{x: "Hi"}, {x: "Hello"}, {x: "Hey"}}
	r3, err := merkle.RootHex(swapped)
	if err != nil {
		t.Fatal(err)
	}
	if r1 == r3 {
		t.Fatalf("\t%s\tShould get a different root when the order changes.", failed)
	}
	t.Logf("\t%s\tShould depend only on order and content.", success)
}

func Test_Verify(t *testing.T) {
	for i := 0; i < len(table); i++ {
		tree, err := merkle.NewTree(table[i].data)
		if err != nil {
			t.Fatalf("[case:%d] error: unexpected error: %v", table[i].testCaseId, err)
		}
		if err := tree.Verify(); err != nil {
			t.Errorf("[case:%d] error: expected tree to be valid: %v", table[i].testCaseId, err)
		}

		tree.Root.Hash = []byte{1}
		tree.MerkleRoot = []byte{1}
		if err := tree.Verify(); err == nil {
			t.Errorf("[case:%d] error: expected tree to be invalid", table[i].testCaseId)
		}
	}
}

func Test_VerifyData(t *testing.T) {
	for i := 0; i < len(table); i++ {
		tree, err := merkle.NewTree(table[i].data)
		if err != nil {
			t.Fatalf("[case:%d] error: unexpected error: %v", table[i].testCaseId, err)
		}
		for _, d := range table[i].data {
			if err := tree.VerifyData(d); err != nil {
				t.Errorf("[case:%d] error: expected valid content: %v", table[i].testCaseId, err)
			}
		}
		if err := tree.VerifyData(table[i].notInContents); err == nil {
			t.Errorf("[case:%d] error: expected invalid content", table[i].testCaseId)
		}

		tree.Root.Hash = []byte{1}
		tree.MerkleRoot = []byte{1}
		if err := tree.VerifyData(table[i].data[0]); err == nil {
			t.Errorf("[case:%d] error: expected invalid content after tamper", table[i].testCaseId)
		}
	}
}

func Test_Proof(t *testing.T) {
	for i := 0; i < len(table); i++ {
		tree, err := merkle.NewTree(table[i].data)
		if err != nil {
			t.Fatalf("[case:%d] error: unexpected error: %v", table[i].testCaseId, err)
		}
		for _, d := range table[i].data {
			proof, order, err := tree.Proof(d)
			if err != nil {
				t.Fatalf("[case:%d] error: proof error: %v", table[i].testCaseId, err)
			}

			hash, _ := d.HashBytes()
			if !merkle.VerifyProof(hash, proof, order, tree.MerkleRoot) {
				t.Errorf("[case:%d] error: expected proof to reach the root %v", table[i].testCaseId, tree.MerkleRoot)
			}

			if len(proof) > 0 && merkle.VerifyProof(hash, proof, order, []byte{1}) {
				t.Errorf("[case:%d] error: expected proof to miss a different root", table[i].testCaseId)
			}
		}

		if _, _, err := tree.Proof(table[i].notInContents); err == nil {
			t.Errorf("[case:%d] error: expected an error for missing data", table[i].testCaseId)
		}
	}
}

func Test_String(t *testing.T) {
	for i := 0; i < len(table); i++ {
		tree, err := merkle.NewTree(table[i].data)
		if err != nil {
			t.Fatalf("[case:%d] error: unexpected error: %v", table[i].testCaseId, err)
		}
		if tree.String() == "" {
			t.Errorf("[case:%d] error: expected not empty string", table[i].testCaseId)
		}
	}
}

// =============================================================================

// referenceRoot reduces the leaf hashes level by level, duplicating the last
// hash of any odd level.
func referenceRoot(t *testing.T, data []Data) []byte {
	t.Helper()

	var level [][]byte
	for _, d := range data {
		h, err := d.HashBytes()
		if err != nil {
			t.Fatal(err)
		}
		level = append(level, h)
	}

	for {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}

		var next [][]byte
		for i := 0; i < len(level); i += 2 {
			h := sha256.Sum256(append(append([]byte{}, level[i]...), level[i+1]...))
			next = append(next, h[:])
		}

		if len(next) == 1 {
			return next[0]
		}
		level = next
	}
}

var table = []struct {
	testCaseId    int
	data          []Data
	expectedHash  []byte
	notInContents Data
}{
	{
		testCaseId: 1,
		data: []Data{
			{x: "Hello"}, {x: "Hi"}, {x: "Hey"}, {x: "Hola"},
		},
		notInContents: Data{x: "NotInTestTable"},
		expectedHash:  []byte{95, 48, 204, 128, 19, 59, 147, 148, 21, 110, 36, 178, 51, 240, 196, 190, 50, 178, 78, 68, 187, 51, 129, 240, 44, 123, 165, 38, 25, 208, 254, 188},
	},
	{
		testCaseId: 2,
		data: []Data{
			{x: "Hello"}, {x: "Hi"}, {x: "Hey"},
		},
		notInContents: Data{x: "NotInTestTable"},
		expectedHash:  []byte{189, 214, 55, 197, 35, 237, 92, 14, 171, 121, 43, 152, 109, 177, 136, 80, 194, 57, 162, 226, 56, 2, 179, 106, 255, 38, 187, 104, 251, 63, 224, 8},
	},
	{
		testCaseId: 3,
		data: []Data{
			{x: "Hello"}, {x: "Hi"}, {x: "Hey"}, {x: "Greetings"}, {x: "Hola"},
		},
		notInContents: Data{x: "NotInTestTable"},
		expectedHash:  []byte{46, 216, 115, 174, 13, 210, 55, 39, 119, 197, 122, 104, 93, 144, 112, 131, 202, 151, 41, 14, 80, 143, 21, 71, 140, 169, 139, 173, 50, 37, 235, 188},
	},
	{
		testCaseId: 4,
		data: []Data{
			{x: "123"}, {x: "234"}, {x: "345"}, {x: "456"}, {x: "1123"}, {x: "2234"}, {x: "3345"}, {x: "4456"},
		},
		notInContents: Data{x: "NotInTestTable"},
		expectedHash:  []byte{30, 76, 61, 40, 106, 173, 169, 183, 149, 2, 157, 246, 162, 218, 4, 70, 153, 148, 62, 162, 90, 24, 173, 250, 41, 149, 173, 121, 141, 187, 146, 43},
	},
	{
		testCaseId: 5,
		data: []Data{
			{x: "123"}, {x: "234"}, {x: "345"}, {x: "456"}, {x: "1123"}, {x: "2234"}, {x: "3345"}, {x: "4456"}, {x: "5567"},
		},
		notInContents: Data{x: "NotInTestTable"},
		expectedHash:  []byte{143, 37, 161, 192, 69, 241, 248, 56, 169, 87, 79, 145, 37, 155, 51, 159, 209, 129, 164, 140, 130, 167, 16, 182, 133, 205, 126, 55, 237, 188, 89, 236},
	},
}
