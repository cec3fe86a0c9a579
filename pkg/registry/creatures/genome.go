package creatures

import (
	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/hive.go/serializer/v2/marshalutil"
	"github.com/iotaledger/registry-core/pkg/model"
	"github.com/iotaledger/registry-core/pkg/registry"
	"golang.org/x/crypto/blake2b"
)

// randomValue derives a genome from the seed of the slot, the actor and the position of the transaction.
func randomValue(seed []byte, tx registry.Tx) (genome model.Genome) {
	index := marshalutil.New()
	index.WriteUint32(tx.Index)

	hash := lo.PanicOnErr(blake2b.New(model.GenomeLength, nil))
	_, _ = hash.Write(seed)
	_, _ = hash.Write(tx.Actor[:])
	_, _ = hash.Write(index.Bytes())
	copy(genome[:], hash.Sum(nil))

	return genome
}

// combineGenomes takes every bit from parent2 where the selector bit is set and from parent1 otherwise.
func combineGenomes(parent1 model.Genome, parent2 model.Genome, selector model.Genome) (child model.Genome) {
	for i := range child {
		child[i] = (^selector[i] & parent1[i]) | (selector[i] & parent2[i])
	}

	return child
}
