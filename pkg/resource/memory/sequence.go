package memory

import (
	"math/big"

	"github.com/kasuganosora/memstore/pkg/resource/domain"
)

// sequencePreallocationAmount 每次引导/刷新预分配的值数量
const sequencePreallocationAmount = 4096

// sequenceRefillBatch 计数器耗尽时再次扩容的步进数
const sequenceRefillBatch = 1024

// sequence 是一个单调递增的整数分配器，内存计数器永不越过 allocated 上限
type sequence struct {
	schema  domain.SequenceSchema
	counter *big.Int // next value not yet handed out; nil until first gen
}

func newSequence(schema domain.SequenceSchema) *sequence {
	return &sequence{schema: schema}
}

func validateSequenceBounds(increment, start, min, max *big.Int) error {
	if increment.Sign() == 0 {
		return domain.NewErrSequenceIncrementIsZero()
	}
	if min.Cmp(max) >= 0 {
		return domain.NewErrSequenceMinMax()
	}
	if start.Cmp(min) < 0 {
		return domain.NewErrSequenceMinStart()
	}
	if start.Cmp(max) > 0 {
		return domain.NewErrSequenceMaxStart()
	}
	return nil
}

// genNextValue returns the next value if it remains within allocated, else ok=false.
func (s *sequence) genNextValue() (*big.Int, bool) {
	cur := s.counter
	if cur == nil {
		cur = new(big.Int).Set(s.schema.Start)
	}
	if cur.Cmp(s.schema.Allocated) > 0 {
		return nil, false
	}
	s.counter = new(big.Int).Add(cur, s.schema.Increment)
	return new(big.Int).Set(cur), true
}

// nthValue returns the value n steps ahead of the current counter, without consuming it.
func (s *sequence) nthValue(n int64) *big.Int {
	cur := s.counter
	if cur == nil {
		cur = s.schema.Start
	}
	step := new(big.Int).Mul(s.schema.Increment, big.NewInt(n))
	return new(big.Int).Add(cur, step)
}

// setAllocation raises the committed high-water mark.
func (s *sequence) setAllocation(v *big.Int) {
	s.schema.Allocated = v
}

// sequencesState is the live SequenceId -> sequence cache.
type sequencesState struct {
	sequences map[domain.SequenceId]*sequence
}

func newSequencesState() *sequencesState {
	return &sequencesState{sequences: make(map[domain.SequenceId]*sequence)}
}

func (s *sequencesState) get(id domain.SequenceId) (*sequence, bool) {
	seq, ok := s.sequences[id]
	return seq, ok
}

func (s *sequencesState) put(seq *sequence) {
	s.sequences[seq.schema.SequenceId] = seq
}

func (s *sequencesState) remove(id domain.SequenceId) {
	delete(s.sequences, id)
}
