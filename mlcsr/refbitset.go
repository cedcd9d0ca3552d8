package mlcsr

import "github.com/bits-and-blooms/bitset"

// refBitset is a small wrapper around bits-and-blooms/bitset tracking
// which borrow "slots" for one level are currently occupied. It is not a
// general-purpose refcount: slots are reused (nextFree scans for the
// first unset bit) rather than monotonically allocated, which keeps a
// hot level's borrow churn from growing the bitset without bound.
type refBitset struct {
	bits *bitset.BitSet
}

func newRefBitset() *refBitset {
	return &refBitset{bits: bitset.New(64)}
}

func (r *refBitset) nextFree() uint {
	for i := uint(0); i < r.bits.Len(); i++ {
		if !r.bits.Test(i) {
			return i
		}
	}
	return r.bits.Len()
}

func (r *refBitset) set(slot uint) {
	r.bits.Set(slot)
}

func (r *refBitset) clear(slot uint) {
	r.bits.Clear(slot)
}

func (r *refBitset) any() bool {
	return r.bits.Any()
}
