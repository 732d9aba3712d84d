package sat

import (
	"math/bits"
	"sync"
)

// Number of slice pools.
const nPools = 4

// Capacities of at least lastCapa always map to the last pool.
const lastCapa = 1 << nPools

// Pools of slices with different capacities. pid maps a capacity c to pool
// floor(log2(c)), so pool i contains slices with a capacity between 2^i
// and 2^(i+1)-1 inclusive. The last pool k has no upper bound and contains
// slices with a capacity of at least 2^k.
var pools = [nPools]sync.Pool{}

// pid returns the ID of the smallest pool that can serve a slice of the
// requested capacity.
func pid(capa int) int {
	if lastCapa <= capa {
		return nPools - 1
	}
	id := max(bits.Len(uint(capa))-1, 0)
	if capa < (1 << id) {
		id--
	}
	return id
}

// allocSlice returns an empty slice that has at least the requested
// capacity.
func allocSlice(capa int) *[]Lit {
	id := pid(capa)

	ref := pools[id].Get()
	if ref != nil && capa <= cap(*ref.(*[]Lit)) {
		return ref.(*[]Lit)
	}

	if id < nPools-1 {
		s := make([]Lit, 0, 2<<id)
		return &s
	}

	if capa <= lastCapa*2 {
		s := make([]Lit, 0, lastCapa*2)
		return &s
	}

	s := make([]Lit, 0, capa)
	return &s
}

// freeSlice returns the reference slice so it can be allocated to another
// clause via allocSlice.
func freeSlice(s *[]Lit) {
	*s = (*s)[:0]
	pools[pid(cap(*s))].Put(s)
}
