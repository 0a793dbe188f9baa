package sac

// indexPool is a growing prefix view over an arena of quality-ranked sample
// indices. The pool starts at the model's minimum sample size and is only
// ever extended, one next-best-ranked index at a time. Keeping the pool and
// the full range as two views over one arena avoids swapping the model's
// index buffer back and forth between trials.
type indexPool struct {
	arena []int
	n     int
}

func newIndexPool(indices []int, n int) *indexPool {
	return &indexPool{arena: indices, n: n}
}

func (p *indexPool) Len() int {
	return p.n
}

// View returns the current pool prefix. The returned slice aliases the
// arena and must not be retained across Promote calls.
func (p *indexPool) View() []int {
	return p.arena[:p.n]
}

// Last returns the most recently promoted index.
func (p *indexPool) Last() int {
	return p.arena[p.n-1]
}

// Promote extends the pool by the next-best-ranked index. It reports false
// when the full range is exhausted.
func (p *indexPool) Promote() bool {
	if p.n >= len(p.arena) {
		return false
	}
	p.n++
	return true
}
