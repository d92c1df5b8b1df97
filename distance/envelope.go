// SPDX-License-Identifier: MIT

package distance

// envelope is the 1-D lower envelope of parabolas used by the separable
// transforms. For every q in [0, n) it finds the p minimising
// (q-p)² + f[p] over present samples (f[p] >= 0); f[p] < 0 marks an absent
// sample. best[q] is -1 when no sample is present. Ties go to the smaller p.
//
// Breakpoints are kept as exact rationals so equal distances always compare
// equal.
type envelope struct {
	v      []int   // parabola apexes in the envelope
	zn, zd []int64 // breakpoint z[k] = zn[k]/zd[k], zd > 0
}

func newEnvelope(n int) *envelope {
	return &envelope{v: make([]int, n), zn: make([]int64, n), zd: make([]int64, n)}
}

// intersect returns the abscissa where the parabolas of p < r meet.
func intersect(f []int64, p, r int) (num, den int64) {
	pp, rr := int64(p), int64(r)
	return (f[r] + rr*rr) - (f[p] + pp*pp), 2 * (rr - pp)
}

func (e *envelope) solve(f []int64, best []int) {
	k := -1
	for q := range f {
		if f[q] < 0 {
			continue
		}
		if k < 0 {
			k = 0
			e.v[0] = q
			continue
		}
		var sn, sd int64
		for {
			sn, sd = intersect(f, e.v[k], q)
			// pop while s <= z[k]; z[0] is -∞
			if k > 0 && sn*e.zd[k] <= e.zn[k]*sd {
				k--
				continue
			}
			break
		}
		k++
		e.v[k], e.zn[k], e.zd[k] = q, sn, sd
	}

	if k < 0 {
		for q := range best {
			best[q] = -1
		}
		return
	}
	last, j := k, 0
	for q := range best {
		// advance while z[j+1] < q
		for j < last && e.zn[j+1] < int64(q)*e.zd[j+1] {
			j++
		}
		best[q] = e.v[j]
	}
}
