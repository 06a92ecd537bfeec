package features

import "sort"

// Vector is a sparse feature vector of fixed dimension. Indices are sorted
// ascending and unique.
type Vector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// FromMap builds a Vector from index->value pairs, dropping zeros.
func FromMap(dim int, values map[int]float64) Vector {
	indices := make([]int, 0, len(values))
	for idx, v := range values {
		if v != 0 {
			indices = append(indices, idx)
		}
	}
	sort.Ints(indices)

	vals := make([]float64, len(indices))
	for i, idx := range indices {
		vals[i] = values[idx]
	}

	return Vector{Dim: dim, Indices: indices, Values: vals}
}

func (v Vector) NNZ() int {
	return len(v.Indices)
}

// Dot computes the dot product against a dense weight vector of the same
// dimension. The caller checks dimensions.
func (v Vector) Dot(dense []float64) float64 {
	var sum float64
	for i, idx := range v.Indices {
		sum += v.Values[i] * dense[idx]
	}
	return sum
}

// InBounds reports whether every stored index lies inside [0, Dim).
func (v Vector) InBounds() bool {
	if len(v.Indices) != len(v.Values) {
		return false
	}
	for _, idx := range v.Indices {
		if idx < 0 || idx >= v.Dim {
			return false
		}
	}
	return true
}
