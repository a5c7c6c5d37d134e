package scoring

import "math"

// CosineSimilarity returns the cosine of the angle between a and b, computed
// in float64. Empty vectors, zero vectors and vectors of different length
// have no direction to compare and yield 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))

	// Float error can push parallel vectors a hair past 1.
	if sim > 1 {
		return 1
	}
	if sim < -1 {
		return -1
	}
	return sim
}

// SimilarityMatrix returns m where m[i][j] = CosineSimilarity(rows[i], cols[j]).
func SimilarityMatrix(rows, cols [][]float32) [][]float64 {
	matrix := make([][]float64, len(rows))
	for i, r := range rows {
		matrix[i] = make([]float64, len(cols))
		for j, c := range cols {
			matrix[i][j] = CosineSimilarity(r, c)
		}
	}
	return matrix
}

// bestMatch returns the highest value in row and its index. Ties keep the
// lowest index. An empty row returns (0, -1).
func bestMatch(row []float64) (float64, int) {
	best, idx := 0.0, -1
	for j, v := range row {
		if idx == -1 || v > best {
			best, idx = v, j
		}
	}
	return best, idx
}
