package model

// Rated reports whether the rater already appears in the book's rating
// sequence. A second submission by the same rater is rejected, never merged.
func (b *Book) Rated(rater string) bool {
	for _, r := range b.Ratings {
		if r.Rater == rater {
			return true
		}
	}
	return false
}

// Average is the arithmetic mean of all grades in the sequence, 0 when it
// is empty. The average is always recomputed from the full sequence.
func Average(ratings []Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Grade
	}
	return float64(sum) / float64(len(ratings))
}
