package dataset

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/go-gota/gota/dataframe"
)

// Sample draws ⌊frac·N⌋ rows uniformly without replacement using rng.
// The subsample keeps the source row order, and the same rng state always
// yields the same rows.
func Sample(df dataframe.DataFrame, frac float64, rng *rand.Rand) (dataframe.DataFrame, error) {
	n := df.Nrow()
	k := int(frac * float64(n))
	if k <= 0 {
		return dataframe.DataFrame{}, fmt.Errorf("sample of %d rows at fraction %v is empty", n, frac)
	}

	idx := rng.Perm(n)[:k]
	sort.Ints(idx)

	sub := df.Subset(idx)
	if sub.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("subset sampled rows: %w", sub.Err)
	}
	return sub, nil
}
