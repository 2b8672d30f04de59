package surface

import "errors"

// Block order is kept with fractional ranks: lowercase base36 strings compared
// lexicographically. A new block gets a rank strictly between its neighbours,
// so inserting never renumbers the other blocks unless the gap is exhausted.

const rankAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const (
	rankMinDigit = 0
	rankMaxDigit = len(rankAlphabet) - 1
	rankMaxLen   = 64
)

// errNoRankSpace means no rank of bounded length fits between two ranks.
// The buffer answers it by rebalancing.
var errNoRankSpace = errors.New("no space between ranks")

func rankDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'z':
		return 10 + int(c-'a'), true
	default:
		return 0, false
	}
}

// rankBetween returns a rank strictly between lower and upper.
// An empty lower means no lower bound, an empty upper no upper bound.
func rankBetween(lower, upper string) (string, error) {
	if lower != "" && upper != "" && lower >= upper {
		return "", errors.New("rankBetween requires lower < upper")
	}

	fits := func(r string) bool {
		return r != "" && (lower == "" || lower < r) && (upper == "" || r < upper)
	}

	prefix := make([]byte, 0, 8)
	for i := 0; i < rankMaxLen; i++ {
		lo, hi := rankMinDigit, rankMaxDigit
		if i < len(lower) {
			d, ok := rankDigit(lower[i])
			if !ok {
				return "", errors.New("invalid rank character in lower bound")
			}
			lo = d
		}
		if i < len(upper) {
			d, ok := rankDigit(upper[i])
			if !ok {
				return "", errors.New("invalid rank character in upper bound")
			}
			hi = d
		}

		if lo == hi {
			prefix = append(prefix, rankAlphabet[lo])
			continue
		}

		if hi-lo > 1 {
			prefix = append(prefix, rankAlphabet[lo+(hi-lo)/2])
			if r := string(prefix); fits(r) {
				return r, nil
			}
			return "", errNoRankSpace
		}

		// Adjacent digits: keep lower's digit here (upper is already larger
		// at this position) and grow past the rest of lower.
		rest := ""
		if i < len(lower) {
			rest = lower[i+1:]
		}
		tail, err := rankBetween(rest, "")
		if err != nil {
			return "", err
		}
		if r := string(append(prefix, rankAlphabet[lo])) + tail; fits(r) {
			return r, nil
		}
		return "", errNoRankSpace
	}
	return "", errNoRankSpace
}

// spreadRanks returns n ranks of equal length, evenly spaced and sorted.
func spreadRanks(n int) []string {
	if n <= 0 {
		return nil
	}
	base := len(rankAlphabet)
	width, capacity := 1, base
	for capacity < (n+1)*base {
		width++
		capacity *= base
	}
	step := capacity / (n + 1)

	ranks := make([]string, n)
	for i := range ranks {
		ranks[i] = encodeRank((i+1)*step, width)
	}
	return ranks
}

func encodeRank(v, width int) string {
	base := len(rankAlphabet)
	buf := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		buf[i] = rankAlphabet[v%base]
		v /= base
	}
	return string(buf)
}
