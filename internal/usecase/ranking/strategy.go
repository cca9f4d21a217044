package ranking

import (
	"context"
	"fmt"
	"strings"

	"github.com/relatedbrands/generator/internal/domain"
)

// Mode selects a ranking algorithm
type Mode int

const (
	// ModeKOfN scores brands by distinct shared anchor categories
	ModeKOfN Mode = iota
	// ModeRaw scores brands by shared product count
	ModeRaw
	// ModeWeighted scores brands by shared products discounted by category size
	ModeWeighted
)

// DefaultMinCategoryMatches is the K-of-N threshold when none is configured
const DefaultMinCategoryMatches = 2

// String returns the configuration name of the mode
func (m Mode) String() string {
	switch m {
	case ModeRaw:
		return "RAW"
	case ModeWeighted:
		return "WEIGHTED"
	case ModeKOfN:
		return "KOFN"
	default:
		return "unknown"
	}
}

// ParseMode parses RAW, WEIGHTED or KOFN, case-insensitively
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RAW":
		return ModeRaw, nil
	case "WEIGHTED":
		return ModeWeighted, nil
	case "KOFN", "":
		return ModeKOfN, nil
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidRankingMode, s)
	}
}

// Strategy is a ranking mode together with the parameters it needs
type Strategy struct {
	Mode Mode
	// MinCategoryMatches is only read by ModeKOfN
	MinCategoryMatches int
}

// Ranker orders candidate brands for a set of anchor categories
type Ranker interface {
	Rank(ctx context.Context, anchorCategoryIDs []int, excludeBrandID int) ([]domain.RankedCandidate, error)
}

// New builds the ranker for a strategy on top of a product source
func New(s Strategy, source domain.ProductSource) (Ranker, error) {
	switch s.Mode {
	case ModeRaw:
		return NewRaw(source), nil
	case ModeWeighted:
		return NewWeighted(source), nil
	case ModeKOfN:
		k := s.MinCategoryMatches
		if k <= 0 {
			k = DefaultMinCategoryMatches
		}
		return NewKOfN(source, k), nil
	default:
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidRankingMode, s.Mode)
	}
}
