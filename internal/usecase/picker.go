package usecase

import (
	"math/rand"
	"time"

	"cinema-ops/internal/data/entity"
)

// MoviePicker selects one movie from a non-empty candidate list. Injected so
// the generator can be tested with a deterministic pick.
type MoviePicker interface {
	Pick(movies []*entity.Movie) *entity.Movie
}

type randomPicker struct {
	rng *rand.Rand
}

func NewRandomPicker() MoviePicker {
	return &randomPicker{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (p *randomPicker) Pick(movies []*entity.Movie) *entity.Movie {
	if len(movies) == 0 {
		return nil
	}
	return movies[p.rng.Intn(len(movies))]
}
