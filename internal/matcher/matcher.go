package matcher

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	mrand "math/rand/v2"

	"github.com/simonbystrom/teammate/internal/participant"
	"github.com/simonbystrom/teammate/internal/team"
)

var (
	ErrTeamSizeTooSmall = errors.New("team size too small")
	ErrUnevenPool       = errors.New("participants do not divide evenly into teams")
)

// seedStream is the fixed second word of the PCG state.
const seedStream = 0x9e3779b97f4a7c15

// Options configures one formation run.
type Options struct {
	TeamSize int
	// Seed drives the shuffle. The same seed, pool and size always yield
	// the same teams.
	Seed          uint64
	MaxIterations int
	OnSwap        func(Swap)
}

type Result struct {
	Teams []*team.Team
	Seed  uint64
	Stats BalanceStats
}

// Validate checks that poolSize participants can be split into teams of size.
func Validate(poolSize, size int) error {
	if size < MinTeamSize {
		return fmt.Errorf("%w: %d (minimum %d)", ErrTeamSizeTooSmall, size, MinTeamSize)
	}
	if poolSize%size != 0 {
		return fmt.Errorf("%w: %d participants, team size %d leaves %d over",
			ErrUnevenPool, poolSize, size, poolSize%size)
	}
	return nil
}

// Form builds an initial partition of pool and balances it. The caller's
// slice is never reordered. On a precondition failure the result is empty.
func Form(pool []*participant.Participant, opts Options) (Result, error) {
	res := Result{Seed: opts.Seed}
	if err := Validate(len(pool), opts.TeamSize); err != nil {
		return res, err
	}

	rng := NewRand(opts.Seed)
	teams := Build(pool, opts.TeamSize, rng)
	res.Teams, res.Stats = Balance(teams, BalanceOptions{
		MaxIterations: opts.MaxIterations,
		OnSwap:        opts.OnSwap,
	})
	return res, nil
}

// NewRand returns the generator Form uses for seed.
func NewRand(seed uint64) *mrand.Rand {
	return mrand.New(mrand.NewPCG(seed, seed^seedStream))
}

// RandomSeed draws a seed from the system entropy source.
func RandomSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return mrand.Uint64()
	}
	return binary.LittleEndian.Uint64(b[:])
}
