package des

import "github.com/bgallie/des/cryptors/rotor"

// KeySchedule generates the 16 round keys for a secret key.  It is a single
// pass generator: each call to Next advances it by one round, and once all
// 16 keys have been produced it is exhausted.
type KeySchedule struct {
	c, d  *rotor.Rotor
	round int
}

// NewKeySchedule applies PC-1 to key and loads the resulting C and D halves.
// The parity bits of key (bits 8, 16, ... 64) are not used.
func NewKeySchedule(key uint64) *KeySchedule {
	c, d := PermutedChoice1(key)
	return &KeySchedule{
		c: rotor.New(halfWidth, c),
		d: rotor.New(halfWidth, d),
	}
}

// Next rotates C and D for the next round and returns that round's 48 bit
// key.  ok is false when the schedule is exhausted.
func (ks *KeySchedule) Next() (key uint64, ok bool) {
	if ks.round >= Rounds {
		return 0, false
	}

	ks.c.Step(shifts[ks.round])
	ks.d.Step(shifts[ks.round])
	ks.round++

	return permutedChoice2.Apply_F(ks.c.Value()<<halfWidth | ks.d.Value()), true
}

// Round returns the number of keys produced so far.
func (ks *KeySchedule) Round() int {
	return ks.round
}

// PermutedChoice1 returns the 28 bit C and D halves selected from key.
func PermutedChoice1(key uint64) (c, d uint64) {
	return permutedChoice1C.Apply_F(key), permutedChoice1D.Apply_F(key)
}

// RoundKeys returns all 16 round keys for key, indexed by round.
func RoundKeys(key uint64) (keys [Rounds]uint64) {
	ks := NewKeySchedule(key)
	for i := range keys {
		keys[i], _ = ks.Next()
	}

	return keys
}
