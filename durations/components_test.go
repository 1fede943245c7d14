package durations

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecompose(t *testing.T) {
	t.Run("one of everything below a week", func(t *testing.T) {
		c := Decompose(90061 * time.Second)

		assert.Equal(t, Components{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}, c)
	})

	t.Run("weeks and remainders", func(t *testing.T) {
		d := 7*24*time.Hour + 2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second + 6*time.Millisecond
		c := Decompose(d)

		assert.Equal(t, Components{Weeks: 1, Days: 2, Hours: 3, Minutes: 4, Seconds: 5, Milliseconds: 6}, c)
	})

	t.Run("sub millisecond precision is truncated", func(t *testing.T) {
		c := Decompose(1*time.Second + 999*time.Microsecond + 999*time.Nanosecond)

		assert.Equal(t, Components{Seconds: 1}, c)
	})

	t.Run("zero", func(t *testing.T) {
		assert.Equal(t, Components{}, Decompose(0))
	})

	t.Run("negative is clamped to zero", func(t *testing.T) {
		assert.Equal(t, Components{}, Decompose(-5*time.Second))
	})

	t.Run("largest duration", func(t *testing.T) {
		c := Decompose(time.Duration(math.MaxInt64))

		assert.Equal(t, uint64(math.MaxInt64/int64(time.Second)), c.TotalSeconds())
		assert.Equal(t, uint32(854), c.Milliseconds)
	})
}

func TestDecomposeSeconds(t *testing.T) {
	t.Run("milliseconds carry into seconds", func(t *testing.T) {
		c := DecomposeSeconds(59, 1500)

		assert.Equal(t, Components{Minutes: 1, Milliseconds: 500}, c)
	})

	t.Run("full uint64 range", func(t *testing.T) {
		c := DecomposeSeconds(math.MaxUint64, 999)

		assert.Equal(t, uint64(math.MaxUint64), c.TotalSeconds())
		assert.Equal(t, uint32(999), c.Milliseconds)
	})

	t.Run("carry saturates", func(t *testing.T) {
		c := DecomposeSeconds(math.MaxUint64, 5000)

		assert.Equal(t, uint64(math.MaxUint64), c.TotalSeconds())
		assert.Equal(t, uint32(0), c.Milliseconds)
	})
}

func TestDecomposeInvariants(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	check := func(t *testing.T, secs uint64, millis uint32) {
		c := DecomposeSeconds(secs, millis)

		assert.Equal(t, secs, c.TotalSeconds(), "secs=%d", secs)
		assert.Equal(t, millis, c.Milliseconds)
		assert.LessOrEqual(t, c.Days, uint64(6))
		assert.LessOrEqual(t, c.Hours, uint64(23))
		assert.LessOrEqual(t, c.Minutes, uint64(59))
		assert.LessOrEqual(t, c.Seconds, uint64(59))
		assert.LessOrEqual(t, c.Milliseconds, uint32(999))
	}

	t.Run("boundaries", func(t *testing.T) {
		for _, secs := range []uint64{0, 1, 59, 60, 3599, 3600, 86399, 86400, 604799, 604800, math.MaxUint64} {
			check(t, secs, 0)
			check(t, secs, 999)
		}
	})

	t.Run("random", func(t *testing.T) {
		for range 1000 {
			check(t, r.Uint64(), uint32(r.IntN(1000)))
		}
	})

	t.Run("round trip through time.Duration", func(t *testing.T) {
		for range 1000 {
			d := time.Duration(r.Int64())
			assert.Equal(t, d.Truncate(time.Millisecond), Decompose(d).Duration())
		}
	})
}

func TestComponentsDuration(t *testing.T) {
	assert.Equal(t, 125*time.Second+6*time.Millisecond, Components{Minutes: 2, Seconds: 5, Milliseconds: 6}.Duration())
	assert.Equal(t, time.Duration(math.MaxInt64), DecomposeSeconds(math.MaxUint64, 0).Duration())
	assert.Equal(t, time.Duration(math.MaxInt64), Components{Weeks: math.MaxUint64}.Duration())
}
