//go:build unix || windows

package ovector_test

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/ovector"
)

// TestEdgeCases covers construction limits and ownership edge cases
func TestEdgeCases(t *testing.T) {
	t.Run("ZeroAndNegativeMaxSizes", func(t *testing.T) {
		for _, n := range []int{0, -1, -1000, math.MinInt} {
			v := ovector.WithMaxSizeOrNull[int](n)
			assert.False(t, v.Backed(), "WithMaxSizeOrNull(%d)", n)
			assert.Zero(t, v.Cap())
			v.Free()
		}
	})

	t.Run("IntegerOverflowProtection", func(t *testing.T) {
		type big [1 << 12]byte
		for _, n := range []int{math.MaxInt, math.MaxInt / 2, math.MaxInt/(1<<11) + 1} {
			v, err := ovector.WithMaxSize[big](n)
			assert.False(t, v.Backed(), "n=%d", n)
			assert.ErrorIs(t, err, ovector.ErrSizeOverflow, "n=%d", n)
		}
	})

	t.Run("ByteVectorBeyondAddressSpace", func(t *testing.T) {
		// MaxInt bytes fits a uintptr but no OS will reserve it.
		v, err := ovector.WithMaxSize[byte](math.MaxInt)
		assert.False(t, v.Backed())
		assert.Error(t, err)
	})

	t.Run("PageBoundaries", func(t *testing.T) {
		page := ovector.PageSize()
		for _, n := range []int{page - 1, page, page + 1, 2 * page} {
			v := ovector.WithMaxSizeOrNull[byte](n)
			require.True(t, v.Backed(), "n=%d", n)

			raw := unsafe.Slice(v.Data(), n)
			for i := range raw {
				raw[i] = byte(i)
			}
			v.UninitializedGrowBackBy(n)
			assert.Equal(t, byte(n-1), *v.Back())

			end := uintptr(unsafe.Pointer(v.Data())) + uintptr(n)
			assert.Zero(t, end%uintptr(page), "guard does not start at the logical end for n=%d", n)
			v.Free()
		}
	})

	t.Run("MultipleFrees", func(t *testing.T) {
		v := ovector.WithMaxSizeOrNull[int](4)
		v.Free()
		v.Free()
		assert.False(t, v.Backed())
	})

	t.Run("MovedFromIsReusableAsTarget", func(t *testing.T) {
		a := ovector.WithMaxSizeOrNull[int](2)
		a.PushBack(1)
		b := a.Take()

		c := ovector.WithMaxSizeOrNull[int](3)
		c.PushBack(9)
		a.MoveFrom(c)
		defer a.Free()
		defer b.Free()

		assert.Equal(t, []int{9}, a.Slice())
		assert.Equal(t, 3, a.Cap())
		assert.Equal(t, []int{1}, b.Slice())
		assert.False(t, c.Backed())
	})

	t.Run("SwapWithSelf", func(t *testing.T) {
		v := ovector.WithMaxSizeOrNull[int](2)
		defer v.Free()
		v.PushBack(3)
		v.Swap(v)
		assert.Equal(t, []int{3}, v.Slice())
	})

	t.Run("ReservationsAreBalanced", func(t *testing.T) {
		before := ovector.ReadReservationStats()
		vs := make([]*ovector.Vector[int64], 0, 32)
		for i := range 32 {
			vs = append(vs, ovector.WithMaxSizeOrNull[int64](i+1))
		}
		assert.Equal(t, before.Reservations+32, ovector.ReadReservationStats().Reservations)
		for _, v := range vs {
			v.Free()
		}
		after := ovector.ReadReservationStats()
		assert.Equal(t, before.Reservations, after.Reservations)
		assert.Equal(t, before.ReservedBytes, after.ReservedBytes)
	})
}

// TestTypeSafety covers the element types a vector accepts
func TestTypeSafety(t *testing.T) {
	t.Run("BasicTypes", func(t *testing.T) {
		i8 := ovector.WithMaxSizeOrNull[int8](1)
		f64 := ovector.WithMaxSizeOrNull[float64](1)
		c128 := ovector.WithMaxSizeOrNull[complex128](1)
		b := ovector.WithMaxSizeOrNull[bool](1)
		defer i8.Free()
		defer f64.Free()
		defer c128.Free()
		defer b.Free()

		i8.PushBack(-128)
		f64.PushBack(math.Pi)
		c128.PushBack(complex(1, 2))
		b.PushBack(true)

		assert.Equal(t, int8(-128), *i8.Front())
		assert.Equal(t, math.Pi, *f64.Front())
		assert.Equal(t, complex(1, 2), *c128.Front())
		assert.True(t, *b.Front())
	})

	t.Run("ComplexTypes", func(t *testing.T) {
		type Header struct {
			ID    uint64
			Flags [4]bool
			Pos   struct{ X, Y float32 }
		}
		v := ovector.WithMaxSizeOrNull[Header](2)
		defer v.Free()

		h := Header{ID: 7}
		h.Flags[2] = true
		h.Pos.X = 1.5
		v.PushBack(h)
		assert.Equal(t, h, *v.At(0))
	})

	t.Run("PointerTypesRejected", func(t *testing.T) {
		type Node struct {
			Next *Node
		}
		assert.Panics(t, func() { ovector.WithMaxSizeOrNull[Node](1) })
		assert.Panics(t, func() { ovector.WithMaxSizeOrNull[[]int](1) })
		assert.Panics(t, func() { ovector.WithMaxSizeOrNull[map[string]int](1) })
		assert.Panics(t, func() { ovector.WithMaxSizeOrNull[error](1) })
	})
}
