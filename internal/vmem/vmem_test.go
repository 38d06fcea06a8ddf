package vmem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtentsRounding(t *testing.T) {
	page := PageSize()

	testCases := []struct {
		name      string
		data      uintptr
		guard     uintptr
		wantData  uintptr
		wantGuard uintptr
	}{
		{"OneByte", 1, 1, page, page},
		{"ExactPage", page, page, page, page},
		{"PagePlusOne", page + 1, 8, 2 * page, page},
		{"ZeroGuard", 3 * page, 0, 3 * page, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, guard, ok := extents(tc.data, tc.guard)
			assert.True(t, ok)
			assert.Equal(t, tc.wantData, data)
			assert.Equal(t, tc.wantGuard, guard)
		})
	}
}

func TestExtentsOverflow(t *testing.T) {
	page := PageSize()

	_, _, ok := extents(maxUintptr, 1)
	assert.False(t, ok, "data rounding must not wrap")

	_, _, ok = extents(page, maxUintptr-page+2)
	assert.False(t, ok, "guard rounding must not wrap")

	_, _, ok = extents(maxUintptr-page+1, page)
	assert.False(t, ok, "sum of extents must not wrap")

	_, _, ok = extents(maxUintptr-page+1, 0)
	assert.True(t, ok, "largest page multiple with no guard fits")
}

func TestTryReserveZeroSize(t *testing.T) {
	before := ReadStats()

	p, err := TryReserve(0, 8)
	assert.Nil(t, p)
	assert.NoError(t, err)
	assert.Nil(t, Reserve(0, 8))

	after := ReadStats()
	assert.Equal(t, before.TotalReserves, after.TotalReserves)
	assert.Equal(t, before.FailedReserves, after.FailedReserves)
}

func TestTryReserveOverflow(t *testing.T) {
	before := ReadStats()

	p, err := TryReserve(maxUintptr, 8)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrSizeOverflow)
	assert.Nil(t, Reserve(maxUintptr-PageSize()+1, PageSize()))

	assert.Equal(t, before.FailedReserves+2, ReadStats().FailedReserves)
}

func TestFootprint(t *testing.T) {
	page := PageSize()

	reserved, committed := Footprint(10, 10)
	assert.Equal(t, 2*page, reserved)
	assert.Equal(t, page, committed)

	reserved, committed = Footprint(0, 10)
	assert.Zero(t, reserved)
	assert.Zero(t, committed)

	reserved, committed = Footprint(maxUintptr, 1)
	assert.Zero(t, reserved)
	assert.Zero(t, committed)
}

func TestReleaseNil(t *testing.T) {
	before := ReadStats()
	Release(nil, 128, 8)
	assert.Equal(t, before.TotalReleases, ReadStats().TotalReleases)
}
