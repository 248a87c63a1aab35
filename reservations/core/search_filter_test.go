package core_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/room-reservations-go/reservations/core"
)

func Test_SearchFilter_PageRequest_Defaults(t *testing.T) {
	page, err := core.SearchFilter{}.PageRequest()

	assert.NoError(t, err)
	assert.Equal(t, core.PageRequest{Size: 2, Number: 0}, page)
	assert.Equal(t, 0, page.Offset())
}

func Test_SearchFilter_PageRequest_Explicit(t *testing.T) {
	size, number := 5, 3

	page, err := core.SearchFilter{PageSize: &size, PageNumber: &number}.PageRequest()

	assert.NoError(t, err)
	assert.Equal(t, core.PageRequest{Size: 5, Number: 3}, page)
	assert.Equal(t, 15, page.Offset())
}

func Test_SearchFilter_PageRequest_Invalid(t *testing.T) {
	zero, negative := 0, -1

	_, err := core.SearchFilter{PageSize: &zero}.PageRequest()
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = core.SearchFilter{PageNumber: &negative}.PageRequest()
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func Test_Slice(t *testing.T) {
	all := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, core.Slice(all, core.PageRequest{Size: 2, Number: 0}))
	assert.Equal(t, []int{5}, core.Slice(all, core.PageRequest{Size: 2, Number: 2}))
	assert.Empty(t, core.Slice(all, core.PageRequest{Size: 2, Number: 3}))
	assert.NotNil(t, core.Slice(all, core.PageRequest{Size: 2, Number: 3}))
}

func Test_Slice_HugePages(t *testing.T) {
	all := []int{1, 2, 3, 4, 5}

	testCases := []struct {
		description string
		page        core.PageRequest
		expected    []int
	}{
		{description: "size times number overflows", page: core.PageRequest{Size: math.MaxInt/2 + 1, Number: 2}, expected: []int{}},
		{description: "max size, first page", page: core.PageRequest{Size: math.MaxInt, Number: 0}, expected: all},
		{description: "max size, second page", page: core.PageRequest{Size: math.MaxInt, Number: 1}, expected: []int{}},
		{description: "max number", page: core.PageRequest{Size: 1, Number: math.MaxInt}, expected: []int{}},
		{description: "size beyond the rest", page: core.PageRequest{Size: math.MaxInt - 1, Number: 0}, expected: all},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tc.expected, core.Slice(all, tc.page))
			})
		})
	}
}

func Test_PageRequest_Offset_Saturates(t *testing.T) {
	assert.Equal(t, math.MaxInt, core.PageRequest{Size: math.MaxInt/2 + 1, Number: 2}.Offset())
	assert.Equal(t, 0, core.PageRequest{Size: math.MaxInt, Number: 0}.Offset())
}
