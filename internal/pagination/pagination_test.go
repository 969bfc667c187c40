package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, perPage, want int
	}{
		{25, 10, 3},
		{20, 10, 2},
		{1, 10, 1},
		{0, 10, 0},
		{23, 10, 3},
		{7, 0, 1}, // default page size
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.perPage), "total=%d perPage=%d", tt.total, tt.perPage)
	}
}

func TestCompute(t *testing.T) {
	info := Compute(23, 2, 10)
	assert.Equal(t, Info{CurrentPage: 2, TotalPages: 3, TotalItems: 23, ItemsPerPage: 10, HasNextPage: true, HasPrevPage: true}, info)

	last := Compute(23, 3, 10)
	assert.False(t, last.HasNextPage)
	assert.True(t, last.HasPrevPage)
}

func TestResolve_CompleteEnvelopeIsVerbatim(t *testing.T) {
	// Server values win even when they disagree with the local formula.
	env := Envelope{
		TotalItems:  intPtr(23),
		TotalPages:  intPtr(5),
		CurrentPage: intPtr(1),
		HasNextPage: boolPtr(true),
		HasPrevPage: boolPtr(false),
	}
	info := Resolve(env, 10, 1, 10)
	assert.Equal(t, 5, info.TotalPages)
	assert.Equal(t, 23, info.TotalItems)
	assert.True(t, info.HasNextPage)
	assert.False(t, info.HasPrevPage)
}

func TestResolve_PartialEnvelopeIsCompleted(t *testing.T) {
	info := Resolve(Envelope{TotalItems: intPtr(25)}, 10, 2, 10)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 2, info.CurrentPage)
	assert.True(t, info.HasNextPage)
	assert.True(t, info.HasPrevPage)
}

func TestResolve_NoEnvelopeFallsBack(t *testing.T) {
	info := Resolve(Envelope{}, 37, 3, 10)
	assert.Equal(t, 1, info.TotalPages)
	assert.Equal(t, 37, info.TotalItems)
	assert.False(t, info.HasNextPage)
	assert.False(t, info.HasPrevPage)
}

func TestAfterMutation(t *testing.T) {
	info := Compute(20, 2, 10)

	created := AfterMutation(info, 1)
	assert.Equal(t, 21, created.TotalItems)
	assert.Equal(t, 3, created.TotalPages)
	assert.True(t, created.HasNextPage)

	deleted := AfterMutation(Compute(21, 3, 10), -1)
	assert.Equal(t, 20, deleted.TotalItems)
	assert.Equal(t, 2, deleted.TotalPages)
	assert.Equal(t, 2, deleted.CurrentPage, "current page is clamped to the new last page")
	assert.False(t, deleted.HasNextPage)
}

func TestAfterMutation_FloorsAtZero(t *testing.T) {
	info := AfterMutation(Compute(0, 1, 10), -1)
	assert.Equal(t, 0, info.TotalItems)
	assert.Equal(t, 0, info.TotalPages)
	assert.Equal(t, 1, info.CurrentPage)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(0, 3))
	assert.Equal(t, 1, Clamp(-4, 3))
	assert.Equal(t, 3, Clamp(9, 3))
	assert.Equal(t, 2, Clamp(2, 3))
	assert.Equal(t, 1, Clamp(5, 0), "empty list has one page")
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	assert.Equal(t, []int{1, 2, 3, 4, 5}, Slice(items, 1, 5))
	assert.Equal(t, []int{11, 12}, Slice(items, 3, 5))
	assert.Empty(t, Slice(items, 4, 5), "page beyond the end is empty, not a panic")
	assert.Empty(t, Slice([]int(nil), 1, 5))
}

func TestClientSide(t *testing.T) {
	single := Compute(4, 1, 10)
	multi := Compute(40, 1, 10)

	assert.True(t, ClientSide(single, "court"))
	assert.False(t, ClientSide(single, "   "))
	assert.False(t, ClientSide(multi, "court"))
}
