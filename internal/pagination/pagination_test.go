package pagination

import (
	"math"
	"testing"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	t.Run("first_page", func(t *testing.T) {
		res := Paginate(items, PageRequest{Page: 1, PageSize: 2})
		if len(res.Data) != 2 || res.Data[0] != 1 {
			t.Errorf("expected [1 2], got %v", res.Data)
		}
		if res.TotalPages != 3 {
			t.Errorf("expected 3 total pages, got %d", res.TotalPages)
		}
		if res.TotalItems != 5 {
			t.Errorf("expected 5 total items, got %d", res.TotalItems)
		}
	})

	t.Run("last_partial_page", func(t *testing.T) {
		res := Paginate(items, PageRequest{Page: 3, PageSize: 2})
		if len(res.Data) != 1 || res.Data[0] != 5 {
			t.Errorf("expected [5], got %v", res.Data)
		}
	})

	t.Run("beyond_last_page", func(t *testing.T) {
		res := Paginate(items, PageRequest{Page: 9, PageSize: 2})
		if res.Data == nil || len(res.Data) != 0 {
			t.Errorf("expected empty non-nil page, got %v", res.Data)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		res := Paginate(items, PageRequest{})
		if res.Page != 1 || res.PageSize != 20 {
			t.Errorf("expected page 1 size 20, got %d/%d", res.Page, res.PageSize)
		}
		if len(res.Data) != 5 {
			t.Errorf("expected all 5 items, got %d", len(res.Data))
		}
	})
}

func TestPaginateOutOfRangeRequests(t *testing.T) {
	items := []int{1, 2, 3}

	tests := []struct {
		name     string
		req      PageRequest
		wantLen  int
		wantPage int
		wantSize int
	}{
		{"negative_page_size", PageRequest{Page: 1, PageSize: -1}, 3, 1, 20},
		{"negative_page", PageRequest{Page: -4, PageSize: 2}, 2, 1, 2},
		{"max_page", PageRequest{Page: math.MaxInt, PageSize: 20}, 0, math.MaxInt, 20},
		{"max_page_size", PageRequest{Page: 1, PageSize: math.MaxInt}, 3, 1, math.MaxInt},
		{"max_page_and_size", PageRequest{Page: math.MaxInt, PageSize: math.MaxInt}, 0, math.MaxInt, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Paginate(items, tt.req)
			if len(res.Data) != tt.wantLen {
				t.Errorf("expected %d items, got %v", tt.wantLen, res.Data)
			}
			if res.Page != tt.wantPage || res.PageSize != tt.wantSize {
				t.Errorf("expected page %d size %d, got %d/%d", tt.wantPage, tt.wantSize, res.Page, res.PageSize)
			}
			if res.TotalItems != 3 {
				t.Errorf("expected 3 total items, got %d", res.TotalItems)
			}
		})
	}
}
