package pagination

import "testing"

func TestPaginateMiddlePage(t *testing.T) {
	got := Paginate(7, 2, 3)

	want := Page{
		Skip:         3,
		Limit:        3,
		HasNext:      true,
		HasPrevious:  true,
		NextPage:     3,
		PreviousPage: 1,
		LastPage:     3,
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestPaginateFirstPage(t *testing.T) {
	got := Paginate(7, 1, 3)

	if got.Skip != 0 {
		t.Fatalf("expected skip 0, got %d", got.Skip)
	}
	if got.HasPrevious {
		t.Fatal("first page must not report a previous page")
	}
	if !got.HasNext {
		t.Fatal("expected a next page with 7 records and page size 3")
	}
}

func TestPaginateEmptyCollection(t *testing.T) {
	got := Paginate(0, 1, 10)

	if got.LastPage != 0 {
		t.Fatalf("expected lastPage 0 for an empty collection, got %d", got.LastPage)
	}
	if got.HasNext || got.HasPrevious {
		t.Fatalf("expected no neighbouring pages, got %+v", got)
	}
}

func TestPaginateBeyondLastPageYieldsEmptyWindow(t *testing.T) {
	got := Paginate(5, 4, 3)

	if got.Skip != 9 {
		t.Fatalf("expected skip 9, got %d", got.Skip)
	}
	if got.HasNext {
		t.Fatal("page past the end must not report a next page")
	}
	if got.LastPage != 2 {
		t.Fatalf("expected lastPage 2, got %d", got.LastPage)
	}
}
