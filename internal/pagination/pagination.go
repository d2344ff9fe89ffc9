// Package pagination implements skip/limit windowing over any countable
// collection.
package pagination

// Page describes one window over a collection of totalCount records.
type Page struct {
	Skip         int64 `json:"skip"`
	Limit        int64 `json:"limit"`
	HasNext      bool  `json:"hasNext"`
	HasPrevious  bool  `json:"hasPrevious"`
	NextPage     int64 `json:"nextPage"`
	PreviousPage int64 `json:"previousPage"`
	LastPage     int64 `json:"lastPage"`
}

// Paginate computes the window for a 1-based page of the given size. Pages
// beyond the last one are accepted as-is and simply yield an empty window;
// there is no clamping.
func Paginate(totalCount, page, pageSize int64) Page {
	lastPage := int64(0)
	if totalCount > 0 {
		lastPage = (totalCount + pageSize - 1) / pageSize
	}

	return Page{
		Skip:         (page - 1) * pageSize,
		Limit:        pageSize,
		HasNext:      page*pageSize < totalCount,
		HasPrevious:  page > 1,
		NextPage:     page + 1,
		PreviousPage: page - 1,
		LastPage:     lastPage,
	}
}
