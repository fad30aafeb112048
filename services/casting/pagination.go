package casting

import (
	"math"

	"github.com/upb/casting-agency/services"
)

// PageSize is the number of records returned per listing page
const PageSize = 10

// maxPage is the largest page whose offset fits in an int
const maxPage = math.MaxInt/PageSize + 1

// pageBounds converts a 1-based page number into limit and offset
func pageBounds(page int) (limit, offset int, err error) {
	if page < 1 || page > maxPage {
		return 0, 0, services.ErrInvalidPage
	}
	return PageSize, (page - 1) * PageSize, nil
}
