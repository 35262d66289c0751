package utils

const pageSizeDefault = 50
const pageSizeMax = 500

// GetPaginationParams calculates the offset and limit for a paged list read.
// Nil values fall back to the defaults; the limit is capped so a station
// cannot request the entire history in one call.
func GetPaginationParams(offset *int, limit *int) (int, int) {
	finalOffset := 0
	finalLimit := pageSizeDefault

	if offset != nil && *offset >= 0 {
		finalOffset = *offset
	}

	if limit != nil && *limit > 0 {
		finalLimit = min(*limit, pageSizeMax)
	}

	return finalOffset, finalLimit
}
