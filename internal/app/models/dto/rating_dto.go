package dto

// SubmitRatingRequest is the payload for rating a resource.
type SubmitRatingRequest struct {
	Rating int `json:"rating" binding:"required" example:"4"`
}

// UserRatingResponse returns the caller's current rating for a resource.
// Rating is null when the user has not rated it.
type UserRatingResponse struct {
	Rating *int `json:"rating" example:"4"`
}

// RatingSummaryResponse returns the derived aggregate after a submission.
type RatingSummaryResponse struct {
	AverageRating float64 `json:"averageRating" example:"4.0"`
	TotalRatings  int     `json:"totalRatings" example:"3"`
}
