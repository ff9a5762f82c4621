package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulk/studyshare/internal/pkg/apperrors"
)

func newRatingServiceForTest() (*RatingService, *fakeResourceStore) {
	resources := newFakeResourceStore()
	return NewRatingService(newFakeRatingStore(), resources), resources
}

func TestSubmitRatingAggregates(t *testing.T) {
	svc, resources := newRatingServiceForTest()
	res := resources.addResource(1, "DBMS Notes")

	_, err := svc.Submit(context.Background(), 10, res.ID, 5)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), 11, res.ID, 3)
	require.NoError(t, err)

	summary, err := svc.Submit(context.Background(), 12, res.ID, 4)
	require.NoError(t, err)

	assert.Equal(t, 4.0, summary.AverageRating)
	assert.Equal(t, 3, summary.TotalRatings)

	// The aggregate is written back to the resource.
	stored, err := resources.GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, stored.AverageRating)
	assert.Equal(t, 3, stored.TotalRatings)
}

func TestResubmitReplacesRating(t *testing.T) {
	svc, resources := newRatingServiceForTest()
	res := resources.addResource(1, "DBMS Notes")

	_, err := svc.Submit(context.Background(), 10, res.ID, 5)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), 11, res.ID, 3)
	require.NoError(t, err)

	// User 10 changes their mind; the count must not grow.
	summary, err := svc.Submit(context.Background(), 10, res.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, 2.0, summary.AverageRating)
	assert.Equal(t, 2, summary.TotalRatings)
}

func TestSubmitRatingOutOfRange(t *testing.T) {
	svc, resources := newRatingServiceForTest()
	res := resources.addResource(1, "DBMS Notes")

	for _, value := range []int{0, 6, -1, 100} {
		_, err := svc.Submit(context.Background(), 10, res.ID, value)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "value %d", value)
	}

	// Rejected submissions must not touch the aggregate.
	stored, err := resources.GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stored.AverageRating)
	assert.Equal(t, 0, stored.TotalRatings)
}

func TestSubmitRatingUnknownResource(t *testing.T) {
	svc, _ := newRatingServiceForTest()

	_, err := svc.Submit(context.Background(), 10, 999, 4)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestSubmitRatingAverageRounding(t *testing.T) {
	svc, resources := newRatingServiceForTest()
	res := resources.addResource(1, "DBMS Notes")

	_, err := svc.Submit(context.Background(), 10, res.ID, 5)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), 11, res.ID, 4)
	require.NoError(t, err)

	summary, err := svc.Submit(context.Background(), 12, res.ID, 4)
	require.NoError(t, err)

	// 13/3 rounded to two decimals.
	assert.Equal(t, 4.33, summary.AverageRating)
	assert.Equal(t, 3, summary.TotalRatings)
}

func TestGetUserRating(t *testing.T) {
	svc, resources := newRatingServiceForTest()
	res := resources.addResource(1, "DBMS Notes")

	// No rating yet: nil, not an error.
	resp, err := svc.GetUserRating(context.Background(), 10, res.ID)
	require.NoError(t, err)
	assert.Nil(t, resp.Rating)

	_, err = svc.Submit(context.Background(), 10, res.ID, 4)
	require.NoError(t, err)

	resp, err = svc.GetUserRating(context.Background(), 10, res.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.Rating)
	assert.Equal(t, 4, *resp.Rating)

	// Another user still sees no rating of their own.
	resp, err = svc.GetUserRating(context.Background(), 11, res.ID)
	require.NoError(t, err)
	assert.Nil(t, resp.Rating)
}
