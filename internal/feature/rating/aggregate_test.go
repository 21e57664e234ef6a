package rating

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sustainably-yours/internal/domain"
)

func ratingsOf(scores ...int) []domain.Rating {
	list := make([]domain.Rating, 0, len(scores))
	for _, s := range scores {
		list = append(list, domain.Rating{Rating: s})
	}
	return list
}

func TestAverage(t *testing.T) {
	// 空集回到 0，不是 NaN
	assert.Equal(t, 0.0, Average(nil))
	assert.Equal(t, 0.0, Average([]domain.Rating{}))

	assert.Equal(t, 5.0, Average(ratingsOf(5)))
	assert.Equal(t, 4.0, Average(ratingsOf(5, 3)))
	// 11/3 = 3.666... → 3.7
	assert.Equal(t, 3.7, Average(ratingsOf(5, 3, 3)))
	// 7/2 = 3.5 保持 3.5
	assert.Equal(t, 3.5, Average(ratingsOf(4, 3)))
	// 13/4 = 3.25 → 远离零 3.3
	assert.Equal(t, 3.3, Average(ratingsOf(4, 3, 3, 3)))
}

func TestRecomputeProduct(t *testing.T) {
	ctx := context.Background()
	target := domain.Target{Kind: domain.TargetProduct, ID: "p1"}

	ratings := new(mockRatings)
	products := new(mockProducts)
	ratings.On("ListByTarget", ctx, target).Return(ratingsOf(5, 3), nil)
	products.On("SetAverageRating", ctx, "p1", 4.0).Return(nil)

	a := NewAggregator(ratings, products, new(mockBusinesses))
	avg, err := a.Recompute(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, 4.0, avg)
	products.AssertExpectations(t)
}

func TestRecomputeBusiness(t *testing.T) {
	ctx := context.Background()
	target := domain.Target{Kind: domain.TargetBusiness, ID: "b1"}

	ratings := new(mockRatings)
	businesses := new(mockBusinesses)
	ratings.On("ListByTarget", ctx, target).Return(ratingsOf(2), nil)
	businesses.On("SetAverageRating", ctx, "b1", 2.0).Return(nil)

	a := NewAggregator(ratings, new(mockProducts), businesses)
	avg, err := a.Recompute(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, 2.0, avg)
	businesses.AssertExpectations(t)
}

func TestRecomputeEmptySetResetsToZero(t *testing.T) {
	ctx := context.Background()
	target := domain.Target{Kind: domain.TargetProduct, ID: "p1"}

	ratings := new(mockRatings)
	products := new(mockProducts)
	ratings.On("ListByTarget", ctx, target).Return([]domain.Rating{}, nil)
	products.On("SetAverageRating", ctx, "p1", 0.0).Return(nil)

	a := NewAggregator(ratings, products, new(mockBusinesses))
	avg, err := a.Recompute(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
}

// 评分生命周期：新增 5、3 → 4.0；改 3 为 1 → 3.0；删到只剩 1 → 1.0
func TestRecomputeFollowsRatingLifecycle(t *testing.T) {
	ctx := context.Background()
	target := domain.Target{Kind: domain.TargetProduct, ID: "p1"}

	steps := []struct {
		scores []int
		want   float64
	}{
		{[]int{5, 3}, 4.0},
		{[]int{5, 1}, 3.0},
		{[]int{1}, 1.0},
	}
	for _, s := range steps {
		ratings := new(mockRatings)
		products := new(mockProducts)
		ratings.On("ListByTarget", ctx, target).Return(ratingsOf(s.scores...), nil)
		products.On("SetAverageRating", ctx, "p1", s.want).Return(nil)

		a := NewAggregator(ratings, products, new(mockBusinesses))
		avg, err := a.Recompute(ctx, target)
		require.NoError(t, err)
		assert.Equal(t, s.want, avg)
	}
}

func TestRecomputeListFailureSkipsWrite(t *testing.T) {
	ctx := context.Background()
	target := domain.Target{Kind: domain.TargetProduct, ID: "p1"}
	boom := errors.New("db down")

	ratings := new(mockRatings)
	products := new(mockProducts)
	ratings.On("ListByTarget", ctx, target).Return(nil, boom)

	a := NewAggregator(ratings, products, new(mockBusinesses))
	_, err := a.Recompute(ctx, target)
	assert.ErrorIs(t, err, boom)
	products.AssertNotCalled(t, "SetAverageRating")
}
