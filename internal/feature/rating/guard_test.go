package rating

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sustainably-yours/internal/domain"
)

func TestGuardValidateTarget(t *testing.T) {
	ctx := context.Background()

	t.Run("product exists", func(t *testing.T) {
		products := new(mockProducts)
		products.On("FindByID", ctx, "p1").Return(&domain.Product{ID: "p1"}, nil)
		g := NewGuard(new(mockRatings), products, new(mockBusinesses))

		require.NoError(t, g.ValidateTarget(ctx, domain.Target{Kind: domain.TargetProduct, ID: "p1"}))
		products.AssertExpectations(t)
	})

	t.Run("product missing", func(t *testing.T) {
		products := new(mockProducts)
		products.On("FindByID", ctx, "nope").Return(nil, nil)
		g := NewGuard(new(mockRatings), products, new(mockBusinesses))

		err := g.ValidateTarget(ctx, domain.Target{Kind: domain.TargetProduct, ID: "nope"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("business missing", func(t *testing.T) {
		businesses := new(mockBusinesses)
		businesses.On("FindByID", ctx, "nope").Return(nil, nil)
		g := NewGuard(new(mockRatings), new(mockProducts), businesses)

		err := g.ValidateTarget(ctx, domain.Target{Kind: domain.TargetBusiness, ID: "nope"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("repo failure surfaces", func(t *testing.T) {
		boom := errors.New("db down")
		products := new(mockProducts)
		products.On("FindByID", ctx, "p1").Return(nil, boom)
		g := NewGuard(new(mockRatings), products, new(mockBusinesses))

		err := g.ValidateTarget(ctx, domain.Target{Kind: domain.TargetProduct, ID: "p1"})
		assert.ErrorIs(t, err, boom)
	})
}

func TestGuardEnsureUnrated(t *testing.T) {
	ctx := context.Background()
	target := domain.Target{Kind: domain.TargetProduct, ID: "p1"}

	t.Run("first rating passes", func(t *testing.T) {
		ratings := new(mockRatings)
		ratings.On("FindByUserAndTarget", ctx, "u1", target).Return(nil, nil)
		g := NewGuard(ratings, new(mockProducts), new(mockBusinesses))

		require.NoError(t, g.EnsureUnrated(ctx, "u1", target))
	})

	t.Run("second rating conflicts", func(t *testing.T) {
		ratings := new(mockRatings)
		ratings.On("FindByUserAndTarget", ctx, "u1", target).
			Return(&domain.Rating{ID: "r1", UserID: "u1", ProductID: "p1"}, nil)
		g := NewGuard(ratings, new(mockProducts), new(mockBusinesses))

		err := g.EnsureUnrated(ctx, "u1", target)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("same user different target passes", func(t *testing.T) {
		other := domain.Target{Kind: domain.TargetBusiness, ID: "b1"}
		ratings := new(mockRatings)
		ratings.On("FindByUserAndTarget", ctx, "u1", other).Return(nil, nil)
		g := NewGuard(ratings, new(mockProducts), new(mockBusinesses))

		require.NoError(t, g.EnsureUnrated(ctx, "u1", other))
	})
}

func TestGuardAuthorizeCreate(t *testing.T) {
	g := NewGuard(new(mockRatings), new(mockProducts), new(mockBusinesses))

	assert.NoError(t, g.AuthorizeCreate(domain.RoleSeller))
	assert.ErrorIs(t, g.AuthorizeCreate(domain.RoleBuyer), domain.ErrForbidden)
	assert.ErrorIs(t, g.AuthorizeCreate(domain.RoleAdmin), domain.ErrForbidden)
	assert.ErrorIs(t, g.AuthorizeCreate(""), domain.ErrForbidden)
}

func TestGuardAuthorizeMutate(t *testing.T) {
	g := NewGuard(new(mockRatings), new(mockProducts), new(mockBusinesses))

	// 创建者本人
	assert.NoError(t, g.AuthorizeMutate("u1", domain.RoleSeller, "u1"))
	// admin 可以动别人的资源
	assert.NoError(t, g.AuthorizeMutate("u2", domain.RoleAdmin, "u1"))
	// 其他 seller 不行
	assert.ErrorIs(t, g.AuthorizeMutate("u2", domain.RoleSeller, "u1"), domain.ErrForbidden)
	assert.ErrorIs(t, g.AuthorizeMutate("u2", domain.RoleBuyer, "u1"), domain.ErrForbidden)
}

func TestGuardAuthorizeRatingMutate(t *testing.T) {
	g := NewGuard(new(mockRatings), new(mockProducts), new(mockBusinesses))
	r := &domain.Rating{ID: "r1", UserID: "u1"}

	assert.NoError(t, g.AuthorizeRatingMutate("u1", r))
	// admin 对评分没有覆写权
	assert.ErrorIs(t, g.AuthorizeRatingMutate("admin-uid", r), domain.ErrForbidden)
	assert.ErrorIs(t, g.AuthorizeRatingMutate("u2", r), domain.ErrForbidden)
}
