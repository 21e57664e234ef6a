package rating

import (
	"context"
	"math"

	"sustainably-yours/internal/domain"
)

// Aggregator 维护 Product/Business 上的 averageRating 派生值。
// 评分的每次增删改之后必须同步调用 Recompute，读取的是变更后的集合，
// 因此重复调用结果不变。averageRating 不允许任何其它路径写入。
type Aggregator struct {
	ratings    domain.RatingRepository
	products   domain.ProductRepository
	businesses domain.BusinessRepository
}

func NewAggregator(ratings domain.RatingRepository, products domain.ProductRepository, businesses domain.BusinessRepository) *Aggregator {
	return &Aggregator{ratings: ratings, products: products, businesses: businesses}
}

// Recompute 重算并落库，返回新的平均值
func (a *Aggregator) Recompute(ctx context.Context, t domain.Target) (float64, error) {
	list, err := a.ratings.ListByTarget(ctx, t)
	if err != nil {
		return 0, err
	}
	avg := Average(list)
	switch t.Kind {
	case domain.TargetProduct:
		err = a.products.SetAverageRating(ctx, t.ID, avg)
	case domain.TargetBusiness:
		err = a.businesses.SetAverageRating(ctx, t.ID, avg)
	default:
		err = domain.Invalidf("unknown target kind %q", t.Kind)
	}
	if err != nil {
		return 0, err
	}
	return avg, nil
}

// Average 算术平均，十分位四舍五入（远离零）；空集为 0
func Average(list []domain.Rating) float64 {
	if len(list) == 0 {
		return 0
	}
	sum := 0
	for _, r := range list {
		sum += r.Rating
	}
	return math.Round(float64(sum)/float64(len(list))*10) / 10
}
