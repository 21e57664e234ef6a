package rating

import "sustainably-yours/internal/domain"

// ResolveAspects 规整维度子评分：
// 整个对象缺省时四项都取总评分；部分缺省的字段回落到 5；越界报错
func ResolveAspects(in *domain.Aspects, overall int) (domain.Aspects, error) {
	if in == nil {
		return domain.Aspects{
			Materials:       overall,
			Packaging:       overall,
			CarbonFootprint: overall,
			LaborPractices:  overall,
		}, nil
	}
	out := *in
	for _, f := range []*int{&out.Materials, &out.Packaging, &out.CarbonFootprint, &out.LaborPractices} {
		if *f == 0 {
			*f = 5
		}
		if *f < 1 || *f > 5 {
			return domain.Aspects{}, domain.Invalidf("aspect scores must be between 1 and 5")
		}
	}
	return out, nil
}
