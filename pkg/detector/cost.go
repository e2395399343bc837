package detector

import "stackplan/pkg/rules"

// sizeHint picks a bundle from the application type and its needs: intensity
// pushes one tier up, more than one database pushes another, and a bundle
// hint from the description acts as a floor.
func (c *Classifier) sizeHint(detected rules.AppType, needs InfrastructureNeeds, dbCount, hintIndex int) (string, int) {
	idx := c.tables.BaseBundleIndex(detected)
	if needs.MemoryIntensive || needs.CPUIntensive {
		idx++
	}
	if dbCount > 1 {
		idx++
	}
	if hintIndex > idx {
		idx = hintIndex
	}
	idx = c.tables.ClampIndex(idx)
	return c.tables.BundleAt(idx).Name, idx
}

// estimateCost adds fixed database and bucket bands to the bundle's band
func (c *Classifier) estimateCost(a Analysis, sizeIndex int) EstimatedCost {
	band := c.tables.BundleAt(sizeIndex).CostBand
	cost := EstimatedCost{MonthlyMin: band.Min, MonthlyMax: band.Max}

	for range a.Databases {
		cost.MonthlyMin += c.tables.DatabaseCostBand.Min
		cost.MonthlyMax += c.tables.DatabaseCostBand.Max
	}

	if a.StorageNeeds.NeedsBucket {
		cost.MonthlyMin += c.tables.BucketCostBand.Min
		cost.MonthlyMax += c.tables.BucketCostBand.Max
	}

	return cost
}
