// Package seeder fills the in-memory stores with demo data so the service is
// explorable without a database or a storefront sync.
package seeder

import (
	"context"
	"log/slog"

	framemodels "targetonchain/internal/frame/models"
	framestore "targetonchain/internal/frame/store"
	productmodels "targetonchain/internal/product/models"
	productstore "targetonchain/internal/product/store"
	"targetonchain/internal/verification"
)

// Seed inserts the demo frames and products. Meant for memory-backed runs;
// calling it against a real database would duplicate rows on every boot.
func Seed(ctx context.Context, frames framestore.Store, products productstore.Store, logger *slog.Logger) error {
	demoFrames := []framemodels.Frame{
		{
			Shop:             "store.example",
			Title:            "Member drop",
			Image:            "https://cdn.example/frames/member-drop.png",
			Button:           "Reveal my pick",
			MatchingCriteria: verification.CriteriaCoinbaseAccount,
		},
		{
			Shop:             "runners.example",
			Title:            "Runner rewards",
			Image:            "https://cdn.example/frames/runner-rewards.png",
			Button:           "Check my runs",
			MatchingCriteria: verification.CriteriaReceiptsRunning,
		},
		{
			Shop:             "futbol.example",
			Title:            "Hometown kit",
			Image:            "https://cdn.example/frames/hometown-kit.png",
			Button:           "Find my kit",
			MatchingCriteria: verification.CriteriaCoinbaseCountry,
		},
	}

	demoProducts := []productmodels.Product{
		{
			Shop:                  "store.example",
			Title:                 "Special Edition Hoodie",
			Description:           "Special edition hoodie, numbered run",
			Image:                 "https://cdn.example/products/special-hoodie.png",
			Handle:                "special-edition-hoodie",
			VariantID:             "1001",
			VariantFormattedPrice: "$150",
		},
		{
			Shop:                  "store.example",
			Title:                 "Everyday Tee",
			Description:           "An everyday cotton tee",
			Image:                 "https://cdn.example/products/everyday-tee.png",
			Handle:                "everyday-tee",
			VariantID:             "1002",
			VariantFormattedPrice: "$30",
		},
		{
			Shop:                  "runners.example",
			Title:                 "Trail Running Shoes",
			Description:           "Running shoes for long trail days",
			Image:                 "https://cdn.example/products/trail-shoes.png",
			Handle:                "trail-running-shoes",
			VariantID:             "2001",
			VariantFormattedPrice: "$120",
		},
		{
			Shop:                  "runners.example",
			Title:                 "Recovery Sandals",
			Description:           "Post-run recovery sandals",
			Image:                 "https://cdn.example/products/recovery-sandals.png",
			Handle:                "recovery-sandals",
			VariantID:             "2002",
			VariantFormattedPrice: "$45",
		},
		{
			Shop:                  "futbol.example",
			Title:                 "Argentina Jersey",
			Description:           "Official Argentina home jersey",
			Image:                 "https://cdn.example/products/argentina-jersey.png",
			Handle:                "argentina-jersey",
			VariantID:             "3001",
			VariantFormattedPrice: "$90",
		},
		{
			Shop:                  "futbol.example",
			Title:                 "Brazil Jersey",
			Description:           "Official Brazil home jersey",
			Image:                 "https://cdn.example/products/brazil-jersey.png",
			Handle:                "brazil-jersey",
			VariantID:             "3002",
			VariantFormattedPrice: "$90",
		},
	}

	for i := range demoFrames {
		if err := frames.Save(ctx, &demoFrames[i]); err != nil {
			return err
		}
	}
	for i := range demoProducts {
		if err := products.Save(ctx, &demoProducts[i]); err != nil {
			return err
		}
	}

	logger.Info("demo data seeded",
		"frames", len(demoFrames),
		"products", len(demoProducts),
	)
	return nil
}
