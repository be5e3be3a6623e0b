package catalog

import (
	"github.com/angelmondragon/caffeineveins/internal/persistence"
	"github.com/shopspring/decimal"
)

// LegacySizeName names the size synthesized for single-price records.
const LegacySizeName = "Regular"

// MigrateLegacy upgrades a stored record to the sized shape. Records without
// sizes get one "Regular" size at their old price (0 when absent). migrated
// reports whether anything was synthesized.
func MigrateLegacy(rec persistence.ProductRecord) (product Product, migrated bool) {
	if len(rec.Sizes) > 0 {
		return FromRecord(rec), false
	}

	price := decimal.Zero
	if rec.Price != nil {
		price = *rec.Price
	}
	product = FromRecord(rec)
	product.Sizes = []ProductSize{{Name: LegacySizeName, Price: price}}
	return product, true
}

// MigrateAll applies MigrateLegacy to every record and counts the upgrades.
func MigrateAll(records []persistence.ProductRecord) ([]Product, int) {
	products := make([]Product, 0, len(records))
	count := 0
	for _, rec := range records {
		product, migrated := MigrateLegacy(rec)
		if migrated {
			count++
		}
		products = append(products, product)
	}
	return products, count
}
