package postgres

import (
	"crowdship/internal/adapters/out/postgres/reviewrepo"
	"crowdship/internal/adapters/out/postgres/shipmentrepo"
	"crowdship/internal/adapters/out/postgres/triprepo"
	"crowdship/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Tables lists every table owned by the repositories, children first.
var Tables = []string{"shipment_products", "shipments", "trips", "reviews", "users"}

// Migrate creates or updates the schema of every repository.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userrepo.UserDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.ProductDTO{},
		&triprepo.TripDTO{},
		&reviewrepo.ReviewDTO{},
	)
}
