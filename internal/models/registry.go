package models

// All returns the schema registry: every model the service persists, in
// dependency order. Migration and any schema-wide wiring go through this
// slice instead of ad-hoc per-model calls.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Product{},
		&Image{},
		&AttributeCategory{},
		&Attribute{},
		&SubCategory{},
		&ProductAttribute{},
		&Favourite{},
	}
}
