package models

// Product is a catalog entry. Ids are assigned by the caller, not the store.
type Product struct {
	Id          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	Qty         int     `json:"qty"`
}

// ProductRecord is the raw row shape exchanged with the store. Fields that
// may be absent from caller input are pointers so that "key missing" stays
// distinguishable from a zero value until LoadProduct.
type ProductRecord struct {
	Id          *int     `json:"id" db:"id" validate:"required"`
	Name        *string  `json:"name" db:"name" validate:"required"`
	Description *string  `json:"description" db:"description"`
	Cost        *float64 `json:"cost" db:"cost" validate:"required"`
	Qty         *int     `json:"qty,omitempty" db:"qty"`
}

// LoadProduct builds a Product from a raw record. Absent qty defaults to 0
// and absent description to "" here and only here: writes persist the record
// as given, so a row stored without qty keeps no qty until it is loaded.
func LoadProduct(rec ProductRecord) Product {
	p := Product{}
	if rec.Id != nil {
		p.Id = *rec.Id
	}
	if rec.Name != nil {
		p.Name = *rec.Name
	}
	if rec.Description != nil {
		p.Description = *rec.Description
	}
	if rec.Cost != nil {
		p.Cost = *rec.Cost
	}
	if rec.Qty != nil {
		p.Qty = *rec.Qty
	}
	return p
}

// CartRecord is a raw cart row: contents holds a JSON-encoded array of
// product ids. A user may own several rows; readers flatten them.
type CartRecord struct {
	Id       int     `json:"id" db:"id"`
	Username string  `json:"username" db:"username"`
	Contents string  `json:"contents" db:"contents"`
	Cost     float64 `json:"cost" db:"cost"`
}

// Cart is the resolved read-time view of a user's cart. Id and Cost are
// populated only when the view comes from a single row; the aggregate read
// path leaves them zero.
type Cart struct {
	Id       int       `json:"id"`
	Username string    `json:"username"`
	Contents []Product `json:"contents"`
	Cost     float64   `json:"cost"`
}
