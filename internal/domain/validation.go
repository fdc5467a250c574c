package domain

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// The HTTP layer decodes into these inputs, but validation is enforced
// here as well: the catalog core is reusable without that layer.

func (in CreateProductInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Price, validation.Min(0.0)),
	)
}

func (in UpdateProductInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.NilOrNotEmpty),
		validation.Field(&in.Price, validation.Min(0.0)),
	)
}
