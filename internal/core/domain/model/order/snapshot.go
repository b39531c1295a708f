package order

import (
	"fmt"
	"strings"

	"orders/internal/pkg/errs"
)

// Customer is the snapshot of the buyer's identity taken at creation time.
// It is never resynchronized from a customer profile afterwards.
type Customer struct {
	Name  string
	Email string
}

// Validate checks that the customer snapshot carries a name and an email.
func (c Customer) Validate() error {
	if c.Name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	if c.Email == "" || !strings.Contains(c.Email, "@") {
		return errs.NewValueIsInvalidError("customer email")
	}
	return nil
}

// Address is a postal address snapshot copied onto the order at creation.
type Address struct {
	Line1      string
	Line2      string
	City       string
	PostalCode string
	Country    string
}

// Validate checks the required address fields. Line2 is optional.
func (a Address) Validate() error {
	if a.Line1 == "" {
		return errs.NewValueIsRequiredError("address line1")
	}
	if a.City == "" {
		return errs.NewValueIsRequiredError("address city")
	}
	if a.PostalCode == "" {
		return errs.NewValueIsRequiredError("address postal code")
	}
	if a.Country == "" {
		return errs.NewValueIsRequiredError("address country")
	}
	return nil
}

// Item is a single priced order line. Quantities and unit prices are produced
// by the upstream pricing collaborator and treated as already validated input;
// only structural checks happen here.
type Item struct {
	SKU            string
	Name           string
	Quantity       int
	UnitPriceCents int64
}

// Validate performs structural checks on the line item.
func (i Item) Validate() error {
	if i.SKU == "" {
		return errs.NewValueIsRequiredError("item sku")
	}
	if i.Name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	if i.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("item quantity",
			fmt.Errorf("%d is not greater than 0", i.Quantity))
	}
	if i.UnitPriceCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("item unit price",
			fmt.Errorf("%d cents is negative", i.UnitPriceCents))
	}
	return nil
}

// Totals groups the pricing amounts computed by the pricing collaborator.
// The amounts are opaque to this core: their arithmetic consistency is the
// collaborator's responsibility and is not re-checked here.
type Totals struct {
	SubtotalCents int64
	ShippingCents int64
	TaxCents      int64
	DiscountCents int64
	TotalCents    int64
}
