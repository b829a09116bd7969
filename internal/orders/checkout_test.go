package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryOptions_Valid(t *testing.T) {
	d := DeliveryOptions{
		Recipient:  "A. Ndlovu",
		Street:     "12 Market St",
		City:       "Johannesburg",
		PostalCode: "2001",
		Method:     DeliveryStandard,
	}
	assert.Empty(t, d.Validate())
}

func TestDeliveryOptions_MissingFields(t *testing.T) {
	d := DeliveryOptions{Method: DeliveryPickup}
	errs := d.Validate()
	assert.Len(t, errs, 4)
}

func TestDeliveryOptions_UnknownMethod(t *testing.T) {
	d := DeliveryOptions{
		Recipient:  "A. Ndlovu",
		Street:     "12 Market St",
		City:       "Johannesburg",
		PostalCode: "2001",
		Method:     "drone",
	}
	errs := d.Validate()
	assert.Contains(t, errs, "method must be standard, express or pickup")
}

func TestDeliveryOptions_MethodRequired(t *testing.T) {
	d := DeliveryOptions{
		Recipient:  "A. Ndlovu",
		Street:     "12 Market St",
		City:       "Johannesburg",
		PostalCode: "2001",
	}
	assert.Contains(t, d.Validate(), "method is required")
}
