package orders

const (
	DeliveryStandard = "standard"
	DeliveryExpress  = "express"
	DeliveryPickup   = "pickup"
)

// DeliveryOptions is session-scoped checkout input. It is never persisted;
// on successful validation it is serialized into a read-once slot for the
// transaction component.
type DeliveryOptions struct {
	Recipient  string `json:"recipient"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Method     string `json:"method"`
	Note       string `json:"note,omitempty"`
}

func (d *DeliveryOptions) Validate() []string {
	var errs []string
	if d.Recipient == "" {
		errs = append(errs, "recipient is required")
	}
	if d.Street == "" {
		errs = append(errs, "street is required")
	}
	if d.City == "" {
		errs = append(errs, "city is required")
	}
	if d.PostalCode == "" {
		errs = append(errs, "postal_code is required")
	}
	switch d.Method {
	case DeliveryStandard, DeliveryExpress, DeliveryPickup:
	case "":
		errs = append(errs, "method is required")
	default:
		errs = append(errs, "method must be standard, express or pickup")
	}
	return errs
}
