package order

import (
	"fmt"

	"procurement/internal/pkg/errs"
)

// DeliveryMethod describes how a completed order reaches the customer.
type DeliveryMethod int

const (
	// UnknownDeliveryMethod catches uninitialized values.
	UnknownDeliveryMethod DeliveryMethod = iota

	// Delivery means hand delivery by staff.
	Delivery

	// Shipping means dispatch through a carrier.
	Shipping
)

func getDeliveryMethodStrings() map[DeliveryMethod]string {
	return map[DeliveryMethod]string{
		UnknownDeliveryMethod: "unknown",
		Delivery:              "delivery",
		Shipping:              "shipping",
	}
}

// DeliveryMethodFromString parses the wire representation of a delivery method.
func DeliveryMethodFromString(s string) (DeliveryMethod, error) {
	switch s {
	case "delivery":
		return Delivery, nil
	case "shipping":
		return Shipping, nil
	default:
		return UnknownDeliveryMethod, errs.NewValueIsInvalidErrorWithCause(
			"delivery method", fmt.Errorf("%q is not a valid delivery method", s))
	}
}

// Validate checks the value is one of the two enumerated methods.
func (m DeliveryMethod) Validate() error {
	if m != Delivery && m != Shipping {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery method", fmt.Errorf("%d is not a valid delivery method", m))
	}
	return nil
}

// String returns the wire name of the delivery method.
func (m DeliveryMethod) String() string {
	if s, ok := getDeliveryMethodStrings()[m]; ok {
		return s
	}
	return "unknown"
}
