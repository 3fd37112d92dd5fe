package booking

import (
	"errors"
	"strings"
)

var (
	ErrMissingCustomerName  = errors.New("customer name is required")
	ErrMissingCustomerEmail = errors.New("customer email is required")
)

// CustomerDetails is the contact snapshot captured at booking time. The
// customer record itself lives outside this core.
type CustomerDetails struct {
	name  string
	email string
	phone string
}

func NewCustomerDetails(name, email, phone string) (CustomerDetails, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return CustomerDetails{}, ErrMissingCustomerName
	}
	if email == "" {
		return CustomerDetails{}, ErrMissingCustomerEmail
	}
	return CustomerDetails{name: name, email: email, phone: strings.TrimSpace(phone)}, nil
}

func ReconstructCustomerDetails(name, email, phone string) CustomerDetails {
	return CustomerDetails{name: name, email: email, phone: phone}
}

func (d CustomerDetails) Name() string  { return d.name }
func (d CustomerDetails) Email() string { return d.email }
func (d CustomerDetails) Phone() string { return d.phone }

type Cancellation struct {
	reason      string
	cancelledBy string
}

func (c Cancellation) Reason() string      { return c.reason }
func (c Cancellation) CancelledBy() string { return c.cancelledBy }
