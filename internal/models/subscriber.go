package models

import "fmt"

// SubscriberClass categorizes an account as reported by the billing backend.
type SubscriberClass string

const (
	ClassCustomer        SubscriberClass = "Customer"
	ClassPos             SubscriberClass = "Pos"
	ClassDistributor     SubscriberClass = "Distributor"
	ClassDataAccount     SubscriberClass = "DataAccount"
	ClassHalafoni        SubscriberClass = "HalafoniCustomer"
	ClassVirginPrepaid   SubscriberClass = "VirginPrepaidCustomer"
	ClassVirginPostpaid  SubscriberClass = "VirginPostpaidCustomer"
)

// subscriberClassNames maps the raw subscription-type strings returned by the
// billing backend onto subscriber classes. "Prepaid", "Active" and "Inactive"
// are legacy names still emitted for older account ranges.
var subscriberClassNames = map[string]SubscriberClass{
	"Customer":               ClassCustomer,
	"Pos":                    ClassPos,
	"Distributor":            ClassDistributor,
	"DataAccount":            ClassDataAccount,
	"HalafoniCustomer":       ClassHalafoni,
	"VirginPrepaidCustomer":  ClassVirginPrepaid,
	"VirginPostpaidCustomer": ClassVirginPostpaid,
	"Prepaid":                ClassCustomer,
	"Active":                 ClassPos,
	"Inactive":               ClassPos,
}

// ParseSubscriberClass maps a raw subscription-type string to a
// SubscriberClass. An unmapped string is an error, never a default class.
func ParseSubscriberClass(raw string) (SubscriberClass, error) {
	if class, ok := subscriberClassNames[raw]; ok {
		return class, nil
	}
	return "", fmt.Errorf("unmapped subscription type %q", raw)
}

// IsCustomer reports whether the class is the plain prepaid customer class.
// Fee reservation and validity extension only apply to this class.
func (c SubscriberClass) IsCustomer() bool {
	return c == ClassCustomer
}

func (c SubscriberClass) String() string { return string(c) }
