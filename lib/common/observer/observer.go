package observer

import (
	"strings"

	"github.com/GianlucaGuarini/go-observable"
)

// ResourceObserver is triggered after a transaction is committed, once for
// every condition its records satisfy.
var ResourceObserver = observable.New()

type Resource string
type Key string

const (
	Poll   Resource = "poll"
	Ballot Resource = "ballot"
	Tx     Resource = "tx"
)

const (
	All        Key = "all"
	Identifier Key = "id"
	Address    Key = "address"
	Source     Key = "source"
	Creator    Key = "creator"
	Voter      Key = "voter"
	InPoll     Key = "poll"
)

type Condition struct {
	Resource Resource `json:"resource"`
	Key      Key      `json:"key"`
	Value    string   `json:"value,omitempty"`
}

func NewCondition(resource Resource, key Key, values ...string) Condition {
	c := Condition{
		Resource: resource,
		Key:      key,
	}
	if len(values) > 0 {
		c.Value = values[0]
	}

	return c
}

func (c Condition) String() string {
	if c.Key == All {
		return string(c.Resource) + "-" + string(All)
	}

	return string(c.Resource) + "-" + string(c.Key) + "=" + c.Value
}

// Conditions are matched by any of its members.
type Conditions []Condition

func NewConditions(cs ...Condition) Conditions {
	return Conditions(cs)
}

// Event returns the observable event name; observable treats space
// separated names as separate events.
func (cs Conditions) Event() string {
	var names []string
	for _, c := range cs {
		names = append(names, c.String())
	}

	return strings.Join(names, " ")
}
