package commands

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrProcessReplyCommandIsNotConstructed = errors.New(
		"ProcessReplyCommand must be created via NewProcessReplyCommand constructor",
	)
)

// ProcessReplyCommand is the canonical CustomerReplied event. The action is
// empty for free-text replies; tenant and order hints are present only when
// the messaging client round-tripped the quick-reply payload, and an
// unresolvable hint falls back to the phone lookup.
type ProcessReplyCommand struct { //nolint:recvcheck //using for validation
	phone      kernel.Phone
	action     string
	tenantHint string
	orderHint  string

	guard guard.ConstructorGuard
}

// NewProcessReplyCommand creates a command for one inbound customer reply.
// The phone is required; action must be empty, ActionConfirm or ActionCancel.
func NewProcessReplyCommand(phone kernel.Phone, action, tenantHint, orderHint string) (ProcessReplyCommand, error) {
	cmd := ProcessReplyCommand{
		tenantHint: tenantHint,
		orderHint:  orderHint,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPhone(phone),
		cmd.setAction(action),
	); err != nil {
		return ProcessReplyCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessReplyCommand) Validate() error {
	return c.guard.Validate(ErrProcessReplyCommandIsNotConstructed)
}

// Phone returns the replying customer's normalized phone number.
func (c ProcessReplyCommand) Phone() kernel.Phone {
	return c.phone
}

// Action returns the reply action, empty for free text.
func (c ProcessReplyCommand) Action() string {
	return c.action
}

// TenantHint returns the tenant id embedded in the reply payload, if any.
func (c ProcessReplyCommand) TenantHint() string {
	return c.tenantHint
}

// OrderHint returns the order id embedded in the reply payload, if any.
func (c ProcessReplyCommand) OrderHint() string {
	return c.orderHint
}

// HasHints reports whether the reply carries an embedded order reference.
func (c ProcessReplyCommand) HasHints() bool {
	return c.tenantHint != "" && c.orderHint != ""
}

func (c *ProcessReplyCommand) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	c.phone = phone
	return nil
}

func (c *ProcessReplyCommand) setAction(action string) error {
	if action != "" && action != ActionConfirm && action != ActionCancel {
		return errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("%q is not a known reply action", action))
	}
	c.action = action
	return nil
}
