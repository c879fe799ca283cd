package order_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCustomer() order.Customer {
	return order.Customer{
		Name:    "Ali",
		Phone:   kernel.NewPhone("03001234567", "92"),
		Address: "12 Mall Road",
		City:    "Lahore",
	}
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder("tenant-1", "1001", "#1001",
		testCustomer(),
		order.Amount{Total: "1500", Currency: "PKR"},
		order.Product{Name: "Shirt", Quantity: 2},
		time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	o := newPendingOrder(t)

	assert.Equal(t, "1001", o.ID())
	assert.Equal(t, "tenant-1", o.TenantID())
	assert.Equal(t, "#1001", o.Name())
	assert.Equal(t, order.Pending, o.Status())
	assert.Equal(t, "923001234567", o.Customer().Phone.String())
	assert.False(t, o.Timeline().CreatedAt.IsZero())
	assert.Nil(t, o.Timeline().ConfirmedAt)
	assert.Nil(t, o.Timeline().CancelledAt)
	assert.False(t, o.Flags().ConfirmationSent)
	assert.Empty(t, o.Courier().TrackingNumber)
	require.NoError(t, o.Validate())
}

func TestNewOrder_RequiredFields(t *testing.T) {
	amount := order.Amount{Total: "1500", Currency: "PKR"}
	product := order.Product{Name: "Shirt", Quantity: 2}
	now := time.Now()

	_, err := order.NewOrder("", "1001", "#1001", testCustomer(), amount, product, now)
	require.Error(t, err)

	_, err = order.NewOrder("tenant-1", "", "#1001", testCustomer(), amount, product, now)
	require.Error(t, err)

	_, err = order.NewOrder("tenant-1", "1001", "", testCustomer(), amount, product, now)
	require.Error(t, err)
}

func TestOrder_Validate_NotConstructed(t *testing.T) {
	var o order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

	var nilOrder *order.Order
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_Confirm(t *testing.T) {
	o := newPendingOrder(t)
	now := time.Now()

	require.NoError(t, o.Confirm(now))
	assert.Equal(t, order.Confirmed, o.Status())
	require.NotNil(t, o.Timeline().ConfirmedAt)
	assert.Equal(t, now, *o.Timeline().ConfirmedAt)
	assert.Nil(t, o.Timeline().CancelledAt)
}

func TestOrder_Confirm_AlreadyConfirmedKeepsTimestamp(t *testing.T) {
	o := newPendingOrder(t)
	first := time.Now()
	require.NoError(t, o.Confirm(first))

	err := o.Confirm(first.Add(time.Hour))
	require.Error(t, err)
	assert.Equal(t, order.Confirmed, o.Status())
	assert.Equal(t, first, *o.Timeline().ConfirmedAt)
}

func TestOrder_Cancel(t *testing.T) {
	o := newPendingOrder(t)
	now := time.Now()

	require.NoError(t, o.Cancel(now))
	assert.Equal(t, order.Cancelled, o.Status())
	require.NotNil(t, o.Timeline().CancelledAt)
	assert.Nil(t, o.Timeline().ConfirmedAt)

	// Terminal: nothing moves a cancelled order.
	require.Error(t, o.Confirm(now))
	require.Error(t, o.Fulfill(now))
	require.Error(t, o.StartDelivery("Out For Delivery"))
	require.Error(t, o.Deliver("Delivered", now))
}

func TestOrder_ConfirmedXorCancelled(t *testing.T) {
	confirmed := newPendingOrder(t)
	require.NoError(t, confirmed.Confirm(time.Now()))
	require.Error(t, confirmed.Cancel(time.Now()))
	assert.Nil(t, confirmed.Timeline().CancelledAt)

	cancelled := newPendingOrder(t)
	require.NoError(t, cancelled.Cancel(time.Now()))
	require.Error(t, cancelled.Confirm(time.Now()))
	assert.Nil(t, cancelled.Timeline().ConfirmedAt)
}

func TestOrder_LifecycleToDelivered(t *testing.T) {
	o := newPendingOrder(t)
	now := time.Now()

	require.NoError(t, o.Confirm(now))
	require.NoError(t, o.Fulfill(now))
	require.NoError(t, o.StartDelivery("Out For Delivery"))
	assert.Equal(t, order.OutForDelivery, o.Status())
	assert.Equal(t, "Out For Delivery", o.Courier().LastStatus)

	require.NoError(t, o.Deliver("Delivered", now))
	assert.Equal(t, order.Delivered, o.Status())
	require.NotNil(t, o.Timeline().DeliveredAt)

	// Terminal: repeated delivery observation is rejected by the guard.
	require.Error(t, o.Deliver("Delivered", now))
}

func TestOrder_DeliverSkippingIntermediateStates(t *testing.T) {
	o := newPendingOrder(t)
	now := time.Now()

	require.NoError(t, o.Confirm(now))
	require.NoError(t, o.Deliver("Delivered", now))
	assert.Equal(t, order.Delivered, o.Status())
}

func TestOrder_AttachTracking(t *testing.T) {
	o := newPendingOrder(t)
	now := time.Now()

	require.NoError(t, o.AttachTracking("TRK1", now))
	assert.Equal(t, "TRK1", o.Courier().TrackingNumber)
	require.NotNil(t, o.Courier().BookedAt)

	// Booking is never re-attempted once a tracking number exists.
	err := o.AttachTracking("TRK2", now)
	require.ErrorIs(t, err, order.ErrTrackingAlreadyAttached)
	assert.Equal(t, "TRK1", o.Courier().TrackingNumber)

	empty := newPendingOrder(t)
	require.Error(t, empty.AttachTracking("", now))
}

func TestOrder_CourierStatusChanged(t *testing.T) {
	o := newPendingOrder(t)

	assert.True(t, o.CourierStatusChanged("In Transit"))
	o.RecordCourierStatus("In Transit")
	assert.False(t, o.CourierStatusChanged("In Transit"))
	assert.True(t, o.CourierStatusChanged("Delivered"))
}

func TestOrder_NotificationFlags(t *testing.T) {
	o := newPendingOrder(t)
	now := time.Now()

	o.MarkConfirmationSent(now)
	assert.True(t, o.Flags().ConfirmationSent)
	require.NotNil(t, o.Timeline().LastMessageSentAt)

	o.MarkFulfilledNoticeSent(now)
	assert.True(t, o.Flags().FulfilledSent)

	o.MarkReplyAckSent(now)
	assert.True(t, o.Flags().ReplyAckSent)
}

func TestOrder_LastActivityAt(t *testing.T) {
	o := newPendingOrder(t)
	created := o.Timeline().CreatedAt
	assert.Equal(t, created, o.LastActivityAt())

	sent := created.Add(10 * time.Minute)
	o.RecordMessageSent(sent)
	assert.Equal(t, sent, o.LastActivityAt())
}

func TestRestoreOrder(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	confirmed := created.Add(time.Hour)

	o, err := order.RestoreOrder("tenant-1", "1001", "#1001",
		testCustomer(),
		order.Amount{Total: "1500", Currency: "PKR"},
		order.Product{Name: "Shirt", Quantity: 2},
		order.Confirmed,
		order.Timeline{CreatedAt: created, ConfirmedAt: &confirmed},
		order.NotificationFlags{ConfirmationSent: true},
		order.CourierInfo{TrackingNumber: "TRK1", LastStatus: "Booked"},
	)
	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, o.Status())
	assert.True(t, o.Flags().ConfirmationSent)
	assert.Equal(t, "TRK1", o.Courier().TrackingNumber)

	_, err = order.RestoreOrder("tenant-1", "1001", "#1001",
		testCustomer(), order.Amount{}, order.Product{},
		order.Unknown, order.Timeline{CreatedAt: created},
		order.NotificationFlags{}, order.CourierInfo{})
	require.Error(t, err)
}

func TestOrder_IsEqual(t *testing.T) {
	a := newPendingOrder(t)
	b := newPendingOrder(t)
	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(nil))
}
