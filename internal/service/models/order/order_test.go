package order

import (
	"testing"

	"github.com/corray333/lunchify/order/internal/service/models/orderitem"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func validItems() []orderitem.OrderItem {
	return []orderitem.OrderItem{
		{ItemID: "1", Name: "Pizza", Price: 10.0, Quantity: 1},
	}
}

func TestNew_Valid(t *testing.T) {
	userID := uuid.New()
	restaurantID := uuid.New()

	ord, err := New(userID, restaurantID, validItems(), 10.0, "123 Main St", "")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, ord.ID)
	require.Equal(t, userID, ord.UserID)
	require.Equal(t, restaurantID, ord.RestaurantID)
	require.Equal(t, StatusPending, ord.Status)
	require.Equal(t, 10.0, ord.TotalPrice)
	require.Equal(t, ord.CreatedAt, ord.UpdatedAt)
}

func TestNew_TrimsDeliveryAddress(t *testing.T) {
	ord, err := New(uuid.New(), uuid.New(), validItems(), 10.0, "  123 Main St  ", "")
	require.NoError(t, err)
	require.Equal(t, "123 Main St", ord.DeliveryAddress)
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		items      []orderitem.OrderItem
		totalPrice float64
		address    string
	}{
		{name: "zero total price", items: validItems(), totalPrice: 0, address: "123 Main St"},
		{name: "negative total price", items: validItems(), totalPrice: -5, address: "123 Main St"},
		{name: "empty items", items: []orderitem.OrderItem{}, totalPrice: 10, address: "123 Main St"},
		{name: "nil items", items: nil, totalPrice: 10, address: "123 Main St"},
		{
			name:       "non-positive item price",
			items:      []orderitem.OrderItem{{ItemID: "1", Name: "Pizza", Price: 0, Quantity: 1}},
			totalPrice: 10,
			address:    "123 Main St",
		},
		{
			name:       "non-positive item quantity",
			items:      []orderitem.OrderItem{{ItemID: "1", Name: "Pizza", Price: 10, Quantity: 0}},
			totalPrice: 10,
			address:    "123 Main St",
		},
		{name: "empty address", items: validItems(), totalPrice: 10, address: ""},
		{name: "blank address", items: validItems(), totalPrice: 10, address: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ord, err := New(uuid.New(), uuid.New(), tt.items, tt.totalPrice, tt.address, "")
			require.Nil(t, ord)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestConfirm_OnlyFromPending(t *testing.T) {
	for _, status := range []Status{StatusConfirmed, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled} {
		t.Run(status.String(), func(t *testing.T) {
			ord, err := New(uuid.New(), uuid.New(), validItems(), 10.0, "123 Main St", "")
			require.NoError(t, err)
			ord.Status = status

			err = ord.Confirm()

			var statusErr *InvalidStatusError
			require.ErrorAs(t, err, &statusErr)
			require.Equal(t, status, statusErr.Current)
		})
	}

	ord, err := New(uuid.New(), uuid.New(), validItems(), 10.0, "123 Main St", "")
	require.NoError(t, err)
	require.NoError(t, ord.Confirm())
	require.Equal(t, StatusConfirmed, ord.Status)
	require.True(t, ord.UpdatedAt.After(ord.CreatedAt) || ord.UpdatedAt.Equal(ord.CreatedAt))
}

func TestCancel_FromPendingAndConfirmed(t *testing.T) {
	ord, err := New(uuid.New(), uuid.New(), validItems(), 10.0, "123 Main St", "")
	require.NoError(t, err)
	require.NoError(t, ord.Cancel())
	require.Equal(t, StatusCancelled, ord.Status)

	ord, err = New(uuid.New(), uuid.New(), validItems(), 10.0, "123 Main St", "")
	require.NoError(t, err)
	require.NoError(t, ord.Confirm())
	require.NoError(t, ord.Cancel())
	require.Equal(t, StatusCancelled, ord.Status)
}

func TestCancel_InvalidStatuses(t *testing.T) {
	for _, status := range []Status{StatusPreparing, StatusReady, StatusCompleted, StatusCancelled} {
		t.Run(status.String(), func(t *testing.T) {
			ord, err := New(uuid.New(), uuid.New(), validItems(), 10.0, "123 Main St", "")
			require.NoError(t, err)
			ord.Status = status

			err = ord.Cancel()

			var statusErr *InvalidStatusError
			require.ErrorAs(t, err, &statusErr)
			require.Equal(t, status, statusErr.Current)
		})
	}
}

func TestIsCompleted(t *testing.T) {
	ord, err := New(uuid.New(), uuid.New(), validItems(), 10.0, "123 Main St", "")
	require.NoError(t, err)
	require.False(t, ord.IsCompleted())

	ord.Status = StatusCompleted
	require.True(t, ord.IsCompleted())
}

func TestApplyUpdate(t *testing.T) {
	ord, err := New(uuid.New(), uuid.New(), validItems(), 10.0, "123 Main St", "")
	require.NoError(t, err)

	newItems := []orderitem.OrderItem{
		{ItemID: "2", Name: "Pasta", Price: 12.5, Quantity: 2},
	}
	instructions := "no onions"

	require.NoError(t, ord.ApplyUpdate(newItems, &instructions))
	require.Equal(t, newItems, ord.Items)
	require.Equal(t, "no onions", ord.SpecialInstructions)

	// nil arguments leave the fields untouched
	require.NoError(t, ord.ApplyUpdate(nil, nil))
	require.Equal(t, newItems, ord.Items)
	require.Equal(t, "no onions", ord.SpecialInstructions)
}

func TestApplyUpdate_RejectsInvalidItems(t *testing.T) {
	ord, err := New(uuid.New(), uuid.New(), validItems(), 10.0, "123 Main St", "")
	require.NoError(t, err)

	err = ord.ApplyUpdate([]orderitem.OrderItem{}, nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, validItems(), ord.Items)
}

func TestParseStatus(t *testing.T) {
	for _, status := range []Status{StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled} {
		parsed, err := ParseStatus(status.String())
		require.NoError(t, err)
		require.Equal(t, status, parsed)
	}

	_, err := ParseStatus("shipped")
	require.Error(t, err)
}
