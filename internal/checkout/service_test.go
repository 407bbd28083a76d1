package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/niastore/nia-storefront/internal/cart"
	"github.com/niastore/nia-storefront/internal/orders"
	"github.com/niastore/nia-storefront/pkg/db"
	"github.com/niastore/nia-storefront/pkg/db/dbtest"
	"github.com/niastore/nia-storefront/pkg/enums"
	pkgerrors "github.com/niastore/nia-storefront/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memCarts struct {
	carts     map[string]*cart.Cart
	deleteErr error
	saves     int
}

func newMemCarts() *memCarts {
	return &memCarts{carts: map[string]*cart.Cart{}}
}

func (m *memCarts) Load(_ context.Context, visitorID string) (*cart.Cart, error) {
	if c, ok := m.carts[visitorID]; ok {
		return c.Clone(), nil
	}
	return cart.New(), nil
}

func (m *memCarts) Save(_ context.Context, visitorID string, c *cart.Cart) error {
	m.saves++
	m.carts[visitorID] = c.Clone()
	return nil
}

func (m *memCarts) Delete(_ context.Context, visitorID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.carts, visitorID)
	return nil
}

type counters struct {
	orders int
	ops    []string
}

func (c *counters) IncOrderCreated()           { c.orders++ }
func (c *counters) IncCartOperation(op string) { c.ops = append(c.ops, op) }

// failingCommit runs the work in a real transaction and then forces a rollback.
type failingCommit struct {
	client *db.Client
}

func (f failingCommit) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return f.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := fn(tx); err != nil {
			return err
		}
		return errors.New("commit failed")
	})
}

func filledCart() *cart.Cart {
	c := cart.New()
	c.Add(cart.Line{ProductID: 1, Name: "Nike Sneakers", Price: decimal.RequireFromString("80.00")})
	c.Add(cart.Line{ProductID: 2, Name: "Adidas Sneakers", Price: decimal.RequireFromString("150.00")})
	c.Add(cart.Line{ProductID: 2, Name: "Adidas Sneakers", Price: decimal.RequireFromString("150.00")})
	return c
}

func validInput() Input {
	ref := " MOMO-1 "
	return Input{UserName: "Kofi", Phone: "0244000000", Address: "Accra", MomoReference: &ref}
}

func countOrders(t *testing.T, client *db.Client) int64 {
	t.Helper()
	count, err := orders.NewRepository(client.DB()).Count(context.Background())
	require.NoError(t, err)
	return count
}

func TestExecuteEmptyCartCreatesNoOrder(t *testing.T) {
	client := dbtest.Open(t)
	carts := newMemCarts()
	svc, err := NewService(ServiceParams{DB: client, Carts: carts})
	require.NoError(t, err)

	_, err = svc.Execute(context.Background(), "v1", validInput())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
	assert.Equal(t, emptyCartMessage, typed.Message())
	assert.EqualValues(t, 0, countOrders(t, client))
}

func TestExecuteCreatesOneOrderAndClearsCart(t *testing.T) {
	client := dbtest.Open(t)
	carts := newMemCarts()
	carts.carts["v1"] = filledCart()
	metrics := &counters{}
	svc, err := NewService(ServiceParams{DB: client, Carts: carts, Metrics: metrics})
	require.NoError(t, err)

	order, err := svc.Execute(context.Background(), "v1", validInput())
	require.NoError(t, err)
	assert.Equal(t, "380.00", order.Total)
	assert.Equal(t, enums.OrderStatusPending, order.Status)
	assert.Equal(t, "MOMO-1", *order.MomoReference)

	assert.EqualValues(t, 1, countOrders(t, client))
	remaining, err := carts.Load(context.Background(), "v1")
	require.NoError(t, err)
	assert.True(t, remaining.IsEmpty())
	assert.Equal(t, 1, metrics.orders)
	assert.Equal(t, []string{"checkout"}, metrics.ops)
}

func TestExecuteRollsBackWhenCartClearFails(t *testing.T) {
	client := dbtest.Open(t)
	carts := newMemCarts()
	carts.carts["v1"] = filledCart()
	carts.deleteErr = errors.New("redis down")
	svc, err := NewService(ServiceParams{DB: client, Carts: carts})
	require.NoError(t, err)

	_, err = svc.Execute(context.Background(), "v1", validInput())
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
	assert.EqualValues(t, 0, countOrders(t, client))
	assert.Len(t, carts.carts["v1"].Lines, 2)
}

func TestExecuteRestoresCartWhenCommitFails(t *testing.T) {
	client := dbtest.Open(t)
	carts := newMemCarts()
	carts.carts["v1"] = filledCart()
	svc, err := NewService(ServiceParams{DB: failingCommit{client: client}, Carts: carts})
	require.NoError(t, err)

	_, err = svc.Execute(context.Background(), "v1", validInput())
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
	assert.EqualValues(t, 0, countOrders(t, client))

	restored, err := carts.Load(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, "380.00", restored.Total().StringFixed(2))
	assert.Equal(t, 1, carts.saves)
}

func TestExecuteValidatesCustomerFields(t *testing.T) {
	client := dbtest.Open(t)
	carts := newMemCarts()
	carts.carts["v1"] = filledCart()
	svc, err := NewService(ServiceParams{DB: client, Carts: carts})
	require.NoError(t, err)

	_, err = svc.Execute(context.Background(), "v1", Input{UserName: "  ", Phone: "1"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "user_name")
	assert.Contains(t, details, "address")
	assert.Len(t, carts.carts["v1"].Lines, 2)
}

func TestSummary(t *testing.T) {
	client := dbtest.Open(t)
	carts := newMemCarts()
	carts.carts["v1"] = filledCart()
	svc, err := NewService(ServiceParams{DB: client, Carts: carts})
	require.NoError(t, err)

	view, err := svc.Summary(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, "380.00", view.Total)
	assert.Equal(t, 3, view.ItemCount)
}
