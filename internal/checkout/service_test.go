package checkout

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/omerfq/stitchline-backend/internal/cart"
	"github.com/omerfq/stitchline-backend/internal/orders"
	"github.com/omerfq/stitchline-backend/pkg/config"
	"github.com/omerfq/stitchline-backend/pkg/db/models"
	"github.com/omerfq/stitchline-backend/pkg/enums"
	apperrors "github.com/omerfq/stitchline-backend/pkg/errors"
	"github.com/omerfq/stitchline-backend/pkg/metrics"
	"github.com/omerfq/stitchline-backend/pkg/types"
)

type gormTxRunner struct {
	conn *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.conn.WithContext(ctx).Transaction(fn)
}

type failingTxRunner struct{}

func (failingTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return errors.New("connection reset")
}

type fixture struct {
	svc     *Service
	carts   *cart.Service
	storage *cart.MemoryStorage
	repo    *orders.Repo
	conn    *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "checkout.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Order{}, &models.OrderItem{}))

	storage := cart.NewMemoryStorage()
	carts := cart.NewService(storage, nil, nil)
	repo := orders.NewRepo(conn)
	cfg := config.CheckoutConfig{FlatShippingFee: 250, FreeShippingThreshold: 5000}
	svc := NewService(carts, repo, gormTxRunner{conn: conn}, cfg, metrics.NewCheckoutMetrics(nil), nil)

	return &fixture{svc: svc, carts: carts, storage: storage, repo: repo, conn: conn}
}

func (f *fixture) seedCart(t *testing.T, token string, lines ...cart.Line) {
	t.Helper()
	c := cart.NewCart(token)
	for _, line := range lines {
		c.Add(line)
	}
	require.NoError(t, f.storage.Save(context.Background(), c))
}

func validInput(token string) PlaceOrderInput {
	return PlaceOrderInput{
		CartToken:     token,
		CustomerName:  "Ayesha Khan",
		CustomerEmail: "ayesha@example.com",
		CustomerPhone: "+92 300 1234567",
		ShippingAddress: types.ShippingAddress{
			FirstName:  "Ayesha",
			LastName:   "Khan",
			Address:    "14-B Gulberg III",
			City:       "Lahore",
			PostalCode: "54000",
			Country:    "Pakistan",
			Phone:      "+92 300 1234567",
		},
	}
}

func TestPlaceOrderFlatShipping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCart(t, "tok", cart.Line{ProductID: uuid.New(), Name: "Lawn Suit", UnitPrice: 1000, Quantity: 2})

	order, err := f.svc.PlaceOrder(ctx, validInput("tok"))
	require.NoError(t, err)

	assert.Equal(t, enums.OrderStatusPending, order.Status)
	assert.Equal(t, int64(2000), order.SubtotalAmount)
	assert.Equal(t, int64(250), order.ShippingFee)
	assert.Equal(t, int64(2250), order.TotalAmount)
	assert.Equal(t, enums.PaymentMethodCashOnDelivery, order.PaymentMethod)

	loaded, err := f.repo.GetByID(ctx, order.ID.String())
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, int64(1000), loaded.Items[0].UnitPrice)
	assert.Equal(t, int64(2000), loaded.Items[0].TotalPrice)

	remaining, err := f.carts.Get(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, remaining.IsEmpty())
}

func TestPlaceOrderFreeShippingAboveThreshold(t *testing.T) {
	f := newFixture(t)
	f.seedCart(t, "tok", cart.Line{ProductID: uuid.New(), Name: "Bridal Set", UnitPrice: 6000, Quantity: 1})

	order, err := f.svc.PlaceOrder(context.Background(), validInput("tok"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), order.ShippingFee)
	assert.Equal(t, int64(6000), order.TotalAmount)
}

func TestPlaceOrderShippingBoundary(t *testing.T) {
	f := newFixture(t)
	f.seedCart(t, "at", cart.Line{ProductID: uuid.New(), Name: "Kurta", UnitPrice: 5000, Quantity: 1})
	f.seedCart(t, "below", cart.Line{ProductID: uuid.New(), Name: "Kurta", UnitPrice: 4999, Quantity: 1})

	order, err := f.svc.PlaceOrder(context.Background(), validInput("at"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), order.ShippingFee)
	assert.Equal(t, int64(5000), order.TotalAmount)

	order, err = f.svc.PlaceOrder(context.Background(), validInput("below"))
	require.NoError(t, err)
	assert.Equal(t, int64(250), order.ShippingFee)
	assert.Equal(t, int64(5249), order.TotalAmount)
}

func TestPlaceOrderWithCoupon(t *testing.T) {
	f := newFixture(t)
	f.seedCart(t, "tok", cart.Line{ProductID: uuid.New(), Name: "Lawn Suit", UnitPrice: 1000, Quantity: 2})

	input := validInput("tok")
	input.CouponCode = "summer20"

	order, err := f.svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, int64(400), order.DiscountAmount)
	assert.Equal(t, "SUMMER20", order.CouponCode)
	assert.Equal(t, int64(1850), order.TotalAmount)
}

func TestPlaceOrderInvalidCouponLeavesCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCart(t, "tok", cart.Line{ProductID: uuid.New(), Name: "Lawn Suit", UnitPrice: 1000, Quantity: 2})

	input := validInput("tok")
	input.CouponCode = "BOGUS50"

	_, err := f.svc.PlaceOrder(ctx, input)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.As(err).Code())

	var count int64
	require.NoError(t, f.conn.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	c, err := f.carts.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 2, c.ItemCount())
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.PlaceOrder(context.Background(), validInput("tok"))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.As(err).Code())
}

func TestPlaceOrderMissingFields(t *testing.T) {
	f := newFixture(t)
	f.seedCart(t, "tok", cart.Line{ProductID: uuid.New(), UnitPrice: 1000, Quantity: 1})

	input := validInput("tok")
	input.CustomerEmail = ""
	input.ShippingAddress.City = ""
	input.ShippingAddress.PostalCode = ""

	_, err := f.svc.PlaceOrder(context.Background(), input)
	require.Error(t, err)
	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string][]string)
	require.True(t, ok)
	assert.Contains(t, details["missing"], "customer_email")
	assert.Contains(t, details["missing"], "shipping_address.city")
	assert.Contains(t, details["missing"], "shipping_address.postal_code")
}

func TestPlaceOrderMalformedEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCart(t, "tok", cart.Line{ProductID: uuid.New(), UnitPrice: 1000, Quantity: 1})

	input := validInput("tok")
	input.CustomerEmail = "ayesha.example.com"

	_, err := f.svc.PlaceOrder(ctx, input)
	require.Error(t, err)
	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string][]string)
	require.True(t, ok)
	assert.Contains(t, details["invalid"], "customer_email")

	var count int64
	require.NoError(t, f.conn.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestPlaceOrderInvalidPaymentMethod(t *testing.T) {
	f := newFixture(t)
	f.seedCart(t, "tok", cart.Line{ProductID: uuid.New(), UnitPrice: 1000, Quantity: 1})

	input := validInput("tok")
	input.PaymentMethod = "credit_card"

	_, err := f.svc.PlaceOrder(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.As(err).Code())
}

func TestPlaceOrderPersistenceFailureKeepsCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCart(t, "tok", cart.Line{ProductID: uuid.New(), Name: "Lawn Suit", UnitPrice: 1000, Quantity: 2})

	cfg := config.CheckoutConfig{FlatShippingFee: 250, FreeShippingThreshold: 5000}
	svc := NewService(f.carts, f.repo, failingTxRunner{}, cfg, metrics.NewCheckoutMetrics(nil), nil)

	_, err := svc.PlaceOrder(ctx, validInput("tok"))
	require.Error(t, err)

	c, err := f.carts.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 2, c.ItemCount())
}

func TestPlaceOrderVariantNameSnapshot(t *testing.T) {
	f := newFixture(t)
	variantID := uuid.New()
	f.seedCart(t, "tok", cart.Line{
		ProductID: uuid.New(),
		VariantID: &variantID,
		Name:      "Embroidered Kurta",
		Size:      "M",
		Color:     "Blue",
		UnitPrice: 3200,
		Quantity:  1,
	})

	order, err := f.svc.PlaceOrder(context.Background(), validInput("tok"))
	require.NoError(t, err)

	loaded, err := f.repo.GetByID(context.Background(), order.ID.String())
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "Embroidered Kurta (M Blue)", loaded.Items[0].Name)
	require.NotNil(t, loaded.Items[0].ProductVariantID)
	assert.Equal(t, variantID, *loaded.Items[0].ProductVariantID)
}

func TestQuoteCartDoesNotPlaceOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCart(t, "tok", cart.Line{ProductID: uuid.New(), UnitPrice: 1000, Quantity: 2})

	quote, err := f.svc.QuoteCart(ctx, "tok", "WELCOME10")
	require.NoError(t, err)
	assert.Equal(t, int64(2000), quote.Subtotal)
	assert.Equal(t, int64(200), quote.Discount)
	assert.Equal(t, int64(250), quote.ShippingFee)
	assert.Equal(t, int64(2050), quote.Total)
	assert.Equal(t, 2, quote.ItemCount)

	var count int64
	require.NoError(t, f.conn.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	c, err := f.carts.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 2, c.ItemCount())
}
