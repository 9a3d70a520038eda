package services_test

import (
	"testing"

	"belanja/internal/models"
	"belanja/internal/repositories"
	"belanja/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testBilling() *models.OrderBilling {
	return &models.OrderBilling{
		Recipient: models.Recipient{FirstName: "Budi", LastName: "Santoso", MobileNumber: "+6281234567890"},
		Address:   models.Address{Street: "Jl. Merdeka 1", City: "Jakarta", State: "DKI Jakarta", Country: "Indonesia"},
	}
}

func newOrderServiceForTest() (*services.OrderService, *MockOrderRepository, *MockCartRepository, *MockProductRepository, *MockBillingRepository) {
	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	mockBillingRepo := new(MockBillingRepository)
	inventory := services.NewInventoryService(mockProductRepo)
	orderService := services.NewOrderService(mockOrderRepo, mockCartRepo, mockProductRepo, mockBillingRepo, inventory, nil)
	return orderService, mockOrderRepo, mockCartRepo, mockProductRepo, mockBillingRepo
}

func TestOrderService_PlaceOrder(t *testing.T) {
	orderService, mockOrderRepo, mockCartRepo, mockProductRepo, _ := newOrderServiceForTest()

	phone := &models.Product{ID: "prod-1", Name: "Test Phone", Stock: 10, Price: 100}
	headset := &models.Product{ID: "prod-2", Name: "Test Headset", Stock: 5, Price: 50}
	cart := []models.CartItem{
		{ID: "item-1", UserID: "user-1", ProductID: "prod-1", Quantity: 1},
		{ID: "item-2", UserID: "user-1", ProductID: "prod-2", Quantity: 2},
	}

	mockCartRepo.On("GetByUser", "user-1").Return(cart, nil).Once()
	// Validation pass plus the inventory reservation each re-read the product.
	mockProductRepo.On("GetByIDUnscoped", "prod-1").Return(phone, nil).Twice()
	mockProductRepo.On("GetByIDUnscoped", "prod-2").Return(headset, nil).Twice()
	mockProductRepo.On("DecrementStock", "prod-1", 1).Return(true, nil).Once()
	mockProductRepo.On("DecrementStock", "prod-2", 2).Return(true, nil).Once()
	mockOrderRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()
	mockCartRepo.On("ClearUser", "user-1").Return(nil).Once()

	order, err := orderService.PlaceOrder("user-1", services.PlaceOrderInput{Billing: testBilling()})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 200.0, order.TotalPrice) // 1*100 + 2*50
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 100.0, order.Items[0].Price)
	assert.Equal(t, "Budi", order.Billing.Recipient.FirstName)

	mockOrderRepo.AssertExpectations(t)
	mockCartRepo.AssertExpectations(t)
	mockProductRepo.AssertExpectations(t)
}

func TestOrderService_PlaceOrder_EmptyCart(t *testing.T) {
	orderService, mockOrderRepo, mockCartRepo, mockProductRepo, _ := newOrderServiceForTest()

	mockCartRepo.On("GetByUser", "user-1").Return([]models.CartItem{}, nil).Once()

	_, err := orderService.PlaceOrder("user-1", services.PlaceOrderInput{Billing: testBilling()})
	assert.ErrorIs(t, err, services.ErrEmptyCart)
	mockOrderRepo.AssertNotCalled(t, "Create")
	mockProductRepo.AssertNotCalled(t, "DecrementStock")
}

func TestOrderService_PlaceOrder_InsufficientStock(t *testing.T) {
	orderService, mockOrderRepo, mockCartRepo, mockProductRepo, _ := newOrderServiceForTest()

	phone := &models.Product{ID: "prod-1", Name: "Test Phone", Stock: 1, Price: 100}
	cart := []models.CartItem{{ID: "item-1", UserID: "user-1", ProductID: "prod-1", Quantity: 3}}

	mockCartRepo.On("GetByUser", "user-1").Return(cart, nil).Once()
	mockProductRepo.On("GetByIDUnscoped", "prod-1").Return(phone, nil).Once()

	_, err := orderService.PlaceOrder("user-1", services.PlaceOrderInput{Billing: testBilling()})
	assert.ErrorIs(t, err, services.ErrInsufficientStock)

	// Validation failed before any stock was touched.
	mockProductRepo.AssertNotCalled(t, "DecrementStock")
	mockOrderRepo.AssertNotCalled(t, "Create")
	mockCartRepo.AssertNotCalled(t, "ClearUser")
}

func TestOrderService_PlaceOrder_ArchivedProduct(t *testing.T) {
	orderService, mockOrderRepo, mockCartRepo, mockProductRepo, _ := newOrderServiceForTest()

	archived := &models.Product{ID: "prod-1", Name: "Test Phone", Stock: 0, IsArchived: true}
	cart := []models.CartItem{{ID: "item-1", UserID: "user-1", ProductID: "prod-1", Quantity: 1}}

	mockCartRepo.On("GetByUser", "user-1").Return(cart, nil).Once()
	mockProductRepo.On("GetByIDUnscoped", "prod-1").Return(archived, nil).Once()

	_, err := orderService.PlaceOrder("user-1", services.PlaceOrderInput{Billing: testBilling()})
	assert.ErrorIs(t, err, services.ErrProductUnavailable)
	mockOrderRepo.AssertNotCalled(t, "Create")
}

func TestOrderService_PlaceOrder_CompensatesFailedReservation(t *testing.T) {
	orderService, mockOrderRepo, mockCartRepo, mockProductRepo, _ := newOrderServiceForTest()

	phone := &models.Product{ID: "prod-1", Name: "Test Phone", Stock: 10, Price: 100}
	headset := &models.Product{ID: "prod-2", Name: "Test Headset", Stock: 2, Price: 50}
	cart := []models.CartItem{
		{ID: "item-1", UserID: "user-1", ProductID: "prod-1", Quantity: 1},
		{ID: "item-2", UserID: "user-1", ProductID: "prod-2", Quantity: 2},
	}

	mockCartRepo.On("GetByUser", "user-1").Return(cart, nil).Once()
	mockProductRepo.On("GetByIDUnscoped", "prod-1").Return(phone, nil).Twice()
	mockProductRepo.On("GetByIDUnscoped", "prod-2").Return(headset, nil).Twice()
	mockProductRepo.On("DecrementStock", "prod-1", 1).Return(true, nil).Once()
	// The second line loses its stock to a concurrent checkout between
	// validation and reservation.
	mockProductRepo.On("DecrementStock", "prod-2", 2).Return(false, nil).Once()
	// The first line's reservation is released again.
	mockProductRepo.On("IncrementStock", "prod-1", 1).Return(nil).Once()

	_, err := orderService.PlaceOrder("user-1", services.PlaceOrderInput{Billing: testBilling()})
	assert.ErrorIs(t, err, services.ErrInsufficientStock)

	mockProductRepo.AssertExpectations(t)
	mockOrderRepo.AssertNotCalled(t, "Create")
	mockCartRepo.AssertNotCalled(t, "ClearUser")
}

func TestOrderService_PlaceOrder_SavedBilling(t *testing.T) {
	orderService, mockOrderRepo, mockCartRepo, mockProductRepo, mockBillingRepo := newOrderServiceForTest()

	phone := &models.Product{ID: "prod-1", Name: "Test Phone", Stock: 10, Price: 100}
	cart := []models.CartItem{{ID: "item-1", UserID: "user-1", ProductID: "prod-1", Quantity: 1}}
	saved := &models.BillingInformation{
		UserID:    "user-1",
		Recipient: models.Recipient{FirstName: "Siti", LastName: "Rahma", MobileNumber: "+628111111111"},
		Address:   models.Address{Street: "Jl. Sudirman 5", City: "Bandung", State: "Jawa Barat", Country: "Indonesia"},
	}

	mockCartRepo.On("GetByUser", "user-1").Return(cart, nil).Once()
	mockProductRepo.On("GetByIDUnscoped", "prod-1").Return(phone, nil).Twice()
	mockBillingRepo.On("GetByUser", "user-1").Return(saved, nil).Once()
	mockProductRepo.On("DecrementStock", "prod-1", 1).Return(true, nil).Once()
	mockOrderRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()
	mockCartRepo.On("ClearUser", "user-1").Return(nil).Once()

	order, err := orderService.PlaceOrder("user-1", services.PlaceOrderInput{UseSavedBilling: true})
	assert.NoError(t, err)
	assert.Equal(t, "Siti", order.Billing.Recipient.FirstName)
	mockBillingRepo.AssertExpectations(t)
}

func TestOrderService_PlaceOrder_SavedBillingMissing(t *testing.T) {
	orderService, mockOrderRepo, mockCartRepo, mockProductRepo, mockBillingRepo := newOrderServiceForTest()

	phone := &models.Product{ID: "prod-1", Name: "Test Phone", Stock: 10, Price: 100}
	cart := []models.CartItem{{ID: "item-1", UserID: "user-1", ProductID: "prod-1", Quantity: 1}}

	mockCartRepo.On("GetByUser", "user-1").Return(cart, nil).Once()
	mockProductRepo.On("GetByIDUnscoped", "prod-1").Return(phone, nil).Once()
	mockBillingRepo.On("GetByUser", "user-1").Return(nil, repositories.ErrNotFound).Once()

	_, err := orderService.PlaceOrder("user-1", services.PlaceOrderInput{UseSavedBilling: true})
	assert.ErrorIs(t, err, services.ErrBillingNotFound)

	// Billing is resolved before any stock is reserved.
	mockProductRepo.AssertNotCalled(t, "DecrementStock")
	mockOrderRepo.AssertNotCalled(t, "Create")
}

func TestOrderService_PlaceOrder_SaveBilling(t *testing.T) {
	orderService, mockOrderRepo, mockCartRepo, mockProductRepo, mockBillingRepo := newOrderServiceForTest()

	phone := &models.Product{ID: "prod-1", Name: "Test Phone", Stock: 10, Price: 100}
	cart := []models.CartItem{{ID: "item-1", UserID: "user-1", ProductID: "prod-1", Quantity: 1}}

	mockCartRepo.On("GetByUser", "user-1").Return(cart, nil).Once()
	mockProductRepo.On("GetByIDUnscoped", "prod-1").Return(phone, nil).Twice()
	mockProductRepo.On("DecrementStock", "prod-1", 1).Return(true, nil).Once()
	mockOrderRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()
	mockCartRepo.On("ClearUser", "user-1").Return(nil).Once()
	mockBillingRepo.On("Upsert", mock.AnythingOfType("*models.BillingInformation")).Return(nil).Once()

	_, err := orderService.PlaceOrder("user-1", services.PlaceOrderInput{Billing: testBilling(), SaveBilling: true})
	assert.NoError(t, err)
	mockBillingRepo.AssertExpectations(t)
}

func TestOrderService_CancelOrder(t *testing.T) {
	orderService, mockOrderRepo, _, mockProductRepo, _ := newOrderServiceForTest()

	order := &models.Order{
		ID:     "order-1",
		UserID: "user-1",
		Status: models.StatusPending,
		Items: []models.OrderItem{
			{ProductID: "prod-1", Quantity: 2, Price: 100},
			{ProductID: "prod-2", Quantity: 1, Price: 50},
		},
	}

	mockOrderRepo.On("GetByID", "order-1").Return(order, nil).Once()
	mockOrderRepo.On("UpdateStatus", "order-1", models.StatusCancelled).Return(nil).Once()
	// Every line's quantity goes back to stock.
	mockProductRepo.On("IncrementStock", "prod-1", 2).Return(nil).Once()
	mockProductRepo.On("IncrementStock", "prod-2", 1).Return(nil).Once()

	cancelled, err := orderService.CancelOrder("user-1", "order-1")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	mockOrderRepo.AssertExpectations(t)
	mockProductRepo.AssertExpectations(t)
}

func TestOrderService_CancelOrder_WrongUser(t *testing.T) {
	orderService, mockOrderRepo, _, mockProductRepo, _ := newOrderServiceForTest()

	order := &models.Order{ID: "order-1", UserID: "user-1", Status: models.StatusPending}
	mockOrderRepo.On("GetByID", "order-1").Return(order, nil).Once()

	// Another user's order reads as missing, not forbidden.
	_, err := orderService.CancelOrder("user-2", "order-1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockOrderRepo.AssertNotCalled(t, "UpdateStatus")
	mockProductRepo.AssertNotCalled(t, "IncrementStock")
}

func TestOrderService_CancelOrder_AfterFulfilmentStarts(t *testing.T) {
	orderService, mockOrderRepo, _, mockProductRepo, _ := newOrderServiceForTest()

	order := &models.Order{ID: "order-1", UserID: "user-1", Status: models.StatusShipped}
	mockOrderRepo.On("GetByID", "order-1").Return(order, nil).Once()

	_, err := orderService.CancelOrder("user-1", "order-1")
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
	mockOrderRepo.AssertNotCalled(t, "UpdateStatus")
	mockProductRepo.AssertNotCalled(t, "IncrementStock")
}

func TestOrderService_CancelOrder_AlreadyCancelled(t *testing.T) {
	orderService, mockOrderRepo, _, mockProductRepo, _ := newOrderServiceForTest()

	order := &models.Order{ID: "order-1", UserID: "user-1", Status: models.StatusCancelled}
	mockOrderRepo.On("GetByID", "order-1").Return(order, nil).Once()

	// A second cancellation must not restock a second time.
	_, err := orderService.CancelOrder("user-1", "order-1")
	assert.ErrorIs(t, err, services.ErrAlreadyCancelled)
	mockProductRepo.AssertNotCalled(t, "IncrementStock")
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	orderService, mockOrderRepo, _, _, _ := newOrderServiceForTest()

	order := &models.Order{ID: "order-1", UserID: "user-1", Status: models.StatusPending}

	// Forward moves may skip intermediate states.
	mockOrderRepo.On("GetByID", "order-1").Return(order, nil).Once()
	mockOrderRepo.On("UpdateStatus", "order-1", models.StatusShipped).Return(nil).Once()

	updated, err := orderService.UpdateOrderStatus("order-1", models.StatusShipped)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusShipped, updated.Status)
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_UpdateOrderStatus_Backwards(t *testing.T) {
	orderService, mockOrderRepo, _, _, _ := newOrderServiceForTest()

	order := &models.Order{ID: "order-1", UserID: "user-1", Status: models.StatusShipped}
	mockOrderRepo.On("GetByID", "order-1").Return(order, nil).Once()

	_, err := orderService.UpdateOrderStatus("order-1", models.StatusProcessing)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
	mockOrderRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestOrderService_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	orderService, mockOrderRepo, _, _, _ := newOrderServiceForTest()

	_, err := orderService.UpdateOrderStatus("order-1", "refunded")
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
	mockOrderRepo.AssertNotCalled(t, "GetByID")
}

func TestOrderService_UpdateOrderStatus_CancelRestocks(t *testing.T) {
	orderService, mockOrderRepo, _, mockProductRepo, _ := newOrderServiceForTest()

	order := &models.Order{
		ID:     "order-1",
		UserID: "user-1",
		Status: models.StatusProcessing,
		Items:  []models.OrderItem{{ProductID: "prod-1", Quantity: 3, Price: 100}},
	}

	// Setting cancelled through the admin path follows the same rules as a
	// user cancellation, including the restock.
	mockOrderRepo.On("GetByID", "order-1").Return(order, nil).Once()
	mockOrderRepo.On("UpdateStatus", "order-1", models.StatusCancelled).Return(nil).Once()
	mockProductRepo.On("IncrementStock", "prod-1", 3).Return(nil).Once()

	updated, err := orderService.UpdateOrderStatus("order-1", models.StatusCancelled)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)
	mockProductRepo.AssertExpectations(t)
}

func TestOrderService_GetUserOrderByID(t *testing.T) {
	orderService, mockOrderRepo, _, _, _ := newOrderServiceForTest()

	order := &models.Order{ID: "order-1", UserID: "user-1", Status: models.StatusPending}

	mockOrderRepo.On("GetByID", "order-1").Return(order, nil).Twice()

	found, err := orderService.GetUserOrderByID("user-1", "order-1")
	assert.NoError(t, err)
	assert.Equal(t, "order-1", found.ID)

	_, err = orderService.GetUserOrderByID("user-2", "order-1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
