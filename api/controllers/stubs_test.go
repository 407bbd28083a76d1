package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	"github.com/niastore/nia-storefront/api/middleware"
	"github.com/niastore/nia-storefront/internal/auth"
	"github.com/niastore/nia-storefront/internal/cart"
	"github.com/niastore/nia-storefront/internal/checkout"
	"github.com/niastore/nia-storefront/internal/messages"
	"github.com/niastore/nia-storefront/internal/orders"
	"github.com/niastore/nia-storefront/internal/products"
	"github.com/niastore/nia-storefront/internal/users"
	"github.com/niastore/nia-storefront/pkg/config"
	"github.com/niastore/nia-storefront/pkg/logger"
)

const testVisitor = "3f1c7c1e-0f6b-4f52-9d7a-6f1f2b3c4d5e"

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func withVisitor(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithVisitorID(req.Context(), testVisitor))
}

func withRouteID(req *http.Request, id string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type stubProductService struct {
	items     []products.ProductDTO
	listErr   error
	created   *products.CreateProductInput
	createErr error
	deleted   []uint
}

func (s *stubProductService) List(context.Context) ([]products.ProductDTO, error) {
	return s.items, s.listErr
}

func (s *stubProductService) Get(_ context.Context, id uint) (*products.ProductDTO, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, nil
}

func (s *stubProductService) Create(_ context.Context, input products.CreateProductInput) (*products.ProductDTO, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = &input
	return &products.ProductDTO{ID: 9, Name: input.Name, Price: input.Price.StringFixed(2), Image: input.Image}, nil
}

func (s *stubProductService) Delete(_ context.Context, id uint) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubCartService struct {
	visitor string
	line    cart.LineView
	err     error
	dropped []string
}

func (s *stubCartService) Get(_ context.Context, visitorID string) (*cart.View, error) {
	s.visitor = visitorID
	return cart.NewView(cart.New()), s.err
}

func (s *stubCartService) Add(_ context.Context, visitorID string, _ uint) (*cart.View, cart.LineView, error) {
	s.visitor = visitorID
	return cart.NewView(cart.New()), s.line, s.err
}

func (s *stubCartService) Remove(_ context.Context, visitorID string, _ uint) (*cart.View, error) {
	s.visitor = visitorID
	return cart.NewView(cart.New()), s.err
}

func (s *stubCartService) Clear(_ context.Context, visitorID string) (*cart.View, error) {
	s.visitor = visitorID
	return cart.NewView(cart.New()), s.err
}

func (s *stubCartService) Drop(_ context.Context, visitorID string) error {
	s.dropped = append(s.dropped, visitorID)
	return s.err
}

type stubCheckoutService struct {
	input checkout.Input
	order *orders.OrderDTO
	err   error
}

func (s *stubCheckoutService) Summary(context.Context, string) (*cart.View, error) {
	return cart.NewView(cart.New()), nil
}

func (s *stubCheckoutService) Execute(_ context.Context, _ string, input checkout.Input) (*orders.OrderDTO, error) {
	s.input = input
	return s.order, s.err
}

type stubMessageService struct {
	submitted *messages.SubmitInput
	err       error
}

func (s *stubMessageService) Submit(_ context.Context, input messages.SubmitInput) (*messages.MessageDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.submitted = &input
	return &messages.MessageDTO{ID: 1, Name: input.Name, Email: input.Email, Subject: input.Subject, Message: input.Message}, nil
}

func (s *stubMessageService) List(context.Context, int) ([]messages.MessageDTO, error) {
	return []messages.MessageDTO{}, nil
}

type stubOrderService struct {
	limit int
}

func (s *stubOrderService) List(_ context.Context, limit int) ([]orders.OrderDTO, error) {
	s.limit = limit
	return []orders.OrderDTO{}, nil
}

type stubAuthService struct {
	login     *auth.LoginResponse
	err       error
	revoked   []string
	registers int
}

func (s *stubAuthService) Login(context.Context, auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.login, s.err
}

func (s *stubAuthService) Register(_ context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.registers++
	return &users.UserDTO{ID: 2, Email: req.Email, Name: req.Name}, nil
}

func (s *stubAuthService) Logout(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func (s *stubAuthService) EnsureAdmin(context.Context, config.AdminConfig) (*users.UserDTO, bool, error) {
	return nil, false, nil
}
