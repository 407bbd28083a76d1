package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niastore/nia-storefront/api/middleware"
	"github.com/niastore/nia-storefront/internal/auth"
	"github.com/niastore/nia-storefront/internal/cart"
	"github.com/niastore/nia-storefront/internal/media"
	"github.com/niastore/nia-storefront/internal/orders"
	"github.com/niastore/nia-storefront/internal/products"
	"github.com/niastore/nia-storefront/internal/users"
	"github.com/niastore/nia-storefront/pkg/config"
	pkgerrors "github.com/niastore/nia-storefront/pkg/errors"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Flash *struct {
		Level   string `json:"level"`
		Message string `json:"message"`
	} `json:"flash"`
	Redirect string `json:"redirect"`
	Error    *struct {
		Code     string          `json:"code"`
		Message  string          `json:"message"`
		Details  json.RawMessage `json:"details"`
		Redirect string          `json:"redirect"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

var testSessionCfg = config.SessionConfig{VisitorCookie: "nia_visitor", TokenCookie: "nia_token", VisitorTTL: time.Hour}

func TestProductsDegradesOnStoreOutage(t *testing.T) {
	svc := &stubProductService{listErr: pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("db down"), "product store unavailable")}
	rec := serve(Products(svc, testLogger()), httptest.NewRequest(http.MethodGet, "/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.JSONEq(t, "[]", string(env.Data))
	require.NotNil(t, env.Flash)
	assert.Equal(t, "warning", env.Flash.Level)
}

func TestProductsLists(t *testing.T) {
	svc := &stubProductService{items: []products.ProductDTO{{ID: 1, Name: "Sneakers", Price: "120.00"}}}
	rec := serve(Products(svc, testLogger()), httptest.NewRequest(http.MethodGet, "/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Nil(t, env.Flash)
	assert.Contains(t, string(env.Data), `"price":"120.00"`)
}

func TestAddToCartFlashesProductName(t *testing.T) {
	svc := &stubCartService{line: cart.LineView{ProductID: 4, Name: "Sneakers"}}
	req := withRouteID(withVisitor(httptest.NewRequest(http.MethodGet, "/add_to_cart/4", nil)), "4")
	rec := serve(AddToCart(svc, testLogger()), req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "Sneakers added to cart!", env.Flash.Message)
	assert.Equal(t, "/products", env.Redirect)
	assert.Equal(t, testVisitor, svc.visitor)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "Product not found!").WithRedirect("/products")}
	req := withRouteID(withVisitor(httptest.NewRequest(http.MethodPost, "/add_to_cart/99", nil)), "99")
	rec := serve(AddToCart(svc, testLogger()), req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "Product not found!", env.Error.Message)
	assert.Equal(t, "/products", env.Error.Redirect)
}

func TestAddToCartInvalidID(t *testing.T) {
	req := withRouteID(withVisitor(httptest.NewRequest(http.MethodGet, "/add_to_cart/abc", nil)), "abc")
	rec := serve(AddToCart(&stubCartService{}, testLogger()), req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartMutationsFlash(t *testing.T) {
	svc := &stubCartService{}

	rec := serve(RemoveFromCart(svc, testLogger()), withRouteID(withVisitor(httptest.NewRequest(http.MethodGet, "/remove_from_cart/3", nil)), "3"))
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "Item removed from cart!", env.Flash.Message)
	assert.Equal(t, "/cart", env.Redirect)

	rec = serve(ClearCart(svc, testLogger()), withVisitor(httptest.NewRequest(http.MethodGet, "/clear_cart", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	env = decode(t, rec)
	assert.Equal(t, "Cart cleared!", env.Flash.Message)
}

func TestViewCartRequiresVisitor(t *testing.T) {
	rec := serve(ViewCart(&stubCartService{}, testLogger()), httptest.NewRequest(http.MethodGet, "/cart", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestContactSubmitForm(t *testing.T) {
	svc := &stubMessageService{}
	form := url.Values{"name": {"Ama"}, "email": {"ama@example.com"}, "subject": {"Sizes"}, "message": {"Do you have 44?"}}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(ContactSubmit(svc, testLogger()), req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	env := decode(t, rec)
	assert.Equal(t, "Message sent successfully!", env.Flash.Message)
	assert.Equal(t, "/contact", env.Redirect)
	require.NotNil(t, svc.submitted)
	assert.Equal(t, "Do you have 44?", svc.submitted.Message)
}

func TestContactSubmitMissingFields(t *testing.T) {
	svc := &stubMessageService{}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"name":"Ama"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(ContactSubmit(svc, testLogger()), req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.submitted)
}

func TestCheckoutSubmit(t *testing.T) {
	svc := &stubCheckoutService{order: &orders.OrderDTO{ID: 5, Total: "380.00"}}
	body := `{"user_name":"Kofi","phone":"0240000000","address":"Accra","momo_reference":"MM-1"}`
	req := withVisitor(httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(CheckoutSubmit(svc, testLogger()), req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	env := decode(t, rec)
	assert.Equal(t, "Order placed successfully!", env.Flash.Message)
	assert.Equal(t, "/", env.Redirect)
	require.NotNil(t, svc.input.MomoReference)
	assert.Equal(t, "MM-1", *svc.input.MomoReference)
}

func TestCheckoutSubmitEmptyCart(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "Your cart is empty!").WithRedirect("/products")}
	form := url.Values{"user_name": {"Kofi"}, "phone": {"024"}, "address": {"Accra"}}
	req := withVisitor(httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(form.Encode())))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(CheckoutSubmit(svc, testLogger()), req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "/products", env.Error.Redirect)
	assert.Nil(t, svc.input.MomoReference)
}

func TestLoginSetsCookieAndRedirectsAdmins(t *testing.T) {
	expires := time.Now().Add(time.Hour)
	svc := &stubAuthService{login: &auth.LoginResponse{
		AccessToken: "tok",
		ExpiresAt:   expires,
		User:        &users.UserDTO{ID: 1, Name: "Admin", IsAdmin: true},
	}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@b.co","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(AuthLogin(svc, testSessionCfg, testLogger()), req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "/admin", env.Redirect)
	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "nia_token" && c.Value == "tok" && c.HttpOnly {
			found = true
		}
	}
	assert.True(t, found, "expected token cookie")
}

func TestLoginFailure(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@b.co","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(AuthLogin(svc, testSessionCfg, testLogger()), req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestRegister(t *testing.T) {
	svc := &stubAuthService{}
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"email":"a@b.co","password":"secret1","name":"Ama"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(AuthRegister(svc, testLogger()), req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/login", decode(t, rec).Redirect)
	assert.Equal(t, 1, svc.registers)
}

func TestLogoutRevokesSessionAndDropsCart(t *testing.T) {
	authSvc := &stubAuthService{}
	carts := &stubCartService{}
	req := withVisitor(httptest.NewRequest(http.MethodGet, "/logout", nil))
	req = req.WithContext(middleware.WithPrincipal(req.Context(), middleware.Principal{UserID: 3, AccessID: "jti-3"}))
	rec := serve(AuthLogout(authSvc, carts, testSessionCfg, testLogger()), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"jti-3"}, authSvc.revoked)
	assert.Equal(t, []string{testVisitor}, carts.dropped)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func multipartProduct(t *testing.T, fields map[string]string, fileName string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		part, err := mw.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/admin", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAdminCreateProduct(t *testing.T) {
	dir := t.TempDir()
	images, err := media.NewDiskStore(dir, 1<<20)
	require.NoError(t, err)
	svc := &stubProductService{}

	req := multipartProduct(t, map[string]string{"name": "Sneakers", "price": "120.5", "category": "Shoes", "stock_quantity": "3"}, "sneakers.png", pngBytes)
	rec := serve(AdminCreateProduct(svc, images, config.UploadsConfig{MaxUploadMB: 1}, testLogger()), req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, svc.created)
	assert.Equal(t, "images/sneakers.png", svc.created.Image)
	assert.Equal(t, "120.5", svc.created.Price.String())
	assert.Equal(t, 3, svc.created.StockQuantity)
	assert.Equal(t, "/admin", decode(t, rec).Redirect)
	_, err = os.Stat(filepath.Join(dir, "images", "sneakers.png"))
	assert.NoError(t, err)
}

func TestAdminCreateProductRejectsBadInput(t *testing.T) {
	images, err := media.NewDiskStore(t.TempDir(), 1<<20)
	require.NoError(t, err)
	handler := AdminCreateProduct(&stubProductService{}, images, config.UploadsConfig{MaxUploadMB: 1}, testLogger())

	rec := serve(handler, multipartProduct(t, map[string]string{"name": "X", "price": "-1", "category": "Shoes"}, "x.png", pngBytes))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(handler, multipartProduct(t, map[string]string{"name": "X", "price": "10", "category": "Shoes"}, "", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(handler, multipartProduct(t, map[string]string{"name": "X", "price": "10", "category": "Shoes"}, "x.exe", pngBytes))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/admin", strings.NewReader(`{"name":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, serve(handler, req).Code)
}

func TestAdminCreateProductRemovesImageOnFailure(t *testing.T) {
	dir := t.TempDir()
	images, err := media.NewDiskStore(dir, 1<<20)
	require.NoError(t, err)
	svc := &stubProductService{createErr: pkgerrors.New(pkgerrors.CodeDependency, "product store unavailable")}

	req := multipartProduct(t, map[string]string{"name": "Sneakers", "price": "10", "category": "Shoes"}, "gone.png", pngBytes)
	rec := serve(AdminCreateProduct(svc, images, config.UploadsConfig{MaxUploadMB: 1}, testLogger()), req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	_, err = os.Stat(filepath.Join(dir, "images", "gone.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteProduct(t *testing.T) {
	svc := &stubProductService{}
	rec := serve(DeleteProduct(svc, testLogger()), withRouteID(httptest.NewRequest(http.MethodGet, "/delete_product/12", nil), "12"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uint{12}, svc.deleted)
	assert.Equal(t, "/admin", decode(t, rec).Redirect)
}

func TestAdminOrdersLimit(t *testing.T) {
	svc := &stubOrderService{}
	rec := serve(AdminOrders(svc, testLogger()), httptest.NewRequest(http.MethodGet, "/admin/orders", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultLogLimit, svc.limit)

	rec = serve(AdminOrders(svc, testLogger()), httptest.NewRequest(http.MethodGet, "/admin/orders?limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHomeLinksFollowPrincipal(t *testing.T) {
	handler := Home(config.AppConfig{StoreName: "Nia"})

	rec := serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"store_name":"Nia"`)
	assert.Contains(t, body, `"/login"`)
	assert.NotContains(t, body, `"/admin"`)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(middleware.WithPrincipal(req.Context(), middleware.Principal{UserID: 1, Name: "Boss", IsAdmin: true}))
	body = serve(handler, req).Body.String()
	assert.Contains(t, body, `"/admin"`)
	assert.Contains(t, body, `"user":"Boss"`)
}
