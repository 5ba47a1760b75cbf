package shop

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/services/auth"
	"github.com/MarcGrol/storefront/services/cart"
	"github.com/MarcGrol/storefront/services/checkout"
)

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	// Endpoints that compose the userinterface
	router.HandleFunc("/", s.productListPage()).Methods("GET")
	router.HandleFunc("/products", s.productListPage()).Methods("GET")
	router.HandleFunc("/products/{productID}", s.productDetailsPage()).Methods("GET")

	router.HandleFunc("/cart", s.cartPage()).Methods("GET")
	router.HandleFunc("/cart/items", s.addToCartPage()).Methods("POST")
	router.HandleFunc("/cart/items/{productID}/quantity", s.setQuantityPage()).Methods("POST")
	router.HandleFunc("/cart/items/{productID}/delete", s.removeFromCartPage()).Methods("POST")
	router.HandleFunc("/cart/clear", s.clearCartPage()).Methods("POST")

	router.HandleFunc("/checkout", s.checkoutPage()).Methods("GET")
	router.HandleFunc("/checkout", s.submitCheckoutPage()).Methods("POST")

	router.HandleFunc("/login", s.loginPage()).Methods("GET")
	router.HandleFunc("/login", s.submitLoginPage()).Methods("POST")
	router.HandleFunc("/register", s.registerPage()).Methods("GET")
	router.HandleFunc("/register", s.submitRegisterPage()).Methods("POST")
	router.HandleFunc("/logout", s.logoutPage()).Methods("POST")

	router.HandleFunc("/api/cart", s.cartAPI()).Methods("GET")

	// Pubsub pushes order events to this endpoint
	router.HandleFunc("/checkout/event", s.handleEventEnvelope()).Methods("POST")

	return s.Subscribe(c)
}

//go:embed templates
var templateFolder embed.FS
var (
	productListPageTemplate    *template.Template
	productDetailsPageTemplate *template.Template
	cartPageTemplate           *template.Template
	checkoutPageTemplate       *template.Template
	loginPageTemplate          *template.Template
	registerPageTemplate       *template.Template
)

func init() {
	productListPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/product_list.html"))
	productDetailsPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/product_details.html"))
	cartPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/cart.html"))
	checkoutPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/checkout.html"))
	loginPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/login.html"))
	registerPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/register.html"))
}

func (s *webService) productListPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, sess := s.sessionFromRequest(w, r)
		errorWriter := myhttp.NewWriter(s.logger)

		selected, err := categoryFromQuery(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		products, err := s.catalog.ListProducts(c)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		categories, err := s.catalog.ListCategories(c)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		view := newProductListView(products, categories, selected)
		view.CartCount = sess.cart.Count()
		view.Email = sess.auth.Email(c)
		view.Authenticated = view.Email != ""

		s.render(c, w, http.StatusOK, productListPageTemplate, view)
	}
}

func (s *webService) productDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, sess := s.sessionFromRequest(w, r)
		errorWriter := myhttp.NewWriter(s.logger)

		productID, err := productIDFromPath(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		product, err := s.catalog.GetProduct(c, productID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		view := newProductDetailsView(product)
		view.CartCount = sess.cart.Count()
		view.Email = sess.auth.Email(c)
		view.Authenticated = view.Email != ""

		s.render(c, w, http.StatusOK, productDetailsPageTemplate, view)
	}
}

func (s *webService) cartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, sess := s.sessionFromRequest(w, r)

		s.render(c, w, http.StatusOK, cartPageTemplate, s.cartView(c, sess))
	}
}

func (s *webService) cartAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, sess := s.sessionFromRequest(w, r)

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, s.cartView(c, sess))
	}
}

func (s *webService) addToCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, sess := s.sessionFromRequest(w, r)
		errorWriter := myhttp.NewWriter(s.logger)

		form := addToCartForm{}
		err := decodeForm(r, &form)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		product, err := s.catalog.GetProduct(c, cart.ProductID(form.ProductID))
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		if !product.InStock {
			errorWriter.WriteError(c, w, 3, myerrors.NewConflictError(fmt.Errorf("product %d is out of stock", product.ID)))
			return
		}

		sess.cart.AddItem(product.ToCartProduct())

		myhttp.RedirectAfterPost(w, r, "/cart")
	}
}

func (s *webService) setQuantityPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, sess := s.sessionFromRequest(w, r)
		errorWriter := myhttp.NewWriter(s.logger)

		productID, err := productIDFromPath(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		form := setQuantityForm{}
		err = decodeForm(r, &form)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		sess.cart.SetQuantity(productID, *form.Quantity)

		myhttp.RedirectAfterPost(w, r, "/cart")
	}
}

func (s *webService) removeFromCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, sess := s.sessionFromRequest(w, r)

		productID, err := productIDFromPath(r)
		if err != nil {
			myhttp.NewWriter(s.logger).WriteError(c, w, 1, err)
			return
		}

		sess.cart.RemoveItem(productID)

		myhttp.RedirectAfterPost(w, r, "/cart")
	}
}

func (s *webService) clearCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, sess := s.sessionFromRequest(w, r)

		sess.cart.Clear()

		myhttp.RedirectAfterPost(w, r, "/cart")
	}
}

func (s *webService) checkoutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, sess := s.sessionFromRequest(w, r)

		sess.checkout.Enter()

		s.render(c, w, http.StatusOK, checkoutPageTemplate, s.cartView(c, sess))
	}
}

func (s *webService) submitCheckoutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, sess := s.sessionFromRequest(w, r)
		errorWriter := myhttp.NewWriter(s.logger)

		result := sess.checkout.Checkout(c)
		if errors.Is(result.Err, checkout.ErrNotAuthenticated) {
			myhttp.RedirectAfterPost(w, r, "/login")
			return
		}
		if errors.Is(result.Err, checkout.ErrSubmissionInProgress) {
			errorWriter.WriteError(c, w, 1, myerrors.NewConflictError(result.Err))
			return
		}

		// A failed submission is shown on the page: the cart is still intact so the user can retry.
		view := s.cartView(c, sess)
		view.OrderID = result.Confirmation.OrderID
		s.render(c, w, http.StatusOK, checkoutPageTemplate, view)
	}
}

func (s *webService) loginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, _ := s.sessionFromRequest(w, r)

		s.render(c, w, http.StatusOK, loginPageTemplate, authView{})
	}
}

func (s *webService) submitLoginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, sess := s.sessionFromRequest(w, r)

		creds := auth.Credentials{}
		err := decodeForm(r, &creds)
		if err == nil {
			err = s.auth.Login(c, sess.uid, creds)
		}
		if err != nil {
			s.render(c, w, myerrors.GetHTTPStatus(err), loginPageTemplate, authView{Email: creds.Email, Error: err.Error()})
			return
		}

		myhttp.RedirectAfterPost(w, r, "/")
	}
}

func (s *webService) registerPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, _ := s.sessionFromRequest(w, r)

		s.render(c, w, http.StatusOK, registerPageTemplate, authView{})
	}
}

func (s *webService) submitRegisterPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, _ := s.sessionFromRequest(w, r)

		reg := auth.Registration{}
		err := decodeForm(r, &reg)
		if err == nil {
			err = s.auth.Register(c, reg)
		}
		if err != nil {
			s.render(c, w, myerrors.GetHTTPStatus(err), registerPageTemplate, authView{Email: reg.Email, Error: err.Error()})
			return
		}

		myhttp.RedirectAfterPost(w, r, "/login")
	}
}

func (s *webService) logoutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, sess := s.sessionFromRequest(w, r)

		err := s.auth.Logout(c, sess.uid)
		if err != nil {
			myhttp.NewWriter(s.logger).WriteError(c, w, 1, err)
			return
		}

		myhttp.RedirectAfterPost(w, r, "/")
	}
}

func (s *webService) cartView(c context.Context, sess *session) cartView {
	view := newCartView(sess.cart.Snapshot(), sess.checkout.Status())
	view.Email = sess.auth.Email(c)
	view.Authenticated = view.Email != ""
	return view
}

func (s *webService) render(c context.Context, w http.ResponseWriter, httpStatus int, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(httpStatus)
	err := tmpl.Execute(w, data)
	if err != nil {
		s.logger.Log(c, mycontext.SessionUIDFromContext(c), mylog.SeverityError, "Error rendering %s: %s", tmpl.Name(), err)
	}
}
