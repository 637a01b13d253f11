package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Azizyco/WarmindoGenzC/internal/cart"
	"github.com/Azizyco/WarmindoGenzC/internal/catalog"
	"github.com/Azizyco/WarmindoGenzC/internal/checkout"
	"github.com/Azizyco/WarmindoGenzC/internal/handler"
	"github.com/Azizyco/WarmindoGenzC/internal/intake"
	"github.com/Azizyco/WarmindoGenzC/internal/order"
	"github.com/Azizyco/WarmindoGenzC/internal/payment"
	"github.com/Azizyco/WarmindoGenzC/internal/queue"
	"github.com/Azizyco/WarmindoGenzC/internal/recommend"
)

// Deps carries the wired services the router exposes over HTTP.
type Deps struct {
	Catalog   catalog.Service
	Intake    intake.Service
	Cart      cart.Service
	Checkout  checkout.Service
	Orders    order.Repository
	Payment   payment.Service
	Queue     *queue.Watcher
	Recommend recommend.Provider
}

func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(recovery)
	r.Use(requestLogger)
	r.Use(corsMiddleware(defaultCORSOptions()))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	catalogH := handler.NewCatalogHandler(deps.Catalog)
	intakeH := handler.NewIntakeHandler(deps.Intake)
	cartH := handler.NewCartHandler(deps.Cart)
	checkoutH := handler.NewCheckoutHandler(deps.Checkout, deps.Orders)
	paymentH := handler.NewPaymentHandler(deps.Payment)
	queueH := handler.NewQueueHandler(deps.Queue)
	chatH := handler.NewChatHandler(deps.Recommend)

	r.Route("/api", func(r chi.Router) {
		r.Get("/menus", catalogH.ListMenus)
		r.Get("/categories", catalogH.ListCategories)

		r.Post("/intake", intakeH.Save)
		r.Get("/intake", intakeH.Load)
		r.Delete("/intake", intakeH.Clear)
		r.Get("/tables/free", intakeH.FreeTables)

		r.Get("/cart", cartH.Get)
		r.Post("/cart/items", cartH.Add)
		r.Patch("/cart/items/{index}", cartH.ChangeQuantity)
		r.Delete("/cart/items/{index}", cartH.Remove)

		r.Post("/checkout", checkoutH.Submit)
		r.Get("/orders/{id}", checkoutH.Receipt)

		r.Get("/pay/{code}", paymentH.Lookup)
		r.Post("/pay/{code}/proof", paymentH.SubmitProof)

		r.Get("/queue", queueH.Snapshot)

		r.Post("/chat", chatH.Recommend)
	})

	return r
}
