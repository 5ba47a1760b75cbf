package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MarcGrol/storefront/lib/myconfig"
	"github.com/MarcGrol/storefront/lib/myhttpclient"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mypubsub"
	"github.com/MarcGrol/storefront/lib/myqueue"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/lib/myuuid"
	"github.com/MarcGrol/storefront/lib/myvault"
	"github.com/MarcGrol/storefront/services/auth"
	"github.com/MarcGrol/storefront/services/catalog"
	"github.com/MarcGrol/storefront/services/checkout"
	"github.com/MarcGrol/storefront/services/orderapi"
	"github.com/MarcGrol/storefront/services/shop"
	"github.com/MarcGrol/storefront/services/warmup"
)

func main() {
	c := context.Background()

	// A missing .env file is fine: the environment may already be complete
	_ = godotenv.Load()

	cfg, err := myconfig.Load()
	if err != nil {
		log.Fatalf("Error loading config: %s", err)
	}

	router := mux.NewRouter()

	vault, vaultCleanup, err := myvault.New(c, cfg)
	if err != nil {
		log.Fatalf("Error creating vault: %s", err)
	}
	defer vaultCleanup()

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating queue: %s", err)
	}
	defer queueCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, mytime.RealNower{})
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})).Methods("GET")

	sender := myhttpclient.New(cfg.HTTPTimeout)
	uuider := myuuid.RealUUIDer{}

	checkouts := checkout.NewService(orderapi.NewClient(sender, cfg.APIBaseURL), publisher, uuider, checkout.NewMetrics(registry))
	authService := auth.New(vault, sender, cfg.APIBaseURL, mytime.RealNower{})

	shopService := shop.NewService(catalog.NewClient(sender, cfg.APIBaseURL), authService, checkouts, publisher, pubsub, uuider, mytime.RealNower{}, cfg.SessionCookieName, cfg.SessionIdleTimeout, cfg.PublicURL)
	err = shopService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering shop endpoints: %s", err)
	}

	warmup.NewService(vault).RegisterEndpoints(c, router)

	startWebServerBlocking(cfg.Port, router)
}

func startWebServerBlocking(port string, router *mux.Router) {
	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
