package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	log.Println("========================================")
	log.Println("🚀 No-Fly Polygon Estimator")
	log.Println("========================================")

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	catalog, err := LoadZoneCatalog(cfg.ZonesFile)
	if err != nil {
		log.Fatalf("❌ Failed to load no-fly zones: %v", err)
	}

	builder := NewRecordBuilder(cfg.PricePerSquareMeter, cfg.NamePrefix)
	builder.IDs = newIDSource(cfg.IDSource)

	server := NewServer(catalog, NewPolygonStore(), builder, newDispatcher(cfg.DispatchURL, cfg.DispatchTimeout))

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      server.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	log.Printf("Server starting on %s\n", cfg.ServerAddr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  GET    /health                  - Check server status")
	log.Println("  GET    /zones                   - No-fly zones as GeoJSON")
	log.Println("  POST   /check                   - Overlapping zones for a ring")
	log.Println("  POST   /polygons/draft          - Estimate a drawn polygon")
	log.Println("  POST   /polygons/{id}/save      - Save a draft")
	log.Println("  GET    /polygons                - List saved polygons (?q=&sort=)")
	log.Println("  GET    /polygons/{id}           - Get a polygon")
	log.Println("  PATCH  /polygons/{id}           - Rename a saved polygon")
	log.Println("  DELETE /polygons/{id}           - Delete a polygon")
	log.Println("  POST   /polygons/{id}/dispatch  - Send to the drone operator")
	log.Printf("  Price: %.2f per m², zones: %d\n", cfg.PricePerSquareMeter, catalog.Len())
	log.Println("========================================")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ HTTP server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️  HTTP server shutdown error: %v\n", err)
	}
	log.Println("HTTP server stopped")
}
