package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/hsuden/wellatlas/config"
	"github.com/hsuden/wellatlas/handlers"
	"github.com/hsuden/wellatlas/routes"
	"github.com/hsuden/wellatlas/share"
	"github.com/hsuden/wellatlas/store"
)

var (
	Version   = "dev"
	BuildTime = ""
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version info and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("Version:   %s\n", Version)
		fmt.Printf("BuildTime: %s\n", BuildTime)
		os.Exit(0)
	}

	settings := config.Load()

	db, err := config.Connect(settings)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	if err := config.Migrations(db); err != nil {
		log.Fatalf("could not run migrations: %v", err)
	}

	if settings.SeedDemo {
		if err := config.SeedDemo(db); err != nil {
			log.Printf("Warning: seeding encountered issues: %v", err)
		}
	}

	st := store.New(db)
	shares := share.NewService(st, settings.ShareIncludeDeleted)
	api := handlers.New(st, shares, settings)

	handler := enableCORS(routes.RegisterRoutes(api))
	log.Println("Server starting at port", settings.Port)
	log.Fatal(http.ListenAndServe(":"+settings.Port, handler))
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
