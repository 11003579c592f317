package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rentalmarket/core/internal/auth"
	"github.com/rentalmarket/core/internal/clock"
	"github.com/rentalmarket/core/internal/config"
	"github.com/rentalmarket/core/internal/store"
	"github.com/rentalmarket/core/routes"
)

func main() {
	fmt.Println("Starting rental marketplace API...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		log.Fatalf("running migrations: %v", err)
	}

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := store.New(db)
	issuer := auth.NewTokenIssuer(cfg.JWTSecretKey)
	srv := routes.NewServer(s, clock.System{}, issuer)

	router := gin.Default()
	srv.Register(router)

	fmt.Printf("Server running on port %s\n", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
