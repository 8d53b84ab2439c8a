package main

import (
	"flag"
	"log"
	"os"

	"github.com/empowered-auth/auth-backend/internal/auth"
	"github.com/empowered-auth/auth-backend/internal/db"
	"github.com/empowered-auth/auth-backend/internal/seeds"
	"github.com/joho/godotenv"
)

func main() {
	file := flag.String("file", "seeds/users.yaml", "path to the users seed file")
	flag.Parse()

	_ = godotenv.Load(".env.local")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	gdb, err := db.Connect(dsn)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := auth.Migrate(gdb); err != nil {
		log.Fatal("Failed to auto-migrate tables: ", err)
	}

	if err := seeds.SeedUsers(gdb, *file); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
}
