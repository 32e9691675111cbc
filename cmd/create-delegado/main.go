package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"custodia360/config"
	"custodia360/db"
	"custodia360/models"
	"custodia360/services"

	"golang.org/x/term"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Entidad{}, &models.Delegado{}, &models.Session{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Delegado ===")
	fmt.Println()

	fmt.Print("Nombre: ")
	nombre, _ := reader.ReadString('\n')
	nombre = strings.TrimSpace(nombre)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Printf("Rol (%s/%s/%s) [%s]: ", models.RolAdmin, models.RolDelegadoPrincipal, models.RolDelegadoSuplente, models.RolAdmin)
	rol, _ := reader.ReadString('\n')
	rol = strings.TrimSpace(rol)
	if rol == "" {
		rol = models.RolAdmin
	}

	// Get password securely
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	password := string(passwordBytes)
	fmt.Println() // New line after password input

	// Validate inputs
	if nombre == "" || email == "" || password == "" {
		log.Fatal("Nombre, email, and password are required")
	}

	if len(password) < 8 {
		log.Fatal("Password must be at least 8 characters long")
	}

	if !models.IsValidRol(rol) {
		log.Fatalf("Invalid rol: %s", rol)
	}

	// Check if delegate already exists
	var existing models.Delegado
	if err := db.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Fatalf("Delegado with email %s already exists", email)
	}

	// Hash password
	hashedPassword, err := services.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// Create delegate (without entity; admins have none and delegates
	// get theirs assigned during contracting)
	delegado := &models.Delegado{
		Nombre:    nombre,
		Email:     email,
		Password:  hashedPassword,
		EntidadID: nil,
		Rol:       rol,
		IsActive:  true,
	}

	if err := db.DB.Create(delegado).Error; err != nil {
		log.Fatalf("Failed to create delegado: %v", err)
	}

	fmt.Println()
	fmt.Println("✓ Delegado created successfully!")
	fmt.Printf("  ID: %s\n", delegado.ID)
	fmt.Printf("  Nombre: %s\n", delegado.Nombre)
	fmt.Printf("  Email: %s\n", delegado.Email)
	fmt.Printf("  Rol: %s\n", delegado.Rol)
	fmt.Println()
	fmt.Printf("They can now log in via POST %s/api/login\n", cfg.AppURL)
}
