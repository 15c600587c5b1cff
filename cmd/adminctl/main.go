// Command adminctl provisions and updates administrator accounts from the
// server host. There is no self-service registration.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"
	"gorm.io/gorm"

	"github.com/folioworks/core/internal/config"
	"github.com/folioworks/core/internal/database"
	"github.com/folioworks/core/internal/models"
	"github.com/folioworks/core/internal/modules/auth"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	email := flag.String("email", "", "Administrator email (required)")
	password := flag.String("password", "", "Password (prompted when omitted)")
	role := flag.String("role", string(models.RoleAdmin), "Role: admin or superadmin")
	deactivate := flag.Bool("deactivate", false, "Deactivate the account instead of activating it")
	flag.Parse()

	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}
	r := models.AdminRole(*role)
	if r != models.RoleAdmin && r != models.RoleSuperAdmin {
		log.Fatalf("invalid role %q", *role)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	db, err := database.Connect(cfg, true)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	pass := *password
	if pass == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			log.Fatalf("read password: %v", err)
		}
		pass = string(raw)
	}
	if len(pass) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(pass)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	addr := strings.ToLower(strings.TrimSpace(*email))
	var admin models.AdminModel
	err = db.Where("email = ?", addr).First(&admin).Error
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		log.Fatalf("lookup admin: %v", err)
	case err == nil:
		admin.PasswordHash = hash
		admin.Role = r
		admin.Active = !*deactivate
		if err := db.Save(&admin).Error; err != nil {
			log.Fatalf("update admin: %v", err)
		}
		fmt.Printf("updated administrator %s (role=%s active=%t)\n", addr, r, admin.Active)
	default:
		admin = models.AdminModel{
			Email:        addr,
			PasswordHash: hash,
			Role:         r,
			Active:       !*deactivate,
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("create admin: %v", err)
		}
		fmt.Printf("created administrator %s (role=%s active=%t)\n", addr, r, admin.Active)
	}
}
