// Command stafftoken mints a bearer token for the staff dashboard.
//
//	STAFF_JWT_SECRET=... stafftoken -sub u-1 -name "Mona" -role admin -ttl 720h
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/hardrock-co/agency-platform/internal/access"
	appconfig "github.com/hardrock-co/agency-platform/internal/config"
	"github.com/hardrock-co/agency-platform/internal/http/middleware"
)

func main() {
	_ = godotenv.Load()

	subject := flag.String("sub", "", "user identifier (required)")
	name := flag.String("name", "", "display name")
	roleFlag := flag.String("role", string(access.RoleStaff), "staff or admin")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime; 0 for no expiry")
	flag.Parse()

	if *subject == "" {
		flag.Usage()
		os.Exit(2)
	}
	role, ok := access.ParseRole(*roleFlag)
	if !ok {
		log.Fatalf("unknown role %q", *roleFlag)
	}

	cfg := appconfig.Load()
	token, err := middleware.SignStaffToken(cfg.StaffJWTSecret, access.Principal{
		Subject: *subject,
		Name:    *name,
		Role:    role,
	}, *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(token)
}
