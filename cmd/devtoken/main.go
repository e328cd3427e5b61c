// devtoken emite un JWT de desarrollo para probar la API del dashboard sin el
// backend POS. Usa JWT_SECRET y JWT_ISSUER de la configuración.
//
// Uso: go run ./cmd/devtoken <company_id> [user_id] [role]
// Por defecto user_id = "dev-user" y role = "admin". El token vence en 12 h.
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/pos-discount-dashboard/pkg/config"
	"github.com/jhoicas/pos-discount-dashboard/pkg/jwt"
)

const expMinutes = 12 * 60

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: devtoken <company_id> [user_id] [role]")
		os.Exit(2)
	}
	companyID := os.Args[1]
	userID := argOr(2, "dev-user")
	role := argOr(3, jwt.RoleAdmin)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, userID, companyID, role, cfg.JWT.Issuer, expMinutes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}

func argOr(i int, def string) string {
	if len(os.Args) > i && os.Args[i] != "" {
		return os.Args[i]
	}
	return def
}
