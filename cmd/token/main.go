// token emite un JWT de desarrollo para el servicio de inventario, o el hash bcrypt
// de una contraseña para AUTH_OPERATORS.
//
// Uso:
//
//	JWT_SECRET=... go run ./cmd/token [operador]
//	go run ./cmd/token -hash <contraseña>
//
// Imprime solo el resultado para poder exportarlo: export REMOTE_TOKEN=$(go run ./cmd/token caja-1)
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Inventario-tiendas/internal/application/auth"
	"github.com/jhoicas/Inventario-tiendas/pkg/config"
	"github.com/jhoicas/Inventario-tiendas/pkg/jwt"
)

func main() {
	hash := flag.String("hash", "", "imprime el hash bcrypt de la contraseña indicada")
	flag.Parse()

	if *hash != "" {
		h, err := auth.HashPassword(*hash)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Generar hash: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(h)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no configurado")
		os.Exit(1)
	}

	operator := "dev"
	if flag.NArg() > 0 {
		operator = flag.Arg(0)
	}
	token, err := jwt.Generate(cfg.JWT.Secret, operator, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
