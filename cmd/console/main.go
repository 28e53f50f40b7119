// console cliente interactivo de inventario por tienda contra la API REST.
//
// Uso: REMOTE_BASE_URL=http://localhost:4000 go run ./cmd/console 2>console.log
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhoicas/Inventario-tiendas/internal/application/editor"
	"github.com/jhoicas/Inventario-tiendas/internal/infrastructure/remote"
	"github.com/jhoicas/Inventario-tiendas/internal/interfaces/cli"
	"github.com/jhoicas/Inventario-tiendas/pkg/config"
	"github.com/jhoicas/Inventario-tiendas/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	// stdout queda para la interfaz.
	log := logger.New(logger.Config{
		Env:    cfg.App.Env,
		Level:  cfg.Log.Level,
		Output: os.Stderr,
	})
	log.Info().Str("service", cfg.Remote.BaseURL).Msg("iniciando consola")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.Token, cfg.Remote.Timeout, log)
	if cfg.Remote.Token == "" && cfg.Remote.Operator != "" {
		if err := client.Login(ctx, cfg.Remote.Operator, cfg.Remote.Password); err != nil {
			log.Error().Err(err).Str("operator", cfg.Remote.Operator).Msg("no se pudo iniciar sesión")
			os.Exit(1)
		}
	}
	ed := editor.New(client, client, log)

	err = cli.Run(ctx, cli.NewModel(ctx, ed, log))
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("consola finalizada con error")
		os.Exit(1)
	}
}
