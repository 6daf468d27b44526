// Command dashctl consulta el dashboard de inventario desde la terminal:
// búsqueda por PO/serial, resumen de bodega, log de despachos y reporte mensual.
package main

import (
	"fmt"
	"io"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-dashboard/internal/application/ports"
	"github.com/jhoicas/Inventario-dashboard/internal/infrastructure/inventoryapi"
	"github.com/jhoicas/Inventario-dashboard/pkg/config"
	"github.com/jhoicas/Inventario-dashboard/pkg/logger"
)

// apiFactory construye el cliente una vez parseados los flags.
type apiFactory func(baseURL string, timeout time.Duration, log *logger.Logger) ports.InventoryAPI

type rootOptions struct {
	baseURL  string
	timeout  time.Duration
	verbose  bool
	timezone string
	newAPI   apiFactory
}

func (o *rootOptions) api() ports.InventoryAPI {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, Out: os.Stderr})
	return o.newAPI(o.baseURL, o.timeout, log)
}

func (o *rootOptions) location() (*time.Location, error) {
	loc, err := time.LoadLocation(o.timezone)
	if err != nil {
		return nil, fmt.Errorf("zona horaria %q: %w", o.timezone, err)
	}
	return loc, nil
}

func newRootCmd(newAPI apiFactory, out io.Writer) *cobra.Command {
	opts := &rootOptions{newAPI: newAPI}

	// Defaults desde la misma configuración que el servidor (env / .env).
	baseURL, tz, timeout := "http://localhost:8000", "America/Los_Angeles", 15*time.Second
	if cfg, err := config.Load(); err == nil {
		baseURL, tz, timeout = cfg.Inventory.BaseURL, cfg.Dashboard.DisplayTimezone, cfg.Inventory.Timeout()
	}

	root := &cobra.Command{
		Use:           "dashctl",
		Short:         "Consultas al dashboard de inventario",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", baseURL, "URL base de la API de inventario")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", timeout, "timeout por llamada")
	root.PersistentFlags().StringVar(&opts.timezone, "tz", tz, "zona horaria para mostrar fechas")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log de depuración en stderr")

	root.AddCommand(
		newLookupCmd(opts),
		newWarehouseCmd(opts),
		newShipmentsCmd(opts),
		newManualReviewCmd(opts),
		newReportCmd(opts),
	)
	return root
}

func defaultAPI(baseURL string, timeout time.Duration, log *logger.Logger) ports.InventoryAPI {
	return inventoryapi.NewClient(inventoryapi.Config{BaseURL: baseURL, Timeout: timeout}, log)
}

func main() {
	if err := newRootCmd(defaultAPI, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
