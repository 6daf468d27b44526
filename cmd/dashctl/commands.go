package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-dashboard/internal/application/dashboard"
	"github.com/jhoicas/Inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/Inventario-dashboard/internal/application/lookup"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/pkg/logger"
)

func newLookupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <po|serial>",
		Short: "Buscar por número de PO o de serie (PO tiene precedencia)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := lookup.NewResolver(opts.api(), logger.Nop()).Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printLookup(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func printLookup(w io.Writer, res entity.LookupResult) {
	switch res.Kind {
	case entity.LookupPOBatch:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SKU\tPRODUCTO\tRECIBIDO\tSERIALES")
		for _, b := range res.Batches {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.SKU, b.ProductName, b.ReceivedDate, strings.Join(b.Serials, ", "))
		}
		tw.Flush()
	case entity.LookupUnit:
		u := res.Unit
		fmt.Fprintf(w, "SKU:       %s\nProducto:  %s\nRecibido:  %s\nVendido:   %s\nDañado:    %s\n",
			u.SKU, u.ProductName, u.ReceivedDate, yesNo(u.Sold), yesNo(u.IsDamaged))
	default:
		fmt.Fprintln(w, res.Message())
	}
}

func newWarehouseCmd(opts *rootOptions) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "warehouse",
		Short: "Resumen de bodega por master SKU",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, ok := entity.ParseAggregationMode(mode)
			if !ok {
				return fmt.Errorf("--mode debe ser quantity o serial")
			}
			uc := dashboard.NewUseCase(opts.api(), dashboard.Config{Mode: m}, logger.Nop())
			view, err := uc.Warehouse(cmd.Context(), m)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MASTER SKU\tDESCRIPCIÓN\tCANTIDAD")
			for _, g := range view.Groups {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", g.DisplayID(), g.Description, g.Quantity)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if view.Dropped > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d filas descartadas por datos inválidos\n", view.Dropped)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "quantity", "quantity | serial")
	return cmd
}

func newShipmentsCmd(opts *rootOptions) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "shipments",
		Short: "Log de despachos recientes agrupado por orden",
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc, err := opts.location()
			if err != nil {
				return err
			}
			uc := dashboard.NewUseCase(opts.api(), dashboard.Config{WindowDays: days}, logger.Nop())
			snap, err := uc.RefreshLog(cmd.Context())
			if err != nil {
				return err
			}
			out := dto.NewShipmentLogResponse(snap, loc)
			w := cmd.OutOrStdout()
			if len(out.Orders) == 0 {
				fmt.Fprintf(w, "sin despachos en los últimos %d días\n", out.WindowDays)
				return nil
			}
			for _, o := range out.Orders {
				fmt.Fprintf(w, "Orden %s (%d)\n", o.OrderID, len(o.Entries))
				for _, e := range o.Entries {
					fmt.Fprintf(w, "  %s  %s  %s\n", e.DisplayTime, e.SKU, e.SerialNumber)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "ventana en días")
	return cmd
}

func newManualReviewCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "manual-review",
		Short: "Ítems pendientes de revisión manual",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := dashboard.NewUseCase(opts.api(), dashboard.Config{}, logger.Nop())
			mr, err := uc.ManualReview(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tORDEN\tSKU")
			for _, it := range mr.Items {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", it.ID, it.OrderID, it.SKU)
			}
			return tw.Flush()
		},
	}
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Descargar el reporte mensual",
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, _, err := opts.api().ExportMonthlyReport(cmd.Context())
			if err != nil {
				return err
			}
			defer body.Close()

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("crear %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			n, err := io.Copy(w, body)
			if err != nil {
				return fmt.Errorf("descargar reporte: %w", err)
			}
			if w != cmd.OutOrStdout() {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d bytes escritos en %s\n", n, output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "archivo destino (- = stdout)")
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "sí"
	}
	return "no"
}
