// Package pdf implementa la generación del comprobante de cobro en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del colegio  │  N° Comprobante + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESPONSABLE: Nombre + Email                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Vencimiento | Estado | Monto              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL A PAGAR                                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Leyenda informativa                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/eduledger-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ledger.ReceiptPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	currency string
	printer  *message.Printer
}

// NewMarotoPDFGenerator construye el generador. currency es la etiqueta de
// moneda que acompaña los montos (ej. "COP").
func NewMarotoPDFGenerator(currency string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{
		currency: currency,
		printer:  message.NewPrinter(language.LatinAmericanSpanish),
	}
}

// GenerateReceiptPDF genera el comprobante de la factura y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReceiptPDF(
	_ context.Context,
	invoice *entity.FeeInvoice,
	tenant *entity.Tenant,
	individual *entity.Individual,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de cobro", true).
		WithAuthor(tenant.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(invoice, tenant))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.responsableRow(individual))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(g.tableHeaderRow())
	m.AddRows(g.detailRow(invoice))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(invoice))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(g.footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del colegio (izq) y N° de comprobante + fecha (der).
func (g *MarotoPDFGenerator) headerRow(invoice *entity.FeeInvoice, tenant *entity.Tenant) core.Row {
	fecha := invoice.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(tenant.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Plan: "+tenant.Tier, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE COBRO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.ID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// responsableRow: datos del individuo responsable del pago.
func (g *MarotoPDFGenerator) responsableRow(individual *entity.Individual) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RESPONSABLE DEL PAGO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(individual.FullName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Email: "+nonEmpty(individual.Email, "—"), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoPDFGenerator) tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Concepto", 6, align.Left),
		h("Vencimiento", 2, align.Center),
		h("Estado", 1, align.Center),
		h("Monto", 3, align.Right),
	)
}

func (g *MarotoPDFGenerator) detailRow(invoice *entity.FeeInvoice) core.Row {
	return row.New(7).Add(
		col.New(6).Add(text.New(
			invoice.Title,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			invoice.DueDate.Format("02/01/2006"),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(1).Add(text.New(
			invoice.Status,
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(3).Add(text.New(
			g.formatAmount(invoice.Amount),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

func (g *MarotoPDFGenerator) totalRow(invoice *entity.FeeInvoice) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(
			text.New("TOTAL A PAGAR:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 2,
			}),
		),
		col.New(3).Add(
			text.New(g.formatAmount(invoice.Amount), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 2,
			}),
		),
	)
}

func (g *MarotoPDFGenerator) footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Este comprobante es informativo y no constituye factura electrónica. "+
				"Conserve el soporte de pago emitido por su entidad financiera.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatAmount formatea el monto con separador de miles según el locale
// es-419 y la etiqueta de moneda configurada. Ej: "$ 25.000 COP".
func (g *MarotoPDFGenerator) formatAmount(amount decimal.Decimal) string {
	f, _ := amount.Float64()
	return g.printer.Sprintf("$ %v %s",
		number.Decimal(f, number.MaxFractionDigits(2)), g.currency)
}
