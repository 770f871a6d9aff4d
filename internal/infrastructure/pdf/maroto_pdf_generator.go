// Package pdf implementa los documentos impresos del motor usando Maroto v2:
// el rol de pagos individual y el reporte kardex por lotes de un producto.
//
// Layout del rol de pagos (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + RUC  │  ROL DE PAGOS + Período      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPLEADO: Nombre / Cédula / Cargo                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INGRESOS: Sueldo | Horas extras | Bonos | Total            │
//	│  DESCUENTOS: Aporte IESS | Anticipos | Total                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NETO A RECIBIR                                             │
//	│  FIRMAS: Empleador / Empleado                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	appkardex "github.com/KingHansX/EContable-sub001/internal/application/kardex"
	apppayroll "github.com/KingHansX/EContable-sub001/internal/application/payroll"
	"github.com/KingHansX/EContable-sub001/internal/domain/entity"
	"github.com/KingHansX/EContable-sub001/internal/domain/kardex"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var (
	_ apppayroll.SlipGenerator  = (*MarotoPDFGenerator)(nil)
	_ appkardex.ReportGenerator = (*MarotoPDFGenerator)(nil)
)

// MarotoPDFGenerator implementa los puertos de PDF de nómina y kardex.
type MarotoPDFGenerator struct {
	// ventana de alerta de vencimiento para el estado de los lotes en el reporte.
	ExpiryWindowDays int
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(expiryWindowDays int) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{ExpiryWindowDays: expiryWindowDays}
}

func newDocument(title, author string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()
	return maroto.New(cfg)
}

// ── Rol de pagos ──────────────────────────────────────────────────────────────

// GenerateSlip genera el rol de pagos individual y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSlip(
	_ context.Context,
	company *entity.Company,
	employee *entity.Employee,
	run *entity.PayrollRun,
) ([]byte, error) {
	m := newDocument("Rol de Pagos "+run.Period, company.Name)

	m.AddRows(slipHeaderRow(company, run))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(employeeRow(employee))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("INGRESOS"))
	m.AddRows(amountRow("Sueldo base", run.BaseSalary, false))
	m.AddRows(amountRow("Horas extras", run.Overtime, false))
	m.AddRows(amountRow("Bonificaciones", run.Bonuses, false))
	m.AddRows(subtotalRow("Total ingresos", run.GrossPay))

	m.AddRows(sectionTitleRow("DESCUENTOS"))
	m.AddRows(amountRow("Aporte personal IESS", run.StatutoryContribution, true))
	m.AddRows(amountRow("Anticipos y préstamos", run.Advances, true))
	m.AddRows(subtotalRow("Total descuentos", run.TotalDeductions))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(netPayRow(run.NetPay))

	m.AddRows(line.NewRow(14))
	m.AddRows(signaturesRow(company, employee))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar rol de pagos: %w", err)
	}
	return doc.GetBytes(), nil
}

// slipHeaderRow: Razón social + RUC (izq) y período (der).
func slipHeaderRow(company *entity.Company, run *entity.PayrollRun) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RUC: "+company.RUC, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ROL DE PAGOS", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Período: "+run.Period, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
			text.New("Emitido: "+run.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// employeeRow: datos del empleado.
func employeeRow(employee *entity.Employee) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("EMPLEADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(employee.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Cédula: %s   |   Cargo: %s   |   Ingreso: %s",
				employee.Identification,
				nonEmpty(employee.Position, "—"),
				employee.HireDate.Format("02/01/2006"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

// amountRow: una línea concepto/valor. Los descuentos van en rojo.
func amountRow(label string, amount decimal.Decimal, deduction bool) core.Row {
	valueColor := colorGray
	if deduction {
		valueColor = colorRed
	}
	return row.New(6).Add(
		col.New(8).Add(text.New(label, props.Text{Size: 9, Top: 1, Left: 3})),
		col.New(4).Add(text.New(money(amount), props.Text{
			Size: 9, Align: align.Right, Top: 1, Right: 1, Color: valueColor,
		})),
	)
}

func subtotalRow(label string, amount decimal.Decimal) core.Row {
	return row.New(7).Add(
		col.New(8).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 1, Left: 1,
		})),
		col.New(4).Add(text.New(money(amount), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Right: 1,
		})),
	)
}

func netPayRow(net decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(8).Add(text.New("NETO A RECIBIR", props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2, Left: 1,
		})),
		col.New(4).Add(text.New(money(net), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func signaturesRow(company *entity.Company, employee *entity.Employee) core.Row {
	sig := func(name, role string) core.Col {
		return col.New(6).Add(
			text.New("______________________________", props.Text{
				Size: 9, Align: align.Center, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 6,
			}),
			text.New(role, props.Text{
				Size: 7, Align: align.Center, Top: 11, Color: colorGray,
			}),
		)
	}
	return row.New(16).Add(
		sig(company.Name, "EMPLEADOR"),
		sig(employee.Name, "EMPLEADO"),
	)
}

// ── Reporte kardex ────────────────────────────────────────────────────────────

// GenerateKardexReport genera el kardex por lotes de un producto y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateKardexReport(
	_ context.Context,
	company *entity.Company,
	product *entity.Product,
	lots []*entity.Lot,
	movements []*entity.LotMovement,
) ([]byte, error) {
	m := newDocument("Kardex "+product.SKU, company.Name)
	now := time.Now()

	m.AddRows(kardexHeaderRow(company, product, now))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(productRow(product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("LOTES"))
	m.AddRows(lotTableHeaderRow())
	total := decimal.Zero
	for _, l := range lots {
		m.AddRows(lotRow(l, now, g.ExpiryWindowDays))
		total = total.Add(l.Remaining())
	}
	m.AddRows(subtotalRow("Remanente total", total))

	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitleRow("MOVIMIENTOS"))
	m.AddRows(movementTableHeaderRow())
	for _, mv := range movements {
		m.AddRows(movementRow(mv))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte kardex: %w", err)
	}
	return doc.GetBytes(), nil
}

func kardexHeaderRow(company *entity.Company, product *entity.Product, now time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RUC: "+company.RUC, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("KARDEX POR LOTES", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(product.SKU, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
			text.New("Generado: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func productRow(product *entity.Product) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(product.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 1,
			}),
			text.New(fmt.Sprintf("Unidad: %s   |   Costo promedio: %s",
				nonEmpty(product.UnitMeasure, "—"),
				money(product.UnitCost),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func lotTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Lote", 3, align.Left),
		h("Vence", 2, align.Center),
		h("Recibido", 2, align.Right),
		h("Consumido", 2, align.Right),
		h("Remanente", 2, align.Right),
		h("Estado", 1, align.Center),
	)
}

func lotRow(l *entity.Lot, now time.Time, windowDays int) core.Row {
	status := kardex.Status(l.ExpirationDate, now, windowDays)
	statusColor := colorGray
	if status == entity.LotStatusExpired {
		statusColor = colorRed
	}
	return row.New(6).Add(
		col.New(3).Add(text.New(l.LotNumber, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(l.ExpirationDate.Format("02/01/2006"), props.Text{
			Size: 8, Align: align.Center, Top: 1,
		})),
		col.New(2).Add(text.New(l.ReceivedQty.String(), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
		col.New(2).Add(text.New(l.ConsumedQty.String(), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
		col.New(2).Add(text.New(l.Remaining().String(), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
		col.New(1).Add(text.New(status, props.Text{
			Size: 7, Align: align.Center, Top: 1, Color: statusColor,
		})),
	)
}

func movementTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Center),
		h("Cantidad", 2, align.Right),
		h("Referencia", 6, align.Left),
	)
}

func movementRow(mv *entity.LotMovement) core.Row {
	qtyColor := colorGray
	if mv.Quantity.IsNegative() {
		qtyColor = colorRed
	}
	return row.New(6).Add(
		col.New(2).Add(text.New(mv.Date.Format("02/01/2006"), props.Text{
			Size: 8, Top: 1, Left: 1,
		})),
		col.New(2).Add(text.New(mv.Type, props.Text{
			Size: 8, Align: align.Center, Top: 1,
		})),
		col.New(2).Add(text.New(mv.Quantity.String(), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1, Color: qtyColor,
		})),
		col.New(6).Add(text.New(nonEmpty(mv.Reference, "—"), props.Text{
			Size: 8, Top: 1, Left: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea un monto en dólares con dos decimales.
func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
