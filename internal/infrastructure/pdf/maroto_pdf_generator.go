// Package pdf genera el reporte imprimible de un plan de pruebas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del plan + proyecto │ Fecha + N° escenarios │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROYECTO: Encargado / Estado / Fechas / Equipo             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Por escenario:                                             │
//	│    ESCENARIO: nombre + descripción                          │
//	│    TABLA: # | Caso | Descripción | Datos | Criterios        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el id del plan + leyenda                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/gestor-pruebas-api/internal/application/ports"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// Ancho aproximado en caracteres de cada columna de texto, para partir líneas.
const (
	wrapNombre      = 16
	wrapDescripcion = 42
	wrapDatos       = 18
	wrapCriterios   = 30
	lineHeight      = 3.6
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.TestPlanPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.TestPlanPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	now func() time.Time
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{now: time.Now}
}

// GenerateTestPlanPDF genera el PDF y devuelve sus bytes. project puede ser nil.
func (g *MarotoPDFGenerator) GenerateTestPlanPDF(_ context.Context, plan *entity.TestPlan, project *entity.Project) ([]byte, error) {
	author := "Gestor de Pruebas"
	if project != nil && project.Encargado != "" {
		author = project.Encargado
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Plan de pruebas: "+plan.NombrePlan, true).
		WithAuthor(author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(plan, project, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(projectRows(plan, project)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(plan.Escenarios) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("El plan no tiene escenarios registrados.", props.Text{
				Size: 9, Top: 3, Color: colorGray, Align: align.Center,
			}),
		)))
	}
	for i, s := range plan.Escenarios {
		m.AddRows(scenarioRows(i+1, s)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(plan))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del plan + proyecto (izq) y fecha + conteos (der).
func headerRow(plan *entity.TestPlan, project *entity.Project, now time.Time) core.Row {
	proyecto := "Proyecto: " + plan.ProyectoID
	if project != nil {
		proyecto = "Proyecto: " + project.Nombre
	}
	casos := 0
	for _, s := range plan.Escenarios {
		casos += len(s.CasosPrueba)
	}

	return row.New(18).Add(
		col.New(8).Add(
			text.New(plan.NombrePlan, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(proyecto, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("PLAN DE PRUEBAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d escenarios / %d casos", len(plan.Escenarios), casos), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// projectRows: datos del proyecto, o un aviso si no existe.
func projectRows(plan *entity.TestPlan, project *entity.Project) []core.Row {
	title := row.New(6).Add(col.New(12).Add(
		text.New("DATOS DEL PROYECTO", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
	))
	if project == nil {
		return []core.Row{title, row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("El proyecto %s no está registrado.", plan.ProyectoID), props.Text{
				Size: 8, Top: 1, Color: colorGray,
			}),
		))}
	}
	return []core.Row{
		title,
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Encargado: %s   |   Estado: %s   |   %s a %s",
				nonEmpty(project.Encargado, "-"),
				nonEmpty(project.Estado, "-"),
				nonEmpty(project.FechaInicio, "-"),
				nonEmpty(project.FechaFin, "-"),
			), props.Text{Size: 8, Top: 1, Color: colorGray}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New("Equipo: "+nonEmpty(strings.Join(project.Equipo, ", "), "-"), props.Text{
				Size: 8, Top: 1, Color: colorGray,
			}),
		)),
	}
}

// scenarioRows: título del escenario y tabla de sus casos.
func scenarioRows(n int, s entity.Scenario) []core.Row {
	rows := []core.Row{
		row.New(4),
		row.New(7).Add(col.New(12).Add(
			text.New(fmt.Sprintf("ESCENARIO %d: %s", n, s.Nombre), props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	desc := wrap(s.Descripcion, 110)
	rows = append(rows, row.New(rowHeight(len(desc))).Add(col.New(12).Add(
		text.New(strings.Join(desc, "\n"), props.Text{Size: 8, Top: 0.5, Color: colorGray}),
	)))

	if len(s.CasosPrueba) == 0 {
		return append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Sin casos de prueba.", props.Text{Size: 8, Top: 1, Left: 2, Color: colorGray}),
		)))
	}
	rows = append(rows, tableHeaderRow())
	for i, tc := range s.CasosPrueba {
		rows = append(rows, testCaseRow(i+1, tc))
	}
	return rows
}

// tableHeaderRow: cabecera de la tabla de casos con fondo azul.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("#", 1, align.Center),
		h("Caso", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Datos de prueba", 2, align.Left),
		h("Criterios de aceptación", 3, align.Left),
	)
}

// testCaseRow: una fila por caso; la altura crece con el texto más largo.
func testCaseRow(n int, tc entity.TestCase) core.Row {
	nombre := wrap(tc.Nombre, wrapNombre)
	desc := wrap(tc.Descripcion, wrapDescripcion)
	datos := wrapItems(tc.DatosPrueba, wrapDatos)
	criterios := wrapItems(tc.CriteriosAceptacion, wrapCriterios)
	lines := max(len(nombre), len(desc), len(datos), len(criterios))

	cell := func(size int, lines []string, a align.Type) core.Col {
		return col.New(size).Add(text.New(strings.Join(lines, "\n"), props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(rowHeight(lines)).Add(
		cell(1, []string{fmt.Sprint(n)}, align.Center),
		cell(2, nombre, align.Left),
		cell(4, desc, align.Left),
		cell(2, datos, align.Left),
		cell(3, criterios, align.Left),
	)
}

// footerRow: QR con la referencia del plan + leyenda.
func footerRow(plan *entity.TestPlan) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr("planesPruebas/"+plan.ID, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Referencia del plan: "+plan.ID, props.Text{
				Size: 8, Top: 6, Left: 3, Color: colorGray,
			}),
			text.New("Documento generado por el Gestor de Pruebas.", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 14, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func rowHeight(lines int) float64 {
	if lines < 1 {
		lines = 1
	}
	return float64(lines)*lineHeight + 3
}

// wrapItems representa cada elemento como viñeta; los objetos se muestran como JSON.
func wrapItems(items []any, width int) []string {
	if len(items) == 0 {
		return []string{"-"}
	}
	var out []string
	for _, it := range items {
		out = append(out, wrap("• "+formatItem(it), width)...)
	}
	return out
}

func formatItem(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}

// wrap parte s en líneas de como máximo width runas, cortando en espacios cuando puede.
func wrap(s string, width int) []string {
	if s == "" {
		return []string{""}
	}
	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		var cur []rune
		for _, word := range strings.Fields(paragraph) {
			w := []rune(word)
			for len(w) > width {
				if len(cur) > 0 {
					lines = append(lines, string(cur))
					cur = nil
				}
				lines = append(lines, string(w[:width]))
				w = w[width:]
			}
			switch {
			case len(cur) == 0:
				cur = w
			case len(cur)+1+len(w) <= width:
				cur = append(append(cur, ' '), w...)
			default:
				lines = append(lines, string(cur))
				cur = w
			}
		}
		if len(cur) > 0 || len(lines) == 0 {
			lines = append(lines, string(cur))
		}
	}
	return lines
}
