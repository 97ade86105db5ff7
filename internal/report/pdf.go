package report

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	headerBg   = &props.Color{Red: 33, Green: 37, Blue: 41}
	stripeBg   = &props.Color{Red: 245, Green: 245, Blue: 245}
	mutedColor = &props.Color{Red: 120, Green: 120, Blue: 120}
)

// PDF renders rep as an A4 portrait document.
func PDF(rep Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   mutedColor,
		}).
		Build()

	m := maroto.New(cfg)

	addTitle(m, rep)
	addTable(m, "Parámetros", rep.Parameters)
	addTable(m, "Resultados", rep.Results)
	if len(rep.Ingredients) > 0 {
		addMixture(m, rep)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}

	return doc.GetBytes(), nil
}

func addTitle(m core.Maroto, rep Report) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(rep.Title, props.Text{Size: 15, Style: fontstyle.Bold, Align: align.Center}),
			),
		),
		row.New(8).Add(
			col.New(6).Add(
				text.New("Tema: "+rep.ThemeKey, props.Text{Size: 9, Align: align.Left, Color: mutedColor}),
			),
			col.New(6).Add(
				text.New("Fecha: "+rep.CreatedDate, props.Text{Size: 9, Align: align.Right, Color: mutedColor}),
			),
		),
		row.New(4),
	)
}

func addTable(m core.Maroto, heading string, rows []Row) {
	head := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left, Color: &props.Color{Red: 255, Green: 255, Blue: 255}}
	headCell := &props.Cell{BackgroundColor: headerBg}
	m.AddRows(
		row.New(8).Add(
			col.New(3).Add(text.New(heading, head)).WithStyle(headCell),
			col.New(5).Add(text.New("Concepto", head)).WithStyle(headCell),
			col.New(3).Add(text.New("Valor", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: head.Color})).WithStyle(headCell),
			col.New(1).Add(text.New("", head)).WithStyle(headCell),
		),
	)

	body := props.Text{Size: 8, Align: align.Left}
	right := body
	right.Align = align.Right
	for i, r := range rows {
		cols := []core.Col{
			col.New(3).Add(text.New(r.Group, body)),
			col.New(5).Add(text.New(r.Label, body)),
			col.New(3).Add(text.New(formatValue(r.Value), right)),
			col.New(1).Add(text.New(r.Unit, body)),
		}
		if i%2 == 1 {
			for j := range cols {
				cols[j] = cols[j].WithStyle(&props.Cell{BackgroundColor: stripeBg})
			}
		}
		m.AddRows(row.New(6).Add(cols...))
	}
	m.AddRows(row.New(6))
}

func addMixture(m core.Maroto, rep Report) {
	rows := make([]Row, 0, len(rep.Ingredients))
	for _, ing := range rep.Ingredients {
		rows = append(rows, Row{Group: fmt.Sprintf("%s%%", formatValue(ing.Percent)), Label: ing.Name, Value: ing.CostPerKg, Unit: "MXN/kg"})
	}
	addTable(m, "Mezcla", rows)
}
