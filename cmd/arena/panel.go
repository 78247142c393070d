package main

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/parrycore/component"
	"golang.org/x/image/font/gofont/goregular"
)

const panelRows = 8

// StatsPanel lists each enemy's AI state next to the arena.
type StatsPanel struct {
	ui     *ebitenui.UI
	title  *widget.Label
	rows   []*widget.Label
	tuning *widget.Label
}

func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func NewStatsPanel() (*StatsPanel, error) {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	var face text.Face = &text.GoTextFace{Source: s, Size: 13}
	labelColor := &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}
	newLabel := func(s string) *widget.Label {
		return widget.NewLabel(widget.LabelOpts.Text(s, &face, labelColor))
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(280, 220),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{20, 20, 20, 200})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(4),
			),
		),
	)

	p := &StatsPanel{title: newLabel("enemies"), tuning: newLabel("")}
	panel.AddChild(p.title)
	for i := 0; i < panelRows; i++ {
		row := newLabel("")
		p.rows = append(p.rows, row)
		panel.AddChild(row)
	}
	panel.AddChild(p.tuning)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	p.ui = &ebitenui.UI{Container: root}
	return p, nil
}

// Refresh copies the current encounter state into the labels.
func (p *StatsPanel) Refresh(enemies []*component.Combatant, tuning component.CombatTuning) {
	p.title.Label = fmt.Sprintf("enemies (%d)", len(enemies))
	for i, row := range p.rows {
		if i >= len(enemies) {
			row.Label = ""
			continue
		}
		e := enemies[i]
		if e.Enemy == nil {
			row.Label = e.Name
			continue
		}
		row.Label = fmt.Sprintf("%-8s %-10s aggr %.2f combo %d", e.Name, e.State, e.Enemy.Aggression, e.Enemy.ComboCount)
	}
	p.tuning.Label = fmt.Sprintf("parry x%.1f  block %.2f  exec x%.1f", tuning.ParryPostureMultiplier, tuning.BlockFactor, tuning.ExecuteMultiplier)
}

func (p *StatsPanel) Update() {
	p.ui.Update()
}

func (p *StatsPanel) Draw(screen *ebiten.Image) {
	p.ui.Draw(screen)
}
