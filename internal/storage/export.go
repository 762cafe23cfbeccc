package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/eca/internal/metrics"
	"github.com/san-kum/eca/internal/render"
)

type ExportData struct {
	ID          string             `json:"id"`
	Rule        uint8              `json:"rule"`
	Cells       int                `json:"cells"`
	Wrap        bool               `json:"wrap"`
	Generations int                `json:"generations"`
	Seed        int64              `json:"seed"`
	Rows        []string           `json:"rows"`
	Population  []int              `json:"population"`
	Metrics     map[string]float64 `json:"metrics"`
}

// ExportJSON writes the run and its history as one indented JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, history [][]bool) error {
	data := ExportData{
		ID:          meta.ID,
		Rule:        meta.Rule,
		Cells:       meta.Cells,
		Wrap:        meta.Wrap,
		Generations: meta.Generations,
		Seed:        meta.Seed,
		Rows:        make([]string, len(history)),
		Population:  make([]int, len(history)),
		Metrics:     meta.Metrics,
	}

	f := render.NewFormatter(render.DefaultLive, render.DefaultDead)
	for i, cells := range history {
		data.Rows[i] = f.Render(cells)
		data.Population[i] = metrics.Count(cells)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes one record per generation: index, population, density and
// the rendered row.
func ExportCSV(w io.Writer, history [][]bool) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"generation", "population", "density", "cells"}); err != nil {
		return err
	}

	f := render.NewFormatter(render.DefaultLive, render.DefaultDead)
	for i, cells := range history {
		pop := metrics.Count(cells)
		density := 0.0
		if len(cells) > 0 {
			density = float64(pop) / float64(len(cells))
		}
		row := []string{
			strconv.Itoa(i),
			strconv.Itoa(pop),
			strconv.FormatFloat(density, 'f', 6, 64),
			f.Render(cells),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
