package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/tuiwin/internal/geometry"
	"github.com/Gaurav-Gosain/tuiwin/internal/tape"
	"github.com/charmbracelet/log"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

type replayOptions struct {
	Format   string
	Viewport string
	Realtime bool
	Out      io.Writer
}

func runReplay(ctx context.Context, path string, opts replayOptions) error {
	cfg := loadConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	viewport, err := parseViewport(opts.Viewport)
	if err != nil {
		return err
	}

	steps, runErr := tape.Replay(ctx, string(data), tape.ExecutorOptions{
		Geometry: cfg.GeometryOptions(),
		Viewport: viewport,
		Realtime: opts.Realtime,
		Logger:   log.WithPrefix("replay"),
	})
	if err := writeSteps(opts.Out, steps, opts.Format); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("%s: %w", path, runErr)
	}
	return nil
}

// parseViewport parses "WxH". An empty string means the size of the
// controlling terminal, or 80x24 without one.
func parseViewport(s string) (geometry.Size, error) {
	if s == "" {
		w, h, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || w <= 0 || h <= 0 {
			return geometry.Size{Width: 80, Height: 24}, nil
		}
		return geometry.Size{Width: w, Height: h}, nil
	}

	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return geometry.Size{}, fmt.Errorf("invalid viewport %q: want WxH", s)
	}
	w, errW := strconv.Atoi(ws)
	h, errH := strconv.Atoi(hs)
	if err := errors.Join(errW, errH); err != nil || w <= 0 || h <= 0 {
		return geometry.Size{}, fmt.Errorf("invalid viewport %q: want positive WxH", s)
	}
	return geometry.Size{Width: w, Height: h}, nil
}

func writeSteps(w io.Writer, steps []tape.Step, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(steps)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(steps); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		_, err := fmt.Fprintln(w, stepsTable(steps))
		return err
	}
	return fmt.Errorf("unknown format %q: want text, json or yaml", format)
}

func stepsTable(steps []tape.Step) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)

	cellStyle := lipgloss.NewStyle().
		Padding(0, 1)

	rows := make([][]string, 0, len(steps))
	for _, s := range steps {
		mode := s.Mode
		if s.Direction != "" {
			mode += " " + s.Direction
		}
		rows = append(rows, []string{
			strconv.Itoa(s.Line),
			s.Command,
			s.Position.String(),
			s.Size.String(),
			mode,
			strconv.Itoa(s.Listeners),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("Line", "Command", "Position", "Size", "Mode", "Listeners").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}
