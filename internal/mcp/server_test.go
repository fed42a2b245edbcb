package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/tuiwin/internal/geometry"
	"github.com/Gaurav-Gosain/tuiwin/internal/tape"
)

func TestHandleReplay(t *testing.T) {
	s := NewServer(geometry.Options{})

	_, out, err := s.handleReplay(context.Background(), nil, ReplayInput{
		Script: "Drag 110 105\nMove 160 145\nRelease\nExpect Position 150 140",
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Failure != "" {
		t.Errorf("unexpected failure %q", out.Failure)
	}
	if len(out.Steps) != 4 {
		t.Fatalf("got %d steps, want 4", len(out.Steps))
	}
	if out.Steps[0].Mode != "dragging" || out.Steps[2].Listeners != 0 {
		t.Errorf("steps %+v", out.Steps)
	}
}

func TestHandleReplayViewport(t *testing.T) {
	s := NewServer(geometry.Options{})

	_, out, err := s.handleReplay(context.Background(), nil, ReplayInput{
		Script:         "Resize se 700 500\nMove 5000 5000\nExpect Size 800 600",
		ViewportWidth:  800,
		ViewportHeight: 600,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Failure != "" {
		t.Errorf("unexpected failure %q", out.Failure)
	}
}

func TestHandleReplayFailures(t *testing.T) {
	s := NewServer(geometry.Options{})

	t.Run("expectation", func(t *testing.T) {
		_, out, err := s.handleReplay(context.Background(), nil, ReplayInput{
			Script: "SetSize 10 10\nExpect Size 20 20",
		})
		if err != nil {
			t.Fatalf("expectation failures are reported in the output, got %v", err)
		}
		if !strings.Contains(out.Failure, "line 2") || len(out.Steps) != 1 {
			t.Errorf("output %+v", out)
		}
	})

	t.Run("parse error", func(t *testing.T) {
		_, _, err := s.handleReplay(context.Background(), nil, ReplayInput{Script: "Wiggle"})
		if err == nil || errors.Is(err, tape.ErrExpectation) {
			t.Errorf("expected a parse error, got %v", err)
		}
	})

	t.Run("empty script", func(t *testing.T) {
		_, out, err := s.handleReplay(context.Background(), nil, ReplayInput{})
		if err != nil {
			t.Fatal(err)
		}
		if out.Steps == nil || len(out.Steps) != 0 {
			t.Errorf("expected an empty step list, got %#v", out.Steps)
		}
	})
}

func TestHandleResize(t *testing.T) {
	s := NewServer(geometry.Options{})

	tests := []struct {
		name    string
		input   ResizeInput
		want    ResizeOutput
		wantErr bool
	}{
		{
			name:  "east grows",
			input: ResizeInput{X: 100, Y: 100, Width: 600, Height: 400, Direction: "e", DeltaX: 50},
			want:  ResizeOutput{X: 100, Y: 100, Width: 650, Height: 400},
		},
		{
			name:  "west shrinks and moves",
			input: ResizeInput{X: 100, Y: 100, Width: 600, Height: 400, Direction: "w", DeltaX: 60},
			want:  ResizeOutput{X: 160, Y: 100, Width: 540, Height: 400},
		},
		{
			name:  "minimum holds the opposite edge",
			input: ResizeInput{X: 100, Y: 100, Width: 600, Height: 400, Direction: "NW", DeltaX: 500, DeltaY: 500},
			want:  ResizeOutput{X: 400, Y: 300, Width: 300, Height: 200},
		},
		{
			name:  "maximum",
			input: ResizeInput{X: 0, Y: 0, Width: 600, Height: 400, Direction: "se", DeltaX: 900, DeltaY: 900, MaxWidth: 800, MaxHeight: 500},
			want:  ResizeOutput{X: 0, Y: 0, Width: 800, Height: 500},
		},
		{
			name:    "bad direction",
			input:   ResizeInput{Width: 600, Height: 400, Direction: "up"},
			wantErr: true,
		},
		{
			name:    "missing direction",
			input:   ResizeInput{Width: 600, Height: 400},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got, err := s.handleResize(context.Background(), nil, tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("handleResize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("handleResize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
