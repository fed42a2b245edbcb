package tape

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/tuiwin/internal/geometry"
)

func testOptions() ExecutorOptions {
	return ExecutorOptions{
		Geometry: geometry.Options{
			InitialPosition: geometry.Point{X: 100, Y: 100},
			InitialSize:     geometry.Size{Width: 600, Height: 400},
			MinSize:         geometry.Size{Width: 300, Height: 200},
		},
		Viewport: geometry.Size{Width: 1920, Height: 1080},
	}
}

func TestReplayScenarios(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{
			name: "Drag follows the pointer",
			script: `Drag 110 105
Expect Mode dragging
Expect Listeners 5
Move 160 145
Expect Position 150 140
Release
Expect Mode idle
Expect Listeners 0`,
		},
		{
			name: "Drag clamps at the origin",
			script: `Drag 110 105
Move -500 -500
Expect Position 0 0
Move 5000 3000
Expect Position 4990 2995
Release`,
		},
		{
			name: "West resize keeps the east edge",
			script: `Resize w 100 300
Expect Mode resizing w
Move 160 300
Expect Size 540 400
Expect Position 160 100
Release
Expect Listeners 0`,
		},
		{
			name: "West resize stops at the left edge",
			script: `Resize w 100 300
Move -500 300
Expect Size 700 400
Expect Position 0 100
Release`,
		},
		{
			name: "South east resize clamps to the viewport",
			script: `Viewport 800 600
Resize se 700 500
Move 5000 5000
Expect Size 800 600
Move 0 0
Expect Size 300 200
Expect Position 100 100
Release`,
		},
		{
			name: "North resize respects the minimum",
			script: `Resize n 300 100
Move 300 600
Expect Size 600 200
Expect Position 100 300
Release`,
		},
		{
			name: "Limits apply to the next gesture",
			script: `MaxSize 650 450
Resize se 700 500
Move 900 900
Expect Size 650 450
Release
MinSize 100 100
Resize se 750 550
Move 0 0
Expect Size 100 100
Release`,
		},
		{
			name: "Second gesture is ignored while one is active",
			script: `Drag 110 105
Resize se 700 500
Expect Mode dragging
Expect Listeners 5
Release`,
		},
		{
			name: "Touch drag through the title bar",
			script: `Touch 300 101
Expect Mode dragging
TouchMove 350 151
Expect Position 150 150
TouchEnd
Expect Mode idle
Expect Listeners 0`,
		},
		{
			name: "Touch gesture survives while its touch is down",
			script: `Touch 300 101
TouchEnd 300 101
Expect Mode dragging
TouchCancel
Expect Mode idle
Expect Listeners 0`,
		},
		{
			name: "Press on the bottom right corner resizes",
			script: `Press 699 499
Expect Mode resizing se
Move 749 519
Expect Size 650 420
Release 749 519
Expect Listeners 0`,
		},
		{
			name: "Maximize fills the viewport and restores",
			script: `Maximize
Expect Position 0 0
Expect Size 1920 1080
Maximize
Expect Position 100 100
Expect Size 600 400`,
		},
		{
			name: "Close mid gesture releases listeners",
			script: `Drag 110 105
Close
Expect Mode idle
Expect Listeners 0
Move 200 200
Expect Position 100 100`,
		},
		{
			name: "SetSize does not clamp",
			script: `SetSize 10 10
Expect Size 10 10
SetPosition -5 -5
Expect Position -5 -5`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, err := Replay(context.Background(), tt.script, testOptions())
			if err != nil {
				t.Fatalf("replay failed: %v", err)
			}
			if len(steps) != strings.Count(tt.script, "\n")+1 {
				t.Errorf("Expected one step per line, got %d", len(steps))
			}
		})
	}
}

func TestReplayExpectationFailure(t *testing.T) {
	script := `SetPosition 1 1
Expect Position 2 2
SetPosition 3 3`

	steps, err := Replay(context.Background(), script, testOptions())
	if !errors.Is(err, ErrExpectation) {
		t.Fatalf("Expected ErrExpectation, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "line 2:") {
		t.Errorf("Expected the failing line in %q", err)
	}
	if len(steps) != 1 {
		t.Errorf("Expected 1 completed step, got %d", len(steps))
	}
}

func TestReplayParseErrors(t *testing.T) {
	_, err := Replay(context.Background(), "Press 1\nHover", testOptions())
	if err == nil {
		t.Fatal("expected a parse error")
	}
	for _, want := range []string{"line 1", "line 2"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %q in %q", want, err)
		}
	}
}

func TestReplayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	steps, err := Replay(ctx, "SetPosition 1 1", testOptions())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if len(steps) != 0 {
		t.Errorf("Expected no steps, got %d", len(steps))
	}
}

func TestExecutorSteps(t *testing.T) {
	commands, errs := ParseFile("Resize e 700 300\nMove 720 300\nRelease")
	if len(errs) > 0 {
		t.Fatal(errs)
	}

	e := NewExecutor(testOptions())
	steps, err := e.Run(context.Background(), commands)
	if err != nil {
		t.Fatal(err)
	}

	want := []Step{
		{Line: 1, Command: "Resize e 700 300", Position: geometry.Point{X: 100, Y: 100}, Size: geometry.Size{Width: 600, Height: 400}, Mode: "resizing", Direction: "e", Listeners: 5},
		{Line: 2, Command: "Move 720 300", Position: geometry.Point{X: 100, Y: 100}, Size: geometry.Size{Width: 620, Height: 400}, Mode: "resizing", Direction: "e", Listeners: 5},
		{Line: 3, Command: "Release", Position: geometry.Point{X: 100, Y: 100}, Size: geometry.Size{Width: 620, Height: 400}, Mode: "idle", Listeners: 0},
	}
	if len(steps) != len(want) {
		t.Fatalf("Expected %d steps, got %d", len(want), len(steps))
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("Step %d:\n got %+v\nwant %+v", i, steps[i], want[i])
		}
	}
	if !e.Frame().Closed() {
		t.Error("Run should close the window")
	}
	if e.Document().Len() != 0 {
		t.Error("listeners left behind")
	}
}
