// Package thecube is a 3x3x3 twisty-puzzle simulation: a scene-graph cube
// turned by pointer drags or notation, a scrambler, a solve timer and score
// keeping, and persistence of the best time.
//
// # Quick Start
//
// Drive a game headlessly with a deterministic clock:
//
//	clock := animation.NewManualClock(time.Now())
//	g, err := thecube.New(thecube.WithClock(clock.Now))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer g.Close()
//
//	g.OnComplete(func(r thecube.Result) {
//	    fmt.Println("Solved in", r.Text)
//	})
//
//	g.StartWith("R U R' U'")
//	animation.DrainUntil(g.Scheduler(), clock, 16*time.Millisecond, 1000, g.Idle)
//	g.Turn("U R U' R'")
//	animation.DrainUntil(g.Scheduler(), clock, 16*time.Millisecond, 1000, g.Idle)
//
// # Front Ends
//
// Pointer input reaches the cube through HandlePointer as gesture events in
// viewport pixels. The caller owns the frame source: it passes a
// FrameRequester with WithFrames and calls Scheduler().Frame() when a frame
// is due. All methods must be called from that one goroutine.
package thecube
