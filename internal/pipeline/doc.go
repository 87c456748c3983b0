// Package pipeline provides the orchestration logic that turns a scraped
// library batch into enriched markdown notes.
//
// # Manager
//
// The Manager coordinates the entire run:
//
//  1. Locate the newest library batch and load its games
//  2. Resolve the note template (override file or built-in default)
//  3. For each game, in batch order: skip-check → fetch → render → write
//  4. Enforce a fixed delay after every storefront fetch attempt
//  5. Report per-game status and periodic checkpoints
//
// # Basic Usage
//
//	manager := pipeline.NewManager(settings, steam.NewClient("us", "en"), func(event pipeline.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Initialize(ctx); err != nil {
//	    log.Fatal(err) // fatal: no batch found, unreadable batch
//	}
//	if err := manager.Run(ctx); err != nil {
//	    log.Fatal(err) // only cancellation reaches here
//	}
//
// # Sequencing
//
// Processing is strictly sequential by design: one game is fully
// processed before the next begins, so the storefront never sees
// concurrent requests from a run. The inter-request delay is a
// cooperative wait that reacts to context cancellation immediately.
//
// # Failure Semantics
//
// Per-game failures never abort the batch. A failed fetch degrades the
// note to basic fields, a failed template slot keeps its raw text, and a
// failed write is reported distinctly and skipped past. A terminated run
// leaves finished notes intact; the skip check makes the next run resume
// cheaply.
//
// # Progress Tracking
//
// Progress is reported via a callback that receives ProgressEvent values
// with Info, Verbose, Warning, Error, and Success levels. Checkpoint
// lines carry percent complete and an estimate of the remaining
// wall-clock time based on the fixed per-request delay.
package pipeline
