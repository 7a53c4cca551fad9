// Package headless runs scripted bubble scenarios without a display.
//
// A scenario is a YAML document with a starting state, a list of steps and
// the expected end state. The executor plays each step against a real
// overlay.Manager wired to a recording host, so gesture, delete-zone and
// lifecycle behavior can be checked in CI:
//
//	name: drag/dismiss
//	steps:
//	  - signal: app_started
//	  - pointer: down
//	    x: 40
//	    y: 120
//	  - at: 50ms
//	    pointer: move
//	    x: 500
//	    y: 1700
//	  - tick: 300ms
//	  - pointer: up
//	    x: 500
//	    y: 1700
//	expect:
//	  attached: false
//	  enabled: false
//	  dismissed: true
//	  no_events: [snap_start]
//
// Steps:
//
//   - pointer: down, move, up or cancel at x, y (screen units)
//   - long_press: the host's long-press timer fired
//   - signal: a lifecycle signal such as screen_off or user_present
//   - enable: switch the bubble back on
//   - tick: advance the clock in 16ms animation frames
//   - advance: advance the clock without frames
//   - permission: grant or revoke the draw-over-apps permission
//   - reconfigure: change size, transparency or vibration
//   - restart: shut the process down cleanly and start it again over the same store
//   - lose_surface: the host removes the surface behind the manager's back
//
// Any step may set "at" to jump the clock to an offset from the start and
// "expect" to check the state right after it runs.
//
// With initial.persist set to "file", positions are saved through the config
// package into a temporary config file, and restart reloads them from disk.
//
// Example usage:
//
//	cfg := headless.DefaultConfig("examples/scenarios")
//	cfg.Select.Include = []string{"drag/*"}
//
//	executor, _ := headless.NewExecutor(cfg)
//	if err := executor.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
package headless
