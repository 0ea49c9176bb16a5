// Package viz is the interactive terminal visualizer built on Bubble Tea.
//
//   - [App]: algorithm menu in front of the visualizer
//   - [Model]: one algorithm, its bars, highlighted listing and stats
//   - [Canvas]: braille bars for arrays too wide for block bars
//
// # Key Bindings
//
//	s      - Start the algorithm
//	Space  - Pause/Resume
//	n      - New random array
//	c      - Enter a custom array
//	t      - Set the search target
//	+/-    - Faster/slower
//	l      - Cycle listing language
//	[ ]    - Shrink/grow the array
//	r      - Reset to the array the run started from
//	Esc    - Back to the menu
//	q      - Quit
package viz
