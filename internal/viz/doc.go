// Package viz draws simulation snapshots in the terminal.
//
// A braille Canvas gives 2x4 dots per character cell. DrawPendulum and
// DrawPong paint read-only snapshots onto it, FrameRenderer streams frames
// to any io.Writer, and PendulumModel and PongModel are interactive
// bubbletea programs.
package viz
