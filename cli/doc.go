// Package cli shows a vramcon console inside the host terminal.
//
// The 80x30 grid is drawn in a window on the host screen, optionally framed by
// a border and followed by a status bar. Redraws are differential: only cells
// that changed since the previous frame are rewritten.
//
// # Basic Usage
//
//	con := vramcon.NewConsole(vramcon.NewSurface(), vramcon.Options{})
//
//	term := cli.New(con, cli.Options{
//	    BorderStyle:   cli.BorderRounded,
//	    Title:         "vram",
//	    ShowStatusBar: true,
//	})
//	if err := term.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer term.Stop()
//
//	term.Wait() // returns when the user presses q or Ctrl+C
//
// # Keys
//
//   - q, Ctrl+C: quit
//   - c: copy the visible grid to the system clipboard
//
// Cells are decoded through code page 437, the display's character set.
package cli
