package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/mappu/miqt/qt"

	"github.com/phroun/vramcon/cli"
	"github.com/phroun/vramcon/ebitenview"
	vramcongtk "github.com/phroun/vramcon/gtk"
	"github.com/phroun/vramcon/internal/config"
	"github.com/phroun/vramcon/internal/palette"
	vramconqt "github.com/phroun/vramcon/qt"
	"github.com/phroun/vramcon/tui"
)

const (
	appID       = "com.github.phroun.vramsim"
	windowTitle = "vramsim"
)

// runFrontend shows the console until the user quits or ctx ends.
func runFrontend(ctx context.Context, cfg *config.Settings, sim *Sim) error {
	scheme := cfg.Scheme()
	switch cfg.Frontend {
	case config.FrontendPlain:
		return runPlain(ctx, sim)
	case config.FrontendCLI:
		return runCLI(ctx, sim)
	case config.FrontendTUI:
		return tui.Run(ctx, sim.Console, tui.Options{Title: windowTitle, Status: sim.Status})
	case config.FrontendEbiten:
		return runEbiten(ctx, sim, scheme)
	case config.FrontendGTK:
		return runGTK(ctx, sim, scheme)
	case config.FrontendQt:
		return runQt(ctx, sim, scheme)
	}
	return fmt.Errorf("unknown frontend %q", cfg.Frontend)
}

// runPlain waits for ctx and prints the final grid text.
func runPlain(ctx context.Context, sim *Sim) error {
	<-ctx.Done()
	screen := sim.Console.Snapshot()
	_, err := fmt.Fprintln(os.Stdout, screen.Text())
	return err
}

func runCLI(ctx context.Context, sim *Sim) error {
	t := cli.New(sim.Console, cli.Options{
		BorderStyle:   cli.BorderRounded,
		Title:         windowTitle,
		ShowStatusBar: true,
		Status:        sim.Status,
	})
	if err := t.Start(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
	case <-t.Done():
	}
	return t.Stop()
}

func runEbiten(ctx context.Context, sim *Sim, scheme palette.Scheme) error {
	v := ebitenview.New(sim.Console, ebitenview.Options{
		Title:  windowTitle,
		Status: sim.Status,
		Scheme: &scheme,
	})
	stop := context.AfterFunc(ctx, v.Close)
	defer stop()
	return v.Run()
}

func runGTK(ctx context.Context, sim *Sim, scheme palette.Scheme) error {
	app, err := gtk.ApplicationNew(appID, glib.APPLICATION_FLAGS_NONE)
	if err != nil {
		return fmt.Errorf("gtk application: %w", err)
	}

	var setupErr error
	app.Connect("activate", func() {
		win, err := gtk.ApplicationWindowNew(app)
		if err != nil {
			setupErr = err
			app.Quit()
			return
		}
		win.SetTitle(windowTitle)

		w, err := vramcongtk.New(sim.Console, vramcongtk.Options{
			Scheme: &scheme,
			Status: sim.Status,
		})
		if err != nil {
			setupErr = err
			app.Quit()
			return
		}
		win.Add(w.Box())
		win.ShowAll()
		w.DrawingArea().GrabFocus()
	})

	// Quit from the main loop once ctx ends.
	glib.TimeoutAdd(100, func() bool {
		if ctx.Err() != nil {
			app.Quit()
			return false
		}
		return true
	})

	if code := app.Run([]string{os.Args[0]}); code != 0 {
		return fmt.Errorf("gtk exited with status %d", code)
	}
	return setupErr
}

func runQt(ctx context.Context, sim *Sim, scheme palette.Scheme) error {
	qt.NewQApplication([]string{os.Args[0]})

	win := qt.NewQMainWindow(nil)
	win.SetWindowTitle(windowTitle)

	w := vramconqt.New(sim.Console, vramconqt.Options{
		Scheme: &scheme,
		Status: sim.Status,
	})
	win.SetCentralWidget(w.Widget())
	win.Show()

	poll := qt.NewQTimer2(win.QObject)
	poll.OnTimeout(func() {
		if ctx.Err() != nil {
			qt.QCoreApplication_Quit()
		}
	})
	poll.Start(100)

	if code := qt.QApplication_Exec(); code != 0 {
		return fmt.Errorf("qt exited with status %d", code)
	}
	return nil
}
