package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/facet/pkg/render"
	"github.com/taigrr/facet/pkg/scene"
)

func runTerminal(ctx context.Context, s *scene.Scene, bg render.Color, opts options) error {
	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	var mu sync.Mutex // guards cols, rows and fb
	fb := render.NewFramebuffer(render.TerminalSize(cols, rows))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var ctl controls
	screenshot := make(chan struct{}, 1)

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				mu.Lock()
				cols, rows = ev.Width, ev.Height
				term.Erase()
				term.Resize(cols, rows)
				fb.Resize(render.TerminalSize(cols, rows))
				mu.Unlock()

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("space"):
					ctl.reset()
					s.Motion().Stop()
				case ev.MatchString("p"):
					select {
					case screenshot <- struct{}{}:
					default:
					}
				default:
					for _, b := range keyBindings {
						if ev.MatchString(b.key) {
							ctl.press(b.slot, b.dir, time.Now())
							break
						}
					}
				}
			}
		}
	}()

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	targetDuration := time.Second / time.Duration(max(opts.fps, 1))
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := min(now.Sub(lastFrame).Seconds(), 0.1)
		lastFrame = now

		s.Update(dt, ctl.snapshot(now))

		mu.Lock()
		fb.Clear(bg)
		err := s.Render(fb)
		if err == nil {
			fb.Draw(term, uv.Rect(0, 0, cols, rows))
			err = term.Display()
		}
		select {
		case <-screenshot:
			name := fmt.Sprintf("facet-%s.png", now.Format("20060102-150405"))
			if serr := fb.SaveImage(name, opts.scale); serr != nil {
				render.Logger().Warn("screenshot failed", "path", name, "err", serr)
			} else {
				render.Logger().Info("screenshot saved", "path", name)
			}
		default:
		}
		mu.Unlock()

		if err != nil {
			cleanup()
			return fmt.Errorf("frame: %w", err)
		}

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
