package cmd

import (
	"image"
	"os"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/pcb"
	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/kicad/renderer"
)

func newViewCmd() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "view [footprint.kicad_mod]",
		Short: "Open the footprint in an interactive viewer",
		Long: `Opens a generated footprint, or an existing .kicad_mod file, in a
Gio window.

Controls:
  Left Click / R    - Rotate 90°
  Right Click / F   - Flip (view from the back)
  Scroll Wheel      - Zoom in/out
  B                 - Toggle back copper
  S                 - Toggle silkscreen
  Space             - Fit footprint to window
  Q / Escape        - Quit`,
		Args: cobra.MaximumNArgs(1),
	}
	params := addParamFlags(cmd.Flags())
	cmd.Flags().StringVar(&theme, "theme", renderer.ThemeClassic.Name, "colour theme")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		logger := loggerFromContext(cmd.Context())

		th, err := renderer.ThemeByName(theme)
		if err != nil {
			return err
		}
		fp, err := loadOrBuild(cmd, params, args)
		if err != nil {
			return err
		}

		bbox := fp.GetBoundingBox()
		smd, tht := countPads(fp)
		logger.Info("loaded footprint", "name", fp.Name, "pads", smd, "vias", tht,
			"size", fmtSize(bbox))

		go func() {
			w := new(app.Window)
			w.Option(app.Title("otp - " + fp.Name))
			w.Option(app.Size(unit.Dp(1000), unit.Dp(500)))

			if err := runViewerWindow(w, fp, renderer.NewGioRenderer(th)); err != nil {
				logger.Fatal("viewer", "err", err)
			}
			os.Exit(0)
		}()
		app.Main()
		return nil
	}
	return cmd
}

func runViewerWindow(w *app.Window, fp *pcb.Footprint, r *renderer.GioRenderer) error {
	bbox := fp.GetBoundingBox()
	camera := renderer.NewCamera(1000, 500)
	fitted := false

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			ops.Reset()
			gtx := app.NewContext(&ops, e)

			camera.UpdateScreenSize(e.Size.X, e.Size.Y)
			if !fitted {
				camera.Fit(bbox)
				fitted = true
			}

			for {
				ev, ok := gtx.Event(key.Filter{})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					if handleKeyPress(ke.Name, camera, r, bbox) {
						return nil
					}
					w.Invalidate()
				}
			}

			for {
				ev, ok := gtx.Event(pointer.Filter{
					Target:  camera,
					Kinds:   pointer.Press | pointer.Scroll,
					ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
				})
				if !ok {
					break
				}
				pe, ok := ev.(pointer.Event)
				if !ok {
					continue
				}
				switch pe.Kind {
				case pointer.Press:
					if pe.Buttons == pointer.ButtonPrimary {
						camera.Rotate(90)
					} else if pe.Buttons == pointer.ButtonSecondary {
						camera.Flip()
					}
				case pointer.Scroll:
					camera.ZoomAt(float64(pe.Position.X), float64(pe.Position.Y), 1.0-float64(pe.Scroll.Y)*0.01)
				}
				w.Invalidate()
			}

			area := clip.Rect(image.Rect(0, 0, e.Size.X, e.Size.Y)).Push(gtx.Ops)
			event.Op(gtx.Ops, camera)
			area.Pop()

			r.RenderFootprint(gtx, camera, fp)
			e.Frame(gtx.Ops)
		}
	}
}

// handleKeyPress applies a key binding and reports whether to quit
func handleKeyPress(k key.Name, camera *renderer.Camera, r *renderer.GioRenderer, bbox pcb.BoundingBox) bool {
	switch k {
	case key.NameEscape, "Q":
		return true
	case "F":
		camera.Flip()
	case "R":
		camera.Rotate(90)
	case key.NameLeftArrow:
		camera.Rotate(-90)
	case "B":
		r.Layers.Toggle("B.Cu")
	case "S":
		r.Layers.Toggle("F.SilkS")
	case key.NameSpace:
		camera.Fit(bbox)
	}
	return false
}
