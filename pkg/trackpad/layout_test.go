package trackpad

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func mustBuild(t *testing.T, cfg Config) *Footprint {
	t.Helper()
	fp, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	return fp
}

func TestBuildDefaultLayout(t *testing.T) {
	fp := mustBuild(t, DefaultConfig())

	if fp.Name != "Trackpad-50x20mm" {
		t.Errorf("Name = %q, want %q", fp.Name, "Trackpad-50x20mm")
	}

	columnsX := []int64{-20000000, -10000000, 0, 10000000, 20000000}
	rowsY := []int64{-8000000, -4000000, 0, 4000000, 8000000}

	tests := []struct {
		edge      Edge
		prefix    string
		fixed     int64 // the coordinate shared by the whole edge
		size      Size
		angle     Angle
		alongRows bool
	}{
		{EdgeTop, "c", -9100000, Size{W: 1800000, H: 4800000}, 1350, false},
		{EdgeRight, "r", 22600000, Size{W: 4800000, H: 1800000}, 900, true},
		{EdgeBottom, "c", 9100000, Size{W: 1800000, H: 4800000}, 450, false},
		{EdgeLeft, "r", -22600000, Size{W: 4800000, H: 1800000}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.edge.String(), func(t *testing.T) {
			pads := fp.PadsOn(tt.edge)
			if len(pads) != 5 {
				t.Fatalf("PadsOn(%s) = %d pads, want 5", tt.edge, len(pads))
			}
			for i, p := range pads {
				wantName := tt.prefix + string(rune('0'+i))
				if p.Name != wantName {
					t.Errorf("pad %d name = %q, want %q", i, p.Name, wantName)
				}
				var want Point
				if tt.alongRows {
					want = Point{X: tt.fixed, Y: rowsY[i]}
				} else {
					want = Point{X: columnsX[i], Y: tt.fixed}
				}
				if p.Position != want {
					t.Errorf("pad %s position = %+v, want %+v", p.Name, p.Position, want)
				}
				if p.Size != tt.size {
					t.Errorf("pad %s size = %+v, want %+v", p.Name, p.Size, tt.size)
				}
				if p.Orientation != tt.angle {
					t.Errorf("pad %s orientation = %d, want %d", p.Name, p.Orientation, tt.angle)
				}
				if p.Delta != (Size{W: tt.size.H}) {
					t.Errorf("pad %s delta = %+v, want %+v", p.Name, p.Delta, Size{W: tt.size.H})
				}
			}
		})
	}

	vias := fp.Vias()
	if len(vias) != 10 {
		t.Fatalf("Vias() = %d, want 10", len(vias))
	}
	for i, v := range vias {
		col := i % 5
		wantY := int64(-9000000)
		if i >= 5 {
			wantY = 9000000
		}
		if v.Position != (Point{X: columnsX[col], Y: wantY}) {
			t.Errorf("via %d position = %+v", i, v.Position)
		}
		if v.Diameter != 500000 || v.Drill != 200000 {
			t.Errorf("via %d size = %d/%d, want 500000/200000", i, v.Diameter, v.Drill)
		}
		if v.Name != "v_"+ColumnElectrode(col).Name() {
			t.Errorf("via %d name = %q", i, v.Name)
		}
	}

	back := fp.TracesOn(BackCopper)
	if len(back) != 5 {
		t.Fatalf("back traces = %d, want 5", len(back))
	}
	for i, tr := range back {
		if tr.Start != (Point{X: columnsX[i], Y: -6800000}) || tr.End != (Point{X: columnsX[i], Y: -9000000}) {
			t.Errorf("back trace %d = %+v -> %+v", i, tr.Start, tr.End)
		}
		if tr.Width != 127000 {
			t.Errorf("back trace %d width = %d, want 127000", i, tr.Width)
		}
		if tr.Length() != 2200000 {
			t.Errorf("back trace %d length = %v nm, want 2200000", i, tr.Length())
		}
	}

	front := fp.TracesOn(FrontCopper)
	if len(front) != 5 {
		t.Fatalf("front traces = %d, want 5", len(front))
	}
	for i, tr := range front {
		if tr.Start != (Point{X: -25000000, Y: rowsY[i]}) || tr.End != (Point{X: 25000000, Y: rowsY[i]}) {
			t.Errorf("front trace %d = %+v -> %+v", i, tr.Start, tr.End)
		}
		if tr.Net != RowElectrode(i) {
			t.Errorf("front trace %d net = %+v", i, tr.Net)
		}
		if tr.Length() != 50000000 {
			t.Errorf("front trace %d length = %v nm, want the full 50 mm width", i, tr.Length())
		}
	}

	if got := len(fp.TracesOn(FrontSilk)); got != 4 {
		t.Errorf("silkscreen outline segments = %d, want 4", got)
	}

	if fp.Value.Position != (Point{X: 0, Y: 10650000}) {
		t.Errorf("value label = %+v, want (0, 10650000)", fp.Value.Position)
	}
	if fp.Reference.Position != (Point{X: 0, Y: -10650000}) {
		t.Errorf("reference label = %+v, want (0, -10650000)", fp.Reference.Position)
	}
}

func TestBuildPrimitiveOrder(t *testing.T) {
	fp := mustBuild(t, DefaultConfig())

	var b strings.Builder
	for _, it := range fp.Items {
		switch p := it.(type) {
		case Pad:
			b.WriteString("P")
		case Via:
			b.WriteString("V")
		case Trace:
			if p.Layer == FrontSilk {
				b.WriteString("S")
			} else {
				b.WriteString("T")
			}
		}
	}

	want := strings.Repeat("PVT", 5) + // top
		strings.Repeat("P", 5) + // right
		strings.Repeat("PV", 5) + // bottom
		strings.Repeat("TP", 5) + // left
		"SSSS"
	if b.String() != want {
		t.Errorf("primitive order = %s, want %s", b.String(), want)
	}
}

func TestBuildCounts(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "defaults", modify: func(c *Config) {}},
		{name: "wide grid", modify: func(c *Config) { c.Trackpad.EdgeSegmentsX = 9; c.Trackpad.EdgeSegmentsY = 4 }},
		{name: "no drill", modify: func(c *Config) { c.Options.DrillHole = false }},
		{name: "no wiring", modify: func(c *Config) { c.Options.AddFrontWiring = false; c.Options.AddBackWiring = false }},
		{name: "no outline", modify: func(c *Config) { c.Options.AddLines = false }},
		{name: "zero clearance", modify: func(c *Config) { c.Trackpad.Clearance = 0 }},
		{name: "nearest rounding", modify: func(c *Config) { c.Rounding = RoundNearest; c.Trackpad.Width = 33.3333 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			fp := mustBuild(t, cfg)
			nx, ny := cfg.Trackpad.EdgeSegmentsX, cfg.Trackpad.EdgeSegmentsY

			for edge, want := range map[Edge]int{EdgeTop: nx, EdgeBottom: nx, EdgeLeft: ny, EdgeRight: ny} {
				if got := len(fp.PadsOn(edge)); got != want {
					t.Errorf("%s pads = %d, want %d", edge, got, want)
				}
			}

			for _, p := range fp.Pads() {
				if p.Size.W <= 0 || p.Size.H <= 0 {
					t.Errorf("pad %s on %s has size %+v", p.Name, p.Edge, p.Size)
				}
			}

			wantVias := 0
			if cfg.Options.DrillHole {
				wantVias = 2 * nx
			}
			if got := len(fp.Vias()); got != wantVias {
				t.Errorf("vias = %d, want %d", got, wantVias)
			}
			for _, v := range fp.Vias() {
				if v.Net.Kind != Column {
					t.Errorf("via %s is on a %v electrode, want column", v.Name, v.Net.Kind)
				}
			}

			wantBack, wantFront := 0, 0
			if cfg.Options.AddBackWiring {
				wantBack = nx
			}
			if cfg.Options.AddFrontWiring {
				wantFront = ny
			}
			if got := len(fp.TracesOn(BackCopper)); got != wantBack {
				t.Errorf("back traces = %d, want %d", got, wantBack)
			}
			if got := len(fp.TracesOn(FrontCopper)); got != wantFront {
				t.Errorf("front traces = %d, want %d", got, wantFront)
			}
		})
	}
}

func TestElectrodeSharing(t *testing.T) {
	fp := mustBuild(t, DefaultConfig())

	top, bottom := fp.PadsOn(EdgeTop), fp.PadsOn(EdgeBottom)
	for i := range top {
		if top[i].Name != bottom[i].Name || top[i].Net != bottom[i].Net {
			t.Errorf("column %d: top %s/%+v, bottom %s/%+v", i, top[i].Name, top[i].Net, bottom[i].Name, bottom[i].Net)
		}
		if top[i].Net != ColumnElectrode(i) {
			t.Errorf("column %d net = %+v", i, top[i].Net)
		}
	}

	left, right := fp.PadsOn(EdgeLeft), fp.PadsOn(EdgeRight)
	for i := range left {
		if left[i].Name != right[i].Name || left[i].Net != right[i].Net {
			t.Errorf("row %d: left %s, right %s", i, left[i].Name, right[i].Name)
		}
		if left[i].Net != RowElectrode(i) {
			t.Errorf("row %d net = %+v", i, left[i].Net)
		}
	}

	infos := fp.Electrodes()
	if len(infos) != 10 {
		t.Fatalf("Electrodes() = %d, want 10", len(infos))
	}
	for _, info := range infos {
		if len(info.Pads) != 2 {
			t.Errorf("%s has %d pads, want 2", info.Electrode.Name(), len(info.Pads))
		}
		switch info.Electrode.Kind {
		case Column:
			if len(info.Vias) != 2 || len(info.Traces) != 1 {
				t.Errorf("%s: %d vias, %d traces, want 2 and 1", info.Electrode.Name(), len(info.Vias), len(info.Traces))
			}
		case Row:
			if len(info.Vias) != 0 || len(info.Traces) != 1 {
				t.Errorf("%s: %d vias, %d traces, want 0 and 1", info.Electrode.Name(), len(info.Vias), len(info.Traces))
			}
		}
	}
	if infos[0].Electrode != RowElectrode(0) || infos[9].Electrode != ColumnElectrode(4) {
		t.Errorf("Electrodes() order = %s..%s, want r0..c4", infos[0].Electrode.Name(), infos[9].Electrode.Name())
	}
}

func TestBuildIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trackpad.Width = 61.7
	cfg.Trackpad.EdgeSegmentsY = 7

	a := mustBuild(t, cfg)
	b := mustBuild(t, cfg)
	if !reflect.DeepEqual(a, b) {
		t.Error("two builds of the same config differ")
	}
}

func TestBuildFillGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Options.FillGrid = true
	cfg.Trackpad.EdgeSegmentsX = 6
	fp := mustBuild(t, cfg)

	nx, ny := 6, 5
	if got := len(fp.PadsOn(EdgeTop)); got != nx*ny {
		t.Errorf("top pads = %d, want %d", got, nx*ny)
	}
	if got := len(fp.PadsOn(EdgeLeft)); got != nx*ny {
		t.Errorf("left pads = %d, want %d", got, nx*ny)
	}
	if got := len(fp.Vias()); got != 2*nx*ny {
		t.Errorf("vias = %d, want %d", got, 2*nx*ny)
	}
	if got := len(fp.TracesOn(BackCopper)); got != nx*ny {
		t.Errorf("back traces = %d, want %d", got, nx*ny)
	}
	if got := len(fp.TracesOn(FrontCopper)); got != ny {
		t.Errorf("front traces = %d, want %d", got, ny)
	}

	// Second row of top pads sits two pad pitches below the first
	top := fp.PadsOn(EdgeTop)
	if dy := top[1].Position.Y - top[0].Position.Y; dy != 4000000 {
		t.Errorf("top depth step = %d, want 4000000", dy)
	}
}

func TestBuildTaperOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Debug.Taper = false
	for _, p := range mustBuild(t, cfg).Pads() {
		if p.Delta != (Size{}) {
			t.Fatalf("pad %s delta = %+v with taper disabled", p.Name, p.Delta)
		}
	}

	cfg = DefaultConfig()
	cfg.Debug.TaperAngle = 90
	fp := mustBuild(t, cfg)
	want := map[Edge]Angle{EdgeTop: 900, EdgeRight: 450, EdgeBottom: 0, EdgeLeft: 3150}
	for edge, angle := range want {
		if got := fp.PadsOn(edge)[0].Orientation; got != angle {
			t.Errorf("%s orientation = %d, want %d", edge, got, angle)
		}
	}
}

func TestBuildRoundingPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trackpad.Width = 50.000005 // pad pitch 5000000.5 nm

	if got := mustBuild(t, cfg).PadsOn(EdgeRight)[0].Size.W; got != 4800000 {
		t.Errorf("truncate: right pad width = %d, want 4800000", got)
	}

	cfg.Rounding = RoundNearest
	if got := mustBuild(t, cfg).PadsOn(EdgeRight)[0].Size.W; got != 4800001 {
		t.Errorf("nearest: right pad width = %d, want 4800001", got)
	}
}

func TestRoundingApply(t *testing.T) {
	tests := []struct {
		policy Rounding
		in     float64
		want   int64
	}{
		{RoundTruncate, 2.7, 2},
		{RoundTruncate, -2.7, -2},
		{RoundNearest, 2.5, 3},
		{RoundNearest, -2.5, -3},
		{RoundNearest, -2.4, -2},
	}
	for _, tt := range tests {
		if got := tt.policy.apply(tt.in); got != tt.want {
			t.Errorf("%s.apply(%v) = %d, want %d", tt.policy, tt.in, got, tt.want)
		}
	}
}

type countingSink struct {
	pads, vias, traces, labels int
}

func (s *countingSink) AddPad(Pad)          { s.pads++ }
func (s *countingSink) AddVia(Via)          { s.vias++ }
func (s *countingSink) AddTrace(Trace)      { s.traces++ }
func (s *countingSink) SetLabels(_, _ Label) { s.labels++ }

func TestGenerateRejectsBeforeEmitting(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trackpad.EdgeSegmentsX = 3

	var sink countingSink
	err := Generate(cfg, &sink)
	if !IsConfigError(err) {
		t.Fatalf("Generate() error = %v, want ConfigError", err)
	}
	if sink != (countingSink{}) {
		t.Errorf("sink received primitives for an invalid config: %+v", sink)
	}

	if err := Generate(DefaultConfig(), &sink); err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if sink.pads != 20 || sink.vias != 10 || sink.traces != 14 || sink.labels != 1 {
		t.Errorf("sink counts = %+v", sink)
	}
}

func TestPadPanicsOnUnvalidatedGeometry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trackpad.Clearance = 2 // equals the y pad pitch

	defer func() {
		if recover() == nil {
			t.Error("pad() did not panic on a zero-size pad")
		}
	}()
	g := newGrid(cfg)
	g.pad(g.cell(EdgeTop, 0, 0), true, 135)
}

func TestGeneratorLogsEdges(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	g, err := NewGenerator(DefaultConfig(), WithLogger(logger))
	if err != nil {
		t.Fatalf("NewGenerator() unexpected error: %v", err)
	}
	g.Run(&Footprint{})

	out := buf.String()
	for _, edge := range Edges {
		if !strings.Contains(out, "edge="+edge.String()) {
			t.Errorf("debug log missing edge %s:\n%s", edge, out)
		}
	}
}
