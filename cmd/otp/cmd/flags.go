package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/trackpad"
	"github.com/OpenTraceLab/OpenTraceTrackpad/pkg/units"
)

// paramFlags binds every generator parameter to a flag, plus --config.
// Flags given on the command line override the config file.
type paramFlags struct {
	fs         *pflag.FlagSet
	values     trackpad.Config
	configPath string
}

func addParamFlags(fs *pflag.FlagSet) *paramFlags {
	pf := &paramFlags{fs: fs, values: trackpad.DefaultConfig()}
	fs.StringVarP(&pf.configPath, "config", "c", "", "TOML parameter file")

	for _, p := range trackpad.Parameters() {
		usage := p.Usage
		if p.Kind == trackpad.KindLength {
			usage += " (mm, or with unit: mil, in, um, cm)"
		}
		switch f := p.Field(&pf.values).(type) {
		case *units.Length:
			fs.Var(f, p.Key, usage)
		case *int:
			fs.IntVar(f, p.Key, *f, usage)
		case *bool:
			fs.BoolVar(f, p.Key, *f, usage)
		case *trackpad.Rounding:
			fs.StringVar((*string)(f), p.Key, string(*f), usage)
		}
	}
	return pf
}

// config returns the file (or default) configuration with changed flags
// applied on top. It does not validate.
func (pf *paramFlags) config() (trackpad.Config, error) {
	cfg := trackpad.DefaultConfig()
	if pf.configPath != "" {
		var err error
		if cfg, err = trackpad.LoadConfig(pf.configPath); err != nil {
			return cfg, err
		}
	}

	for _, p := range trackpad.Parameters() {
		if !pf.fs.Changed(p.Key) {
			continue
		}
		v, err := trackpad.ParamValue(&pf.values, p.Key)
		if err != nil {
			return cfg, err
		}
		if err := trackpad.SetParam(&cfg, p.Key, v); err != nil {
			return cfg, fmt.Errorf("--%s: %w", p.Key, err)
		}
	}
	return cfg, nil
}
