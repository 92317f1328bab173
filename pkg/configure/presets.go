package configure

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
	"mvdan.cc/sh/v3/shell"
)

// PresetFileName is the optional preset manifest looked up in the source tree.
const PresetFileName = "configure.yml"

type presetConfig struct {
	Presets map[string]presetArgs `yaml:"presets"`
}

// presetArgs holds the option tokens a preset expands to. A preset can be
// written either as a YAML list or as a single string which is split with
// shell quoting rules.
type presetArgs []string

func (a *presetArgs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		fields, err := shell.Fields(node.Value, os.Getenv)
		if err != nil {
			return eris.Wrapf(err, "Failed to split preset value %q", node.Value)
		}

		*a = fields
		return nil
	}

	var items []string
	err := node.Decode(&items)
	if err != nil {
		return err
	}

	*a = items
	return nil
}

// applyPreset expands the named preset in place. The expanded tokens go
// through the same option handling as regular arguments, except that they
// may not reference another preset.
func (t *Translator) applyPreset(name string) error {
	if t.presets == nil {
		srcDir, err := t.SourceDir()
		if err != nil {
			return err
		}

		cfgPath := filepath.Join(srcDir, PresetFileName)
		cfgData, err := ioutil.ReadFile(cfgPath)
		if err != nil {
			return eris.Wrapf(err, "Could not open file %s.", cfgPath)
		}

		var cfg presetConfig
		err = yaml.Unmarshal(cfgData, &cfg)
		if err != nil {
			return eris.Wrapf(err, "Failed to parse %s.", cfgPath)
		}

		t.presets = cfg.Presets
	}

	preset, ok := t.presets[name]
	if !ok {
		return eris.Errorf("Preset %s not found in %s", name, PresetFileName)
	}

	for _, arg := range preset {
		err := t.handleToken(arg, false)
		if err != nil {
			return err
		}
	}

	return nil
}
