package pipeline

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/shapewordle/pkg/errors"
)

// LoadOptionsFile reads pipeline options from a TOML file:
//
//	keyword_num = 40
//	width = 900
//	height = 600
//	plan = "value"
//	colors = ["#e5352b", "#39a6dd"]
//
//	[font_files]
//	serif = "fonts/NotoSerif-Regular.ttf"
//
// Relative font paths are resolved against the file's directory. Unknown
// keys are rejected so that typos do not silently fall back to defaults.
func LoadOptionsFile(path string) (Options, error) {
	var opts Options
	md, err := toml.DecodeFile(path, &opts)
	if os.IsNotExist(err) {
		return Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open options %s", path)
	}
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode options %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidOptions, "unknown option %q in %s", undecoded[0].String(), path)
	}

	dir := filepath.Dir(path)
	for family, p := range opts.FontFiles {
		if !filepath.IsAbs(p) {
			opts.FontFiles[family] = filepath.Join(dir, p)
		}
	}
	return opts, nil
}
