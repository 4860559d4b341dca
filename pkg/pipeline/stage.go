package pipeline

import (
	_ "embed"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	apperrors "github.com/arthur-debert/httpgraph/pkg/errors"
)

//go:embed embedded/demo.toml
var demoPipeline []byte

// Stage describes one handler and the stages nested in it.
type Stage struct {
	Kind    string        `koanf:"kind" yaml:"kind"`
	Out     string        `koanf:"out" yaml:"out,omitempty"`
	Dir     string        `koanf:"dir" yaml:"dir,omitempty"`
	URL     string        `koanf:"url" yaml:"url,omitempty"`
	Code    int           `koanf:"code" yaml:"code,omitempty"`
	Body    string        `koanf:"body" yaml:"body,omitempty"`
	Prefix  string        `koanf:"prefix" yaml:"prefix,omitempty"`
	Timeout time.Duration `koanf:"timeout" yaml:"timeout,omitempty"`

	Next   *Stage  `koanf:"next" yaml:"next,omitempty"`
	Stages []Stage `koanf:"stages" yaml:"stages,omitempty"`
	Mounts []Mount `koanf:"mounts" yaml:"mounts,omitempty"`
	Routes []Route `koanf:"routes" yaml:"routes,omitempty"`
}

// Mount is one URL map binding.
type Mount struct {
	Host    string `koanf:"host" yaml:"host,omitempty"`
	Path    string `koanf:"path" yaml:"path"`
	Handler Stage  `koanf:"handler" yaml:"handler"`
}

// Route is one router route.
type Route struct {
	Method  string `koanf:"method" yaml:"method"`
	Path    string `koanf:"path" yaml:"path"`
	Handler Stage  `koanf:"handler" yaml:"handler"`
}

// rawBytesProvider feeds an in-memory document to koanf.
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load reads a pipeline description; the parser is picked by extension
// (.yaml and .yml for YAML, anything else is TOML).
func Load(path string) (*Stage, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrPipelineLoad, "failed to load pipeline from %s", path).
			WithDetail("path", path)
	}
	return decode(k, path)
}

// Parse reads a pipeline description held in memory. format is "toml" or "yaml".
func Parse(data []byte, format string) (*Stage, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, parserFor("pipeline."+format)); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrPipelineLoad, "failed to parse pipeline")
	}
	return decode(k, "<"+format+">")
}

// Demo returns the pipeline rendered when no description is given.
func Demo() *Stage {
	s, err := Parse(demoPipeline, "toml")
	if err != nil {
		panic(err)
	}
	return s
}

// DemoSource is the text of the demo description.
func DemoSource() string {
	return string(demoPipeline)
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func decode(k *koanf.Koanf, source string) (*Stage, error) {
	if !k.Exists("pipeline") {
		return nil, apperrors.Newf(apperrors.ErrPipelineInvalid, "%s has no pipeline section", source)
	}

	var s Stage
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		},
	}
	if err := k.UnmarshalWithConf("pipeline", &s, conf); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrPipelineInvalid, "failed to decode %s", source)
	}
	return &s, nil
}
