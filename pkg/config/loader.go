package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	specerrors "github.com/zanyuzhao/spec-coding/pkg/errors"
	"github.com/zanyuzhao/spec-coding/pkg/logging"
	"github.com/zanyuzhao/spec-coding/pkg/paths"
)

// EnvPrefix is the prefix of environment overrides
const EnvPrefix = "SPEC_CODING_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// LoadOptions selects the layers of a load
type LoadOptions struct {
	// TargetRoot enables the project configuration layer when set
	TargetRoot string

	// Recorded holds the parameters from the target's version marker,
	// keyed backend_dir, frontend_dir, app_package
	Recorded map[string]interface{}

	// UserConfig overrides the user configuration path; "-" disables the layer
	UserConfig string

	// Flags holds explicitly set flags keyed by config path, e.g.
	// "params.backend_dir"
	Flags map[string]interface{}
}

// Load builds the effective configuration
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config.loader")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, specerrors.Wrap(err, specerrors.ErrConfigParse, "failed to load defaults")
	}

	if len(opts.Recorded) > 0 {
		recorded := map[string]interface{}{"params": opts.Recorded}
		if err := k.Load(confmap.Provider(recorded, "."), nil); err != nil {
			return nil, specerrors.Wrap(err, specerrors.ErrConfigLoad, "failed to load recorded parameters")
		}
		logger.Debug().Interface("params", opts.Recorded).Msg("Loaded parameters recorded in target")
	}

	userConfig := opts.UserConfig
	if userConfig == "" {
		userConfig = paths.UserConfigPath()
	}
	if userConfig != "-" {
		if err := loadFile(k, userConfig); err != nil {
			return nil, err
		}
	}

	if opts.TargetRoot != "" {
		if err := loadFile(k, paths.ProjectConfig(opts.TargetRoot)); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, specerrors.Wrap(err, specerrors.ErrConfigLoad, "failed to load environment")
	}

	if len(opts.Flags) > 0 {
		if err := k.Load(confmap.Provider(opts.Flags, "."), nil); err != nil {
			return nil, specerrors.Wrap(err, specerrors.ErrConfigLoad, "failed to load flags")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				stringToFileModeHookFunc(),
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, specerrors.Wrap(err, specerrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	postProcessConfig(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration made of the embedded defaults only
func Default() (*Config, error) {
	return Load(LoadOptions{UserConfig: "-"})
}

// loadFile merges a TOML file if it exists
func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return specerrors.Wrapf(err, specerrors.ErrConfigLoad, "failed to access %s", path)
	}
	if err := k.Load(file.Provider(path), toml.Parser(), koanf.WithMergeFunc(mergeMaps)); err != nil {
		return specerrors.Wrapf(err, specerrors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	logger := logging.GetLogger("config.loader")
	logger.Debug().Str("path", path).Msg("Loaded config file")
	return nil
}

// envKey maps SPEC_CODING_PARAMS_BACKEND_DIR to params.backend_dir. Only
// the first underscore separates section from key, since keys contain
// underscores themselves.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// mergeMaps merges src into dest. Nested maps merge recursively and lists
// are appended; everything else is overwritten.
func mergeMaps(src, dest map[string]interface{}) error {
	for key, srcVal := range src {
		destVal, ok := dest[key]
		if !ok {
			dest[key] = srcVal
			continue
		}

		if srcMap, ok := srcVal.(map[string]interface{}); ok {
			if destMap, ok := destVal.(map[string]interface{}); ok {
				if err := mergeMaps(srcMap, destMap); err != nil {
					return err
				}
				continue
			}
		}

		if isSlice(srcVal) && isSlice(destVal) {
			dest[key] = append(toInterfaceSlice(destVal), toInterfaceSlice(srcVal)...)
			continue
		}

		dest[key] = srcVal
	}
	return nil
}

func isSlice(v interface{}) bool {
	switch v.(type) {
	case []interface{}, []string:
		return true
	default:
		return false
	}
}

func toInterfaceSlice(v interface{}) []interface{} {
	switch s := v.(type) {
	case []interface{}:
		return s
	case []string:
		result := make([]interface{}, len(s))
		for i, v := range s {
			result[i] = v
		}
		return result
	default:
		return []interface{}{}
	}
}

// stringToFileModeHookFunc decodes octal strings such as "0644"
func stringToFileModeHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(os.FileMode(0)) {
			return data, nil
		}
		n, err := strconv.ParseUint(data.(string), 8, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid file mode %q: %w", data, err)
		}
		return os.FileMode(n), nil
	}
}

func formatMode(m os.FileMode) string {
	return fmt.Sprintf("%04o", uint32(m.Perm()))
}

func postProcessConfig(cfg *Config) {
	cfg.Source.Root = normalizeRoot(cfg.Source.Root)
	cfg.Staging.Root = normalizeRoot(cfg.Staging.Root)
	if cfg.Staging.Root == "" {
		cfg.Staging.Root = paths.DefaultStagingRoot()
	}

	seen := make(map[string]bool)
	ignore := cfg.Source.Ignore[:0]
	for _, p := range cfg.Source.Ignore {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		ignore = append(ignore, p)
	}
	cfg.Source.Ignore = ignore
}

// normalizeRoot expands ~ and makes a tree root absolute and clean. A
// trailing separator would otherwise put sibling work directories inside
// the tree.
func normalizeRoot(root string) string {
	if root == "" {
		return ""
	}
	root = paths.ExpandHome(root)
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return filepath.Clean(root)
}
