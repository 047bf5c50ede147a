package config

import (
	stderrors "errors"
	"path"
	"reflect"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/kochabx/forkapi/core/tag"
	"github.com/kochabx/forkapi/core/validator"
	"github.com/kochabx/forkapi/errors"
)

// FileSource describes where a FileLoader reads from
type FileSource struct {
	// File is an explicit config path; when set Name and Paths are ignored
	File string
	// Name is the file name searched for in Paths; not finding it is not an error
	Name  string
	Paths []string
	// EnvPrefix enables PREFIX_KEY environment overrides
	EnvPrefix string
}

// FileLoader loads configuration from file, environment and any flags bound to the viper instance.
// Precedence follows viper: flags, env, file, struct defaults.
type FileLoader struct {
	viper    *viper.Viper
	validate validator.Validator
	source   FileSource
}

// NewFileLoader creates a new file loader
func NewFileLoader(v *viper.Viper, validate validator.Validator, source FileSource) *FileLoader {
	if source.File != "" {
		v.SetConfigFile(source.File)
	} else {
		for _, configPath := range source.Paths {
			v.AddConfigPath(configPath)
		}
		ext := path.Ext(source.Name)
		v.SetConfigName(strings.TrimSuffix(source.Name, ext))
		v.SetConfigType(strings.TrimPrefix(ext, "."))
	}

	if source.EnvPrefix != "" {
		v.SetEnvPrefix(source.EnvPrefix)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &FileLoader{
		viper:    v,
		validate: validate,
		source:   source,
	}
}

// Load implements Loader interface
func (l *FileLoader) Load(target any) error {
	// Defaults first so keys absent from every source keep them
	if err := tag.ApplyDefaults(target); err != nil {
		return errors.Wrap(err, 500, "failed to apply defaults")
	}

	if err := l.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.source.File != "" || !stderrors.As(err, &notFound) {
			return errors.Wrap(err, 404, "failed to read config file")
		}
	}

	// AutomaticEnv only covers keys viper already knows about
	bindEnvs(l.viper, reflect.TypeOf(target), "")

	if err := l.viper.Unmarshal(target); err != nil {
		return errors.Wrap(err, 500, "config parse error")
	}

	if l.validate != nil {
		if err := l.validate.Struct(target); err != nil {
			return errors.Wrap(err, 400, "config validation failed")
		}
	}

	return nil
}

// Watch implements Loader interface
func (l *FileLoader) Watch(callback func()) error {
	if l.viper.ConfigFileUsed() == "" {
		return errors.New(404, "no config file to watch")
	}

	l.viper.OnConfigChange(func(fsnotify.Event) {
		if callback != nil {
			callback()
		}
	})
	l.viper.WatchConfig()
	return nil
}

// bindEnvs registers every mapstructure key of t with viper's env lookup
func bindEnvs(v *viper.Viper, t reflect.Type, prefix string) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name, opts, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			continue
		}
		if opts == "squash" {
			bindEnvs(v, f.Type, prefix)
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}

		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			bindEnvs(v, ft, prefix+name+".")
			continue
		}
		_ = v.BindEnv(prefix + name)
	}
}
