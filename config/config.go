package config

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/clrhost/errors"
	"github.com/wippyai/clrhost/property"
)

// DefaultFriendlyName is used when a config does not name its app domain.
const DefaultFriendlyName = "clrhost"

// Format is a config file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// HostConfig describes one hosting session. Paths are used as given; the
// host does not search for runtime assets.
type HostConfig struct {
	LibraryDir   string   `yaml:"library_dir" hcl:"library_dir,optional" validate:"required" jsonschema:"description=Directory containing the runtime library"`
	ExePath      string   `yaml:"exe_path" hcl:"exe_path,optional" validate:"required" jsonschema:"description=Path reported to the runtime as the host executable"`
	FriendlyName string   `yaml:"friendly_name,omitempty" hcl:"friendly_name,optional" jsonschema:"description=App domain friendly name"`
	Assembly     string   `yaml:"assembly,omitempty" hcl:"assembly,optional" jsonschema:"description=Managed assembly to execute"`
	Args         []string `yaml:"args,omitempty" hcl:"args,optional" jsonschema:"description=Arguments passed to the assembly entry point"`

	TrustedPlatformAssemblies  []string `yaml:"trusted_platform_assemblies,omitempty" hcl:"trusted_platform_assemblies,optional"`
	NativeDllSearchDirectories []string `yaml:"native_dll_search_directories,omitempty" hcl:"native_dll_search_directories,optional"`
	PlatformResourceRoots      []string `yaml:"platform_resource_roots,omitempty" hcl:"platform_resource_roots,optional"`
	AppDomainCompatSwitch      string   `yaml:"app_domain_compat_switch,omitempty" hcl:"app_domain_compat_switch,optional"`
	AppContextBaseDirectory    string   `yaml:"app_context_base_directory,omitempty" hcl:"app_context_base_directory,optional"`
	AppContextDepsFiles        []string `yaml:"app_context_deps_files,omitempty" hcl:"app_context_deps_files,optional"`
	FxDepsFile                 string   `yaml:"fx_deps_file,omitempty" hcl:"fx_deps_file,optional"`
	ProbingDirectories         []string `yaml:"probing_directories,omitempty" hcl:"probing_directories,optional"`
	FxProductVersion           string   `yaml:"fx_product_version,omitempty" hcl:"fx_product_version,optional"`
	JitPath                    string   `yaml:"jit_path,omitempty" hcl:"jit_path,optional"`
	StartupHooks               []string `yaml:"startup_hooks,omitempty" hcl:"startup_hooks,optional"`
	AppPaths                   []string `yaml:"app_paths,omitempty" hcl:"app_paths,optional"`
	AppNIPaths                 []string `yaml:"app_ni_paths,omitempty" hcl:"app_ni_paths,optional"`

	Properties map[string]string `yaml:"properties,omitempty" hcl:"properties,optional" jsonschema:"description=Additional runtime properties; these override the fields above"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// FormatFor picks the config syntax from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", errors.InvalidData(errors.PhaseConfig, path, "unknown config extension, want .yaml, .yml or .hcl")
	}
}

// Load reads, decodes and validates the config file at path.
func Load(path string) (*HostConfig, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.PhaseConfig, errors.KindNotFound).
			Path(path).
			Cause(err).
			Build()
	}

	return Parse(data, format, path)
}

// Parse decodes and validates config data. filename is used in diagnostics.
func Parse(data []byte, format Format, filename string) (*HostConfig, error) {
	cfg := &HostConfig{}

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, errors.New(errors.PhaseConfig, errors.KindInvalidData).
				Path(filename).
				Detail("decode yaml").
				Cause(err).
				Build()
		}
	case FormatHCL:
		file, diags := hclparse.NewParser().ParseHCL(data, filename)
		if diags.HasErrors() {
			return nil, errors.New(errors.PhaseConfig, errors.KindInvalidData).
				Path(filename).
				Detail("parse hcl").
				Cause(diags).
				Build()
		}
		if diags := gohcl.DecodeBody(file.Body, nil, cfg); diags.HasErrors() {
			return nil, errors.New(errors.PhaseConfig, errors.KindInvalidData).
				Path(filename).
				Detail("decode hcl").
				Cause(diags).
				Build()
		}
	default:
		return nil, errors.Unsupported(errors.PhaseConfig, "config format "+string(format))
	}

	if cfg.FriendlyName == "" {
		cfg.FriendlyName = DefaultFriendlyName
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and that every property can be passed to
// the runtime.
func (c *HostConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "config validation failed")
	}
	for p, v := range c.commonValues() {
		if strings.ContainsRune(v, 0) {
			return errors.InvalidInput(errors.PhaseConfig, "invalid property "+property.CommonProperty(p).String())
		}
	}
	for k, v := range c.Properties {
		if k == "" || strings.ContainsRune(k, 0) || strings.ContainsRune(v, 0) {
			return errors.InvalidInput(errors.PhaseConfig, "invalid property "+strings.ToValidUTF8(k, "?"))
		}
	}
	return nil
}

// PropertyBag builds the runtime properties described by c. Common
// properties come first in declaration order, then Properties sorted by key.
// List fields are joined with the platform path list separator.
func (c *HostConfig) PropertyBag() *property.Bag {
	bag := property.NewBag()

	for p, value := range c.commonValues() {
		if value != "" {
			bag.AddCommon(property.CommonProperty(p), value)
		}
	}

	keys := make([]string, 0, len(c.Properties))
	for k := range c.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		bag.Add(k, c.Properties[k])
	}

	return bag
}

func (c *HostConfig) commonValues() [property.NumCommonProperties]string {
	return [property.NumCommonProperties]string{
		property.TrustedPlatformAssemblies:  joinList(c.TrustedPlatformAssemblies),
		property.NativeDllSearchDirectories: joinList(c.NativeDllSearchDirectories),
		property.PlatformResourceRoots:      joinList(c.PlatformResourceRoots),
		property.AppDomainCompatSwitch:      c.AppDomainCompatSwitch,
		property.AppContextBaseDirectory:    c.AppContextBaseDirectory,
		property.AppContextDepsFiles:        joinList(c.AppContextDepsFiles),
		property.FxDepsFile:                 c.FxDepsFile,
		property.ProbingDirectories:         joinList(c.ProbingDirectories),
		property.FxProductVersion:           c.FxProductVersion,
		property.JitPath:                    c.JitPath,
		property.StartupHooks:               joinList(c.StartupHooks),
		property.AppPaths:                   joinList(c.AppPaths),
		property.AppNIPaths:                 joinList(c.AppNIPaths),
	}
}

func joinList(items []string) string {
	return strings.Join(items, string(os.PathListSeparator))
}
