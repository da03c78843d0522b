// Package run implements the main logic for the checkgen tool in a testable way.
package run

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/alexflint/go-arg"

	load "github.com/toejough/typeguard/checkgen/run/2_load"
	detect "github.com/toejough/typeguard/checkgen/run/3_detect"
	generate "github.com/toejough/typeguard/checkgen/run/5_generate"
	output "github.com/toejough/typeguard/checkgen/run/6_output"
)

// FileSystem interface for reading config and existing output, and writing
// generated code.
type FileSystem = output.FileSystem

// PackageLoader resolves a package pattern and parses its source.
type PackageLoader interface {
	Load(pattern string) (load.Package, error)
}

// Exported variables.
var (
	ErrConfig = errors.New("invalid config")
)

// Run executes the checkgen tool logic. It takes command-line arguments, an
// environment variable getter, a FileSystem for file operations, a
// PackageLoader for package operations, and a writer for status output. On
// success, it writes (or with --diff, prints the diff of) a Go source file of
// typed checked wrappers for the matching functions, in the calling package.
func Run(args []string, getEnv func(string) string, fileSys FileSystem, pkgLoader PackageLoader, out io.Writer) error {
	parsed, err := parseArgs(args, out)
	if err != nil {
		if errors.Is(err, arg.ErrHelp) {
			return nil
		}

		return err
	}

	settings, err := resolveSettings(parsed, fileSys)
	if err != nil {
		return err
	}

	pkg, err := pkgLoader.Load(settings.pkg)
	if err != nil {
		return err
	}

	funcs, err := detect.Funcs(pkg.Files, parsed.Pattern)
	if err != nil {
		return fmt.Errorf("in package %s: %w", pkg.Name, err)
	}

	opts := generate.Options{
		PkgName:   getEnv("GOPACKAGE"),
		SourcePkg: pkg.Name,
		Prefix:    settings.prefix,
		Coerce:    settings.coerce,
	}

	if opts.PkgName == "" {
		opts.PkgName = pkg.Name
	}

	if opts.PkgName != pkg.Name {
		opts.SourcePath = pkg.PkgPath
	}

	code, err := generate.Code(funcs, opts)
	if err != nil {
		return err
	}

	filename := parsed.Out
	if filename == "" {
		filename = output.FileName(settings.prefix, getEnv("GOFILE"), opts.PkgName)
	}

	if parsed.Diff {
		return output.Diff(code, filename, fileSys, out)
	}

	return output.WriteGeneratedCode(code, filename, fileSys, out)
}

// unexported constants.
const (
	defaultConfigFile = "checkgen.toml"
	defaultPkg        = "."
	defaultPrefix     = "Checked"
)

// cliArgs defines the command-line arguments for the generator.
type cliArgs struct {
	Pattern string `arg:"positional,required" help:"function name or glob to wrap (e.g. Multiply or Parse*)"`
	Pkg     string `arg:"--pkg"               help:"package declaring the functions (defaults to the current directory)"`
	Prefix  string `arg:"--prefix"            help:"prefix for the generated wrapper names (defaults to Checked)"`
	Out     string `arg:"--out"               help:"output file (defaults to generated_<prefix>_<file>.go)"`
	Coerce  bool   `arg:"--coerce"            help:"allow lossless numeric conversion of arguments"`
	Diff    bool   `arg:"--diff"              help:"print a diff against the existing output instead of writing it"`
	Config  string `arg:"--config"            help:"TOML file of defaults (defaults to checkgen.toml, if present)"`
}

// fileConfig is the TOML config file's shape.
type fileConfig struct {
	Pkg    string `toml:"pkg"`
	Prefix string `toml:"prefix"`
	Coerce bool   `toml:"coerce"`
}

// settings are the flags merged over the config file over the defaults.
type settings struct {
	pkg    string
	prefix string
	coerce bool
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}

// parseArgs parses command-line arguments into cliArgs. Help is written to out.
func parseArgs(args []string, out io.Writer) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "checkgen"}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if errors.Is(err, arg.ErrHelp) {
		parser.WriteHelp(out)
		return cliArgs{}, err
	}

	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, nil
}

// readConfig reads the config file. Only an explicitly named file must exist.
func readConfig(name string, fileSys FileSystem) (fileConfig, error) {
	explicit := name != ""
	if !explicit {
		name = defaultConfigFile
	}

	data, err := fileSys.ReadFile(name)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return fileConfig{}, nil
		}

		return fileConfig{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	var cfg fileConfig

	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("%w: %s: %w", ErrConfig, name, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fileConfig{}, fmt.Errorf("%w: %s: unknown key %q", ErrConfig, name, undecoded[0].String())
	}

	return cfg, nil
}

func resolveSettings(parsed cliArgs, fileSys FileSystem) (settings, error) {
	cfg, err := readConfig(parsed.Config, fileSys)
	if err != nil {
		return settings{}, err
	}

	return settings{
		pkg:    firstNonEmpty(parsed.Pkg, cfg.Pkg, defaultPkg),
		prefix: firstNonEmpty(parsed.Prefix, cfg.Prefix, defaultPrefix),
		coerce: parsed.Coerce || cfg.Coerce,
	}, nil
}
