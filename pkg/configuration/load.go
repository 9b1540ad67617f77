package configuration

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dirmirror/dirmirror/pkg/action"
	"github.com/dirmirror/dirmirror/pkg/core"
	"github.com/dirmirror/dirmirror/pkg/identifier"
	"github.com/dirmirror/dirmirror/pkg/logging"
	"github.com/dirmirror/dirmirror/pkg/process"
)

// Parse reads a dirmirror YAML configuration file and validates its
// "settings" block (spec.md §4.7 steps 2-3), without yet constructing an
// OriginRegistry. Splitting this from Build lets a caller choose its log
// level from the validated Settings before any Origin (and its logger) is
// constructed.
func Parse(configPath string) (*Document, *Settings, error) {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to read configuration file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("unable to parse configuration file: %w", err)
	}

	settings, err := Validate(doc.Settings)
	if err != nil {
		return nil, nil, err
	}

	return &doc, settings, nil
}

// Load is a convenience wrapper combining Parse and Build for callers (such
// as the `validate` command) that don't need to choose their log level from
// the parsed Settings first.
func Load(configPath, envPath string, logger *logging.Logger, completions chan<- process.Completion) (*core.OriginRegistry, *Settings, error) {
	doc, settings, err := Parse(configPath)
	if err != nil {
		return nil, nil, err
	}
	registry, err := Build(doc, settings, envPath, logger, completions)
	if err != nil {
		return nil, nil, err
	}
	return registry, settings, nil
}

// Build constructs an OriginRegistry from an already-parsed Document and
// validated Settings. envPath, if non-empty, names an optional .env file
// (github.com/joho/godotenv) whose entries are appended to every spawned
// action's environment, letting a sync entry's action reference credentials
// or endpoints without embedding them in the YAML document itself.
func Build(doc *Document, settings *Settings, envPath string, logger *logging.Logger, completions chan<- process.Completion) (*core.OriginRegistry, error) {
	var actionEnv []string
	if envPath != "" {
		if vars, err := godotenv.Read(envPath); err == nil {
			actionEnv = os.Environ()
			for k, v := range vars {
				actionEnv = append(actionEnv, k+"="+v)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("unable to read environment file: %w", err)
		}
	}

	if len(doc.Sync) == 0 {
		return nil, fmt.Errorf("configuration defines no sync entries")
	}

	registry := core.NewOriginRegistry()

	for _, spec := range doc.Sync {
		resolved, err := Resolve(spec, settings, doc.Defaults)
		if err != nil {
			return nil, err
		}

		sourceAbs, err := resolveSource(resolved.Source)
		if err != nil {
			return nil, fmt.Errorf("unable to resolve source %q: %w", resolved.Source, err)
		}

		originLogger := logger.WithField("target", resolved.Target)

		actionProgram, err := process.FindCommand(resolved.Action[0], nil)
		if err != nil {
			actionProgram = resolved.Action[0]
		}
		originAction := &action.Command{
			Program:     actionProgram,
			Args:        resolved.Action[1:],
			Env:         actionEnv,
			Logger:      originLogger,
			Completions: completions,
		}

		var startupAction core.Action
		if len(resolved.Startup) > 0 {
			startupProgram, err := process.FindCommand(resolved.Startup[0], nil)
			if err != nil {
				startupProgram = resolved.Startup[0]
			}
			startupAction = &action.Command{
				Program:     startupProgram,
				Args:        resolved.Startup[1:],
				Env:         actionEnv,
				Logger:      originLogger,
				Completions: completions,
			}
		}

		config := core.OriginConfig{
			MaxProcesses: resolved.MaxProcesses,
			MaxActions:   resolved.MaxActions,
			Delay:        resolved.Delay,
			HasDelay:     resolved.HasDelay,
			Collapse:     core.DefaultCollapseTable(),
			HasMove:      resolved.Move,
			Exclude:      resolved.Exclude,
			Action:       originAction,
			Startup:      startupAction,
			TargetIdent:  resolved.Target,
		}

		origin := core.NewOrigin(identifier.New(), core.AbsPath(sourceAbs), config, logger)
		registry.Add(origin)
	}

	return registry, nil
}

// resolveSource resolves a configured source to an absolute, symlink-
// evaluated path, aborting (spec.md §4.2: "failure aborts the process
// with a configuration error") if it can't be resolved.
func resolveSource(source string) (string, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", err
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(real)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", real)
	}
	return real, nil
}
