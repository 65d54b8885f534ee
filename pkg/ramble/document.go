package ramble

import (
	"fmt"

	"gopkg.in/yaml.v2"

	"benchpark/pkg/modifier"
)

// Document is the root of ramble.yaml.
type Document struct {
	Ramble Spec `yaml:"ramble"`
}

// Spec is the ramble section of ramble.yaml.
type Spec struct {
	Include      []string               `yaml:"include,omitempty"`
	Config       Config                 `yaml:"config"`
	Modifiers    []modifier.Modifier    `yaml:"modifiers,omitempty"`
	Applications map[string]Application `yaml:"applications"`
	Software     Software               `yaml:"software"`
}

type Config struct {
	Deprecated bool              `yaml:"deprecated"`
	SpackFlags map[string]string `yaml:"spack_flags,omitempty"`
}

type Application struct {
	Workloads map[string]Workload `yaml:"workloads"`
}

type Workload struct {
	EnvVars     *EnvVars               `yaml:"env_vars,omitempty"`
	Variables   map[string]interface{} `yaml:"variables,omitempty"`
	Experiments map[string]Experiment  `yaml:"experiments"`
}

type EnvVars struct {
	Set map[string]string `yaml:"set"`
}

type Experiment struct {
	Variants  map[string]string      `yaml:"variants,omitempty"`
	Variables map[string]interface{} `yaml:"variables"`
}

type Software struct {
	Packages     map[string]Package     `yaml:"packages"`
	Environments map[string]Environment `yaml:"environments,omitempty"`
}

type Package struct {
	PkgSpec  string `yaml:"pkg_spec"`
	Compiler string `yaml:"compiler,omitempty"`
}

type Environment struct {
	Packages []string `yaml:"packages"`
}

// VariablesDocument is the layout of an included variables.yaml.
type VariablesDocument struct {
	Variables map[string]interface{} `yaml:"variables"`
}

// SoftwareDocument is the layout of an included software.yaml.
type SoftwareDocument struct {
	Software Software `yaml:"software"`
}

// DefaultConfig is the ramble config section every generated document carries.
func DefaultConfig() Config {
	return Config{
		Deprecated: true,
		SpackFlags: map[string]string{
			"install":    "--add --keep-stage",
			"concretize": "-U -f",
		},
	}
}

// Marshal encodes any of the documents as YAML.
func Marshal(doc interface{}) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding ramble document: %w", err)
	}

	return data, nil
}

// Unmarshal decodes YAML into one of the documents.
func Unmarshal(data []byte, doc interface{}) error {
	if err := yaml.UnmarshalStrict(data, doc); err != nil {
		return fmt.Errorf("decoding ramble document: %w", err)
	}

	return nil
}
