package defaults

const (
	// EnvPrefix is the prefix for environment variables read through viper.
	EnvPrefix = "BENCHPARK"

	// ConfigDir is where the optional config.yaml is looked up.
	ConfigDir = "$HOME/.config/benchpark/"

	// RambleFile is the workspace definition consumed by ramble.
	RambleFile = "ramble.yaml"

	// ExecutionTemplateFile is the script template consumed by ramble.
	ExecutionTemplateFile = "execution_template.tpl"

	// ExperimentFile records the spec an experiment directory was created from.
	ExperimentFile = "experiment.yaml"

	// SystemFile describes the hardware of a system directory.
	SystemFile = "system.toml"

	// VariablesFile holds the system variables included from ramble.yaml.
	VariablesFile = "variables.yaml"

	// SoftwareFile holds the system software description.
	SoftwareFile = "software.yaml"

	// ManifestFile lists workspace artifacts and their digests.
	ManifestFile = "manifest.yaml"

	// ScriptFile is the rendered per-experiment script.
	ScriptFile = "execute_experiment"

	// WorkspaceConfigDir is the directory under a workspace holding ramble configs.
	WorkspaceConfigDir = "configs"

	// WorkspaceExperimentsDir is the directory under a workspace holding experiment run dirs.
	WorkspaceExperimentsDir = "experiments"

	// ScalingFactor is the default factor applied between scaling iterations.
	ScalingFactor = 2

	// ScalingIterations is the default number of experiments a scaling study generates.
	ScalingIterations = 4

	// ThreadsPerProc is used when an experiment does not request a thread count.
	ThreadsPerProc = 1

	// BatchTimeout is the default batch job time limit in minutes.
	BatchTimeout = 120

	// DataDirPerm is the permissions to use for data folders.
	DataDirPerm = 0o755

	// DataFilePerm is the permissions to use for data files.
	DataFilePerm = 0o644

	// ScriptFilePerm is the permissions to use for rendered scripts.
	ScriptFilePerm = 0o755
)
