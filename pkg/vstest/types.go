package vstest

// RunConfiguration holds the options for one vstest.console invocation.
// It is built once by the host and only read afterwards.
type RunConfiguration struct {
	// Settings is the path to a .runsettings file, passed through opaquely
	Settings string `yaml:"settings,omitempty"`
	// TestAdapterPaths are searched for test adapters, in order
	TestAdapterPaths []string `yaml:"test_adapter_paths,omitempty"`
	// Framework is the target framework moniker, e.g. net6.0
	Framework string `yaml:"framework,omitempty"`
	// Platform is the target platform; values containing AnyCPU are not passed on
	Platform string `yaml:"platform,omitempty"`
	// TestCaseFilter selects the tests to run
	TestCaseFilter string `yaml:"test_case_filter,omitempty"`
	// Loggers are result logger definitions, e.g. trx;LogFileName=out.trx
	Loggers []string `yaml:"loggers,omitempty"`
	// ResultsDirectory is where the runner writes results
	ResultsDirectory string `yaml:"results_directory,omitempty"`
	// ListTests lists the discovered tests instead of running them
	ListTests bool `yaml:"list_tests,omitempty"`
	// Diag is the path of the runner's diagnostics log
	Diag string `yaml:"diag,omitempty"`
	// TestFile is the test binary to run. Required.
	TestFile string `yaml:"test_file,omitempty"`
	// Verbosity of the synthesized console logger
	Verbosity string `yaml:"verbosity,omitempty"`

	// Blame enables failure diagnostics
	Blame bool `yaml:"blame,omitempty"`
	// BlameCrash requests a crash dump
	BlameCrash bool `yaml:"blame_crash,omitempty"`
	// BlameCrashCollectAlways is kept as a string: only whether it is empty matters
	BlameCrashCollectAlways string `yaml:"blame_crash_collect_always,omitempty"`
	// BlameCrashDumpType is the crash dump type, e.g. full or mini
	BlameCrashDumpType string `yaml:"blame_crash_dump_type,omitempty"`
	// BlameHang requests a hang dump
	BlameHang bool `yaml:"blame_hang,omitempty"`
	// BlameHangDumpType is the hang dump type
	BlameHangDumpType string `yaml:"blame_hang_dump_type,omitempty"`
	// BlameHangTimeout is the test timeout after which a hang dump is taken, e.g. 90m
	BlameHangTimeout string `yaml:"blame_hang_timeout,omitempty"`

	// Collectors are data collector definitions, e.g. "Code Coverage;Format=Cobertura"
	Collectors []string `yaml:"collectors,omitempty"`
	// TraceDataCollectorDirectory holds the code coverage collector
	TraceDataCollectorDirectory string `yaml:"trace_data_collector_directory,omitempty"`
	// NoLogo suppresses the runner banner
	NoLogo bool `yaml:"no_logo,omitempty"`
	// ArtifactsProcessingMode only has an effect when set to collect
	ArtifactsProcessingMode string `yaml:"artifacts_processing_mode,omitempty"`
	// SessionCorrelationID ties the run to a test session of the host
	SessionCorrelationID string `yaml:"session_correlation_id,omitempty"`
	// RunnerSettings are passed through after "--", always last
	RunnerSettings []string `yaml:"runner_settings,omitempty"`

	// RunnerVersion is the microsoft.testplatform package version. Required.
	RunnerVersion string `yaml:"runner_version,omitempty"`
	// PackageCacheRoot is the NuGet package cache holding the runner. Required.
	PackageCacheRoot string `yaml:"package_cache_root,omitempty"`
}

// Args is the result of BuildArgs.
type Args struct {
	// Tokens are escaped and ready to be joined with single spaces
	Tokens []string
	// Problems are configuration errors found while building; they were logged
	// and did not stop the build
	Problems []string
}
