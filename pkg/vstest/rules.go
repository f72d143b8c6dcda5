package vstest

import (
	"strings"

	"github.com/perbu/vstestrun/pkg/escape"
)

const codeCoverage = "Code Coverage"

// rule turns one aspect of the configuration into zero or more tokens.
type rule struct {
	name string
	emit func(cfg *RunConfiguration, st *state) []string
}

// rules is the emission order. vstest.console treats several of these
// positionally, so the order is part of the contract.
var rules = []rule{
	{"settings", settingsArgs},
	{"testAdapterPath", testAdapterPathArgs},
	{"framework", frameworkArgs},
	{"platform", platformArgs},
	{"testCaseFilter", testCaseFilterArgs},
	{"logger", loggerArgs},
	{"resultsDirectory", resultsDirectoryArgs},
	{"listTests", listTestsArgs},
	{"diag", diagArgs},
	{"testFile", testFileArgs},
	{"consoleLogger", consoleLoggerArgs},
	{"blame", blameArgs},
	{"collect", collectArgs},
	{"traceDataCollector", traceDataCollectorArgs},
	{"nologo", noLogoArgs},
	{"artifactsProcessingMode", artifactsProcessingModeArgs},
	{"testSessionCorrelationId", sessionCorrelationIDArgs},
	{"runnerSettings", runnerSettingsArgs},
}

// flag returns "--name:value" with value escaped, or nothing for an empty value.
func flag(name, value string) []string {
	if value == "" {
		return nil
	}
	return []string{"--" + name + ":" + escape.Escape(value)}
}

func settingsArgs(cfg *RunConfiguration, st *state) []string {
	if cfg.Settings == "" {
		return nil
	}
	st.runSettingsEnabled = true
	return flag("settings", cfg.Settings)
}

func testAdapterPathArgs(cfg *RunConfiguration, _ *state) []string {
	var out []string
	for _, p := range cfg.TestAdapterPaths {
		out = append(out, flag("testAdapterPath", p)...)
	}
	return out
}

func frameworkArgs(cfg *RunConfiguration, _ *state) []string {
	return flag("framework", cfg.Framework)
}

// platformArgs skips AnyCPU, which vstest.console rejects as an explicit platform.
func platformArgs(cfg *RunConfiguration, _ *state) []string {
	if strings.Contains(cfg.Platform, "AnyCPU") {
		return nil
	}
	return flag("platform", cfg.Platform)
}

func testCaseFilterArgs(cfg *RunConfiguration, _ *state) []string {
	return flag("testCaseFilter", cfg.TestCaseFilter)
}

func loggerArgs(cfg *RunConfiguration, st *state) []string {
	var out []string
	for _, l := range cfg.Loggers {
		if !st.consoleLoggerSpecifiedByUser && hasPrefixFold(l, "console") {
			st.consoleLoggerSpecifiedByUser = true
		}
		out = append(out, flag("logger", l)...)
	}
	return out
}

func resultsDirectoryArgs(cfg *RunConfiguration, _ *state) []string {
	return flag("resultsDirectory", cfg.ResultsDirectory)
}

func listTestsArgs(cfg *RunConfiguration, _ *state) []string {
	if !cfg.ListTests {
		return nil
	}
	return []string{"--listTests"}
}

func diagArgs(cfg *RunConfiguration, _ *state) []string {
	return flag("Diag", cfg.Diag)
}

func testFileArgs(cfg *RunConfiguration, st *state) []string {
	if cfg.TestFile == "" {
		st.problem(ErrTestFileMissing)
		return nil
	}
	return []string{escape.Escape(cfg.TestFile)}
}

func consoleLoggerArgs(cfg *RunConfiguration, st *state) []string {
	if cfg.Verbosity == "" || st.consoleLoggerSpecifiedByUser {
		return nil
	}
	return []string{"--logger:Console;Verbosity=" + consoleVerbosity(cfg.Verbosity)}
}

func collectArgs(cfg *RunConfiguration, st *state) []string {
	var out []string
	for _, c := range cfg.Collectors {
		// "Code Coverage" may carry settings: "Code Coverage;Format=Cobertura"
		first, _, _ := strings.Cut(c, ";")
		if strings.EqualFold(c, codeCoverage) || strings.EqualFold(first, codeCoverage) {
			st.collectingCodeCoverage = true
		}
		out = append(out, flag("collect", c)...)
	}
	return out
}

// traceDataCollectorArgs adds the coverage collector's directory to the adapter
// paths. vstest.console accepts --testAdapterPath more than once.
func traceDataCollectorArgs(cfg *RunConfiguration, st *state) []string {
	if !st.collectingCodeCoverage && !st.runSettingsEnabled {
		return nil
	}
	return flag("testAdapterPath", cfg.TraceDataCollectorDirectory)
}

func noLogoArgs(cfg *RunConfiguration, _ *state) []string {
	if !cfg.NoLogo {
		return nil
	}
	return []string{"--nologo"}
}

func artifactsProcessingModeArgs(cfg *RunConfiguration, _ *state) []string {
	if !strings.EqualFold(cfg.ArtifactsProcessingMode, "collect") {
		return nil
	}
	return []string{"--artifactsProcessingMode-collect"}
}

func sessionCorrelationIDArgs(cfg *RunConfiguration, _ *state) []string {
	return flag("testSessionCorrelationId", cfg.SessionCorrelationID)
}

// runnerSettingsArgs must stay the last rule: vstest.console reads everything
// after "--" as run settings.
func runnerSettingsArgs(cfg *RunConfiguration, _ *state) []string {
	if len(cfg.RunnerSettings) == 0 {
		return nil
	}
	out := make([]string, 0, len(cfg.RunnerSettings)+1)
	out = append(out, "--")
	return append(out, escape.EscapeSlice(cfg.RunnerSettings)...)
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
