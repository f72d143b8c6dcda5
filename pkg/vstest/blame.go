package vstest

import "strings"

// blameArgs emits a single --Blame token when any failure diagnostics are
// requested, with the dump options as a quoted sub-argument list.
func blameArgs(cfg *RunConfiguration, _ *state) []string {
	if !cfg.Blame && !cfg.BlameCrash && !cfg.BlameHang {
		return nil
	}

	var opts []string
	if cfg.BlameCrash {
		opts = append(opts, "CollectDump")
		if cfg.BlameCrashCollectAlways != "" {
			// The value is whether the flag is empty, not the flag itself,
			// so a set flag always yields CollectAlways=False.
			opts = append(opts, "CollectAlways="+formatBool(cfg.BlameCrashCollectAlways == ""))
		}
		if cfg.BlameCrashDumpType != "" {
			opts = append(opts, "DumpType="+cfg.BlameCrashDumpType)
		}
	}
	if cfg.BlameHang {
		opts = append(opts, "CollectHangDump")
		if cfg.BlameHangDumpType != "" {
			opts = append(opts, "HangDumpType="+cfg.BlameHangDumpType)
		}
		if cfg.BlameHangTimeout != "" {
			opts = append(opts, "TestTimeout="+cfg.BlameHangTimeout)
		}
	}

	if len(opts) == 0 {
		return []string{"--Blame"}
	}
	return []string{`--Blame:"` + strings.Join(opts, ";") + `"`}
}

// formatBool spells booleans the way vstest.console parses them.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
