package events

import "time"

// TopicProcess carries runner lifecycle events
const TopicProcess = "/process"

// Runner lifecycle events (published to /process stream)

// EventConfigProblem is published for each configuration error found while
// building the arguments. The run continues.
type EventConfigProblem struct {
	Message string
}

// EventRunnerStarted is published right before the runner process is started
type EventRunnerStarted struct {
	Path        string
	CommandLine string
}

// EventRunnerExited is published when the runner process has exited
type EventRunnerExited struct {
	ExitCode int
	Duration time.Duration
}

// EventProcessError is published when a component encounters an error
type EventProcessError struct {
	Component string
	Error     error
}
