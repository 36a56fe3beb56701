// Package exitcode defines named exit codes for the adgen CLI.
//
// Each code maps a specific termination condition to a numeric value
// recognized by shell scripts and CI pipelines.
package exitcode

// Exit code constants matching the adgen error taxonomy.
const (
	Success        = 0   // Pipeline completed (entry-level failures reported, non-fatal)
	Error          = 1   // Invalid args, malformed product config, misconfiguration
	AuthFailure    = 2   // Missing or invalid API credential
	ResearchFailed = 3   // Research stage failed; no downstream work possible
	StagesFailed   = 4   // One or more creative stages failed terminally
	Interrupted    = 130 // SIGINT/SIGTERM received
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case AuthFailure:
		return "AuthFailure"
	case ResearchFailed:
		return "ResearchFailed"
	case StagesFailed:
		return "StagesFailed"
	case Interrupted:
		return "Interrupted"
	default:
		return "unknown"
	}
}
