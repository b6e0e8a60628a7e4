package metrics

const (
	Namespace        = "pollchain"
	ProgramSubsystem = "program"
	APISubsystem     = "api"
)

const (
	ProgramResultSuccess = "success"
	ProgramResultFailure = "failure"
)
