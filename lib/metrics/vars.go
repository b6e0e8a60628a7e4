package metrics

var (
	Program = NopProgramMetrics()
	API     = NopAPIMetrics()
)
