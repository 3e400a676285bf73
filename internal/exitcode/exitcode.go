package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	DBConnError     = 3
	CopyError       = 4
	SourceError     = 5
	AssistantError  = 6
	OutputError     = 7
)
