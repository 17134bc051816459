package fetch

// Reporter is the console capability the pipeline writes to.
type Reporter interface {
	Message(msg string)
	Error(msg string, err error)
	// Phase starts a progress indicator for total steps.
	Phase(label string, total int) Progress
}

type Progress interface {
	Advance()
	Done()
}

type nopReporter struct{}

func (nopReporter) Message(string)             {}
func (nopReporter) Error(string, error)        {}
func (nopReporter) Phase(string, int) Progress { return nopProgress{} }

type nopProgress struct{}

func (nopProgress) Advance() {}
func (nopProgress) Done()    {}
