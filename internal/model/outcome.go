package model

type Outcome string

const (
	OutcomeDownloaded     Outcome = "downloaded"
	OutcomeSkippedMissing Outcome = "skipped_missing"
	OutcomeSkippedError   Outcome = "skipped_error"
)

func (o Outcome) IsSkipped() bool {
	return o == OutcomeSkippedMissing || o == OutcomeSkippedError
}
