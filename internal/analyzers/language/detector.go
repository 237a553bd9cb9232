// internal/analyzers/language/detector.go
package language

const StageName = "language"

// Detector reports the text language. Currently a fixed-output placeholder.
// TODO: wire a real detection pass (lingua-go) once non-English input
// actually shows up in sessions.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// Detect always reports English.
func (d *Detector) Detect(text string) string {
	return "en"
}
