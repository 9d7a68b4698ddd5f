package language

import (
	"errors"

	"github.com/RadhiFadlillah/whatlanggo"
)

// ErrNoDetection is returned when the text carries no usable signal
var ErrNoDetection = errors.New("no language detected")

// Candidate is one ranked detector guess
type Candidate struct {
	Lang string
	Prob float64
}

// Detector ranks candidate languages for a text, most probable first
type Detector interface {
	DetectLangs(text string) ([]Candidate, error)
}

// whitelist maps project languages onto whatlanggo's ISO 639-3 set
var whitelist = map[whatlanggo.Lang]bool{
	whatlanggo.Eng: true,
	whatlanggo.Spa: true,
	whatlanggo.Fra: true,
	whatlanggo.Deu: true,
	whatlanggo.Ita: true,
	whatlanggo.Por: true,
	whatlanggo.Nld: true,
	whatlanggo.Pol: true,
	whatlanggo.Rus: true,
	whatlanggo.Jpn: true,
	whatlanggo.Kor: true,
	whatlanggo.Cmn: true,
	whatlanggo.Arb: true,
	whatlanggo.Hin: true,
	whatlanggo.Tur: true,
	whatlanggo.Swe: true,
	whatlanggo.Nob: true,
	whatlanggo.Dan: true,
	whatlanggo.Fin: true,
	whatlanggo.Guj: true,
}

// WhatlangDetector detects languages with whatlanggo's trigram model,
// restricted to the project languages. It yields at most one candidate.
type WhatlangDetector struct {
	options whatlanggo.Options
}

// NewWhatlangDetector creates a detector limited to the project languages.
// Scripts used by a single language (Thai, Georgian, ...) are still
// reported as that language.
func NewWhatlangDetector() *WhatlangDetector {
	return &WhatlangDetector{
		options: whatlanggo.Options{Whitelist: whitelist},
	}
}

// DetectLangs implements Detector
func (d *WhatlangDetector) DetectLangs(text string) ([]Candidate, error) {
	info := whatlanggo.DetectWithOptions(text, d.options)
	if info.Script == nil || info.Lang < 0 {
		return nil, ErrNoDetection
	}

	code := info.Lang.Iso6391()
	if code == "" {
		code = info.Lang.Iso6393()
	}
	if code == "" {
		return nil, ErrNoDetection
	}

	return []Candidate{{Lang: code, Prob: info.Confidence}}, nil
}
