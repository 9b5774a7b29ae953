package manifest

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/net/html/charset"

	dagerrors "github.com/irixaligned/swat/internal/errors"
)

const (
	containerElement = "steps"
	stepElement      = "step"
)

// LoadFile reads and parses a manifest file. Image filenames in the returned
// manifest resolve against the manifest's own directory.
func LoadFile(path string) (*Manifest, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, dagerrors.NewIOError(path, "resolving manifest path", err)
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, dagerrors.NewManifestError(fmt.Sprintf("reading manifest %s", path), err)
	}
	defer f.Close()

	steps, err := Load(f)
	if err != nil {
		return nil, err
	}
	return &Manifest{Path: absPath, Dir: filepath.Dir(absPath), Steps: steps}, nil
}

// Load extracts every <step> element that sits anywhere below a <steps>
// container, in document order.
func Load(r io.Reader) ([]Step, error) {
	dec := xml.NewDecoder(r)
	// Vendor tools emit Latin-1 and windows-1252 declarations.
	dec.CharsetReader = charset.NewReaderLabel

	var (
		open       []string
		containers int
		sawSteps   bool
		steps      []Step
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, dagerrors.NewManifestError("parsing XML", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == stepElement && containers > 0 {
				steps = append(steps, stepFromAttrs(t.Attr))
			}
			if t.Name.Local == containerElement {
				containers++
				sawSteps = true
			}
			open = append(open, t.Name.Local)
		case xml.EndElement:
			if len(open) == 0 {
				return nil, dagerrors.NewManifestError("parsing XML", fmt.Errorf("unexpected </%s>", t.Name.Local))
			}
			if open[len(open)-1] == containerElement {
				containers--
			}
			open = open[:len(open)-1]
		}
	}

	if len(open) > 0 {
		return nil, dagerrors.NewManifestError("parsing XML", fmt.Errorf("unclosed <%s>", open[len(open)-1]))
	}
	if !sawSteps {
		return nil, &dagerrors.RunError{
			Type:    dagerrors.ManifestError,
			Message: "manifest has no <steps> container",
			Hint:    "Pass the flashfile.xml from the firmware package, not servicefile or another XML",
		}
	}
	if len(steps) == 0 {
		return nil, dagerrors.NewManifestError("manifest <steps> contains no <step> elements", nil)
	}
	return steps, nil
}

func stepFromAttrs(attrs []xml.Attr) Step {
	var s Step
	for _, a := range attrs {
		v := a.Value
		switch a.Name.Local {
		case "operation":
			s.Operation = v
		case "partition":
			s.Partition = &v
		case "filename":
			s.Filename = &v
		case "MD5":
			s.MD5 = &v
		case "var":
			s.Var = &v
		}
	}
	return s
}

// Resolve returns the absolute path of the step's image, or "" when the step
// has no filename. Relative names are joined to the manifest directory, never
// the process working directory.
func (m *Manifest) Resolve(s Step) string {
	if s.Filename == nil {
		return ""
	}
	if filepath.IsAbs(*s.Filename) {
		return filepath.Clean(*s.Filename)
	}
	return filepath.Join(m.Dir, *s.Filename)
}
