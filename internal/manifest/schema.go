package manifest

// Operations with dedicated handling. Any other fastboot verb (getvar, oem,
// reboot-bootloader, ...) is passed through with its optional argument.
const (
	OpFlash = "flash"
	OpErase = "erase"
)

// Manifest is a parsed flashfile.
type Manifest struct {
	Path  string // absolute path of the manifest file
	Dir   string // images are resolved relative to this directory
	Steps []Step // document order
}

// Step is one <step> element. Optional attributes are nil when absent, so
// an empty attribute value can be told apart from a missing one.
type Step struct {
	Operation string  `json:"operation"`
	Partition *string `json:"partition,omitempty"`
	Filename  *string `json:"filename,omitempty"`
	MD5       *string `json:"md5,omitempty"`
	Var       *string `json:"var,omitempty"`
}

// Value dereferences an optional attribute, returning "" when absent.
func Value(attr *string) string {
	if attr == nil {
		return ""
	}
	return *attr
}
