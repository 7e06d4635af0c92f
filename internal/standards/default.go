package standards

import (
	"bytes"
	_ "embed"
)

//go:embed data/necb2011.yaml
var necb2011 []byte

// Default loads the reference data bundled with the binary.
func Default() (*Store, error) {
	return Load(bytes.NewReader(necb2011), FormatYAML)
}
