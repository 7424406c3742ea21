package static

import _ "embed"

// APIMd contains the embedded api.md quick-start guide.
//
//go:embed api.md
var APIMd string
