package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://github.com/vango-dev/mathfield/blob/main/docs/errors.md#"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E100-E199)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No mathfield.json, mathfield.yaml or mathfield.yml was found in the directory.",
		DocURL:   docBase + "e100",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The config file could not be parsed.",
		DocURL:   docBase + "e101",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A config value is out of range or has the wrong form.",
		DocURL:   docBase + "e102",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Unsupported config format",
		Detail:   "Config files must end in .json, .yaml or .yml.",
		DocURL:   docBase + "e103",
	},

	// ============================================
	// Server Errors (E200-E299)
	// ============================================

	"E200": {
		Category: CategoryServer,
		Message:  "Server failed to start",
		Detail:   "The HTTP listener could not be opened. Another process may be using the port.",
		DocURL:   docBase + "e200",
	},
	"E201": {
		Category: CategoryServer,
		Message:  "WebSocket upgrade failed",
		Detail:   "The request could not be upgraded to a WebSocket session.",
		DocURL:   docBase + "e201",
	},
	"E202": {
		Category: CategoryServer,
		Message:  "Origin not allowed",
		Detail:   "The WebSocket request origin is not in server.allowed_origins.",
		DocURL:   docBase + "e202",
	},
	"E203": {
		Category: CategoryServer,
		Message:  "Render failed",
		Detail:   "A field could not be rendered.",
		DocURL:   docBase + "e203",
	},

	// ============================================
	// Asset Errors (E300-E399)
	// ============================================

	"E300": {
		Category: CategoryAssets,
		Message:  "Publish bucket not configured",
		Detail:   "publish.bucket must be set to upload the client runtime.",
		DocURL:   docBase + "e300",
	},
	"E301": {
		Category: CategoryAssets,
		Message:  "Upload failed",
		Detail:   "The object store rejected the upload.",
		DocURL:   docBase + "e301",
	},
	"E302": {
		Category: CategoryAssets,
		Message:  "Missing object store credentials",
		Detail:   "AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set to publish.",
		DocURL:   docBase + "e302",
	},

	// ============================================
	// Protocol Errors (E400-E499)
	// ============================================

	"E400": {
		Category: CategoryProtocol,
		Message:  "Invalid message",
		Detail:   "A message could not be decoded or is missing required fields.",
		DocURL:   docBase + "e400",
	},
	"E401": {
		Category: CategoryProtocol,
		Message:  "Unknown field",
		Detail:   "A message referred to a field id that is not mounted in this session.",
		DocURL:   docBase + "e401",
	},

	// ============================================
	// CLI Errors (E500-E599)
	// ============================================

	"E500": {
		Category: CategoryCLI,
		Message:  "Cannot read props file",
		Detail:   "The props file passed to classify could not be read or parsed.",
		DocURL:   docBase + "e500",
	},
}

// Register adds or replaces an error template.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}

// Lookup returns the template for a code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns all registered codes, sorted.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// CodesByCategory returns the registered codes in a category, sorted.
func CodesByCategory(category Category) []string {
	var codes []string
	for code, t := range registry {
		if t.Category == category {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}
