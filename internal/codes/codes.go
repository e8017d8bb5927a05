package codes

// ExitCodes maps known non-zero exit codes of the external tools to their
// descriptions, keyed by tool name
var ExitCodes = map[string]map[int]string{
	"cargo": {
		101: "build failed",
	},
	"cross": {
		101: "build failed",
	},
	"upx": {
		1: "error",
		2: "warning",
	},
	"strip": {
		1: "error",
	},
}

// GetErrorMessage returns the description for a tool's exit code, or "" if unknown
func GetErrorMessage(tool string, code int) string {
	if msgs, ok := ExitCodes[tool]; ok {
		return msgs[code]
	}

	return ""
}
