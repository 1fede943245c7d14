package config

const (
	KeyLogLevel = "log.level"

	KeyOutputMode     = "output.mode"
	KeyOutputTemplate = "output.template"

	KeyHistoryEnabled = "history.enabled"
	KeyHistoryFile    = "history.file"
	KeyHistoryLimit   = "history.limit"
)

const (
	OutputModePlain = "plain"
	OutputModeTable = "table"
	OutputModeYAML  = "yaml"

	DefaultOutputTemplate = `{{if .Command}}{{.Command}} took {{end}}{{.Formatted}}`
	DefaultHistoryLimit   = 20
)

var OutputModes = []string{OutputModePlain, OutputModeTable, OutputModeYAML}
