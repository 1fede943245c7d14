package render

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/oxtoacart/bpool"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/lthummus/elapsed/durations"
	"github.com/lthummus/elapsed/internal/config"
	"github.com/lthummus/elapsed/internal/db"
)

const (
	BufferPoolSize = 16
)

var (
	ErrInvalidMode = errors.New("render: invalid output mode")

	bufpool = bpool.NewBufferPool(BufferPoolSize)
)

// Result is what the plain output template is executed with.
type Result struct {
	ID         string               `yaml:"id,omitempty"`
	Command    string               `yaml:"command,omitempty"`
	StartedAt  time.Time            `yaml:"started_at,omitempty"`
	Elapsed    time.Duration        `yaml:"elapsed_ns"`
	Formatted  string               `yaml:"formatted"`
	Components durations.Components `yaml:"components"`
	ExitCode   int                  `yaml:"exit_code"`
}

func ResultFromDuration(d time.Duration) Result {
	c := durations.Decompose(d)
	return Result{
		Elapsed:    d,
		Formatted:  durations.Format(c),
		Components: c,
	}
}

func ResultFromComponents(c durations.Components) Result {
	return Result{
		Elapsed:    c.Duration(),
		Formatted:  durations.Format(c),
		Components: c,
	}
}

func ResultFromRun(r *db.Run) Result {
	return Result{
		ID:         r.ID,
		Command:    commandLine(r.Command, r.Args),
		StartedAt:  r.StartedAt,
		Elapsed:    r.Elapsed,
		Formatted:  r.Formatted,
		Components: durations.Decompose(r.Elapsed),
		ExitCode:   r.ExitCode,
	}
}

// commandLine joins a command and its args, quoting any arg whose boundaries
// would otherwise be lost.
func commandLine(command string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, command)
	for _, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'\\") {
			a = strconv.Quote(a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

type Renderer struct {
	mode string
	tmpl *template.Template
}

func New(mode string, tmpl string) (*Renderer, error) {
	if !slices.Contains(config.OutputModes, mode) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	t, err := template.New("output").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("render: New: could not parse output template: %w", err)
	}

	return &Renderer{mode: mode, tmpl: t}, nil
}

func NewFromConfig() (*Renderer, error) {
	config.Lock.RLock()
	defer config.Lock.RUnlock()

	return New(viper.GetString(config.KeyOutputMode), viper.GetString(config.KeyOutputTemplate))
}

func (r *Renderer) Mode() string {
	return r.mode
}

// Result writes a single result.
func (r *Renderer) Result(w io.Writer, res Result) error {
	switch r.mode {
	case config.OutputModeTable:
		return r.resultTable(w, res)
	case config.OutputModeYAML:
		return writeYAML(w, res)
	default:
		return r.plain(w, []Result{res})
	}
}

// History writes a list of results, newest first as given.
func (r *Renderer) History(w io.Writer, results []Result) error {
	switch r.mode {
	case config.OutputModeTable:
		return r.historyTable(w, results)
	case config.OutputModeYAML:
		if results == nil {
			results = []Result{}
		}
		return writeYAML(w, results)
	default:
		return r.plain(w, results)
	}
}

// plain executes the template for every result into a pooled buffer so a failing template
// writes nothing.
func (r *Renderer) plain(w io.Writer, results []Result) error {
	buf := bufpool.Get()
	defer bufpool.Put(buf)

	for _, curr := range results {
		err := r.tmpl.Execute(buf, curr)
		if err != nil {
			log.Error().Err(err).Msg("could not render output template")
			return fmt.Errorf("render: could not execute output template: %w", err)
		}
		if !strings.HasSuffix(buf.String(), "\n") {
			buf.WriteString("\n")
		}
	}

	_, err := buf.WriteTo(w)
	if err != nil {
		log.Error().Err(err).Msg("error writing output")
		return fmt.Errorf("render: could not write output: %w", err)
	}

	return nil
}

func (r *Renderer) resultTable(w io.Writer, res Result) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Unit", "Value"})

	if res.Command != "" {
		t.AppendRow(table.Row{"Command", res.Command})
	}

	c := res.Components
	t.AppendRows([]table.Row{
		{"Weeks", c.Weeks},
		{"Days", c.Days},
		{"Hours", c.Hours},
		{"Minutes", c.Minutes},
		{"Seconds", c.Seconds},
		{"Milliseconds", c.Milliseconds},
	})

	if res.Command != "" {
		t.AppendRow(table.Row{"Exit Code", res.ExitCode})
	}

	t.AppendSeparator()
	t.AppendRow(table.Row{"Total", res.Formatted})
	t.Render()

	return nil
}

func (r *Renderer) historyTable(w io.Writer, results []Result) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "ID", "Started", "Command", "Elapsed", "Exit Code"})

	for i, curr := range results {
		t.AppendRow(table.Row{
			i + 1,
			curr.ID,
			curr.StartedAt.Local().Format(time.DateTime),
			curr.Command,
			curr.Formatted,
			curr.ExitCode,
		})
	}
	t.Render()

	return nil
}

func writeYAML(w io.Writer, data any) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("could not marshal output")
		return fmt.Errorf("render: could not marshal yaml: %w", err)
	}

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("render: could not write output: %w", err)
	}

	return nil
}
