package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"skirmish/config"
	"skirmish/sessions"
	"skirmish/store"
	"skirmish/tlv"
	"skirmish/wire"

	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", errors.Errorf("invalid output format %q", s)
	}
}

func GetFormat(cmd *cobra.Command) (Format, error) {
	format, err := cmd.Flags().GetString(FlagFormat)
	if err != nil {
		return "", err
	}
	return ParseFormat(format)
}

type Renderer struct {
	w           io.Writer
	format      Format
	colWidth    int
	healthGlyph string
	glyphs      bool
}

// NewRenderer renders health as repeated glyphs only when w is a terminal.
func NewRenderer(w io.Writer, format Format, display config.DisplayConfig) *Renderer {
	r := &Renderer{
		w:           w,
		format:      format,
		colWidth:    display.ColumnWidth,
		healthGlyph: display.HealthGlyph,
	}
	if f, ok := w.(*os.File); ok {
		r.glyphs = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return r
}

func (r *Renderer) SetGlyphs(glyphs bool) {
	r.glyphs = glyphs
}

func (r *Renderer) structured(v interface{}) (bool, error) {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

func (r *Renderer) Session(s *wire.Session) error {
	if ok, err := r.structured(s); ok {
		return err
	}
	if err := r.entities("Opponents", s.Opponents); err != nil {
		return err
	}
	if err := r.entities("Party", s.Party); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.w, "Actions:\n========\n"); err != nil {
		return err
	}
	table := r.newTable()
	table.SetHeader([]string{"Time", "Actor", "Kind", "Target"})
	for _, a := range s.Actions {
		table.Append([]string{
			a.StartTime().UTC().Format(time.RFC3339),
			r.truncate(a.Entity),
			a.Kind.String(),
			r.truncate(a.Target),
		})
	}
	table.Render()
	return nil
}

// entities lays entities out as columns: a header row of names and a row
// of health.
func (r *Renderer) entities(title string, entities []wire.Entity) error {
	if _, err := fmt.Fprintf(r.w, "%s:\n%s\n", title, strings.Repeat("=", len(title)+1)); err != nil {
		return err
	}
	if len(entities) == 0 {
		_, err := fmt.Fprint(r.w, "(none)\n\n")
		return err
	}
	table := r.newTable()
	names := make([]string, 0, len(entities))
	health := make([]string, 0, len(entities))
	for _, e := range entities {
		names = append(names, r.truncate(e.Name))
		health = append(health, r.health(e.Health))
	}
	table.SetHeader(names)
	table.Append(health)
	table.Render()
	_, err := fmt.Fprintln(r.w)
	return err
}

func (r *Renderer) health(h uint8) string {
	if !r.glyphs {
		return strconv.Itoa(int(h))
	}
	if h == 0 {
		return "x"
	}
	return r.truncate(strings.Repeat(r.healthGlyph, int(h)))
}

func (r *Renderer) truncate(s string) string {
	runes := []rune(s)
	if r.colWidth < 1 || len(runes) <= r.colWidth {
		return s
	}
	return string(runes[:r.colWidth])
}

func (r *Renderer) newTable() *tablewriter.Table {
	table := tablewriter.NewWriter(r.w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetColWidth(r.colWidth)
	return table
}

func (r *Renderer) SessionInfos(infos []*store.SessionInfo) error {
	if ok, err := r.structured(infos); ok {
		return err
	}
	table := r.newTable()
	table.SetHeader([]string{"Name", "Party", "Opponents", "Actions", "Size", "Checksum", "Saved At"})
	for _, info := range infos {
		savedAt := "-"
		if !info.SavedAt.IsZero() {
			savedAt = info.SavedAt.UTC().Format(time.RFC3339)
		}
		table.Append([]string{
			info.Name,
			strconv.Itoa(info.PartySize),
			strconv.Itoa(info.OpponentCount),
			strconv.Itoa(info.ActionCount),
			strconv.Itoa(info.Size),
			info.Checksum.Short(),
			savedAt,
		})
	}
	table.Render()
	return nil
}

func (r *Renderer) VerifyResults(results []sessions.VerifyResult) error {
	if ok, err := r.structured(results); ok {
		return err
	}
	table := r.newTable()
	table.SetHeader([]string{"Name", "Status", "Size", "Error"})
	for _, res := range results {
		status := "ok"
		if !res.OK() {
			status = "FAILED"
		}
		table.Append([]string{res.Name, status, strconv.Itoa(res.Size), res.Err})
	}
	table.Render()
	return nil
}

// Value always renders as an indented tree; value trees carry no field
// names to key structured output with.
func (r *Renderer) Value(v tlv.Value) error {
	return tlv.Dump(r.w, v)
}
