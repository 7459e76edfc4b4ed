package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lucas-science/bobine/pkg/bobine"
	"github.com/lucas-science/bobine/pkg/bobine/render"
	"github.com/spf13/cobra"
)

// endOfResponse closes every answer in interactive mode.
const endOfResponse = "<<<END_RESPONSE>>>"

type response struct {
	Result any    `json:"result"`
	Error  string `json:"error,omitempty"`
}

// payload holds either the result or the error, never both. A zero
// result such as an empty experience name is kept.
func (r response) payload() any {
	if r.Error != "" {
		return struct {
			Error string `json:"error"`
		}{r.Error}
	}
	return struct {
		Result any `json:"result"`
	}{r.Result}
}

// action is one command, reachable as a subcommand and, under its legacy
// name, from interactive mode.
type action struct {
	name   string
	legacy string
	use    string
	short  string
	nargs  int
	run    func(ctx context.Context, opts bobine.Options, args []string) (any, error)
}

var actions = []action{
	{
		name: "masses", legacy: "GET_CONTEXT_MASSES", use: "masses <root>", nargs: 1,
		short: "Print the mass readings of the context workbook",
		run: func(_ context.Context, opts bobine.Options, args []string) (any, error) {
			return bobine.ContextMasses(args[0], opts)
		},
	},
	{
		name: "context-b64", legacy: "GET_CONTEXT_B64", use: "context-b64 <root>", nargs: 1,
		short: "Print the context workbook encoded in base64",
		run: func(_ context.Context, opts bobine.Options, args []string) (any, error) {
			return bobine.ContextBase64(args[0], opts)
		},
	},
	{
		name: "experience", legacy: "GET_CONTEXT_EXPERIENCE_NAME", use: "experience <root>", nargs: 1,
		short: "Print the experiment name",
		run: func(_ context.Context, opts bobine.Options, args []string) (any, error) {
			return bobine.ExperienceName(args[0], opts)
		},
	},
	{
		name: "validate-context", legacy: "VALIDATE_CONTEXT", use: "validate-context <root>", nargs: 1,
		short: "Check that the context workbook holds every mass reading",
		run: func(_ context.Context, opts bobine.Options, args []string) (any, error) {
			return bobine.ValidateContext(args[0], opts), nil
		},
	},
	{
		name: "sections", legacy: "GET_GRAPHS_AVAILABLE", use: "sections <root>", nargs: 1,
		short: "List the report sections each source supports",
		run: func(ctx context.Context, opts bobine.Options, args []string) (any, error) {
			return bobine.ListSections(ctx, args[0], opts)
		},
	},
	{
		name: "time-range", legacy: "GET_TIME_RANGE", use: "time-range <root>", nargs: 1,
		short: "Print the first and last time stamps of the pyrolysis log",
		run: func(_ context.Context, opts bobine.Options, args []string) (any, error) {
			return bobine.TimeRange(args[0], opts)
		},
	},
	{
		name: "generate", legacy: "GENERATE_EXCEL_TO_FILE", use: "generate <request-json> <root> <output.xlsx>", nargs: 3,
		short: "Write the requested report",
		run: func(ctx context.Context, opts bobine.Options, args []string) (any, error) {
			req, err := bobine.ParseRequest([]byte(args[0]))
			if err != nil {
				return nil, err
			}
			res, err := bobine.Generate(ctx, args[1], req, args[2], opts)
			if err != nil {
				return nil, err
			}
			return res, nil
		},
	},
	{
		name: "inspect", legacy: "INSPECT_REPORT", use: "inspect <report.xlsx>", nargs: 1,
		short: "List the sheets, charts and print areas of a written report",
		run: func(_ context.Context, _ bobine.Options, args []string) (any, error) {
			return render.Inspect(args[0])
		},
	},
}

func lookupAction(name string) (action, bool) {
	for _, act := range actions {
		if act.name == name || act.legacy == name {
			return act, true
		}
	}
	return action{}, false
}

func (a *app) command(act action) *cobra.Command {
	return &cobra.Command{
		Use:   act.use,
		Short: act.short,
		Args:  cobra.ExactArgs(act.nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := act.run(cmd.Context(), a.opts, args)
			if err != nil {
				return a.fail(err)
			}
			return writeJSON(a.stdout, response{Result: res}, pretty)
		},
	}
}

// dispatch runs one interactive command line.
func (a *app) dispatch(ctx context.Context, line string) response {
	fields := strings.Split(line, "\t")
	act, ok := lookupAction(fields[0])
	if !ok {
		return response{Error: fmt.Sprintf("invalid action %q", fields[0])}
	}
	args := fields[1:]
	if len(args) < act.nargs {
		return response{Error: fmt.Sprintf("%s expects %d argument(s), got %d", act.name, act.nargs, len(args))}
	}
	res, err := act.run(ctx, a.opts, args[:act.nargs])
	if err != nil {
		a.log.Error("command failed", slog.String("action", act.name), slog.String("error", err.Error()))
		return response{Error: err.Error()}
	}
	return response{Result: res}
}

// interactive answers stdin lines until EOF or an empty line.
func (a *app) interactive(ctx context.Context) error {
	a.log.Info("interactive mode started")
	sc := bufio.NewScanner(a.stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			break
		}
		if err := writeJSON(a.stdout, a.dispatch(ctx, line), false); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(a.stdout, endOfResponse); err != nil {
			return err
		}
	}
	return sc.Err()
}

func writeJSON(w io.Writer, r response, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(r.payload())
}
