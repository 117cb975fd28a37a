package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/midbel/cli"
	"github.com/midbel/sheetcalc/calc"
	"github.com/midbel/sheetcalc/calc/exprlang"
	"github.com/midbel/sheetcalc/format"
	"github.com/midbel/sheetcalc/formula"
	"github.com/midbel/sheetcalc/formula/eval"
	"github.com/midbel/sheetcalc/grid"
	"github.com/midbel/sheetcalc/internal/config"
	"github.com/midbel/sheetcalc/internal/logger"
	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/sheetio"
	"github.com/midbel/sheetcalc/value"
)

var errFail = errors.New("fail")

var (
	summary = "sheetcalc computes, rebases and inspects spreadsheet formulas"
	help    = `
sheetcalc reads its settings from $SHEETCALC_CONFIG_HOME/config.toml
(or $XDG_CONFIG_HOME/sheetcalc/config.toml). Any setting can be
overridden with -x key=value, eg: -x engine.backend=expr
`
)

var settings = config.Default()

func main() {
	var (
		set   = cli.NewFlagSet("sheetcalc")
		root  = prepare()
		file  string
		overs []string
	)
	root.SetSummary(summary)
	root.SetHelp(help)
	set.StringVar(&file, "c", "", "configuration file")
	set.Func("x", "override a setting (key=value)", func(str string) error {
		overs = append(overs, str)
		return nil
	})
	if err := set.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root.Help()
			os.Exit(2)
		}
	}
	if err := setup(file, overs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Close()

	err := root.Execute(set.Args())
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			fmt.Fprintln(os.Stderr, err)
		}
		logger.Close()
		os.Exit(1)
	}
}

func setup(file string, overs []string) error {
	cfg, err := config.Load(file)
	if err != nil {
		return err
	}
	for _, o := range overs {
		if err := cfg.Set(o); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	settings = cfg
	return logger.Init(logger.Options{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})
}

func prepare() *cli.CommandTrie {
	root := cli.New()
	root.Register([]string{"eval"}, &evalCmd)
	root.Register([]string{"calc"}, &calcCmd)
	root.Register([]string{"parse"}, &parseCmd)
	root.Register([]string{"rebuild"}, &rebuildCmd)
	root.Register([]string{"adjust"}, &adjustCmd)
	root.Register([]string{"refs"}, &refsCmd)
	root.Register([]string{"copy"}, &copyCmd)
	root.Register([]string{"config"}, &configCmd)
	return root
}

var evalCmd = cli.Command{
	Name:    "eval",
	Alias:   []string{"compute"},
	Summary: "compute the cells of a sheet file",
	Usage:   "eval [-f format] [-n pattern] [-csv] <file> [cell,...]",
	Handler: &EvalSheetCommand{},
}

var calcCmd = cli.Command{
	Name:    "calc",
	Summary: "evaluate a literal expression",
	Usage:   "calc <expression>",
	Handler: &CalcCommand{},
}

var parseCmd = cli.Command{
	Name:    "parse",
	Alias:   []string{"dump"},
	Summary: "print the tokens of a formula",
	Usage:   "parse <formula> [cell]",
	Handler: &ParseFormulaCommand{},
}

var rebuildCmd = cli.Command{
	Name:    "rebuild",
	Alias:   []string{"relocate"},
	Summary: "rewrite a formula as if it was moved to another cell",
	Usage:   "rebuild <formula> <from> <to>",
	Handler: &RebuildFormulaCommand{},
}

var adjustCmd = cli.Command{
	Name:    "adjust",
	Summary: "rebase a formula after rows or columns are inserted or deleted",
	Usage:   "adjust [-t] [-s sheet] <formula> <cell> <operation> <index> [count]",
	Handler: &AdjustFormulaCommand{},
}

var refsCmd = cli.Command{
	Name:    "refs",
	Alias:   []string{"references"},
	Summary: "list the cells referenced by a formula",
	Usage:   "refs <formula>",
	Handler: &ListReferencesCommand{},
}

var copyCmd = cli.Command{
	Name:    "copy",
	Alias:   []string{"cp"},
	Summary: "copy a cell to another one of a sheet file",
	Usage:   "copy [-m mode] [-csv] <file> <from> <to>",
	Handler: &CopyCellCommand{},
}

var configCmd = cli.Command{
	Name:    "config",
	Summary: "print the active settings",
	Usage:   "config",
	Handler: &PrintConfigCommand{},
}

func createEvaluator() (*eval.Evaluator, error) {
	var ev calc.Evaluator
	switch settings.Engine.Backend {
	case config.BackendNative, "":
		ev = calc.NewNative()
	case config.BackendExpr:
		ev = exprlang.New()
	default:
		return nil, fmt.Errorf("%s: unknown backend", settings.Engine.Backend)
	}
	return eval.New(ev, eval.WithLogger(logger.L)), nil
}

func openSheet(file, kind string) (*grid.Sheet, error) {
	var (
		fx  *sheetio.Fixture
		err error
	)
	if kind == "" {
		fx, err = sheetio.Open(file)
	} else {
		var (
			ft sheetio.Format
			r  *os.File
		)
		if ft, err = sheetio.FormatFromString(kind); err != nil {
			return nil, err
		}
		if r, err = os.Open(file); err != nil {
			return nil, err
		}
		defer r.Close()
		fx, err = sheetio.Load(r, ft, "")
	}
	if err != nil {
		return nil, err
	}
	ev, err := createEvaluator()
	if err != nil {
		return nil, err
	}
	return fx.Sheet(ev, grid.WithLogger(logger.L))
}

func parseCells(args []string) ([]layout.Position, error) {
	var list []layout.Position
	for _, a := range args {
		rg, err := layout.ParseRange(a)
		if err != nil {
			return nil, err
		}
		for pos := range rg.Positions() {
			list = append(list, pos)
		}
	}
	return list, nil
}

func createDisplay(pattern string) (*format.Display, error) {
	if pattern == "" {
		pattern = settings.Display.Number
	}
	d := format.NewDisplay()
	return d, d.Number(pattern)
}

func printCell(sh *grid.Sheet, pos layout.Position, d *format.Display) {
	var (
		raw = sh.RawFormula(pos)
		val = sh.DisplayValue(pos)
	)
	fmt.Fprintf(os.Stdout, "%-8s %-24s %s", pos.Addr(), raw, d.Format(val))
	fmt.Fprintln(os.Stdout)
}

type EvalSheetCommand struct {
	Format string
	Number string
	CSV    bool
}

func (c EvalSheetCommand) Run(args []string) error {
	set := cli.NewFlagSet("eval")
	set.StringVar(&c.Format, "f", "", "format of input file (csv, xml)")
	set.StringVar(&c.Number, "n", "", "pattern used to print numbers")
	set.BoolVar(&c.CSV, "csv", false, "print computed values as csv")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() < 1 {
		return fmt.Errorf("missing sheet file")
	}
	sh, err := openSheet(set.Arg(0), c.Format)
	if err != nil {
		return err
	}
	sh.Recalculate()
	if c.CSV {
		return sheetio.WriteCSV(os.Stdout, sh)
	}
	display, err := createDisplay(c.Number)
	if err != nil {
		return err
	}
	cells, err := parseCells(set.Args()[1:])
	if err != nil {
		return err
	}
	if len(cells) == 0 {
		for pos := range sh.Cells() {
			cells = append(cells, pos)
		}
	}
	var failed bool
	for _, pos := range cells {
		printCell(sh, pos, display)
		failed = failed || value.IsError(sh.DisplayValue(pos))
	}
	if failed {
		return errFail
	}
	return nil
}

type CalcCommand struct{}

func (c CalcCommand) Run(args []string) error {
	set := cli.NewFlagSet("calc")
	if err := set.Parse(args); err != nil {
		return err
	}
	ev, err := createEvaluator()
	if err != nil {
		return err
	}
	expr := strings.TrimPrefix(strings.Join(set.Args(), " "), "=")
	if _, err := calc.Parse(expr); calc.IsSyntax(err) {
		return err
	}
	res := ev.Evaluate("="+expr, func(layout.Position) value.Value {
		return value.Blank{}
	})
	display, err := createDisplay("")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, display.Format(res.Get()))
	if res.Failed() {
		return errFail
	}
	return nil
}

type ParseFormulaCommand struct{}

func (c ParseFormulaCommand) Run(args []string) error {
	set := cli.NewFlagSet("parse")
	if err := set.Parse(args); err != nil {
		return err
	}
	home, err := homeCell(set.Arg(1))
	if err != nil {
		return err
	}
	meta, err := formula.Parse(set.Arg(0), home.Line, home.Column)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, formula.Dump(meta))
	for _, r := range meta.Ranges() {
		rg := r.Range(meta.Row, meta.Column)
		fmt.Fprintf(os.Stdout, "range %s: %d x %d", rg, rg.Height(), rg.Width())
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

type RebuildFormulaCommand struct{}

func (c RebuildFormulaCommand) Run(args []string) error {
	set := cli.NewFlagSet("rebuild")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() != 3 {
		return fmt.Errorf("invalid number of arguments")
	}
	from, err := layout.ParsePosition(set.Arg(1))
	if err != nil {
		return err
	}
	to, err := layout.ParsePosition(set.Arg(2))
	if err != nil {
		return err
	}
	str, err := formula.Relocate(set.Arg(0), from, to)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, str)
	return nil
}

type AdjustFormulaCommand struct {
	Text  bool
	Sheet string
}

func (c AdjustFormulaCommand) Run(args []string) error {
	set := cli.NewFlagSet("adjust")
	set.BoolVar(&c.Text, "t", false, "rewrite the text of the formula without parsing it")
	set.StringVar(&c.Sheet, "s", "", "sheet edited")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() < 4 || set.NArg() > 5 {
		return fmt.Errorf("invalid number of arguments")
	}
	home, err := homeCell(set.Arg(1))
	if err != nil {
		return err
	}
	edit := formula.Edit{
		Sheet: c.Sheet,
		Count: 1,
	}
	if edit.Op, err = formula.ParseOp(set.Arg(2)); err != nil {
		return err
	}
	if edit.Index, err = parseIndex(edit.Op, set.Arg(3)); err != nil {
		return err
	}
	if set.NArg() == 5 {
		if edit.Count, err = strconv.ParseInt(set.Arg(4), 10, 64); err != nil {
			return err
		}
	}
	if err := edit.Validate(); err != nil {
		return err
	}
	if c.Text {
		fmt.Fprintln(os.Stdout, formula.AdjustText(set.Arg(0), edit))
		return nil
	}
	meta, err := formula.Parse(set.Arg(0), home.Line, home.Column)
	if err != nil {
		return err
	}
	res, err := formula.Adjust(meta, edit)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s %s", res.Home().Addr(), res.Formula)
	fmt.Fprintln(os.Stdout)
	return nil
}

type ListReferencesCommand struct{}

func (c ListReferencesCommand) Run(args []string) error {
	set := cli.NewFlagSet("refs")
	if err := set.Parse(args); err != nil {
		return err
	}
	for _, r := range formula.ExtractReferences(set.Arg(0)) {
		fmt.Fprintln(os.Stdout, r)
	}
	return nil
}

type CopyCellCommand struct {
	Mode   grid.CopyMode
	Format string
	CSV    bool
}

func (c CopyCellCommand) Run(args []string) error {
	c.Mode = grid.CopyAll
	set := cli.NewFlagSet("copy")
	set.StringVar(&c.Format, "f", "", "format of input file (csv, xml)")
	set.BoolVar(&c.CSV, "csv", false, "print computed values as csv")
	set.Func("m", "copy mode (value, formula, all)", func(str string) error {
		mode, err := grid.CopyModeFromString(str)
		if err == nil {
			c.Mode = mode
		}
		return err
	})
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() != 3 {
		return fmt.Errorf("invalid number of arguments")
	}
	sh, err := openSheet(set.Arg(0), c.Format)
	if err != nil {
		return err
	}
	from, err := layout.ParsePosition(set.Arg(1))
	if err != nil {
		return err
	}
	to, err := layout.ParsePosition(set.Arg(2))
	if err != nil {
		return err
	}
	if err := sh.Copy(from, to, c.Mode); err != nil {
		return err
	}
	if c.CSV {
		return sheetio.WriteCSV(os.Stdout, sh)
	}
	display, err := createDisplay("")
	if err != nil {
		return err
	}
	printCell(sh, to, display)
	return nil
}

type PrintConfigCommand struct{}

func (c PrintConfigCommand) Run(args []string) error {
	set := cli.NewFlagSet("config")
	if err := set.Parse(args); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "engine.backend = %s", settings.Engine.Backend)
	fmt.Fprintln(os.Stdout)
	fmt.Fprintf(os.Stdout, "log.level      = %s", settings.Log.Level)
	fmt.Fprintln(os.Stdout)
	fmt.Fprintf(os.Stdout, "log.file       = %s", settings.Log.File)
	fmt.Fprintln(os.Stdout)
	fmt.Fprintf(os.Stdout, "display.number = %s", settings.Display.Number)
	fmt.Fprintln(os.Stdout)
	return nil
}

func homeCell(str string) (layout.Position, error) {
	if str == "" {
		return layout.NewPosition(0, 0), nil
	}
	return layout.ParsePosition(str)
}

// parseIndex accepts 1-based row numbers and column letters or numbers.
func parseIndex(op formula.Op, str string) (int64, error) {
	if !op.Rows() {
		if letters, n := layout.ParseIndex(str); n > 0 && n == len(str) {
			return layout.ColumnIndex(letters), nil
		}
	}
	n, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("%d: index should be at least 1", n)
	}
	return n - 1, nil
}
