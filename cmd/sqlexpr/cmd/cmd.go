//  Copyright (c) 2017-2018 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/uber-go/tally"
	"github.com/uber/sqlexpr/common"
	"github.com/uber/sqlexpr/query/cache"
	"github.com/uber/sqlexpr/query/expr"
	"github.com/uber/sqlexpr/query/nullability"
	"github.com/uber/sqlexpr/query/translate"
	"github.com/uber/sqlexpr/utils"
)

// Options represents options for executing command
type Options struct {
	Logger      common.Logger
	QueryLogger common.Logger
	Metrics     common.Metrics
	FileSystem  utils.FileSystem
	Out         io.Writer
}

// Option is for setting option
type Option func(*Options)

// WithLoggers overrides the loggers created from the configured log level.
func WithLoggers(logger, queryLogger common.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
		o.QueryLogger = queryLogger
	}
}

// WithOutput redirects command output.
func WithOutput(out io.Writer) Option {
	return func(o *Options) {
		o.Out = out
	}
}

// WithFileSystem sets where expression documents are read from.
func WithFileSystem(fs utils.FileSystem) Option {
	return func(o *Options) {
		o.FileSystem = fs
	}
}

// WithMetrics sets the metrics root scope factory.
func WithMetrics(metrics common.Metrics) Option {
	return func(o *Options) {
		o.Metrics = metrics
	}
}

var (
	errorColor = color.New(color.FgRed)
	indexColor = color.New(color.FgCyan)
	warnColor  = color.New(color.FgYellow)
	okColor    = color.New(color.FgGreen)
)

// Execute executes command with options
func Execute(setters ...Option) {
	cmd := NewCommand(setters...)
	if err := utils.RecoverWrap(cmd.Execute); err != nil {
		fmt.Fprintln(os.Stderr, errorColor.Sprint(err.Error()))
		os.Exit(1)
	}
}

// NewCommand creates the sqlexpr root command.
func NewCommand(setters ...Option) *cobra.Command {
	options := &Options{
		Metrics:    common.NewLocalMetrics("sqlexpr"),
		FileSystem: utils.OSFileSystem{},
		Out:        os.Stdout,
	}
	for _, setter := range setters {
		setter(options)
	}

	cmd := &cobra.Command{
		Use:   "sqlexpr",
		Short: "SQL function call expression tool",
		Long: `sqlexpr translates yaml expression documents into SQL function call
expression trees, applies the configured dialect type mappings and
inspects the result.`,
		Example:       `./sqlexpr render exprs.yaml --config config/sqlexpr.yaml --separator ", "`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	AddFlags(cmd)

	cmd.AddCommand(
		newSubCommand(options, "render", "Render every expression", render),
		newSubCommand(options, "hash", "Print the structural hash of every expression", hash),
		newSubCommand(options, "dedupe", "Report structurally equal expressions", dedupe),
		newSubCommand(options, "nullable", "Report whether every expression may be NULL", nullable),
		newSubCommand(options, "inspect", "Tabulate the properties of every expression", inspect),
	)
	return cmd
}

// session holds what a sub command needs to process one document.
type session struct {
	cfg        common.SQLExprConfig
	logger     common.Logger
	scope      tally.Scope
	fs         utils.FileSystem
	out        io.Writer
	translator *translate.Translator
	printer    *expr.ExpressionPrinter
}

type action func(s *session, exprs []expr.Expr) error

func newSubCommand(options *Options, use, short string, run action) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ReadConfig(cmd.Flags())
			if err != nil {
				return utils.StackError(err, "failed to read configs")
			}

			s, closer, err := newSession(cfg, options)
			if err != nil {
				return err
			}
			defer closer.Close()

			exprs, err := s.load(args[0])
			if err != nil {
				return err
			}
			if err = run(s, exprs); err != nil {
				return err
			}
			if printMetrics, _ := cmd.Flags().GetBool("metrics"); printMetrics {
				s.printMetrics()
			}
			return nil
		},
	}
}

func newSession(cfg common.SQLExprConfig, options *Options) (*session, io.Closer, error) {
	logger, queryLogger := options.Logger, options.QueryLogger
	if logger == nil || queryLogger == nil {
		factory := common.NewLoggerFactoryWithLevel(cfg.LogLevel)
		logger = factory.GetDefaultLogger()
		queryLogger = factory.GetLogger("query")
	}

	scope, closer, err := options.Metrics.NewRootScope()
	if err != nil {
		return nil, nil, utils.StackError(err, "failed to create new root scope")
	}

	// Init common components.
	utils.Init(cfg, logger, queryLogger, scope)
	logger.With("env", utils.GetEnv()).Debugf("config: %+v", cfg)

	return &session{
		cfg:        cfg,
		logger:     logger,
		scope:      scope,
		fs:         options.FileSystem,
		out:        options.Out,
		translator: translate.NewTranslator(utils.GetQueryLogger(), utils.GetRootReporter()),
		printer:    expr.NewExpressionPrinter(cfg.Printer.Separator),
	}, closer, nil
}

// load translates every document in path and applies the configured type
// mappings.
func (s *session) load(path string) ([]expr.Expr, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return nil, utils.StackError(err, "failed to read %s", path)
	}
	if info.IsDir() {
		return nil, utils.StackError(nil, "%s is a directory", path)
	}
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, utils.StackError(err, "failed to read %s", path)
	}
	nodes, err := translate.ParseDocument(data)
	if err != nil {
		return nil, utils.StackError(err, "in %s", path)
	}

	pass := translate.TypeMappingPass(translate.MappingsFromConfig(s.cfg.TypeMappings))
	exprs := make([]expr.Expr, 0, len(nodes))
	for i, n := range nodes {
		e, err := s.translator.Translate(n)
		if err != nil {
			return nil, utils.StackError(err, "document %d", i)
		}
		exprs = append(exprs, s.translator.ApplyTypeMappings(e, pass))
	}
	s.logger.Debugf("loaded %d expressions from %s, %d calls mapped", len(exprs), path, pass.Rewritten())
	return exprs, nil
}

func (s *session) render(e expr.Expr) string {
	s.printer.Reset()
	s.printer.Visit(e)
	return s.printer.String()
}

func (s *session) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *session) printMetrics() {
	snapshotter, ok := s.scope.(tally.TestScope)
	if !ok {
		return
	}
	counters := snapshotter.Snapshot().Counters()
	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.printf("%s %d\n", name, counters[name].Value())
	}
}

func render(s *session, exprs []expr.Expr) error {
	for i, e := range exprs {
		s.printf("%s %s\n", indexColor.Sprintf("[%d]", i), s.render(e))
	}
	return nil
}

func hash(s *session, exprs []expr.Expr) error {
	for i, e := range exprs {
		s.printf("%s %016x %s\n", indexColor.Sprintf("[%d]", i), e.Hash(), s.render(e))
	}
	return nil
}

func dedupe(s *session, exprs []expr.Expr) error {
	seen := cache.New(s.cfg.Cache.Capacity, utils.GetQueryLogger(), utils.GetRootReporter())
	duplicates := 0
	for i, e := range exprs {
		if first, ok := seen.Get(e); ok {
			duplicates++
			s.printf("%s %s %s\n", indexColor.Sprintf("[%d]", i), s.render(e),
				warnColor.Sprintf("duplicate of [%d]", first.(int)))
			continue
		}
		seen.Put(e, i)
		s.printf("%s %s\n", indexColor.Sprintf("[%d]", i), s.render(e))
	}
	s.printf("%d expressions, %d distinct\n", len(exprs), len(exprs)-duplicates)
	return nil
}

func nullable(s *session, exprs []expr.Expr) error {
	analyzer := nullability.NewAnalyzer(s.cfg.NonNullColumns)
	for i, e := range exprs {
		verdict := okColor.Sprint("not null")
		if analyzer.Nullable(e) {
			verdict = warnColor.Sprint("nullable")
		}
		line := fmt.Sprintf("%s %s %s", indexColor.Sprintf("[%d]", i), s.render(e), verdict)

		if call, ok := e.(*expr.FunctionCall); ok && analyzer.Nullable(call) {
			if sources, ok := analyzer.ExpandIsNull(call); ok {
				predicates := make([]string, 0, len(sources))
				for _, source := range sources {
					predicates = append(predicates, s.render(source)+" IS NULL")
				}
				line += " when " + strings.Join(predicates, " OR ")
			}
		}
		s.printf("%s\n", line)
	}
	return nil
}

// expressionTable lists one expression per row.
type expressionTable struct {
	s        *session
	analyzer *nullability.Analyzer
	exprs    []expr.Expr
}

// NumRows returns the number of expressions.
func (t expressionTable) NumRows() int {
	return len(t.exprs)
}

// ColumnHeaders returns the inspect columns.
func (t expressionTable) ColumnHeaders() []string {
	return []string{"#", "shape", "name", "args", "type", "mapping", "nullable", "hash"}
}

// GetValue returns the cell of an expression.
func (t expressionTable) GetValue(row, col int) interface{} {
	e := t.exprs[row]
	call, isCall := e.(*expr.FunctionCall)
	switch col {
	case 0:
		return row
	case 1:
		if !isCall {
			return "-"
		}
		if call.IsNiladic() {
			return call.Shape().String() + ", niladic"
		}
		return call.Shape().String()
	case 2:
		if !isCall {
			return t.s.render(e)
		}
		return call.Name()
	case 3:
		if !isCall {
			return 0
		}
		return call.NumArguments()
	case 4:
		return e.Type().String()
	case 5:
		return e.TypeMapping().String()
	case 6:
		return strconv.FormatBool(t.analyzer.Nullable(e))
	default:
		return fmt.Sprintf("%016x", e.Hash())
	}
}

func inspect(s *session, exprs []expr.Expr) error {
	s.printf("%s", utils.WriteTable(expressionTable{
		s:        s,
		analyzer: nullability.NewAnalyzer(s.cfg.NonNullColumns),
		exprs:    exprs,
	}))
	return nil
}
