package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/limpo1989/dynarray"
	"github.com/limpo1989/dynarray/metrics"
)

type cli struct {
	Growth          string `help:"Growth policy (doubling | power-of-two)." enum:"doubling,power-of-two" default:"doubling"`
	InitialCapacity int    `help:"Initial capacity in elements." default:"32"`
	LogLevel        string `name:"log.level" help:"Log level (debug | info | warn | error)." enum:"debug,info,warn,error" default:"info"`
	Metrics         bool   `help:"Print array metrics at the end of the run."`
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("dynarray-example"),
		kong.Description("Exercises a dynamic array of ints: append, extend, insert, remove and sort."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(c.run(os.Stdout, newLogger(c.LogLevel)))
}

func (c *cli) run(w io.Writer, logger log.Logger) error {
	growth, err := dynarray.ParseGrowthPolicy(c.Growth)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector()
	reg.MustRegister(collector)

	arr, err := dynarray.New(int(dynarray.Sizeof[int]()),
		dynarray.WithInitialCapacity(c.InitialCapacity),
		dynarray.WithGrowthPolicy(growth),
		dynarray.WithLogger(logger),
	)
	if err != nil {
		return errors.Wrap(err, "error creating array")
	}
	collector.Track("example", arr)

	for i := 0; i < 15; i++ {
		if err := arr.Append(dynarray.BytesOf(&i)); err != nil {
			return errors.Wrapf(err, "error appending %d", i)
		}
		fmt.Fprintf(w, "i: %d\n", i)
		printStats(w, arr)
	}
	printItems(w, arr)

	src := make([]int, 20)
	for i := range src {
		src[i] = i + 1
	}
	if err := arr.Extend(dynarray.SliceBytes(src), len(src)); err != nil {
		return errors.Wrap(err, "error extending")
	}
	printStats(w, arr)
	printItems(w, arr)

	for _, ins := range []struct{ value, pos int }{{99, 15}, {-1, 0}} {
		if err := arr.Insert(dynarray.BytesOf(&ins.value), ins.pos); err != nil {
			return errors.Wrapf(err, "error inserting %d at %d", ins.value, ins.pos)
		}
	}
	printItems(w, arr)

	if err := arr.RemoveAt(7); err != nil {
		return errors.Wrap(err, "error removing")
	}
	printItems(w, arr)

	if err := arr.Sort(dynarray.CompareInt); err != nil {
		return errors.Wrap(err, "error sorting")
	}
	printItems(w, arr)

	if c.Metrics {
		if err := printMetrics(w, reg); err != nil {
			return err
		}
	}

	level.Info(logger).Log("msg", "done", "length", arr.Len(), "capacity", arr.Cap())
	return arr.Deinit()
}

func printStats(w io.Writer, arr *dynarray.Array) {
	st := arr.Stats()
	fmt.Fprintf(w, "{\n\titem_size: %d\n\tlength:    %d\n\tcapacity:  %d\n\tbuffer:    %s\n}\n",
		st.ItemSize, st.Length, st.Capacity, humanize.IBytes(uint64(st.Bytes)))
}

func printItems(w io.Writer, arr *dynarray.Array) {
	var sb strings.Builder
	sb.WriteString("Items:\n")
	for _, elem := range arr.All() {
		fmt.Fprintf(&sb, "%d ", *dynarray.As[int](elem))
	}
	sb.WriteString("\n")
	io.WriteString(w, sb.String())
}

func printMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return errors.Wrap(err, "error gathering metrics")
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fmt.Fprintf(w, "%s%s %g\n", mf.GetName(), labels(m), value(m))
		}
	}
	return nil
}

func labels(m *dto.Metric) string {
	if len(m.GetLabel()) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(m.GetLabel()))
	for _, l := range m.GetLabel() {
		pairs = append(pairs, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	return "{" + strings.Join(pairs, ",") + "}"
}

func value(m *dto.Metric) float64 {
	switch {
	case m.GetGauge() != nil:
		return m.GetGauge().GetValue()
	case m.GetCounter() != nil:
		return m.GetCounter().GetValue()
	}
	return 0
}

func newLogger(lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		opt = level.AllowInfo()
	}
	return level.NewFilter(logger, opt)
}
